package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"fyne.io/fyne/v2"
)

// prefsData is the on-disk layout of FilePreferences.
type prefsData struct {
	Bools       map[string]bool      `json:"bools,omitempty"`
	Ints        map[string]int       `json:"ints,omitempty"`
	Floats      map[string]float64   `json:"floats,omitempty"`
	Strings     map[string]string    `json:"strings,omitempty"`
	BoolLists   map[string][]bool    `json:"bool_lists,omitempty"`
	IntLists    map[string][]int     `json:"int_lists,omitempty"`
	FloatLists  map[string][]float64 `json:"float_lists,omitempty"`
	StringLists map[string][]string  `json:"string_lists,omitempty"`
}

func newPrefsData() prefsData {
	return prefsData{
		Bools:       make(map[string]bool),
		Ints:        make(map[string]int),
		Floats:      make(map[string]float64),
		Strings:     make(map[string]string),
		BoolLists:   make(map[string][]bool),
		IntLists:    make(map[string][]int),
		FloatLists:  make(map[string][]float64),
		StringLists: make(map[string][]string),
	}
}

// FilePreferences is a fyne.Preferences backed by a JSON file.
// Every write is flushed to disk so values survive a restart without a GUI driver.
type FilePreferences struct {
	path      string
	mu        sync.RWMutex
	data      prefsData
	listeners []func()
}

var _ fyne.Preferences = (*FilePreferences)(nil)

// OpenFilePreferences loads preferences from path. A missing file yields empty preferences.
func OpenFilePreferences(path string) (*FilePreferences, error) {
	p := &FilePreferences{path: path, data: newPrefsData()}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	if err := json.Unmarshal(raw, &p.data); err != nil {
		return nil, fmt.Errorf("failed to decode preferences %s: %w", path, err)
	}
	// Maps omitted from the file decode as nil.
	fresh := newPrefsData()
	if p.data.Bools == nil {
		p.data.Bools = fresh.Bools
	}
	if p.data.Ints == nil {
		p.data.Ints = fresh.Ints
	}
	if p.data.Floats == nil {
		p.data.Floats = fresh.Floats
	}
	if p.data.Strings == nil {
		p.data.Strings = fresh.Strings
	}
	if p.data.BoolLists == nil {
		p.data.BoolLists = fresh.BoolLists
	}
	if p.data.IntLists == nil {
		p.data.IntLists = fresh.IntLists
	}
	if p.data.FloatLists == nil {
		p.data.FloatLists = fresh.FloatLists
	}
	if p.data.StringLists == nil {
		p.data.StringLists = fresh.StringLists
	}
	return p, nil
}

// Path returns the backing file.
func (p *FilePreferences) Path() string {
	return p.path
}

// save must be called with p.mu held for writing.
func (p *FilePreferences) save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

func (p *FilePreferences) update(fn func(d *prefsData)) {
	p.mu.Lock()
	fn(&p.data)
	if err := p.save(); err != nil {
		log.Printf("Failed to save preferences to %s: %v", p.path, err)
	}
	listeners := slices.Clone(p.listeners)
	p.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}

func lookup[T any](p *FilePreferences, m func(d *prefsData) map[string]T, key string, fallback T) T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := m(&p.data)[key]; ok {
		return v
	}
	return fallback
}

func (p *FilePreferences) Bool(key string) bool {
	return p.BoolWithFallback(key, false)
}

func (p *FilePreferences) BoolWithFallback(key string, fallback bool) bool {
	return lookup(p, func(d *prefsData) map[string]bool { return d.Bools }, key, fallback)
}

func (p *FilePreferences) SetBool(key string, value bool) {
	p.update(func(d *prefsData) { d.Bools[key] = value })
}

func (p *FilePreferences) BoolList(key string) []bool {
	return p.BoolListWithFallback(key, []bool{})
}

func (p *FilePreferences) BoolListWithFallback(key string, fallback []bool) []bool {
	return slices.Clone(lookup(p, func(d *prefsData) map[string][]bool { return d.BoolLists }, key, fallback))
}

func (p *FilePreferences) SetBoolList(key string, value []bool) {
	p.update(func(d *prefsData) { d.BoolLists[key] = slices.Clone(value) })
}

func (p *FilePreferences) Float(key string) float64 {
	return p.FloatWithFallback(key, 0)
}

func (p *FilePreferences) FloatWithFallback(key string, fallback float64) float64 {
	return lookup(p, func(d *prefsData) map[string]float64 { return d.Floats }, key, fallback)
}

func (p *FilePreferences) SetFloat(key string, value float64) {
	p.update(func(d *prefsData) { d.Floats[key] = value })
}

func (p *FilePreferences) FloatList(key string) []float64 {
	return p.FloatListWithFallback(key, []float64{})
}

func (p *FilePreferences) FloatListWithFallback(key string, fallback []float64) []float64 {
	return slices.Clone(lookup(p, func(d *prefsData) map[string][]float64 { return d.FloatLists }, key, fallback))
}

func (p *FilePreferences) SetFloatList(key string, value []float64) {
	p.update(func(d *prefsData) { d.FloatLists[key] = slices.Clone(value) })
}

func (p *FilePreferences) Int(key string) int {
	return p.IntWithFallback(key, 0)
}

func (p *FilePreferences) IntWithFallback(key string, fallback int) int {
	return lookup(p, func(d *prefsData) map[string]int { return d.Ints }, key, fallback)
}

func (p *FilePreferences) SetInt(key string, value int) {
	p.update(func(d *prefsData) { d.Ints[key] = value })
}

func (p *FilePreferences) IntList(key string) []int {
	return p.IntListWithFallback(key, []int{})
}

func (p *FilePreferences) IntListWithFallback(key string, fallback []int) []int {
	return slices.Clone(lookup(p, func(d *prefsData) map[string][]int { return d.IntLists }, key, fallback))
}

func (p *FilePreferences) SetIntList(key string, value []int) {
	p.update(func(d *prefsData) { d.IntLists[key] = slices.Clone(value) })
}

func (p *FilePreferences) String(key string) string {
	return p.StringWithFallback(key, "")
}

func (p *FilePreferences) StringWithFallback(key string, fallback string) string {
	return lookup(p, func(d *prefsData) map[string]string { return d.Strings }, key, fallback)
}

func (p *FilePreferences) SetString(key string, value string) {
	p.update(func(d *prefsData) { d.Strings[key] = value })
}

func (p *FilePreferences) StringList(key string) []string {
	return p.StringListWithFallback(key, []string{})
}

func (p *FilePreferences) StringListWithFallback(key string, fallback []string) []string {
	return slices.Clone(lookup(p, func(d *prefsData) map[string][]string { return d.StringLists }, key, fallback))
}

func (p *FilePreferences) SetStringList(key string, value []string) {
	p.update(func(d *prefsData) { d.StringLists[key] = slices.Clone(value) })
}

// RemoveValue deletes key from every typed section.
func (p *FilePreferences) RemoveValue(key string) {
	p.update(func(d *prefsData) {
		delete(d.Bools, key)
		delete(d.Ints, key)
		delete(d.Floats, key)
		delete(d.Strings, key)
		delete(d.BoolLists, key)
		delete(d.IntLists, key)
		delete(d.FloatLists, key)
		delete(d.StringLists, key)
	})
}

func (p *FilePreferences) AddChangeListener(callback func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, callback)
}

func (p *FilePreferences) ChangeListeners() []func() {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.listeners)
}
