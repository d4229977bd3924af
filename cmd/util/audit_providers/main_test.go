package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dixieflatline76/Nekofetch/pkg/imagefetch"
	"github.com/dixieflatline76/Nekofetch/pkg/provider"
)

type fakeFetcher struct {
	calls    atomic.Int32
	failures map[provider.ID]error
}

func (f *fakeFetcher) FetchImage(ctx context.Context, id provider.ID, explicit bool) (provider.Image, error) {
	f.calls.Add(1)
	if err, ok := f.failures[id]; ok {
		return provider.Image{}, &imagefetch.FetchError{Provider: id, Err: err}
	}
	return provider.Image{URL: "https://cdn.example/" + string(id), Source: id}, nil
}

func TestAudit(t *testing.T) {
	f := &fakeFetcher{failures: map[provider.ID]error{
		provider.NekosMoe: errors.New("relay down"),
	}}
	ids := provider.AllIDs()

	results := audit(context.Background(), f, ids, false, 3)
	require.Len(t, results, len(ids))
	assert.Equal(t, int32(len(ids)), f.calls.Load(), "a failure does not stop the others")

	for i, r := range results {
		assert.Equal(t, ids[i], r.ID)
		if r.ID == provider.NekosMoe {
			assert.Error(t, r.Err)
			continue
		}
		assert.NoError(t, r.Err)
		assert.Equal(t, "https://cdn.example/"+string(r.ID), r.URL)
	}

	var buf bytes.Buffer
	failed := printTable(&buf, results)
	assert.Equal(t, 1, failed)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(ids)+2)
	assert.Contains(t, buf.String(), "nekosMoe | FAIL")
	assert.Contains(t, buf.String(), "failed to fetch from nekosMoe: relay down")
	assert.Contains(t, buf.String(), "picRe | OK")
}

func TestCheckParallel(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, true},
		{1, false},
		{8, false},
	}
	for _, tt := range tests {
		err := checkParallel(tt.n)
		if tt.wantErr {
			assert.Error(t, err, "n=%d", tt.n)
		} else {
			assert.NoError(t, err, "n=%d", tt.n)
		}
	}
}
