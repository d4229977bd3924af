// Package sysinfo describes the client environment requests are made from.
package sysinfo

import (
	"runtime"
	"strings"
)

// ClientKind is the coarse class of a client used to pick request headers.
type ClientKind int

const (
	// Desktop is the default client kind.
	Desktop ClientKind = iota
	// Mobile is a phone or tablet.
	Mobile
)

func (k ClientKind) String() string {
	if k == Mobile {
		return "mobile"
	}
	return "desktop"
}

// mobileMarkers are substrings that identify a mobile client descriptor.
var mobileMarkers = []string{"android", "ios", "iphone", "ipad", "mobile"}

// Descriptor returns the descriptor of the running process, e.g. "linux/amd64".
func Descriptor() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Classify maps a descriptor to a ClientKind. An empty descriptor classifies the running process.
func Classify(descriptor string) ClientKind {
	if descriptor == "" {
		descriptor = Descriptor()
	}
	d := strings.ToLower(descriptor)
	for _, m := range mobileMarkers {
		if strings.Contains(d, m) {
			return Mobile
		}
	}
	return Desktop
}
