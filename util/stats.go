package util

import "sync/atomic"

// FetchStats counts fetch outcomes. It is safe to use concurrently.
type FetchStats struct {
	ok     atomic.Int64
	failed atomic.Int64
}

// Record counts one outcome; a nil err is a success.
func (s *FetchStats) Record(err error) {
	if err != nil {
		s.failed.Add(1)
		return
	}
	s.ok.Add(1)
}

// Snapshot returns the success and failure counts.
func (s *FetchStats) Snapshot() (ok, failed int64) {
	return s.ok.Load(), s.failed.Load()
}
