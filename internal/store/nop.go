package store

import "time"

// NopStore never remembers anything, so every job looks new. Used by
// `watch --once` dry runs.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) HasSeen(search, key string) (bool, error) { return false, nil }
func (s *NopStore) MarkSeen(search, key string) error        { return nil }
func (s *NopStore) Cleanup(olderThan time.Duration) error    { return nil }
