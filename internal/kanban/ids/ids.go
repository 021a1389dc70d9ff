// Package ids provides the identifier sources used for tasks and columns.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Source produces unique opaque identifiers.
type Source interface {
	NewID() string
}

// UUIDSource returns random v4 UUIDs.
type UUIDSource struct{}

func (UUIDSource) NewID() string {
	return uuid.NewString()
}

// Sequence returns prefix-1, prefix-2, ... and is meant for tests and fixtures.
type Sequence struct {
	Prefix string
	n      atomic.Int64
}

func (s *Sequence) NewID() string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, s.n.Add(1))
}
