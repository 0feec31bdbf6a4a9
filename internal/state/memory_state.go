package state

import (
	"sync"
	"time"
)

// MemoryState remembers recent kill signals per container.
type MemoryState struct {
	mu         sync.RWMutex
	containers map[string]*containerState
}

func NewMemoryState() *MemoryState {
	return &MemoryState{
		containers: make(map[string]*containerState),
	}
}

// MarkKilled records that a kill signal was sent to the container at the given time.
func (s *MemoryState) MarkKilled(containerId, containerName string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.containers[containerId] = &containerState{
		ContainerId:   containerId,
		ContainerName: containerName,
		LastKilled:    at,
	}
}

// KilledWithin reports whether a kill was recorded no earlier than window before at.
func (s *MemoryState) KilledWithin(containerId string, at time.Time, window time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cs, ok := s.containers[containerId]
	if !ok {
		return false
	}
	return !cs.LastKilled.Before(at.Add(-window))
}

func (s *MemoryState) Forget(containerId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.containers, containerId)
}

// Prune drops entries killed before the cutoff and returns how many were removed.
func (s *MemoryState) Prune(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, cs := range s.containers {
		if cs.LastKilled.Before(before) {
			delete(s.containers, id)
			removed++
		}
	}
	return removed
}

func (s *MemoryState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.containers)
}
