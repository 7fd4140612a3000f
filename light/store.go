package light

import (
	deadlock "github.com/sasha-s/go-deadlock"
)

// LightStore maps a peer's blocks to their verification status. At most
// one block is kept per (height, status) pair; a block tagged
// StatusFailed at a given height stays failed for that peer.
//
// The Supervisor's single-threaded execution is the only thing that
// touches a store during normal operation, but the mutex is kept (rather
// than left out) so that a future caller that violates that invariant
// fails fast under go-deadlock instead of racing silently.
type LightStore struct {
	mu      deadlock.Mutex
	blocks  map[Height]entry
	highest map[Status]Height
	hasHigh map[Status]bool
}

type entry struct {
	block  LightBlock
	status Status
}

// NewLightStore returns an empty LightStore.
func NewLightStore() *LightStore {
	return &LightStore{
		blocks:  make(map[Height]entry),
		highest: make(map[Status]Height),
		hasHigh: make(map[Status]bool),
	}
}

// Update upserts block at the given status, recording it as the new
// highest-known block for that status if its height exceeds the previous
// one. A block already stored at StatusFailed is left in place.
func (s *LightStore) Update(block LightBlock, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := block.Height()
	prev, existed := s.blocks[h]
	if existed && prev.status == StatusFailed {
		return
	}
	s.blocks[h] = entry{block: block, status: status}

	if existed && prev.status != status && s.highest[prev.status] == h {
		s.hasHigh[prev.status] = false
		for bh, e := range s.blocks {
			if e.status == prev.status && (!s.hasHigh[prev.status] || bh > s.highest[prev.status]) {
				s.highest[prev.status] = bh
				s.hasHigh[prev.status] = true
			}
		}
	}

	if !s.hasHigh[status] || h > s.highest[status] {
		s.highest[status] = h
		s.hasHigh[status] = true
	}
}

// Get returns the block stored at h, if any, along with its status.
func (s *LightStore) Get(h Height) (LightBlock, Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.blocks[h]
	return e.block, e.status, ok
}

// Highest returns the highest block known at the given status.
func (s *LightStore) Highest(status Status) (LightBlock, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasHigh[status] {
		return LightBlock{}, false
	}
	e := s.blocks[s.highest[status]]
	return e.block, true
}
