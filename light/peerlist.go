package light

import "sort"

// PeerList is an ordered collection of peer Instances with at most one
// designated primary (none once every candidate has been demoted) and
// zero-or-more witnesses. A peer only ever moves
// witness -> primary -> faulty or witness -> faulty; once faulty, it
// never returns to witness.
type PeerList struct {
	primary   *PeerID
	witnesses map[PeerID]struct{}
	faulty    map[PeerID]struct{}
	instances map[PeerID]*Instance
}

// NewPeerList builds a PeerList from a designated primary and a set of
// witnesses. Every id referenced must be a key of instances.
func NewPeerList(primary PeerID, witnesses []PeerID, instances map[PeerID]*Instance) *PeerList {
	ws := make(map[PeerID]struct{}, len(witnesses))
	for _, w := range witnesses {
		ws[w] = struct{}{}
	}

	p := primary
	return &PeerList{
		primary:   &p,
		witnesses: ws,
		faulty:    make(map[PeerID]struct{}),
		instances: instances,
	}
}

// Primary returns a read-only view of the current primary, if any.
func (pl *PeerList) Primary() (*Instance, bool) {
	if pl.primary == nil {
		return nil, false
	}
	return pl.instances[*pl.primary], true
}

// PrimaryID returns the id of the current primary, if any.
func (pl *PeerList) PrimaryID() (PeerID, bool) {
	if pl.primary == nil {
		return "", false
	}
	return *pl.primary, true
}

// PrimaryMut returns an exclusive view of the current primary, if any.
// Go has no separate mutable-borrow type; this method exists to mirror
// the Rust source's primary_mut and to make call sites self-documenting
// about intent to mutate.
func (pl *PeerList) PrimaryMut() (*Instance, bool) {
	return pl.Primary()
}

// Witnesses returns the current witnesses. Iteration order is stable
// within a single call (sorted by PeerID) but otherwise unspecified.
func (pl *PeerList) Witnesses() []*Instance {
	ids := pl.WitnessIDs()
	out := make([]*Instance, 0, len(ids))
	for _, id := range ids {
		out = append(out, pl.instances[id])
	}
	return out
}

// WitnessIDs returns the ids of the current witnesses, sorted.
func (pl *PeerList) WitnessIDs() []PeerID {
	ids := make([]PeerID, 0, len(pl.witnesses))
	for id := range pl.witnesses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SwapPrimary demotes the current primary to faulty and promotes a
// witness in its place. The witness with the smallest PeerID is chosen,
// a deterministic stand-in for "implementation-defined deterministic
// choice". Fails with ErrNoWitnessLeft if no witness remains.
func (pl *PeerList) SwapPrimary() error {
	ids := pl.WitnessIDs()
	if len(ids) == 0 {
		return errNoWitnessLeft()
	}

	if pl.primary != nil {
		pl.faulty[*pl.primary] = struct{}{}
	}

	next := ids[0]
	delete(pl.witnesses, next)
	p := next
	pl.primary = &p

	return nil
}

// MarkWitnessAsFaulty removes peer from witnesses and inserts it into
// faulty. It is a no-op if peer is not currently a witness, which makes
// it safe to call twice for the same peer (e.g. from two independent
// fork reports).
func (pl *PeerList) MarkWitnessAsFaulty(peer PeerID) {
	if _, ok := pl.witnesses[peer]; !ok {
		return
	}
	delete(pl.witnesses, peer)
	pl.faulty[peer] = struct{}{}
}

// IsFaulty reports whether peer has been marked faulty.
func (pl *PeerList) IsFaulty(peer PeerID) bool {
	_, ok := pl.faulty[peer]
	return ok
}

// IsWitness reports whether peer is currently a witness.
func (pl *PeerList) IsWitness(peer PeerID) bool {
	_, ok := pl.witnesses[peer]
	return ok
}
