package light

// Instance bundles one peer's LightClient together with its State. The
// Supervisor is the only code that holds a mutable reference to an
// Instance, and only while processing a single request to completion.
type Instance struct {
	LightClient LightClient
	State       *State
}

// NewInstance constructs an Instance from a LightClient and a fresh
// State.
func NewInstance(client LightClient) *Instance {
	return &Instance{
		LightClient: client,
		State:       NewState(),
	}
}

// LatestTrusted returns the highest block tagged Trusted in this
// instance's store, if any.
func (i *Instance) LatestTrusted() (LightBlock, bool) {
	return i.State.LightStore.Highest(StatusTrusted)
}

// TrustBlock upserts block into this instance's store with status
// Trusted.
func (i *Instance) TrustBlock(block LightBlock) {
	i.State.LightStore.Update(block, StatusTrusted)
}
