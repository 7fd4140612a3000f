package light

// State is the mutable per-peer context a LightClient verifies against.
// It exclusively owns a LightStore; nothing outside the owning Instance
// (and, transitively, the Supervisor that holds that Instance) mutates
// it.
type State struct {
	LightStore *LightStore
}

// NewState returns a State with a fresh, empty LightStore.
func NewState() *State {
	return &State{LightStore: NewLightStore()}
}
