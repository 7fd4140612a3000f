package light

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestPeerList(primary PeerID, witnesses ...PeerID) *PeerList {
	instances := map[PeerID]*Instance{primary: NewInstance(nil)}
	for _, w := range witnesses {
		instances[w] = NewInstance(nil)
	}
	return NewPeerList(primary, witnesses, instances)
}

func TestPeerListPrimaryAndWitnesses(t *testing.T) {
	pl := newTestPeerList("p", "w1", "w2")

	id, ok := pl.PrimaryID()
	require.True(t, ok)
	require.Equal(t, PeerID("p"), id)
	require.ElementsMatch(t, []PeerID{"w1", "w2"}, pl.WitnessIDs())
}

func TestPeerListSwapPrimaryPromotesSmallestWitness(t *testing.T) {
	pl := newTestPeerList("p", "w2", "w1")

	err := pl.SwapPrimary()
	require.NoError(t, err)

	id, ok := pl.PrimaryID()
	require.True(t, ok)
	require.Equal(t, PeerID("w1"), id, "smallest remaining witness id is promoted")
	require.True(t, pl.IsFaulty("p"))
	require.ElementsMatch(t, []PeerID{"w2"}, pl.WitnessIDs())
}

func TestPeerListSwapPrimaryFailsWithNoWitnesses(t *testing.T) {
	pl := newTestPeerList("p")

	err := pl.SwapPrimary()
	require.Error(t, err)
	require.ErrorIs(t, err, errNoWitnessLeft())

	id, ok := pl.PrimaryID()
	require.True(t, ok)
	require.Equal(t, PeerID("p"), id, "primary is left untouched when the swap fails")
}

func TestPeerListMarkWitnessAsFaultyIsNoopForNonWitness(t *testing.T) {
	pl := newTestPeerList("p", "w1")

	pl.MarkWitnessAsFaulty("unknown")

	require.False(t, pl.IsFaulty("unknown"))
	require.ElementsMatch(t, []PeerID{"w1"}, pl.WitnessIDs())
}

func TestPeerListMarkWitnessAsFaultyRemovesFromWitnesses(t *testing.T) {
	pl := newTestPeerList("p", "w1", "w2")

	pl.MarkWitnessAsFaulty("w1")

	require.True(t, pl.IsFaulty("w1"))
	require.False(t, pl.IsWitness("w1"))
	require.ElementsMatch(t, []PeerID{"w2"}, pl.WitnessIDs())
}

func TestPeerListInvariantsDisjointSets(t *testing.T) {
	pl := newTestPeerList("p", "w1", "w2", "w3")

	require.NoError(t, pl.SwapPrimary())
	pl.MarkWitnessAsFaulty("w3")

	primary, _ := pl.PrimaryID()
	for _, w := range pl.WitnessIDs() {
		require.NotEqual(t, primary, w)
		require.False(t, pl.IsFaulty(w))
	}
}
