package light

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstanceLatestTrustedEmpty(t *testing.T) {
	inst := NewInstance(nil)

	_, ok := inst.LatestTrusted()
	require.False(t, ok)
}

func TestInstanceTrustBlockRoundTrips(t *testing.T) {
	inst := NewInstance(nil)
	block := LightBlock{SignedHeader: SignedHeader{Height: 42}, Provider: "p1"}

	inst.TrustBlock(block)

	got, ok := inst.LatestTrusted()
	require.True(t, ok)
	require.Equal(t, block, got)
}
