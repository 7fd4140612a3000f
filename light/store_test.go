package light

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLightStoreUpdateAndGet(t *testing.T) {
	store := NewLightStore()
	block := LightBlock{SignedHeader: SignedHeader{Height: 10}, Provider: "p1"}

	store.Update(block, StatusVerified)

	got, status, ok := store.Get(10)
	require.True(t, ok)
	require.Equal(t, StatusVerified, status)
	require.Equal(t, block, got)
}

func TestLightStoreHighestTracksMaxPerStatus(t *testing.T) {
	store := NewLightStore()

	store.Update(LightBlock{SignedHeader: SignedHeader{Height: 5}}, StatusTrusted)
	store.Update(LightBlock{SignedHeader: SignedHeader{Height: 10}}, StatusTrusted)
	store.Update(LightBlock{SignedHeader: SignedHeader{Height: 7}}, StatusTrusted)

	highest, ok := store.Highest(StatusTrusted)
	require.True(t, ok)
	require.Equal(t, Height(10), highest.Height())
}

func TestLightStoreHighestAbsentByDefault(t *testing.T) {
	store := NewLightStore()

	_, ok := store.Highest(StatusTrusted)
	require.False(t, ok)
}

func TestLightStoreHighestIsPerStatus(t *testing.T) {
	store := NewLightStore()

	store.Update(LightBlock{SignedHeader: SignedHeader{Height: 100}}, StatusFailed)

	_, ok := store.Highest(StatusTrusted)
	require.False(t, ok, "a Failed block must not count toward the Trusted high-water mark")
}
