package light

import "context"

// LightClient is the collaborator that performs header verification
// against one peer. Its algorithm — skipping verification, trust
// thresholds, signature checking — is out of scope for this package; the
// Supervisor only distinguishes success from failure, swapping primaries
// on the latter.
type LightClient interface {
	// VerifyToHighest verifies up to the highest height the peer
	// reports.
	VerifyToHighest(ctx context.Context, state *State) (LightBlock, error)

	// VerifyToTarget verifies up to (and no further than) the given
	// height. Implementations are expected to short-circuit if height is
	// already at or below the latest trusted block; the Supervisor makes
	// no height check of its own.
	VerifyToTarget(ctx context.Context, height Height, state *State) (LightBlock, error)
}
