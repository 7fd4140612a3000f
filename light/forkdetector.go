package light

import "context"

// ForkKind distinguishes the three outcomes a single witness check can
// produce during fork detection.
type ForkKind int

const (
	// ForkKindForked means the witness's header at the verified height
	// diverges from the primary's under compatible validator sets.
	ForkKindForked ForkKind = iota
	// ForkKindTimeout means the witness did not respond within its own
	// deadline.
	ForkKindTimeout
	// ForkKindFaulty means the witness produced an unusable or
	// self-inconsistent response.
	ForkKindFaulty
)

// Fork is the outcome of checking one witness against the primary's
// verified block.
type Fork struct {
	Kind ForkKind

	// Primary and Witness are set when Kind == ForkKindForked.
	Primary LightBlock
	Witness LightBlock

	// Peer is set when Kind == ForkKindTimeout.
	Peer PeerID

	// Block is set when Kind == ForkKindFaulty; Block.Provider names the
	// offending witness.
	Block LightBlock

	// Err carries the underlying collaborator error for Timeout/Faulty.
	Err error
}

// ForkDetection is the result of a fork-detection pass: either no
// witness disagreed, or a list of per-witness outcomes to process.
type ForkDetection struct {
	Forks []Fork
}

// Detected reports whether any witness outcome was recorded.
func (fd ForkDetection) Detected() bool {
	return len(fd.Forks) > 0
}

// ForkDetector compares a freshly verified block against the trusted
// state across the witness set and returns a verdict per witness. It
// must be pure with respect to Supervisor state: it never mutates the
// peer list.
type ForkDetector interface {
	DetectForks(ctx context.Context, verified, trusted *LightBlock, witnesses []*Instance) (ForkDetection, error)
}
