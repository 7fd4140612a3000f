package light

import "context"

// Handle is a thread-safe client of a Supervisor. Every operation
// allocates a fresh capacity-1 reply channel, sends a tagged request on
// the Supervisor's inbound queue, and blocks until the reply arrives.
// Multiple Handles may coexist; all requests are serialized by the
// single Supervisor goroutine that owns the queue.
type Handle interface {
	// LatestTrusted returns the primary's highest Trusted block, if any.
	LatestTrusted(ctx context.Context) (*LightBlock, error)

	// VerifyToHighest verifies up to the highest height the primary
	// reports.
	VerifyToHighest(ctx context.Context) (LightBlock, error)

	// VerifyToTarget verifies up to the given height.
	VerifyToTarget(ctx context.Context, height Height) (LightBlock, error)

	// Terminate asks the Supervisor to stop its event loop and blocks
	// until it acknowledges. It is safe to call from any goroutine; the
	// first call to reach the Supervisor wins, and every call after the
	// Supervisor has exited returns ErrChannelClosed.
	Terminate(ctx context.Context) error
}

// request is the sum type of values a Handle sends to a Supervisor. Go
// has no tagged union, so each variant is its own type carrying its own
// reply channel; Supervisor.Run dispatches on a type switch.
type request interface {
	isRequest()
}

type verifyResult struct {
	block LightBlock
	err   error
}

type verifyToHighestRequest struct {
	reply chan verifyResult
}

type verifyToTargetRequest struct {
	height Height
	reply  chan verifyResult
}

type latestTrustedResult struct {
	block *LightBlock
	err   error
}

type latestTrustedRequest struct {
	reply chan latestTrustedResult
}

type terminateRequest struct {
	reply chan struct{}
}

func (verifyToHighestRequest) isRequest() {}
func (verifyToTargetRequest) isRequest()  {}
func (latestTrustedRequest) isRequest()   {}
func (terminateRequest) isRequest()       {}

// supervisorHandle is the concrete Handle implementation.
type supervisorHandle struct {
	queue *requestQueue
}

var _ Handle = (*supervisorHandle)(nil)

func (h *supervisorHandle) LatestTrusted(ctx context.Context) (*LightBlock, error) {
	reply := make(chan latestTrustedResult, 1)
	if err := h.queue.push(latestTrustedRequest{reply: reply}); err != nil {
		return nil, err
	}

	select {
	case res := <-reply:
		return res.block, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (h *supervisorHandle) VerifyToHighest(ctx context.Context) (LightBlock, error) {
	reply := make(chan verifyResult, 1)
	if err := h.queue.push(verifyToHighestRequest{reply: reply}); err != nil {
		return LightBlock{}, err
	}
	return h.awaitVerify(ctx, reply)
}

func (h *supervisorHandle) VerifyToTarget(ctx context.Context, height Height) (LightBlock, error) {
	reply := make(chan verifyResult, 1)
	if err := h.queue.push(verifyToTargetRequest{height: height, reply: reply}); err != nil {
		return LightBlock{}, err
	}
	return h.awaitVerify(ctx, reply)
}

func (h *supervisorHandle) awaitVerify(ctx context.Context, reply chan verifyResult) (LightBlock, error) {
	select {
	case res := <-reply:
		return res.block, res.err
	case <-ctx.Done():
		return LightBlock{}, ctx.Err()
	}
}

func (h *supervisorHandle) Terminate(ctx context.Context) error {
	reply := make(chan struct{}, 1)
	if err := h.queue.push(terminateRequest{reply: reply}); err != nil {
		return err
	}

	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
