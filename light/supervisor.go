package light

import "context"

// Supervisor manages multiple light client Instances, of which one is
// deemed the primary: the instance blocks are retrieved and verified
// through. The others are witnesses, consulted to perform fork
// detection. If primary verification fails, the primary is demoted to
// faulty and a witness is promoted. If a witness is deemed faulty (or
// times out), it is demoted to faulty and removed from future checks.
//
// A Supervisor is meant to run its event loop, Run, in its own
// goroutine, and be driven from other goroutines via the Handle returned
// by NewHandle.
type Supervisor struct {
	peers            *PeerList
	forkDetector     ForkDetector
	evidenceReporter EvidenceReporter
	logger           Logger
	queue            *requestQueue
}

// Option configures a Supervisor at construction time.
type Option func(*Supervisor)

// WithLogger overrides the Supervisor's logger (the default discards
// everything).
func WithLogger(logger Logger) Option {
	return func(s *Supervisor) { s.logger = logger }
}

// NewSupervisor constructs a Supervisor from a peer list, fork detector,
// and evidence reporter. It does not start the event loop; call Run in
// its own goroutine to do that.
func NewSupervisor(peers *PeerList, forkDetector ForkDetector, evidenceReporter EvidenceReporter, opts ...Option) *Supervisor {
	s := &Supervisor{
		peers:            peers,
		forkDetector:     forkDetector,
		evidenceReporter: evidenceReporter,
		logger:           NopLogger(),
		queue:            newRequestQueue(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandle returns a new Handle to this Supervisor. Multiple handles may
// be created; every request from every handle is serialized through the
// same Supervisor goroutine.
func (s *Supervisor) NewHandle() Handle {
	return &supervisorHandle{queue: s.queue}
}

// latestTrusted returns the primary's highest Trusted block, if any.
// Requires a primary.
func (s *Supervisor) latestTrusted() (*LightBlock, error) {
	primary, ok := s.peers.Primary()
	if !ok {
		return nil, errNoPrimary()
	}
	block, ok := primary.LatestTrusted()
	if !ok {
		return nil, nil
	}
	return &block, nil
}

// VerifyToHighest verifies up to the highest height the primary reports.
func (s *Supervisor) VerifyToHighest(ctx context.Context) (LightBlock, error) {
	return s.verify(ctx, nil)
}

// VerifyToTarget verifies up to the given height.
func (s *Supervisor) VerifyToTarget(ctx context.Context, height Height) (LightBlock, error) {
	h := height
	return s.verify(ctx, &h)
}

// verify runs the primary loop described in spec §4.3: while a primary
// exists, attempt verification; on failure swap primaries and retry; on
// success run fork detection before trusting and returning the block.
func (s *Supervisor) verify(ctx context.Context, target *Height) (LightBlock, error) {
	if _, ok := s.peers.Primary(); !ok {
		return LightBlock{}, errNoPrimary()
	}

	for {
		primary, ok := s.peers.PrimaryMut()
		if !ok {
			return LightBlock{}, errNoWitnessLeft()
		}

		var (
			lightBlock LightBlock
			verifyErr  error
		)
		if target == nil {
			lightBlock, verifyErr = primary.LightClient.VerifyToHighest(ctx, primary.State)
		} else {
			lightBlock, verifyErr = primary.LightClient.VerifyToTarget(ctx, *target, primary.State)
		}

		if verifyErr != nil {
			s.logger.Info("verification failed, swapping primary", "err", verifyErr)
			if err := s.peers.SwapPrimary(); err != nil {
				// No witness left to promote: the failed primary is
				// demoted as well, leaving the peer list without a primary.
				if id, ok := s.peers.PrimaryID(); ok {
					s.peers.faulty[id] = struct{}{}
					s.peers.primary = nil
				}
				return LightBlock{}, err
			}
			continue
		}

		trustedState, ok := primary.LatestTrusted()
		if !ok {
			return LightBlock{}, errNoTrustedState(StatusTrusted)
		}

		outcome, err := s.detectForks(ctx, &lightBlock, &trustedState)
		if err != nil {
			return LightBlock{}, err
		}

		if !outcome.Detected() {
			// Re-acquire the primary rather than reuse the earlier
			// reference: fork detection does not mutate the peer list,
			// but re-looking it up keeps this step independent of
			// whatever detectForks borrowed internally.
			if primary, ok := s.peers.PrimaryMut(); ok {
				primary.TrustBlock(lightBlock)
			}
			return lightBlock, nil
		}

		forked, err := s.processForks(ctx, outcome.Forks)
		if err != nil {
			return LightBlock{}, err
		}
		if len(forked) > 0 {
			return LightBlock{}, errForkDetected(forked)
		}

		// All forks were Timeout/Faulty: witnesses were removed, retry
		// verification with the same primary.
	}
}

// detectForks runs the fork detector over the current witness set.
// Requires a primary and at least one witness.
func (s *Supervisor) detectForks(ctx context.Context, verified, trusted *LightBlock) (ForkDetection, error) {
	witnesses := s.peers.Witnesses()
	if len(witnesses) == 0 {
		return ForkDetection{}, errNoWitnesses()
	}
	return s.forkDetector.DetectForks(ctx, verified, trusted, witnesses)
}

// processForks reports evidence for real forks and demotes timed-out or
// faulty witnesses. It returns the peers whose forks were successfully
// reported, which drives the caller's decision to bail out with
// ErrForkDetected.
func (s *Supervisor) processForks(ctx context.Context, forks []Fork) ([]PeerID, error) {
	forked := make([]PeerID, 0, len(forks))

	for _, fork := range forks {
		switch fork.Kind {
		case ForkKindForked:
			provider := fork.Witness.Provider
			evidence := ConflictingHeadersEvidence{
				Primary: fork.Primary.SignedHeader,
				Witness: fork.Witness.SignedHeader,
			}
			if _, err := s.evidenceReporter.Report(ctx, evidence, provider); err != nil {
				return nil, errIO(err)
			}
			forked = append(forked, provider)

		case ForkKindTimeout:
			s.logger.Info("witness timed out during fork detection", "peer", fork.Peer, "err", fork.Err)
			s.peers.MarkWitnessAsFaulty(fork.Peer)

		case ForkKindFaulty:
			s.logger.Info("witness deemed faulty during fork detection", "peer", fork.Block.Provider, "err", fork.Err)
			s.peers.MarkWitnessAsFaulty(fork.Block.Provider)
		}
	}

	return forked, nil
}

// Run executes the Supervisor's event loop. It blocks until a
// terminateRequest is processed, at which point it acknowledges and
// returns, and should typically be invoked via `go supervisor.Run(ctx)`.
func (s *Supervisor) Run(ctx context.Context) {
	defer s.queue.dispose()

	for {
		req, err := s.queue.pop()
		if err != nil {
			return
		}

		switch r := req.(type) {
		case terminateRequest:
			close(r.reply)
			return

		case verifyToHighestRequest:
			block, err := s.VerifyToHighest(ctx)
			s.sendVerifyReply(r.reply, block, err)

		case verifyToTargetRequest:
			block, err := s.VerifyToTarget(ctx, r.height)
			s.sendVerifyReply(r.reply, block, err)

		case latestTrustedRequest:
			block, err := s.latestTrusted()
			s.sendLatestTrustedReply(r.reply, block, err)
		}
	}
}

func (s *Supervisor) sendVerifyReply(reply chan verifyResult, block LightBlock, err error) {
	select {
	case reply <- verifyResult{block: block, err: err}:
	default:
		s.logger.Error("reply channel closed or full, dropping verify result")
	}
}

func (s *Supervisor) sendLatestTrustedReply(reply chan latestTrustedResult, block *LightBlock, err error) {
	select {
	case reply <- latestTrustedResult{block: block, err: err}:
	default:
		s.logger.Error("reply channel closed or full, dropping latest-trusted result")
	}
}
