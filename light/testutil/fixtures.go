// Package testutil provides small, hand-scripted collaborator fakes used
// to exercise the Supervisor's control flow without a real LightClient,
// ForkDetector, or network.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ChorusOne/lightsupervisor/light"
)

// NewPeerID returns an opaque, unique peer id suitable for tests.
func NewPeerID() light.PeerID {
	return light.PeerID(uuid.NewString())
}

// FakeLightClient is a scriptable LightClient: each call to
// VerifyToHighest/VerifyToTarget pops the next queued result. Exhausting
// the queue returns ErrExhausted.
type FakeLightClient struct {
	mu      sync.Mutex
	results []VerifyResult
}

// VerifyResult is one scripted outcome for a FakeLightClient call.
type VerifyResult struct {
	Block light.LightBlock
	Err   error
}

// ErrExhausted is returned once a FakeLightClient's scripted results are
// used up.
var ErrExhausted = errors.New("testutil: fake light client has no more scripted results")

// NewFakeLightClient returns a FakeLightClient that yields results in
// order.
func NewFakeLightClient(results ...VerifyResult) *FakeLightClient {
	return &FakeLightClient{results: results}
}

func (f *FakeLightClient) next() (light.LightBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.results) == 0 {
		return light.LightBlock{}, ErrExhausted
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.Block, r.Err
}

func (f *FakeLightClient) VerifyToHighest(ctx context.Context, state *light.State) (light.LightBlock, error) {
	return f.next()
}

func (f *FakeLightClient) VerifyToTarget(ctx context.Context, height light.Height, state *light.State) (light.LightBlock, error) {
	return f.next()
}

// FakeForkDetector is a scriptable ForkDetector: each call pops the next
// queued ForkDetection.
type FakeForkDetector struct {
	mu      sync.Mutex
	results []ForkDetectionResult
}

// ForkDetectionResult is one scripted outcome for a FakeForkDetector
// call.
type ForkDetectionResult struct {
	Detection light.ForkDetection
	Err       error
}

// NewFakeForkDetector returns a FakeForkDetector that yields results in
// order. If no results are scripted, every call returns NotDetected.
func NewFakeForkDetector(results ...ForkDetectionResult) *FakeForkDetector {
	return &FakeForkDetector{results: results}
}

func (f *FakeForkDetector) DetectForks(ctx context.Context, verified, trusted *light.LightBlock, witnesses []*light.Instance) (light.ForkDetection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.results) == 0 {
		return light.ForkDetection{}, nil
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.Detection, r.Err
}

// FakeEvidenceReporter records every evidence report it receives and
// returns a deterministic, incrementing hash.
type FakeEvidenceReporter struct {
	mu       sync.Mutex
	Reports  []FakeReport
	FailWith error
	seq      uint64
}

// FakeReport records one call to Report.
type FakeReport struct {
	Evidence light.ConflictingHeadersEvidence
	Peer     light.PeerID
}

func (f *FakeEvidenceReporter) Report(ctx context.Context, evidence light.ConflictingHeadersEvidence, peer light.PeerID) (light.EvidenceHash, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailWith != nil {
		return light.EvidenceHash{}, f.FailWith
	}

	f.Reports = append(f.Reports, FakeReport{Evidence: evidence, Peer: peer})
	f.seq++

	var h light.EvidenceHash
	h[0] = byte(f.seq)
	return h, nil
}

// NewSignedHeader builds a minimal SignedHeader for a given height and
// hash, timestamped at call time; useful for building LightBlocks in
// tests without pulling in real header-construction logic.
func NewSignedHeader(height light.Height, hash string) light.SignedHeader {
	return light.SignedHeader{
		Height:         height,
		Hash:           []byte(hash),
		Time:           time.Now(),
		ValidatorsHash: []byte("validators:" + hash),
	}
}
