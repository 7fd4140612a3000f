package light

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/minio/highwayhash"
)

// EvidenceHash is a content hash of an accepted evidence submission.
type EvidenceHash [highwayhash.Size128]byte

func (h EvidenceHash) String() string {
	return fmt.Sprintf("%x", h[:])
}

// ConflictingHeadersEvidence wraps two divergent signed headers verbatim,
// as submitted to a full node to prove a fork.
type ConflictingHeadersEvidence struct {
	Primary SignedHeader
	Witness SignedHeader
}

// EvidenceReporter reports evidence of misbehavior to full nodes,
// typically over RPC. Implementations with a peer-map precondition must
// have every PeerID the Supervisor could pass already present in that
// map; the Supervisor only ever reports for peers drawn from its own
// peer list, so it cannot violate that precondition.
type EvidenceReporter interface {
	Report(ctx context.Context, evidence ConflictingHeadersEvidence, peer PeerID) (EvidenceHash, error)
}

// HTTPReporter is a reference EvidenceReporter: it POSTs a JSON envelope
// of the evidence to the peer's RPC address and hashes the request body
// with HighwayHash to produce the returned EvidenceHash. It has no
// retries or TLS configuration; a production transport is an
// out-of-scope collaborator concern.
type HTTPReporter struct {
	client  *http.Client
	peerMap map[PeerID]string
	hashKey []byte
	logger  Logger
}

// NewHTTPReporter constructs an HTTPReporter. peerMap must contain the
// RPC address of every peer that will ever be passed to Report.
// hashKey must be exactly highwayhash.Size (32) bytes.
func NewHTTPReporter(peerMap map[PeerID]string, hashKey []byte, logger Logger) (*HTTPReporter, error) {
	if len(hashKey) != highwayhash.Size {
		return nil, fmt.Errorf("evidence: hash key must be %d bytes, got %d", highwayhash.Size, len(hashKey))
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &HTTPReporter{
		client:  http.DefaultClient,
		peerMap: peerMap,
		hashKey: hashKey,
		logger:  logger.With("component", "evidence_reporter"),
	}, nil
}

// Report implements EvidenceReporter.
func (r *HTTPReporter) Report(ctx context.Context, evidence ConflictingHeadersEvidence, peer PeerID) (EvidenceHash, error) {
	addr, ok := r.peerMap[peer]
	if !ok {
		return EvidenceHash{}, fmt.Errorf("evidence: no RPC address known for peer %s", peer)
	}

	body, err := json.Marshal(evidence)
	if err != nil {
		return EvidenceHash{}, err
	}

	hash, err := highwayhash.New128(r.hashKey)
	if err != nil {
		return EvidenceHash{}, err
	}
	if _, err := hash.Write(body); err != nil {
		return EvidenceHash{}, err
	}
	var sum EvidenceHash
	copy(sum[:], hash.Sum(nil))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr+"/broadcast_evidence", bytes.NewReader(body))
	if err != nil {
		return EvidenceHash{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("failed to report evidence", "peer", peer, "err", err)
		return EvidenceHash{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return EvidenceHash{}, fmt.Errorf("evidence: peer %s rejected evidence: status %d", peer, resp.StatusCode)
	}

	r.logger.Info("reported evidence", "peer", peer, "hash", sum)
	return sum, nil
}
