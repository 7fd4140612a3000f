package light

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testHashKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestNewHTTPReporterRejectsBadKeyLength(t *testing.T) {
	_, err := NewHTTPReporter(nil, []byte("too-short"), nil)
	require.Error(t, err)
}

func TestHTTPReporterReportsAndHashes(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = buf
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	reporter, err := NewHTTPReporter(map[PeerID]string{"w1": srv.URL}, testHashKey(), nil)
	require.NoError(t, err)

	evidence := ConflictingHeadersEvidence{
		Primary: SignedHeader{Height: 100, Hash: []byte("p")},
		Witness: SignedHeader{Height: 100, Hash: []byte("w")},
	}

	hash1, err := reporter.Report(context.Background(), evidence, "w1")
	require.NoError(t, err)
	require.NotEmpty(t, gotBody)

	hash2, err := reporter.Report(context.Background(), evidence, "w1")
	require.NoError(t, err)
	require.Equal(t, hash1, hash2, "hashing the same evidence twice is deterministic")
}

func TestHTTPReporterRejectsUnknownPeer(t *testing.T) {
	reporter, err := NewHTTPReporter(map[PeerID]string{}, testHashKey(), nil)
	require.NoError(t, err)

	_, err = reporter.Report(context.Background(), ConflictingHeadersEvidence{}, "unknown")
	require.Error(t, err)
}

func TestHTTPReporterSurfacesTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	reporter, err := NewHTTPReporter(map[PeerID]string{"w1": srv.URL}, testHashKey(), nil)
	require.NoError(t, err)

	_, err = reporter.Report(context.Background(), ConflictingHeadersEvidence{}, "w1")
	require.Error(t, err)
}
