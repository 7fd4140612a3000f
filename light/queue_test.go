package light

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeRequest struct{ n int }

func (fakeRequest) isRequest() {}

func TestRequestQueueFIFOOrder(t *testing.T) {
	rq := newRequestQueue()

	for i := 0; i < 5; i++ {
		require.NoError(t, rq.push(fakeRequest{n: i}))
	}

	for i := 0; i < 5; i++ {
		req, err := rq.pop()
		require.NoError(t, err)
		require.Equal(t, i, req.(fakeRequest).n)
	}
}

func TestRequestQueuePopBlocksUntilPush(t *testing.T) {
	rq := newRequestQueue()

	done := make(chan request)
	go func() {
		req, err := rq.pop()
		require.NoError(t, err)
		done <- req
	}()

	select {
	case <-done:
		t.Fatal("pop returned before any push")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, rq.push(fakeRequest{n: 7}))

	select {
	case req := <-done:
		require.Equal(t, 7, req.(fakeRequest).n)
	case <-time.After(time.Second):
		t.Fatal("pop did not return after push")
	}
}

func TestRequestQueueDisposeFailsFuturePushAndPop(t *testing.T) {
	rq := newRequestQueue()
	rq.dispose()

	require.Error(t, rq.push(fakeRequest{}))

	_, err := rq.pop()
	require.Error(t, err)
}
