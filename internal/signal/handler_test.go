package signal_test

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/runmatrix/internal/signal"
)

func TestHandler_StopCancelsContext(t *testing.T) {
	h := signal.NewHandler(context.Background())

	require.NoError(t, h.Context().Err())
	assert.False(t, h.WasInterrupted())

	h.Stop()

	assert.Error(t, h.Context().Err())
	assert.False(t, h.WasInterrupted(), "Stop is not an interrupt")
}

func TestHandler_ParentCancellationPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	h := signal.NewHandler(parent)
	defer h.Stop()

	cancel()

	select {
	case <-h.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("handler context not canceled with parent")
	}
	assert.False(t, h.WasInterrupted())
}

func TestHandler_InterruptCancelsContext(t *testing.T) {
	h := signal.NewHandler(context.Background())
	defer h.Stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-h.Interrupted():
	case <-time.After(2 * time.Second):
		t.Fatal("interrupt not observed")
	}

	assert.True(t, h.WasInterrupted())
	assert.Error(t, h.Context().Err())
}

func TestHandler_StopIsIdempotent(t *testing.T) {
	h := signal.NewHandler(context.Background())
	h.Stop()
	h.Stop()
}
