package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/runmatrix/internal/testutil"
)

func TestFailingWriter(t *testing.T) {
	n, err := testutil.FailingWriter{}.Write([]byte("anything"))

	require.Error(t, err)
	assert.ErrorIs(t, err, testutil.ErrMockWriteFailed)
	assert.Zero(t, n)
}
