package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("post not found")))
	assert.Equal(t, KindConflict, KindOf(Conflict("already liked")))
	assert.Equal(t, KindInternal, KindOf(errors.New("raw database error")))
	assert.Equal(t, KindInternal, KindOf(Internal("boom", errors.New("cause"))))
}

func TestMessageOf_NeverLeaksRawErrors(t *testing.T) {
	raw := errors.New("pq: duplicate key value violates unique constraint")

	assert.Equal(t, "internal server error", MessageOf(raw))
	assert.Equal(t, "failed to save", MessageOf(Internal("failed to save", raw)))
}

func TestWrap_WrapsOnce(t *testing.T) {
	// A service re-wrapping an already-tagged error must not change its kind.
	inner := NotFound("like not found")

	wrapped := Wrap(KindInternal, "failed to unlike", inner)

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, "like not found", MessageOf(wrapped))
}

func TestErrorsIs_MatchesByKind(t *testing.T) {
	err := fmt.Errorf("handling request: %w", Conflict("already liked"))

	assert.True(t, errors.Is(err, Conflict("")))
	assert.False(t, errors.Is(err, NotFound("")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("store failure", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store failure")
}
