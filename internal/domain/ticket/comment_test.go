package ticket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComment(t *testing.T) {
	c, err := NewComment(3, "  needs a reboot ")
	require.NoError(t, err)

	assert.Equal(t, uint(3), c.TicketID())
	assert.Equal(t, "needs a reboot", c.Text())
	assert.Zero(t, c.ID())
	assert.False(t, c.CreatedAt().IsZero())
}

func TestNewComment_Invalid(t *testing.T) {
	_, err := NewComment(0, "text")
	assert.Error(t, err)

	_, err = NewComment(1, "")
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = NewComment(1, "\t ")
	assert.ErrorIs(t, err, ErrEmptyComment)
}

func TestReconstructComment(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	c, err := ReconstructComment(5, 2, "ok", at)
	require.NoError(t, err)
	assert.Equal(t, uint(5), c.ID())
	assert.Equal(t, at, c.CreatedAt())

	_, err = ReconstructComment(0, 2, "ok", at)
	assert.Error(t, err)
	_, err = ReconstructComment(5, 0, "ok", at)
	assert.Error(t, err)
}

func TestComment_SetID(t *testing.T) {
	c, err := NewComment(1, "x")
	require.NoError(t, err)

	require.NoError(t, c.SetID(10))
	assert.Error(t, c.SetID(11))
}
