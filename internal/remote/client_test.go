package remote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClient_NotImplemented(t *testing.T) {
	c := NewClient()

	user, err := c.FetchCurrentUser(context.Background(), "token")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrNotImplemented)

	usage, err := c.FetchCurrentPeriodUsage(context.Background(), "token")
	assert.Nil(t, usage)
	assert.ErrorIs(t, err, ErrNotImplemented)
}
