package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_UnreachableServerReturnsErrors(t *testing.T) {
	c := New("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := c.Get(ctx, "session:abc")
	assert.Error(t, err)
	assert.Error(t, c.Set(ctx, "session:abc", []byte("1"), time.Minute))
	assert.Error(t, c.Delete(ctx, "session:abc"))
	assert.Error(t, c.Ping(ctx))
}
