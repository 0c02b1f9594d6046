package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Without a connected client every operation degrades to a no-op: reads
// miss, writes succeed silently. The catalog cache and sessions rely on
// this when Redis is absent in development.
func TestDegradesWithoutClient(t *testing.T) {
	prev := RDB
	RDB = nil
	t.Cleanup(func() { RDB = prev })

	var out []string
	assert.False(t, Get("catalog:approved", &out))
	assert.Empty(t, out)

	assert.NoError(t, Set("catalog:approved", []string{"prd_1"}, time.Minute))
	assert.NoError(t, Del("catalog:approved"))
	assert.NoError(t, Forget("catalog:approved"))
}
