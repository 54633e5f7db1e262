package textpool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/pp/internal/textpool"
	"github.com/jcorbin/pp/style"
)

func TestPool_zeroValueReady(t *testing.T) {
	var pool textpool.Pool
	id := pool.Intern("hello")
	assert.Equal(t, "hello", pool.Resolve(id))
}

func TestPool_internDedupes(t *testing.T) {
	pool := new(textpool.Pool)
	a := pool.Intern("foo")
	b := pool.Intern("bar")
	c := pool.Intern("foo")
	assert.Equal(t, a, c, "repeated content reuses the same id")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "foo", pool.Resolve(a))
	assert.Equal(t, "bar", pool.Resolve(b))
}

func TestPool_styledCachesByteLength(t *testing.T) {
	pool := textpool.New()
	h := pool.Styled("héllo", style.Invisible())
	assert.Equal(t, len("héllo"), h.ByteLen, "byte length, not rune count")
	assert.True(t, h.Style.IsInvisible())
	assert.Equal(t, "héllo", h.Resolve(pool))
}

func TestPool_resolvePanicsOnForeignID(t *testing.T) {
	a := new(textpool.Pool)
	b := new(textpool.Pool)
	id := a.Intern("only in a")
	require.Panics(t, func() {
		b.Resolve(id)
	})
}
