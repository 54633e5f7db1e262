package pp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/pp"
	"github.com/jcorbin/pp/internal/textpool"
	"github.com/jcorbin/pp/style"
)

func TestPrintable(t *testing.T) {
	pool := new(textpool.Pool)
	h := pool.Styled("hello", style.Normal())

	assert.Equal(t, "hello", fmt.Sprintf("%v", pp.Printable(h, pool)))
	assert.Equal(t, `"hello" style=`+fmt.Sprintf("%+v", style.Normal()), fmt.Sprintf("%+v", pp.Printable(h, pool)))
}

func TestPrintable_resolverOnlyNeedsResolve(t *testing.T) {
	// Resolver is the narrow interface: any type with Resolve(ID) string
	// works, not just *textpool.Pool.
	pool := new(textpool.Pool)
	h := pool.Styled("hi", style.Normal())

	var resolver textpool.Resolver = pool
	assert.Equal(t, "hi", fmt.Sprintf("%v", pp.Printable(h, resolver)))
}
