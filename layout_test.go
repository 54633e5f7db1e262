package pp_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/pp"
	"github.com/jcorbin/pp/backend"
	"github.com/jcorbin/pp/internal/textpool"
	"github.com/jcorbin/pp/style"
)

// mustRender is render's Example-function counterpart: Example functions
// don't get a *testing.T, so a malformed op stream or layout failure here
// panics instead of calling t.Fatal.
func mustRender(width uint, build func(*pp.Builder)) string {
	pool := new(textpool.Pool)
	b := pp.NewBuilder(pool)
	build(b)
	ops, err := b.Done()
	if err != nil {
		panic(err)
	}

	cfg := pp.NewPrintConfig(width)
	lir, err := pp.Layout(ops, cfg)
	if err != nil {
		panic(err)
	}

	var out backend.String
	if err := pp.Print(lir, pool, cfg, &out); err != nil {
		panic(err)
	}
	return out.String()
}

// Example_s1 is scenario S1: a single word always ends with a break.
func Example_s1() {
	fmt.Print(mustRender(80, func(b *pp.Builder) {
		b.Text("hello")
	}))
	// Output:
	// hello
}

func s2(b *pp.Builder) {
	b.Text("hello")
	b.Wbr(0)
	b.Text("goodbye")
}

// Example_s2Fits is scenario S2 at a width the pair fits on one line.
func Example_s2Fits() {
	fmt.Print(mustRender(80, s2))
	// Output:
	// hellogoodbye
}

// Example_s2Wraps is scenario S2 at a width forcing the wbr(0) to be taken.
func Example_s2Wraps() {
	fmt.Print(mustRender(7, s2))
	// Output:
	// hello
	// goodbye
}

func s3(b *pp.Builder) {
	b.Text("hello")
	b.Text("(")
	b.Wbr(0)
	b.Text("this")
	b.Wbr(1)
	b.Text("is")
	b.Wbr(1)
	b.Text("inside")
	b.Wbr(0)
	b.Text(")")
}

// Example_s3Fits is scenario S3 at a width where nothing wraps.
func Example_s3Fits() {
	fmt.Print(mustRender(80, s3))
	// Output:
	// hello(thisisinside)
}

// Example_s3OuterWrap is scenario S3 at a width that takes only the
// outer, level-0 breaks, leaving the level-1 breaks between them skipped.
func Example_s3OuterWrap() {
	fmt.Print(mustRender(12, s3))
	// Output:
	// hello(
	// thisisinside
	// )
}

// Example_s3AllWrap is scenario S3 at a width narrow enough to also take
// the inner, level-1 breaks.
func Example_s3AllWrap() {
	fmt.Print(mustRender(7, s3))
	// Output:
	// hello(
	// this
	// is
	// inside
	// )
}

func s4(b *pp.Builder) {
	b.Text("hello")
	b.Text("(")
	b.Wbr(1)
	b.Text("this")
	b.Wbr(2)
	b.Space(" ")
	b.Text("is")
	b.Wbr(2)
	b.Space(" ")
	b.Text("inside")
	b.Wbr(1)
	b.Text(")")
}

// Example_s4Fits is scenario S4 at a width where nothing wraps, so the
// collapsible spaces between words survive.
func Example_s4Fits() {
	fmt.Print(mustRender(80, s4))
	// Output:
	// hello(this is inside)
}

// Example_s4OuterWrap is scenario S4 at a width that takes only the
// outer, level-1 breaks, keeping "this is inside" on one interior line.
func Example_s4OuterWrap() {
	fmt.Print(mustRender(14, s4))
	// Output:
	// hello(
	// this is inside
	// )
}

// Example_s4AllWrap is scenario S4 at a width narrow enough to also take
// the inner, level-2 breaks, dropping the now-line-edge spaces.
func Example_s4AllWrap() {
	fmt.Print(mustRender(7, s4))
	// Output:
	// hello(
	// this
	// is
	// inside
	// )
}

func s5(b *pp.Builder) {
	b.Text("hello")
	b.Text("(")
	b.Nest(0, func(b *pp.Builder) {
		b.Group(func(b *pp.Builder) {
			b.Text("this")
			b.Wbr(0)
			b.Space(" ")
			b.Text("is")
			b.Wbr(0)
			b.Space(" ")
			b.Text("inside")
		})
	})
	b.Wbr(0)
	b.Text(")")
}

// Example_s5Fits is scenario S5 at a width where the nested group fits on
// its own indented line.
func Example_s5Fits() {
	fmt.Print(mustRender(16, s5))
	// Output:
	// hello(
	//   this is inside
	// )
}

// Example_s5Wraps is scenario S5 at a width narrow enough to also wrap
// the nested group's own word-wrap breaks.
func Example_s5Wraps() {
	fmt.Print(mustRender(14, s5))
	// Output:
	// hello(
	//   this
	//   is
	//   inside
	// )
}

func s6(b *pp.Builder) {
	b.Group(func(b *pp.Builder) {
		b.Group(func(b *pp.Builder) {
			b.Text("hello")
			b.Wbr(1)
			b.Space(" ")
			b.Text("world")
		})
		b.Wbr(0)
		b.Space(" ")
		b.Group(func(b *pp.Builder) {
			b.Text("hellooooo")
			b.Wbr(1)
			b.Space(" ")
			b.Text("world")
		})
	})
}

// Example_s6Fits is scenario S6 at a width where both atomic sub-groups
// fit on their own.
func Example_s6Fits() {
	fmt.Print(mustRender(15, s6))
	// Output:
	// hello world
	// hellooooo world
}

// Example_s6OneWraps is scenario S6 at a width where only the second,
// wider sub-group must wrap internally; the first is unaffected.
func Example_s6OneWraps() {
	fmt.Print(mustRender(14, s6))
	// Output:
	// hello world
	// hellooooo
	// world
}

// Example_s6BothWrap is scenario S6 at a width narrow enough that both
// atomic sub-groups wrap internally, each independent of the other.
func Example_s6BothWrap() {
	fmt.Print(mustRender(10, s6))
	// Output:
	// hello
	// world
	// hellooooo
	// world
}

// render builds ops via build, lays them out at width, and prints the
// result through a plain backend.String, for tests that want to assert on
// exact rendered bytes.
func render(t *testing.T, width uint, build func(*pp.Builder)) string {
	t.Helper()
	pool := new(textpool.Pool)
	b := pp.NewBuilder(pool)
	build(b)
	ops, err := b.Done()
	require.NoError(t, err)

	cfg := pp.NewPrintConfig(width)
	lir, err := pp.Layout(ops, cfg)
	require.NoError(t, err)

	var out backend.String
	require.NoError(t, pp.Print(lir, pool, cfg, &out))
	return out.String()
}

func TestLayout_singleWordAlwaysEndsWithABreak(t *testing.T) {
	out := render(t, 80, func(b *pp.Builder) {
		b.Text("hello")
	})
	assert.Equal(t, "hello\n", out)
}

func TestLayout_unconditionalBreak(t *testing.T) {
	out := render(t, 80, func(b *pp.Builder) {
		b.Text("foo")
		b.Br()
		b.Text("bar")
	})
	assert.Equal(t, "foo\nbar\n", out)
}

func TestLayout_conditionalBreakTakenOnlyWhenNeeded(t *testing.T) {
	build := func(b *pp.Builder) {
		b.Text("alpha")
		b.Wbr(0)
		b.Space(" ")
		b.Text("beta")
	}
	assert.Equal(t, "alpha beta\n", render(t, 80, build), "fits on one line, so the space is kept")
	assert.Equal(t, "alpha\nbeta\n", render(t, 7, build), "must wrap, and the collapsible space is dropped at the line edge")
}

func TestLayout_indentCarriesOntoTheFollowingLine(t *testing.T) {
	out := render(t, 80, func(b *pp.Builder) {
		b.Text("a")
		b.Br()
		b.IndentOp()
		b.Text("b")
		b.Br()
		b.OutdentOp()
		b.Text("c")
	})
	assert.Equal(t, "a\n  b\nc\n", out, "a break's indent is rendered on the line it precedes, not the one it ends")
}

func TestLayout_deeperIndentUsesMoreChars(t *testing.T) {
	out := render(t, 80, func(b *pp.Builder) {
		b.Text("a")
		b.Br()
		b.IndentOp()
		b.IndentOp()
		b.Text("b")
		b.OutdentOp()
		b.OutdentOp()
	})
	assert.Equal(t, "a\n    b\n", out)
}

func TestLayout_missingEOF(t *testing.T) {
	_, err := pp.Layout(nil, pp.NewPrintConfig(80))
	assert.ErrorIs(t, err, pp.ErrMissingEOF)

	pool := new(textpool.Pool)
	ops := []pp.Op{pp.Bounded{Handle: pool.Styled("no terminator", style.Normal()), Placement: pp.PlacementAnywhere}}
	_, err = pp.Layout(ops, pp.NewPrintConfig(80))
	assert.ErrorIs(t, err, pp.ErrMissingEOF, "a stream not ending in EOF must be rejected even though it's otherwise well-formed")
}

func TestBuilder_unbalancedGroupFailsDone(t *testing.T) {
	pool := new(textpool.Pool)
	b := pp.NewBuilder(pool)
	b.Start(pp.GenerateBreakID())
	b.Text("unterminated group")
	_, err := b.Done()
	require.Error(t, err)
	assert.ErrorIs(t, err, pp.ErrUnbalancedGroup)
}

func TestBuilder_unbalancedEndFailsImmediately(t *testing.T) {
	pool := new(textpool.Pool)
	b := pp.NewBuilder(pool)
	b.End()
	_, err := b.Done()
	require.Error(t, err)
	assert.ErrorIs(t, err, pp.ErrUnbalancedGroup)
}

func TestBuilder_unbalancedOutdentFailsImmediately(t *testing.T) {
	pool := new(textpool.Pool)
	b := pp.NewBuilder(pool)
	b.OutdentOp()
	_, err := b.Done()
	require.Error(t, err)
	assert.ErrorIs(t, err, pp.ErrUnbalancedIndentation)
}

func TestBuilder_danglingIndentFailsDone(t *testing.T) {
	pool := new(textpool.Pool)
	b := pp.NewBuilder(pool)
	b.IndentOp()
	b.Text("never outdented")
	_, err := b.Done()
	require.Error(t, err)
	assert.ErrorIs(t, err, pp.ErrUnbalancedIndentation)
}

func TestBuilder_groupScopesBreakDecisionsIndependently(t *testing.T) {
	// Two Groups at the same conditional level are independent BreakIDs:
	// taking (or skipping) the break in one must not affect the other.
	// At width 13 the overflowing line takes the first group's break, and
	// the second group's break, at the same level, stays skipped.
	out := render(t, 13, func(b *pp.Builder) {
		b.Group(func(b *pp.Builder) {
			b.Text("aa")
			b.Wbr(0)
			b.Space(" ")
			b.Text("bb")
		})
		b.Text(" ")
		b.Group(func(b *pp.Builder) {
			b.Text("ccccccc")
			b.Wbr(0)
			b.Space(" ")
			b.Text("dd")
		})
	})
	assert.Equal(t, "aa\nbb ccccccc dd\n", out)
	assert.Contains(t, out, "aa\n", "the first group's break is taken")
	assert.Contains(t, out, "ccccccc dd", "the second group's break is not")
}

func TestLIRBuilder_buildsExactStream(t *testing.T) {
	pool := new(textpool.Pool)
	lir := pp.NewLIRBuilder(pool).
		Text("foo").
		Break(1).
		Text("bar").
		Break(0).
		Done()

	require.Len(t, lir, 4)
	cfg := pp.NewPrintConfig(80)
	var out backend.String
	require.NoError(t, pp.Print(lir, pool, cfg, &out))
	assert.Equal(t, "foo\n  bar\n", out.String())
}

func TestMeasureLIR(t *testing.T) {
	pool := new(textpool.Pool)
	lir := pp.NewLIRBuilder(pool).
		Text("short").
		Break(0).
		Text("a much longer line").
		Break(1).
		Done()

	assert.Equal(t, len("a much longer line"), pp.MeasureLIR(lir, 2))
}
