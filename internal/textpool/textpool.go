// Package textpool implements the interning pool the pp core consumes as
// its "text pool" collaborator: intern(text) -> id,
// resolve(id) -> str, plus a styled() convenience that caches the UTF-8
// byte length alongside the interned id.
//
// Grounded on github.com/jcorbin/soc's internal/scanio.ByteArena: a single
// growable backing buffer handed out as small immutable token handles, here
// keyed by string content instead of by byte offsets, since pp texts are
// typically repeated literals (indentation strings, punctuation, keywords)
// that benefit from de-duplication across the whole HIR stream.
package textpool

import "github.com/jcorbin/pp/style"

// ID is an opaque handle to an interned string. The zero ID is the handle
// of the first string a Pool interns.
type ID struct {
	index int
}

// Pool interns strings, handing out small ID handles that can be resolved
// back to their text. Once layout starts consuming a Pool's ids, the Pool
// is effectively read-only; Pool itself does not enforce that,
// since the engine never calls Intern after construction finishes.
//
// The zero value is an empty Pool ready for interning, the same way a zero
// bytes.Buffer is ready to write to; New is a convenience, not a
// requirement.
type Pool struct {
	strings []string
	index map[string]int
}

// New returns an empty Pool ready for interning.
func New() *Pool {
	return &Pool{}
}

// Intern returns the ID for s, reusing an existing entry if s was already
// interned.
func (p *Pool) Intern(s string) ID {
	if i, ok := p.index[s]; ok {
		return ID{index: i}
	}
	i := len(p.strings)
	p.strings = append(p.strings, s)
	if p.index == nil {
		p.index = make(map[string]int)
	}
	p.index[s] = i
	return ID{index: i}
}

// Resolve returns the string an ID refers to. Panics if id was not produced
// by this Pool (an out-of-range index), matching an arena's
// panicking Slice on bad ranges rather than silently returning "".
func (p *Pool) Resolve(id ID) string {
	return p.strings[id.index]
}

// Handle is a (text_id, byte_length, style) triple: the pp core's Text
// handle. The byte length is the UTF-8 byte length of the
// underlying string, cached here so line-fit checks never re-measure text.
type Handle struct {
	ID ID
	ByteLen int
	Style style.Style
}

// Styled interns text and returns a Handle carrying its cached byte length
// and the given style.
func (p *Pool) Styled(text string, s style.Style) Handle {
	id := p.Intern(text)
	return Handle{ID: id, ByteLen: len(text), Style: s}
}

// Resolve returns the text underlying h, via pool.
func (h Handle) Resolve(pool *Pool) string {
	return pool.Resolve(h.ID)
}

// Resolver resolves an interned ID back to its text. *Pool satisfies it;
// callers that only need to read back text (never intern more) can depend
// on this narrower interface instead of the concrete Pool type.
type Resolver interface {
	Resolve(id ID) string
}
