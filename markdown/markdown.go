// Package markdown bridges a parsed blackfriday document into an HIR op
// stream: rather than re-serializing the tree back into markdown bytes,
// ToOps re-renders it as Builder calls, so the line-breaking engine gets to
// decide where paragraphs actually wrap.
//
// Container context (list ordering, item numbering, blockquote depth) is
// tracked as a nested renderContext stack pushed and popped across a
// blackfriday.Node.Walk, the same shape a hand-rolled markdown-to-markdown
// writer would use, minus the byte-buffer indentation bookkeeping the
// Builder's Indent/Outdent ops already do.
package markdown

import (
	"strconv"
	"strings"

	"github.com/russross/blackfriday"
	"github.com/shurcooL/sanitized_anchor_name"

	"github.com/jcorbin/pp"
	"github.com/jcorbin/pp/style"
)

// wordWrapLevel is the conditional break level used between the words of a
// paragraph or heading: the one place this package lets the printer choose
// whether to actually take a break.
const wordWrapLevel = 0

// Extensions are the blackfriday parser extensions ToOps expects to have
// been enabled (Tables and DefinitionLists are deliberately left off: there
// is no rendering support for either below).
const Extensions = blackfriday.NoIntraEmphasis |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.HeadingIDs |
	blackfriday.BackslashLineBreak

// Parse parses source with the package's standard extension set.
func Parse(source []byte) *blackfriday.Node {
	md := blackfriday.New(blackfriday.WithExtensions(Extensions))
	return md.Parse(source)
}

// HeadingAnchor records one heading's rendered text and the anchor ToOps
// generated for it, for callers that want to build a table of contents
// alongside the laid-out document.
type HeadingAnchor struct {
	Level  int
	Text   string
	Anchor string
}

// ToOps walks doc and appends the equivalent HIR ops to b, returning the
// headings encountered in document order. It does not call b.Done; the
// caller decides when the op stream is complete.
func ToOps(doc *blackfriday.Node, b *pp.Builder) []HeadingAnchor {
	w := &writer{b: b}
	doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		return w.visit(n, entering)
	})
	return w.headings
}

// renderContext is the piece of writer state that must nest with the
// container a List, Item, or BlockQuote opens: which list item we're on,
// and whether it's ordered. Pushed/popped by enter.
type renderContext struct {
	nextItem int
	ordered  bool
}

type writer struct {
	b *pp.Builder

	stack []renderContext
	renderContext

	styleStack []style.Style
	curStyle   style.Style

	// hasContent and needBreak track word-wrap state across Text node
	// boundaries within the current block, so "foo *bar*" still gets a
	// break opportunity between "foo" and "bar" even though the space
	// belongs to a sibling Text node's literal, not Emph's.
	hasContent bool
	needBreak  bool
	blankLine  bool

	headings     []HeadingAnchor
	inHeading    bool
	headingText  strings.Builder
	headingLevel int

	// bodyStarted reports whether anything has been emitted yet, so the
	// very first block in the document doesn't open with a spurious
	// break opportunity.
	bodyStarted bool
}

// br emits a block-separating break, unless nothing has been written yet.
func (w *writer) br() {
	if w.bodyStarted {
		w.b.Br()
	}
}

func (w *writer) enter(entering bool) bool {
	if entering {
		w.stack = append(w.stack, w.renderContext)
		return true
	}
	if i := len(w.stack) - 1; i >= 0 {
		w.renderContext = w.stack[i]
		w.stack = w.stack[:i]
	} else {
		w.renderContext = renderContext{}
	}
	return false
}

func (w *writer) pushStyle(s style.Style) {
	w.styleStack = append(w.styleStack, w.curStyle)
	w.curStyle = s
}

func (w *writer) popStyle() {
	if n := len(w.styleStack); n > 0 {
		w.curStyle = w.styleStack[n-1]
		w.styleStack = w.styleStack[:n-1]
		return
	}
	w.curStyle = style.Normal()
}

// startBlock resets the word-wrap tracking at the top of a new block-level
// element, so its first word never gets a spurious leading break.
func (w *writer) startBlock() {
	w.hasContent = false
	w.needBreak = false
	w.blankLine = false
}

func (w *writer) visit(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	switch node.Type {
	case blackfriday.Document:
		// nothing: Builder.Done appends EOF once the caller is ready.

	case blackfriday.Heading:
		if entering {
			w.br()
			w.startBlock()
			w.inHeading = true
			w.headingLevel = node.Level
			w.headingText.Reset()
			w.b.Start(pp.GenerateBreakID())
			w.pushStyle(w.curStyle.Bold())
			w.b.Styled(strings.Repeat("#", node.Level), w.curStyle)
			w.b.Space(" ")
			w.bodyStarted = true
		} else {
			w.popStyle()
			text := strings.TrimSpace(w.headingText.String())
			anchor := sanitized_anchor_name.Create(text)
			w.headings = append(w.headings, HeadingAnchor{Level: w.headingLevel, Text: text, Anchor: anchor})
			w.b.Space(" ")
			w.b.StyledAt("{#"+anchor+"}", style.Invisible(), pp.PlacementInterior)
			w.b.End()
			w.bodyStarted = true
			w.inHeading = false
		}

	case blackfriday.List:
		if w.enter(entering) {
			w.ordered = node.ListFlags&blackfriday.ListTypeOrdered != 0
			w.nextItem = 1
			if node.Parent.Type != blackfriday.Item {
				w.br()
			}
			w.b.IndentOp()
		} else {
			w.b.OutdentOp()
		}

	case blackfriday.Item:
		if w.enter(entering) {
			w.br()
			w.startBlock()
			var marker string
			if w.ordered {
				marker = strconv.Itoa(w.nextItem) + ". "
			} else {
				bc := node.BulletChar
				if bc == 0 {
					bc = '-'
				}
				marker = string(bc) + " "
			}
			w.b.TextAt(marker, pp.PlacementExterior)
			w.bodyStarted = true
		} else {
			w.nextItem++
		}

	case blackfriday.BlockQuote:
		if w.enter(entering) {
			w.b.IndentOp()
			w.b.TextAt("> ", pp.PlacementExterior)
			w.bodyStarted = true
		} else {
			w.b.OutdentOp()
		}

	case blackfriday.Paragraph:
		if entering && (node.Parent.Type != blackfriday.Item || node != node.Parent.FirstChild) {
			w.br()
			w.startBlock()
		}

	case blackfriday.HorizontalRule:
		w.br()
		w.b.Text("---")
		w.bodyStarted = true
		w.b.Br()

	// Emph/Strong/Del/Link render through style rather than literal markup:
	// there is no back-end that would see the asterisks or brackets anyway,
	// only a Style carried on the bounded run underneath them.
	case blackfriday.Emph:
		if entering {
			w.pushStyle(w.curStyle.Italic())
		} else {
			w.popStyle()
		}

	case blackfriday.Strong:
		if entering {
			w.pushStyle(w.curStyle.Bold())
		} else {
			w.popStyle()
		}

	case blackfriday.Del:
		if entering {
			w.pushStyle(w.curStyle.Strikethrough())
		} else {
			w.popStyle()
		}

	case blackfriday.Link:
		if entering {
			w.pushStyle(w.curStyle.Underline())
		} else {
			w.popStyle()
			w.emitWord("(" + string(node.Destination) + ")")
		}

	case blackfriday.Image:
		if entering {
			w.emitWord("![")
		} else {
			w.emitWord("](" + string(node.Destination) + ")")
		}

	case blackfriday.Text:
		if entering {
			w.emitText(string(node.Literal))
		}

	case blackfriday.CodeBlock:
		w.br()
		w.startBlock()
		w.b.TextAt("```"+string(node.Info), pp.PlacementExterior)
		w.bodyStarted = true
		w.b.Br()
		for _, line := range strings.Split(strings.TrimSuffix(string(node.Literal), "\n"), "\n") {
			w.b.Styled(line, w.curStyle)
			w.b.Br()
		}
		w.b.TextAt("```", pp.PlacementExterior)
		w.b.Br()

	case blackfriday.Code:
		w.emitWord("`" + string(node.Literal) + "`")

	case blackfriday.Hardbreak:
		w.b.Br()
		w.needBreak = false
	case blackfriday.Softbreak:
		if w.hasContent {
			w.needBreak = true
		}

	case blackfriday.HTMLSpan, blackfriday.HTMLBlock:
		w.emitWord(string(node.Literal))

	default:
		if entering {
			w.br()
			w.b.StyledAt("{unsupported "+node.Type.String()+"}", style.Invisible(), pp.PlacementAnywhere)
			w.bodyStarted = true
		}
	}
	return blackfriday.GoToNext
}

// emitText tokenizes literal into words and intervening whitespace,
// inserting a conditional break opportunity (plus the collapsible space
// that goes with it) between words, and an unconditional break wherever
// the source had a blank line.
func (w *writer) emitText(literal string) {
	i, n := 0, len(literal)
	for i < n {
		start := i
		for i < n && isSpace(literal[i]) {
			i++
		}
		if i > start {
			ws := literal[start:i]
			if w.hasContent {
				if strings.Count(ws, "\n") >= 2 {
					w.blankLine = true
				} else {
					w.needBreak = true
				}
			}
		}

		start = i
		for i < n && !isSpace(literal[i]) {
			i++
		}
		if i > start {
			w.emitWord(literal[start:i])
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// emitWord flushes any pending break opportunity and writes one atomic,
// unsplittable run of text under the current style.
func (w *writer) emitWord(word string) {
	if word == "" {
		return
	}
	if w.blankLine {
		w.b.Br()
		w.blankLine, w.needBreak = false, false
	} else if w.needBreak {
		w.b.Wbr(wordWrapLevel)
		w.b.Space(" ")
		w.needBreak = false
	}
	w.b.Styled(word, w.curStyle)
	w.hasContent = true
	w.bodyStarted = true
	if w.inHeading {
		w.headingText.WriteString(word)
		w.headingText.WriteByte(' ')
	}
}
