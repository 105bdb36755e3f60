package transpiler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// SourceUnit is a parsed TypeScript module. It is read-only once returned by
// Parse and must be closed by the caller.
type SourceUnit struct {
	tree *sitter.Tree
	src  []byte
}

// Parse builds a SourceUnit from module text. A fresh tree-sitter parser is
// created per call so concurrent calls share nothing.
func Parse(ctx context.Context, code string) (*SourceUnit, error) {
	src := []byte(code)
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidSource)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	return &SourceUnit{tree: tree, src: src}, nil
}

// Root returns the program node.
func (u *SourceUnit) Root() *sitter.Node {
	return u.tree.RootNode()
}

// Text returns the original text spanned by n.
func (u *SourceUnit) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(u.src)
}

// HasError reports whether the parser had to recover from syntax errors.
func (u *SourceUnit) HasError() bool {
	return u.Root().HasError()
}

// Close releases the syntax tree.
func (u *SourceUnit) Close() {
	if u.tree != nil {
		u.tree.Close()
	}
}

// decoratorCall is a decorator reduced to its name and argument nodes.
// Call is false for the bare "@Name" form.
type decoratorCall struct {
	Name string
	Call bool
	Args []*sitter.Node
}

// readDecorator interprets a decorator node. Member-expression and other
// decorator shapes are reported as not recognized.
func (u *SourceUnit) readDecorator(n *sitter.Node) (decoratorCall, bool) {
	if n == nil || n.Type() != "decorator" {
		return decoratorCall{}, false
	}
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "identifier":
			return decoratorCall{Name: u.Text(child)}, true
		case "call_expression":
			fn := child.ChildByFieldName("function")
			if fn == nil || fn.Type() != "identifier" {
				return decoratorCall{}, false
			}
			return decoratorCall{
				Name: u.Text(fn),
				Call: true,
				Args: namedChildren(child.ChildByFieldName("arguments")),
			}, true
		}
	}
	return decoratorCall{}, false
}

// namedChildren returns the named children of n without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// hasToken reports whether n has a direct anonymous child with the given type,
// e.g. "async", "get", "default".
func hasToken(n *sitter.Node, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && !child.IsNamed() && child.Type() == token {
			return true
		}
	}
	return false
}

// stringValue decodes a string literal node. ok is false for anything that is
// not a plain string literal.
func (u *SourceUnit) stringValue(n *sitter.Node) (string, bool) {
	if n == nil || n.Type() != "string" {
		return "", false
	}
	var b strings.Builder
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "string_fragment":
			b.WriteString(u.Text(child))
		case "escape_sequence":
			b.WriteString(unescape(u.Text(child)))
		}
	}
	return b.String(), true
}

// unescape decodes one JavaScript escape sequence.
func unescape(seq string) string {
	if len(seq) < 2 || seq[0] != '\\' {
		return seq
	}
	switch seq[1] {
	case 'n':
		return "\n"
	case 't':
		return "\t"
	case 'r':
		return "\r"
	case 'b':
		return "\b"
	case 'f':
		return "\f"
	case 'v':
		return "\v"
	case '0':
		return "\x00"
	case '\n', '\r':
		// line continuation
		return ""
	case 'x', 'u':
		hex := strings.Trim(seq[2:], "{}")
		if r, err := strconv.ParseUint(hex, 16, 32); err == nil {
			return string(rune(r))
		}
		return seq
	default:
		return seq[1:]
	}
}
