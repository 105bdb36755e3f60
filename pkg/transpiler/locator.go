package transpiler

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	componentDecorator = "Component"
	// DefaultRootType is the framework base class components extend.
	DefaultRootType = "Vue"
)

// mixinsHelpers are heritage calls that list mixins, as in
// "extends Mixins(A, B)".
var mixinsHelpers = map[string]bool{"Mixins": true, "mixins": true}

// Locate finds the first default-exported class decorated with @Component and
// resolves its component option. rootType is the framework base class; any
// other base class is folded into the mixin list.
func Locate(unit *SourceUnit, rootType string) (*Declaration, error) {
	if rootType == "" {
		rootType = DefaultRootType
	}
	for _, stmt := range namedChildren(unit.Root()) {
		if stmt.Type() != "export_statement" || !hasToken(stmt, "default") {
			continue
		}
		class := exportedClass(stmt)
		if class == nil {
			continue
		}

		decorators := append(childrenOfType(stmt, "decorator"), childrenOfType(class, "decorator")...)
		opt, ok := unit.componentOption(decorators)
		if !ok {
			continue
		}
		if m := unit.heritageMixins(class, rootType); m.Kind != NoMixins {
			opt.Mixins = m
		}

		return &Declaration{
			Class:     class,
			ClassName: unit.Text(class.ChildByFieldName("name")),
			Option:    opt,
		}, nil
	}
	return nil, ErrDeclarationNotFound
}

// exportedClass returns the class carried by an export statement, or nil.
func exportedClass(stmt *sitter.Node) *sitter.Node {
	for _, field := range []string{"declaration", "value"} {
		n := stmt.ChildByFieldName(field)
		if n == nil {
			continue
		}
		switch n.Type() {
		case "class_declaration", "abstract_class_declaration", "class":
			return n
		}
	}
	return nil
}

func childrenOfType(n *sitter.Node, typ string) []*sitter.Node {
	var out []*sitter.Node
	for _, child := range namedChildren(n) {
		if child.Type() == typ {
			out = append(out, child)
		}
	}
	return out
}

// componentOption reads the @Component decorator. ok is false when the
// decorator is absent.
func (u *SourceUnit) componentOption(decorators []*sitter.Node) (ComponentOption, bool) {
	for _, d := range decorators {
		dc, ok := u.readDecorator(d)
		if !ok || dc.Name != componentDecorator {
			continue
		}
		var opt ComponentOption
		if !dc.Call || len(dc.Args) == 0 || dc.Args[0].Type() != "object" {
			return opt, true
		}
		for _, prop := range namedChildren(dc.Args[0]) {
			if prop.Type() != "pair" {
				continue
			}
			key := prop.ChildByFieldName("key")
			value := prop.ChildByFieldName("value")
			if key == nil || value == nil || key.Type() != "property_identifier" {
				continue
			}
			switch u.Text(key) {
			case "name":
				if s, ok := u.stringValue(value); ok {
					opt.Name = &s
				}
			case "template":
				if s, ok := u.stringValue(value); ok {
					opt.Template = &s
				}
			case "mixins":
				opt.Mixins = Mixins{Kind: FromExpression, Text: u.Text(value)}
			}
		}
		return opt, true
	}
	return ComponentOption{}, false
}

// heritageMixins resolves the first extends clause of class.
func (u *SourceUnit) heritageMixins(class *sitter.Node, rootType string) Mixins {
	heritage := childrenOfType(class, "class_heritage")
	if len(heritage) == 0 {
		return Mixins{}
	}
	extends := childrenOfType(heritage[0], "extends_clause")
	if len(extends) == 0 {
		return Mixins{}
	}
	base := extends[0].ChildByFieldName("value")
	if base == nil {
		for _, child := range namedChildren(extends[0]) {
			if child.Type() != "type_arguments" {
				base = child
				break
			}
		}
	}
	if base == nil {
		return Mixins{}
	}

	if base.Type() == "call_expression" {
		fn := base.ChildByFieldName("function")
		if fn != nil && mixinsHelpers[u.Text(fn)] {
			var args []string
			for _, arg := range namedChildren(base.ChildByFieldName("arguments")) {
				args = append(args, u.Text(arg))
			}
			return Mixins{Kind: FromExpression, Text: "[" + strings.Join(args, ", ") + "]"}
		}
	}

	name := u.Text(base)
	if name == rootType {
		return Mixins{}
	}
	return Mixins{Kind: FromBaseType, Text: name}
}
