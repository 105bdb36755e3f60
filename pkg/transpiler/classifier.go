package transpiler

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const (
	propDecorator    = "Prop"
	injectDecorator  = "Inject"
	provideDecorator = "Provide"
	watchDecorator   = "Watch"
)

// LifecycleHooks are the method names the framework calls itself. They are
// emitted as top-level options instead of under methods.
var LifecycleHooks = []string{
	"beforeCreate",
	"created",
	"beforeMount",
	"mounted",
	"beforeUpdate",
	"updated",
	"beforeDestroy",
	"destroyed",
	"activated",
	"deactivated",
	"errorCaptured",
	"serverPrefetch",
}

var lifecycleHooks = func() map[string]bool {
	m := make(map[string]bool, len(LifecycleHooks))
	for _, h := range LifecycleHooks {
		m[h] = true
	}
	return m
}()

// memberDecorators is the recognized decorator set of one member. Only the
// call form counts; a nil entry means the decorator is absent.
type memberDecorators struct {
	prop, inject, provide, watch *decoratorCall
}

func (u *SourceUnit) readMemberDecorators(nodes []*sitter.Node) memberDecorators {
	var md memberDecorators
	for _, n := range nodes {
		dc, ok := u.readDecorator(n)
		if !ok || !dc.Call {
			continue
		}
		var slot **decoratorCall
		switch dc.Name {
		case propDecorator:
			slot = &md.prop
		case injectDecorator:
			slot = &md.inject
		case provideDecorator:
			slot = &md.provide
		case watchDecorator:
			slot = &md.watch
		default:
			continue
		}
		if *slot == nil {
			call := dc
			*slot = &call
		}
	}
	return md
}

// classMember is a class body member together with its decorators.
type classMember struct {
	node       *sitter.Node
	decorators []*sitter.Node
}

// Classify routes every member of the declared class into its option bucket.
// Members that produce nothing are returned as skipped.
func Classify(decl *Declaration, unit *SourceUnit) (*FragmentSet, []SkippedMember) {
	set := &FragmentSet{}
	var skipped []SkippedMember
	for _, m := range classMembers(decl.Class) {
		classified, reason := unit.classifyMember(m)
		if reason != "" {
			skipped = append(skipped, SkippedMember{Name: unit.Text(m.node.ChildByFieldName("name")), Reason: reason})
			continue
		}
		for _, c := range classified {
			set.add(c)
		}
	}
	return set, skipped
}

// classMembers lists the body members of class. Method decorators are
// siblings preceding the method in the grammar, field decorators are
// children; both end up on the member.
func classMembers(class *sitter.Node) []classMember {
	body := class.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var members []classMember
	var pending []*sitter.Node
	for _, child := range namedChildren(body) {
		if child.Type() == "decorator" {
			pending = append(pending, child)
			continue
		}
		decorators := append(pending, childrenOfType(child, "decorator")...)
		pending = nil
		members = append(members, classMember{node: child, decorators: decorators})
	}
	return members
}

// classifyMember maps one member to its fragments. A non-empty reason means
// the member was dropped.
func (u *SourceUnit) classifyMember(m classMember) ([]ClassifiedMember, string) {
	switch m.node.Type() {
	case "public_field_definition", "field_definition":
		if hasToken(m.node, "abstract") || hasToken(m.node, "declare") {
			return nil, "type-only field"
		}
		name, ok := u.memberName(m.node)
		if !ok {
			return nil, "no static name"
		}
		return u.classifyField(m, name), ""
	case "method_definition":
		if hasToken(m.node, "abstract") {
			return nil, "abstract method"
		}
		if m.node.ChildByFieldName("body") == nil {
			return nil, "method without body"
		}
		name, ok := u.memberName(m.node)
		if !ok {
			return nil, "no static name"
		}
		if hasToken(m.node, "set") {
			return nil, "setter"
		}
		if hasToken(m.node, "get") {
			return []ClassifiedMember{{Bucket: BucketComputed, Key: name, Fragment: u.renderFunction(m.node, name)}}, ""
		}
		return []ClassifiedMember{u.classifyMethod(m, name)}, ""
	case "abstract_method_signature":
		return nil, "abstract method"
	case "method_signature":
		return nil, "method without body"
	default:
		return nil, "unsupported member " + m.node.Type()
	}
}

func (u *SourceUnit) classifyField(m classMember, name string) []ClassifiedMember {
	md := u.readMemberDecorators(m.decorators)
	init := "undefined"
	value := m.node.ChildByFieldName("value")
	if value != nil {
		init = u.Text(value)
	}

	switch {
	case md.prop != nil:
		typ := "null"
		if len(md.prop.Args) > 0 {
			typ = u.Text(md.prop.Args[0])
		}
		fragment := name + ":" + typ
		if value != nil {
			fragment = name + ":{type:" + typ + ",default:" + init + "}"
		}
		return []ClassifiedMember{{Bucket: BucketProp, Key: name, Fragment: fragment}}

	case md.inject != nil:
		key := quoteName(name)
		if len(md.inject.Args) > 0 {
			key = u.Text(md.inject.Args[0])
		}
		return []ClassifiedMember{{Bucket: BucketInject, Key: name, Fragment: name + ": " + key}}
	}

	out := []ClassifiedMember{{Bucket: BucketData, Key: name, Fragment: name + ":" + init}}
	if md.provide != nil {
		key := quoteName(name)
		if len(md.provide.Args) > 0 {
			key = u.propertyKey(md.provide.Args[0])
		}
		out = append(out, ClassifiedMember{Bucket: BucketProvide, Key: key, Fragment: key + ": " + thisRef(name)})
	}
	return out
}

func (u *SourceUnit) classifyMethod(m classMember, name string) ClassifiedMember {
	md := u.readMemberDecorators(m.decorators)
	if md.watch != nil && len(md.watch.Args) > 0 {
		key := u.propertyKey(md.watch.Args[0])
		return ClassifiedMember{Bucket: BucketWatch, Key: key, Fragment: u.renderFunction(m.node, key)}
	}
	bucket := BucketMethod
	if lifecycleHooks[name] {
		bucket = BucketHook
	}
	return ClassifiedMember{Bucket: bucket, Key: name, Fragment: u.renderFunction(m.node, name)}
}

// memberName returns the static name of a member as it may appear as an
// object literal key.
func (u *SourceUnit) memberName(n *sitter.Node) (string, bool) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return "", false
	}
	switch name.Type() {
	case "property_identifier", "identifier", "string", "number":
		return u.Text(name), true
	case "computed_property_name":
		inner := namedChildren(name)
		if len(inner) == 1 && (inner[0].Type() == "string" || inner[0].Type() == "number") {
			return u.Text(inner[0]), true
		}
	}
	return "", false
}

// propertyKey renders a decorator argument as an object literal key. Literals
// are used as written, anything else becomes a computed key.
func (u *SourceUnit) propertyKey(arg *sitter.Node) string {
	switch arg.Type() {
	case "string", "number":
		return u.Text(arg)
	}
	return "[" + u.Text(arg) + "]"
}

// renderFunction renders a function-like member as an object literal method
// named key. Parameters keep only their binding pattern; the body is copied
// verbatim.
func (u *SourceUnit) renderFunction(n *sitter.Node, key string) string {
	var b strings.Builder
	if hasToken(n, "async") {
		b.WriteString("async ")
	}
	if hasToken(n, "*") {
		b.WriteString("*")
	}
	b.WriteString(key)
	b.WriteString("(")
	b.WriteString(strings.Join(u.parameterNames(n.ChildByFieldName("parameters")), ","))
	b.WriteString(")")
	b.WriteString(u.Text(n.ChildByFieldName("body")))
	return b.String()
}

func (u *SourceUnit) parameterNames(params *sitter.Node) []string {
	var names []string
	for _, p := range namedChildren(params) {
		pattern := p.ChildByFieldName("pattern")
		if pattern == nil {
			for _, child := range namedChildren(p) {
				switch child.Type() {
				case "decorator", "accessibility_modifier", "override_modifier", "type_annotation":
					continue
				}
				pattern = child
				break
			}
		}
		// a "this" parameter only types the receiver
		if pattern == nil || pattern.Type() == "this" {
			continue
		}
		names = append(names, u.Text(pattern))
	}
	return names
}

// quoteName turns a member name into a string literal.
func quoteName(name string) string {
	if strings.HasPrefix(name, "'") || strings.HasPrefix(name, `"`) {
		return name
	}
	return "'" + name + "'"
}

// thisRef renders an access to the member name on this.
func thisRef(name string) string {
	if isIdentifier(name) {
		return "this." + name
	}
	return "this[" + name + "]"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		case r > 0x7f:
		default:
			return false
		}
	}
	return true
}
