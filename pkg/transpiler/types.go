package transpiler

import sitter "github.com/smacker/go-tree-sitter"

// Mode selects the shape of the emitted statement.
type Mode int

const (
	// ModeGlobal wraps the options in a global registration call.
	ModeGlobal Mode = iota
	// ModeConstant binds the options to a bare named constant.
	ModeConstant
)

func (m Mode) String() string {
	switch m {
	case ModeGlobal:
		return "global"
	case ModeConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// MixinsKind tags where a component's mixin list comes from.
type MixinsKind int

const (
	NoMixins MixinsKind = iota
	FromBaseType
	FromExpression
)

// Mixins is the resolved mixin source. Text is the base type name for
// FromBaseType and the raw expression for FromExpression.
type Mixins struct {
	Kind MixinsKind
	Text string
}

// ComponentOption holds what the @Component decorator and the class heritage
// contribute to the component.
type ComponentOption struct {
	Name     *string
	Template *string
	Mixins   Mixins
}

// Declaration is the located component class.
type Declaration struct {
	Class     *sitter.Node
	ClassName string
	Option    ComponentOption
}

// Bucket is an option bucket a member is routed to.
type Bucket int

const (
	BucketProp Bucket = iota
	BucketData
	BucketInject
	BucketProvide
	BucketComputed
	BucketWatch
	BucketHook
	BucketMethod

	bucketCount
)

var bucketNames = [bucketCount]string{
	BucketProp:     "props",
	BucketData:     "data",
	BucketInject:   "inject",
	BucketProvide:  "provide",
	BucketComputed: "computed",
	BucketWatch:    "watch",
	BucketHook:     "hooks",
	BucketMethod:   "methods",
}

func (b Bucket) String() string {
	if b < 0 || b >= bucketCount {
		return "unknown"
	}
	return bucketNames[b]
}

// ClassifiedMember is one rendered fragment and the bucket it belongs to.
// Key is the option key the fragment defines.
type ClassifiedMember struct {
	Bucket   Bucket
	Key      string
	Fragment string
}

// FragmentSet accumulates classified members per bucket in source order.
type FragmentSet struct {
	buckets [bucketCount][]ClassifiedMember
}

func (s *FragmentSet) add(m ClassifiedMember) {
	s.buckets[m.Bucket] = append(s.buckets[m.Bucket], m)
}

// Members returns the members routed to b, in declaration order.
func (s *FragmentSet) Members(b Bucket) []ClassifiedMember {
	return s.buckets[b]
}

// Fragments returns the rendered fragments of b, in declaration order.
func (s *FragmentSet) Fragments(b Bucket) []string {
	members := s.buckets[b]
	if len(members) == 0 {
		return nil
	}
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Fragment
	}
	return out
}

// Len reports the number of fragments in b.
func (s *FragmentSet) Len(b Bucket) int {
	return len(s.buckets[b])
}

// SkippedMember records a class member that produced no fragment.
type SkippedMember struct {
	Name   string
	Reason string
}

// Input is one transpilation request.
type Input struct {
	// Source is the TypeScript module text.
	Source string
	// Template is optional template markup. When set it is compiled into a
	// render function and overrides any inline template option.
	Template string
	Mode     Mode
}

// Result is the output of a transpilation.
type Result struct {
	// Script holds the emitted statement.
	Script string
	// TemplateID is the element id when the inline template option uses the
	// "#id" selector form.
	TemplateID string
}
