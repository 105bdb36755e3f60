package transpiler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/imlargo/vpd-transpiler/pkg/template"
)

// DefaultFramework is the global object components are registered on.
const DefaultFramework = "Vue"

// Emitter assembles classified fragments into the final statement.
type Emitter struct {
	// Framework is the global object that owns component(), e.g. "Vue".
	Framework string
	// Compiler turns template markup into render functions. Only needed when
	// markup is supplied.
	Compiler template.Compiler
	Target   api.Target
	Logger   *slog.Logger
}

// Emit assembles the options object for decl and prints it for the
// configured target.
func (e *Emitter) Emit(decl *Declaration, set *FragmentSet, markup string, mode Mode) (string, error) {
	stmt, err := e.Assemble(decl, set, markup, mode)
	if err != nil {
		return "", err
	}
	return lower(stmt, e.Target)
}

// Assemble builds the statement text without lowering it. Fragments are
// concatenated as opaque text.
func (e *Emitter) Assemble(decl *Declaration, set *FragmentSet, markup string, mode Mode) (string, error) {
	name, err := resolveName(decl)
	if err != nil {
		return "", err
	}

	var options []string

	if markup != "" {
		if e.Compiler == nil {
			return "", fmt.Errorf("%w: markup supplied without a template compiler", ErrUnresolvedTemplate)
		}
		compiled, err := e.Compiler.Compile(markup)
		if err != nil {
			return "", fmt.Errorf("compile template: %w", err)
		}
		options = append(options, "render(){"+compiled.Render+"}")
		if len(compiled.StaticRenderFns) > 0 {
			fns := make([]string, len(compiled.StaticRenderFns))
			for i, body := range compiled.StaticRenderFns {
				fns[i] = "function(){" + body + "}"
			}
			options = append(options, "staticRenderFns: ["+strings.Join(fns, ",")+"]")
		}
	}

	switch m := decl.Option.Mixins; m.Kind {
	case FromBaseType:
		options = append(options, "mixins: ["+m.Text+"]")
	case FromExpression:
		options = append(options, "mixins: "+m.Text)
	}

	if markup == "" {
		if decl.Option.Template == nil {
			return "", fmt.Errorf("%w: component %q has no template markup and no template option", ErrUnresolvedTemplate, name)
		}
		options = append(options, "template: "+jsString(*decl.Option.Template))
	}

	e.warnDuplicateWatchers(name, set)

	if f := set.Fragments(BucketData); len(f) > 0 {
		options = append(options, "data() { return { "+strings.Join(f, ",")+" }; }")
	}
	if f := set.Fragments(BucketProp); len(f) > 0 {
		options = append(options, "props: { "+strings.Join(f, ",")+" }")
	}
	if f := set.Fragments(BucketProvide); len(f) > 0 {
		options = append(options, "provide() { return { "+strings.Join(f, ",")+" }; }")
	}
	if f := set.Fragments(BucketInject); len(f) > 0 {
		options = append(options, "inject: { "+strings.Join(f, ",")+" }")
	}
	if f := set.Fragments(BucketWatch); len(f) > 0 {
		options = append(options, "watch: { "+strings.Join(f, ",")+" }")
	}
	if f := set.Fragments(BucketComputed); len(f) > 0 {
		options = append(options, "computed: { "+strings.Join(f, ",")+" }")
	}
	if f := set.Fragments(BucketMethod); len(f) > 0 {
		options = append(options, "methods: { "+strings.Join(f, ",")+" }")
	}
	options = append(options, set.Fragments(BucketHook)...)

	body := "{ " + strings.Join(options, ",") + " }"

	if mode == ModeConstant {
		ident := decl.ClassName
		if ident == "" {
			ident = name
		}
		if !isIdentifier(ident) {
			return "", fmt.Errorf("%w: %q is not a valid constant name", ErrUnresolvedName, ident)
		}
		return "const " + ident + " = " + body + ";", nil
	}

	framework := e.Framework
	if framework == "" {
		framework = DefaultFramework
	}
	return framework + ".component(" + jsString(strings.ToLower(name)) + ", " + body + ");", nil
}

// warnDuplicateWatchers logs watch keys declared more than once. All entries
// are still emitted; the last one wins at runtime.
func (e *Emitter) warnDuplicateWatchers(component string, set *FragmentSet) {
	seen := make(map[string]int)
	for _, m := range set.Members(BucketWatch) {
		seen[m.Key]++
		if seen[m.Key] == 2 {
			e.logger().Warn("multiple watchers on the same path, the last one wins",
				slog.String("component", component),
				slog.String("path", m.Key))
		}
	}
}

func (e *Emitter) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// resolveName returns the explicit name option or the class identifier.
func resolveName(decl *Declaration) (string, error) {
	if decl.Option.Name != nil && *decl.Option.Name != "" {
		return *decl.Option.Name, nil
	}
	if decl.ClassName != "" {
		return decl.ClassName, nil
	}
	return "", ErrUnresolvedName
}

// templateID returns the element id referenced by a "#id" template option.
func templateID(opt ComponentOption) string {
	if opt.Template == nil {
		return ""
	}
	if id, ok := strings.CutPrefix(*opt.Template, "#"); ok {
		return id
	}
	return ""
}

// jsString renders s as a single-quoted JavaScript string literal.
func jsString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\u2028':
			b.WriteString(`\u2028`)
		case '\u2029':
			b.WriteString(`\u2029`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
