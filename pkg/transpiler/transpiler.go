package transpiler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/imlargo/vpd-transpiler/pkg/template"
)

// Transpiler turns a decorated class component into a framework options
// object. It holds configuration only and is safe for concurrent use.
type Transpiler struct {
	framework string
	rootType  string
	target    api.Target
	compiler  template.Compiler
	logger    *slog.Logger
}

// Option configures a Transpiler.
type Option func(*Transpiler)

// WithFramework sets the global object used for registration ("Vue").
func WithFramework(name string) Option {
	return func(t *Transpiler) {
		if name != "" {
			t.framework = name
		}
	}
}

// WithRootType sets the framework base class; other base classes become
// mixins.
func WithRootType(name string) Option {
	return func(t *Transpiler) {
		if name != "" {
			t.rootType = name
		}
	}
}

// WithTarget sets the language level of the emitted code.
func WithTarget(target api.Target) Option {
	return func(t *Transpiler) {
		t.target = target
	}
}

// WithTemplateCompiler sets the compiler used for template markup.
func WithTemplateCompiler(c template.Compiler) Option {
	return func(t *Transpiler) {
		t.compiler = c
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transpiler) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Transpiler.
func New(opts ...Option) *Transpiler {
	t := &Transpiler{
		framework: DefaultFramework,
		rootType:  DefaultRootType,
		target:    api.ESNext,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TranspileComponent parses in.Source, locates the component class,
// classifies its members and emits the options statement.
func (t *Transpiler) TranspileComponent(ctx context.Context, in Input) (*Result, error) {
	unit, err := Parse(ctx, in.Source)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	defer unit.Close()

	if unit.HasError() {
		t.logger.WarnContext(ctx, "source contains syntax errors, continuing with recovered tree")
	}

	decl, err := Locate(unit, t.rootType)
	if err != nil {
		return nil, err
	}
	t.logger.DebugContext(ctx, "component located",
		slog.String("class", decl.ClassName),
		slog.Int("mixins_kind", int(decl.Option.Mixins.Kind)))

	set, skipped := Classify(decl, unit)
	for _, s := range skipped {
		t.logger.DebugContext(ctx, "member skipped",
			slog.String("member", s.Name),
			slog.String("reason", s.Reason))
	}
	if t.logger.Enabled(ctx, slog.LevelDebug) {
		attrs := make([]any, 0, bucketCount)
		for b := Bucket(0); b < bucketCount; b++ {
			attrs = append(attrs, slog.Int(b.String(), set.Len(b)))
		}
		t.logger.DebugContext(ctx, "members classified", attrs...)
	}

	emitter := &Emitter{
		Framework: t.framework,
		Compiler:  t.compiler,
		Target:    t.target,
		Logger:    t.logger,
	}
	script, err := emitter.Emit(decl, set, in.Template, in.Mode)
	if err != nil {
		return nil, err
	}

	res := &Result{Script: script}
	if in.Template == "" {
		res.TemplateID = templateID(decl.Option)
	}
	return res, nil
}
