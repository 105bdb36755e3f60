// Package template defines the template compiler the transpiler calls to turn
// template markup into render functions.
package template

import (
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrEmptyMarkup is returned when there is no markup to compile.
var ErrEmptyMarkup = errors.New("empty template markup")

// Compiled is the output of a template compilation: raw function bodies,
// without the surrounding function syntax.
type Compiled struct {
	Render          string
	StaticRenderFns []string
}

// Compiler compiles template markup. Implementations must be safe for
// concurrent use.
type Compiler interface {
	Compile(markup string) (Compiled, error)
}

// Func adapts a plain function to Compiler.
type Func func(markup string) (Compiled, error)

// Compile calls f.
func (f Func) Compile(markup string) (Compiled, error) {
	if strings.TrimSpace(markup) == "" {
		return Compiled{}, ErrEmptyMarkup
	}
	return f(markup)
}

// Cache memoizes a Compiler by markup text.
type Cache struct {
	next    Compiler
	entries *lru.Cache[string, Compiled]
}

// NewCache wraps next with an LRU cache holding up to size results.
func NewCache(next Compiler, size int) (*Cache, error) {
	entries, err := lru.New[string, Compiled](size)
	if err != nil {
		return nil, fmt.Errorf("template cache: %w", err)
	}
	return &Cache{next: next, entries: entries}, nil
}

// Compile returns the cached result for markup or compiles and stores it.
// Failed compilations are not cached.
func (c *Cache) Compile(markup string) (Compiled, error) {
	if out, ok := c.entries.Get(markup); ok {
		return out, nil
	}
	out, err := c.next.Compile(markup)
	if err != nil {
		return Compiled{}, err
	}
	c.entries.Add(markup, out)
	return out, nil
}

// Len reports the number of cached results.
func (c *Cache) Len() int {
	return c.entries.Len()
}
