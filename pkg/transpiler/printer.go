package transpiler

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

var targets = map[string]api.Target{
	"es2015": api.ES2015,
	"es2016": api.ES2016,
	"es2017": api.ES2017,
	"es2018": api.ES2018,
	"es2019": api.ES2019,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"es2023": api.ES2023,
	"es2024": api.ES2024,
	"esnext": api.ESNext,
}

// ParseTarget maps a language level name such as "es2017" to an esbuild
// target. The empty string selects esnext.
func ParseTarget(name string) (api.Target, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return api.ESNext, nil
	}
	t, ok := targets[name]
	if !ok {
		return api.DefaultTarget, fmt.Errorf("unknown target %q", name)
	}
	return t, nil
}

// lower prints the assembled TypeScript statement as JavaScript for target.
// Type syntax left in copied member text is stripped here; nothing else
// changes besides syntax lowering.
func lower(code string, target api.Target) (string, error) {
	result := api.Transform(code, api.TransformOptions{
		Loader: api.LoaderTS,
		Target: target,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, m := range result.Errors {
			if m.Location != nil {
				msgs = append(msgs, fmt.Sprintf("%d:%d: %s", m.Location.Line, m.Location.Column, m.Text))
				continue
			}
			msgs = append(msgs, m.Text)
		}
		return "", fmt.Errorf("%w: %s", ErrLowering, strings.Join(msgs, "; "))
	}
	return string(result.Code), nil
}
