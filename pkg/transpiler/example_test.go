package transpiler_test

import (
	"context"
	"fmt"
	"os"

	"github.com/imlargo/vpd-transpiler/pkg/template"
	"github.com/imlargo/vpd-transpiler/pkg/transpiler"
)

func Example() {
	source := `import { Component, Prop, Vue } from 'vue-property-decorator';

@Component
export default class Counter extends Vue {
	@Prop(Number) start = 0;
	count = this.start;

	get double() { return this.count * 2; }
	inc(step: number = 1) { this.count += step; }
	mounted() { console.log('ready'); }
}
`
	// A real compiler turns markup into render code; this one is a stand-in.
	compiler := template.Func(func(markup string) (template.Compiled, error) {
		return template.Compiled{Render: fmt.Sprintf("return this.$createElement('div', %q)", markup)}, nil
	})

	tr := transpiler.New(transpiler.WithTemplateCompiler(compiler))
	res, err := tr.TranspileComponent(context.Background(), transpiler.Input{
		Source:   source,
		Template: "<button @click=\"inc()\">{{ double }}</button>",
		Mode:     transpiler.ModeGlobal,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Print(res.Script)
}
