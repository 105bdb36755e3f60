package transpiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(t *testing.T, body string) (*FragmentSet, []SkippedMember) {
	t.Helper()
	unit := parseUnit(t, "@Component\nexport default class Foo extends Vue {\n"+body+"\n}\n")
	decl, err := Locate(unit, DefaultRootType)
	require.NoError(t, err)
	return Classify(decl, unit)
}

func assertFragments(t *testing.T, set *FragmentSet, b Bucket, want []string) {
	t.Helper()
	if diff := cmp.Diff(want, set.Fragments(b)); diff != "" {
		t.Errorf("%s fragments mismatch (-want +got):\n%s", b, diff)
	}
}

func TestClassify_RoundTripScenario(t *testing.T) {
	set, skipped := classify(t, `@Prop(Number) x = 1; get y(){return this.x*2;} mounted(){console.log('go');}`)

	assert.Empty(t, skipped)
	assertFragments(t, set, BucketProp, []string{"x:{type:Number,default:1}"})
	assertFragments(t, set, BucketComputed, []string{"y(){return this.x*2;}"})
	assertFragments(t, set, BucketHook, []string{"mounted(){console.log('go');}"})
	assert.Zero(t, set.Len(BucketMethod))
	assert.Zero(t, set.Len(BucketData))
}

func TestClassify_Props(t *testing.T) {
	set, _ := classify(t, `
	@Prop(String) readonly label!: string;
	@Prop({ type: Array }) items: string[] = [];
	@Prop() anything: any;
	@Prop(Number) count: number = 3;
`)
	assertFragments(t, set, BucketProp, []string{
		"label:String",
		"items:{type:{ type: Array },default:[]}",
		"anything:null",
		"count:{type:Number,default:3}",
	})
}

func TestClassify_Inject(t *testing.T) {
	set, _ := classify(t, `
	@Inject() foo!: string;
	@Inject('themeKey') theme!: string;
	@Inject(SERVICE) service!: Service;
`)
	assertFragments(t, set, BucketInject, []string{
		"foo: 'foo'",
		"theme: 'themeKey'",
		"service: SERVICE",
	})
	assert.Zero(t, set.Len(BucketData))
}

func TestClassify_DataAndProvide(t *testing.T) {
	set, _ := classify(t, `
	message = 'hello';
	empty: string;
	@Provide('color') color = 'red';
	@Provide() size = 10;
	@Provide(SIZE_KEY) other = 2;
	'odd-name' = true;
	@Provide() 'odd-key' = 1;
`)
	assertFragments(t, set, BucketData, []string{
		"message:'hello'",
		"empty:undefined",
		"color:'red'",
		"size:10",
		"other:2",
		"'odd-name':true",
		"'odd-key':1",
	})
	assertFragments(t, set, BucketProvide, []string{
		"'color': this.color",
		"'size': this.size",
		"[SIZE_KEY]: this.other",
		"'odd-key': this['odd-key']",
	})
}

func TestClassify_PropTakesPrecedenceOverInjectAndProvide(t *testing.T) {
	set, _ := classify(t, `@Prop(String) @Inject() @Provide() both = 'x';`)

	assertFragments(t, set, BucketProp, []string{"both:{type:String,default:'x'}"})
	assert.Zero(t, set.Len(BucketInject))
	assert.Zero(t, set.Len(BucketProvide))
	assert.Zero(t, set.Len(BucketData))
}

func TestClassify_BareDecoratorIsIgnored(t *testing.T) {
	set, _ := classify(t, `@Prop value = 1;`)

	assert.Zero(t, set.Len(BucketProp))
	assertFragments(t, set, BucketData, []string{"value:1"})
}

func TestClassify_Watchers(t *testing.T) {
	set, _ := classify(t, `
	@Watch('value')
	onValueChanged(val: string, oldVal: string) { this.log(val); }

	@Watch('value', { deep: true })
	async syncValue(val: string) { await this.save(val); }

	@Watch(PATH)
	onPath() {}

	@Watch()
	notAWatcher() {}
`)
	members := set.Members(BucketWatch)
	require.Len(t, members, 3)
	assert.Equal(t, "'value'", members[0].Key)
	assert.Equal(t, "'value'", members[1].Key)
	assert.Equal(t, "[PATH]", members[2].Key)
	assertFragments(t, set, BucketWatch, []string{
		"'value'(val,oldVal){ this.log(val); }",
		"async 'value'(val){ await this.save(val); }",
		"[PATH](){}",
	})
	assertFragments(t, set, BucketMethod, []string{"notAWatcher(){}"})
}

func TestClassify_WatchBeatsLifecycleRouting(t *testing.T) {
	set, _ := classify(t, `@Watch('ready') mounted() {}`)

	assertFragments(t, set, BucketWatch, []string{"'ready'(){}"})
	assert.Zero(t, set.Len(BucketHook))
}

func TestClassify_LifecycleHooksAndMethods(t *testing.T) {
	set, _ := classify(t, `
	created() { this.init(); }
	init() { this.ready = true; }
	beforeDestroy() {}
	async serverPrefetch() { await this.load(); }
	refresh() {}
`)
	assertFragments(t, set, BucketHook, []string{
		"created(){ this.init(); }",
		"beforeDestroy(){}",
		"async serverPrefetch(){ await this.load(); }",
	})
	assertFragments(t, set, BucketMethod, []string{
		"init(){ this.ready = true; }",
		"refresh(){}",
	})
}

func TestClassify_AllLifecycleHooksAreTopLevel(t *testing.T) {
	for _, hook := range LifecycleHooks {
		t.Run(hook, func(t *testing.T) {
			set, _ := classify(t, hook+"() {}")
			assertFragments(t, set, BucketHook, []string{hook + "(){}"})
			assert.Zero(t, set.Len(BucketMethod))
		})
	}
}

func TestClassify_FunctionRendering(t *testing.T) {
	set, _ := classify(t, `
	public greet(name: string, greeting: string = 'hi', opts?: Options): string { return greeting + name; }
	collect(this: Foo, ...rest: number[]) { return rest; }
	pick({ a, b }: Pair, [first]: number[]) { return a + b + first; }
	*ids() { yield 1; }
	private async load<T>(url: string): Promise<T> { return fetch(url) as any; }
`)
	assertFragments(t, set, BucketMethod, []string{
		"greet(name,greeting,opts){ return greeting + name; }",
		"collect(...rest){ return rest; }",
		"pick({ a, b },[first]){ return a + b + first; }",
		"*ids(){ yield 1; }",
		"async load(url){ return fetch(url) as any; }",
	})
}

func TestClassify_AbstractMembersAreDropped(t *testing.T) {
	unit := parseUnit(t, `@Component
export default abstract class Foo extends Base {
	abstract load(): void;
	abstract readonly title: string;
	declare ref: HTMLElement;
	save() { this.load(); }
}
`)
	decl, err := Locate(unit, DefaultRootType)
	require.NoError(t, err)

	set, skipped := Classify(decl, unit)
	assertFragments(t, set, BucketMethod, []string{"save(){ this.load(); }"})
	assert.Zero(t, set.Len(BucketData))
	assert.Len(t, skipped, 3)

	again, _ := Classify(decl, unit)
	assert.Equal(t, set, again)
}

func TestClassify_SkipsMembersWithoutStaticName(t *testing.T) {
	set, skipped := classify(t, `
	[Symbol.iterator]() { return null; }
	#secret = 1;
	['literal']() { return 1; }
	set value(v: number) { this.x = v; }
	get value() { return this.x; }
	overload(a: string): void;
	overload(a: any) {}
`)
	assertFragments(t, set, BucketMethod, []string{
		"'literal'(){ return 1; }",
		"overload(a){}",
	})
	assertFragments(t, set, BucketComputed, []string{"value(){ return this.x; }"})
	assert.Zero(t, set.Len(BucketData))

	reasons := make([]string, 0, len(skipped))
	for _, s := range skipped {
		reasons = append(reasons, s.Reason)
	}
	assert.Equal(t, []string{"no static name", "no static name", "setter", "method without body"}, reasons)
}

func TestClassify_PreservesDeclarationOrder(t *testing.T) {
	set, _ := classify(t, `
	c() {}
	a = 1;
	b() {}
	z = 2;
	a2() {}
`)
	assertFragments(t, set, BucketMethod, []string{"c(){}", "b(){}", "a2(){}"})
	assertFragments(t, set, BucketData, []string{"a:1", "z:2"})
}
