package syntax_test

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dlang-tools/dparse/lexer"
	"github.com/dlang-tools/dparse/syntax"
)

// goldenCase is the shape of one entry in the fixtures below: a source
// snippet plus a YAML-encoded expectation, decoded with yaml.v3 the way the
// teacher decodes structured fixture data elsewhere in the corpus rather
// than hand-rolling a parser for test expectations.
type goldenCase struct {
	Source string `yaml:"source"`
	Want   struct {
		ModuleName   string   `yaml:"moduleName"`
		DeclKinds    []string `yaml:"declKinds"`
		ErrorCount   int      `yaml:"errorCount"`
		WarningCount int      `yaml:"warningCount"`
	} `yaml:"want"`
}

const goldenFixtures = `
- source: |
    module pkg.mod;
    int a;
    void f() {}
  want:
    moduleName: "pkg.mod"
    declKinds: ["VariableDecl", "FunctionDecl"]
    errorCount: 0
    warningCount: 0

- source: |
    module pkg;
    enum Color { Red, Green, Blue }
  want:
    moduleName: "pkg"
    declKinds: ["EnumDecl"]
    errorCount: 0
    warningCount: 0

- source: |
    module pkg;
    alias Legacy = int;
    struct S { int x; }
  want:
    moduleName: "pkg"
    declKinds: ["AliasDecl", "AggregateDecl"]
    errorCount: 0
    warningCount: 0
`

func TestGoldenModuleFixtures(t *testing.T) {
	var cases []goldenCase
	if err := yaml.Unmarshal([]byte(goldenFixtures), &cases); err != nil {
		t.Fatalf("cannot decode golden fixtures: %v", err)
	}

	for i, c := range cases {
		toks := lexer.Tokenize(c.Source)
		var msgs []syntax.Message
		mod, diags := syntax.ParseModule(toks, "golden.d", nil, func(m syntax.Message) {
			msgs = append(msgs, m)
		}, syntax.DefaultOptions())

		if mod.ModuleDecl == nil {
			t.Errorf("case %d: expected a module declaration", i)
			continue
		}
		if got := mod.ModuleDecl.ModuleName.String(); got != c.Want.ModuleName {
			t.Errorf("case %d: module name = %q, want %q", i, got, c.Want.ModuleName)
		}
		if len(mod.Declarations) != len(c.Want.DeclKinds) {
			t.Errorf("case %d: got %d declarations, want %d (%v)", i, len(mod.Declarations), len(c.Want.DeclKinds), msgs)
			continue
		}
		for j, d := range mod.Declarations {
			if got := d.Kind().Name(); got != c.Want.DeclKinds[j] {
				t.Errorf("case %d decl %d: kind name = %q, want %q", i, j, got, c.Want.DeclKinds[j])
			}
		}
		if diags.ErrorCount() != c.Want.ErrorCount {
			t.Errorf("case %d: ErrorCount = %d, want %d (%v)", i, diags.ErrorCount(), c.Want.ErrorCount, msgs)
		}
		if diags.WarningCount() != c.Want.WarningCount {
			t.Errorf("case %d: WarningCount = %d, want %d (%v)", i, diags.WarningCount(), c.Want.WarningCount, msgs)
		}
	}
}
