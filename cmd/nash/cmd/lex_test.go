package cmd

import "testing"

func TestLexInputFromEvalFlag(t *testing.T) {
	old := lexExpr
	lexExpr = "var x = 1;"
	defer func() { lexExpr = old }()

	got, err := lexInput(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "var x = 1;" {
		t.Fatalf("got = %q", got)
	}
}

func TestLexInputFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, `out("hi");`)

	old := lexExpr
	lexExpr = ""
	defer func() { lexExpr = old }()

	got, err := lexInput([]string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `out("hi");` {
		t.Fatalf("got = %q", got)
	}
}
