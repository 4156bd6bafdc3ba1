package imports

import (
	"testing"

	"github.com/hikayalang/hikaya/internal/context"
)

func newRootT(t *testing.T) *context.Context {
	t.Helper()
	context.Reset()
	ResetGlobal()
	root, err := context.Register(nil, nil)
	if err != nil {
		t.Fatalf("Register(nil): %v", err)
	}
	return root
}

func TestResolveBlockLocalAlias(t *testing.T) {
	root := newRootT(t)
	if err := root.DefineBlockImport(nil, "io", "std::io"); err != nil {
		t.Fatalf("DefineBlockImport: %v", err)
	}

	got, ok := Resolve(root, "io")
	if !ok || got != "std::io" {
		t.Errorf("Resolve(io) = (%q, %v), want (std::io, true)", got, ok)
	}
}

func TestResolveWalksAncestorChain(t *testing.T) {
	root := newRootT(t)
	if err := root.DefineBlockImport(nil, "io", "std::io"); err != nil {
		t.Fatalf("DefineBlockImport: %v", err)
	}
	child, err := context.Register(root, nil)
	if err != nil {
		t.Fatalf("Register(root): %v", err)
	}

	got, ok := Resolve(child, "io")
	if !ok || got != "std::io" {
		t.Errorf("Resolve(io) from child = (%q, %v), want (std::io, true)", got, ok)
	}
}

func TestResolveFallsBackToGlobal(t *testing.T) {
	root := newRootT(t)
	RegisterGlobal("math", "std::math")

	got, ok := Resolve(root, "math")
	if !ok || got != "std::math" {
		t.Errorf("Resolve(math) = (%q, %v), want (std::math, true)", got, ok)
	}
}

func TestResolveQualifiedAliasAppendsRemainder(t *testing.T) {
	root := newRootT(t)
	if err := root.DefineBlockImport(nil, "io", "std::io"); err != nil {
		t.Fatalf("DefineBlockImport: %v", err)
	}

	got, ok := Resolve(root, "io::Reader::open")
	if !ok || got != "std::io::Reader::open" {
		t.Errorf("Resolve(io::Reader::open) = (%q, %v), want (std::io::Reader::open, true)", got, ok)
	}
}

func TestResolveSiblingBlockImportNotVisible(t *testing.T) {
	root := newRootT(t)
	a, err := context.Register(root, nil)
	if err != nil {
		t.Fatalf("Register a: %v", err)
	}
	b, err := context.Register(root, nil)
	if err != nil {
		t.Fatalf("Register b: %v", err)
	}
	if err := a.DefineBlockImport(nil, "io", "std::io"); err != nil {
		t.Fatalf("DefineBlockImport: %v", err)
	}

	if _, ok := Resolve(b, "io"); ok {
		t.Error("a sibling block's import should not be visible in b")
	}
}

func TestResolveUnknownAliasFails(t *testing.T) {
	root := newRootT(t)
	if _, ok := Resolve(root, "nope"); ok {
		t.Error("expected Resolve of an unregistered alias to fail")
	}
}

func TestDefineBlockImportRejectsAliasCollision(t *testing.T) {
	root := newRootT(t)
	if err := root.DefineBlockImport(nil, "io", "std::io"); err != nil {
		t.Fatalf("first DefineBlockImport: %v", err)
	}
	if err := root.DefineBlockImport(nil, "io", "other::io"); err == nil {
		t.Fatal("expected a second import under the same alias to be rejected")
	}
}
