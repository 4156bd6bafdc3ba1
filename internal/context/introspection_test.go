package context

import (
	"testing"

	"github.com/hikayalang/hikaya/internal/decl"
	"github.com/hikayalang/hikaya/internal/values"
)

func TestListDeclarationsSnapshotsLocalScope(t *testing.T) {
	root := newRootT(t)
	v := decl.NewVariable("x", root.Depth, nil, false, "")
	if err := v.Set(values.Int(1)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := root.DefineVariable(nil, v); err != nil {
		t.Fatalf("DefineVariable: %v", err)
	}

	decls := root.ListDeclarations()
	if len(decls.Variables) != 1 || decls.Variables[0].Name != "x" {
		t.Fatalf("expected one variable named x, got %+v", decls.Variables)
	}
}

func TestDropVariableRemovesLocalBinding(t *testing.T) {
	root := newRootT(t)
	v := decl.NewVariable("x", root.Depth, nil, false, "")
	if err := root.DefineVariable(nil, v); err != nil {
		t.Fatalf("DefineVariable: %v", err)
	}

	if !root.DropVariable("x") {
		t.Fatal("expected DropVariable to report the binding existed")
	}
	if root.DropVariable("x") {
		t.Fatal("expected a second DropVariable to report absence")
	}
}

func TestDeregisterSessionMergesDeclarationsRegardlessOfDepth(t *testing.T) {
	root := newRootT(t)
	session, err := Register(root, nil)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	v := decl.NewVariable("greeting", session.Depth, nil, false, "")
	if err := v.Set(values.Int(7)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := session.DefineVariable(nil, v); err != nil {
		t.Fatalf("DefineVariable: %v", err)
	}

	DeregisterSession(session)

	if _, ok := root.LookupVariable("greeting"); !ok {
		t.Fatal("expected session's declaration to be merged into root")
	}
}
