package decl

import (
	"testing"

	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
)

func TestVariableSetOnceForConstant(t *testing.T) {
	v := NewVariable("x", 1, nil, true, "")

	if err := v.Set(values.Int(1)); err != nil {
		t.Fatalf("first Set on constant failed: %v", err)
	}
	err := v.Set(values.Int(2))
	if err == nil {
		t.Fatal("expected second Set on constant to fail")
	}
	re, ok := err.(*herr.RuntimeError)
	if !ok || re.Kind != herr.ConstantReassignment {
		t.Errorf("expected ConstantReassignment, got %v", err)
	}
}

func TestVariableMutableAllowsRepeatedSet(t *testing.T) {
	v := NewVariable("x", 1, nil, false, "")

	if err := v.Set(values.Int(1)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := v.Set(values.Int(2)); err != nil {
		t.Fatalf("second Set on mutable variable failed: %v", err)
	}
	got, err := v.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	n, _ := got.(values.Number).AsInt64()
	if n != 2 {
		t.Errorf("Get() = %v, want 2", got)
	}
}

func TestVariableGetAutoUnwrapsResult(t *testing.T) {
	v := NewVariable("x", 1, nil, false, "")
	_ = v.Set(values.ResultOk(values.Int(42)))

	got, err := v.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	n, ok := got.(values.Number).AsInt64()
	if !ok || n != 42 {
		t.Errorf("Get() did not auto-unwrap Result.Ok, got %v", got)
	}

	raw := v.RawGet()
	if _, ok := raw.(values.Result); !ok {
		t.Errorf("RawGet() should retain the Result tag, got %T", raw)
	}
}

func TestVariableGetDefaultsToNone(t *testing.T) {
	v := NewVariable("x", 1, nil, false, "")
	got, err := v.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, ok := got.(values.None); !ok {
		t.Errorf("unset variable should read as None, got %T", got)
	}
}
