package hostinvoke

import (
	"errors"
	"testing"
	"time"

	"github.com/hikayalang/hikaya/internal/herr"
	"github.com/hikayalang/hikaya/internal/values"
)

type stubInvocable struct {
	name   string
	params []string
}

func (s stubInvocable) Name() string          { return s.name }
func (s stubInvocable) ParamTypes() []string  { return s.params }
func (s stubInvocable) Invoke(self values.Value, args []values.Value) (values.Value, error) {
	return values.None{}, nil
}

func TestResolveExactMatchWinsOverWidening(t *testing.T) {
	intOverload := stubInvocable{name: "f(Int)", params: []string{"Int"}}
	floatOverload := stubInvocable{name: "f(Float)", params: []string{"Float"}}
	candidates := []Invocable{floatOverload, intOverload}

	got, err := Resolve(nil, "f", candidates, []string{"Int"}, -1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Name() != "f(Int)" {
		t.Errorf("Resolve picked %q, want the exact-match overload", got.Name())
	}
}

func TestResolveWidensWhenNoExactMatch(t *testing.T) {
	floatOverload := stubInvocable{name: "f(Float)", params: []string{"Float"}}
	candidates := []Invocable{floatOverload}

	got, err := Resolve(nil, "f", candidates, []string{"Int"}, -1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Name() != "f(Float)" {
		t.Errorf("Resolve() = %q, want widened match", got.Name())
	}
}

func TestResolveTieBreaksBySourceOrder(t *testing.T) {
	first := stubInvocable{name: "first", params: []string{"Any"}}
	second := stubInvocable{name: "second", params: []string{"Any"}}
	candidates := []Invocable{first, second}

	got, err := Resolve(nil, "f", candidates, []string{"Text"}, -1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Name() != "first" {
		t.Errorf("Resolve() = %q, want the earlier-declared candidate on a tie", got.Name())
	}
}

func TestResolveArityMismatchIsIncompatible(t *testing.T) {
	candidates := []Invocable{stubInvocable{name: "f", params: []string{"Int", "Int"}}}
	_, err := Resolve(nil, "f", candidates, []string{"Int"}, -1)
	if err == nil {
		t.Fatal("expected arity mismatch to fail resolution")
	}
	re, ok := err.(*herr.RuntimeError)
	if !ok || re.Kind != herr.InvocableNotFound {
		t.Errorf("expected InvocableNotFound, got %v", err)
	}
}

func TestResolveExplicitOrdinalBypassesTypeCheck(t *testing.T) {
	candidates := []Invocable{
		stubInvocable{name: "zeroth", params: []string{"Text"}},
		stubInvocable{name: "first", params: []string{"Int"}},
	}
	got, err := Resolve(nil, "f", candidates, []string{"Int"}, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Name() != "zeroth" {
		t.Errorf("explicit ordinal 0 should select %q regardless of type match, got %q", "zeroth", got.Name())
	}
}

func TestFindMethodsBlocksDuringScan(t *testing.T) {
	r := NewRegistry()
	r.BeginScan()

	done := make(chan struct{})
	go func() {
		_, _ = r.FindMethods("Owner::Method")
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("FindMethods returned before EndScan")
	case <-time.After(20 * time.Millisecond):
	}

	r.RegisterMethod("Owner::Method", stubInvocable{name: "Method"})
	r.EndScan()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("FindMethods did not unblock after EndScan")
	}
}

func TestFindMethodsSurfacesFailScanError(t *testing.T) {
	r := NewRegistry()
	r.BeginScan()
	r.FailScan(errors.New("boom"))

	_, err := r.FindMethods("Owner::Method")
	if err == nil {
		t.Fatal("expected FindMethods to surface the scan failure")
	}
}
