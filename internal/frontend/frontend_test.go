package frontend

import "testing"

func TestUnimplementedReportsFilename(t *testing.T) {
	f := Unimplemented()
	program, errs := f.Parse("script.hky", "anything")
	if program != nil {
		t.Fatal("expected a nil program")
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d", len(errs))
	}
	if got := errs[0].Error(); got == "" {
		t.Fatal("expected a non-empty error message")
	}
}
