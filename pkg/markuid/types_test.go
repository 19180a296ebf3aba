package markuid

import (
	"errors"
	"strings"
	"testing"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OperationCheck, "check"},
		{OperationUpdate, "update"},
		{OperationRemove, "remove"},
		{Operation(42), "Unknown(42)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Operation(%d).String() = %q, want %q", int(tt.op), got, tt.want)
		}
	}
}

func TestOperation_IsValidAndMutates(t *testing.T) {
	if !OperationCheck.IsValid() || !OperationRemove.IsValid() {
		t.Error("defined operations should be valid")
	}
	if Operation(-1).IsValid() || Operation(3).IsValid() {
		t.Error("undefined operations should be invalid")
	}
	if OperationCheck.Mutates() {
		t.Error("check must not mutate")
	}
	if !OperationUpdate.Mutates() || !OperationRemove.Mutates() {
		t.Error("update and remove mutate")
	}
}

func TestDiagnostic_String(t *testing.T) {
	absent := Diagnostic{File: "Main.xaml", Element: "Button", Line: 3, Column: 5, Kind: DiagnosticAbsent}
	if got := absent.String(); got != "Main.xaml(3,5): element <Button> has no identifier" {
		t.Errorf("unexpected absent format: %q", got)
	}

	dup := Diagnostic{File: "Main.xaml", Element: "Grid", Line: 7, Column: 9, Kind: DiagnosticDuplicate, Value: "abc"}
	if !strings.Contains(dup.String(), `duplicate identifier "abc"`) {
		t.Errorf("unexpected duplicate format: %q", dup.String())
	}
}

func TestRunResult_Counters(t *testing.T) {
	rr := RunResult{
		Results: []FileResult{
			{Path: "a", Valid: true},
			{Path: "b", Valid: false, Changed: true},
			{Path: "c", Err: errors.New("x")},
		},
	}
	if got := rr.InvalidFiles(); got != 1 {
		t.Errorf("InvalidFiles() = %d, want 1", got)
	}
	if got := rr.ChangedFiles(); got != 1 {
		t.Errorf("ChangedFiles() = %d, want 1", got)
	}
}
