// ABOUTME: Tests for rerun classification helpers
// ABOUTME: Verifies model_class mapping and redirect path construction

package models

import "testing"

func TestRerunKind_IsValid(t *testing.T) {
	tests := []struct {
		kind RerunKind
		want bool
	}{
		{RerunNotApplicable, true},
		{RerunPending, true},
		{RerunInteractive, true},
		{RerunOrdinary, true},
		{RerunKind(""), false},
		{RerunKind("interactive"), false},
	}

	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.want {
			t.Errorf("RerunKind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestClassifyModel(t *testing.T) {
	tests := []struct {
		name       string
		modelClass string
		targetID   string
		wantKind   RerunKind
		wantURL    string
	}{
		{"interactive client tool", "InteractiveClientTool", "99", RerunInteractive, "tool_runner/rerun?id=99"},
		{"ordinary tool", "Tool", "99", RerunOrdinary, ""},
		{"data manager tool", "DataManagerTool", "99", RerunOrdinary, ""},
		{"empty class", "", "99", RerunOrdinary, ""},
		{"case sensitive", "interactiveclienttool", "99", RerunOrdinary, ""},
		{"target id escaped", "InteractiveClientTool", "a b&c", RerunInteractive, "tool_runner/rerun?id=a+b%26c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyModel(tt.modelClass, tt.targetID)
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.wantKind)
			}
			if got.RedirectURL != tt.wantURL {
				t.Errorf("RedirectURL = %q, want %q", got.RedirectURL, tt.wantURL)
			}
			if got.IsInteractive() != (tt.wantKind == RerunInteractive) {
				t.Errorf("IsInteractive() = %v", got.IsInteractive())
			}
		})
	}
}

func TestClassificationConstructors(t *testing.T) {
	if NotApplicable().Kind != RerunNotApplicable {
		t.Error("NotApplicable() has wrong kind")
	}
	if Pending().Kind != RerunPending {
		t.Error("Pending() has wrong kind")
	}
	if Ordinary().Kind != RerunOrdinary {
		t.Error("Ordinary() has wrong kind")
	}
	if Ordinary().RedirectURL != "" {
		t.Error("Ordinary() should not carry a redirect")
	}
}
