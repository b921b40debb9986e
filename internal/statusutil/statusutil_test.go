package statusutil

import (
	"testing"

	"jira-cli/internal/model"
)

func TestParseSelection(t *testing.T) {
	cases := []struct {
		in      string
		want    model.Status
		wantErr bool
	}{
		{"1", model.StatusOpen, false},
		{" 2 ", model.StatusInProgress, false},
		{"3", model.StatusResolved, false},
		{"4", model.StatusClosed, false},
		{"in progress", model.StatusInProgress, false},
		{"CLOSED", model.StatusClosed, false},
		{"resolved", model.StatusResolved, false},
		{"0", 0, true},
		{"5", 0, true},
		{"-1", 0, true},
		{"", 0, true},
		{"   ", 0, true},
		{"done", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseSelection(tc.in)
		if tc.wantErr && err == nil {
			t.Fatalf("ParseSelection(%q): expected error", tc.in)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("ParseSelection(%q): unexpected error: %v", tc.in, err)
		}
		if !tc.wantErr && got != tc.want {
			t.Fatalf("ParseSelection(%q): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestMenuLines(t *testing.T) {
	got := MenuLines()
	want := []string{"1: OPEN", "2: IN PROGRESS", "3: RESOLVED", "4: CLOSED"}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestIsEndState(t *testing.T) {
	if IsEndState(model.StatusOpen) || IsEndState(model.StatusInProgress) {
		t.Fatalf("expected open statuses to not be end states")
	}
	if !IsEndState(model.StatusResolved) || !IsEndState(model.StatusClosed) {
		t.Fatalf("expected resolved/closed to be end states")
	}
}
