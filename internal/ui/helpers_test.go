package ui

import "testing"

func TestColumnString(t *testing.T) {
	cases := []struct {
		text  string
		width int
		want  string
	}{
		{"testmetest", 0, ""},
		{"testmetest", 1, "."},
		{"testmetest", 2, ".."},
		{"testmetest", 3, "..."},
		{"testmetest", 4, "t..."},
		{"", 6, "      "},
		{"test", 6, "test  "},
		{"testme", 6, "testme"},
		{"testmetest", 6, "tes..."},
		{"日本語テキスト", 8, "日本... "},
		{"x", -1, ""},
	}
	for _, tc := range cases {
		if got := ColumnString(tc.text, tc.width); got != tc.want {
			t.Fatalf("ColumnString(%q, %d): expected %q, got %q", tc.text, tc.width, tc.want, got)
		}
	}
}

func TestParseID(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"1", 1, true},
		{" 42 ", 42, true},
		{"4294967295", 4294967295, true},
		{"4294967296", 0, false},
		{"-1", 0, false},
		{"x", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseID(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("parseID(%q): expected (%d, %v), got (%d, %v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}
