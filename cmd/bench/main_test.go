package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunCase(t *testing.T) {
	r := runCase("tiny", "ver:\"3.0\"\nid,val\n@a,1\n@b,2\n", 3)
	if r.Path != "fast" || r.Rows != 2 {
		t.Errorf("got %+v", r)
	}
	if r.JSONBytes == 0 {
		t.Error("JSONBytes = 0")
	}

	r = runCase("list", "ver:\"3.0\"\nv\n[1]\n", 3)
	if r.Path != "rejected" || r.Reason == "" {
		t.Errorf("got %+v", r)
	}
}

func TestWriteMarkdown(t *testing.T) {
	results := []CaseResult{
		{Name: "a", Path: "fast", Rows: 1, ZincBytes: 20, JSONBytes: 40},
		{Name: "b", Path: "malformed", Reason: "invalid date (line 3)"},
	}
	var buf bytes.Buffer
	writeMarkdown(&buf, results, "1", 10)
	out := buf.String()
	for _, want := range []string{"| a | 1 | 20 | 40 |", "| b | malformed | invalid date (line 3) |"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestTruncateName(t *testing.T) {
	if got := truncateName("abcdefgh", 6); got != "abc..." {
		t.Errorf("got %q", got)
	}
	if got := truncateName("abc", 6); got != "abc" {
		t.Errorf("got %q", got)
	}
}
