package diff

import (
	"strings"
	"testing"
)

func render(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Kind.Marker())
		sb.WriteString(l.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestLines_Identical(t *testing.T) {
	content := []byte("a\nb\nc\n")
	for _, l := range Lines(content, content) {
		if l.Kind != Equal {
			t.Fatalf("identical content produced non-equal line: %+v", l)
		}
	}
	if Changed(content, content) {
		t.Error("Changed reports identical content as different")
	}
}

func TestLines_InsertAndDelete(t *testing.T) {
	before := []byte("one\ntwo\nthree\n")
	after := []byte("one\n2\nthree\nfour\n")

	got := render(Lines(before, after))
	want := " one\n-two\n+2\n three\n+four\n"
	if got != want {
		t.Errorf("diff:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestLines_EmptySides(t *testing.T) {
	after := []byte("new\nfile\n")
	lines := Lines(nil, after)
	if len(lines) != 2 || lines[0].Kind != Insert || lines[1].Kind != Insert {
		t.Errorf("diff against empty before = %+v, want two inserts", lines)
	}

	lines = Lines(after, nil)
	if len(lines) != 2 || lines[0].Kind != Delete || lines[1].Kind != Delete {
		t.Errorf("diff against empty after = %+v, want two deletes", lines)
	}
}

func TestLines_NoTrailingNewline(t *testing.T) {
	lines := Lines([]byte("a"), []byte("b"))
	got := render(lines)
	if got != "-a\n+b\n" {
		t.Errorf("diff = %q, want %q", got, "-a\n+b\n")
	}
}

func TestFormat_ContextTrimming(t *testing.T) {
	before := []byte("1\n2\n3\n4\n5\n6\n7\n")
	after := []byte("1\n2\n3\nX\n5\n6\n7\n")

	out := Format(Lines(before, after), 1)
	want := "  3\n- 4\n+ X\n  5\n"
	if out != want {
		t.Errorf("Format with context 1:\ngot:\n%s\nwant:\n%s", out, want)
	}

	full := Format(Lines(before, after), -1)
	if !strings.Contains(full, "  1\n") || !strings.Contains(full, "  7\n") {
		t.Errorf("Format with negative context trimmed lines:\n%s", full)
	}
}
