// Package diff computes line-level diffs between two revisions of a file.
package diff

import "strings"

// OpKind classifies a line in a diff.
type OpKind int

const (
	Equal  OpKind = iota // line present in both revisions
	Delete               // line present only in the before revision
	Insert               // line present only in the after revision
)

// Line is one line of diff output.
type Line struct {
	Kind OpKind
	Text string
}

// Lines computes a line diff from before to after using a longest common
// subsequence, returning the full interleaved sequence of equal, deleted,
// and inserted lines.
func Lines(before, after []byte) []Line {
	a := splitLines(before)
	b := splitLines(after)

	// LCS lengths, computed bottom-up.
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var out []Line
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, Line{Kind: Equal, Text: a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			out = append(out, Line{Kind: Delete, Text: a[i]})
			i++
		default:
			out = append(out, Line{Kind: Insert, Text: b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		out = append(out, Line{Kind: Delete, Text: a[i]})
	}
	for ; j < len(b); j++ {
		out = append(out, Line{Kind: Insert, Text: b[j]})
	}
	return out
}

// Changed reports whether the two revisions differ at all.
func Changed(before, after []byte) bool {
	return string(before) != string(after)
}

// splitLines splits content into lines without trailing newlines. Empty
// content has no lines (rather than one empty line).
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	s := strings.TrimSuffix(string(content), "\n")
	return strings.Split(s, "\n")
}
