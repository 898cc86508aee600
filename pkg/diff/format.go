package diff

import "strings"

// Marker returns the conventional single-character prefix for a diff line.
func (k OpKind) Marker() string {
	switch k {
	case Delete:
		return "-"
	case Insert:
		return "+"
	}
	return " "
}

// Format renders a diff as plain text, one marked line per input line.
// When context is non-negative, runs of equal lines are trimmed to that
// many lines around each change; a negative context keeps everything.
func Format(lines []Line, context int) string {
	if context >= 0 {
		lines = trimContext(lines, context)
	}

	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Kind.Marker())
		sb.WriteString(" ")
		sb.WriteString(l.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// trimContext keeps changed lines plus up to n equal lines on either side,
// replacing elided runs with no output (callers show separators if wanted).
func trimContext(lines []Line, n int) []Line {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Kind == Equal {
			continue
		}
		lo := i - n
		if lo < 0 {
			lo = 0
		}
		hi := i + n
		if hi > len(lines)-1 {
			hi = len(lines) - 1
		}
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	var out []Line
	for i, l := range lines {
		if keep[i] {
			out = append(out, l)
		}
	}
	return out
}
