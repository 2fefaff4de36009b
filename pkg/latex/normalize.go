// Package latex converts the constrained markdown dialect the generation
// service emits into LaTeX the resume document can compile.
package latex

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// The rules are ordered: each later pattern must not re-match text already
// substituted by an earlier one. regexp2 is used rather than stdlib regexp
// because the italic rule needs negative lookaround on both sides of a single
// asterisk, which RE2 cannot express.
//
//nolint:gochecknoglobals // Compiled once, read-only after init
var rules = []struct {
	pattern     *regexp2.Regexp
	replacement string
}{
	// `code` -> \texttt{code}
	{regexp2.MustCompile("`([^`\n]+?)`", 0), `\texttt{$1}`},
	// **bold** -> \textbf{bold}
	{regexp2.MustCompile(`\*\*([^\n]+?)\*\*`, 0), `\textbf{$1}`},
	// *italic* -> \textit{italic}, where neither delimiter is part of a **
	// run and the span stays within one line
	{regexp2.MustCompile(`(?<!\*)\*(?!\*)([^*\n]+)(?<!\*)\*(?!\*)`, 0), `\textit{$1}`},
	// line-leading # -> LaTeX comment marker, rest of line preserved
	{regexp2.MustCompile(`(?m)^#`, 0), `%`},
}

// Normalize rewrites inline code, bold, italic, and line-leading comment
// markers into their LaTeX equivalents. The transform is applied once,
// top-to-bottom, non-recursively. It is total: unmatched or malformed
// delimiters pass through unchanged, and a substitution that cannot be
// applied leaves its input as-is rather than failing.
func Normalize(text string) (normalized string) {
	normalized = text
	for _, rule := range rules {
		result, err := rule.pattern.Replace(normalized, rule.replacement, -1, -1)
		if err != nil {
			// Best-effort: keep the text from the rules that did apply.
			continue
		}
		normalized = result
	}
	return normalized
}

// StripFence removes the first and last line of a fenced code block. The
// generation prompt instructs the service to wrap its answer in a fence, so
// the caller strips it before normalization. Responses that do not look
// fenced are returned unchanged rather than losing real content.
func StripFence(text string) (stripped string) {
	stripped = text

	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return stripped
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 3 {
		return stripped
	}

	last := len(lines) - 1
	if strings.TrimSpace(lines[last]) != "```" {
		return stripped
	}

	stripped = strings.Join(lines[1:last], "\n")
	return stripped
}
