package latex

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "inline code",
			input:    "Deployed with `kubectl apply` daily.",
			expected: `Deployed with \texttt{kubectl apply} daily.`,
		},
		{
			name:     "bold",
			input:    "Built a **ROS-based mobile robot**.",
			expected: `Built a \textbf{ROS-based mobile robot}.`,
		},
		{
			name:     "italic",
			input:    "Shipped *ahead of schedule* twice.",
			expected: `Shipped \textit{ahead of schedule} twice.`,
		},
		{
			name:     "line comment",
			input:    "# trimmed two bullets here\nKept this line.",
			expected: "% trimmed two bullets here\nKept this line.",
		},
		{
			name:     "mixed spans on one line",
			input:    "Used `go test` with **race detection** and *coverage*.",
			expected: `Used \texttt{go test} with \textbf{race detection} and \textit{coverage}.`,
		},
		{
			name:     "bold not matched as italic",
			input:    "**only bold here**",
			expected: `\textbf{only bold here}`,
		},
		{
			name:     "lone asterisk passes through",
			input:    "5 * 3 = 15",
			expected: "5 * 3 = 15",
		},
		{
			name:     "lone backtick passes through",
			input:    "the ` character",
			expected: "the ` character",
		},
		{
			name:     "unmatched double asterisk passes through",
			input:    "**dangling bold",
			expected: "**dangling bold",
		},
		{
			name:     "hash mid-line untouched",
			input:    "issue #42 was closed",
			expected: "issue #42 was closed",
		},
		{
			name:     "multiple comment lines",
			input:    "# one\n# two\ncontent",
			expected: "% one\n% two\ncontent",
		},
		{
			name:     "span does not cross lines",
			input:    "**bold\nacross lines**",
			expected: "**bold\nacross lines**",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "plain latex untouched",
			input:    `Built a \textbf{mobile robot} using Python.`,
			expected: `Built a \textbf{mobile robot} using Python.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	// Already-converted output has no residual backtick/asterisk/hash
	// patterns, so a second pass must be a no-op.
	inputs := []string{
		`Built a \textbf{ROS-based mobile robot}.`,
		`\texttt{kubectl} and \textit{fast} and \textbf{strong}`,
		"% a comment line\nplain text",
		"Used `go vet` with **strict** rules and *care*.",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize is not idempotent for '%s': first '%s', second '%s'", input, once, twice)
		}
	}
}

func TestNormalizeContentPreserved(t *testing.T) {
	// The plain content inside each balanced span must survive verbatim.
	result := Normalize("before **middle part** after")
	expected := `before \textbf{middle part} after`
	if result != expected {
		t.Errorf("Expected '%s', got '%s'", expected, result)
	}

	result = Normalize("x *y z* w")
	expected = `x \textit{y z} w`
	if result != expected {
		t.Errorf("Expected '%s', got '%s'", expected, result)
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "latex fence",
			input:    "```latex\nBuilt a **ROS-based mobile robot**.\n```",
			expected: "Built a **ROS-based mobile robot**.",
		},
		{
			name:     "bare fence",
			input:    "```\ncontent line\n```",
			expected: "content line",
		},
		{
			name:     "multiline body",
			input:    "```latex\nline one\nline two\n```",
			expected: "line one\nline two",
		},
		{
			name:     "no fence returned unchanged",
			input:    "just a plain response",
			expected: "just a plain response",
		},
		{
			name:     "surrounding whitespace tolerated",
			input:    "\n```latex\nbody\n```\n",
			expected: "body",
		},
		{
			name:     "unterminated fence returned unchanged",
			input:    "```latex\nbody without closing",
			expected: "```latex\nbody without closing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripFence(tt.input)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestStripFenceThenNormalize(t *testing.T) {
	// The orchestrator's write path: strip the fence, then normalize.
	raw := "```latex\nBuilt a **ROS-based mobile robot**.\n```"
	result := Normalize(StripFence(raw))
	expected := `Built a \textbf{ROS-based mobile robot}.`
	if result != expected {
		t.Errorf("Expected '%s', got '%s'", expected, result)
	}
}
