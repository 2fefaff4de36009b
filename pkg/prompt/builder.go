// Package prompt composes the instruction text sent to the generation
// service, once per section and once for the cover letter.
package prompt

import (
	"fmt"

	"github.com/nikogura/resume-refresh/pkg/sections"
)

// CoverLetterWordBudget caps the cover letter length.
const CoverLetterWordBudget = 100

// BuildSection creates the prompt for regenerating one section. The other
// sections' current content rides along as background so the service keeps
// cross-section consistency, e.g. not repeating a claim already emphasized in
// an earlier section.
func BuildSection(section sections.Section, otherSections, jobContext string) (prompt string) {
	constraintsBlock := ""
	if section.Constraints != "" {
		constraintsBlock = fmt.Sprintf(`
SECTION-SPECIFIC CONSTRAINTS:
%s
`, section.Constraints)
	}

	prompt = fmt.Sprintf(`You are an expert resume writer tailoring the "%s" section of a LaTeX resume to a specific job description.

EDITING DIRECTIVES:
- Rephrase and reorder the existing content for relevance to the job description.
- Mirror vocabulary from the job description where it is honest to do so.
- Use bold and italic emphasis sparingly.
- Never fabricate facts, skills, employers, dates, or metrics. Only rephrase what is already there.
- Never increase the total length of the section. Shorten or hold steady.
- Respond in LaTeX only. Any commentary must be inside LaTeX comments (lines starting with %%) and nothing else.
- Return the revised section wrapped in a single fenced code block, i.e. a line with three backticks before and after it.
%s
JOB DESCRIPTION:
%s

CURRENT SECTION CONTENT:
"""
%s
"""

OTHER SECTIONS OF THE RESUME (for context and consistency, do not edit):
"""
%s
"""`, section.ID, constraintsBlock, jobContext, section.Content, otherSections)

	return prompt
}

// BuildCoverLetter creates the one cover-letter prompt issued after every
// section has been regenerated. The full updated document is the input, and
// the response is plain text, not LaTeX.
func BuildCoverLetter(fullResume, jobContext string) (prompt string) {
	prompt = fmt.Sprintf(`You are an expert career writer. Write a cover letter for a candidate applying to the job described below, based on their resume.

REQUIREMENTS:
- Write in the first person.
- At most %d words.
- Plain text only: no LaTeX, no markdown, no headers, no markup of any kind.
- Use only facts present in the resume. Never fabricate.

JOB DESCRIPTION:
%s

RESUME:
"""
%s
"""`, CoverLetterWordBudget, jobContext, fullResume)

	return prompt
}
