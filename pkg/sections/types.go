package sections

// Section represents one independently regenerated part of the resume.
type Section struct {
	// ID is the stable section name, e.g. "experience" or "skills".
	ID string `yaml:"id"`
	// Constraints holds optional free-text editing instructions specific to
	// this section (ordering rules, length limits). Immutable once loaded.
	Constraints string `yaml:"constraints,omitempty"`
	// Content is the section's current LaTeX source. Replaced wholesale after
	// each successful regeneration, never partially merged.
	Content string `yaml:"-"`
}

// Manifest is the ordered list of sections to process. The order encodes a
// business rule: later sections are prompted with earlier sections' already
// updated content, so it must not be treated as incidental.
type Manifest struct {
	Sections []Section `yaml:"sections"`
}
