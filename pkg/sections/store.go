package sections

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound indicates a required baseline file is missing. Fatal: the
// pipeline cannot start without a baseline for every configured section.
var ErrNotFound = errors.New("baseline not found")

const (
	// BaselineSuffix distinguishes the last known-good copy of a section.
	BaselineSuffix = ".base.tex"
	// WorkingSuffix distinguishes the regenerated working copy.
	WorkingSuffix = ".tex"
)

// Store holds the ordered collection of sections and their current content.
// Commits are write-through: each successful update lands on disk immediately,
// so a crash mid-run leaves processed sections durable and the rest at
// baseline. Mutated only by the orchestrator's single thread of control.
type Store struct {
	workspace string
	sections  []Section
	index     map[string]int
}

// NewStore loads every section's baseline from the workspace directory.
func NewStore(workspace string, manifest Manifest) (store *Store, err error) {
	store = &Store{
		workspace: workspace,
		sections:  make([]Section, len(manifest.Sections)),
		index:     make(map[string]int, len(manifest.Sections)),
	}

	for i, entry := range manifest.Sections {
		var content string
		content, err = loadBaseline(workspace, entry.ID)
		if err != nil {
			return store, err
		}

		store.sections[i] = Section{
			ID:          entry.ID,
			Constraints: entry.Constraints,
			Content:     content,
		}
		store.index[entry.ID] = i
	}

	return store, err
}

// loadBaseline reads the baseline file for one section.
func loadBaseline(workspace, id string) (content string, err error) {
	path := filepath.Join(workspace, id+BaselineSuffix)

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Wrapf(ErrNotFound, "section %s: %s", id, path)
			return content, err
		}
		err = errors.Wrapf(err, "failed to read baseline for section %s", id)
		return content, err
	}

	content = string(data)
	return content, err
}

// Sections returns the sections in manifest order with their current content.
func (s *Store) Sections() (result []Section) {
	result = make([]Section, len(s.sections))
	copy(result, s.sections)
	return result
}

// Content returns the current content for a section, or empty string for an
// unknown id.
func (s *Store) Content(id string) (content string) {
	if i, ok := s.index[id]; ok {
		content = s.sections[i].Content
	}
	return content
}

// Snapshot returns the concatenation of all sections' current content except
// the named one, double-newline separated, in manifest order. It reflects
// whatever commits have already landed this run: later sections see earlier
// sections' regenerated content, not their baselines. Pass an empty string to
// include every section.
func (s *Store) Snapshot(excluding string) (snapshot string) {
	parts := make([]string, 0, len(s.sections))
	for _, section := range s.sections {
		if section.ID == excluding {
			continue
		}
		parts = append(parts, section.Content)
	}

	snapshot = strings.Join(parts, "\n\n")
	return snapshot
}

// Commit replaces a section's content wholesale and persists it to the
// working file immediately. On write failure the in-memory content is left
// untouched so the section is never half-updated.
func (s *Store) Commit(id, content string) (err error) {
	i, ok := s.index[id]
	if !ok {
		err = errors.Errorf("unknown section: %s", id)
		return err
	}

	path := filepath.Join(s.workspace, id+WorkingSuffix)
	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to write section %s", id)
		return err
	}

	s.sections[i].Content = content
	return err
}

// WorkingPath returns the on-disk path of a section's working copy.
func (s *Store) WorkingPath(id string) (path string) {
	path = filepath.Join(s.workspace, id+WorkingSuffix)
	return path
}
