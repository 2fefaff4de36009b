// Package pipeline drives the ordered regeneration of every resume section
// followed by one cover-letter pass over the updated document.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/nikogura/resume-refresh/pkg/latex"
	"github.com/nikogura/resume-refresh/pkg/prompt"
	"github.com/nikogura/resume-refresh/pkg/sections"
	"github.com/pkg/errors"
)

// CoverLetterFilename is the cover letter artifact name inside the workspace.
const CoverLetterFilename = "cover-letter.txt"

// Store is the read/write boundary the orchestrator needs from the section
// store. Snapshots are taken between stages only; prompt construction never
// mutates anything.
type Store interface {
	Sections() (result []sections.Section)
	Snapshot(excluding string) (snapshot string)
	Commit(id, content string) (err error)
}

// Generator executes one generation request with retry handled internally.
type Generator interface {
	Generate(ctx context.Context, promptText string) (text string, err error)
}

// Orchestrator sequences the per-section pipeline. Sections are always
// processed in manifest order, never reordered or parallelized: each
// section's prompt depends on the already-updated content of prior sections.
type Orchestrator struct {
	store      Store
	generator  Generator
	jobContext string
	workspace  string
	logf       func(format string, args ...interface{})
}

// NewOrchestrator wires the pipeline together.
func NewOrchestrator(store Store, generator Generator, jobContext, workspace string) (orchestrator *Orchestrator) {
	orchestrator = &Orchestrator{
		store:      store,
		generator:  generator,
		jobContext: jobContext,
		workspace:  workspace,
		logf:       func(format string, args ...interface{}) {},
	}
	return orchestrator
}

// SetLogf installs a progress logger. Intermediate section content is logged
// as it is produced so a human can inspect partial results even when a later
// section fails.
func (o *Orchestrator) SetLogf(logf func(format string, args ...interface{})) {
	o.logf = logf
}

// Run executes every section in order, then the cover letter. Any
// unrecoverable failure aborts the whole run: there is no partial retry of a
// single failed section on a later invocation. Already-committed sections
// remain durable on disk.
func (o *Orchestrator) Run(ctx context.Context) (err error) {
	run := newRun()
	runPath := filepath.Join(o.workspace, RunFilename)

	err = o.runSections(ctx, run)
	if err == nil {
		err = o.runCoverLetter(ctx)
	}

	if err != nil {
		run.finish(StatusFailed, err)
	} else {
		run.finish(StatusCompleted, nil)
	}

	saveErr := run.save(runPath)
	if saveErr != nil {
		o.logf("warning: %v\n", saveErr)
	}

	return err
}

// runSections regenerates each section in manifest order.
func (o *Orchestrator) runSections(ctx context.Context, run *Run) (err error) {
	for _, section := range o.store.Sections() {
		o.logf("regenerating section: %s\n", section.ID)

		promptText := prompt.BuildSection(section, o.store.Snapshot(section.ID), o.jobContext)

		var raw string
		raw, err = o.generator.Generate(ctx, promptText)
		if err != nil {
			err = errors.Wrapf(err, "section %s", section.ID)
			return err
		}

		content := latex.Normalize(latex.StripFence(raw))

		err = o.store.Commit(section.ID, content)
		if err != nil {
			err = errors.Wrapf(err, "failed to commit section %s", section.ID)
			return err
		}

		run.Sections = append(run.Sections, section.ID)
		o.logf("section %s updated:\n%s\n\n", section.ID, content)
	}

	return err
}

// runCoverLetter issues the final generation pass over the fully updated
// document and persists the raw text, unnormalized, to its own artifact.
func (o *Orchestrator) runCoverLetter(ctx context.Context) (err error) {
	o.logf("generating cover letter\n")

	promptText := prompt.BuildCoverLetter(o.store.Snapshot(""), o.jobContext)

	var letter string
	letter, err = o.generator.Generate(ctx, promptText)
	if err != nil {
		err = errors.Wrap(err, "cover letter")
		return err
	}

	letterPath := filepath.Join(o.workspace, CoverLetterFilename)
	err = os.WriteFile(letterPath, []byte(letter), 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to write cover letter: %s", letterPath)
		return err
	}

	o.logf("cover letter written to %s:\n%s\n", letterPath, letter)
	return err
}
