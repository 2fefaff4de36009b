package cmd

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nikogura/resume-refresh/pkg/config"
	"github.com/nikogura/resume-refresh/pkg/jd"
	"github.com/nikogura/resume-refresh/pkg/llm"
	"github.com/nikogura/resume-refresh/pkg/pipeline"
	"github.com/nikogura/resume-refresh/pkg/renderer"
	"github.com/nikogura/resume-refresh/pkg/sections"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var refreshCmd = &cobra.Command{
	Use:   "refresh [jd-url]",
	Short: "Regenerate every resume section against a job description",
	Long: `Regenerate every resume section against a job description, then write a
cover letter from the updated document.

With a URL argument, the job description is fetched, reduced to plain text,
and cached in the workspace (overwriting any previous cache). Without an
argument, a previously cached job description must exist.

Example:
  resume-refresh refresh https://example.com/jobs/123
  resume-refresh refresh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRefresh,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()

	// Validate the argument shape before any side effects occur.
	if len(args) == 1 {
		err = validateURL(args[0])
		if err != nil {
			return err
		}
	}

	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var jobContext string
	jobContext, err = loadJobContext(ctx, cfg.Workspace, args)
	if err != nil {
		return err
	}

	var store *sections.Store
	store, err = loadStore(cfg.Workspace)
	if err != nil {
		return err
	}

	orchestrator := buildOrchestrator(cfg, store, jobContext)

	err = runPipeline(ctx, orchestrator)
	if err != nil {
		return err
	}

	if cfg.Compile.Enabled {
		err = compileTarget(cfg)
		if err != nil {
			return err
		}
	}

	fmt.Println("\nRefresh complete!")
	return err
}

// validateURL rejects anything that is not an http(s) URL.
func validateURL(arg string) (err error) {
	parsed, parseErr := url.Parse(arg)
	if parseErr != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		err = errors.Errorf("argument must be an http(s) URL: %s", arg)
		return err
	}
	return err
}

// loadJobContext refreshes the cache from a URL when one was given, otherwise
// requires an existing cache.
func loadJobContext(ctx context.Context, workspace string, args []string) (jobContext string, err error) {
	cachePath := filepath.Join(workspace, jd.CacheFilename)

	if len(args) == 1 {
		if getVerbose() {
			fmt.Printf("Fetching job description from: %s\n", args[0])
		}

		fetchCtx, cancel := context.WithTimeout(ctx, jd.FetchTimeout)
		defer cancel()

		jobContext, err = jd.FetchAndReduce(fetchCtx, args[0])
		if err != nil {
			return jobContext, err
		}

		err = jd.WriteCache(cachePath, jobContext)
		if err != nil {
			return jobContext, err
		}

		if getVerbose() {
			fmt.Printf("Job description cached (%d characters)\n", len(jobContext))
		}

		return jobContext, err
	}

	jobContext, err = jd.ReadCache(cachePath)
	if err != nil {
		err = errors.Wrap(err, "no URL given and no cached job description (pass a URL to fetch one)")
		return jobContext, err
	}

	if getVerbose() {
		fmt.Printf("Using cached job description (%d characters)\n", len(jobContext))
	}

	return jobContext, err
}

// loadStore reads the section manifest and all baselines.
func loadStore(workspace string) (store *sections.Store, err error) {
	manifestPath := filepath.Join(workspace, sections.ManifestFilename)

	var manifest sections.Manifest
	manifest, err = sections.LoadManifest(manifestPath)
	if err != nil {
		return store, err
	}

	store, err = sections.NewStore(workspace, manifest)
	if err != nil {
		err = errors.Wrap(err, "failed to load section baselines")
		return store, err
	}

	if getVerbose() {
		fmt.Printf("Loaded %d sections\n", len(store.Sections()))
	}

	return store, err
}

// buildOrchestrator wires the generation client and pipeline.
func buildOrchestrator(cfg config.Config, store *sections.Store, jobContext string) (orchestrator *pipeline.Orchestrator) {
	policy := llm.DefaultRetryPolicy()
	if cfg.MaxTries > 0 {
		policy.MaxTries = cfg.MaxTries
	}

	client := llm.NewClient(llm.NewClaudeCompleter(cfg.AnthropicAPIKey, cfg.Model), policy)
	client.SetLogf(logf)

	orchestrator = pipeline.NewOrchestrator(store, client, jobContext, cfg.Workspace)
	orchestrator.SetLogf(logf)

	return orchestrator
}

// runPipeline runs the orchestrator with a spinner when not verbose.
func runPipeline(ctx context.Context, orchestrator *pipeline.Orchestrator) (err error) {
	var s *spinner
	if !getVerbose() {
		s = newSpinner("Regenerating resume sections...")
		s.start()
	} else {
		fmt.Println("Regenerating resume sections...")
	}

	err = orchestrator.Run(ctx)

	if s != nil {
		s.stopSpinner()
	}

	if err != nil {
		err = errors.Wrap(err, "pipeline failed")
		return err
	}

	if !getVerbose() {
		fmt.Println("✓ All sections regenerated")
	}

	return err
}

// compileTarget invokes the LaTeX toolchain on the configured document.
func compileTarget(cfg config.Config) (err error) {
	target := filepath.Join(cfg.Workspace, cfg.Compile.Target)

	var pdfPath string
	pdfPath, err = renderer.Compile(target)
	if err != nil {
		err = errors.Wrap(err, "compilation failed")
		return err
	}

	fmt.Printf("PDF saved at: %s\n", pdfPath)
	return err
}

// logf prints progress only in verbose mode.
func logf(format string, args ...interface{}) {
	if getVerbose() {
		fmt.Printf(format, args...)
	}
}

// spinner provides a simple text-based progress indicator.
type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for {
			select {
			case <-s.stop:
				// Clear the line and ensure cursor is at start of new line
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}
