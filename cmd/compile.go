package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/nikogura/resume-refresh/pkg/config"
	"github.com/nikogura/resume-refresh/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var compileCmd = &cobra.Command{
	Use:   "compile [tex-file]",
	Short: "Compile the resume to PDF with latexmk",
	Long: `Compile a LaTeX document to PDF using latexmk.

Without an argument, the compile target from the config is used, resolved
against the workspace directory.

Example:
  resume-refresh compile
  resume-refresh compile resume.tex`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) (err error) {
	var target string

	if len(args) == 1 {
		target = args[0]
	} else {
		var cfg config.Config
		cfg, err = config.Load(getConfigFile())
		if err != nil {
			err = errors.Wrap(err, "failed to load config")
			return err
		}

		if cfg.Compile.Target == "" {
			err = errors.New("no tex file given and no compile.target in config")
			return err
		}

		target = filepath.Join(cfg.Workspace, cfg.Compile.Target)
	}

	if getVerbose() {
		fmt.Printf("Compiling: %s\n", target)
	}

	var pdfPath string
	pdfPath, err = renderer.Compile(target)
	if err != nil {
		err = errors.Wrap(err, "compilation failed")
		return err
	}

	fmt.Printf("PDF saved at: %s\n", pdfPath)
	return err
}
