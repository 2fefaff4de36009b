// Package renderer invokes the external LaTeX toolchain to compile the
// assembled resume into a PDF. The core pipeline does not call it; it is
// exposed behind the compile command and a config toggle.
package renderer

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Compile runs latexmk on a .tex file and returns the produced PDF path
// (same stem, .pdf extension). A nonzero exit status is an error; no path is
// returned in that case.
func Compile(texPath string) (pdfPath string, err error) {
	err = checkLatexmkExists()
	if err != nil {
		return pdfPath, err
	}

	_, err = os.Stat(texPath)
	if os.IsNotExist(err) {
		err = errors.Errorf("file not found: %s", texPath)
		return pdfPath, err
	}

	// -cd switches into the file's directory so latexmk's aux files land
	// next to the source.
	//nolint:noctx // Context not available for exec.Command - latexmk is a long-running subprocess
	cmd := exec.Command("latexmk", "-pdf", "-cd", texPath)

	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "latexmk failed: %s", string(output))
		return pdfPath, err
	}

	pdfPath = PDFPath(texPath)
	return pdfPath, err
}

// PDFPath derives the output path latexmk produces for a .tex source.
func PDFPath(texPath string) (pdfPath string) {
	pdfPath = strings.TrimSuffix(texPath, ".tex") + ".pdf"
	return pdfPath
}

// checkLatexmkExists verifies latexmk is installed.
func checkLatexmkExists() (err error) {
	//nolint:noctx // Context not available for version check
	cmd := exec.Command("latexmk", "-version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("latexmk not found in PATH (install a TeX distribution to compile PDFs)")
		return err
	}
	return err
}
