// Package fs writes run reports to disk.
package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/siteask"
)

// ReportWriter replaces a report file atomically.
// Content is written to path.tmp, then moved over path once complete, so a
// failed run never leaves a truncated report behind.
type ReportWriter struct {
	path string
}

// NewReportWriter creates a ReportWriter targeting path.
func NewReportWriter(path string) *ReportWriter {
	return &ReportWriter{path: path}
}

// Path returns the final report path.
func (w *ReportWriter) Path() string {
	return w.path
}

func (w *ReportWriter) tempPath() string {
	return w.path + ".tmp"
}

// Write calls encode with the temp file and commits the result.
// If encode fails the temp file is removed and the previous report, if any,
// is left in place.
func (w *ReportWriter) Write(encode func(io.Writer) error) error {
	if w.path == "" {
		return siteask.Errorf(siteask.EINVALID, "report path required")
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}

	f, err := os.Create(w.tempPath())
	if err != nil {
		return err
	}

	if err := encode(f); err != nil {
		f.Close()
		w.Abort()
		return err
	}
	if err := f.Close(); err != nil {
		w.Abort()
		return err
	}

	return os.Rename(w.tempPath(), w.path)
}

// Abort removes a leftover temp file.
func (w *ReportWriter) Abort() error {
	err := os.Remove(w.tempPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
