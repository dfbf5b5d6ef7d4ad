package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"resume-builder/internal/domain"
)

const (
	fallbackFileName = "My_Resume"
	pdfExt           = ".pdf"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeChars   = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f]`)
)

// ResolveFileName picks the download name of an export: the explicit name,
// else "<full name>_Resume" with whitespace runs as underscores, else
// My_Resume. The result always ends in .pdf.
func ResolveFileName(explicit, fullName string) string {
	if name := strings.TrimSpace(explicit); name != "" {
		return withExt(name)
	}
	if name := strings.TrimSpace(fullName); name != "" {
		return withExt(whitespaceRun.ReplaceAllString(name, "_") + "_Resume")
	}
	return withExt(fallbackFileName)
}

// SavedFileName is the download name of a saved resume: its name, or
// resume_<id> when the name is blank.
func SavedFileName(s domain.SavedResume) string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return withExt(name)
	}
	return withExt("resume_" + s.ID)
}

func withExt(name string) string {
	name = unsafeChars.ReplaceAllString(name, "_")
	if strings.HasSuffix(strings.ToLower(name), pdfExt) {
		return name
	}
	return name + pdfExt
}

// FileSink writes PDFs into a directory. A file only appears under its
// final name once it is fully written.
type FileSink struct {
	Dir string
}

func (s FileSink) Path(fileName string) string {
	return filepath.Join(s.Dir, filepath.Base(fileName))
}

func (s FileSink) Deliver(ctx context.Context, fileName string, pdf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(pdf); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", fileName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", fileName, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, filepath.Base(fileName))); err != nil {
		cleanup()
		return fmt.Errorf("rename %s: %w", fileName, err)
	}
	return nil
}
