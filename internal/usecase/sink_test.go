package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFileName(t *testing.T) {
	assert.Equal(t, "cv.pdf", ResolveFileName(" cv ", "Ada Lovelace"))
	assert.Equal(t, "cv.PDF", ResolveFileName("cv.PDF", ""))
	assert.Equal(t, "Ada_Lovelace_Resume.pdf", ResolveFileName("", "Ada  Lovelace"))
	assert.Equal(t, "Ada_King_Lovelace_Resume.pdf", ResolveFileName("", " Ada\tKing Lovelace "))
	assert.Equal(t, "My_Resume.pdf", ResolveFileName("", ""))
	assert.Equal(t, "My_Resume.pdf", ResolveFileName("  ", "   "))
	assert.Equal(t, "a_b.pdf", ResolveFileName("a/b", ""))
}

func TestSavedFileName(t *testing.T) {
	assert.Equal(t, "Backend CV.pdf", SavedFileName(domain.SavedResume{ID: "1", Name: "Backend CV"}))
	assert.Equal(t, "resume_42.pdf", SavedFileName(domain.SavedResume{ID: "42", Name: " "}))
}

func TestFileSinkDeliver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := FileSink{Dir: dir}

	require.NoError(t, s.Deliver(context.Background(), "cv.pdf", []byte("%PDF-1.3")))
	b, err := os.ReadFile(s.Path("cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(b))

	require.NoError(t, s.Deliver(context.Background(), "cv.pdf", []byte("%PDF-1.4")))
	b, err = os.ReadFile(s.Path("cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileSinkCancelledContext(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, FileSink{Dir: dir}.Deliver(ctx, "cv.pdf", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
