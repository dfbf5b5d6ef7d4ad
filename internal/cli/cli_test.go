package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-builder/internal/adapter/repository"
	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type grayRasterizer struct{ height int }

func (r grayRasterizer) Rasterize(context.Context, string, string, int, float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 100, r.height))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const adaJSON = `{
	"personalInfo": {"fullName": "Ada Lovelace", "email": "ada@example.com"},
	"workExperience": [{"role": "Engineer", "company": "Acme", "startYear": 2020}],
	"skills": ["Rust", "C++"]
}`

type harness struct {
	store *repository.MemoryStore
	out   *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	return &harness{store: repository.NewMemoryStore(), out: &bytes.Buffer{}}
}

func (h *harness) run(t *testing.T, stdin string, args ...string) error {
	t.Helper()
	h.out.Reset()
	c := New(
		WithIO(strings.NewReader(stdin), h.out, &bytes.Buffer{}),
		WithStore(h.store),
		WithRasterizer(grayRasterizer{height: 300}),
	)
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersion("dev", "", "") })
	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2026-01-01", date)
}

func TestTemplatesCommand(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, "", "templates"))
	lines := strings.Split(strings.TrimSpace(h.out.String()), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))

	require.NoError(t, h.run(t, "", "templates", "--json"))
	var tpls []domain.TemplateDescriptor
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &tpls))
	assert.Len(t, tpls, 4)
}

func TestRenderCommand(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, adaJSON, "render", "--template", "wine-block", "--format", "json"))
	var doc domain.Document
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &doc))
	assert.Equal(t, "ADA LOVELACE", doc.Header.Name)

	require.NoError(t, h.run(t, adaJSON, "render"))
	assert.Contains(t, h.out.String(), `id="resume-preview"`)

	out := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, h.run(t, adaJSON, "render", "-o", out))
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Ada Lovelace")

	assert.Error(t, h.run(t, adaJSON, "render", "--format", "xml"))
	assert.Error(t, h.run(t, `{"skills": "Rust"}`, "render"))
}

func TestRenderCommandReadsFile(t *testing.T) {
	h := newHarness(t)
	in := filepath.Join(t.TempDir(), "ada.json")
	require.NoError(t, os.WriteFile(in, []byte(adaJSON), 0o644))

	require.NoError(t, h.run(t, "", "render", in, "-t", "wine-block", "-f", "json"))
	assert.Contains(t, h.out.String(), "ADA LOVELACE")
}

func TestExportCommand(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	require.NoError(t, h.run(t, adaJSON, "export", "--out-dir", dir))
	path := filepath.Join(dir, "Ada_Lovelace_Resume.pdf")
	assert.Contains(t, h.out.String(), path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	require.NoError(t, h.run(t, adaJSON, "export", "-d", dir, "--name", "cv", "--mode", "clip"))
	_, err = os.Stat(filepath.Join(dir, "cv.pdf"))
	assert.NoError(t, err)

	assert.Error(t, h.run(t, adaJSON, "export", "-d", dir, "--mode", "shrink"))
}

func TestSavedLifecycle(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, adaJSON, "saved", "add", "--template", "wine-block"))
	fields := strings.Fields(h.out.String())
	require.Len(t, fields, 2)
	id := fields[0]
	assert.Equal(t, "Ada_Lovelace_Resume", fields[1])

	require.NoError(t, h.run(t, "", "saved", "list", "--json"))
	var list []domain.SavedResume
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "wine-block", list[0].TemplateID)

	require.NoError(t, h.run(t, "", "saved", "rename", id, "Backend CV"))
	require.NoError(t, h.run(t, "", "saved", "show", id))
	assert.Contains(t, h.out.String(), `"name": "Backend CV"`)

	dir := t.TempDir()
	require.NoError(t, h.run(t, "", "saved", "export", id, "-d", dir))
	_, err := os.Stat(filepath.Join(dir, "Backend CV.pdf"))
	assert.NoError(t, err)

	require.NoError(t, h.run(t, "", "saved", "rm", id))
	err = h.run(t, "", "saved", "show", id)
	assert.ErrorIs(t, err, usecase.ErrResumeNotFound)
}

func TestSavedClearNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, adaJSON, "saved", "add"))
	require.NoError(t, h.run(t, adaJSON, "saved", "add", "-n", "second"))

	assert.Error(t, h.run(t, "", "saved", "clear"))
	require.NoError(t, h.run(t, "", "saved", "ls"))
	assert.Contains(t, h.out.String(), "second")

	require.NoError(t, h.run(t, "", "saved", "clear", "--yes"))
	require.NoError(t, h.run(t, "", "saved", "list", "--json"))
	assert.Equal(t, "[]", strings.TrimSpace(h.out.String()))
}

func TestSkillFlagsEditInput(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run(t, adaJSON, "render", "-f", "json",
		"--skill", " Go ", "--skill", "Rust", "--drop-skill", "C++"))
	var doc domain.Document
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &doc))
	skills, ok := doc.Section(domain.SectionSkills)
	require.True(t, ok)
	assert.Equal(t, []string{"Rust", "Go"}, skills.Chips)

	require.NoError(t, h.run(t, adaJSON, "saved", "add", "--skill", "SQL"))
	require.NoError(t, h.run(t, "", "saved", "list", "--json"))
	var list []domain.SavedResume
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, domain.Skills{"Rust", "C++", "SQL"}, list[0].Data.Skills)
}

func TestSavedAddEmptyNeedsForce(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, `{"personalInfo": {"fullName": " "}}`, "saved", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.EmptyResumeWarning)
	_, err = h.store.Load(context.Background(), usecase.DefaultStorageKey)
	assert.ErrorIs(t, err, usecase.ErrKeyNotFound)

	require.NoError(t, h.run(t, `{}`, "saved", "add", "--force"))
	require.NoError(t, h.run(t, "", "saved", "list", "--json"))
	var list []domain.SavedResume
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestRejectsUnknownStorageBackend(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run(t, "", "--storage", "floppy", "templates"))
}
