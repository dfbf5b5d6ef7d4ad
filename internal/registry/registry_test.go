package registry

import (
	"testing"

	"resume-builder/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	r := Default()
	all := r.All()
	require.Len(t, all, 4)
	assert.Equal(t, "blue-classic", all[0].ID)

	wb, ok := r.Lookup("wine-block")
	require.True(t, ok)
	assert.Equal(t, "#8E2342", wb.PrimaryColor)
	assert.Equal(t, domain.HeaderSolidBlock, wb.HeaderVariant)
}

func TestResolveFallsBackToFirst(t *testing.T) {
	r := Default()
	assert.Equal(t, "blue-classic", r.Resolve("").ID)
	assert.Equal(t, "blue-classic", r.Resolve("removed-template").ID)
	assert.Equal(t, "sand-modern", r.Resolve("sand-modern").ID)
}

func TestAllReturnsCopy(t *testing.T) {
	r := Default()
	all := r.All()
	all[0].Name = "mutated"
	assert.Equal(t, "Blue Classic", r.First().Name)
}

func TestNewRejectsBadCatalogs(t *testing.T) {
	ok := domain.TemplateDescriptor{ID: "a", PrimaryColor: "#fff", HeaderVariant: domain.HeaderThinRule}

	_, err := New(nil)
	assert.Error(t, err)

	_, err = New([]domain.TemplateDescriptor{ok, ok})
	assert.ErrorContains(t, err, "duplicate")

	bad := ok
	bad.PrimaryColor = "red"
	_, err = New([]domain.TemplateDescriptor{bad})
	assert.ErrorContains(t, err, "invalid color")

	bad = ok
	bad.HeaderVariant = "zigzag"
	_, err = New([]domain.TemplateDescriptor{bad})
	assert.ErrorContains(t, err, "unknown header variant")
}
