package usecase

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCount(t *testing.T) {
	const w, h = 210.0, 297.0
	assert.Equal(t, 1, PageCount(100, 1, w, h))
	assert.Equal(t, 1, PageCount(210, 297, w, h))
	assert.Equal(t, 2, PageCount(210, 298, w, h))
	assert.Equal(t, 2, PageCount(210, 594, w, h))
	assert.Equal(t, 3, PageCount(210, 595, w, h))
	assert.Equal(t, 3, PageCount(1600, 6200, w, h))
	assert.Equal(t, 4, PageCount(1600, 6800, w, h))
}

func TestPageCountWithGofpdfA4(t *testing.T) {
	// gofpdf's A4 in mm
	const w, h = 210.001556, 297.000083
	assert.Equal(t, 1, PageCount(210, 297, w, h))
	assert.Equal(t, 2, PageCount(210, 594, w, h))
	assert.Equal(t, 3, PageCount(210, 891, w, h))
	assert.Equal(t, 4, PageCount(210, 892, w, h))
	assert.Equal(t, 2, PageCount(1600, 4526, w, h))
}

func TestPaginateCropAndClipAgreeOnPageCount(t *testing.T) {
	bitmap := stripedPNG(100, int(a4SlicePx*3)+5)
	crop, n1, err := Paginate(bitmap, PaginateCrop)
	require.NoError(t, err)
	clip, n2, err := Paginate(bitmap, PaginateClip)
	require.NoError(t, err)

	assert.Equal(t, 4, n1)
	assert.Equal(t, n1, n2)
	assert.Equal(t, 4, countPages(crop))
	assert.Equal(t, 4, countPages(clip))
	assert.NotEqual(t, crop, clip)
}

func TestPaginateExactMultipleHasNoEmptyPage(t *testing.T) {
	// 210 px wide at 297 px per page
	for _, h := range []int{594, 891} {
		bitmap := stripedPNG(210, h)
		for _, mode := range []PaginationMode{PaginateCrop, PaginateClip} {
			pdf, n, err := Paginate(bitmap, mode)
			require.NoError(t, err)
			assert.Equal(t, h/297, n, "%s %d", mode, h)
			assert.Equal(t, h/297, countPages(pdf), "%s %d", mode, h)
		}
	}
}

func TestPaginateRejectsNonPNG(t *testing.T) {
	_, _, err := Paginate([]byte("not an image"), PaginateCrop)
	assert.Error(t, err)
}

func TestPaginateOutputIsPDF(t *testing.T) {
	pdf, _, err := Paginate(stripedPNG(20, 20), PaginateCrop)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.True(t, PaginateCrop.Valid())
	assert.False(t, PaginationMode("zigzag").Valid())
}
