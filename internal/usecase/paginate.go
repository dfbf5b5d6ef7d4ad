package usecase

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PaginationMode selects how a tall bitmap is split over pages.
type PaginationMode string

const (
	// PaginateCrop gives each page its own slice of the bitmap.
	PaginateCrop PaginationMode = "crop"
	// PaginateClip redraws the whole bitmap on every page, shifted up by one
	// page height per page, and lets the page box clip it.
	PaginateClip PaginationMode = "clip"
)

func (m PaginationMode) Valid() bool { return m == PaginateCrop || m == PaginateClip }

// pdfEpoch is stamped as creation date so equal input gives equal bytes.
var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// sliverPx is the largest leftover that does not start a new page. gofpdf's
// A4 is a little off 210x297mm, so exact multiples land a fraction of a
// pixel over the page boundary.
const sliverPx = 0.5

// Paginate lays a PNG bitmap out on A4 portrait pages scaled to the page
// width and returns the PDF with its page count.
func Paginate(bitmap []byte, mode PaginationMode) ([]byte, int, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(bitmap))
	if err != nil {
		return nil, 0, fmt.Errorf("decode bitmap: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, 0, fmt.Errorf("empty bitmap %dx%d", cfg.Width, cfg.Height)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetCatalogSort(true)

	pageW, pageH := pdf.GetPageSize()
	imgH := float64(cfg.Height) * pageW / float64(cfg.Width)
	pages := PageCount(cfg.Width, cfg.Height, pageW, pageH)

	switch {
	case pages == 1 || mode == PaginateClip:
		opt := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader("surface", opt, bytes.NewReader(bitmap))
		for i := 0; i < pages; i++ {
			pdf.AddPage()
			pdf.ImageOptions("surface", 0, -float64(i)*pageH, pageW, imgH, false, opt, 0, "")
		}
	default:
		if err := cropPages(pdf, bitmap, cfg, pages, pageW, pageH); err != nil {
			return nil, 0, err
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, 0, err
	}
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, 0, err
	}
	return out.Bytes(), pages, nil
}

// PageCount is the number of page-high slices the image needs once scaled
// to the page width, counted in source pixels. Always at least one.
func PageCount(imgW, imgH int, pageW, pageH float64) int {
	n := int(math.Ceil((float64(imgH) - sliverPx) / slicePixels(imgW, pageW, pageH)))
	if n < 1 {
		return 1
	}
	return n
}

// slicePixels is the height in source pixels of one page.
func slicePixels(imgW int, pageW, pageH float64) float64 {
	return pageH * float64(imgW) / pageW
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func cropPages(pdf *gofpdf.Fpdf, bitmap []byte, cfg image.Config, pages int, pageW, pageH float64) error {
	img, err := png.Decode(bytes.NewReader(bitmap))
	if err != nil {
		return fmt.Errorf("decode bitmap: %w", err)
	}
	src, ok := img.(subImager)
	if !ok {
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		src = rgba
	}

	slicePx := slicePixels(cfg.Width, pageW, pageH)
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	for i := 0; i < pages; i++ {
		y0 := int(math.Round(float64(i) * slicePx))
		y1 := cfg.Height
		if i < pages-1 {
			y1 = int(math.Round(float64(i+1) * slicePx))
		}
		b := img.Bounds()
		part := src.SubImage(image.Rect(b.Min.X, b.Min.Y+y0, b.Max.X, b.Min.Y+y1))

		var buf bytes.Buffer
		if err := png.Encode(&buf, part); err != nil {
			return fmt.Errorf("encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, opt, &buf)
		pdf.AddPage()
		h := float64(y1-y0) * pageW / float64(cfg.Width)
		pdf.ImageOptions(name, 0, 0, pageW, h, false, opt, 0, "")
	}
	return nil
}
