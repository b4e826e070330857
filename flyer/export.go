package flyer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/myliquor/myliquor-server/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Progress receives user-visible notices during a multi-attempt export.
type Progress interface {
	Attempt(attempt, maxAttempts int)
	Retrying(attempt int, delay time.Duration)
	Success(fileName string)
	FallingBack(err error)
}

// LogProgress reports export progress through logrus.
type LogProgress struct{}

func (LogProgress) Attempt(attempt, maxAttempts int) {
	logrus.Infof("flyer: generating PDF, attempt %d/%d", attempt, maxAttempts)
}

func (LogProgress) Retrying(attempt int, delay time.Duration) {
	logrus.Infof("flyer: attempt %d failed, retrying in %s", attempt, delay)
}

func (LogProgress) Success(fileName string) {
	logrus.Infof("flyer: generated %s", fileName)
}

func (LogProgress) FallingBack(err error) {
	logrus.Errorf("flyer: all attempts failed, falling back to print view: %v", err)
}

// Generator assembles flyer pages into an A4 PDF. The zero value is not
// usable; construct with NewGenerator.
type Generator struct {
	Prober   *ImageProber
	Progress Progress

	// Fallback runs after the last attempt fails, standing in for the
	// native print dialog.
	Fallback func()

	MaxAttempts    int
	ChunkSize      int
	ChunkPause     time.Duration
	RetryBaseDelay time.Duration

	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{
		Prober:         NewImageProber(),
		Progress:       LogProgress{},
		MaxAttempts:    MaxAttempts,
		ChunkSize:      ChunkSize,
		ChunkPause:     50 * time.Millisecond,
		RetryBaseDelay: RetryBaseDelay,
		now:            time.Now,
	}
}

// Export is the retry-hardened variant: images are pre-probed, pages are
// rasterized in small chunks, and a failed attempt is retried with linear
// backoff. After the last failure the fallback hook runs and the terminal
// error is returned. On success the PDF is written to w and the suggested
// file name returned.
func (g *Generator) Export(ctx context.Context, sale models.Sale, products []models.SaleProduct, theme *models.Theme, w io.Writer) (string, error) {
	images := g.Prober.FetchAll(ctx, products, theme)

	var lastErr error
	for attempt := 1; attempt <= g.MaxAttempts; attempt++ {
		g.Progress.Attempt(attempt, g.MaxAttempts)

		output, err := g.buildPDF(ctx, sale, products, theme, images)
		if err == nil {
			if _, err := w.Write(output); err != nil {
				return "", err
			}
			fileName := FileName(sale.Name, g.now())
			g.Progress.Success(fileName)
			return fileName, nil
		}
		lastErr = err

		if attempt < g.MaxAttempts {
			delay := time.Duration(attempt) * g.RetryBaseDelay
			g.Progress.Retrying(attempt, delay)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	g.Progress.FallingBack(lastErr)
	if g.Fallback != nil {
		g.Fallback()
	}
	return "", errors.Wrapf(lastErr, "flyer export failed after %d attempts", g.MaxAttempts)
}

// ExportOnce is the non-hardened variant: same layout and pagination,
// single attempt, no chunk pacing; failure goes straight to the fallback.
func (g *Generator) ExportOnce(ctx context.Context, sale models.Sale, products []models.SaleProduct, theme *models.Theme, w io.Writer) (string, error) {
	images := g.Prober.FetchAll(ctx, products, theme)

	output, err := g.buildPDF(ctx, sale, products, theme, images)
	if err != nil {
		if g.Fallback != nil {
			g.Fallback()
		}
		return "", err
	}
	if _, err := w.Write(output); err != nil {
		return "", err
	}
	return FileName(sale.Name, g.now()), nil
}

// buildPDF rasterizes every page and packs the frames into an A4 PDF. Each
// frame fills a page whose height follows the frame's pixel aspect ratio,
// so A4 proportions are preserved exactly. A frame that cannot be encoded
// becomes a text placeholder page instead of aborting the document.
func (g *Generator) buildPDF(ctx context.Context, sale models.Sale, products []models.SaleProduct, theme *models.Theme, images map[string]image.Image) ([]byte, error) {
	pageCount := PageCount(len(products))
	if pageCount == 0 {
		return nil, errors.New("sale has no products to lay out")
	}

	colors := ResolveColors(sale, theme)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: A4WidthMM, Ht: A4HeightMM},
	})
	pdf.SetCompression(true)

	chunkSize := g.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1
	}

	for start := 0; start < pageCount; start += chunkSize {
		end := start + chunkSize
		if end > pageCount {
			end = pageCount
		}
		for pageIndex := start; pageIndex < end; pageIndex++ {
			frame := RenderPage(sale, theme, PageProducts(products, pageIndex), pageIndex, pageCount, colors, images)
			g.placeFrame(pdf, frame, pageIndex)
		}
		// Inter-chunk yield keeps decoded frames from piling up and lets
		// cancellation land between chunks.
		if end < pageCount {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(g.ChunkPause):
			}
		}
	}

	if pdf.Err() {
		return nil, errors.Errorf("pdf assembly failed: %s", pdf.Error())
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (g *Generator) placeFrame(pdf *gofpdf.Fpdf, frame image.Image, pageIndex int) {
	var encoded bytes.Buffer
	err := jpeg.Encode(&encoded, frame, &jpeg.Options{Quality: JPEGQuality})

	bounds := frame.Bounds()
	if err != nil || bounds.Dx() == 0 || bounds.Dy() == 0 {
		logrus.Errorf("flyer: failed to encode page %d frame: %v", pageIndex+1, err)
		g.placePlaceholder(pdf, pageIndex)
		return
	}

	height := float64(bounds.Dy()) * A4WidthMM / float64(bounds.Dx())
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: A4WidthMM, Ht: height})

	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	name := fmt.Sprintf("flyer-page-%d", pageIndex)
	pdf.RegisterImageOptionsReader(name, opts, &encoded)
	pdf.ImageOptions(name, 0, 0, A4WidthMM, height, false, opts, 0, "")
}

// placePlaceholder inserts a text page noting the failed frame so the rest
// of the document still ships.
func (g *Generator) placePlaceholder(pdf *gofpdf.Fpdf, pageIndex int) {
	pdf.AddPageFormat("P", gofpdf.SizeType{Wd: A4WidthMM, Ht: A4HeightMM})
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(0, A4HeightMM/2)
	pdf.CellFormat(A4WidthMM, 10, fmt.Sprintf("Page %d - Image Generation Failed", pageIndex+1), "", 0, "C", false, 0, "")
}
