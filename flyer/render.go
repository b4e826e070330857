package flyer

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/myliquor/myliquor-server/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	regularFont *truetype.Font
	boldFont    *truetype.Font
)

func init() {
	var err error
	regularFont, err = truetype.Parse(goregular.TTF)
	if err != nil {
		logrus.Panicf("Failed to parse regular font: %+v", err)
	}
	boldFont, err = truetype.Parse(gobold.TTF)
	if err != nil {
		logrus.Panicf("Failed to parse bold font: %+v", err)
	}
}

// Page geometry in logical pixels (multiplied by the capture scale when
// rasterizing).
const (
	headerHeight = 180.0
	footerHeight = 210.0
	gridMargin   = 24.0
	gridGap      = 12.0
	cardPadding  = 8.0
	imageHeight  = 56.0
)

type pageRenderer struct {
	dc     *gg.Context
	scale  float64
	colors Colors
	images map[string]image.Image
}

// RenderPage rasterizes one flyer page (header, product grid, footer) into
// a bitmap at the capture scale, on a white background.
func RenderPage(sale models.Sale, theme *models.Theme, products []models.SaleProduct, pageIndex, pageCount int, colors Colors, images map[string]image.Image) image.Image {
	scale := float64(CaptureScale)
	dc := gg.NewContext(int(PageWidthPx*scale), int(PageHeightPx*scale))
	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	r := &pageRenderer{dc: dc, scale: scale, colors: colors, images: images}
	r.drawHeader(sale, theme)
	r.drawGrid(products)
	r.drawFooter(pageIndex, pageCount)
	return dc.Image()
}

func (r *pageRenderer) face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size * r.scale})
}

func (r *pageRenderer) px(v float64) float64 {
	return v * r.scale
}

func (r *pageRenderer) drawHeader(sale models.Sale, theme *models.Theme) {
	dc := r.dc
	w, h := r.px(PageWidthPx), r.px(headerHeight)

	dc.SetHexColor(r.colors.Background)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	// Translucent theme header image: paint it, then wash the band color
	// back over it.
	if theme != nil && theme.HeaderImageURL.Valid {
		if img, ok := r.images[theme.HeaderImageURL.String]; ok {
			r.drawImageCover(img, 0, 0, w, h)
			bg := parseHexColor(r.colors.Background)
			dc.SetRGBA(float64(bg.R)/255, float64(bg.G)/255, float64(bg.B)/255, 0.8)
			dc.DrawRectangle(0, 0, w, h)
			dc.Fill()
		}
	}

	centerX := w / 2
	dc.SetHexColor("#FFFFFF")
	dc.SetFontFace(r.face(boldFont, 34))
	dc.DrawStringAnchored(BusinessName, centerX, r.px(48), 0.5, 0.5)
	dc.SetFontFace(r.face(boldFont, 22))
	dc.DrawStringAnchored(sale.Name, centerX, r.px(90), 0.5, 0.5)
	dc.SetFontFace(r.face(regularFont, 14))
	dc.DrawStringAnchored(FormatDateRange(sale.StartDate, sale.EndDate), centerX, r.px(122), 0.5, 0.5)
	if theme != nil {
		dc.SetRGBA(1, 1, 1, 0.8)
		dc.SetFontFace(r.face(regularFont, 11))
		dc.DrawStringAnchored(theme.Name+" Theme", centerX, r.px(148), 0.5, 0.5)
	}
}

func (r *pageRenderer) drawGrid(products []models.SaleProduct) {
	gridTop := headerHeight + gridMargin
	gridHeight := PageHeightPx - headerHeight - footerHeight - 2*gridMargin
	cardWidth := (PageWidthPx - 2*gridMargin - (GridColumns-1)*gridGap) / GridColumns
	cardHeight := (gridHeight - (GridRows-1)*gridGap) / GridRows

	for i := range products {
		col := i % GridColumns
		row := i / GridColumns
		x := gridMargin + float64(col)*(cardWidth+gridGap)
		y := gridTop + float64(row)*(cardHeight+gridGap)
		r.drawCard(products[i], x, y, cardWidth, cardHeight)
	}
}

func (r *pageRenderer) drawCard(product models.SaleProduct, x, y, w, h float64) {
	dc := r.dc

	dc.SetHexColor("#FFFFFF")
	dc.DrawRoundedRectangle(r.px(x), r.px(y), r.px(w), r.px(h), r.px(6))
	dc.Fill()
	dc.SetHexColor("#E5E7EB")
	dc.SetLineWidth(r.px(1.5))
	dc.DrawRoundedRectangle(r.px(x), r.px(y), r.px(w), r.px(h), r.px(6))
	dc.Stroke()

	centerX := x + w/2

	// Image or placeholder
	imgX, imgY := x+cardPadding, y+cardPadding
	imgW := w - 2*cardPadding
	dc.SetHexColor("#F9FAFB")
	dc.DrawRectangle(r.px(imgX), r.px(imgY), r.px(imgW), r.px(imageHeight))
	dc.Fill()

	var img image.Image
	if product.ProductImage.Valid {
		img = r.images[product.ProductImage.String]
	}
	if img != nil {
		r.drawImageFit(img, r.px(imgX), r.px(imgY), r.px(imgW), r.px(imageHeight))
	} else {
		dc.SetHexColor("#9CA3AF")
		dc.SetFontFace(r.face(regularFont, 8))
		dc.DrawStringAnchored("No Image", r.px(centerX), r.px(imgY+imageHeight/2), 0.5, 0.5)
	}

	// Name, wrapped to the card
	dc.SetHexColor("#111827")
	dc.SetFontFace(r.face(boldFont, 10))
	dc.DrawStringWrapped(product.ProductName, r.px(centerX), r.px(y+74), 0.5, 0, r.px(w-2*cardPadding), 1.2, gg.AlignCenter)

	textY := y + 100.0
	if product.Size.Valid {
		dc.SetHexColor("#4B5563")
		dc.SetFontFace(r.face(regularFont, 8))
		dc.DrawStringAnchored(product.Size.String, r.px(centerX), r.px(textY), 0.5, 0.5)
	}
	textY += 14

	// Struck-through original price
	reg := "Reg. $" + product.OriginalPrice.StringFixed(2)
	dc.SetHexColor("#6B7280")
	dc.SetFontFace(r.face(regularFont, 8))
	regWidth, _ := dc.MeasureString(reg)
	dc.DrawStringAnchored(reg, r.px(centerX), r.px(textY), 0.5, 0.5)
	dc.SetLineWidth(r.px(1))
	dc.DrawLine(r.px(centerX)-regWidth/2, r.px(textY), r.px(centerX)+regWidth/2, r.px(textY))
	dc.Stroke()
	textY += 12

	// Sale price pill in the background color
	pillW, pillH := w-2*cardPadding, 20.0
	dc.SetHexColor(r.colors.Background)
	dc.DrawRoundedRectangle(r.px(x+cardPadding), r.px(textY), r.px(pillW), r.px(pillH), r.px(4))
	dc.Fill()
	dc.SetHexColor("#FFFFFF")
	dc.SetFontFace(r.face(boldFont, 13))
	dc.DrawStringAnchored("$"+product.SalePrice.StringFixed(2), r.px(centerX), r.px(textY+pillH/2), 0.5, 0.5)
	textY += pillH + 4

	// SAVE pill in the fixed alert color
	saveH := 14.0
	dc.SetHexColor(SavingsBadgeColor)
	dc.DrawRoundedRectangle(r.px(x+cardPadding), r.px(textY), r.px(pillW), r.px(saveH), r.px(4))
	dc.Fill()
	dc.SetHexColor("#FFFFFF")
	dc.SetFontFace(r.face(boldFont, 8))
	dc.DrawStringAnchored("SAVE $"+product.Savings(), r.px(centerX), r.px(textY+saveH/2), 0.5, 0.5)

	// Corner badge in the accent color
	if product.BadgeText.Valid {
		dc.SetFontFace(r.face(boldFont, 7))
		badgeWidth, _ := dc.MeasureString(product.BadgeText.String)
		badgeW := badgeWidth + r.px(8)
		badgeH := r.px(12)
		badgeX := r.px(x+w-4) - badgeW
		badgeY := r.px(y + 4)
		dc.SetHexColor(r.colors.Accent)
		dc.DrawRoundedRectangle(badgeX, badgeY, badgeW, badgeH, r.px(3))
		dc.Fill()
		dc.SetHexColor("#FFFFFF")
		dc.DrawStringAnchored(product.BadgeText.String, badgeX+badgeW/2, badgeY+badgeH/2, 0.5, 0.5)
	}
}

func (r *pageRenderer) drawFooter(pageIndex, pageCount int) {
	dc := r.dc
	top := r.px(PageHeightPx - footerHeight)
	w := r.px(PageWidthPx)

	dc.SetHexColor(r.colors.Accent)
	dc.DrawRectangle(0, top, w, r.px(footerHeight))
	dc.Fill()

	centerX := w / 2
	dc.SetHexColor("#FFFFFF")
	dc.SetFontFace(r.face(boldFont, 14))
	dc.DrawStringAnchored(models.Info.PriceMatch, centerX, top+r.px(30), 0.5, 0.5)

	colWidth := PageWidthPx / 3.0
	columns := []struct {
		title string
		lines []string
	}{
		{"STORE HOURS", []string{
			models.Info.Hours[0].Days + ": " + models.Info.Hours[0].Hours,
			models.Info.Hours[1].Days + ": " + models.Info.Hours[1].Hours,
		}},
		{"PAYMENT METHODS", []string{
			"Interac - Visa - Mastercard - Amex",
			"Cash - Debit",
		}},
		{"CONTACT", models.Info.ContactNotes},
	}
	for i, column := range columns {
		colX := r.px(colWidth/2 + float64(i)*colWidth)
		colY := top + r.px(62)
		dc.SetFontFace(r.face(boldFont, 10))
		dc.DrawStringAnchored(column.title, colX, colY, 0.5, 0.5)
		dc.SetFontFace(r.face(regularFont, 8))
		for j, line := range column.lines {
			dc.DrawStringAnchored(line, colX, colY+r.px(16+float64(j)*12), 0.5, 0.5)
		}
	}

	if pageCount > 1 {
		dc.SetFontFace(r.face(regularFont, 9))
		dc.DrawStringAnchored(fmt.Sprintf("Page %d of %d", pageIndex+1, pageCount), centerX, top+r.px(footerHeight-24), 0.5, 0.5)
	}
}

// drawImageFit scales an image to fit inside a box, centered, preserving
// aspect ratio. Box coordinates are in device pixels.
func (r *pageRenderer) drawImageFit(img image.Image, x, y, w, h float64) {
	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}
	scale := math.Min(w/iw, h/ih)
	r.dc.Push()
	r.dc.Translate(x+(w-iw*scale)/2, y+(h-ih*scale)/2)
	r.dc.Scale(scale, scale)
	r.dc.DrawImage(img, 0, 0)
	r.dc.Pop()
}

// drawImageCover scales an image to cover a box, cropping overflow.
func (r *pageRenderer) drawImageCover(img image.Image, x, y, w, h float64) {
	iw := float64(img.Bounds().Dx())
	ih := float64(img.Bounds().Dy())
	if iw == 0 || ih == 0 {
		return
	}
	scale := math.Max(w/iw, h/ih)
	r.dc.Push()
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Clip()
	r.dc.Translate(x+(w-iw*scale)/2, y+(h-ih*scale)/2)
	r.dc.Scale(scale, scale)
	r.dc.DrawImage(img, 0, 0)
	r.dc.ResetClip()
	r.dc.Pop()
}
