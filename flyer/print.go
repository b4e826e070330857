package flyer

import (
	"html/template"
	"io"

	"github.com/myliquor/myliquor-server/models"
)

// printTemplate reproduces the flyer pages as printable HTML: only the
// flyer content is visible under @media print, and every page but the last
// forces a page break.
var printTemplate = template.Must(template.New("flyer-print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.BusinessName}} - {{.Sale.Name}}</title>
<style>
  body { margin: 0; font-family: Helvetica, Arial, sans-serif; }
  .flyer-page { width: 210mm; min-height: 297mm; display: flex; flex-direction: column; background: #fff; }
  .flyer-header { text-align: center; padding: 2rem 0; color: #fff; background: {{.Colors.Background}}; }
  .flyer-header h1 { font-size: 2.2rem; margin: 0 0 .5rem; }
  .flyer-header h2 { font-size: 1.4rem; margin: 0 0 .5rem; }
  .flyer-grid { flex: 1; display: grid; grid-template-columns: repeat(5, 1fr); gap: 12px; padding: 24px; }
  .product-card { border: 2px solid #e5e7eb; border-radius: 6px; padding: 8px; text-align: center; position: relative; }
  .product-card img { max-width: 100%; max-height: 56px; object-fit: contain; }
  .no-image { color: #9ca3af; font-size: .7rem; line-height: 56px; background: #f9fafb; }
  .product-name { font-weight: bold; font-size: .75rem; margin: 6px 0 2px; }
  .product-size { color: #4b5563; font-size: .65rem; }
  .original-price { color: #6b7280; font-size: .65rem; text-decoration: line-through; }
  .sale-price { color: #fff; font-weight: bold; font-size: .95rem; border-radius: 4px; padding: 2px; background: {{.Colors.Background}}; }
  .save-pill { color: #fff; font-weight: bold; font-size: .65rem; border-radius: 4px; padding: 2px; margin-top: 3px; background: #DC2626; }
  .badge { position: absolute; top: 4px; right: 4px; color: #fff; font-size: .6rem; font-weight: bold; border-radius: 3px; padding: 2px 4px; background: {{.Colors.Accent}}; }
  .flyer-footer { text-align: center; padding: 1.5rem 1rem; color: #fff; background: {{.Colors.Accent}}; }
  .flyer-footer h3 { font-size: 1.1rem; margin: 0 0 1rem; }
  .footer-columns { display: grid; grid-template-columns: repeat(3, 1fr); gap: 1rem; font-size: .75rem; }
  .page-number { margin-top: 1rem; font-size: .65rem; }
  @media print {
    body * { visibility: hidden; }
    .flyer-content, .flyer-content * { visibility: visible; }
    .flyer-content { position: absolute; left: 0; top: 0; }
    .flyer-page { page-break-after: always; }
    .flyer-page:last-child { page-break-after: auto; }
  }
</style>
</head>
<body>
<div class="flyer-content">
{{range .Pages}}
  <div class="flyer-page">
    <div class="flyer-header">
      <h1>{{$.BusinessName}}</h1>
      <h2>{{$.Sale.Name}}</h2>
      <p>{{$.DateRange}}</p>
      {{if $.Theme}}<p>{{$.Theme.Name}} Theme</p>{{end}}
    </div>
    <div class="flyer-grid">
    {{range .Products}}
      <div class="product-card">
        {{if .BadgeText.Valid}}<div class="badge">{{.BadgeText.String}}</div>{{end}}
        {{if .ProductImage.Valid}}<img src="{{.ProductImage.String}}" alt="{{.ProductName}}">{{else}}<div class="no-image">No Image</div>{{end}}
        <div class="product-name">{{.ProductName}}</div>
        {{if .Size.Valid}}<div class="product-size">{{.Size.String}}</div>{{end}}
        <div class="original-price">Reg. ${{.OriginalPrice.StringFixed 2}}</div>
        <div class="sale-price">${{.SalePrice.StringFixed 2}}</div>
        <div class="save-pill">SAVE ${{.Savings}}</div>
      </div>
    {{end}}
    </div>
    <div class="flyer-footer">
      <h3>{{$.Info.PriceMatch}}</h3>
      <div class="footer-columns">
        <div>
          <strong>STORE HOURS</strong>
          {{range $.Info.Hours}}<p>{{.Days}}: {{.Hours}}</p>{{end}}
        </div>
        <div>
          <strong>PAYMENT METHODS</strong>
          <p>Interac - Visa - Mastercard - Amex</p>
          <p>Cash - Debit</p>
        </div>
        <div>
          <strong>CONTACT</strong>
          {{range $.Info.ContactNotes}}<p>{{.}}</p>{{end}}
        </div>
      </div>
      {{if gt $.PageCount 1}}<div class="page-number">Page {{.Number}} of {{$.PageCount}}</div>{{end}}
    </div>
  </div>
{{end}}
</div>
</body>
</html>
`))

type printPage struct {
	Number   int
	Products []models.SaleProduct
}

type printData struct {
	BusinessName string
	Sale         models.Sale
	Theme        *models.Theme
	Colors       Colors
	DateRange    string
	Info         models.StoreInfo
	PageCount    int
	Pages        []printPage
}

// RenderPrintHTML writes the print-ready HTML view of a flyer, sharing the
// PDF export's pagination and color resolution.
func RenderPrintHTML(w io.Writer, sale models.Sale, products []models.SaleProduct, theme *models.Theme) error {
	pageCount := PageCount(len(products))
	pages := make([]printPage, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		pages = append(pages, printPage{Number: i + 1, Products: PageProducts(products, i)})
	}

	return printTemplate.Execute(w, printData{
		BusinessName: BusinessName,
		Sale:         sale,
		Theme:        theme,
		Colors:       ResolveColors(sale, theme),
		DateRange:    FormatDateRange(sale.StartDate, sale.EndDate),
		Info:         models.Info,
		PageCount:    pageCount,
		Pages:        pages,
	})
}
