// Package ticket renders printable order tickets in 80mm thermal format.
package ticket

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/cantina-pos/internal/models"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth  = 80.0
	pageHeight = 297.0
	marginX    = 5.0
	lineHeight = 4.0
)

// Generator writes ticket PDFs into a directory.
type Generator struct {
	dir string
}

// NewGenerator creates a generator writing into dir, creating it if needed.
func NewGenerator(dir string) (*Generator, error) {
	if dir == "" {
		dir = "tickets"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create tickets dir: %w", err)
	}
	return &Generator{dir: dir}, nil
}

// Generate renders the ticket for an order and returns the file path.
func (g *Generator) Generate(order *models.Order) (string, error) {
	if order == nil {
		return "", fmt.Errorf("nil order")
	}
	path := filepath.Join(g.dir, fmt.Sprintf("ticket_%04d.pdf", order.TicketNumber))

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := 10.0
	y = centered(pdf, tr, y, "Helvetica", "B", 14, "La Cantina Mexicana")
	y += 1
	y = centered(pdf, tr, y, "Helvetica", "", 8, "RFC: CME123456ABC")
	y = centered(pdf, tr, y, "Helvetica", "", 8, "Guadalajara, Jalisco")
	y = centered(pdf, tr, y, "Helvetica", "", 8, "Tel: (33) 1234-5678")
	y = separator(pdf, y+2)

	pdf.SetFont("Helvetica", "", 8)
	y = left(pdf, tr, y, fmt.Sprintf("Ticket: #%04d", order.TicketNumber))
	y = left(pdf, tr, y, fmt.Sprintf("Cliente: %s", order.CustomerName))
	when := order.CreatedAt
	if when.IsZero() {
		when = time.Now()
	}
	y = left(pdf, tr, y, fmt.Sprintf("Fecha: %s", when.Format("02/01/2006 15:04")))
	y = separator(pdf, y+2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.Text(marginX, y, tr("Cant."))
	pdf.Text(15, y, tr("Producto"))
	rightAligned(pdf, tr, y, "Total")
	y += lineHeight + 1

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range order.Items {
		name := ""
		if item.MenuItem != nil {
			name = item.MenuItem.Name
		}
		name = truncateRunes(name, 25)
		pdf.Text(marginX, y, fmt.Sprintf("%d", item.Quantity))
		pdf.Text(15, y, tr(name))
		rightAligned(pdf, tr, y, fmt.Sprintf("$%s", item.Subtotal.String()))
		y += lineHeight

		pdf.SetFont("Helvetica", "", 7)
		pdf.Text(15, y, tr(fmt.Sprintf("$%s c/u", item.UnitPrice.String())))
		y += lineHeight + 1
		pdf.SetFont("Helvetica", "", 8)

		if notes := item.Notes; notes != nil && *notes != "" {
			pdf.SetFont("Helvetica", "I", 7)
			pdf.Text(15, y, tr(*notes))
			y += lineHeight
			pdf.SetFont("Helvetica", "", 8)
		}
	}
	y = separator(pdf, y+2)

	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(marginX, y, tr("Subtotal:"))
	rightAligned(pdf, tr, y, fmt.Sprintf("$%s", order.Subtotal.String()))
	y += lineHeight
	pdf.Text(marginX, y, tr("IVA (16%):"))
	rightAligned(pdf, tr, y, fmt.Sprintf("$%s", order.IVA.String()))
	y += lineHeight + 2

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(marginX, y, tr("TOTAL:"))
	rightAligned(pdf, tr, y, fmt.Sprintf("$%s", order.Total.String()))
	y = separator(pdf, y+4)

	y = centered(pdf, tr, y, "Helvetica", "B", 9, "¡Gracias por su preferencia!")
	centered(pdf, tr, y, "Helvetica", "", 8, "Vuelva pronto")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write ticket pdf: %w", err)
	}
	return path, nil
}

func centered(pdf *fpdf.Fpdf, tr func(string) string, y float64, family, style string, size float64, s string) float64 {
	pdf.SetFont(family, style, size)
	w := pdf.GetStringWidth(tr(s))
	pdf.Text((pageWidth-w)/2, y, tr(s))
	return y + lineHeight
}

func left(pdf *fpdf.Fpdf, tr func(string) string, y float64, s string) float64 {
	pdf.Text(marginX, y, tr(s))
	return y + lineHeight
}

func rightAligned(pdf *fpdf.Fpdf, tr func(string) string, y float64, s string) {
	w := pdf.GetStringWidth(tr(s))
	pdf.Text(pageWidth-marginX-w, y, tr(s))
}

func separator(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.Line(marginX, y, pageWidth-marginX, y)
	return y + 6
}

// truncateRunes shortens s to at most max runes. Cutting by bytes could split
// a multi-byte character in the middle.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
