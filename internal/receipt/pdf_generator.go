package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

// PDFGenerator writes receipts as PDF files into a configured directory.
type PDFGenerator struct {
	dir string
}

func NewPDFGenerator(dir string) (*PDFGenerator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipts dir: %w", err)
	}
	return &PDFGenerator{dir: dir}, nil
}

func (g *PDFGenerator) Generate(_ context.Context, order *domain.Order, items []domain.OrderItem) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order: #%d", order.ID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Customer: %s", order.Contact.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Address: %s", order.Contact.Address))
	pdf.Ln(12)

	for _, item := range items {
		line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		pdf.Cell(0, 8, fmt.Sprintf("%s x%d - %s", item.Name, item.Quantity, line.String()))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	if !order.PromoDiscount.IsZero() {
		pdf.Cell(0, 8, fmt.Sprintf("Promo discount (%s): -%s", order.PromoCode, order.PromoDiscount.String()))
		pdf.Ln(8)
	}
	if !order.RuleDiscount.IsZero() {
		pdf.Cell(0, 8, fmt.Sprintf("Discount: -%s", order.RuleDiscount.String()))
		pdf.Ln(8)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total: %s", order.Total.String()))

	path := filepath.Join(g.dir, fmt.Sprintf("receipt_%d.pdf", order.ID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write receipt: %w", err)
	}
	return path, nil
}
