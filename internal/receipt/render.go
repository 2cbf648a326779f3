package receipt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/receipt/dto"
)

const minPaperWidth = 20

// Render produces the plain-text receipt body for a thermal printer of the
// template's paper width.
func Render(t *model.ReceiptTemplate, sale *dto.PreviewSale) string {
	width := t.PaperWidth
	if width < minPaperWidth {
		width = minPaperWidth
	}

	var b strings.Builder

	for _, line := range t.HeaderLines {
		writeCentered(&b, substitute(line, sale), width)
	}
	writeRule(&b, width)

	if sale.ReceiptNo != "" {
		b.WriteString("Receipt: " + sale.ReceiptNo + "\n")
		writeRule(&b, width)
	}

	for _, item := range sale.Items {
		left := fmt.Sprintf("%g x %s", item.Quantity, item.Name)
		right := fmt.Sprintf("%.2f", item.Quantity*item.Price)
		writeColumns(&b, left, right, width)
	}
	writeRule(&b, width)

	if t.ShowTaxSummary {
		writeColumns(&b, "Tax", fmt.Sprintf("%.2f", sale.TaxTotal), width)
	}
	writeColumns(&b, "TOTAL", fmt.Sprintf("%.2f", sale.Total), width)
	writeRule(&b, width)

	for _, line := range t.FooterLines {
		writeCentered(&b, substitute(line, sale), width)
	}

	return b.String()
}

func substitute(line string, sale *dto.PreviewSale) string {
	return strings.ReplaceAll(line, "{merchant_name}", sale.MerchantName)
}

func writeRule(b *strings.Builder, width int) {
	b.WriteString(strings.Repeat("-", width))
	b.WriteByte('\n')
}

// Widths are measured in runes so multibyte names line up and truncation
// never splits a character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func writeCentered(b *strings.Builder, s string, width int) {
	n := utf8.RuneCountInString(s)
	if n >= width {
		b.WriteString(truncate(s, width))
		b.WriteByte('\n')
		return
	}
	pad := (width - n) / 2
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(s)
	b.WriteByte('\n')
}

func writeColumns(b *strings.Builder, left, right string, width int) {
	space := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if space < 1 {
		// Truncate the left column so the amount stays aligned.
		keep := width - utf8.RuneCountInString(right) - 1
		if keep < 1 {
			keep = 1
		}
		left = truncate(left, keep)
		space = width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
		if space < 1 {
			space = 1
		}
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", space))
	b.WriteString(right)
	b.WriteByte('\n')
}
