package receipt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nivapos/catalog-service/internal/model"
	"github.com/nivapos/catalog-service/internal/receipt/dto"
)

func sampleSale() *dto.PreviewSale {
	return &dto.PreviewSale{
		MerchantName: "Corner Store",
		ReceiptNo:    "R-0001",
		Items: []dto.PreviewItem{
			{Name: "Cola 330ml", Quantity: 2, Price: 2.50},
			{Name: "Chips", Quantity: 1, Price: 1.20},
		},
		TaxTotal: 0.62,
		Total:    6.20,
	}
}

func TestDefaultTemplate(t *testing.T) {
	tpl, err := DefaultTemplate("m-1")
	require.NoError(t, err)

	assert.Equal(t, "m-1", tpl.MerchantID)
	assert.Equal(t, "default", tpl.Name)
	assert.Equal(t, 42, tpl.PaperWidth)
	assert.True(t, tpl.ShowTaxSummary)
	assert.NotEmpty(t, tpl.HeaderLines)
	assert.NotEmpty(t, tpl.FooterLines)
}

func TestRenderLinesFitPaperWidth(t *testing.T) {
	tpl, err := DefaultTemplate("m-1")
	require.NoError(t, err)

	out := Render(tpl, sampleSale())
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), tpl.PaperWidth, "line %q overflows", line)
	}
}

func TestRenderSubstitutesMerchantName(t *testing.T) {
	tpl := &model.ReceiptTemplate{
		HeaderLines: model.StringList{"{merchant_name}"},
		PaperWidth:  32,
	}

	out := Render(tpl, sampleSale())
	assert.Contains(t, out, "Corner Store")
	assert.NotContains(t, out, "{merchant_name}")
}

func TestRenderItemsAndTotals(t *testing.T) {
	tpl := &model.ReceiptTemplate{PaperWidth: 40, ShowTaxSummary: true}

	out := Render(tpl, sampleSale())
	assert.Contains(t, out, "2 x Cola 330ml")
	assert.Contains(t, out, "5.00")
	assert.Contains(t, out, "Tax")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "6.20")
}

func TestRenderOmitsTaxWhenDisabled(t *testing.T) {
	tpl := &model.ReceiptTemplate{PaperWidth: 40, ShowTaxSummary: false}

	out := Render(tpl, sampleSale())
	assert.NotContains(t, out, "Tax ")
}

func TestRenderCentersMultibyteHeader(t *testing.T) {
	tpl := &model.ReceiptTemplate{
		HeaderLines: model.StringList{"{merchant_name}"},
		PaperWidth:  21,
	}
	sale := sampleSale()
	sale.MerchantName = "Čajovňa U Žofie"

	out := Render(tpl, sale)
	header := strings.Split(out, "\n")[0]
	// 15 runes on 21 columns centers with 3 leading spaces.
	assert.Equal(t, "   Čajovňa U Žofie", header)
}

func TestRenderTruncatesOnRuneBoundary(t *testing.T) {
	tpl := &model.ReceiptTemplate{PaperWidth: 24}
	sale := sampleSale()
	sale.Items = []dto.PreviewItem{
		{Name: "Žinčica ovčia nefiltrovaná veľká", Quantity: 1, Price: 3.10},
	}

	out := Render(tpl, sale)
	assert.True(t, utf8.ValidString(out))
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), tpl.PaperWidth, "line %q overflows", line)
	}
	assert.Contains(t, out, "3.10")
}

func TestRenderClampsNarrowPaper(t *testing.T) {
	tpl := &model.ReceiptTemplate{PaperWidth: 5}

	out := Render(tpl, sampleSale())
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), minPaperWidth)
	}
}
