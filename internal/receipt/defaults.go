package receipt

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/nivapos/catalog-service/internal/model"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type templateDefaults struct {
	Name           string   `yaml:"name"`
	HeaderLines    []string `yaml:"header_lines"`
	FooterLines    []string `yaml:"footer_lines"`
	PaperWidth     int      `yaml:"paper_width"`
	ShowLogo       bool     `yaml:"show_logo"`
	ShowBarcode    bool     `yaml:"show_barcode"`
	ShowTaxSummary bool     `yaml:"show_tax_summary"`
}

// DefaultTemplate returns the built-in template used until a merchant saves
// their own.
func DefaultTemplate(merchantID string) (*model.ReceiptTemplate, error) {
	var d templateDefaults
	if err := yaml.Unmarshal(defaultsYAML, &d); err != nil {
		return nil, errors.Wrap(err, "parse default receipt template")
	}
	return &model.ReceiptTemplate{
		MerchantID:     merchantID,
		Name:           d.Name,
		HeaderLines:    model.StringList(d.HeaderLines),
		FooterLines:    model.StringList(d.FooterLines),
		PaperWidth:     d.PaperWidth,
		ShowLogo:       d.ShowLogo,
		ShowBarcode:    d.ShowBarcode,
		ShowTaxSummary: d.ShowTaxSummary,
	}, nil
}
