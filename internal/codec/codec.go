package codec

import (
	"fmt"
	"io"

	"e911audit/internal/domain"
)

// Exporter renders an audit report in one output format
type Exporter interface {
	Export(report *domain.Report, w io.Writer) error
	Format() string
}

// ForFormat returns the exporter for format ("text", "json" or "yaml").
// nullMarker is the text shown for extensions without an emergency CID.
func ForFormat(format, nullMarker string) (Exporter, error) {
	switch format {
	case "", "text":
		return NewTextCodec(nullMarker), nil
	case "json":
		return NewJSONCodec(), nil
	case "yaml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}
