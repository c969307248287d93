package codec

import (
	"bufio"
	"fmt"
	"io"

	"e911audit/internal/domain"
)

// DefaultNullMarker is printed for extensions with no emergency CID
const DefaultNullMarker = "None"

// TextCodec renders the plain text report:
//
//	127.12.17.90
//	    122 - None
//	    126 - 5550126
//
// Each section ends with a blank line. Findings, when present, follow the sections.
type TextCodec struct {
	nullMarker string
}

// NewTextCodec creates a new text codec
func NewTextCodec(nullMarker string) *TextCodec {
	if nullMarker == "" {
		nullMarker = DefaultNullMarker
	}
	return &TextCodec{nullMarker: nullMarker}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

// Export writes the report as text
func (c *TextCodec) Export(report *domain.Report, w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, s := range report.Sections {
		fmt.Fprintln(bw, s.Address)
		for _, e := range s.Entries {
			fmt.Fprintf(bw, "    %s - %s\n", e.Extension, e.CID(c.nullMarker))
		}
		fmt.Fprintln(bw)
	}

	if len(report.Findings) > 0 {
		fmt.Fprintln(bw, "Findings")
		for _, f := range report.Findings {
			fmt.Fprintf(bw, "    %s\n", f)
		}
		fmt.Fprintln(bw)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
