package codec

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"e911audit/internal/domain"
)

func testReport() *domain.Report {
	m := domain.NewAddressMap()
	m.Upsert("127.12.17.90", "122")
	m.Upsert("127.12.17.90", "126")
	m.Upsert("127.153.63.153", "115")
	m.ApplyCIDs(map[string]string{"115": "5550115", "126": "5550126"})
	return m.Report(domain.AddressOrderLexical)
}

func TestForFormat(t *testing.T) {
	for _, format := range []string{"text", "json", "yaml"} {
		e, err := ForFormat(format, "")
		require.NoError(t, err)
		assert.Equal(t, format, e.Format())
	}

	e, err := ForFormat("", "")
	require.NoError(t, err)
	assert.Equal(t, "text", e.Format())

	_, err = ForFormat("csv", "")
	assert.ErrorContains(t, err, "unsupported report format")
}

func TestTextCodec(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextCodec("").Export(testReport(), &buf))

	want := "127.12.17.90\n" +
		"    122 - None\n" +
		"    126 - 5550126\n" +
		"\n" +
		"127.153.63.153\n" +
		"    115 - 5550115\n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestTextCodecNullMarker(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextCodec("<missing>").Export(testReport(), &buf))
	assert.Contains(t, buf.String(), "    122 - <missing>\n")
}

func TestTextCodecEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextCodec("").Export(domain.NewReport(), &buf))
	assert.Empty(t, buf.String())
}

func TestTextCodecFindings(t *testing.T) {
	report := testReport()
	report.Findings = domain.Analyze(report)

	var buf bytes.Buffer
	require.NoError(t, NewTextCodec("").Export(report, &buf))

	assert.Contains(t, buf.String(), "\n\nFindings\n    missing_cid 127.12.17.90: extensions 122\n\n")
}

func TestJSONCodec(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(testReport(), &buf))

	var decoded struct {
		Sections []struct {
			Address    string `json:"address"`
			Extensions []struct {
				Extension    string  `json:"extension"`
				EmergencyCID *string `json:"emergency_cid"`
			} `json:"extensions"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Sections, 2)
	assert.Equal(t, "127.12.17.90", decoded.Sections[0].Address)
	assert.Nil(t, decoded.Sections[0].Extensions[0].EmergencyCID)
	require.NotNil(t, decoded.Sections[0].Extensions[1].EmergencyCID)
	assert.Equal(t, "5550126", *decoded.Sections[0].Extensions[1].EmergencyCID)

	assert.Contains(t, buf.String(), `"emergency_cid": null`)
	assert.NotContains(t, buf.String(), "findings")
}

func TestJSONCodecEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONCodec().Export(domain.NewReport(), &buf))
	assert.JSONEq(t, `{"sections": []}`, buf.String())
}

func TestYAMLCodec(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLCodec().Export(testReport(), &buf))

	var decoded domain.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testReport(), &decoded)
	assert.Contains(t, buf.String(), "emergency_cid: null")
}
