package adapter

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"e911audit/internal/domain"
)

func TestParseEmergencyCIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]string
	}{
		{
			name:  "single entry",
			input: "/DEVICE/814/emergency_cid : 713652565",
			want:  map[string]string{"814": "713652565"},
		},
		{
			name:  "padded entry",
			input: "/DEVICE/814/emergency_cid                         : 713652565    ",
			want:  map[string]string{"814": "713652565"},
		},
		{
			name:  "missing suffix",
			input: "/DEVICE/814/emergency : 713652565",
			want:  map[string]string{},
		},
		{
			name:  "other key",
			input: "/AMPUSER/814/cidnum                               : 814",
			want:  map[string]string{},
		},
		{
			name:  "empty value",
			input: "/DEVICE/124/emergency_cid                         :",
			want:  map[string]string{},
		},
		{
			name:  "non-numeric extension",
			input: "/DEVICE/abc/emergency_cid : 713652565",
			want:  map[string]string{},
		},
		{
			name:  "last occurrence wins",
			input: "/DEVICE/814/emergency_cid : 1111111\n/DEVICE/814/emergency_cid : 2222222\n",
			want:  map[string]string{"814": "2222222"},
		},
		{
			name:  "empty",
			input: "",
			want:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseEmergencyCIDs(tt.input))
		})
	}
}

func TestParseEmergencyCIDsFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/database_show.txt")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"115": "5550115",
		"120": "5550120",
		"121": "5550126",
		"126": "5550126",
		"814": "713652565",
	}, ParseEmergencyCIDs(string(data)))
}

func TestFormatDatabaseShow(t *testing.T) {
	entries := []domain.DBEntry{
		{Key: "/DEVICE/814/emergency_cid", Value: "713652565"},
		{Key: "/DEVICE/814/user", Value: "814"},
		{Key: "/DEVICE/9000000000000000000000000000000000000000001/emergency_cid", Value: "5550001"},
	}

	out := FormatDatabaseShow(entries)
	assert.Contains(t, out, "3 results found.")
	assert.Equal(t, map[string]string{
		"814":                                         "713652565",
		"9000000000000000000000000000000000000000001": "5550001",
	}, ParseEmergencyCIDs(out))
}
