package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero", bytes: 0, want: "0 Bytes"},
		{name: "one byte", bytes: 1, want: "1.00 Bytes"},
		{name: "just under a kilobyte", bytes: 1023, want: "1023.00 Bytes"},
		{name: "one kilobyte", bytes: 1024, want: "1.00 KB"},
		{name: "kilobyte and a half", bytes: 1536, want: "1.50 KB"},
		{name: "two megabytes", bytes: 2 * 1024 * 1024, want: "2.00 MB"},
		{name: "sixteen megabytes", bytes: 16 * 1024 * 1024, want: "16.00 MB"},
		{name: "one gigabyte", bytes: 1 << 30, want: "1.00 GB"},
		{name: "capped at gigabytes", bytes: 2048 << 30, want: "2048.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.bytes))
		})
	}
}

func TestParseSize_RoundTrip(t *testing.T) {
	sizes := []int64{1, 7, 512, 1023, 1024, 1500, 65535, 1048575, 1048576, 2 * 1024 * 1024,
		5_000_000, 16*1024*1024 + 1, 33_554_431, 1<<30 - 1, 1 << 30, 7_654_321_987}

	for _, size := range sizes {
		text := FormatSize(size)
		value, k, err := ParseSize(text)
		require.NoError(t, err, "parsing %q", text)

		exact := float64(size) / math.Pow(1024, float64(k))
		assert.InDelta(t, exact, value, 0.01, "size %d rendered as %q", size, text)
	}
}

func TestParseSize_Errors(t *testing.T) {
	for _, text := range []string{"", "12", "abc KB", "12 PB", "1 2 3"} {
		_, _, err := ParseSize(text)
		assert.Error(t, err, "expected error for %q", text)
	}
}

func TestParseSize_Zero(t *testing.T) {
	value, k, err := ParseSize("0 Bytes")
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)
	assert.Equal(t, 0, k)
}

func TestIconClass(t *testing.T) {
	assert.Equal(t, "bi-filetype-pdf file-pdf", IconClass("pdf"))
	assert.Equal(t, "bi-markdown file-md", IconClass("md"))
	assert.Equal(t, "bi-file-earmark-ppt file-pptx", IconClass("pptx"))
	assert.Equal(t, DefaultIconClass, IconClass("png"))
}
