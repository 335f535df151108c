// Package format renders file metadata for display.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// sizeUnits are binary-prefix units, index = power of 1024.
var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count with base-1024 units and two decimals.
// Zero renders as "0 Bytes".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	k := unitExponent(bytes)
	value := float64(bytes) / math.Pow(1024, float64(k))
	return fmt.Sprintf("%.2f %s", value, sizeUnits[k])
}

// unitExponent picks the largest unit not exceeding bytes, capped at GB.
func unitExponent(bytes int64) int {
	k := 0
	for v := bytes; v >= 1024 && k < len(sizeUnits)-1; v /= 1024 {
		k++
	}
	return k
}

// ParseSize reads back a string produced by FormatSize. It returns the
// numeric value and the unit exponent k (value is bytes/1024^k).
func ParseSize(text string) (float64, int, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q", text)
	}
	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid size value %q: %w", fields[0], err)
	}
	for k, unit := range sizeUnits {
		if strings.EqualFold(fields[1], unit) {
			return value, k, nil
		}
	}
	return 0, 0, fmt.Errorf("unknown size unit %q", fields[1])
}
