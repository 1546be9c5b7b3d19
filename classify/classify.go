// Package classify maps a SAS format string to a semantic temporal class, and
// provides the Round14 fractional-rounding primitive shared by numeric
// ingestion.
package classify

import (
	"strconv"
	"strings"
)

// ParseFormatString classifies a SAS format string (case-insensitive, may
// carry a trailing width and optional ".d" decimal-places suffix, e.g.
// "DATETIME22.3") into a TemporalClass plus, for temporal classes with
// sub-second precision, the decimal-places count that produced the class.
//
// Dispatch order: match the format's name token against the Date family set
// first, then the Time family set (decimals partition Time/TimeMicro), then
// the DateTime family set (decimals partition Sec/Milli/Micro). An unknown or
// empty format yields None.
func ParseFormatString(format string) (class TemporalClass, decimals int) {
	name, decimals := splitFormatString(format)
	if name == "" {
		return None, 0
	}

	if dateFamilies[name] {
		return Date, 0
	}

	if timeFamilies[name] {
		if decimals >= 4 && decimals <= 6 {
			return TimeMicro, decimals
		}

		return Time, decimals
	}

	if dateTimeFamilies[name] {
		switch {
		case decimals >= 4 && decimals <= 6:
			return DateTimeMicro, decimals
		case decimals >= 1 && decimals <= 3:
			return DateTimeMilli, decimals
		default:
			return DateTimeSec, 0
		}
	}

	return None, 0
}

// splitFormatString extracts the uppercased alphabetic name token and the
// decimal-places count (".d" suffix) from a raw SAS format string. Width
// digits between the name and the decimal point are discarded — they do not
// affect classification.
func splitFormatString(format string) (name string, decimals int) {
	s := strings.ToUpper(strings.TrimSpace(format))
	if s == "" {
		return "", 0
	}

	// Split off the ".d" decimal-places suffix, if present.
	var decStr string
	if i := strings.IndexByte(s, '.'); i >= 0 {
		decStr = s[i+1:]
		s = s[:i]
	}

	// The name token is the leading run of non-digit characters; width digits
	// (e.g. the "22" in "DATETIME22") follow immediately after.
	i := 0
	for i < len(s) && (s[i] < '0' || s[i] > '9') {
		i++
	}
	name = s[:i]

	if decStr != "" {
		if d, err := strconv.Atoi(decStr); err == nil {
			decimals = d
		}
	}

	return name, decimals
}
