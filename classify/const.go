package classify

// Persisted constants that must match the reference SAS-to-Unix conversion
// behavior exactly. Changing any of these changes the on-disk meaning of
// already-converted data, so they are not configurable.
const (
	// DayShift is the number of days from the SAS epoch (1960-01-01) to the
	// Unix epoch (1970-01-01). Subtracted from a raw SAS date value to get
	// days-since-Unix-epoch.
	DayShift = 3653

	// SecShift is the number of seconds from the SAS epoch to the Unix epoch.
	// Subtracted from a raw SAS datetime value (in seconds) before scaling to
	// the target Timestamp unit.
	SecShift = 315619200

	// RoundScale is the fractional-decimal-digit precision used by Round14:
	// values are rounded to 14 digits after the decimal point.
	RoundScale = 1e14
)
