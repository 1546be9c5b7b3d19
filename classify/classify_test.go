package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormatString(t *testing.T) {
	cases := []struct {
		format  string
		class   TemporalClass
		decimal int
	}{
		{"DATE9.", Date, 0},
		{"date9.", Date, 0},
		{"MMDDYY10.", Date, 0},
		{"YYMMDD", Date, 0},
		{"TIME8.", Time, 0},
		{"TIME8.3", Time, 3},
		{"TIME8.6", TimeMicro, 6},
		{"DATETIME22.", DateTimeSec, 0},
		{"DATETIME22.3", DateTimeMilli, 3},
		{"DATETIME25.6", DateTimeMicro, 6},
		{"", None, 0},
		{"NOTAFORMAT12.3", None, 0},
		{"BEST12.", None, 0},
	}

	for _, c := range cases {
		class, decimals := ParseFormatString(c.format)
		require.Equalf(t, c.class, class, "format %q", c.format)
		if c.class == Time || c.class == TimeMicro || c.class.IsDateTime() {
			require.Equalf(t, c.decimal, decimals, "format %q", c.format)
		}
	}
}

func TestRound14(t *testing.T) {
	require.InDelta(t, 1.5, Round14(1.5), 1e-15)
	require.Equal(t, Round14(1926803152.221), Round14(Round14(1926803152.221)), "idempotent")

	v := 22281.0
	require.Equal(t, v, Round14(v))

	require.True(t, math.IsNaN(Round14(math.NaN())))
	require.True(t, math.IsInf(Round14(math.Inf(1)), 1))
}

func TestTemporalClassString(t *testing.T) {
	require.Equal(t, "Date", Date.String())
	require.Equal(t, "DateTimeMilli", DateTimeMilli.String())
	require.Equal(t, "Unknown", TemporalClass(99).String())
}
