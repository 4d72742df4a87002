package countdown

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeTruncates(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	values := []int64{0, 1, 999, 1000, 59_999, 60_000, 3_599_999, 86_399_999, 86_400_000, 9_244_799_000}
	for i := 0; i < 200; i++ {
		values = append(values, r.Int63n(400*msPerDay))
	}

	for _, ms := range values {
		units := Decompose(time.Duration(ms) * time.Millisecond)
		back := units.Milliseconds()
		require.LessOrEqual(t, back, ms, "ms=%d", ms)
		require.Greater(t, back, ms-1000, "ms=%d", ms)

		assert.GreaterOrEqual(t, units.Hours, int64(0))
		assert.Less(t, units.Hours, int64(24))
		assert.Less(t, units.Minutes, int64(60))
		assert.Less(t, units.Seconds, int64(60))
	}
}

func TestDecomposeNegativeIsZero(t *testing.T) {
	for _, d := range []time.Duration{-time.Millisecond, -time.Second, -48 * time.Hour} {
		assert.Equal(t, TimeUnits{}, Decompose(d))
	}
}

func TestDecomposeExact(t *testing.T) {
	d := 61*24*time.Hour + 11*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond
	assert.Equal(t, TimeUnits{Days: 61, Hours: 11, Minutes: 59, Seconds: 59}, Decompose(d))
}

func TestPadNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "00"},
		{7, "07"},
		{9, "09"},
		{10, "10"},
		{99, "99"},
		{100, "100"},
		{1234, "1234"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, PadNumber(tc.in, 2), "in=%d", tc.in)
	}
}

func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00%"},
		{100, "100.00%"},
		{33.335, "33.34%"},
		{42.523369085688074, "42.52%"},
		{12.5, "12.50%"},
		{99.999, "100.00%"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatPercentage(tc.in), "in=%v", tc.in)
	}
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{33.335, 33},
		{42.5, 43},
		{42.49, 42},
		{0, 0},
		{99.5, 100},
		{100, 100},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, RoundPercent(tc.in), "in=%v", tc.in)
	}
}
