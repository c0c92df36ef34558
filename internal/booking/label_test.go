package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeatLabel(t *testing.T) {
	cases := []struct {
		label  string
		row    string
		number int
	}{
		{"A1", "A", 1},
		{"A12", "A", 12},
		{"H9", "H", 9},
		{"b3", "B", 3},
		{" C7 ", "C", 7},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			row, number, err := ParseSeatLabel(tc.label)
			require.NoError(t, err)
			assert.Equal(t, tc.row, row)
			assert.Equal(t, tc.number, number)
		})
	}
}

func TestParseSeatLabelInvalid(t *testing.T) {
	for _, label := range []string{"", "A", "7", "1A", "A0", "A-1", "AA1", "A1.5", "!3"} {
		t.Run(label, func(t *testing.T) {
			_, _, err := ParseSeatLabel(label)
			assert.Error(t, err)
		})
	}
}

func TestFormatSeatLabelRoundTrip(t *testing.T) {
	row, number, err := ParseSeatLabel(FormatSeatLabel("D", 11))
	require.NoError(t, err)
	assert.Equal(t, "D", row)
	assert.Equal(t, 11, number)
}
