package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeetingPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{name: "monday wednesday friday", raw: "MWF", want: []string{"M", "W", "F"}},
		{name: "tuesday thursday pair code", raw: "TR", want: []string{"T", "R"}},
		{name: "ttr variant", raw: "TTR", want: []string{"T", "R"}},
		{name: "saturday code", raw: "SA", want: []string{"S"}},
		{name: "sunday code", raw: "SU", want: []string{"X"}},
		{name: "single thursday", raw: "R", want: []string{"R"}},
		{name: "duplicate days collapse", raw: "MM", want: []string{"M"}},
		{name: "empty", raw: "", want: nil},
		{name: "whitespace only", raw: "   ", want: nil},
		{name: "ingestion sentinel", raw: NoMeetingPattern, want: nil},
		{name: "unknown token", raw: "Z", wantErr: true},
		{name: "unknown token embedded", raw: "MZF", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseMeetingPattern(tc.raw)
			if tc.wantErr {
				require.Error(t, err)

				var malformed *MalformedPatternError
				require.ErrorAs(t, err, &malformed)
				assert.Equal(t, tc.raw, malformed.Pattern)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseMeetingPattern_TuesdayNotErased(t *testing.T) {
	t.Parallel()

	// The legacy pipeline collapsed the "TR" pair code to Thursday only,
	// systematically undercounting Tuesday density. Both days must survive.
	days, err := ParseMeetingPattern("TR")
	require.NoError(t, err)
	assert.Contains(t, days, Tuesday)
	assert.Contains(t, days, Thursday)
}
