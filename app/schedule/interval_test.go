package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "00:00:00", want: 0},
		{value: "09:00:00", want: 540},
		{value: "10:15:00", want: 615},
		{value: "23:59:59", want: 1439},
		{value: "9:30:00", want: 570},
		{value: "", wantErr: true},
		{value: "09:00", wantErr: true},
		{value: "24:00:00", wantErr: true},
		{value: "09:61:00", wantErr: true},
		{value: "noon", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.value, func(t *testing.T) {
			t.Parallel()

			got, err := ParseClock(tc.value)
			if tc.wantErr {
				var invalid *InvalidTimeError
				require.ErrorAs(t, err, &invalid)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildInterval(t *testing.T) {
	t.Parallel()

	iv, ok, err := BuildInterval("09:00:00", "10:15:00")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Interval{Begin: 540, End: 615}, iv)
}

func TestBuildInterval_ZeroDurationSkipped(t *testing.T) {
	t.Parallel()

	_, ok, err := BuildInterval("09:00:00", "09:00:00")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildInterval_BadTimes(t *testing.T) {
	t.Parallel()

	_, _, err := BuildInterval("", "10:00:00")
	assert.Error(t, err)

	_, _, err = BuildInterval("09:00:00", "bogus")
	assert.Error(t, err)

	// Overnight wraparound is unsupported.
	_, _, err = BuildInterval("22:00:00", "01:00:00")
	assert.Error(t, err)
}

func TestIntervalContains_HalfOpen(t *testing.T) {
	t.Parallel()

	iv := Interval{Begin: 540, End: 600}
	assert.True(t, iv.Contains(540))
	assert.True(t, iv.Contains(599))
	assert.False(t, iv.Contains(600))
	assert.False(t, iv.Contains(539))
}
