package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"00:00", nil},
		{"10:30", nil},
		{"23:59", nil},
		{"24:00", ErrTimeOutOfRange},
		{"10:60", ErrTimeOutOfRange},
		{"1:30", ErrInvalidTimeString},
		{"10-30", ErrInvalidTimeString},
		{"10:30:00", ErrInvalidTimeString},
		{"", ErrInvalidTimeString},
		{"ab:cd", ErrInvalidTimeString},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	assert.Equal(t, 0, TimeString("00:00").Minutes())
	assert.Equal(t, 630, TimeString("10:30").Minutes())
	assert.Equal(t, 1439, TimeString("23:59").Minutes())
}

func TestTimeString_Ordering(t *testing.T) {
	a := TimeString("10:00")
	b := TimeString("12:00")

	assert.True(t, a.IsBefore(b))
	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "11:15", ts.String())

	_, err = TimeString("23:30").AddMinutes(60)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestFromMinutes(t *testing.T) {
	ts, err := FromMinutes(630)
	require.NoError(t, err)
	assert.Equal(t, "10:30", ts.String())

	_, err = FromMinutes(-1)
	require.ErrorIs(t, err, ErrTimeOutOfRange)

	_, err = FromMinutes(1440)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_ScanTruncatesSeconds(t *testing.T) {
	// Колонки TIME приходят из postgres как "HH:MM:SS"
	var ts TimeString
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan([]byte("08:15:59")))
	assert.Equal(t, "08:15", ts.String())
}

func TestTimeString_ScanNil(t *testing.T) {
	ts := TimeString("10:00")
	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestTimeString_ValueZeroIsNull(t *testing.T) {
	v, err := TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = TimeString("10:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:30", v)
}

func TestTimeString_UnmarshalJSONValidates(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.UnmarshalJSON([]byte(`"10:30"`)))
	assert.Equal(t, "10:30", ts.String())

	require.Error(t, ts.UnmarshalJSON([]byte(`"25:00"`)))
}
