package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	cases := []struct {
		raw     string
		want    ClockTime
		wantErr bool
	}{
		{raw: "09:00", want: NewClockTime(9, 0)},
		{raw: "23:59", want: EndOfDay},
		{raw: "00:00", want: Midnight},
		{raw: "14:30:00", want: NewClockTime(14, 30)},
		{raw: "9am", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "25:00", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseClockTime(tc.raw)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.raw)
			continue
		}
		require.NoError(t, err, "input %q", tc.raw)
		assert.Equal(t, tc.want, got, "input %q", tc.raw)
	}
}

func TestClockTimeJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(NewClockTime(9, 5))
	require.NoError(t, err)
	assert.Equal(t, `"09:05"`, string(data))

	var parsed ClockTime
	require.NoError(t, json.Unmarshal([]byte(`"17:30"`), &parsed))
	assert.Equal(t, NewClockTime(17, 30), parsed)

	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &parsed))
}

func TestClockTimeSQLValue(t *testing.T) {
	v, err := NewClockTime(8, 15).Value()
	require.NoError(t, err)
	assert.Equal(t, "08:15:00", v)
}

func TestClockTimeScan(t *testing.T) {
	var c ClockTime

	require.NoError(t, c.Scan("10:45:00"))
	assert.Equal(t, NewClockTime(10, 45), c)

	require.NoError(t, c.Scan([]byte("06:30")))
	assert.Equal(t, NewClockTime(6, 30), c)

	require.NoError(t, c.Scan(time.Date(2026, 1, 1, 13, 20, 0, 0, time.UTC)))
	assert.Equal(t, NewClockTime(13, 20), c)

	assert.Error(t, c.Scan(42))
}

func TestTimeSlotOverlapsHalfOpen(t *testing.T) {
	base := NewTimeSlot(NewClockTime(10, 0), NewClockTime(10, 30))

	// Touching boundaries do not overlap.
	assert.False(t, base.Overlaps(NewTimeSlot(NewClockTime(10, 30), NewClockTime(11, 0))))
	assert.False(t, base.Overlaps(NewTimeSlot(NewClockTime(9, 30), NewClockTime(10, 0))))

	assert.True(t, base.Overlaps(NewTimeSlot(NewClockTime(10, 15), NewClockTime(10, 45))))
	assert.True(t, base.Overlaps(NewTimeSlot(NewClockTime(9, 0), NewClockTime(12, 0))))
	assert.True(t, base.Overlaps(base))
}

func TestTimeSlotValid(t *testing.T) {
	assert.True(t, NewTimeSlot(NewClockTime(9, 0), NewClockTime(9, 30)).Valid())
	assert.False(t, NewTimeSlot(NewClockTime(9, 30), NewClockTime(9, 0)).Valid())
	assert.False(t, NewTimeSlot(NewClockTime(9, 0), NewClockTime(9, 0)).Valid())
}

func TestTimeSlotListSQLRoundTrip(t *testing.T) {
	list := TimeSlotList{
		{Start: NewClockTime(9, 0), End: NewClockTime(12, 0)},
		{Start: NewClockTime(13, 0), End: NewClockTime(17, 0)},
	}
	v, err := list.Value()
	require.NoError(t, err)

	var scanned TimeSlotList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, list, scanned)

	var empty TimeSlotList
	ev, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), ev)
}
