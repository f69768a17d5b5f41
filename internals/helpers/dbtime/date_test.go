package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Date_AddDays_RollsOverMonthAndYear(t *testing.T) {
	cases := []struct {
		from Date
		days int
		want Date
	}{
		{NewDate(2024, time.January, 1), 7, NewDate(2024, time.January, 8)},
		{NewDate(2024, time.January, 28), 7, NewDate(2024, time.February, 4)},
		{NewDate(2024, time.February, 25), 7, NewDate(2024, time.March, 3)}, // leap year
		{NewDate(2023, time.February, 25), 7, NewDate(2023, time.March, 4)},
		{NewDate(2024, time.December, 29), 7, NewDate(2025, time.January, 5)},
	}
	for _, tc := range cases {
		got := tc.from.AddDays(tc.days)
		assert.Equal(t, tc.want.String(), got.String(), "from %s", tc.from)
	}
}

func Test_ParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-08")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.January, 8), d)

	d, err = ParseDate("2024-01-08 00:00:00+00:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-08", d.String())

	_, err = ParseDate("08/01/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func Test_Date_ScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-05", d.String())

	require.NoError(t, d.Scan([]byte("2024-03-06")))
	assert.Equal(t, "2024-03-06", d.String())

	require.NoError(t, d.Scan("2024-03-07"))
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07", v)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
	v, err = d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, d.Scan(42))
}

func Test_Date_JSON(t *testing.T) {
	type payload struct {
		On  Date  `json:"on"`
		Off *Date `json:"off"`
	}
	b, err := json.Marshal(payload{On: NewDate(2024, time.January, 8)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"on":"2024-01-08","off":null}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"on":"2024-02-01","off":"2024-02-03"}`), &p))
	assert.Equal(t, "2024-02-01", p.On.String())
	require.NotNil(t, p.Off)
	assert.Equal(t, "2024-02-03", p.Off.String())
}

func Test_Date_Compare(t *testing.T) {
	a := NewDate(2024, time.January, 8)
	b := NewDate(2024, time.January, 9)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(DateOf(time.Date(2024, 1, 8, 23, 59, 0, 0, time.UTC))))
}

func Test_Today_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*60*60)
	want := DateOf(time.Now().In(loc))
	assert.Equal(t, want, Today(loc))
	assert.Equal(t, want, TodayFunc(loc)())

	fixed := NewDate(2020, time.June, 1)
	assert.Equal(t, fixed, FixedToday(fixed)())
}
