package submission

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medical-data-entry/internal/domain/entries"
)

func TestIsValid(t *testing.T) {
	full := entries.Entry{Age: "30", Gender: entries.GenderMale, DoctorName: "Dr. A", Disease: "Flu"}
	assert.True(t, IsValid(full))

	for _, f := range []entries.Field{entries.FieldAge, entries.FieldGender, entries.FieldDoctorName, entries.FieldDisease} {
		e := full
		switch f {
		case entries.FieldAge:
			e.Age = ""
		case entries.FieldGender:
			e.Gender = ""
		case entries.FieldDoctorName:
			e.DoctorName = ""
		case entries.FieldDisease:
			e.Disease = ""
		}
		assert.False(t, IsValid(e), "missing %s", f)
	}
}

func TestIsValid_WhitespaceCountsAsPresent(t *testing.T) {
	e := entries.Entry{Age: "40", Gender: entries.GenderFemale, DoctorName: " ", Disease: "Cold"}
	assert.True(t, IsValid(e))

	rec, err := BuildRecord(e)
	require.NoError(t, err)
	assert.Equal(t, " ", rec.DoctorName)
}

func TestBuildRecord_AgeIsInteger_TimesNull(t *testing.T) {
	rec, err := BuildRecord(entries.Entry{Age: "45", Gender: entries.GenderFemale, DoctorName: "Dr. B", Disease: "Asthma"})
	require.NoError(t, err)

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"age": 45,
		"gender": "Female",
		"doctor_name": "Dr. B",
		"disease": "Asthma",
		"start_time": null,
		"end_time": null
	}`, string(b))
}

func TestBuildRecord_KeepsTimes(t *testing.T) {
	rec, err := BuildRecord(entries.Entry{
		Age: " 7 ", Gender: entries.GenderOther, DoctorName: "Dr. C", Disease: "Cold",
		StartTime: "10/19/2026, 09:30:00 AM",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, rec.Age)
	require.NotNil(t, rec.StartTime)
	assert.Equal(t, "10/19/2026, 09:30:00 AM", *rec.StartTime)
	assert.Nil(t, rec.EndTime)
}

func TestBuildRecord_AgeLeadingDigits(t *testing.T) {
	cases := map[string]int{
		"30 years": 30,
		"12.5":     12,
		" 7":       7,
		"+5":       5,
		"0":        0,
	}
	for raw, want := range cases {
		rec, err := BuildRecord(entries.Entry{Age: raw, Gender: entries.GenderMale, DoctorName: "d", Disease: "x"})
		require.NoError(t, err, raw)
		assert.Equal(t, want, rec.Age, raw)
	}
}

func TestBuildRecord_InvalidAge(t *testing.T) {
	for _, raw := range []string{"abc", "-1", " ", "years 30", "-"} {
		_, err := BuildRecord(entries.Entry{Age: raw, Gender: entries.GenderMale, DoctorName: "d", Disease: "x"})
		assert.ErrorIs(t, err, ErrInvalidAge, raw)
	}
}
