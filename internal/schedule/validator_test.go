package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2025, 9, 25, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(DefaultRules())
	require.NoError(t, err)
	return v
}

func fieldsOf(vs []FieldViolation, field string) []FieldViolation {
	var out []FieldViolation
	for _, v := range vs {
		if v.Field == field {
			out = append(out, v)
		}
	}
	return out
}

func TestValidateValid(t *testing.T) {
	v := newTestValidator(t)

	assert.Empty(t, v.Validate("Meeting", "Discuss project 2", t0, t1))
	assert.Empty(t, v.Validate("Lunch", "", t0, t1))
	assert.Empty(t, v.Validate("Hi, there! Ready? Stand-up.", "Room 4, floor 2.", t0, t1))
	assert.Empty(t, v.Validate(strings.Repeat("a", 50), strings.Repeat("1", 50), t0, t1))
}

func TestValidateTitle(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"empty", "", "title required"},
		{"whitespace", "   ", "title required"},
		{"too long", strings.Repeat("a", 51), "title must be at most 50 characters"},
		{"digit", "Meeting 2", "title may only contain letters, spaces and basic punctuation"},
		{"symbol", "Pay $5", "title may only contain letters, spaces and basic punctuation"},
		{"non ascii", "Réunion", "title may only contain letters, spaces and basic punctuation"},
		{"too long and bad chars", strings.Repeat("9", 60), "title must be at most 50 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fieldsOf(v.Validate(tt.title, "", t0, t1), "title")
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Message)
		})
	}
}

func TestValidateDescription(t *testing.T) {
	v := newTestValidator(t)

	got := fieldsOf(v.Validate("Call", strings.Repeat("x", 51), t0, t1), "description")
	require.Len(t, got, 1)
	assert.Equal(t, "description must be at most 50 characters", got[0].Message)

	got = fieldsOf(v.Validate("Call", "see <notes>", t0, t1), "description")
	require.Len(t, got, 1)
	assert.Equal(t, "description may only contain letters, digits, spaces and basic punctuation", got[0].Message)
}

func TestValidateTimes(t *testing.T) {
	v := newTestValidator(t)

	got := v.Validate("Call", "", t1, t0)
	require.Len(t, got, 1)
	assert.Equal(t, FieldViolation{Field: "end_time", Message: "end must be after start"}, got[0])

	got = v.Validate("Call", "", t0, t0)
	require.Len(t, got, 1)
	assert.Equal(t, "end must be after start", got[0].Message)

	got = v.Validate("Call", "", time.Time{}, time.Time{})
	assert.Equal(t, []FieldViolation{
		{Field: "start_time", Message: "start time required"},
		{Field: "end_time", Message: "end time required"},
	}, got)
}

func TestValidateCollectsEverything(t *testing.T) {
	v := newTestValidator(t)

	got := v.Validate("", "bad #", t1, t0)
	assert.Equal(t, []string{
		"title required",
		"description may only contain letters, digits, spaces and basic punctuation",
		"end must be after start",
	}, (&ValidationError{Violations: got}).Messages())
}

func TestNewValidatorRules(t *testing.T) {
	v, err := NewValidator(Rules{TitleMaxLength: 30, DescriptionMaxLength: 200})
	require.NoError(t, err)
	assert.Equal(t, DefaultTitlePattern, v.Rules().TitlePattern)

	got := v.Validate(strings.Repeat("a", 31), strings.Repeat("b", 150), t0, t1)
	require.Len(t, got, 1)
	assert.Equal(t, "title must be at most 30 characters", got[0].Message)

	_, err = NewValidator(Rules{TitlePattern: "("})
	assert.Error(t, err)

	_, err = NewValidator(Rules{TitleMaxLength: -1})
	assert.Error(t, err)
}
