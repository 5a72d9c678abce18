package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string          `json:"name" validate:"required,notblank,max=5"`
	Email    string          `json:"email" validate:"required,email"`
	AuthorID string          `json:"authorId" validate:"required,uuid"`
	Body     json.RawMessage `json:"body" validate:"required,document"`
}

func valid() sample {
	return sample{
		Name:     "dave",
		Email:    "dave@x.com",
		AuthorID: "6f1c1a2e-9d4b-4a8e-8f57-2b1d3c4e5f60",
		Body:     json.RawMessage(`{"a":1}`),
	}
}

func TestValidateStructAccepts(t *testing.T) {
	fields, err := ValidateStruct(valid())
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestValidateStructReportsEveryField(t *testing.T) {
	fields, err := ValidateStruct(sample{Name: "toolong", Email: "nope", AuthorID: "42"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []FieldError{
		{Field: "name", Reason: "max=5"},
		{Field: "email", Reason: "email"},
		{Field: "authorId", Reason: "uuid"},
		{Field: "body", Reason: "required"},
	}, fields)
}

func TestValidateStructRules(t *testing.T) {
	cases := map[string]struct {
		mutate func(*sample)
		want   FieldError
	}{
		"blank name":       {func(s *sample) { s.Name = "   " }, FieldError{"name", "notblank"}},
		"max counts runes": {func(s *sample) { s.Name = "ééééé" }, FieldError{}},
		"null body":        {func(s *sample) { s.Body = json.RawMessage(`null`) }, FieldError{"body", "document"}},
		"broken body":      {func(s *sample) { s.Body = json.RawMessage(`{"a":`) }, FieldError{"body", "document"}},
		"scalar body":      {func(s *sample) { s.Body = json.RawMessage(`"text"`) }, FieldError{}},
		"braceless uuid":   {func(s *sample) { s.AuthorID = "6f1c1a2e9d4b4a8e8f572b1d3c4e5f60" }, FieldError{"authorId", "uuid"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)
			fields, err := ValidateStruct(s)
			require.NoError(t, err)
			if tc.want == (FieldError{}) {
				assert.Empty(t, fields)
				return
			}
			assert.Equal(t, []FieldError{tc.want}, fields)
		})
	}
}

func TestValidateStructNilPointer(t *testing.T) {
	var s *sample
	_, err := ValidateStruct(s)
	assert.Error(t, err)
}

func TestValidateID(t *testing.T) {
	assert.Empty(t, ValidateID("id", "6f1c1a2e-9d4b-4a8e-8f57-2b1d3c4e5f60"))
	assert.Equal(t, []FieldError{{Field: "id", Reason: "uuid"}}, ValidateID("id", "abc"))
	assert.Equal(t, []FieldError{{Field: "id", Reason: "required"}}, ValidateID("id", ""))
}

func TestValidateStructNoMarkup(t *testing.T) {
	type titled struct {
		Title string `json:"title" validate:"nomarkup,max=5"`
	}

	fields, err := ValidateStruct(titled{Title: "Q&A's"})
	require.NoError(t, err)
	assert.Empty(t, fields)

	fields, err = ValidateStruct(titled{Title: "<i>x"})
	require.NoError(t, err)
	assert.Equal(t, []FieldError{{Field: "title", Reason: "nomarkup"}}, fields)
}
