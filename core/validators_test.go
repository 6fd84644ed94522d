package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestInitValidators(t *testing.T) {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)

	type data struct {
		Name  string      `json:"name" validate:"required"`
		Kind  string      `json:"kind" validate:"oneof=a b"`
		Date  null.String `json:"date" validate:"omitempty,datetime=2006-01-02"`
		Other string      `json:"-"`
	}

	translate := func(err error) map[string]string {
		vErrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok, "err = %v", err)
		msgs := make(map[string]string, len(vErrs))
		for _, vErr := range vErrs {
			msgs[vErr.Field()] = vErr.Translate(translator)
		}
		return msgs
	}

	assert.NoError(t, validate.Struct(data{Name: "x", Kind: "a"}))
	assert.NoError(t, validate.Struct(data{Name: "x", Kind: "b", Date: null.StringFrom("2023-02-28")}))

	assert.Equal(
		t,
		map[string]string{
			"name": "this field is required",
			"kind": "kind must be one of [a b]",
			"date": "date must be a valid date formatted as YYYY-MM-DD",
		},
		translate(validate.Struct(data{Kind: "c", Date: null.StringFrom("2023-02-30")})),
	)
}
