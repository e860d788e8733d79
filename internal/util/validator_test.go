package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/guregu/null.v3"
)

func TestValidator(t *testing.T) {
	v := NewValidator()

	type request struct {
		Name  string      `validate:"required,nonblank"`
		Level null.Int    `validate:"omitempty,gte=1"`
		Notes null.String `validate:"omitempty,max=3"`
	}

	assert.NoError(t, v.Struct(request{Name: "Vyke"}))
	assert.Error(t, v.Struct(request{Name: "   "}))
	assert.Error(t, v.Struct(request{Name: "Vyke", Level: null.IntFrom(0)}))
	assert.NoError(t, v.Struct(request{Name: "Vyke", Level: null.IntFrom(7)}))
	assert.Error(t, v.Struct(request{Name: "Vyke", Notes: null.StringFrom("long")}))
}
