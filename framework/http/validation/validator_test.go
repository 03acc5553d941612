package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-ioc/framework/http/validation"
)

func TestValidator_Passes(t *testing.T) {
	v := validation.Make(map[string]string{
		"name":  "Alice",
		"email": "alice@example.com",
		"age":   "30",
		"role":  "admin",
	}, validation.Rules{
		"name":  "required|min:2|max:100",
		"email": "required|email",
		"age":   "integer",
		"role":  "in:admin, user",
	})

	assert.True(t, v.Passes())
	assert.False(t, v.Errors().Has())
}

func TestValidator_Failures(t *testing.T) {
	tests := []struct {
		name  string
		value string
		rules string
		want  string
	}{
		{"required", "  ", "required", "The field field is required."},
		{"email", "not-an-email", "email", "The field must be a valid email address."},
		{"email with display name", "Alice <alice@example.com>", "email", "The field must be a valid email address."},
		{"numeric", "abc", "numeric", "The field must be a number."},
		{"integer", "1.5", "integer", "The field must be an integer."},
		{"min", "é", "min:2", "The field must be at least 2 characters."},
		{"max", "abcd", "max:3", "The field may not be greater than 3 characters."},
		{"in", "root", "in:admin,user", "The selected field is invalid."},
		{"unknown rule", "x", "shiny", `Unknown validation rule "shiny".`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validation.Make(map[string]string{"field": tt.value}, validation.Rules{"field": tt.rules})

			assert.True(t, v.Fails())
			assert.Equal(t, tt.want, v.Errors().First("field"))
		})
	}
}

func TestValidator_StopsAtFirstFailure(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"email": "required|email"})

	assert.True(t, v.Fails())
	assert.Len(t, v.Errors().Bag["email"], 1)
	assert.Equal(t, "The email field is required.", v.Errors().First("email"))
}

func TestValidator_FailsIsIdempotent(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"name": "required"})

	assert.True(t, v.Fails())
	assert.True(t, v.Fails())
	assert.Len(t, v.Errors().Bag["name"], 1)
}

func TestErrors_FirstMissingField(t *testing.T) {
	var e validation.Errors
	assert.Equal(t, "", e.First("nope"))
	assert.False(t, e.Has())
}
