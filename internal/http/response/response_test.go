package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	resp := Error("Book not found")
	assert.Equal(t, "Book not found", resp.Message)
}

func TestInternal(t *testing.T) {
	resp := Internal("Failed to issue book", errors.New("connection refused"))
	assert.Equal(t, "Failed to issue book", resp.Message)
	assert.Equal(t, "connection refused", resp.Error)
}

func TestValidationError(t *testing.T) {
	type req struct {
		Name          string `validate:"required"`
		Email         string `validate:"required,email"`
		ExtensionDays int    `validate:"omitempty,gt=0"`
	}

	validate := validator.New()
	err := validate.Struct(req{Email: "not-an-email", ExtensionDays: -1})
	require.Error(t, err)

	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)

	resp := ValidationError(ve)
	assert.Contains(t, resp.Message, "field Name is a required field")
	assert.Contains(t, resp.Message, "field Email must be a valid email")
	assert.Contains(t, resp.Message, "field ExtensionDays must be greater than 0")
}
