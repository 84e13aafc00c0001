package validator

import (
	"testing"

	ierr "github.com/flexprice/invoicer/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Description string `json:"description" validate:"required"`
}

type request struct {
	Name  string `json:"name" validate:"required"`
	Items []item `json:"items" validate:"required,min=1,dive"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	require.NoError(t, ValidateRequest(request{Name: "a", Items: []item{{Description: "x"}}}))

	err := ValidateRequest(request{Items: []item{{}}})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Contains(t, err.Error(), "items[0].description")
}

func TestNewValidatorIsShared(t *testing.T) {
	assert.Same(t, NewValidator(), NewValidator())
	assert.Same(t, NewValidator(), GetValidator())
}
