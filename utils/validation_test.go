package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Role  string `validate:"omitempty,oneof=admin manager user"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		err := ValidateStruct(&sampleRequest{Email: "a@b.com", Role: "admin"})
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := ValidateStruct(&sampleRequest{})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields["Email"], "required")
	})

	t.Run("bad role value", func(t *testing.T) {
		err := ValidateStruct(&sampleRequest{Email: "a@b.com", Role: "superuser"})
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields["Role"], "one of")
	})
}

func TestValidateUUID(t *testing.T) {
	assert.NoError(t, ValidateUUID("7b2a1fd4-5cc0-4f6e-9ad1-0f2f6a1f1a11"))
	assert.Error(t, ValidateUUID("not-a-uuid"))
}
