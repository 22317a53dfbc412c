package serverutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Message string `validate:"required"`
	Mode    string `validate:"omitempty,oneof=personal workspace"`
}

func TestValidateRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(sampleRequest{Message: "hi", Mode: "personal"}))
	})

	t.Run("optional field omitted", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(sampleRequest{Message: "hi"}))
	})

	t.Run("missing required field", func(t *testing.T) {
		err := ValidateRequest(sampleRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Message")
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("invalid enum value", func(t *testing.T) {
		err := ValidateRequest(sampleRequest{Message: "hi", Mode: "hybrid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oneof")
	})
}
