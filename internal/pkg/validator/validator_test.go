package validator

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" binding:"required,email"`
	Duration int    `json:"duration" binding:"required,gte=1"`
	Method   string `json:"paymentMethod" binding:"omitempty,oneof=card upi"`
	Product  string `form:"productName" binding:"required"`
}

func TestDetails_UsesWireNames(t *testing.T) {
	err := binding.Validator.ValidateStruct(&sample{Email: "nope", Method: "cash"})
	require.Error(t, err)

	details := Details(err)
	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}

	assert.Equal(t, "email must be a valid email", byField["email"])
	assert.Equal(t, "duration is required", byField["duration"])
	assert.Equal(t, "paymentMethod must be one of: card, upi", byField["paymentMethod"])
	assert.Equal(t, "productName is required", byField["productName"])
}

func TestDetails_NonValidationError(t *testing.T) {
	details := Details(errors.New("unexpected EOF"))
	require.Len(t, details, 1)
	assert.Equal(t, "body", details[0].Field)
}
