package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/shared/errors"
)

type itemPayload struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

type createPayload struct {
	ClientID    uint          `json:"client_id" validate:"required"`
	Description string        `json:"description" validate:"required,max=255"`
	Priority    string        `json:"priority" validate:"omitempty,oneof=low normal high urgent"`
	Items       []itemPayload `json:"items" validate:"dive"`
}

func TestValidateStruct_FieldMap(t *testing.T) {
	err := ValidateStruct(createPayload{
		Priority: "whenever",
		Items:    []itemPayload{{Quantity: 1}, {Quantity: 0}},
	})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, 422, appErr.Code)
	assert.Equal(t, []string{"client_id is required"}, appErr.Fields["client_id"])
	assert.Equal(t, []string{"description is required"}, appErr.Fields["description"])
	assert.Contains(t, appErr.Fields, "priority")
	assert.Equal(t, []string{"quantity must be greater than or equal to 1"}, appErr.Fields["items.1.quantity"])
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.NoError(t, ValidateStruct(createPayload{ClientID: 1, Description: "oil change"}))
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 1, LastPage(0, 15))
	assert.Equal(t, 1, LastPage(15, 15))
	assert.Equal(t, 2, LastPage(16, 15))
	assert.Equal(t, 7, LastPage(100, 15))
}

func TestValidatePagination(t *testing.T) {
	p := ValidatePagination(0, 0, 15)
	assert.Equal(t, Pagination{Page: 1, PerPage: 15}, p)

	p = ValidatePagination(3, 500, 15)
	assert.Equal(t, Pagination{Page: 3, PerPage: 100}, p)
}
