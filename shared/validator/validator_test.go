package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todolist/shared/failure"
	"todolist/shared/validator"
)

type todoInput struct {
	Title    string `json:"title"    validate:"notblank"`
	Priority int    `json:"priority" validate:"gte=0,lte=5"`
	Status   string `json:"status"   validate:"omitempty,oneof=open done"`
}

type patchBody struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        todoInput
		wantMessage string
	}{
		{
			name: "valid",
			data: todoInput{Title: "Buy milk", Priority: 2, Status: "open"},
		},
		{
			name:        "blank title",
			data:        todoInput{Title: "   ", Priority: 2},
			wantMessage: "Title must not be blank",
		},
		{
			name:        "priority out of range",
			data:        todoInput{Title: "Buy milk", Priority: 9},
			wantMessage: "Priority must be less than or equal to 5",
		},
		{
			name:        "unknown status",
			data:        todoInput{Title: "Buy milk", Status: "archived"},
			wantMessage: "Status must be one of open done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantMessage == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMessage, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "text", field: "Buy milk", tag: "notblank", expectError: false},
		{name: "empty", field: "", tag: "notblank", expectError: true},
		{name: "whitespace only", field: "  \t ", tag: "notblank", expectError: true},
		{name: "required present", field: "x", tag: "required", expectError: false},
		{name: "required missing", field: "", tag: "required", expectError: true},
		{name: "numeric port", field: "8080", tag: "numeric", expectError: false},
		{name: "non numeric port", field: "http", tag: "numeric", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecodeStrict(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{name: "known fields", jsonBody: `{"title":"Buy milk","completed":true}`, expectError: false},
		{name: "empty object", jsonBody: `{}`, expectError: false},
		{name: "unknown field", jsonBody: `{"title":"Buy milk","priority":1}`, expectError: true},
		{name: "wrong type", jsonBody: `{"completed":"yes"}`, expectError: true},
		{name: "malformed JSON", jsonBody: `{"title":`, expectError: true},
		{name: "trailing newline", jsonBody: "{\"completed\":true}\n", expectError: false},
		{name: "trailing value", jsonBody: `{"completed":true}{"priority":1}`, expectError: true},
		{name: "trailing garbage", jsonBody: `{"completed":true} x`, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data patchBody

			err := validator.DecodeStrict(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDecode_IgnoresUnknownFields(t *testing.T) {
	var data patchBody

	err := validator.Decode(strings.NewReader(`{"title":"Buy milk","priority":1}`), &data)

	require.NoError(t, err)
	require.NotNil(t, data.Title)
	assert.Equal(t, "Buy milk", *data.Title)
	assert.Nil(t, data.Completed)
}
