package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	val "github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"todolist/shared/failure"
)

var (
	validate        *val.Validate
	errTrailingData = errors.New("unexpected data after JSON value")
)

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("notblank", validators.NotBlank)
	if err != nil {
		panic(err)
	}
}

// Decode reads JSON from r into data. Unknown fields are ignored.
func Decode[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}

	return nil
}

// DecodeStrict reads a single JSON value from r into data and rejects fields
// that data does not declare as well as anything after the value.
func DecodeStrict[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}

	if err := decoder.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode request body: %w", errTrailingData)
	}

	return nil
}

// ValidateStruct checks data against its validate tags and returns a 400 failure
// carrying the first readable message.
func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
