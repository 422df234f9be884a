package reservation

import (
	"errors"
	"fmt"
)

var (
	ErrIdempotencyKey  = errors.New("idempotency key not found")
	ErrNextID          = errors.New("get next id from generator")
	ErrRecordNotFound  = errors.New("record not found")
	ErrUnknownItemType = errors.New("unknown item type")
)

type InputError struct {
	fields map[string][]string
}

func NewInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) FieldsCount() int {
	return len(ie.fields)
}

func (ie *InputError) AddError(field, msg string) {
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return fmt.Sprintf("%+v", ie.fields)
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
