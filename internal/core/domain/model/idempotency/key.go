package idempotency

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Key identifies one logical request for one kind of command. The same request
// id may be used for different command types without colliding.
type Key struct {
	RequestID   kernel.UUID
	CommandType string
}

func NewKey(requestID kernel.UUID, commandType string) (Key, error) {
	var typeErr error
	if commandType == "" {
		typeErr = errs.NewValueIsRequiredError("commandType")
	}
	if err := errors.Join(requestID.Validate(), typeErr); err != nil {
		return Key{}, err
	}
	return Key{RequestID: requestID, CommandType: commandType}, nil
}

func (k Key) Validate() error {
	if k.CommandType == "" {
		return errs.NewValueIsRequiredError("commandType")
	}
	return k.RequestID.Validate()
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.RequestID, k.CommandType)
}
