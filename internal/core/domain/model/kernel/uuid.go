package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero (nil) UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes",
)

// UUID identifies a request or an integration event.
//
// The zero value wraps uuid.Nil and never validates, which is how an empty
// request identifier supplied by a caller is recognised.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// DerivedUUID returns a name based (version 5) UUID. The same parent and
// name always yield the same identifier.
func DerivedUUID(parent UUID, name string) UUID {
	return UUID{id: uuid.NewSHA1(parent.id, []byte(name))}
}

// UUIDFromString parses s. The nil UUID parses successfully and is rejected by Validate.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes restores a UUID read from storage.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google/uuid value for persistence.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsNil reports whether u is the nil (all zero) UUID.
func (u UUID) IsNil() bool {
	return u.id == uuid.Nil
}

func (u UUID) Validate() error {
	if u.IsNil() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
