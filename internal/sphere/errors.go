package sphere

import (
	"errors"
	"fmt"
)

// Registry errors
var (
	// ErrNotFound is matched (via errors.Is) by every NotFoundError.
	ErrNotFound = errors.New("not found in registry")

	// ErrDuplicateID is returned when two domains or two sections share an identifier.
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrInvalidID is returned for identifiers that are not lower-case slugs.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrEmptyRegistry is returned when a registry is built without domains or sections.
	ErrEmptyRegistry = errors.New("registry needs at least one domain and one section")
)

// Kind names the registry partition an identifier was looked up in.
type Kind string

const (
	KindDomain  Kind = "domain"
	KindSection Kind = "section"
)

// NotFoundError reports an identifier outside the closed set.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in registry", e.Kind, e.ID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
