package content

import "errors"

var (
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("item not found")

	// ErrInvalidForm is returned when a form is saved with required fields
	// missing.
	ErrInvalidForm = errors.New("required fields are missing")

	// ErrFormClosed is returned when saving a form that is not open.
	ErrFormClosed = errors.New("form is not open")

	// ErrNoForm is returned for kinds that are not edited through a form.
	ErrNoForm = errors.New("kind has no edit form")

	// ErrUnknownFacet is returned for a facet the kind does not define.
	ErrUnknownFacet = errors.New("unknown facet")

	// ErrUnknownFlag is returned when toggling a flag the kind does not define.
	ErrUnknownFlag = errors.New("unknown flag")
)
