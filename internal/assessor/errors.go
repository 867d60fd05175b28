package assessor

import "errors"

var (
	// ErrNilDocument is returned when Tally is handed no document at all.
	ErrNilDocument = errors.New("assessor: nil document")

	// ErrNoRootElement is returned when the document has no root element to
	// inspect for a lang attribute.
	ErrNoRootElement = errors.New("assessor: document has no root element")
)
