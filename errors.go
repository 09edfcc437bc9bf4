package fluentkit

import "errors"

var (
	// ErrInvalidLocale is returned by New when the locale string does not
	// parse as a BCP 47 language tag.
	ErrInvalidLocale = errors.New("fluentkit: invalid locale")

	// ErrNilResource is returned by AddResource for a nil resource.
	ErrNilResource = errors.New("fluentkit: nil resource")

	// ErrDuplicateEntry is reported when a resource or function registers
	// an id that already exists and overrides are not allowed.
	ErrDuplicateEntry = errors.New("fluentkit: duplicate entry")

	// ErrMessageNotFound is returned when formatting a message id the
	// bundle does not know. The returned text is the id placeholder.
	ErrMessageNotFound = errors.New("fluentkit: message not found")

	// ErrAttributeNotFound is returned when formatting an attribute a
	// known message does not carry.
	ErrAttributeNotFound = errors.New("fluentkit: attribute not found")

	// ErrNoMessageValue is returned when formatting a message that only
	// has attributes and no value pattern.
	ErrNoMessageValue = errors.New("fluentkit: message has no value")
)
