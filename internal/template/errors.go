package template

import "errors"

// ErrUnknownKey indicates a placeholder name outside the fixed key set.
var ErrUnknownKey = errors.New("unknown placeholder")

// ErrMissingDescription indicates a placeholder token in a template body
// without a matching description entry.
var ErrMissingDescription = errors.New("placeholder has no description")

// ErrUnusedDescription indicates a description entry whose token never
// appears in the template body.
var ErrUnusedDescription = errors.New("placeholder description is not used in template body")

// ErrEmptyBody indicates a template without a prompt body.
var ErrEmptyBody = errors.New("template body is empty")
