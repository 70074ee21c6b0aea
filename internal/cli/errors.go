package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrInvalidProvider indicates an unknown provider name was specified.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidStyle indicates an unknown --style value.
	ErrInvalidStyle = errors.New("invalid output style")

	// ErrInvalidAssignment indicates a --set value not in KEY=value form.
	ErrInvalidAssignment = errors.New("invalid field assignment")

	// ErrInvalidSampling indicates an out-of-range temperature, top-p or thinking budget.
	ErrInvalidSampling = errors.New("invalid sampling option")

	// ErrUnknownConfigKey indicates a config key that is not supported.
	ErrUnknownConfigKey = errors.New("unknown config key")

	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")
)
