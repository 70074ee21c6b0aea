package config

import "errors"

var (
	// ErrInvalidKey indicates a config key that cannot be stored.
	ErrInvalidKey = errors.New("invalid config key")

	// ErrInvalidSyntax indicates a config file line without key=value form.
	ErrInvalidSyntax = errors.New("invalid config syntax")

	// ErrNotDirectory indicates output-dir points at a file.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrNotWritable indicates output-dir cannot be written to.
	ErrNotWritable = errors.New("directory is not writable")
)
