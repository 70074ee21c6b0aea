package generate

import (
	"errors"
	"fmt"

	"github.com/alnah/go-blueprint/internal/apierr"
)

// ErrAPIKeyMissing indicates no credential was configured for the provider.
// It wraps apierr.ErrAuthFailed so callers can treat both the same way.
var ErrAPIKeyMissing = fmt.Errorf("API key not set: %w", apierr.ErrAuthFailed)

// ErrEmptyPrompt indicates Generate was called with an empty prompt.
var ErrEmptyPrompt = errors.New("prompt is empty")
