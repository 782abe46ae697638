package tokenizer

import (
	"errors"
	"fmt"
)

// ErrEmptyPath is returned when a vocabulary is requested without a path.
var ErrEmptyPath = errors.New("vocabulary path must not be empty")

// ConfigError reports a vocabulary that is missing, unreadable or malformed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tokenizer: vocabulary %q: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// UnknownSymbolError reports a symbol with no vocabulary entry when the
// vocabulary has no unknown token to fall back on.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("tokenizer: symbol %q not in vocabulary", e.Symbol)
}

// InvalidIDError reports an id that does not belong to the vocabulary.
type InvalidIDError struct {
	ID int64
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("tokenizer: invalid token id %d", e.ID)
}
