package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrCorpusUnavailable   = errors.New("corpus unavailable")
	ErrTargetNotFound      = errors.New("substitution target not found")
	ErrConjugation         = errors.New("conjugation failed")
	ErrBlacklisted         = errors.New("blacklisted term")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrInvalidConfig       = errors.New("invalid configuration")
)
