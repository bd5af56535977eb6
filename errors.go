// errors.go: structured error handling for ichcache operations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package ichcache

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for ichcache operations.
const (
	// Configuration errors (1xxx)
	ErrCodeInvalidKeySize     errors.ErrorCode = "ICHCACHE_INVALID_KEY_SIZE"
	ErrCodeInvalidValueSize   errors.ErrorCode = "ICHCACHE_INVALID_VALUE_SIZE"
	ErrCodeInvalidLoadFactor  errors.ErrorCode = "ICHCACHE_INVALID_LOAD_FACTOR"
	ErrCodeInvalidMinCapacity errors.ErrorCode = "ICHCACHE_INVALID_MIN_CAPACITY"

	// Operation errors (2xxx)
	ErrCodeWrongKeySize   errors.ErrorCode = "ICHCACHE_WRONG_KEY_SIZE"
	ErrCodeWrongValueSize errors.ErrorCode = "ICHCACHE_WRONG_VALUE_SIZE"
	ErrCodeEvictionFailed errors.ErrorCode = "ICHCACHE_EVICTION_FAILED"

	// Filler errors (3xxx)
	ErrCodeNilFiller     errors.ErrorCode = "ICHCACHE_NIL_FILLER"
	ErrCodeFillerFailed  errors.ErrorCode = "ICHCACHE_FILLER_FAILED"
	ErrCodeFillerPanic   errors.ErrorCode = "ICHCACHE_FILLER_PANIC"
	ErrCodeFillerBadSize errors.ErrorCode = "ICHCACHE_FILLER_BAD_SIZE"

	// Lifecycle errors (4xxx)
	ErrCodeDestroyed errors.ErrorCode = "ICHCACHE_DESTROYED"
)

const (
	msgInvalidKeySize     = "key size must be greater than 0"
	msgInvalidValueSize   = "value size must be greater than 0"
	msgInvalidLoadFactor  = "max load factor must be in (0, 1]"
	msgInvalidMinCapacity = "min capacity must be greater than 0"
	msgWrongKeySize       = "key length does not match configured key size"
	msgWrongValueSize     = "value length does not match configured value size"
	msgEvictionFailed     = "eviction sweep found no ALIVE slot to evict"
	msgNilFiller          = "fetch/get miss requires a configured filler"
	msgFillerFailed       = "filler returned false"
	msgFillerPanic        = "filler panicked"
	msgFillerBadSize      = "filler wrote a value of the wrong size"
	msgDestroyed          = "cache has been destroyed"
)

// NewErrInvalidKeySize reports a zero or negative KeySize at Create.
func NewErrInvalidKeySize(size int) error {
	return errors.NewWithField(ErrCodeInvalidKeySize, msgInvalidKeySize, "key_size", size)
}

// NewErrInvalidValueSize reports a zero or negative ValueSize at Create.
func NewErrInvalidValueSize(size int) error {
	return errors.NewWithField(ErrCodeInvalidValueSize, msgInvalidValueSize, "value_size", size)
}

// NewErrWrongKeySize reports a key argument whose length does not match KeySize.
func NewErrWrongKeySize(got, want int) error {
	return errors.NewWithContext(ErrCodeWrongKeySize, msgWrongKeySize, map[string]interface{}{
		"got":  got,
		"want": want,
	})
}

// NewErrWrongValueSize reports a value argument whose length does not match ValueSize.
func NewErrWrongValueSize(got, want int) error {
	return errors.NewWithContext(ErrCodeWrongValueSize, msgWrongValueSize, map[string]interface{}{
		"got":  got,
		"want": want,
	})
}

// NewErrEvictionFailed reports that the eviction sweep could not find an
// ALIVE slot to evict even though item_count == K. Under the invariants in
// spec.md §3 this should be unreachable; it is guarded defensively.
func NewErrEvictionFailed() error {
	return errors.New(ErrCodeEvictionFailed, msgEvictionFailed).AsRetryable()
}

// NewErrNilFiller reports a Fetch/Get miss when no Filler was configured.
func NewErrNilFiller() error {
	return errors.New(ErrCodeNilFiller, msgNilFiller)
}

// NewErrDestroyed reports an operation attempted after Destroy.
func NewErrDestroyed() error {
	return errors.New(ErrCodeDestroyed, msgDestroyed)
}

// NewErrFillerPanic wraps a recovered panic from a Filler invocation.
func NewErrFillerPanic(recovered interface{}) error {
	return errors.NewWithField(ErrCodeFillerPanic, msgFillerPanic, "panic_value", recovered).
		WithSeverity("critical")
}

// IsWrongSize reports whether err is a key/value size mismatch error.
func IsWrongSize(err error) bool {
	return errors.HasCode(err, ErrCodeWrongKeySize) || errors.HasCode(err, ErrCodeWrongValueSize)
}

// IsConfigError reports whether err originates from invalid Config fields.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeInvalidKeySize || code == ErrCodeInvalidValueSize ||
			code == ErrCodeInvalidLoadFactor || code == ErrCodeInvalidMinCapacity
	}
	return false
}

// GetErrorCode extracts the structured error code from err, or "" if err
// does not carry one.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
