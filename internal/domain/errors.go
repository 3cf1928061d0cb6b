package domain

import "errors"

var (
	// ErrMalformedBatch signals a query batch that cannot be parsed.
	ErrMalformedBatch = errors.New("malformed query batch")
	// ErrStoreUnavailable signals that the record store cannot supply records.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrRecordNotFound signals a missing record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUnknownCategory signals a record without a recognized category.
	ErrUnknownCategory = errors.New("unknown record category")
)
