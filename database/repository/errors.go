package repository

import "errors"

// Sentinel errors shared by the Mongo repositories. Callers match them with
// errors.Is; every other error is a store failure.
var (
	ErrNotFound         = errors.New("document not found")
	ErrDuplicate        = errors.New("duplicate document")
	ErrStale            = errors.New("document changed concurrently")
	ErrSlotNotFound     = errors.New("slot not found")
	ErrSlotNotAvailable = errors.New("slot not available")
)
