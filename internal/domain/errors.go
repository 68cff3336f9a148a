package domain

import "errors"

var (
	// ErrInvalidFeature signals a feature value that cannot be coerced to a number.
	ErrInvalidFeature = errors.New("invalid feature value")
	// ErrInvalidRequest signals a request body that is not a JSON object.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrInvalidRecordID signals an id that is not in the store-native format.
	ErrInvalidRecordID = errors.New("invalid record id")
	// ErrRecordNotFound signals a missing diagnosis record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrStoreNotConfigured signals that no record store is available.
	ErrStoreNotConfigured = errors.New("record store is not configured")
	// ErrModelOutput signals a classifier output outside the known label set.
	ErrModelOutput = errors.New("unexpected model output")
)
