package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
	ErrInvalidID   = errors.New("db: invalid document id")
)

// Op constants name the driver command for error context.
const (
	OpPing     = "PING"
	OpScan     = "SCAN"
	OpJSONSet  = "JSON.SET"
	OpJSONGet  = "JSON.GET"
	OpJSONMGet = "JSON.MGET"
	OpJSONType = "JSON.TYPE"
	OpInsert   = "insertOne"
	OpFind     = "find"
	OpFindOne  = "findOne"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
