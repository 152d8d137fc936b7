package client

import (
	"errors"
	"fmt"

	"github.com/eternalApril/lunar/internal/resp"
)

var (
	// ErrTransactionAborted is returned when EXEC replied with a null array because a watched key changed
	ErrTransactionAborted = errors.New("transaction aborted: watched key modified")

	// ErrTransactionDone is returned when a transaction is used after Execute or Discard
	ErrTransactionDone = errors.New("transaction already executed or discarded")
)

// ConnectionError is a transport failure. The connection must be treated as unusable
type ConnectionError struct {
	Op   string // "dial", "write", "read"
	Addr string
	Err  error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("connection error on %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("connection error on %s to %s: %v", e.Op, e.Addr, e.Err)
}

// Unwrap returns the wrapped error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TransactionError is an error reply to EXEC or DISCARD, e.g. EXECABORT after a rejected queued command
type TransactionError struct {
	Message string
	Queued  []resp.Value // replies to the queued commands, QUEUED or the rejection
}

// Error implements the error interface
func (e *TransactionError) Error() string {
	return "transaction failed: " + e.Message
}
