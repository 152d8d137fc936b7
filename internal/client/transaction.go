package client

import (
	"fmt"

	"github.com/eternalApril/lunar/internal/resp"
)

// Transaction queues commands between MULTI and EXEC and sends them as one pipeline.
// It is single use: after Execute or Discard every call returns ErrTransactionDone
type Transaction struct {
	cmdable

	pipe *Pipeline
	done bool
}

func newTransaction(p *Pipeline) *Transaction {
	tx := &Transaction{pipe: p}
	p.Reset()
	p.Enqueue("MULTI")
	tx.cmdable = tx.Enqueue
	return tx
}

// NewTransaction starts a transaction on p, which must not be used directly until the transaction is done
func NewTransaction(p *Pipeline) *Transaction {
	return newTransaction(p)
}

// Enqueue adds a command to the transaction body. It is ignored once the transaction is done
func (tx *Transaction) Enqueue(name string, args ...string) {
	if tx.done {
		return
	}
	tx.pipe.Enqueue(name, args...)
}

// Len returns the number of commands in the transaction body
func (tx *Transaction) Len() int {
	if tx.done {
		return 0
	}
	return tx.pipe.Len() - 1
}

// Execute sends MULTI, the queued commands and EXEC in one write and returns the
// per-command results from the EXEC reply. An aborted transaction (a watched key changed)
// yields ErrTransactionAborted, an EXEC error reply a *TransactionError
func (tx *Transaction) Execute() ([]resp.Value, error) {
	replies, err := tx.finish("EXEC")
	if err != nil {
		return nil, err
	}

	last := replies[len(replies)-1]
	switch {
	case last.IsError():
		return nil, &TransactionError{Message: last.String(), Queued: queued(replies)}
	case last.IsNull():
		return nil, ErrTransactionAborted
	case last.IsArray():
		return last.Array, nil
	}

	return nil, &TransactionError{
		Message: fmt.Sprintf("unexpected EXEC reply type %q", last.Type),
		Queued:  queued(replies),
	}
}

// Discard sends MULTI, the queued commands and DISCARD, so the server drops them
func (tx *Transaction) Discard() error {
	replies, err := tx.finish("DISCARD")
	if err != nil {
		return err
	}

	if last := replies[len(replies)-1]; last.IsError() {
		return &TransactionError{Message: last.String(), Queued: queued(replies)}
	}
	return nil
}

func (tx *Transaction) finish(terminator string) ([]resp.Value, error) {
	if tx.done {
		return nil, ErrTransactionDone
	}
	tx.done = true

	tx.pipe.Enqueue(terminator)
	defer tx.pipe.Reset()

	return tx.pipe.Execute()
}

// queued returns the replies between the MULTI acknowledgement and the terminator
func queued(replies []resp.Value) []resp.Value {
	if len(replies) < 2 {
		return nil
	}
	return replies[1 : len(replies)-1]
}
