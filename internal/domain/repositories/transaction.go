package repositories

import "context"

// TxFn is the body of a transaction. Repositories called with the ctx it
// receives run on the transaction.
type TxFn func(ctx context.Context) error

// TransactionManager commits when fn returns nil and rolls back otherwise.
// Roster edits use it to hold the campaign row lock across read and write.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
