// Package txn runs closures inside a Mongo multi-document transaction,
// falling back to plain execution when the server does not support
// transactions (standalone deployments).
package txn

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a transaction on db's client. If the server
// rejects transactions (not a replica set), fn is re-run outside one so
// single-node deployments keep working; the write then loses atomicity
// but not correctness for single-document updates.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if log != nil {
			log.Warn("start session failed; running without transaction", zap.Error(err))
		}
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Warn("transactions not supported; running without transaction", zap.Error(err))
		}
		return fn(ctx)
	}
	return err
}

// transaction-unsupported server error codes:
//   20  IllegalOperation (standalone server)
//   51  command not allowed in transaction
//   263 operation not supported in transaction
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// IsNotSupported reports whether err means the server cannot run
// multi-document transactions.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if ce, ok := err.(mongo.CommandError); ok {
		return notSupportedCodes[ce.Code]
	}
	if ce, ok := err.(*mongo.CommandError); ok {
		return notSupportedCodes[ce.Code]
	}
	return false
}
