// Package txn runs multi-document MongoDB operations atomically, with a
// graceful fallback for deployments that cannot open transactions
// (standalone servers, some DocumentDB configurations).
//
// The admin store uses it so its role-count check and delete observe a
// consistent snapshot:
//
//	err := txn.Run(ctx, db, log, func(ctx context.Context) error {
//	    // count superadmins, then delete, atomically
//	    return nil
//	})
//
// When transactions are unavailable the function runs once without one.
// That keeps the app working everywhere at the cost of a benign race on
// such deployments.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Func receives either a mongo.SessionContext (inside a transaction) or
// the original context (fallback). Use it for every operation inside.
type Func func(ctx context.Context) error

// Run executes fn inside a MongoDB transaction when the deployment
// supports them, and plainly when it does not. log may be nil to
// suppress the fallback warnings.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn Func) error {
	client := db.Client()

	session, err := client.StartSession()
	if err != nil {
		if log != nil {
			log.Warn("failed to start session, running without transaction",
				zap.Error(err))
		}
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})

	if err != nil {
		if IsNotSupported(err) {
			if log != nil {
				log.Warn("transactions not supported, running without transaction",
					zap.Error(err))
			}
			return fn(ctx)
		}
		return err
	}

	return nil
}

// IsNotSupported reports whether an error means the deployment cannot
// run multi-document transactions.
//
// Known error codes:
//   - 20: "Transaction numbers are only allowed on a replica set member or mongos"
//   - 51: IllegalOperation
//   - 263: "Cannot run 'aggregate' in a multi-document transaction"
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	// Message matching catches both MongoDB and DocumentDB variations.
	// Require two keyword hits to avoid false positives.
	errStr := strings.ToLower(err.Error())
	transactionKeywords := []string{
		"transaction",
		"replica set",
		"session",
		"not supported",
		"illegal operation",
	}

	matchCount := 0
	for _, kw := range transactionKeywords {
		if strings.Contains(errStr, kw) {
			matchCount++
		}
	}

	return matchCount >= 2
}
