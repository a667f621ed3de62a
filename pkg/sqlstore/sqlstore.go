package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand"
	"os"

	"github.com/avast/retry-go/v4"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type ConnectConfig struct {
	DSN string `toml:"dsn"`
}

func (c *ConnectConfig) FromENV(key string) {
	c.DSN = os.Getenv(key)
}

func (c ConnectConfig) FormatDSN() string {
	return c.DSN
}

// Executor is the query surface shared by *sqlx.DB and *sqlx.Tx, so stores
// run the same code inside and outside a transaction.
type Executor interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
}

type SqlProvider struct {
	master   *sqlx.DB
	replicas []*sqlx.DB

	conflictHook func()
}

// SetConflictHook registers fn to run each time a strict transaction is
// retried on a serialization conflict.
func (p *SqlProvider) SetConflictHook(fn func()) {
	p.conflictHook = fn
}

func MustSetupProvider(m ConnectConfig, replicas ...ConnectConfig) *SqlProvider {
	p := &SqlProvider{
		master: sqlx.MustConnect("postgres", m.FormatDSN()),
	}
	for _, cfg := range replicas {
		p.replicas = append(p.replicas, sqlx.MustConnect("postgres", cfg.FormatDSN()))
	}
	return p
}

type transactionKey struct{}

func txFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(transactionKey{}).(*sqlx.Tx)
	return tx
}

// GetMaster returns the write executor, honoring a transaction carried by ctx.
func (p *SqlProvider) GetMaster(ctx context.Context) Executor {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return p.master
}

// GetReplica returns a read executor. Reads issued inside a transaction stay
// on that transaction so they observe its own writes.
func (p *SqlProvider) GetReplica(ctx context.Context) Executor {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	if len(p.replicas) == 0 {
		return p.master
	}
	return p.replicas[rand.Intn(len(p.replicas))]
}

// Transaction runs fn with a transaction carried in ctx. A nested call joins
// the ongoing transaction instead of opening a second one.
func (p *SqlProvider) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := p.master.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	return p.finish(tx, fn(context.WithValue(ctx, transactionKey{}, tx)))
}

const strictTxAttempts = 5

// StrictTransaction runs fn under serializable isolation and retries the whole
// read-compute-write cycle on serialization conflicts, bounded by
// strictTxAttempts. fn must be free of side effects outside the transaction,
// it may run more than once.
func (p *SqlProvider) StrictTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	return retry.Do(func() error {
		tx, err := p.master.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			return err
		}
		return p.finish(tx, fn(context.WithValue(ctx, transactionKey{}, tx)))
	},
		retry.Attempts(strictTxAttempts),
		retry.RetryIf(isSerializationFailure),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if p.conflictHook != nil {
				p.conflictHook()
			}
			slog.Warn("retrying strict transaction on serialization conflict", slog.Uint64("attempt", uint64(n+1)), slog.String("error", err.Error()))
		}),
	)
}

func (p *SqlProvider) finish(tx *sqlx.Tx, err error) error {
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
		return err
	}
	return tx.Commit()
}

// Postgres class 40 errors: serialization_failure and deadlock_detected.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}

// IsUniqueViolation reports whether err wraps a postgres unique_violation,
// typically an insert hitting a unique index.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505"
}
