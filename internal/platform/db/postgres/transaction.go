package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/funcionarios-api/internal/core/apperror"
)

var (
	readOnlyTx  = pgx.TxOptions{AccessMode: pgx.ReadOnly}
	readWriteTx = pgx.TxOptions{AccessMode: pgx.ReadWrite}
)

type txKey struct{}

// beginner は *pgxpool.Pool と pgxmock が満たすトランザクション開始の口です。
type beginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// Queryer はリポジトリが使うクエリ実行の最小集合です。*pgxpool.Pool と pgx.Tx が満たします。
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TransactionManager は funcionario の取得・更新・履歴追記を 1 つの pgx トランザクションで実行します。
// 開始したトランザクションはコンテキストに載り、各リポジトリは QueryerFromContext で参加します。
type TransactionManager struct {
	db beginner
}

// NewTransactionManager は TransactionManager を生成します。
func NewTransactionManager(db beginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithinReadOnly は読み取り専用トランザクションで fn を実行します。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return m.run(ctx, readOnlyTx, fn)
}

// WithinReadWrite は読み書きトランザクションで fn を実行します。fn がエラーを返すと変更と履歴の両方が破棄されます。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return m.run(ctx, readWriteTx, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts pgx.TxOptions, fn func(context.Context) error) error {
	if fn == nil {
		return errors.New("postgres: nil transaction body")
	}
	// 進行中のトランザクションがあればそれに参加します。
	if m == nil || m.db == nil || currentTx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return apperror.Unavailable(fmt.Errorf("postgres: begin tx: %w", err))
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("postgres: rollback: %w", rbErr))
		}
		return err
	}

	// pgx は Commit に失敗した時点でトランザクションを閉じます。
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func currentTx(ctx context.Context) pgx.Tx {
	tx, _ := ctx.Value(txKey{}).(pgx.Tx)
	return tx
}

// QueryerFromContext は進行中のトランザクションがあればそれを、なければ db を返します。
func QueryerFromContext(ctx context.Context, db Queryer) Queryer {
	if tx := currentTx(ctx); tx != nil {
		return tx
	}
	return db
}
