package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/gostatement/internal/domain"
	"github.com/iho/gostatement/internal/usecase"
)

const statementColumns = `id, owner_id, counterparty_id, type, amount, description, created_at, updated_at`

const insertStatementQuery = `
	INSERT INTO statements (id, owner_id, counterparty_id, type, amount, description, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// StatementRepository implements usecase.StatementRepository on PostgreSQL.
type StatementRepository struct {
	pool *pgxpool.Pool
}

// NewStatementRepository creates a new StatementRepository.
func NewStatementRepository(pool *pgxpool.Pool) *StatementRepository {
	return &StatementRepository{pool: pool}
}

// Append inserts a single entry inside the given transaction.
func (r *StatementRepository) Append(
	ctx context.Context, tx usecase.Transaction, entry *domain.StatementEntry,
) error {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	_, err = pgxTx.Exec(ctx, insertStatementQuery, insertArgs(entry)...)

	return err
}

// AppendPair inserts both legs of a transfer inside the given transaction.
// The transaction boundary guarantees the pair lands atomically.
func (r *StatementRepository) AppendPair(
	ctx context.Context, tx usecase.Transaction, debit, credit *domain.StatementEntry,
) error {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	batch.Queue(insertStatementQuery, insertArgs(debit)...)
	batch.Queue(insertStatementQuery, insertArgs(credit)...)

	return pgxTx.SendBatch(ctx, batch).Close()
}

// ListByOwner retrieves all entries for an owner in append order.
func (r *StatementRepository) ListByOwner(
	ctx context.Context, ownerID string,
) ([]*domain.StatementEntry, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByOwnerTx retrieves all entries for an owner inside the given
// transaction, so balance checks observe rows written by the transaction
// itself and are shielded from concurrent writers by the owner's row lock.
func (r *StatementRepository) ListByOwnerTx(
	ctx context.Context, tx usecase.Transaction, ownerID string,
) ([]*domain.StatementEntry, error) {
	pgxTx, err := unwrapTx(tx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := pgxTx.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByOwnerAndID retrieves a single entry scoped to its owner. An entry
// belonging to another owner is reported as not found.
func (r *StatementRepository) GetByOwnerAndID(
	ctx context.Context, ownerID, entryID string,
) (*domain.StatementEntry, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM statements
		WHERE owner_id = $1 AND id = $2
	`

	entry, err := scanEntry(r.pool.QueryRow(ctx, query, ownerID, entryID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStatementNotFound
	}

	return entry, err
}

func unwrapTx(tx usecase.Transaction) (pgx.Tx, error) {
	pgxTx, ok := tx.(*Tx)
	if !ok {
		return nil, errors.New("transaction is not a postgres transaction")
	}

	return pgxTx.PgxTx(), nil
}

func insertArgs(entry *domain.StatementEntry) []any {
	return []any{
		entry.ID,
		entry.OwnerID,
		entry.CounterpartyID,
		string(entry.Type),
		decimalToNumeric(entry.Amount),
		entry.Description,
		entry.CreatedAt,
		entry.UpdatedAt,
	}
}

func scanEntry(row pgx.Row) (*domain.StatementEntry, error) {
	var (
		entry    domain.StatementEntry
		typeName string
		amount   pgtype.Numeric
	)

	err := row.Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.CounterpartyID,
		&typeName,
		&amount,
		&entry.Description,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Type = domain.OperationType(typeName)
	entry.Amount = numericToDecimal(amount)

	return &entry, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func scanEntries(rows pgx.Rows) ([]*domain.StatementEntry, error) {
	var entries []*domain.StatementEntry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
