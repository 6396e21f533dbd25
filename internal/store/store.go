// Package store persists debts, recorded payments, and saved payoff plans
// in SQLite. It is the engine's external debt repository and plan store: the
// engine itself never touches the database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/debt-payoff/internal/payoff"
	"github.com/iwvelando/debt-payoff/pkg/datetime"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrDebtNotFound indicates the requested debt id does not exist.
var ErrDebtNotFound = errors.New("debt not found")

// Schema for the debt tables. Applied on Open.
const Schema = `
CREATE TABLE IF NOT EXISTS debts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	balance REAL NOT NULL,
	original_balance REAL NOT NULL,
	interest_rate REAL NOT NULL,
	min_payment REAL NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE TABLE IF NOT EXISTS debt_payments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	debt_id INTEGER NOT NULL REFERENCES debts(id),
	amount REAL NOT NULL,
	date TEXT NOT NULL,
	plan_id INTEGER,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_debt_payments_debt ON debt_payments(debt_id);
CREATE TABLE IF NOT EXISTS payoff_plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	strategy TEXT NOT NULL,
	monthly_amount REAL NOT NULL,
	plan_json TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// Store wraps the SQLite database holding debts and payment history.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (creating if necessary) the SQLite database at path and applies
// the schema. Use ":memory:" for an ephemeral store.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// SQLite allows one writer; a single pooled connection also keeps
	// ":memory:" databases from fragmenting across connections.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// AddDebt inserts a debt and returns its assigned id.
func (s *Store) AddDebt(ctx context.Context, d payoff.DebtSnapshot) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO debts (name, balance, original_balance, interest_rate, min_payment) VALUES (?, ?, ?, ?, ?)`,
		d.Name, d.Balance, d.Balance, d.InterestRate, d.MinPayment)
	if err != nil {
		return 0, fmt.Errorf("failed to insert debt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted debt id: %w", err)
	}
	s.logger.Debug("debt added",
		zap.String("op", "store.AddDebt"),
		zap.Int64("debtID", id),
		zap.Float64("balance", d.Balance),
	)
	return id, nil
}

// ListDebts returns a snapshot of every stored debt, ordered by id. Callers
// fetch this once before invoking the engine so a run sees a consistent
// view.
func (s *Store) ListDebts(ctx context.Context) ([]payoff.DebtSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, balance, interest_rate, min_payment FROM debts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query debts: %w", err)
	}
	defer rows.Close()

	var debts []payoff.DebtSnapshot
	for rows.Next() {
		var d payoff.DebtSnapshot
		if err := rows.Scan(&d.ID, &d.Name, &d.Balance, &d.InterestRate, &d.MinPayment); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// GetDebt returns a single debt snapshot by id.
func (s *Store) GetDebt(ctx context.Context, id int64) (payoff.DebtSnapshot, error) {
	var d payoff.DebtSnapshot
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, balance, interest_rate, min_payment FROM debts WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.Balance, &d.InterestRate, &d.MinPayment)
	if errors.Is(err, sql.ErrNoRows) {
		return d, fmt.Errorf("%w: id %d", ErrDebtNotFound, id)
	}
	if err != nil {
		return d, fmt.Errorf("failed to query debt %d: %w", id, err)
	}
	return d, nil
}

// RecordPayment validates the payment through the engine and, on success,
// writes the payment row and the updated balance in a single transaction.
// now supplies the reference time for the engine's future-date check.
func (s *Store) RecordPayment(ctx context.Context, debtID int64, amount float64, date, now time.Time, planID *int64) (float64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var debt payoff.DebtSnapshot
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, balance, interest_rate, min_payment FROM debts WHERE id = ?`, debtID).
		Scan(&debt.ID, &debt.Name, &debt.Balance, &debt.InterestRate, &debt.MinPayment)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: id %d", ErrDebtNotFound, debtID)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query debt %d: %w", debtID, err)
	}

	updated, err := payoff.RecordPayment(debt, amount, date, now)
	if err != nil {
		return debt.Balance, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO debt_payments (debt_id, amount, date, plan_id) VALUES (?, ?, ?, ?)`,
		debtID, amount, datetime.FormatDate(date), planID); err != nil {
		return debt.Balance, fmt.Errorf("failed to insert payment: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE debts SET balance = ?, updated_at = datetime('now') WHERE id = ?`,
		updated, debtID); err != nil {
		return debt.Balance, fmt.Errorf("failed to update balance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return debt.Balance, fmt.Errorf("failed to commit payment: %w", err)
	}

	s.logger.Info("payment recorded",
		zap.String("op", "store.RecordPayment"),
		zap.Int64("debtID", debtID),
		zap.Float64("amount", amount),
		zap.Float64("updatedBalance", updated),
	)
	return updated, nil
}

// ListPayments returns all recorded payments for a debt, newest first.
func (s *Store) ListPayments(ctx context.Context, debtID int64) ([]payoff.DebtPayment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT debt_id, amount, date, plan_id FROM debt_payments WHERE debt_id = ? ORDER BY date DESC, id DESC`, debtID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []payoff.DebtPayment
	for rows.Next() {
		var p payoff.DebtPayment
		var dateStr string
		if err := rows.Scan(&p.DebtID, &p.Amount, &dateStr, &p.PlanID); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if p.Date, err = datetime.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse payment date %q: %w", dateStr, err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// SavePlan stores a serialized plan for later retrieval and returns its id.
func (s *Store) SavePlan(ctx context.Context, plan *payoff.PayoffPlan) (int64, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize plan: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO payoff_plans (strategy, monthly_amount, plan_json) VALUES (?, ?, ?)`,
		string(plan.Strategy), plan.MonthlyAmount, string(data))
	if err != nil {
		return 0, fmt.Errorf("failed to insert plan: %w", err)
	}
	return res.LastInsertId()
}

// GetPlan loads a previously saved plan by id.
func (s *Store) GetPlan(ctx context.Context, id int64) (*payoff.PayoffPlan, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT plan_json FROM payoff_plans WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plan %d: %w", id, err)
	}
	var plan payoff.PayoffPlan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan %d: %w", id, err)
	}
	return &plan, nil
}
