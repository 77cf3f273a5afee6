package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"finbook/contract"
	"finbook/model"
)

type TransactionRepoMysql struct {
	db *sql.DB
}

func NewTransactionRepoMysql(db *sql.DB) *TransactionRepoMysql {
	return &TransactionRepoMysql{db: db}
}

// Record resolves the category and inserts the row in one SQL transaction, so
// a failed insert never leaves an orphan category from this request behind.
func (t *TransactionRepoMysql) Record(tr *model.Transaction) (int64, error) {
	tables, ok := tablesByKind[tr.Kind]
	if !ok {
		return 0, contract.ErrUnknownKind
	}

	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	categoryID, err := resolveCategory(ctx, tx, tr.Kind, tr.CategoryName)
	if err != nil {
		return 0, err
	}

	statement := fmt.Sprintf("INSERT INTO %s (user_id, category_id, amount, %s, note) VALUES (?, ?, ?, ?, ?)",
		tables.txTable, tables.dateColumn)
	result, err := tx.ExecContext(ctx, statement, tr.UserID, categoryID, tr.Amount, tr.Date, tr.Note)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", tr.Kind, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", tr.Kind, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return id, nil
}

// HistoryByUser returns every income and expense of the user, tagged with its
// kind and ordered newest first.
func (t *TransactionRepoMysql) HistoryByUser(userID int) ([]model.HistoryEntry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()

	entries := []model.HistoryEntry{}
	for _, kind := range []model.Kind{model.KindIncome, model.KindExpense} {
		part, err := t.historyByKind(ctx, kind, userID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, part...)
	}

	sortHistory(entries)
	return entries, nil
}

func (t *TransactionRepoMysql) historyByKind(ctx context.Context, kind model.Kind, userID int) ([]model.HistoryEntry, error) {
	tables := tablesByKind[kind]
	statement := fmt.Sprintf(
		"SELECT t.%s, c.category_name, t.amount, t.%s, t.note FROM %s t JOIN %s c ON t.category_id = c.category_id WHERE t.user_id = ?",
		tables.idColumn, tables.dateColumn, tables.txTable, tables.categoryTable)

	rows, err := t.db.QueryContext(ctx, statement, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch %s history: %w", kind, err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		entry := model.HistoryEntry{Type: kind}
		if err := rows.Scan(&entry.ID, &entry.Category, &entry.Amount, &entry.Date, &entry.Note); err != nil {
			return nil, fmt.Errorf("scan %s history: %w", kind, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s history: %w", kind, err)
	}
	return entries, nil
}

// sortHistory orders newest first. Equal dates fall back to row id descending
// and then expenses before incomes, so the result never depends on the order
// the store returned rows in.
func sortHistory(entries []model.HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.After(b.Date.Time)
		}
		if a.ID != b.ID {
			return a.ID > b.ID
		}
		return a.Type == model.KindExpense && b.Type == model.KindIncome
	})
}
