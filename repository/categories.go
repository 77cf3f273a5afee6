package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finbook/contract"
	"finbook/model"
)

// kindTables maps a kind to its statically known tables and columns. The map
// is the only place table names come from.
type kindTables struct {
	categoryTable string
	txTable       string
	idColumn      string
	dateColumn    string
}

var tablesByKind = map[model.Kind]kindTables{
	model.KindIncome:  {"income_categories", "incomes", "income_id", "income_date"},
	model.KindExpense: {"expense_categories", "expenses", "expense_id", "expense_date"},
}

const repoTimeout = 5 * time.Second

// queryer is satisfied by *sql.DB and *sql.Tx so category resolution can run
// standalone or inside a transaction's write.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type CategoryRepoMysql struct {
	db *sql.DB
}

func NewCategoryRepoMysql(db *sql.DB) *CategoryRepoMysql {
	return &CategoryRepoMysql{db: db}
}

// Resolve returns the id of the named category in the kind's namespace,
// creating it on first use.
func (c *CategoryRepoMysql) Resolve(kind model.Kind, name string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), repoTimeout)
	defer cancel()

	return resolveCategory(ctx, c.db, kind, name)
}

func (c *CategoryRepoMysql) Find(kind model.Kind) ([]model.Category, error) {
	tables, ok := tablesByKind[kind]
	if !ok {
		return nil, contract.ErrUnknownKind
	}
	statement := fmt.Sprintf("SELECT category_id, category_name FROM %s ORDER BY category_name", tables.categoryTable)

	rows, err := c.db.Query(statement)
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	return categories, nil
}

// resolveCategory is get-or-create. Two requests racing on the same new name
// both reach the INSERT; the unique index rejects the loser with a duplicate
// entry, which resolves to a re-read instead of an error.
func resolveCategory(ctx context.Context, q queryer, kind model.Kind, name string) (int, error) {
	tables, ok := tablesByKind[kind]
	if !ok {
		return 0, contract.ErrUnknownKind
	}
	selectStmt := fmt.Sprintf("SELECT category_id FROM %s WHERE category_name = ?", tables.categoryTable)

	var id int
	err := q.QueryRowContext(ctx, selectStmt, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("find category: %w", err)
	}

	insertStmt := fmt.Sprintf("INSERT INTO %s (category_name) VALUES (?)", tables.categoryTable)
	result, err := q.ExecContext(ctx, insertStmt, name)
	if err != nil {
		if isDuplicateEntry(err) {
			if err := q.QueryRowContext(ctx, selectStmt, name).Scan(&id); err != nil {
				return 0, fmt.Errorf("re-read category after duplicate: %w", err)
			}
			return id, nil
		}
		return 0, fmt.Errorf("create category: %w", err)
	}

	newID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create category: %w", err)
	}
	return int(newID), nil
}
