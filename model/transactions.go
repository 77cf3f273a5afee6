package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects one of the two transaction namespaces. Each kind has its own
// category table and its own transaction table.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ParseKind accepts exactly income or expense. The set of kinds is closed;
// request input never picks a table name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome, KindExpense:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// AddTransaction is the POST /add_transaction payload.
type AddTransaction struct {
	UserID   int             `json:"user_id" validate:"required,gt=0"`
	Type     string          `json:"type" validate:"required"`
	Category string          `json:"category" validate:"required,max=64"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date" validate:"required"`
	Note     *string         `json:"note,omitempty"`
}

// Transaction is a validated record ready to persist.
type Transaction struct {
	UserID       int
	Kind         Kind
	CategoryName string
	Amount       decimal.Decimal
	Date         time.Time
	Note         *string
}

// HistoryEntry is one row of the merged history view. The row id stays
// internal; it only exists to keep the sort order deterministic.
type HistoryEntry struct {
	ID       int64           `json:"-"`
	Type     Kind            `json:"type"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     Date            `json:"date"`
	Note     *string         `json:"note"`
}

// Date is a calendar date. It marshals as YYYY-MM-DD and carries no time-zone
// semantics beyond the day itself.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Scan accepts DATE columns both as time.Time (parseTime=true) and as the
// driver's raw bytes.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		t, err := time.Parse(dateLayout, string(v))
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", value)
}
