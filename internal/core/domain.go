package core

import (
	"errors"
	"time"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// DateLayout is the canonical textual form of a transaction date.
const DateLayout = "2006-01-02"

type (
	Kind string

	// Transaction is one row from either variant table. RawDate carries the
	// date text exactly as the store holds it; Date is its parsed value and
	// stays zero when the text is not a valid YYYY-MM-DD date.
	Transaction struct {
		ID       int64
		Kind     Kind
		Date     time.Time
		RawDate  string
		Amount   Money
		Category *string
		Note     *string
	}
)

var (
	ErrInvalidKind   = errors.New("invalid type")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrMissingAmount = errors.New("missing amount")
	ErrMissingFields = errors.New("missing id or type")
)

// ParseKind maps the wire value onto the closed variant set.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindIncome, KindExpense:
		return Kind(s), nil
	default:
		return "", ErrInvalidKind
	}
}

// Label returns the capitalized variant name used in exports.
func (k Kind) Label() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindExpense:
		return "Expense"
	default:
		return ""
	}
}
