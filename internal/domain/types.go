package domain

import "strings"

// ID is used across domain entities.
type ID int64

// Status is the soft-delete flag carried by master entities.
type Status int

const (
	StatusDeleted Status = 0
	StatusActive  Status = 1
)

// RouteCategory selects the pay formula applied to trips on a route.
type RouteCategory string

const (
	CategoryStandard      RouteCategory = "standard"
	CategoryReinforcement RouteCategory = "reinforcement"
)

// ParseRouteCategory accepts the stored value or a form value; anything
// unrecognised is standard.
func ParseRouteCategory(s string) RouteCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(CategoryReinforcement), "extra":
		return CategoryReinforcement
	default:
		return CategoryStandard
	}
}

func (c RouteCategory) Label() string {
	if c == CategoryReinforcement {
		return "Reinforcement"
	}
	return "Standard"
}

// TxKind is the direction of a finance transaction.
type TxKind string

const (
	KindIncome  TxKind = "income"
	KindExpense TxKind = "expense"
)

func ParseTxKind(s string) TxKind {
	if strings.ToLower(strings.TrimSpace(s)) == string(KindIncome) {
		return KindIncome
	}
	return KindExpense
}

// DateRange is an inclusive YYYY-MM-DD window; empty bounds are open.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID   ID     `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
