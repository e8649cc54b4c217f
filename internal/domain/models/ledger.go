package models

import "fleetlog/internal/domain"

// FuelRecord is one fuel purchase. CostPumped is derived from price and
// liters and is rewritten on every save.
type FuelRecord struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	LicensePlate  string  `json:"license_plate"`
	FuelType      string  `json:"fuel_type"`
	PricePerLiter float64 `json:"price_per_liter"`
	LitersPumped  float64 `json:"liters_pumped"`
	CostPumped    int64   `json:"cost_pumped"`
	Odometer      float64 `json:"odometer"`
	Notes         string  `json:"notes"`
	CreatedAt     string  `json:"created_at"`
}

type FuelFilter struct {
	domain.DateRange
	Plate string
}

// FinanceTransaction is an income or expense entry. Total is derived from
// amount, discount and VAT and is rewritten on every save.
type FinanceTransaction struct {
	ID              int64         `json:"id"`
	Date            string        `json:"date"`
	Kind            domain.TxKind `json:"kind"`
	Category        string        `json:"category"`
	Description     string        `json:"description"`
	Amount          float64       `json:"amount"`
	VATPercent      float64       `json:"vat_percent"`
	DiscountPercent float64       `json:"discount_percent"`
	Total           float64       `json:"total"`
	Notes           string        `json:"notes"`
	CreatedAt       string        `json:"created_at"`
}

type FinanceFilter struct {
	domain.DateRange
	Kind     string
	Category string
}
