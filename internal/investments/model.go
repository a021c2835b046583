//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package investments implements the investment schema, the synthetic
// record generator and the bulk loader for the fake table.
package investments

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is the investment_type enum.
type Category string

// Investment categories, in enum declaration order.
const (
	CategoryCash       Category = "cash"
	CategoryBond       Category = "bond"
	CategoryStock      Category = "stock"
	CategoryRealEstate Category = "real_estate"
	CategoryCommodity  Category = "commodity"
	CategoryCrypto     Category = "crypto"
)

// Categories lists every category in enum declaration order.
var Categories = []Category{
	CategoryCash,
	CategoryBond,
	CategoryStock,
	CategoryRealEstate,
	CategoryCommodity,
	CategoryCrypto,
}

// Currency is the currency_type enum.
type Currency string

// Supported currencies.
const (
	CurrencyCHF Currency = "CHF"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Currencies lists every currency in enum declaration order.
var Currencies = []Currency{CurrencyCHF, CurrencyUSD, CurrencyEUR}

// Providers are the banks and brokers records are attributed to.
var Providers = []string{
	"VIAC",
	"Revolut",
	"Neon",
	"UBS",
	"Credit Suisse",
	"PostFinance",
	"Swissquote",
}

// Unit range for unit-bearing categories.
var (
	MinUnit = decimal.RequireFromString("0.1")
	MaxUnit = decimal.NewFromInt(100)
)

// CategoryInfo describes how records of a category are generated.
type CategoryInfo struct {
	Category  Category
	MinAmount decimal.Decimal
	MaxAmount decimal.Decimal

	// UnitBearing categories carry a unit count (shares, coins).
	UnitBearing bool

	// Names are the display labels used for investment_name.
	Names []string
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryCash: {
		Category:  CategoryCash,
		MinAmount: decimal.NewFromInt(100),
		MaxAmount: decimal.NewFromInt(50000),
		Names:     []string{"Savings", "Current Account", "Emergency Fund", "Fixed Deposit"},
	},
	CategoryBond: {
		Category:  CategoryBond,
		MinAmount: decimal.NewFromInt(1000),
		MaxAmount: decimal.NewFromInt(20000),
		Names:     []string{"Government Bond", "Corporate Bond", "Municipal Bond", "Treasury Bond"},
	},
	CategoryStock: {
		Category:    CategoryStock,
		MinAmount:   decimal.NewFromInt(100),
		MaxAmount:   decimal.NewFromInt(10000),
		UnitBearing: true,
		Names:       []string{"Apple", "Microsoft", "Google", "Amazon", "Tesla", "Meta", "Nvidia", "Netflix"},
	},
	CategoryRealEstate: {
		Category:  CategoryRealEstate,
		MinAmount: decimal.NewFromInt(5000),
		MaxAmount: decimal.NewFromInt(100000),
		Names:     []string{"Swiss Property Fund", "Global REIT", "Commercial RE Fund", "Residential RE Fund"},
	},
	CategoryCommodity: {
		Category:  CategoryCommodity,
		MinAmount: decimal.NewFromInt(100),
		MaxAmount: decimal.NewFromInt(5000),
		Names:     []string{"Gold", "Silver", "Platinum", "Palladium", "Copper", "Oil"},
	},
	CategoryCrypto: {
		Category:    CategoryCrypto,
		MinAmount:   decimal.NewFromInt(50),
		MaxAmount:   decimal.NewFromInt(5000),
		UnitBearing: true,
		Names:       []string{"Bitcoin", "Ethereum", "Solana", "Cardano", "Polkadot", "Avalanche"},
	},
}

// Info returns the generation parameters for the category.
func (c Category) Info() (CategoryInfo, bool) {
	info, ok := categoryInfo[c]
	return info, ok
}

// Valid reports whether c is a member of the investment_type enum.
func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// HasUnits reports whether records of this category carry a unit count.
func (c Category) HasUnits() bool {
	return categoryInfo[c].UnitBearing
}

// Valid reports whether c is a member of the currency_type enum.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyCHF, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Record is a single row of the investments tables. The primary key is
// assigned by the database and is not part of the generated record.
type Record struct {
	Name           string
	Provider       string
	Category       Category
	InvestmentName string
	Amount         decimal.Decimal
	Currency       Currency
	Unit           decimal.NullDecimal
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// insertArgs returns the positional arguments for insertRecordSQL. Numeric
// and enum values are sent as text and cast by the server.
func (r Record) insertArgs() []any {
	var unit any
	if r.Unit.Valid {
		unit = r.Unit.Decimal.StringFixed(4)
	}
	return []any{
		r.Name,
		r.Provider,
		string(r.Category),
		r.InvestmentName,
		r.Amount.StringFixed(2),
		string(r.Currency),
		unit,
		r.Notes,
		r.CreatedAt,
		r.UpdatedAt,
	}
}
