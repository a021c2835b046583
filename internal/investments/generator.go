//-------------------------------------------------------------------------
//
// pgEdge Investment Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package investments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-seeder/internal/datagen"
)

const (
	// NoteMaxChars bounds the length of generated notes.
	NoteMaxChars = 50

	// NoteProbability is the chance a record carries a note.
	NoteProbability = 0.5

	// monthSpan is the distance between simulated months.
	monthSpan = 30 * 24 * time.Hour
)

// GeneratorConfig controls how much history is generated.
type GeneratorConfig struct {
	// RecordsPerMonth is the base number of records per month.
	RecordsPerMonth int

	// Jitter is the maximum deviation from RecordsPerMonth, applied
	// independently to each month.
	Jitter int

	// Months is the number of simulated months, counting back from now.
	Months int

	// Now returns the reference time. Defaults to time.Now.
	Now func() time.Time
}

// DefaultGeneratorConfig returns six months of roughly fifty records each.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RecordsPerMonth: 50,
		Jitter:          5,
		Months:          6,
		Now:             time.Now,
	}
}

// Batch is the set of records generated for one simulated month.
type Batch struct {
	// Month is 0 for the current month, 1 for the one before, and so on.
	Month   int
	Date    time.Time
	Records []Record
}

// Generator produces synthetic investment records.
type Generator struct {
	faker *datagen.Faker
	cfg   GeneratorConfig
}

// NewGenerator creates a generator drawing randomness from faker.
func NewGenerator(faker *datagen.Faker, cfg GeneratorConfig) *Generator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Generator{
		faker: faker,
		cfg:   cfg,
	}
}

// Record generates a single record dated at date. The category is chosen
// first; it decides the amount range, the display name and whether a unit
// count is present.
func (g *Generator) Record(date time.Time) Record {
	category := datagen.Choose(g.faker, Categories)
	info := categoryInfo[category]

	amount := g.faker.Float64(info.MinAmount.InexactFloat64(), info.MaxAmount.InexactFloat64())

	var unit decimal.NullDecimal
	if info.UnitBearing {
		u := g.faker.Float64(MinUnit.InexactFloat64(), MaxUnit.InexactFloat64())
		unit = decimal.NewNullDecimal(decimal.NewFromFloat(u).Round(4))
	}

	var notes *string
	if note := g.faker.NullableString(g.faker.Text(NoteMaxChars), NoteProbability); note != "" {
		notes = &note
	}

	return Record{
		Name:           datagen.Truncate(g.faker.FirstName(), 100),
		Provider:       datagen.Choose(g.faker, Providers),
		Category:       category,
		InvestmentName: datagen.Choose(g.faker, info.Names),
		Amount:         decimal.NewFromFloat(amount).Round(2),
		Currency:       datagen.Choose(g.faker, Currencies),
		Unit:           unit,
		Notes:          notes,
		CreatedAt:      date,
		UpdatedAt:      date,
	}
}

// Batches generates one batch per simulated month. Batch m is dated m*30
// days before now and holds RecordsPerMonth ± Jitter records.
func (g *Generator) Batches() []Batch {
	now := g.cfg.Now()
	batches := make([]Batch, 0, g.cfg.Months)

	for month := 0; month < g.cfg.Months; month++ {
		date := now.Add(-time.Duration(month) * monthSpan)
		count := g.batchSize()

		records := make([]Record, 0, count)
		for i := 0; i < count; i++ {
			records = append(records, g.Record(date))
		}

		batches = append(batches, Batch{
			Month:   month,
			Date:    date,
			Records: records,
		})
	}

	return batches
}

// Generate returns the records of all batches, newest month first.
func (g *Generator) Generate() []Record {
	return Flatten(g.Batches())
}

func (g *Generator) batchSize() int {
	count := g.cfg.RecordsPerMonth
	if g.cfg.Jitter > 0 {
		count += g.faker.Int(-g.cfg.Jitter, g.cfg.Jitter)
	}
	return max(0, count)
}

// Flatten concatenates the records of the given batches.
func Flatten(batches []Batch) []Record {
	total := 0
	for _, b := range batches {
		total += len(b.Records)
	}

	records := make([]Record, 0, total)
	for _, b := range batches {
		records = append(records, b.Records...)
	}
	return records
}
