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
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/pgedge-seeder/internal/datagen"
)

var fixedNow = time.Date(2026, 6, 15, 9, 30, 0, 0, time.UTC)

func newTestGenerator(seed uint64, cfg GeneratorConfig) *Generator {
	cfg.Now = func() time.Time { return fixedNow }
	return NewGenerator(datagen.NewFakerWithSeed(seed), cfg)
}

// maxPlaces reports whether d has at most places digits after the point.
func maxPlaces(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}

func TestGeneratorRecordProperties(t *testing.T) {
	g := newTestGenerator(1, DefaultGeneratorConfig())

	seenCategories := make(map[Category]bool)
	for i := 0; i < 2000; i++ {
		r := g.Record(fixedNow)

		require.True(t, r.Category.Valid(), "category %q", r.Category)
		seenCategories[r.Category] = true
		info, _ := r.Category.Info()

		// Amount within the category range, two decimal places
		assert.True(t, r.Amount.GreaterThanOrEqual(info.MinAmount), "amount %s below %s", r.Amount, info.MinAmount)
		assert.True(t, r.Amount.LessThanOrEqual(info.MaxAmount), "amount %s above %s", r.Amount, info.MaxAmount)
		assert.True(t, maxPlaces(r.Amount, 2), "amount %s", r.Amount)

		// Unit present iff unit-bearing, in [0.1, 100] with four places
		assert.Equal(t, info.UnitBearing, r.Unit.Valid, "category %s", r.Category)
		if r.Unit.Valid {
			assert.True(t, r.Unit.Decimal.GreaterThanOrEqual(MinUnit), "unit %s", r.Unit.Decimal)
			assert.True(t, r.Unit.Decimal.LessThanOrEqual(MaxUnit), "unit %s", r.Unit.Decimal)
			assert.True(t, maxPlaces(r.Unit.Decimal, 4), "unit %s", r.Unit.Decimal)
		}

		assert.Contains(t, Providers, r.Provider)
		assert.True(t, r.Currency.Valid(), "currency %q", r.Currency)
		assert.Contains(t, info.Names, r.InvestmentName)

		assert.NotEmpty(t, r.Name)
		assert.LessOrEqual(t, len(r.Name), 100)

		if r.Notes != nil {
			assert.NotEmpty(t, *r.Notes)
			assert.LessOrEqual(t, len(*r.Notes), NoteMaxChars)
		}

		assert.Equal(t, fixedNow, r.CreatedAt)
		assert.Equal(t, fixedNow, r.UpdatedAt)
	}

	assert.Len(t, seenCategories, len(Categories))
}

func TestGeneratorNotesAreOptional(t *testing.T) {
	g := newTestGenerator(2, DefaultGeneratorConfig())

	withNotes := 0
	total := 1000
	for i := 0; i < total; i++ {
		if g.Record(fixedNow).Notes != nil {
			withNotes++
		}
	}

	assert.Greater(t, withNotes, total*35/100)
	assert.Less(t, withNotes, total*65/100)
}

func TestGeneratorBatches(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	g := newTestGenerator(3, cfg)

	batches := g.Batches()
	require.Len(t, batches, 6)

	for m, b := range batches {
		assert.Equal(t, m, b.Month)
		assert.Equal(t, fixedNow.Add(-time.Duration(m)*30*24*time.Hour), b.Date)

		assert.GreaterOrEqual(t, len(b.Records), cfg.RecordsPerMonth-cfg.Jitter)
		assert.LessOrEqual(t, len(b.Records), cfg.RecordsPerMonth+cfg.Jitter)

		for _, r := range b.Records {
			assert.Equal(t, b.Date, r.CreatedAt)
			assert.Equal(t, b.Date, r.UpdatedAt)
		}
	}
}

func TestGeneratorBatchesSpanSixMonths(t *testing.T) {
	g := newTestGenerator(4, DefaultGeneratorConfig())

	batches := g.Batches()
	oldest := batches[len(batches)-1].Date

	assert.Equal(t, 150*24*time.Hour, fixedNow.Sub(oldest))
}

func TestGeneratorBatchesWithoutJitter(t *testing.T) {
	g := newTestGenerator(5, GeneratorConfig{RecordsPerMonth: 7, Months: 3})

	batches := g.Batches()
	require.Len(t, batches, 3)
	for _, b := range batches {
		assert.Len(t, b.Records, 7)
	}
}

func TestGeneratorJitterVaries(t *testing.T) {
	g := newTestGenerator(6, GeneratorConfig{RecordsPerMonth: 50, Jitter: 5, Months: 60})

	sizes := make(map[int]bool)
	for _, b := range g.Batches() {
		sizes[len(b.Records)] = true
	}
	assert.Greater(t, len(sizes), 1)
}

func TestGeneratorZeroMonths(t *testing.T) {
	g := newTestGenerator(7, GeneratorConfig{RecordsPerMonth: 50, Months: 0})

	assert.Empty(t, g.Batches())
	assert.Empty(t, g.Generate())
}

func TestGeneratorDeterministicWithSeed(t *testing.T) {
	a := newTestGenerator(42, DefaultGeneratorConfig()).Generate()
	b := newTestGenerator(42, DefaultGeneratorConfig()).Generate()

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, a[i].Category, b[i].Category)
		assert.True(t, a[i].Amount.Equal(b[i].Amount))
		assert.Equal(t, a[i].Currency, b[i].Currency)
	}
}

func TestGeneratorDefaultsClock(t *testing.T) {
	g := NewGenerator(datagen.NewFaker(), GeneratorConfig{RecordsPerMonth: 1, Months: 1})

	before := time.Now()
	batches := g.Batches()
	after := time.Now()

	require.Len(t, batches, 1)
	assert.False(t, batches[0].Date.Before(before))
	assert.False(t, batches[0].Date.After(after))
}

func TestGenerateFlattensBatches(t *testing.T) {
	g := newTestGenerator(8, DefaultGeneratorConfig())
	batches := g.Batches()

	records := Flatten(batches)

	total := 0
	for _, b := range batches {
		total += len(b.Records)
	}
	require.Len(t, records, total)
	assert.Equal(t, batches[0].Records[0], records[0])
	last := batches[len(batches)-1]
	assert.Equal(t, last.Records[len(last.Records)-1], records[len(records)-1])
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
}
