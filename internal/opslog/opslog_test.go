package opslog

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ginjaninja78/ops-labels/internal/config"
	"github.com/ginjaninja78/ops-labels/internal/validation"
)

var testValidator = validation.NewValidator(config.DefaultAreas())

func validSubmission() Submission {
	return Submission{
		Department:   "receiving",
		Person:       " Brandon ",
		ItemNo:       "607529",
		Quantity:     "24",
		Location:     "a-10-1",
		DateReceived: "2026-10-18",
		Notes:        "dock 3",
	}
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 5, 9, 500, time.FixedZone("EST", -5*3600))

	e, err := NewEntry(validSubmission(), testValidator, now)
	require.NoError(t, err)

	want := Entry{
		Timestamp:    time.Date(2026, 10, 18, 19, 5, 9, 0, time.UTC),
		Department:   "receiving",
		Person:       "Brandon",
		ItemNo:       "607529",
		Qty:          24,
		Location:     "A-10-1",
		DateReceived: "2026-10-18",
		Notes:        "dock 3",
	}
	if diff := cmp.Diff(want, e); diff != "" {
		t.Fatalf("entry mismatch (-want +got):\n%s", diff)
	}
}

func TestNewEntryItemIsOptional(t *testing.T) {
	sub := validSubmission()
	sub.ItemNo = "  "
	sub.Location = ""

	e, err := NewEntry(sub, testValidator, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "", e.ItemNo)
	assert.Equal(t, "", e.Location)
}

func TestNewEntryRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Submission)
		want   error
	}{
		{"bad item", func(s *Submission) { s.ItemNo = "60752" }, validation.ErrInvalidItemNumber},
		{"missing qty", func(s *Submission) { s.Quantity = "" }, validation.ErrInvalidQuantity},
		{"negative qty", func(s *Submission) { s.Quantity = "-2" }, validation.ErrInvalidQuantity},
		{"bad area", func(s *Submission) { s.Location = "Z-1-1" }, validation.ErrInvalidArea},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(&sub)
			_, err := NewEntry(sub, testValidator, time.Now())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewEntryFormErrors(t *testing.T) {
	sub := validSubmission()
	sub.Department = "accounting"
	sub.Person = ""

	_, err := NewEntry(sub, testValidator, time.Now())
	require.Error(t, err)

	var errs ozzo.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "Department")
	assert.Contains(t, errs, "Person")
}

func TestLookupDepartment(t *testing.T) {
	d, ok := LookupDepartment("returns_osd")
	require.True(t, ok)
	assert.Equal(t, "Returns / OSD", d.Name)

	_, ok = LookupDepartment("Receiving")
	assert.False(t, ok)
	assert.Len(t, Departments, 7)
}

// =============================================================================
// SQLITE STORE
// =============================================================================

func newTestSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	store, err := NewSQLStore(filepath.Join(t.TempDir(), "data", "ops.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func appendAt(t *testing.T, s Store, ts time.Time, person string) Entry {
	t.Helper()
	e := Entry{Timestamp: ts, Department: "picking", Person: person, Qty: 1}
	require.NoError(t, s.Append(context.Background(), &e))
	return e
}

func TestSQLStoreAppendAndRecent(t *testing.T) {
	store := newTestSQLStore(t)
	base := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	first := appendAt(t, store, base, "a")
	second := appendAt(t, store, base.Add(time.Minute), "b")
	third := appendAt(t, store, base.Add(2*time.Minute), "c")
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	recent, err := store.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, third.ID, recent[0].ID)
	assert.Equal(t, "b", recent[1].Person)
	assert.True(t, recent[0].Timestamp.Equal(base.Add(2*time.Minute)))

	all, err := store.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLStoreRoundTripsFields(t *testing.T) {
	store := newTestSQLStore(t)
	e, err := NewEntry(validSubmission(), testValidator, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, store.Append(context.Background(), &e))

	got, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	if diff := cmp.Diff(e, got[0]); diff != "" {
		t.Fatalf("stored entry mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLStoreDay(t *testing.T) {
	store := newTestSQLStore(t)
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	appendAt(t, store, day.Add(-time.Second), "yesterday")
	appendAt(t, store, day.Add(time.Hour), "morning")
	appendAt(t, store, day.Add(23*time.Hour), "night")
	appendAt(t, store, day.AddDate(0, 0, 1), "tomorrow")

	got, err := store.Day(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "morning", got[0].Person)
	assert.Equal(t, "night", got[1].Person)
}

func TestSQLStoreReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.db")
	store, err := NewSQLStore(path)
	require.NoError(t, err)
	appendAt(t, store, time.Now(), "a")
	require.NoError(t, store.Close())

	store, err = NewSQLStore(path)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpenSelectsDriver(t *testing.T) {
	store, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "ops.db")})
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &SQLStore{}, store)

	_, err = Open(config.DatabaseConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)
}

// =============================================================================
// POSTGRES STORE (dry run, no server)
// =============================================================================

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=ops dbname=ops sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestGormStoreStatements(t *testing.T) {
	db := newDryRunDB(t)
	store := newGormStore(db)

	e := Entry{Timestamp: time.Now(), Department: "packing", Person: "a", Qty: 2}
	require.NoError(t, store.Append(context.Background(), &e))
	assert.Equal(t, time.UTC, e.Timestamp.Location())

	insert := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Create(&Entry{Timestamp: time.Now(), Department: "packing", Person: "a", Qty: 2})
	})
	assert.Contains(t, insert, `INSERT INTO "ops_entries"`)
	assert.Contains(t, insert, `"ts"`)

	recent := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return recentQuery(tx, 0).Find(&[]Entry{})
	})
	assert.Contains(t, recent, "ORDER BY id DESC")
	assert.Contains(t, recent, "LIMIT 200")

	day := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return dayQuery(tx, time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)).Find(&[]Entry{})
	})
	assert.Contains(t, day, "ts >= '2026-10-18 00:00:00")
	assert.Contains(t, day, "ts < '2026-10-19 00:00:00")
}

// =============================================================================
// EXPORT
// =============================================================================

func TestWriteCSV(t *testing.T) {
	entries := []Entry{
		{
			Timestamp:  time.Date(2026, 10, 18, 9, 1, 2, 0, time.UTC),
			Department: "shipping",
			Person:     "Lee, Sam",
			ItemNo:     "123456",
			Qty:        3,
			Location:   "XG-1-2",
			Notes:      `said "rush"`,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, entries))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ts_utc,department,person,item_no,qty,location,date_received,checked_by,notes", lines[0])
	assert.Equal(t, `2026-10-18T09:01:02,shipping,"Lee, Sam",123456,3,XG-1-2,,,"said ""rush"""`, lines[1])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(ExportHeader, ",")+"\n", buf.String())
	assert.Equal(t, "ops_2026-10-18.csv", ExportFileName("2026-10-18"))
}
