// Package opslog records department activity (receiving, putaway, picking
// and so on) as an append-only log of entries.
package opslog

import (
	"fmt"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/ginjaninja78/ops-labels/internal/validation"
)

// Department is one warehouse department that submits log entries.
type Department struct {
	Key  string
	Name string
}

// Departments lists every department, in display order.
var Departments = []Department{
	{Key: "receiving", Name: "Receiving"},
	{Key: "putaway", Name: "Putaway"},
	{Key: "picking", Name: "Picking"},
	{Key: "packing", Name: "Packing"},
	{Key: "shipping", Name: "Shipping"},
	{Key: "inventory", Name: "Inventory"},
	{Key: "returns_osd", Name: "Returns / OSD"},
}

// LookupDepartment finds a department by key.
func LookupDepartment(key string) (Department, bool) {
	for _, d := range Departments {
		if d.Key == key {
			return d, true
		}
	}
	return Department{}, false
}

func departmentKeys() []interface{} {
	keys := make([]interface{}, len(Departments))
	for i, d := range Departments {
		keys[i] = d.Key
	}
	return keys
}

// Entry is one stored log line.
type Entry struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Timestamp    time.Time `gorm:"column:ts;not null;index"`
	Department   string    `gorm:"not null"`
	Person       string    `gorm:"not null"`
	ItemNo       string
	Qty          int `gorm:"not null"`
	Location     string
	DateReceived string
	CheckedBy    string
	Notes        string
}

// TableName pins the table name shared by every store.
func (Entry) TableName() string {
	return "ops_entries"
}

// Submission is a raw department form, exactly as typed.
type Submission struct {
	Department   string
	Person       string
	ItemNo       string
	Quantity     string
	Location     string
	DateReceived string
	CheckedBy    string
	Notes        string
}

// Validate checks the fields owned by the log itself.
func (s Submission) Validate() error {
	return ozzo.ValidateStruct(&s,
		ozzo.Field(&s.Department, ozzo.Required, ozzo.In(departmentKeys()...).Error("unknown department")),
		ozzo.Field(&s.Person, ozzo.Required.Error("person name is required")),
	)
}

// NewEntry validates sub and turns it into an Entry stamped with now in UTC.
// The item number is optional here; quantity is required.
func NewEntry(sub Submission, v *validation.Validator, now time.Time) (Entry, error) {
	sub.Department = trim(sub.Department)
	sub.Person = trim(sub.Person)
	if err := sub.Validate(); err != nil {
		return Entry{}, fmt.Errorf("invalid submission: %w", err)
	}

	itemNo, err := v.ItemNo(sub.ItemNo, false)
	if err != nil {
		return Entry{}, err
	}
	qty, err := v.Quantity(sub.Quantity, 0)
	if err != nil {
		return Entry{}, err
	}
	location, err := v.Location(sub.Location)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		Timestamp:    now.UTC().Truncate(time.Second),
		Department:   sub.Department,
		Person:       sub.Person,
		ItemNo:       itemNo,
		Qty:          qty,
		Location:     location,
		DateReceived: trim(sub.DateReceived),
		CheckedBy:    trim(sub.CheckedBy),
		Notes:        trim(sub.Notes),
	}, nil
}
