package models

import (
	"fmt"
	"strings"
)

// Degree is the study programme a student or subject belongs to
type Degree string

const (
	DegreeBachelor Degree = "Bachelor"
	DegreeMaster   Degree = "Master"
)

// Valid reports whether d is one of the known degrees
func (d Degree) Valid() bool {
	return d == DegreeBachelor || d == DegreeMaster
}

// ParseDegree converts user input such as "bachelor" or "Master" into a Degree
func ParseDegree(s string) (Degree, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bachelor":
		return DegreeBachelor, nil
	case "master":
		return DegreeMaster, nil
	default:
		return "", fmt.Errorf("unknown degree %q, expected Bachelor or Master", s)
	}
}

// Entity is implemented by every persisted record. T is the implementing type
// itself so that copies with a new identity or overlaid fields keep their type.
type Entity[T any] interface {
	// TableName is the relational table (and CSV file stem) holding the entity
	TableName() string
	Identity() int64
	WithIdentity(id int64) T
	// Overlay returns base with every set (non-zero) field of the receiver copied over it
	Overlay(base T) T
	// Columns maps column names to canonical values (string, int64, time.Time), id excluded
	Columns() map[string]any
}

// Relation describes a many-to-many relation materialised as a join table
type Relation struct {
	Field        string
	JoinTable    string
	OwnerColumn  string
	MemberColumn string
}

// Rostered is implemented by entities that own a many-to-many id list.
// A nil list means the list is not set.
type Rostered[T any] interface {
	Roster() (Relation, []int64)
	WithRoster(ids []int64) T
}
