package models

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Priority adalah kelas triase pasien: 1=Critical, 2=Urgent, 3=Normal.
type Priority int

const (
	Critical Priority = 1
	Urgent   Priority = 2
	Normal   Priority = 3
)

// Priorities lists the classes in call order.
var Priorities = [3]Priority{Critical, Urgent, Normal}

func (p Priority) String() string {
	switch p {
	case Critical:
		return "Critical"
	case Urgent:
		return "Urgent"
	case Normal:
		return "Normal"
	default:
		return "Unknown"
	}
}

func (p Priority) Valid() bool {
	return p >= Critical && p <= Normal
}

const (
	MaxNameLength = 49
	MinAge        = 1
	MaxAge        = 120
)

var (
	ErrInvalidName     = errors.New("name must be 1-49 characters")
	ErrInvalidAge      = errors.New("age must be between 1 and 120")
	ErrInvalidPriority = errors.New("priority must be 1 (Critical), 2 (Urgent) or 3 (Normal)")
)

// Patient mewakili data pasien yang sedang atau pernah mengantri.
type Patient struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Priority Priority `json:"priority"`
}

// PatientInput adalah data pendaftaran dari meja resepsionis.
type PatientInput struct {
	Name     string   `json:"name"`
	Age      int      `json:"age"`
	Priority Priority `json:"priority"`
}

// Validate checks the registration data before it reaches a queue.
func (in PatientInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return ErrInvalidName
	}
	if in.Age < MinAge || in.Age > MaxAge {
		return ErrInvalidAge
	}
	if !in.Priority.Valid() {
		return ErrInvalidPriority
	}
	return nil
}

// Patient builds an unnumbered patient; the registry assigns the ID.
func (in PatientInput) Patient() Patient {
	return Patient{
		Name:     strings.TrimSpace(in.Name),
		Age:      in.Age,
		Priority: in.Priority,
	}
}
