package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AnswerKind is the declared shape of the response a question expects.
type AnswerKind string

const (
	AnswerKindChoice  AnswerKind = "choice"
	AnswerKindBoolean AnswerKind = "boolean"
	AnswerKindInteger AnswerKind = "integer"
)

// Valid reports whether the value is a known answer kind.
func (k AnswerKind) Valid() bool {
	switch k {
	case AnswerKindChoice, AnswerKindBoolean, AnswerKindInteger:
		return true
	}

	return false
}

// AnswerValue is the tagged payload of an answer. Exactly one of the payload
// fields is meaningful, selected by Kind. Use the constructors so the tag and
// the populated field cannot disagree.
type AnswerValue struct {
	Kind   AnswerKind
	Choice string
	Int    int64
	Bool   bool
}

// ChoiceValue builds a choice-label answer value.
func ChoiceValue(label string) AnswerValue {
	return AnswerValue{Kind: AnswerKindChoice, Choice: label}
}

// BoolValue builds a boolean answer value.
func BoolValue(v bool) AnswerValue {
	return AnswerValue{Kind: AnswerKindBoolean, Bool: v}
}

// IntValue builds an integer answer value.
func IntValue(n int64) AnswerValue {
	return AnswerValue{Kind: AnswerKindInteger, Int: n}
}

// Validate checks the tag and, for choice answers, that a label is present.
func (v AnswerValue) Validate() error {
	if !v.Kind.Valid() {
		return fmt.Errorf("unknown answer kind %q", v.Kind)
	}
	if v.Kind == AnswerKindChoice && v.Choice == "" {
		return fmt.Errorf("choice answer requires a label")
	}

	return nil
}

// Day is a calendar date in ISO YYYY-MM-DD form. Answers are keyed by the
// day they were submitted, not the full timestamp.
type Day string

// DayOf returns the calendar day of the given instant.
func DayOf(t time.Time) Day {
	return Day(t.Format("2006-01-02"))
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	t, err := time.Parse("2006-01-02", string(d))
	if err != nil {
		return d
	}

	return DayOf(t.AddDate(0, 0, n))
}

// Answer is a single submitted response. The owning user is set once at
// creation from the authenticated caller and never changes afterwards. At
// most one answer exists per (user, question, day).
type Answer struct {
	ID            uint
	UserID        uuid.UUID
	Family        QuestionFamily
	QuestionID    *uint
	VegetableID   *uint
	Value         AnswerValue
	IsAllergy     bool
	IsUnnecessary bool
	AnsweredOn    Day
	CreatedAt     time.Time
}
