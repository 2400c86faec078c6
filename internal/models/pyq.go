package models

import (
	"fmt"
	"strings"
	"time"
)

// SolutionType describes how a solution is delivered
type SolutionType string

const (
	// SolutionWritten is a plain-text worked solution
	SolutionWritten SolutionType = "written"
	// SolutionVideo is a link to a video walkthrough
	SolutionVideo SolutionType = "video"
)

// Valid reports whether the solution type is one of the known values
func (t SolutionType) Valid() bool {
	return t == SolutionWritten || t == SolutionVideo
}

// PYQ represents a single previous-year question record
type PYQ struct {
	ID        string       `json:"id"`       // UUID
	Exam      string       `json:"exam"`     // e.g. "JEE Main"
	Year      string       `json:"year"`     // free text, exact-match filtered
	Subject   string       `json:"subject"`  // e.g. "Physics"
	Chapter   string       `json:"chapter"`  // chapter or paper name
	Question  string       `json:"question"` // question text
	Solution  string       `json:"solution"` // solution text or video URL
	Type      SolutionType `json:"type"`     // written | video
	CreatedAt time.Time    `json:"created_at"`
}

// ValidationError reports a missing or malformed required field
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is required", e.Field)
}

// Normalize trims surrounding whitespace from all free-text fields.
// Field values are otherwise stored verbatim, no case folding.
func (p *PYQ) Normalize() {
	p.Exam = strings.TrimSpace(p.Exam)
	p.Year = strings.TrimSpace(p.Year)
	p.Subject = strings.TrimSpace(p.Subject)
	p.Chapter = strings.TrimSpace(p.Chapter)
	p.Question = strings.TrimSpace(p.Question)
	p.Solution = strings.TrimSpace(p.Solution)
	p.Type = SolutionType(strings.TrimSpace(string(p.Type)))
}

// Validate checks that every required field is present after trimming.
// Blank fields are rejected, never defaulted.
func (p *PYQ) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"exam", p.Exam},
		{"year", p.Year},
		{"subject", p.Subject},
		{"chapter", p.Chapter},
		{"question", p.Question},
		{"solution", p.Solution},
	}
	for _, f := range fields {
		if f.value == "" {
			return &ValidationError{Field: f.name}
		}
	}
	if !p.Type.Valid() {
		return &ValidationError{Field: "type"}
	}
	return nil
}

// PYQFilter restricts a listing to records whose fields equal the
// present filter values exactly. Empty fields impose no constraint.
type PYQFilter struct {
	Exam    string
	Year    string
	Subject string
	Chapter string
	Type    string
}

// Empty reports whether the filter imposes no constraints
func (f PYQFilter) Empty() bool {
	return f == PYQFilter{}
}

// Matches reports whether the record satisfies every present filter key
func (f PYQFilter) Matches(p *PYQ) bool {
	if f.Exam != "" && p.Exam != f.Exam {
		return false
	}
	if f.Year != "" && p.Year != f.Year {
		return false
	}
	if f.Subject != "" && p.Subject != f.Subject {
		return false
	}
	if f.Chapter != "" && p.Chapter != f.Chapter {
		return false
	}
	if f.Type != "" && string(p.Type) != f.Type {
		return false
	}
	return true
}
