package types

import (
	"github.com/google/uuid"
)

// Priority represents a test case priority level
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DefaultPriority is applied when a request omits the priority level
const DefaultPriority = PriorityMedium

// String returns the string representation
func (p Priority) String() string {
	return string(p)
}

// IsValid checks if the priority is one of the known levels
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Priorities returns all priority levels in ascending order
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Complexity represents the requested detail level for generated test cases
type Complexity string

const (
	ComplexitySimple  Complexity = "Simple"
	ComplexityMedium  Complexity = "Medium"
	ComplexityComplex Complexity = "Complex"
)

// DefaultComplexity is applied when a request omits the complexity level
const DefaultComplexity = ComplexityMedium

// String returns the string representation
func (c Complexity) String() string {
	return string(c)
}

// IsValid checks if the complexity is one of the known levels
func (c Complexity) IsValid() bool {
	switch c {
	case ComplexitySimple, ComplexityMedium, ComplexityComplex:
		return true
	default:
		return false
	}
}

// Complexities returns all complexity levels in ascending order
func Complexities() []Complexity {
	return []Complexity{ComplexitySimple, ComplexityMedium, ComplexityComplex}
}

// ExportFormat represents a supported export output format
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatJSON    ExportFormat = "json"
	ExportFormatJiraCSV ExportFormat = "jira_csv"
)

// String returns the string representation
func (f ExportFormat) String() string {
	return string(f)
}

// IsValid checks if the format is supported by the export service
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportFormatCSV, ExportFormatJSON, ExportFormatJiraCSV:
		return true
	default:
		return false
	}
}

// ExportFormats returns all formats the export service supports
func ExportFormats() []ExportFormat {
	return []ExportFormat{ExportFormatCSV, ExportFormatJSON, ExportFormatJiraCSV}
}

// GenerationID identifies a single test case generation run
type GenerationID string

// String returns the string representation
func (id GenerationID) String() string {
	return string(id)
}

// NewGenerationID creates a new GenerationID
func NewGenerationID() GenerationID {
	return GenerationID(uuid.New().String())
}
