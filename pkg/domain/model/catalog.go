package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// TestType represents one selectable test type in the catalog
type TestType struct {
	ID          string `yaml:"id" json:"id"`                                        // Unique identifier (e.g., "Functional")
	Name        string `yaml:"name" json:"name"`                                    // Display name
	Description string `yaml:"description,omitempty" json:"description,omitempty"` // Description for selection help (optional)
}

// Validate validates the test type
func (t *TestType) Validate() error {
	if t.ID == "" {
		return goerr.New("test type ID is required")
	}
	if t.Name == "" {
		return goerr.New("test type name is required")
	}
	return nil
}

// Catalog represents the test type catalog configuration
type Catalog struct {
	TestTypes []TestType `yaml:"test_types"`
}

// Validate validates the catalog
func (c *Catalog) Validate() error {
	if len(c.TestTypes) == 0 {
		return goerr.New("at least one test type is required")
	}

	idMap := make(map[string]bool)
	for i, tt := range c.TestTypes {
		if err := tt.Validate(); err != nil {
			return goerr.Wrap(err, "invalid test type at index",
				goerr.V("index", i),
				goerr.V("id", tt.ID))
		}

		if idMap[tt.ID] {
			return goerr.New("duplicate test type ID",
				goerr.V("id", tt.ID))
		}
		idMap[tt.ID] = true
	}

	return nil
}

// FindTestTypeByID finds a test type by its ID
func (c *Catalog) FindTestTypeByID(id string) *TestType {
	for _, tt := range c.TestTypes {
		if tt.ID == id {
			// Return a copy to prevent modification
			result := tt
			return &result
		}
	}
	return nil
}

// IsValidTestTypeID checks if the given test type ID exists in the catalog
func (c *Catalog) IsValidTestTypeID(id string) bool {
	return c.FindTestTypeByID(id) != nil
}

// TestTypeIDs returns the IDs of all test types in catalog order
func (c *Catalog) TestTypeIDs() []string {
	ids := make([]string, 0, len(c.TestTypes))
	for _, tt := range c.TestTypes {
		ids = append(ids, tt.ID)
	}
	return ids
}

// DefaultCatalog returns the built-in test type catalog
func DefaultCatalog() *Catalog {
	return &Catalog{
		TestTypes: []TestType{
			{ID: "Functional", Name: "Functional Testing", Description: "Validates features against their functional requirements"},
			{ID: "Security", Name: "Security Testing", Description: "Probes authentication, authorization, and data protection"},
			{ID: "UAT", Name: "User Acceptance Testing", Description: "Confirms the story meets user expectations end to end"},
			{ID: "Performance", Name: "Performance Testing", Description: "Checks response times and behavior under load"},
			{ID: "Integration", Name: "Integration Testing", Description: "Exercises interactions between components and systems"},
			{ID: "Usability", Name: "Usability Testing", Description: "Evaluates ease of use and clarity of the interface"},
			{ID: "Accessibility", Name: "Accessibility Testing", Description: "Verifies compliance with accessibility standards"},
		},
	}
}
