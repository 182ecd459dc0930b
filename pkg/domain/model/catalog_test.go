package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/testforge-dev/testforge/pkg/domain/model"
)

func TestTestTypeValidate(t *testing.T) {
	t.Run("valid test type", func(t *testing.T) {
		tt := model.TestType{
			ID:          "Functional",
			Name:        "Functional Testing",
			Description: "Validates features against requirements",
		}
		gt.NoError(t, tt.Validate())
	})

	t.Run("valid without description", func(t *testing.T) {
		tt := model.TestType{
			ID:   "Security",
			Name: "Security Testing",
		}
		gt.NoError(t, tt.Validate())
	})

	t.Run("error when ID is empty", func(t *testing.T) {
		tt := model.TestType{
			ID:   "",
			Name: "Functional Testing",
		}
		gt.Error(t, tt.Validate())
	})

	t.Run("error when Name is empty", func(t *testing.T) {
		tt := model.TestType{
			ID:   "Functional",
			Name: "",
		}
		gt.Error(t, tt.Validate())
	})
}

func TestCatalogValidate(t *testing.T) {
	t.Run("valid catalog", func(t *testing.T) {
		catalog := model.Catalog{
			TestTypes: []model.TestType{
				{ID: "Functional", Name: "Functional Testing"},
				{ID: "Security", Name: "Security Testing"},
			},
		}
		gt.NoError(t, catalog.Validate())
	})

	t.Run("error when catalog is empty", func(t *testing.T) {
		catalog := model.Catalog{
			TestTypes: []model.TestType{},
		}
		gt.Error(t, catalog.Validate())
	})

	t.Run("error when duplicate ID exists", func(t *testing.T) {
		catalog := model.Catalog{
			TestTypes: []model.TestType{
				{ID: "Functional", Name: "Functional Testing"},
				{ID: "Functional", Name: "Functional Again"},
			},
		}
		gt.Error(t, catalog.Validate())
	})

	t.Run("error when invalid test type exists", func(t *testing.T) {
		catalog := model.Catalog{
			TestTypes: []model.TestType{
				{ID: "Functional", Name: "Functional Testing"},
				{ID: "", Name: "Invalid"},
			},
		}
		gt.Error(t, catalog.Validate())
	})
}

func TestFindTestTypeByID(t *testing.T) {
	catalog := model.Catalog{
		TestTypes: []model.TestType{
			{ID: "Functional", Name: "Functional Testing"},
			{ID: "Security", Name: "Security Testing"},
		},
	}

	t.Run("returns test type when ID exists", func(t *testing.T) {
		tt := catalog.FindTestTypeByID("Security")
		gt.V(t, tt).NotNil()
		gt.Equal(t, tt.ID, "Security")
		gt.Equal(t, tt.Name, "Security Testing")
	})

	t.Run("returns nil when ID does not exist", func(t *testing.T) {
		tt := catalog.FindTestTypeByID("Telepathy")
		gt.V(t, tt).Nil()
	})

	t.Run("returns a copy", func(t *testing.T) {
		tt := catalog.FindTestTypeByID("Functional")
		gt.V(t, tt).NotNil()
		tt.Name = "Changed"
		gt.Equal(t, catalog.TestTypes[0].Name, "Functional Testing")
	})
}

func TestDefaultCatalog(t *testing.T) {
	catalog := model.DefaultCatalog()

	gt.NoError(t, catalog.Validate())
	gt.Equal(t, catalog.TestTypeIDs(), []string{
		"Functional", "Security", "UAT", "Performance",
		"Integration", "Usability", "Accessibility",
	})

	t.Run("all canonical types resolvable", func(t *testing.T) {
		for _, id := range catalog.TestTypeIDs() {
			gt.True(t, catalog.IsValidTestTypeID(id))
		}
	})

	t.Run("unknown type is not valid", func(t *testing.T) {
		gt.False(t, catalog.IsValidTestTypeID("Regression"))
	})
}
