package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRoleRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := CreateRoleRequest{
			RoleKey:     "regional_ops",
			Name:        "Regional Operations",
			Description: "Operations staff for the southern region",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_FromTemplates", func(t *testing.T) {
		req := CreateRoleRequest{
			RoleKey:            "regional_ops",
			Name:               "Regional Operations",
			SourceTemplateKeys: []string{"zone_supervisor", "tracking_operator"},
			MergeStrategy:      "intersection",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_MissingRoleKey", func(t *testing.T) {
		req := CreateRoleRequest{
			RoleKey: "",
			Name:    "Regional Operations",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_RoleKeyNotSnakeCase", func(t *testing.T) {
		req := CreateRoleRequest{
			RoleKey: "Regional-Ops",
			Name:    "Regional Operations",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		req := CreateRoleRequest{
			RoleKey: "regional_ops",
			Name:    "   ",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_UnknownMergeStrategy", func(t *testing.T) {
		req := CreateRoleRequest{
			RoleKey:            "regional_ops",
			Name:               "Regional Operations",
			SourceTemplateKeys: []string{"zone_supervisor"},
			MergeStrategy:      "overlay",
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestUpdateRoleRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := UpdateRoleRequest{
			Name:        "Regional Operations",
			Description: "Updated description",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_MissingName", func(t *testing.T) {
		req := UpdateRoleRequest{
			Name: "",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_BlankName", func(t *testing.T) {
		req := UpdateRoleRequest{
			Name: "   ",
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestSetGrantRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := SetGrantRequest{
			CapabilityKey: "vehicle.manage",
			AccessLevel:   "limited",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Success_WithZoneConstraints", func(t *testing.T) {
		req := SetGrantRequest{
			CapabilityKey: "vehicle.manage",
			AccessLevel:   "full",
			Constraints: &GrantConstraintsRequest{
				ZoneIDs: []string{"0190f6a2-7c3e-7b2a-9a4e-2f6d8c1b3e5a"},
			},
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_MissingCapabilityKey", func(t *testing.T) {
		req := SetGrantRequest{
			CapabilityKey: "",
			AccessLevel:   "view",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_UnknownAccessLevel", func(t *testing.T) {
		req := SetGrantRequest{
			CapabilityKey: "vehicle.manage",
			AccessLevel:   "admin",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_MissingAccessLevel", func(t *testing.T) {
		req := SetGrantRequest{
			CapabilityKey: "vehicle.manage",
			AccessLevel:   "",
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestMergeTemplatesRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := MergeTemplatesRequest{
			TemplateKeys: []string{"fleet_manager", "dispatcher"},
			Strategy:     "union",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_EmptyTemplateKeys", func(t *testing.T) {
		req := MergeTemplatesRequest{
			TemplateKeys: []string{},
			Strategy:     "union",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_MissingStrategy", func(t *testing.T) {
		req := MergeTemplatesRequest{
			TemplateKeys: []string{"fleet_manager"},
			Strategy:     "",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_UnknownStrategy", func(t *testing.T) {
		req := MergeTemplatesRequest{
			TemplateKeys: []string{"fleet_manager"},
			Strategy:     "overlay",
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestCompareTemplatesRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := CompareTemplatesRequest{
			TemplateKeys: []string{"driver", "viewer_analyst"},
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_SingleTemplateKey", func(t *testing.T) {
		req := CompareTemplatesRequest{
			TemplateKeys: []string{"driver"},
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_EmptyTemplateKeys", func(t *testing.T) {
		req := CompareTemplatesRequest{
			TemplateKeys: []string{},
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}

func TestCheckRequest_Validate(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		req := CheckRequest{
			CapabilityKey: "trip.manage",
			MinLevel:      "view",
		}

		err := req.Validate()
		assert.NoError(t, err)
	})

	t.Run("Error_MissingCapabilityKey", func(t *testing.T) {
		req := CheckRequest{
			CapabilityKey: "",
			MinLevel:      "view",
		}

		err := req.Validate()
		assert.Error(t, err)
	})

	t.Run("Error_UnknownMinLevel", func(t *testing.T) {
		req := CheckRequest{
			CapabilityKey: "trip.manage",
			MinLevel:      "owner",
		}

		err := req.Validate()
		assert.Error(t, err)
	})
}
