package domain

import "time"

// Capability is a named permission unit scoped to one feature area.
// Capabilities are identified by their key and are immutable after seeding.
type Capability struct {
	Key              string
	Category         FeatureCategory
	Name             string
	Description      string
	AccessLevels     []AccessLevel
	IsSystemCritical bool
	CreatedAt        time.Time
}

// SupportsLevel reports whether the capability declares the given access level.
func (c *Capability) SupportsLevel(level AccessLevel) bool {
	for _, supported := range c.AccessLevels {
		if supported == level {
			return true
		}
	}
	return false
}

// Access level sets shared by the capability definitions below.
var (
	allLevels      = []AccessLevel{AccessLevelNone, AccessLevelView, AccessLevelLimited, AccessLevelFull}
	viewFullLevels = []AccessLevel{AccessLevelNone, AccessLevelView, AccessLevelFull}
	fullOnlyLevels = []AccessLevel{AccessLevelNone, AccessLevelFull}
)

// CapabilityDefinitions returns the fixed catalog of capability definitions.
// This catalog is the source of truth for what can be granted; the registry
// seeds it into storage once and never modifies existing rows.
func CapabilityDefinitions() []Capability {
	return []Capability{
		{
			Key:          "user.manage",
			Category:     CategoryUserManagement,
			Name:         "Manage Users",
			Description:  "Create, update and deactivate users inside the organization",
			AccessLevels: allLevels,
		},
		{
			Key:          "user.invite",
			Category:     CategoryUserManagement,
			Name:         "Invite Users",
			Description:  "Invite new users into the organization",
			AccessLevels: viewFullLevels,
		},
		{
			Key:              "role.manage",
			Category:         CategoryRoleManagement,
			Name:             "Manage Roles",
			Description:      "Create, update and delete custom roles and their grants",
			AccessLevels:     viewFullLevels,
			IsSystemCritical: true,
		},
		{
			Key:              "role.assign",
			Category:         CategoryRoleManagement,
			Name:             "Assign Roles",
			Description:      "Assign roles to organization members",
			AccessLevels:     viewFullLevels,
			IsSystemCritical: true,
		},
		{
			Key:          "vehicle.manage",
			Category:     CategoryVehicleManagement,
			Name:         "Manage Vehicles",
			Description:  "Create, update and retire vehicles",
			AccessLevels: allLevels,
		},
		{
			Key:          "vehicle.assign",
			Category:     CategoryVehicleManagement,
			Name:         "Assign Vehicles",
			Description:  "Assign vehicles to drivers and zones",
			AccessLevels: viewFullLevels,
		},
		{
			Key:          "zone.manage",
			Category:     CategoryVehicleManagement,
			Name:         "Manage Zones",
			Description:  "Create, update and delete operating zones",
			AccessLevels: viewFullLevels,
		},
		{
			Key:          "driver.manage",
			Category:     CategoryDriverManagement,
			Name:         "Manage Drivers",
			Description:  "Create, update and deactivate drivers",
			AccessLevels: allLevels,
		},
		{
			Key:          "driver.schedule",
			Category:     CategoryDriverManagement,
			Name:         "Schedule Drivers",
			Description:  "Manage driver shift and availability schedules",
			AccessLevels: allLevels,
		},
		{
			Key:          "trip.manage",
			Category:     CategoryTripManagement,
			Name:         "Manage Trips",
			Description:  "Create, update and cancel trips",
			AccessLevels: allLevels,
		},
		{
			Key:          "trip.dispatch",
			Category:     CategoryTripManagement,
			Name:         "Dispatch Trips",
			Description:  "Dispatch trips to drivers and vehicles",
			AccessLevels: viewFullLevels,
		},
		{
			Key:          "tracking.view",
			Category:     CategoryTracking,
			Name:         "View Live Tracking",
			Description:  "View live vehicle positions",
			AccessLevels: viewFullLevels,
		},
		{
			Key:          "tracking.history",
			Category:     CategoryTracking,
			Name:         "View Tracking History",
			Description:  "View historical routes and position logs",
			AccessLevels: viewFullLevels,
		},
		{
			Key:          "expense.manage",
			Category:     CategoryFinancial,
			Name:         "Manage Expenses",
			Description:  "Record and approve fleet expenses",
			AccessLevels: allLevels,
		},
		{
			Key:          "invoice.manage",
			Category:     CategoryFinancial,
			Name:         "Manage Invoices",
			Description:  "Create and settle customer invoices",
			AccessLevels: allLevels,
		},
		{
			Key:          "budget.manage",
			Category:     CategoryFinancial,
			Name:         "Manage Budgets",
			Description:  "Define and adjust fleet budgets",
			AccessLevels: viewFullLevels,
		},
		{
			Key:          "maintenance.manage",
			Category:     CategoryMaintenance,
			Name:         "Manage Maintenance",
			Description:  "Record maintenance work and vehicle downtime",
			AccessLevels: allLevels,
		},
		{
			Key:          "maintenance.schedule",
			Category:     CategoryMaintenance,
			Name:         "Schedule Maintenance",
			Description:  "Plan preventive maintenance windows",
			AccessLevels: viewFullLevels,
		},
		{
			Key:          "compliance.manage",
			Category:     CategoryCompliance,
			Name:         "Manage Compliance",
			Description:  "Track licenses, permits and inspection records",
			AccessLevels: allLevels,
		},
		{
			Key:          "compliance.audit",
			Category:     CategoryCompliance,
			Name:         "Audit Compliance",
			Description:  "Run and review compliance audits",
			AccessLevels: viewFullLevels,
		},
		{
			Key:          "customer.manage",
			Category:     CategoryCustomer,
			Name:         "Manage Customers",
			Description:  "Create and update customer accounts",
			AccessLevels: allLevels,
		},
		{
			Key:          "report.view",
			Category:     CategoryReporting,
			Name:         "View Reports",
			Description:  "View operational and financial reports",
			AccessLevels: viewFullLevels,
		},
		{
			Key:          "report.export",
			Category:     CategoryReporting,
			Name:         "Export Reports",
			Description:  "Export reports to external formats",
			AccessLevels: fullOnlyLevels,
		},
		{
			Key:              "organization.manage",
			Category:         CategorySystem,
			Name:             "Manage Organization",
			Description:      "Update organization profile and settings",
			AccessLevels:     viewFullLevels,
			IsSystemCritical: true,
		},
		{
			Key:              "system.settings",
			Category:         CategorySystem,
			Name:             "System Settings",
			Description:      "Change system-wide configuration",
			AccessLevels:     viewFullLevels,
			IsSystemCritical: true,
		},
	}
}
