package domain

// RoleTemplate is a predefined, reusable role definition. Templates are
// in-memory catalog data: they seed the system roles and serve as merge and
// compare input, but are never mutated at runtime.
type RoleTemplate struct {
	RoleKey     string
	Name        string
	Description string
	Grants      map[string]AccessLevel
}

// Predefined template role keys.
const (
	TemplateOrgAdmin           = "org_admin"
	TemplateFleetManager       = "fleet_manager"
	TemplateDispatcher         = "dispatcher"
	TemplateDriver             = "driver"
	TemplateMaintenanceManager = "maintenance_manager"
	TemplateFinanceManager     = "finance_manager"
	TemplateComplianceOfficer  = "compliance_officer"
	TemplateCustomerService    = "customer_service"
	TemplateViewerAnalyst      = "viewer_analyst"
	TemplateZoneSupervisor     = "zone_supervisor"
	TemplateTrackingOperator   = "tracking_operator"
)

// RoleTemplates returns the eleven predefined role templates.
func RoleTemplates() []RoleTemplate {
	return []RoleTemplate{
		{
			RoleKey:     TemplateOrgAdmin,
			Name:        "Organization Administrator",
			Description: "Full access to every feature of the organization",
			Grants:      orgAdminGrants(),
		},
		{
			RoleKey:     TemplateFleetManager,
			Name:        "Fleet Manager",
			Description: "Full control over vehicles, drivers and trips",
			Grants: map[string]AccessLevel{
				"vehicle.manage":       AccessLevelFull,
				"vehicle.assign":       AccessLevelFull,
				"zone.manage":          AccessLevelFull,
				"driver.manage":        AccessLevelFull,
				"driver.schedule":      AccessLevelFull,
				"trip.manage":          AccessLevelFull,
				"trip.dispatch":        AccessLevelFull,
				"tracking.view":        AccessLevelFull,
				"tracking.history":     AccessLevelView,
				"maintenance.manage":   AccessLevelLimited,
				"maintenance.schedule": AccessLevelFull,
				"report.view":          AccessLevelView,
				"user.manage":          AccessLevelView,
			},
		},
		{
			RoleKey:     TemplateDispatcher,
			Name:        "Dispatcher",
			Description: "Plans and dispatches trips, read access to fleet state",
			Grants: map[string]AccessLevel{
				"trip.manage":     AccessLevelFull,
				"trip.dispatch":   AccessLevelFull,
				"vehicle.manage":  AccessLevelView,
				"driver.manage":   AccessLevelView,
				"driver.schedule": AccessLevelLimited,
				"tracking.view":   AccessLevelFull,
				"zone.manage":     AccessLevelView,
				"customer.manage": AccessLevelLimited,
				"report.view":     AccessLevelView,
			},
		},
		{
			RoleKey:     TemplateDriver,
			Name:        "Driver",
			Description: "Read access to own trips and assigned vehicle",
			Grants: map[string]AccessLevel{
				"trip.manage":    AccessLevelView,
				"vehicle.manage": AccessLevelView,
				"tracking.view":  AccessLevelView,
			},
		},
		{
			RoleKey:     TemplateMaintenanceManager,
			Name:        "Maintenance Manager",
			Description: "Manages maintenance work and schedules",
			Grants: map[string]AccessLevel{
				"maintenance.manage":   AccessLevelFull,
				"maintenance.schedule": AccessLevelFull,
				"vehicle.manage":       AccessLevelLimited,
				"compliance.manage":    AccessLevelView,
				"report.view":          AccessLevelView,
			},
		},
		{
			RoleKey:     TemplateFinanceManager,
			Name:        "Finance Manager",
			Description: "Manages expenses, invoices and budgets",
			Grants: map[string]AccessLevel{
				"expense.manage":  AccessLevelFull,
				"invoice.manage":  AccessLevelFull,
				"budget.manage":   AccessLevelFull,
				"report.view":     AccessLevelFull,
				"report.export":   AccessLevelFull,
				"customer.manage": AccessLevelView,
				"vehicle.manage":  AccessLevelView,
			},
		},
		{
			RoleKey:     TemplateComplianceOfficer,
			Name:        "Compliance Officer",
			Description: "Tracks regulatory compliance across the fleet",
			Grants: map[string]AccessLevel{
				"compliance.manage": AccessLevelFull,
				"compliance.audit":  AccessLevelFull,
				"driver.manage":     AccessLevelView,
				"vehicle.manage":    AccessLevelView,
				"tracking.history":  AccessLevelView,
				"report.view":       AccessLevelFull,
			},
		},
		{
			RoleKey:     TemplateCustomerService,
			Name:        "Customer Service",
			Description: "Manages customer accounts and their trips",
			Grants: map[string]AccessLevel{
				"customer.manage": AccessLevelFull,
				"trip.manage":     AccessLevelView,
				"invoice.manage":  AccessLevelView,
				"report.view":     AccessLevelView,
			},
		},
		{
			RoleKey:     TemplateViewerAnalyst,
			Name:        "Viewer / Analyst",
			Description: "Read-only access for reporting and analysis",
			Grants: map[string]AccessLevel{
				"report.view":      AccessLevelFull,
				"report.export":    AccessLevelFull,
				"tracking.view":    AccessLevelView,
				"tracking.history": AccessLevelView,
				"vehicle.manage":   AccessLevelView,
				"driver.manage":    AccessLevelView,
				"trip.manage":      AccessLevelView,
				"expense.manage":   AccessLevelView,
			},
		},
		{
			RoleKey:     TemplateZoneSupervisor,
			Name:        "Zone Supervisor",
			Description: "Manages vehicles and drivers inside assigned zones",
			Grants: map[string]AccessLevel{
				"zone.manage":    AccessLevelFull,
				"vehicle.manage": AccessLevelLimited,
				"vehicle.assign": AccessLevelFull,
				"driver.manage":  AccessLevelLimited,
				"tracking.view":  AccessLevelFull,
				"trip.manage":    AccessLevelLimited,
			},
		},
		{
			RoleKey:     TemplateTrackingOperator,
			Name:        "Tracking Operator",
			Description: "Monitors live positions and route history",
			Grants: map[string]AccessLevel{
				"tracking.view":    AccessLevelFull,
				"tracking.history": AccessLevelFull,
				"vehicle.manage":   AccessLevelView,
				"trip.manage":      AccessLevelView,
				"report.view":      AccessLevelView,
			},
		},
	}
}

// orgAdminGrants builds the full-access grant map covering every capability
// in the registry. Every capability definition declares the full level.
func orgAdminGrants() map[string]AccessLevel {
	grants := make(map[string]AccessLevel)
	for _, capability := range CapabilityDefinitions() {
		grants[capability.Key] = AccessLevelFull
	}
	return grants
}
