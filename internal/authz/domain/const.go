// Package domain defines the authorization domain models.
// Implements capability-based access control with capabilities, roles,
// role-capability grants, and predefined role templates.
package domain

// AccessLevel defines the strength of a capability grant.
// Levels form a total order: none < view < limited < full.
type AccessLevel string

const (
	// AccessLevelNone grants no access.
	AccessLevelNone AccessLevel = "none"

	// AccessLevelView grants read-only access.
	AccessLevelView AccessLevel = "view"

	// AccessLevelLimited grants write access restricted by grant constraints.
	AccessLevelLimited AccessLevel = "limited"

	// AccessLevelFull grants unrestricted access.
	AccessLevelFull AccessLevel = "full"
)

// accessLevelRanks maps each access level to its position in the total order.
var accessLevelRanks = map[AccessLevel]int{
	AccessLevelNone:    0,
	AccessLevelView:    1,
	AccessLevelLimited: 2,
	AccessLevelFull:    3,
}

// Rank returns the position of the level in the none < view < limited < full
// order. Unknown levels rank below none.
func (l AccessLevel) Rank() int {
	rank, ok := accessLevelRanks[l]
	if !ok {
		return -1
	}
	return rank
}

// IsValid reports whether the level is one of the four known levels.
func (l AccessLevel) IsValid() bool {
	_, ok := accessLevelRanks[l]
	return ok
}

// AtLeast reports whether the level satisfies the given minimum level.
func (l AccessLevel) AtLeast(minimum AccessLevel) bool {
	return l.Rank() >= minimum.Rank()
}

// ParseAccessLevel converts a wire value into an AccessLevel.
// Returns false when the value is not a known level.
func ParseAccessLevel(value string) (AccessLevel, bool) {
	level := AccessLevel(value)
	return level, level.IsValid()
}

// FeatureCategory groups capabilities by the feature area they protect.
type FeatureCategory string

const (
	CategoryUserManagement    FeatureCategory = "user_management"
	CategoryRoleManagement    FeatureCategory = "role_management"
	CategoryVehicleManagement FeatureCategory = "vehicle_management"
	CategoryDriverManagement  FeatureCategory = "driver_management"
	CategoryTripManagement    FeatureCategory = "trip_management"
	CategoryTracking          FeatureCategory = "tracking"
	CategoryFinancial         FeatureCategory = "financial"
	CategoryMaintenance       FeatureCategory = "maintenance"
	CategoryCompliance        FeatureCategory = "compliance"
	CategoryCustomer          FeatureCategory = "customer"
	CategoryReporting         FeatureCategory = "reporting"
	CategorySystem            FeatureCategory = "system"
)

// FeatureCategories lists every known category in a stable order.
var FeatureCategories = []FeatureCategory{
	CategoryUserManagement,
	CategoryRoleManagement,
	CategoryVehicleManagement,
	CategoryDriverManagement,
	CategoryTripManagement,
	CategoryTracking,
	CategoryFinancial,
	CategoryMaintenance,
	CategoryCompliance,
	CategoryCustomer,
	CategoryReporting,
	CategorySystem,
}

// IsValid reports whether the category is one of the known categories.
func (c FeatureCategory) IsValid() bool {
	for _, known := range FeatureCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MergeStrategy selects how template capability sets are combined.
type MergeStrategy string

const (
	// MergeStrategyUnion keeps every capability from every template,
	// resolving shared keys to the highest-ranked access level.
	MergeStrategyUnion MergeStrategy = "union"

	// MergeStrategyIntersection keeps only capabilities present in every
	// template, resolving each to the lowest-ranked access level.
	MergeStrategyIntersection MergeStrategy = "intersection"
)

// ParseMergeStrategy converts a wire value into a MergeStrategy.
// Returns false when the value is not a known strategy.
func ParseMergeStrategy(value string) (MergeStrategy, bool) {
	switch strategy := MergeStrategy(value); strategy {
	case MergeStrategyUnion, MergeStrategyIntersection:
		return strategy, true
	default:
		return "", false
	}
}
