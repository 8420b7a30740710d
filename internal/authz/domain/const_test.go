package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessLevel_Rank(t *testing.T) {
	assert.Equal(t, 0, AccessLevelNone.Rank())
	assert.Equal(t, 1, AccessLevelView.Rank())
	assert.Equal(t, 2, AccessLevelLimited.Rank())
	assert.Equal(t, 3, AccessLevelFull.Rank())
}

func TestAccessLevel_Rank_Unknown(t *testing.T) {
	assert.Equal(t, -1, AccessLevel("admin").Rank())
	assert.Equal(t, -1, AccessLevel("").Rank())
}

func TestAccessLevel_IsValid(t *testing.T) {
	assert.True(t, AccessLevelNone.IsValid())
	assert.True(t, AccessLevelView.IsValid())
	assert.True(t, AccessLevelLimited.IsValid())
	assert.True(t, AccessLevelFull.IsValid())
	assert.False(t, AccessLevel("owner").IsValid())
	assert.False(t, AccessLevel("").IsValid())
}

func TestAccessLevel_AtLeast(t *testing.T) {
	t.Run("Success_EqualLevel", func(t *testing.T) {
		assert.True(t, AccessLevelView.AtLeast(AccessLevelView))
		assert.True(t, AccessLevelFull.AtLeast(AccessLevelFull))
	})

	t.Run("Success_HigherLevel", func(t *testing.T) {
		assert.True(t, AccessLevelFull.AtLeast(AccessLevelNone))
		assert.True(t, AccessLevelFull.AtLeast(AccessLevelView))
		assert.True(t, AccessLevelFull.AtLeast(AccessLevelLimited))
		assert.True(t, AccessLevelLimited.AtLeast(AccessLevelView))
		assert.True(t, AccessLevelView.AtLeast(AccessLevelNone))
	})

	t.Run("Failure_LowerLevel", func(t *testing.T) {
		assert.False(t, AccessLevelNone.AtLeast(AccessLevelView))
		assert.False(t, AccessLevelView.AtLeast(AccessLevelLimited))
		assert.False(t, AccessLevelLimited.AtLeast(AccessLevelFull))
	})

	t.Run("Failure_UnknownLevelRanksBelowNone", func(t *testing.T) {
		assert.False(t, AccessLevel("owner").AtLeast(AccessLevelNone))
	})
}

func TestParseAccessLevel(t *testing.T) {
	t.Run("Success_KnownLevels", func(t *testing.T) {
		for _, value := range []string{"none", "view", "limited", "full"} {
			level, ok := ParseAccessLevel(value)
			assert.True(t, ok, value)
			assert.Equal(t, AccessLevel(value), level)
		}
	})

	t.Run("Error_UnknownLevel", func(t *testing.T) {
		_, ok := ParseAccessLevel("write")
		assert.False(t, ok)

		_, ok = ParseAccessLevel("")
		assert.False(t, ok)

		// Parsing is case sensitive.
		_, ok = ParseAccessLevel("Full")
		assert.False(t, ok)
	})
}

func TestFeatureCategory_IsValid(t *testing.T) {
	for _, category := range FeatureCategories {
		assert.True(t, category.IsValid(), string(category))
	}
	assert.False(t, FeatureCategory("billing").IsValid())
	assert.False(t, FeatureCategory("").IsValid())
}

func TestFeatureCategories_Unique(t *testing.T) {
	seen := make(map[FeatureCategory]bool)
	for _, category := range FeatureCategories {
		assert.False(t, seen[category], "duplicate category: %s", category)
		seen[category] = true
	}
	assert.Len(t, seen, 12)
}

func TestParseMergeStrategy(t *testing.T) {
	t.Run("Success_KnownStrategies", func(t *testing.T) {
		strategy, ok := ParseMergeStrategy("union")
		assert.True(t, ok)
		assert.Equal(t, MergeStrategyUnion, strategy)

		strategy, ok = ParseMergeStrategy("intersection")
		assert.True(t, ok)
		assert.Equal(t, MergeStrategyIntersection, strategy)
	})

	t.Run("Error_UnknownStrategy", func(t *testing.T) {
		_, ok := ParseMergeStrategy("difference")
		assert.False(t, ok)

		_, ok = ParseMergeStrategy("")
		assert.False(t, ok)
	})
}
