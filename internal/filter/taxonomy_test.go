package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupNormalizesLevelKeys(t *testing.T) {
	tests := []struct {
		facet string
		level string
		want  string
	}{
		{FacetEducation, "phd", LevelPhD},
		{FacetEducation, "PhD", LevelPhD},
		{FacetEducation, "High School", LevelHighSchool},
		{FacetEducation, "high_school", LevelHighSchool},
		{FacetEducation, "Doctorate", LevelPhD},
		{FacetJobLevel, "Entry Level", LevelEntry},
		{FacetJobLevel, "entry-level", LevelEntry},
		{FacetJobLevel, "Mid-Senior Manager", LevelMidSeniorManager},
		{FacetJobLevel, "Director / Executive", LevelDirectorExecutive},
		{FacetJobLevel, "associate supervisor", LevelAssociateSupervisor},
	}
	for _, tt := range tests {
		t.Run(tt.facet+"/"+tt.level, func(t *testing.T) {
			key, ok := ResolveLevel(tt.facet, tt.level)
			require.True(t, ok)
			assert.Equal(t, tt.want, key)

			phrases, ok := Lookup(tt.facet, tt.level)
			require.True(t, ok)
			assert.Equal(t, keywords[tt.facet][tt.want], phrases)
		})
	}
}

func TestResolveExperienceLevels(t *testing.T) {
	tests := map[string]string{
		"No Experience":      LevelNoExperience,
		"none":               LevelNoExperience,
		"1-5 Years":          LevelOneToFiveYears,
		"6-10 Years":         LevelSixToTenYears,
		"More Than 10 Years": LevelMoreThanTenYears,
		"10+ years":          LevelMoreThanTenYears,
	}
	for label, want := range tests {
		key, ok := ResolveLevel(FacetExperience, label)
		require.True(t, ok, label)
		assert.Equal(t, want, key, label)
	}

	// experience is matched by rules, it has no phrase list
	_, ok := Lookup(FacetExperience, "1-5 Years")
	assert.False(t, ok)
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Lookup(FacetEducation, "kindergarten")
	assert.False(t, ok)

	_, ok = Lookup("salary", LevelPhD)
	assert.False(t, ok)

	// aliases are scoped to their own facet
	_, ok = Lookup(FacetEducation, "director")
	assert.False(t, ok)
}

func TestEveryLevelHasPhrases(t *testing.T) {
	for facet, levels := range keywords {
		for level, phrases := range levels {
			assert.NotEmpty(t, phrases, "%s/%s", facet, level)
		}
	}
	assert.Len(t, keywords[FacetEducation], 4)
	assert.Len(t, keywords[FacetJobLevel], 5)
	assert.NotContains(t, keywords, FacetExperience)
	assert.Len(t, experienceRules, 4)
}
