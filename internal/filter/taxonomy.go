package filter

import "strings"

// Facet names understood by Lookup.
const (
	FacetEducation  = "education"
	FacetJobLevel   = "jobLevel"
	FacetExperience = "experience"
)

// Level keys. Lookup accepts them in any case and with or without spaces,
// hyphens and underscores.
const (
	LevelHighSchool = "highSchool"
	LevelBachelors  = "bachelors"
	LevelMasters    = "masters"
	LevelPhD        = "phd"

	LevelInternship          = "internship"
	LevelEntry               = "entryLevel"
	LevelAssociateSupervisor = "associateSupervisor"
	LevelMidSeniorManager    = "midSeniorManager"
	LevelDirectorExecutive   = "directorExecutive"

	LevelNoExperience     = "noExperience"
	LevelOneToFiveYears   = "oneToFiveYears"
	LevelSixToTenYears    = "sixToTenYears"
	LevelMoreThanTenYears = "moreThanTenYears"
)

var keywords = map[string]map[string][]string{
	FacetEducation: {
		LevelHighSchool: {"high school diploma", "secondary school", "GED", "grade 12", "high school graduate"},
		LevelBachelors:  {"bachelor", "undergraduate degree", "BA", "BS", "BSc", "college degree"},
		LevelMasters:    {"master", "graduate degree", "MA", "MSc", "MBA", "advanced degree"},
		LevelPhD:        {"PhD", "doctorate", "doctoral program", "research degree", "advanced research"},
	},
	FacetJobLevel: {
		LevelInternship:          {"intern", "trainee", "apprenticeship", "graduate program", "fellowship"},
		LevelEntry:               {"beginner", "junior", "associate", "fresh graduate", "early career"},
		LevelAssociateSupervisor: {"mid-level", "team leader", "coordinator", "assistant manager", "supervisor"},
		LevelMidSeniorManager:    {"senior", "manager", "department head", "team manager", "program manager"},
		LevelDirectorExecutive:   {"director", "executive", "CEO", "VP", "managing director", "founder", "partner"},
	},
}

// aliases maps normalized UI labels onto level keys.
var aliases = map[string]string{
	"highschooldiploma": LevelHighSchool,
	"bachelor":          LevelBachelors,
	"bachelorsdegree":   LevelBachelors,
	"master":            LevelMasters,
	"mastersdegree":     LevelMasters,
	"doctorate":         LevelPhD,
	"entry":             LevelEntry,
	"associate":         LevelAssociateSupervisor,
	"supervisor":        LevelAssociateSupervisor,
	"midsenior":         LevelMidSeniorManager,
	"midseniorlevel":    LevelMidSeniorManager,
	"director":          LevelDirectorExecutive,
	"executive":         LevelDirectorExecutive,
	"none":              LevelNoExperience,
	"15years":           LevelOneToFiveYears,
	"610years":          LevelSixToTenYears,
	"morethan10years":   LevelMoreThanTenYears,
	"10+years":          LevelMoreThanTenYears,
}

// normalized index: facet -> normalized level -> canonical level key
var levelIndex = buildLevelIndex()

func buildLevelIndex() map[string]map[string]string {
	idx := make(map[string]map[string]string)
	for facet, levels := range facetLevels() {
		m := make(map[string]string, len(levels))
		for level := range levels {
			m[normalizeLevel(level)] = level
		}
		for alias, level := range aliases {
			if levels[level] {
				m[alias] = level
			}
		}
		idx[facet] = m
	}
	return idx
}

// facetLevels returns the level keys of every facet. Experience levels are
// the keys of experienceRules; the others come from the phrase table.
func facetLevels() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(keywords)+1)
	for facet, levels := range keywords {
		set := make(map[string]bool, len(levels))
		for level := range levels {
			set[level] = true
		}
		out[facet] = set
	}
	experience := make(map[string]bool, len(experienceRules))
	for level := range experienceRules {
		experience[level] = true
	}
	out[FacetExperience] = experience
	return out
}

// normalizeLevel lower-cases s and drops whitespace and the separators UIs
// tend to put in labels ("Mid-Senior Manager", "director / executive").
func normalizeLevel(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case ' ', '\t', '\n', '-', '_', '/', '&', '.':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ResolveLevel returns the canonical level key for a facet label.
func ResolveLevel(facet, level string) (string, bool) {
	levels, ok := levelIndex[facet]
	if !ok {
		return "", false
	}
	key, ok := levels[normalizeLevel(level)]
	return key, ok
}

// Lookup returns the phrase list for an education or job level. Unknown
// levels, and facets matched by rules instead of phrases, report false.
func Lookup(facet, level string) ([]string, bool) {
	key, ok := ResolveLevel(facet, level)
	if !ok {
		return nil, false
	}
	phrases, ok := keywords[facet][key]
	return phrases, ok
}
