package filter

import (
	"log"
	"strings"
)

// Experience bracket labels as sent by the job search UI.
const (
	BracketNoExperience     = "No Experience"
	BracketOneToFiveYears   = "1-5 Years"
	BracketSixToTenYears    = "6-10 Years"
	BracketMoreThanTenYears = "More Than 10 Years"
)

const yearsSuffix = `(?:years?|yrs?)`

var (
	noExperiencePhrase = Pattern{segments: []segment{
		wb, expr(`(?:no experience|entry-level|zero experience|no prior experience)`), wb,
	}}
	// any "<number> year(s)" mention
	anyYearCount = Pattern{segments: []segment{
		wb, expr(`\d+\s?\+?\s?` + yearsSuffix), wb,
	}}
	oneToFive = Pattern{segments: []segment{
		wb,
		expr(`(?:[1-5]\s?\+?\s?` + yearsSuffix +
			`|1\s?-\s?5\s?` + yearsSuffix +
			`|at least (?:1|one) years?` +
			`|up to (?:5|five) years?)`),
		wb,
	}}
	sixToNine = Pattern{segments: []segment{
		wb,
		expr(`(?:[6-9]\s?\+?\s?` + yearsSuffix +
			`|6\s?-\s?10\s?` + yearsSuffix +
			`|at least (?:6|six) years?` +
			`|up to (?:10|ten) years?)`),
		wb,
	}}
	// exactly ten, not "10+"
	exactlyTen = Pattern{segments: []segment{
		wb, expr(`10\s?` + yearsSuffix), wb,
	}}
	moreThanTen = Pattern{segments: []segment{
		wb,
		expr(`(?:(?:1[1-9]|[2-9]\d|\d{3,})\s?\+?\s?` + yearsSuffix +
			`|10\s?\+\s?` + yearsSuffix +
			`|(?:more than|over) (?:10|ten) years?)`),
		wb,
	}}
	moreThanTenPhrase = Pattern{segments: []segment{
		wb, expr(`(?:more than|over) (?:10|ten) years?`), wb,
	}}
)

// experienceRule builds the predicate for one bracket. Each rule is
// evaluated across both text fields.
var experienceRules = map[string]func() Predicate{
	LevelNoExperience: func() Predicate {
		return And(
			Match(noExperiencePhrase, TextFields...),
			Not(Match(anyYearCount, TextFields...)),
		)
	},
	LevelOneToFiveYears: func() Predicate {
		return Match(oneToFive, TextFields...)
	},
	LevelSixToTenYears: func() Predicate {
		// "more than 10 years" contains "10 years"; only count a bare ten
		// when the text does not say "more than".
		return Or(
			Match(sixToNine, TextFields...),
			And(
				Match(exactlyTen, TextFields...),
				Not(Match(moreThanTenPhrase, TextFields...)),
			),
		)
	},
	LevelMoreThanTenYears: func() Predicate {
		return Match(moreThanTen, TextFields...)
	},
}

// KeywordPredicate builds the text predicate for a table-driven facet
// (education or jobLevel). It reports false when no requested level is
// recognised, in which case the facet adds no clause.
func KeywordPredicate(facet string, levels []string) (Predicate, bool) {
	var phrases []string
	for _, level := range levels {
		words, ok := Lookup(facet, level)
		if !ok {
			log.Printf("filter: skipping unknown %s level %q", facet, level)
			continue
		}
		phrases = append(phrases, words...)
	}
	pattern := AnyWord(phrases...)
	if pattern.IsZero() {
		return nil, false
	}
	return Match(pattern, TextFields...), true
}

// ExperiencePredicate ORs the rules of every recognised bracket.
func ExperiencePredicate(brackets []string) (Predicate, bool) {
	var parts []Predicate
	seen := make(map[string]bool, len(brackets))
	for _, bracket := range brackets {
		key, ok := ResolveLevel(FacetExperience, bracket)
		if !ok {
			log.Printf("filter: skipping unknown experience bracket %q", bracket)
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		parts = append(parts, experienceRules[key]())
	}
	if len(parts) == 0 {
		return nil, false
	}
	return Or(parts...), true
}

// CategoryPredicate restricts offers to the given category IDs.
func CategoryPredicate(ids []uint) (Predicate, bool) {
	if len(ids) == 0 {
		return nil, false
	}
	return InUints(FieldCategoryID, ids), true
}

// IndexPredicate matches a one-based index column against zero-based
// indexes from the client. Negative indexes are ignored.
func IndexPredicate(f Field, zeroBased []int) (Predicate, bool) {
	stored := make([]int, 0, len(zeroBased))
	for _, i := range zeroBased {
		if i < 0 {
			continue
		}
		stored = append(stored, i+1)
	}
	if len(stored) == 0 {
		return nil, false
	}
	return InInts(f, stored), true
}

// SearchPredicate matches offers whose subcategory is one of subcategoryIDs
// or whose text mentions search. An empty subcategory list only disables
// that branch.
func SearchPredicate(search string, subcategoryIDs []string) (Predicate, bool) {
	search = strings.TrimSpace(search)
	if search == "" {
		return nil, false
	}
	return Or(
		InStrings(FieldSubcategoryID, subcategoryIDs),
		Match(Contains(search), TextFields...),
	), true
}
