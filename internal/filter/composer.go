package filter

import (
	"slices"
	"strings"
)

// Criteria is one job search request. Zero values mean "not specified".
type Criteria struct {
	Search                string
	Location              string
	Education             []string
	JobLevel              []string
	Experience            []string
	CategoryIDs           []uint
	WorkTypeIndexes       []int
	EmploymentTypeIndexes []int
}

// IsZero reports whether no facet is specified.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.Search) == "" &&
		strings.TrimSpace(c.Location) == "" &&
		len(c.Education) == 0 &&
		len(c.JobLevel) == 0 &&
		len(c.Experience) == 0 &&
		len(c.CategoryIDs) == 0 &&
		len(c.WorkTypeIndexes) == 0 &&
		len(c.EmploymentTypeIndexes) == 0
}

// HasLocation reports whether the location facet needs resolving.
func (c Criteria) HasLocation() bool { return strings.TrimSpace(c.Location) != "" }

// HasSearch reports whether the search facet needs resolving.
func (c Criteria) HasSearch() bool { return strings.TrimSpace(c.Search) != "" }

// Resolved carries the facet values that needed a storage lookup.
type Resolved struct {
	// Owners are the recruiters whose company country matches Location.
	Owners []uint
	// SubcategoryIDs are the subcategories whose name matches Search.
	SubcategoryIDs []string
}

// Query is an immutable conjunction of predicates. Every With returns a new
// value and leaves the receiver untouched.
type Query struct {
	clauses []Predicate
	empty   string
}

// NewQuery returns the base query: active offers only.
func NewQuery() Query {
	return Query{clauses: []Predicate{Eq(FieldActive, true)}}
}

// With returns q AND p.
func (q Query) With(p Predicate) Query {
	return Query{clauses: append(slices.Clone(q.clauses), p), empty: q.empty}
}

// WithoutMatches returns a query that matches nothing because the named
// facet resolved to no qualifying values.
func (q Query) WithoutMatches(facet string) Query {
	return Query{clauses: slices.Clone(q.clauses), empty: facet}
}

// Empty reports whether the query is known to match nothing.
func (q Query) Empty() bool {
	return q.empty != "" || IsNever(And(q.clauses...))
}

// EmptyBecause names the facet that emptied the query, if any.
func (q Query) EmptyBecause() string { return q.empty }

// Len is the number of conjoined clauses, including the active flag.
func (q Query) Len() int { return len(q.clauses) }

// Predicate returns the composed predicate.
func (q Query) Predicate() Predicate {
	if q.Empty() {
		return Never()
	}
	return And(q.clauses...)
}

// Compose builds the search query for c. r holds the lookups for the
// location and search facets; it is ignored for facets c does not set.
func Compose(c Criteria, r Resolved) Query {
	q := NewQuery()

	if c.HasSearch() {
		if p, ok := SearchPredicate(c.Search, r.SubcategoryIDs); ok {
			q = q.With(p)
		}
	}
	if c.HasLocation() {
		if len(r.Owners) == 0 {
			q = q.WithoutMatches("location")
		} else {
			q = q.With(InUints(FieldUserID, r.Owners))
		}
	}
	if p, ok := KeywordPredicate(FacetEducation, c.Education); ok {
		q = q.With(p)
	}
	if p, ok := KeywordPredicate(FacetJobLevel, c.JobLevel); ok {
		q = q.With(p)
	}
	if p, ok := ExperiencePredicate(c.Experience); ok {
		q = q.With(p)
	}
	if p, ok := CategoryPredicate(c.CategoryIDs); ok {
		q = q.With(p)
	}
	if p, ok := IndexPredicate(FieldLocationTypeIndex, c.WorkTypeIndexes); ok {
		q = q.With(p)
	}
	if p, ok := IndexPredicate(FieldEmploymentTypeIndex, c.EmploymentTypeIndexes); ok {
		q = q.With(p)
	}
	return q
}
