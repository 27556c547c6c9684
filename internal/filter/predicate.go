package filter

import (
	"regexp"
	"strings"

	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/gorm/clause"
)

// Field is a job_offers column a predicate can test.
type Field string

const (
	FieldActive                Field = "active"
	FieldUserID                Field = "user_id"
	FieldCategoryID            Field = "category_id"
	FieldSubcategoryID         Field = "subcategory_id"
	FieldEmploymentTypeIndex   Field = "employment_type_index"
	FieldLocationTypeIndex     Field = "location_type_index"
	FieldJobDescription        Field = "job_description"
	FieldMinimumQualifications Field = "minimum_qualifications"
)

// TextFields are the free-text columns keyword facets search.
var TextFields = []Field{FieldJobDescription, FieldMinimumQualifications}

// value returns the column value of o in its native Go type, so it compares
// equal to the values the constructors store.
func (f Field) value(o *models.JobOffer) any {
	switch f {
	case FieldActive:
		return o.Active
	case FieldUserID:
		return o.UserID
	case FieldCategoryID:
		return o.CategoryID
	case FieldSubcategoryID:
		return o.SubcategoryID
	case FieldEmploymentTypeIndex:
		return o.EmploymentTypeIndex
	case FieldLocationTypeIndex:
		return o.LocationTypeIndex
	case FieldJobDescription:
		return o.JobDescription
	case FieldMinimumQualifications:
		return o.MinimumQualifications
	}
	return nil
}

// Predicate is an immutable boolean condition over a job offer. It can be
// evaluated in memory or rendered as a SQL expression for gorm.
type Predicate interface {
	Matches(o *models.JobOffer) bool
	build(b *sqlBuilder)
}

// Expression renders p as a gorm clause expression.
func Expression(p Predicate) clause.Expression {
	b := &sqlBuilder{}
	p.build(b)
	return clause.Expr{SQL: b.sql.String(), Vars: b.vars}
}

type sqlBuilder struct {
	sql  strings.Builder
	vars []any
}

func (b *sqlBuilder) write(s string, vars ...any) {
	b.sql.WriteString(s)
	b.vars = append(b.vars, vars...)
}

func column(f Field) clause.Column {
	return clause.Column{Table: "job_offers", Name: string(f)}
}

type eq struct {
	field Field
	value any
}

// Eq matches offers whose field equals value.
func Eq(f Field, value any) Predicate { return eq{field: f, value: value} }

func (p eq) Matches(o *models.JobOffer) bool { return p.field.value(o) == p.value }

func (p eq) build(b *sqlBuilder) { b.write("? = ?", column(p.field), p.value) }

type in struct {
	field  Field
	values []any
	set    map[any]struct{}
}

func newIn(f Field, values []any) Predicate {
	if len(values) == 0 {
		return Never()
	}
	set := make(map[any]struct{}, len(values))
	uniq := make([]any, 0, len(values))
	for _, v := range values {
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		uniq = append(uniq, v)
	}
	return in{field: f, values: uniq, set: set}
}

// InUints matches offers whose field is one of ids. An empty list matches
// nothing.
func InUints(f Field, ids []uint) Predicate {
	values := make([]any, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return newIn(f, values)
}

// InInts is InUints for int columns.
func InInts(f Field, ints []int) Predicate {
	values := make([]any, len(ints))
	for i, v := range ints {
		values[i] = v
	}
	return newIn(f, values)
}

// InStrings is InUints for string columns.
func InStrings(f Field, strs []string) Predicate {
	values := make([]any, len(strs))
	for i, v := range strs {
		values[i] = v
	}
	return newIn(f, values)
}

func (p in) Matches(o *models.JobOffer) bool {
	_, ok := p.set[p.field.value(o)]
	return ok
}

func (p in) build(b *sqlBuilder) { b.write("? IN ?", column(p.field), p.values) }

type match struct {
	fields  []Field
	pattern Pattern
	re      *regexp.Regexp
}

// Match matches offers where any of fields matches pattern. Patterns built
// with Contains/AnyWord or the fixed experience rules always compile.
func Match(pattern Pattern, fields ...Field) Predicate {
	if pattern.IsZero() || len(fields) == 0 {
		return Never()
	}
	re, err := pattern.Compile()
	if err != nil {
		return Never()
	}
	return match{fields: fields, pattern: pattern, re: re}
}

func (p match) Matches(o *models.JobOffer) bool {
	for _, f := range p.fields {
		if s, ok := f.value(o).(string); ok && p.re.MatchString(s) {
			return true
		}
	}
	return false
}

func (p match) build(b *sqlBuilder) {
	b.write("(")
	for i, f := range p.fields {
		if i > 0 {
			b.write(" OR ")
		}
		b.write("? ~* ?", column(f), p.pattern.Postgres())
	}
	b.write(")")
}

type not struct{ inner Predicate }

// Not negates p.
func Not(p Predicate) Predicate { return not{inner: p} }

func (p not) Matches(o *models.JobOffer) bool { return !p.inner.Matches(o) }

func (p not) build(b *sqlBuilder) {
	b.write("NOT (")
	p.inner.build(b)
	b.write(")")
}

type junction struct {
	op    string
	parts []Predicate
}

// And is the conjunction of parts. And() with no parts matches everything.
func And(parts ...Predicate) Predicate {
	return junction{op: " AND ", parts: flatten(" AND ", parts)}
}

// Or is the disjunction of parts. Or() with no parts matches nothing.
func Or(parts ...Predicate) Predicate {
	return junction{op: " OR ", parts: flatten(" OR ", parts)}
}

func flatten(op string, parts []Predicate) []Predicate {
	out := make([]Predicate, 0, len(parts))
	for _, p := range parts {
		if j, ok := p.(junction); ok && j.op == op {
			out = append(out, j.parts...)
			continue
		}
		out = append(out, p)
	}
	return out
}

func (p junction) Matches(o *models.JobOffer) bool {
	if p.op == " AND " {
		for _, part := range p.parts {
			if !part.Matches(o) {
				return false
			}
		}
		return true
	}
	for _, part := range p.parts {
		if part.Matches(o) {
			return true
		}
	}
	return false
}

func (p junction) build(b *sqlBuilder) {
	if len(p.parts) == 0 {
		if p.op == " AND " {
			b.write("1 = 1")
		} else {
			b.write("1 = 0")
		}
		return
	}
	b.write("(")
	for i, part := range p.parts {
		if i > 0 {
			b.write(p.op)
		}
		part.build(b)
	}
	b.write(")")
}

type never struct{}

// Never matches no offer.
func Never() Predicate { return never{} }

func (never) Matches(*models.JobOffer) bool { return false }

func (never) build(b *sqlBuilder) { b.write("1 = 0") }

// IsNever reports whether p can be proven to match nothing without looking
// at data.
func IsNever(p Predicate) bool {
	switch v := p.(type) {
	case never:
		return true
	case junction:
		if v.op == " AND " {
			for _, part := range v.parts {
				if IsNever(part) {
					return true
				}
			}
			return false
		}
		for _, part := range v.parts {
			if !IsNever(part) {
				return false
			}
		}
		return true
	}
	return false
}
