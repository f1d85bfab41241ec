package query

import (
	"fmt"
	"strings"
)

// ExcludedTitle is a publication whose citation data is known to be wrong and is
// left out of the most-cited table
const ExcludedTitle = "A shape-based approach to the segmentation of medical imagery using level sets"

// FacultyRankingLimit caps the faculty bar chart
const FacultyRankingLimit = 100

// MostCitedLimit caps the most-cited publications table
const MostCitedLimit = 10

// Statement is SQL text with positional placeholder arguments
type Statement struct {
	Text string        `json:"text"`
	Args []interface{} `json:"args"`
}

func (s Statement) String() string {
	return fmt.Sprintf("%s %v", s.Text, s.Args)
}

// Select builds a parameterized SELECT statement
type Select struct {
	columns []string
	from    string
	joins   []string
	where   []string
	args    []interface{}
	groupBy string
	orderBy string
	limit   int
}

func NewSelect(columns ...string) *Select {
	return &Select{
		columns: columns,
		joins:   make([]string, 0),
		where:   make([]string, 0),
		args:    make([]interface{}, 0),
	}
}

func (s *Select) From(table string) *Select {
	s.from = table
	return s
}

func (s *Select) Join(clause string) *Select {
	s.joins = append(s.joins, "JOIN "+clause)
	return s
}

// Where adds a condition; args bind its placeholders in order
func (s *Select) Where(condition string, args ...interface{}) *Select {
	s.where = append(s.where, condition)
	s.args = append(s.args, args...)
	return s
}

// WhereIn adds a membership condition with one placeholder per value.
// An empty value list matches nothing.
func (s *Select) WhereIn(column string, values []string) *Select {
	if len(values) == 0 {
		return s.Where("1 = 0")
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ")
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return s.Where(fmt.Sprintf("%s IN (%s)", column, placeholders), args...)
}

func (s *Select) GroupBy(column string) *Select {
	s.groupBy = column
	return s
}

func (s *Select) OrderBy(expr string) *Select {
	s.orderBy = expr
	return s
}

func (s *Select) SetLimit(limit int) *Select {
	s.limit = limit
	return s
}

func (s *Select) Build() Statement {
	parts := []string{"SELECT " + strings.Join(s.columns, ", ")}
	if s.from != "" {
		parts = append(parts, "FROM "+s.from)
	}
	parts = append(parts, s.joins...)
	if len(s.where) > 0 {
		parts = append(parts, "WHERE "+strings.Join(s.where, " AND "))
	}
	if s.groupBy != "" {
		parts = append(parts, "GROUP BY "+s.groupBy)
	}
	if s.orderBy != "" {
		parts = append(parts, "ORDER BY "+s.orderBy)
	}
	if s.limit > 0 {
		parts = append(parts, fmt.Sprintf("LIMIT %d", s.limit))
	}

	args := make([]interface{}, len(s.args))
	copy(args, s.args)
	return Statement{Text: strings.Join(parts, " "), Args: args}
}

// UniversityKeywordRanking counts distinct publications per university for the
// given keywords within [minYear, maxYear]
func UniversityKeywordRanking(keywords []string, minYear, maxYear int) Statement {
	return NewSelect("u.name", "COUNT(DISTINCT p.id) c").
		From("university u").
		Join("faculty f ON f.university_id = u.id").
		Join("faculty_publication fp ON f.id = fp.faculty_id").
		Join("publication p ON p.id = fp.publication_id").
		Join("publication_keyword pk ON pk.publication_id = p.id").
		Join("keyword k ON k.id = pk.keyword_id").
		WhereIn("k.name", keywords).
		Where("p.year >= ?", minYear).
		Where("p.year <= ?", maxYear).
		GroupBy("u.id").
		OrderBy("c DESC").
		Build()
}

// FacultyKeywordRanking counts distinct publications per faculty member for the
// given keywords within [minYear, maxYear]
func FacultyKeywordRanking(keywords []string, minYear, maxYear int) Statement {
	return NewSelect("f.name", "COUNT(DISTINCT p.id) c").
		From("faculty f").
		Join("faculty_publication fp ON f.id = fp.faculty_id").
		Join("publication p ON p.id = fp.publication_id").
		Join("publication_keyword pk ON pk.publication_id = p.id").
		Join("keyword k ON k.id = pk.keyword_id").
		WhereIn("k.name", keywords).
		Where("p.year >= ?", minYear).
		Where("p.year <= ?", maxYear).
		GroupBy("f.id").
		OrderBy("c DESC").
		SetLimit(FacultyRankingLimit).
		Build()
}

// MostCited is prepared once per connection and executed with the faculty name
func MostCited() Statement {
	return NewSelect("p.title", "p.num_citations").
		From("publication p").
		Join("faculty_publication fp ON p.id = fp.publication_id").
		Join("faculty f ON f.id = fp.faculty_id").
		Where("f.name = ?").
		Where(fmt.Sprintf("p.title != '%s'", ExcludedTitle)).
		OrderBy("p.num_citations DESC").
		SetLimit(MostCitedLimit).
		Build()
}

// Names lists the name column of a catalog table
func Names(table string) Statement {
	return NewSelect("name").From(table).Build()
}

// YearBounds returns the smallest and largest known publication year
func YearBounds() Statement {
	return NewSelect("MIN(year)", "MAX(year)").
		From("publication").
		Where("year > ?", 0).
		Build()
}
