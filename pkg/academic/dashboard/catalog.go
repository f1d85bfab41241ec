package dashboard

import (
	"context"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/query"
)

// LoadCatalog reads the dropdown options and publication year bounds from the
// relational store. Publications without a year are ignored for the bounds.
func (d *Dashboard) LoadCatalog(ctx context.Context) (academic.Catalog, error) {
	keywords, err := d.names(ctx, "keyword")
	if err != nil {
		return academic.Catalog{}, err
	}
	faculty, err := d.names(ctx, "faculty")
	if err != nil {
		return academic.Catalog{}, err
	}
	universities, err := d.names(ctx, "university")
	if err != nil {
		return academic.Catalog{}, err
	}

	rows, err := d.relational.Query(ctx, query.YearBounds())
	if err != nil {
		return academic.Catalog{}, errors.Wrap(err, "failed to load year bounds")
	}
	var years academic.YearRange
	if len(rows) > 0 && len(rows[0]) == 2 {
		years = academic.YearRange{Min: int(asInt64(rows[0][0])), Max: int(asInt64(rows[0][1]))}
	}

	d.mu.Lock()
	d.catalog = academic.Catalog{
		Keywords:     keywords,
		Faculty:      faculty,
		Universities: universities,
		Years:        years,
	}
	d.universities = mapset.NewThreadUnsafeSet[string](universities...)
	d.mu.Unlock()

	d.logger.WithFields(logrus.Fields{
		"keywords":     len(keywords),
		"faculty":      len(faculty),
		"universities": len(universities),
		"min_year":     years.Min,
		"max_year":     years.Max,
	}).Info("Dashboard catalog loaded")

	return d.Catalog(), nil
}

// Catalog returns a copy of the current options
func (d *Dashboard) Catalog() academic.Catalog {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return academic.Catalog{
		Keywords:     append([]string(nil), d.catalog.Keywords...),
		Faculty:      append([]string(nil), d.catalog.Faculty...),
		Universities: append([]string(nil), d.catalog.Universities...),
		Years:        d.catalog.Years,
	}
}

// universityOptions returns a copy of the university dropdown options
func (d *Dashboard) universityOptions() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.catalog.Universities...)
}

// addUniversityOption inserts name into the sorted option list once
func (d *Dashboard) addUniversityOption(name string) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.universities.Add(name) {
		options := d.catalog.Universities
		i := sort.SearchStrings(options, name)
		options = append(options, "")
		copy(options[i+1:], options[i:])
		options[i] = name
		d.catalog.Universities = options
	}
	return append([]string(nil), d.catalog.Universities...)
}

func (d *Dashboard) names(ctx context.Context, table string) ([]string, error) {
	rows, err := d.relational.Query(ctx, query.Names(table))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s names", table)
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 {
			names = append(names, asString(row[0]))
		}
	}
	sort.Strings(names)
	return names, nil
}
