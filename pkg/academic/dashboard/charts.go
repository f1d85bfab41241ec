package dashboard

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/query"
	"github.com/athapong/academicworld-mcp/pkg/academic/storage"
)

// KeywordRanking builds the university and faculty publication-count bar charts
// for the selected keywords and year range
func (d *Dashboard) KeywordRanking(ctx context.Context, keywords []string, years academic.YearRange) (view *academic.RankingView, err error) {
	defer func() { d.record("keyword_ranking", err) }()

	keywords = normalizeNames(keywords)
	if len(keywords) == 0 {
		return nil, ErrNoUpdate
	}
	years = d.years(years)

	d.logger.WithFields(logrus.Fields{"keywords": keywords, "years": years}).Debug("Ranking keywords")

	uniRows, err := d.relational.Query(ctx, query.UniversityKeywordRanking(keywords, years.Min, years.Max))
	if err != nil {
		return nil, errors.Wrap(err, "failed to rank universities")
	}
	facRows, err := d.relational.Query(ctx, query.FacultyKeywordRanking(keywords, years.Min, years.Max))
	if err != nil {
		return nil, errors.Wrap(err, "failed to rank faculty")
	}

	return &academic.RankingView{
		Keywords:     keywords,
		Years:        years,
		Universities: barChart("University", uniRows, 0),
		Faculty:      barChart("Faculty", facRows, query.FacultyRankingLimit),
	}, nil
}

func barChart(xLabel string, rows []storage.Row, limit int) academic.BarChart {
	bars := make([]academic.Bar, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		bars = append(bars, academic.Bar{Label: asString(row[0]), Value: asInt64(row[1])})
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Value > bars[j].Value })
	if limit > 0 && len(bars) > limit {
		bars = bars[:limit]
	}
	return academic.BarChart{XLabel: xLabel, YLabel: "Publication Count", Bars: bars}
}

// MostCited lists the ten most cited publications of a faculty member
func (d *Dashboard) MostCited(ctx context.Context, faculty string) (table *academic.CitedTable, err error) {
	defer func() { d.record("most_cited", err) }()

	if faculty == "" {
		return nil, ErrNoUpdate
	}

	rows, err := d.relational.ExecutePrepared(ctx, faculty)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load publications of %s", faculty)
	}

	pubs := make([]academic.Publication, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		title := asString(row[0])
		if title == query.ExcludedTitle {
			continue
		}
		pubs = append(pubs, academic.Publication{Title: title, Citations: asInt64(row[1])})
	}
	sort.SliceStable(pubs, func(i, j int) bool { return pubs[i].Citations > pubs[j].Citations })
	if len(pubs) > query.MostCitedLimit {
		pubs = pubs[:query.MostCitedLimit]
	}

	return &academic.CitedTable{
		Faculty:      faculty,
		Columns:      []string{"Publication", "Times Cited"},
		Publications: pubs,
	}, nil
}

// ResearchVolume aggregates faculty, keyword and publication totals per
// university, optionally restricted to the selected universities
func (d *Dashboard) ResearchVolume(ctx context.Context, universities []string) (view *academic.ScatterView, err error) {
	defer func() { d.record("research_volume", err) }()

	universities = normalizeNames(universities)
	docs, err := d.document.Aggregate(ctx, query.FacultyCollection, query.ResearchVolume(universities))
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate research volume")
	}

	points := make([]academic.ResearchPoint, 0, len(docs))
	for _, doc := range docs {
		var point academic.ResearchPoint
		if err := decodeDocument(doc, &point); err != nil {
			return nil, err
		}
		points = append(points, point)
	}

	return &academic.ScatterView{Universities: universities, Points: points}, nil
}

// KeywordImpact ranks faculty by citations weighted with keyword relevance.
// Only strictly positive scores are kept.
func (d *Dashboard) KeywordImpact(ctx context.Context, keywords []string, years academic.YearRange) (view *academic.PieView, err error) {
	defer func() { d.record("keyword_impact", err) }()

	keywords = normalizeNames(keywords)
	if len(keywords) == 0 {
		return nil, ErrNoUpdate
	}
	years = d.years(years)

	res, err := d.graph.Execute(ctx, query.KeywordImpact(keywords, years.Min, years.Max))
	if err != nil {
		return nil, errors.Wrap(err, "failed to score faculty impact")
	}

	slices := make([]academic.Slice, 0, len(res.Records))
	for _, record := range res.Records {
		score := asFloat64(record["krc"])
		if score <= 0 {
			continue
		}
		slices = append(slices, academic.Slice{Label: asString(record["name"]), Value: score})
	}
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Value > slices[j].Value })
	if len(slices) > query.ImpactLimit {
		slices = slices[:query.ImpactLimit]
	}

	return &academic.PieView{Keywords: keywords, Years: years, Slices: slices}, nil
}
