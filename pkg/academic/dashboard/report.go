package dashboard

import (
	"context"

	"github.com/pkg/errors"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/visualizer"
)

// ReportRequest selects the widgets rendered on a static report page
type ReportRequest struct {
	Keywords     []string
	Years        academic.YearRange
	Universities []string
	Faculty      string
}

// Report gathers every view that the request has input for. Views without
// input are left out of the page rather than failing the report.
func (d *Dashboard) Report(ctx context.Context, req ReportRequest) (visualizer.Report, error) {
	report := visualizer.Report{Catalog: d.Catalog()}

	ranking, err := d.KeywordRanking(ctx, req.Keywords, req.Years)
	if err != nil && !errors.Is(err, ErrNoUpdate) {
		return report, err
	}
	report.Ranking = ranking

	impact, err := d.KeywordImpact(ctx, req.Keywords, req.Years)
	if err != nil && !errors.Is(err, ErrNoUpdate) {
		return report, err
	}
	report.Impact = impact

	scatter, err := d.ResearchVolume(ctx, req.Universities)
	if err != nil {
		return report, err
	}
	report.Scatter = scatter

	cited, err := d.MostCited(ctx, req.Faculty)
	if err != nil && !errors.Is(err, ErrNoUpdate) {
		return report, err
	}
	report.Cited = cited

	return report, nil
}
