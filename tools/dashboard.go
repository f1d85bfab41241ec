package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/dashboard"
	"github.com/athapong/academicworld-mcp/pkg/academic/session"
	"github.com/athapong/academicworld-mcp/pkg/academic/visualizer"
	"github.com/athapong/academicworld-mcp/util"
)

// NoUpdate is returned when the interaction leaves the previous view in place
const NoUpdate = "no update"

// Views is the dashboard surface exposed as tools
type Views interface {
	Catalog() academic.Catalog
	KeywordRanking(ctx context.Context, keywords []string, years academic.YearRange) (*academic.RankingView, error)
	MostCited(ctx context.Context, faculty string) (*academic.CitedTable, error)
	ResearchVolume(ctx context.Context, universities []string) (*academic.ScatterView, error)
	KeywordImpact(ctx context.Context, keywords []string, years academic.YearRange) (*academic.PieView, error)
	UniversityDetail(ctx context.Context, ev dashboard.Event) (*academic.UniversityDetail, error)
	FacultyDetail(ctx context.Context, sessionID string, ev dashboard.Event) (*academic.FacultyDetail, error)
	MutateUniversity(ctx context.Context, cmd dashboard.UniversityCommand) (*academic.UniversityResult, error)
	OpenReviews(ctx context.Context, sessionID string) (*academic.ReviewsView, error)
	SubmitReview(ctx context.Context, sessionID string, sub dashboard.ReviewSubmission) (*academic.ReviewResult, error)
}

type dashboardTools struct {
	views Views
}

var (
	keywordsArg = mcp.WithArray("keywords",
		mcp.Description("Keyword names to filter by"),
		mcp.Items(map[string]interface{}{"type": "string"}),
	)
	minYearArg = mcp.WithNumber("min_year", mcp.Description("First publication year, inclusive. Defaults to the earliest known year"))
	maxYearArg = mcp.WithNumber("max_year", mcp.Description("Last publication year, inclusive. Defaults to the latest known year"))
	sessionArg = mcp.WithString("session_id", mcp.Description("Dashboard session; defaults to the MCP client session"))
)

// RegisterDashboardTools registers the AcademicWorld widgets as MCP tools
func RegisterDashboardTools(s *server.MCPServer, views Views) {
	t := &dashboardTools{views: views}

	optionsTool := mcp.NewTool("dashboard_options",
		mcp.WithDescription("List keyword, faculty and university options and the publication year bounds"),
	)
	s.AddTool(optionsTool, util.ErrorGuard(util.AdaptLegacyHandler(t.optionsHandler)))

	rankingTool := mcp.NewTool("keyword_ranking",
		mcp.WithDescription("Rank universities and faculty by number of publications on the given keywords"),
		keywordsArg, minYearArg, maxYearArg,
	)
	s.AddTool(rankingTool, util.ErrorGuard(t.rankingHandler))

	citedTool := mcp.NewTool("most_cited_publications",
		mcp.WithDescription("Show the ten most cited publications of a faculty member"),
		mcp.WithString("faculty", mcp.Required(), mcp.Description("Faculty member name")),
	)
	s.AddTool(citedTool, util.ErrorGuard(t.citedHandler))

	volumeTool := mcp.NewTool("research_volume",
		mcp.WithDescription("Compare faculty, keyword and publication totals per university"),
		mcp.WithArray("universities",
			mcp.Description("Universities to include; all when empty"),
			mcp.Items(map[string]interface{}{"type": "string"}),
		),
	)
	s.AddTool(volumeTool, util.ErrorGuard(t.volumeHandler))

	impactTool := mcp.NewTool("keyword_impact",
		mcp.WithDescription("Top faculty by citations weighted with keyword relevance"),
		keywordsArg, minYearArg, maxYearArg,
	)
	s.AddTool(impactTool, util.ErrorGuard(t.impactHandler))

	universityTool := mcp.NewTool("university_detail",
		mcp.WithDescription("Show a university's photo and faculty count"),
		mcp.WithString("trigger", mcp.Description("Widget that fired: uni-keyword-graph or university-dropdown")),
		mcp.WithString("click_data", mcp.Description("Chart click payload, e.g. {\"points\":[{\"x\":\"MIT\"}]}")),
		mcp.WithString("value", mcp.Description("Dropdown value")),
	)
	s.AddTool(universityTool, util.ErrorGuard(t.universityHandler))

	facultyTool := mcp.NewTool("faculty_detail",
		mcp.WithDescription("Show a faculty member's profile and select them for reviews"),
		mcp.WithString("trigger", mcp.Description("Widget that fired: faculty-keyword-graph or faculty-dropdown")),
		mcp.WithString("click_data", mcp.Description("Chart click payload")),
		mcp.WithString("value", mcp.Description("Dropdown value")),
		sessionArg,
	)
	s.AddTool(facultyTool, util.ErrorGuard(t.facultyHandler))

	mutateTool := mcp.NewTool("mutate_university",
		mcp.WithDescription("Create a university or update its photo in the graph database"),
		mcp.WithString("action", mcp.Required(), mcp.Description("update or create")),
		mcp.WithString("name", mcp.Required(), mcp.Description("University name")),
		mcp.WithString("photo_url", mcp.Description("Photo URL")),
	)
	s.AddTool(mutateTool, util.ErrorGuard(t.mutateHandler))

	openReviewsTool := mcp.NewTool("open_reviews",
		mcp.WithDescription("Show the reviews of the selected faculty member"),
		sessionArg,
	)
	s.AddTool(openReviewsTool, util.ErrorGuard(t.openReviewsHandler))

	submitReviewTool := mcp.NewTool("submit_review",
		mcp.WithDescription("Append a review to the selected faculty member"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Review text, at most 2000 characters")),
		mcp.WithNumber("rating", mcp.Required(), mcp.Description("Rating from 1 to 5")),
		mcp.WithString("token", mcp.Description("Idempotency token; resubmitting the same token appends nothing")),
		sessionArg,
	)
	s.AddTool(submitReviewTool, util.ErrorGuard(t.submitReviewHandler))
}

func (t *dashboardTools) optionsHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	return viewResult(t.views.Catalog(), nil)
}

func (t *dashboardTools) rankingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	view, err := t.views.KeywordRanking(ctx, util.StringSliceArg(args, "keywords"), yearsArg(args))
	if err != nil {
		return errorResult(err)
	}
	return viewResult(view, map[string]visualizer.Figure{
		"universities": visualizer.BarFigure(view.Universities),
		"faculty":      visualizer.BarFigure(view.Faculty),
	})
}

func (t *dashboardTools) citedHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := t.views.MostCited(ctx, util.StringArg(request.GetArguments(), "faculty"))
	if err != nil {
		return errorResult(err)
	}
	html, err := visualizer.CitedTableHTML(*table)
	if err != nil {
		return nil, err
	}
	return marshalResult(map[string]interface{}{"view": table, "table": html})
}

func (t *dashboardTools) volumeHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := t.views.ResearchVolume(ctx, util.StringSliceArg(request.GetArguments(), "universities"))
	if err != nil {
		return errorResult(err)
	}
	return viewResult(view, visualizer.ScatterFigure(*view))
}

func (t *dashboardTools) impactHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	view, err := t.views.KeywordImpact(ctx, util.StringSliceArg(args, "keywords"), yearsArg(args))
	if err != nil {
		return errorResult(err)
	}
	return viewResult(view, visualizer.PieFigure(*view))
}

func (t *dashboardTools) universityHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	detail, err := t.views.UniversityDetail(ctx, eventArg(request.GetArguments(), dashboard.TriggerUniversityChart, dashboard.TriggerUniversityDropdown))
	if err != nil {
		return errorResult(err)
	}
	return viewResult(detail, nil)
}

func (t *dashboardTools) facultyHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	detail, err := t.views.FacultyDetail(ctx, sessionID(ctx, args), eventArg(args, dashboard.TriggerFacultyChart, dashboard.TriggerFacultyDropdown))
	if err != nil {
		return errorResult(err)
	}
	return viewResult(detail, nil)
}

func (t *dashboardTools) mutateHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	result, err := t.views.MutateUniversity(ctx, dashboard.UniversityCommand{
		Action:   util.StringArg(args, "action"),
		Name:     util.StringArg(args, "name"),
		PhotoURL: util.StringArg(args, "photo_url"),
	})
	if err != nil {
		return errorResult(err)
	}
	return viewResult(result, nil)
}

func (t *dashboardTools) openReviewsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view, err := t.views.OpenReviews(ctx, sessionID(ctx, request.GetArguments()))
	if err != nil {
		return errorResult(err)
	}
	return viewResult(view, nil)
}

func (t *dashboardTools) submitReviewHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	rating, ok := util.IntArg(args, "rating")
	if !ok {
		return mcp.NewToolResultError("rating must be a number between 1 and 5"), nil
	}
	result, err := t.views.SubmitReview(ctx, sessionID(ctx, args), dashboard.ReviewSubmission{
		Text:   util.StringArg(args, "text"),
		Rating: rating,
		Token:  util.StringArg(args, "token"),
	})
	if err != nil {
		return errorResult(err)
	}
	return viewResult(result, nil)
}

// sessionID prefers an explicit session_id argument over the transport session
func sessionID(ctx context.Context, args map[string]interface{}) string {
	if id := util.StringArg(args, "session_id"); id != "" {
		return id
	}
	if cs := server.ClientSessionFromContext(ctx); cs != nil && cs.SessionID() != "" {
		return cs.SessionID()
	}
	return session.DefaultID
}

// yearsArg leaves an absent bound zero; the dashboard fills it from the catalog
func yearsArg(args map[string]interface{}) academic.YearRange {
	minYear, _ := util.IntArg(args, "min_year")
	maxYear, _ := util.IntArg(args, "max_year")
	return academic.YearRange{Min: minYear, Max: maxYear}
}

// eventArg accepts click_data either as a JSON string or as an object. Without
// an explicit trigger, click data implies the chart and a bare value the dropdown.
func eventArg(args map[string]interface{}, chartID, dropdownID string) dashboard.Event {
	ev := dashboard.Event{
		Trigger: util.StringArg(args, "trigger"),
		Value:   util.StringArg(args, "value"),
	}
	switch v := args["click_data"].(type) {
	case string:
		ev.ClickData = v
	case map[string]interface{}:
		if raw, err := json.Marshal(v); err == nil {
			ev.ClickData = string(raw)
		}
	}
	if ev.Trigger == "" {
		ev.Trigger = dropdownID
		if ev.ClickData != "" {
			ev.Trigger = chartID
		}
	}
	return ev
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	switch {
	case errors.Is(err, dashboard.ErrNoUpdate):
		return mcp.NewToolResultText(NoUpdate), nil
	case errors.Is(err, dashboard.ErrInvalidInput):
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

func viewResult(view interface{}, figure interface{}) (*mcp.CallToolResult, error) {
	out := map[string]interface{}{"view": view}
	if figure != nil {
		out["figure"] = figure
	}
	return marshalResult(out)
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode view")
	}
	return mcp.NewToolResultText(string(raw)), nil
}
