package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/dashboard"
	"github.com/athapong/academicworld-mcp/pkg/academic/session"
	"github.com/athapong/academicworld-mcp/util"
)

type fakeViews struct {
	keywords  []string
	years     academic.YearRange
	sessionID string
	event     dashboard.Event
	review    dashboard.ReviewSubmission
	err       error
}

func (f *fakeViews) Catalog() academic.Catalog {
	return academic.Catalog{Keywords: []string{"data mining"}, Years: academic.YearRange{Min: 1990, Max: 2021}}
}

func (f *fakeViews) KeywordRanking(_ context.Context, keywords []string, years academic.YearRange) (*academic.RankingView, error) {
	f.keywords, f.years = keywords, years
	if f.err != nil {
		return nil, f.err
	}
	return &academic.RankingView{
		Keywords:     keywords,
		Years:        years,
		Universities: academic.BarChart{XLabel: "University", Bars: []academic.Bar{{Label: "MIT", Value: 3}}},
		Faculty:      academic.BarChart{XLabel: "Faculty"},
	}, nil
}

func (f *fakeViews) MostCited(_ context.Context, faculty string) (*academic.CitedTable, error) {
	if faculty == "" {
		return nil, dashboard.ErrNoUpdate
	}
	return &academic.CitedTable{
		Faculty:      faculty,
		Columns:      []string{"Publication", "Times Cited"},
		Publications: []academic.Publication{{Title: "Paper", Citations: 9}},
	}, nil
}

func (f *fakeViews) ResearchVolume(_ context.Context, universities []string) (*academic.ScatterView, error) {
	return &academic.ScatterView{Universities: universities}, f.err
}

func (f *fakeViews) KeywordImpact(_ context.Context, keywords []string, _ academic.YearRange) (*academic.PieView, error) {
	if len(keywords) == 0 {
		return nil, dashboard.ErrNoUpdate
	}
	return &academic.PieView{Keywords: keywords, Slices: []academic.Slice{{Label: "Ada", Value: 2}}}, nil
}

func (f *fakeViews) UniversityDetail(_ context.Context, ev dashboard.Event) (*academic.UniversityDetail, error) {
	f.event = ev
	return &academic.UniversityDetail{Name: ev.Value}, nil
}

func (f *fakeViews) FacultyDetail(_ context.Context, sessionID string, ev dashboard.Event) (*academic.FacultyDetail, error) {
	f.sessionID, f.event = sessionID, ev
	return &academic.FacultyDetail{Name: ev.Value}, nil
}

func (f *fakeViews) MutateUniversity(_ context.Context, cmd dashboard.UniversityCommand) (*academic.UniversityResult, error) {
	return &academic.UniversityResult{Action: cmd.Action, Name: cmd.Name, Notice: dashboard.NoticeCreated}, nil
}

func (f *fakeViews) OpenReviews(_ context.Context, sessionID string) (*academic.ReviewsView, error) {
	f.sessionID = sessionID
	return &academic.ReviewsView{Notice: dashboard.NoticeNoReviews}, nil
}

func (f *fakeViews) SubmitReview(_ context.Context, sessionID string, sub dashboard.ReviewSubmission) (*academic.ReviewResult, error) {
	f.sessionID, f.review = sessionID, sub
	if sub.Rating < 1 || sub.Rating > 5 {
		return nil, errors.Wrap(dashboard.ErrInvalidInput, "rating out of range")
	}
	return &academic.ReviewResult{Token: "tok", Appended: true}, nil
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var request mcp.CallToolRequest
	request.Params.Arguments = args
	return request
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	content, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return content.Text
}

func TestRegisterDashboardTools(t *testing.T) {
	s := server.NewMCPServer("test", "0.0.1", server.WithToolCapabilities(false))
	RegisterDashboardTools(s, &fakeViews{})

	resp := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	names := gjson.GetBytes(raw, "result.tools.#.name").Array()
	var got []string
	for _, n := range names {
		got = append(got, n.String())
	}
	assert.ElementsMatch(t, []string{
		"dashboard_options", "keyword_ranking", "most_cited_publications", "research_volume",
		"keyword_impact", "university_detail", "faculty_detail", "mutate_university",
		"open_reviews", "submit_review",
	}, got)
}

func TestRankingHandler(t *testing.T) {
	views := &fakeViews{}
	tools := &dashboardTools{views: views}

	result, err := tools.rankingHandler(context.Background(), callRequest(map[string]interface{}{
		"keywords": []interface{}{"data mining"},
		"min_year": 2000.0,
		"max_year": 2010.0,
	}))

	require.NoError(t, err)
	out := text(t, result)
	assert.Equal(t, []string{"data mining"}, views.keywords)
	assert.Equal(t, academic.YearRange{Min: 2000, Max: 2010}, views.years)
	assert.Equal(t, "MIT", gjson.Get(out, "view.universities.bars.0.label").String())
	assert.Equal(t, "bar", gjson.Get(out, "figure.universities.data.0.type").String())
	assert.Equal(t, "plotly_dark", gjson.Get(out, "figure.faculty.layout.template").String())
}

func TestRankingHandler_PartialYears(t *testing.T) {
	views := &fakeViews{}
	tools := &dashboardTools{views: views}

	_, err := tools.rankingHandler(context.Background(), callRequest(map[string]interface{}{
		"keywords": "data mining",
		"min_year": 2000.0,
	}))

	require.NoError(t, err)
	assert.Equal(t, academic.YearRange{Min: 2000}, views.years)
}

func TestRankingHandler_BackendError(t *testing.T) {
	tools := &dashboardTools{views: &fakeViews{err: errors.New("mysql down")}}
	handler := util.ErrorGuard(tools.rankingHandler)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{"keywords": "x"}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, text(t, result), "mysql down")
}

func TestCitedHandler(t *testing.T) {
	tools := &dashboardTools{views: &fakeViews{}}

	result, err := tools.citedHandler(context.Background(), callRequest(map[string]interface{}{"faculty": "Ada"}))

	require.NoError(t, err)
	out := text(t, result)
	assert.Equal(t, "Paper", gjson.Get(out, "view.publications.0.title").String())
	assert.Contains(t, gjson.Get(out, "table").String(), "table-striped")
}

func TestNoUpdate(t *testing.T) {
	tools := &dashboardTools{views: &fakeViews{}}

	result, err := tools.citedHandler(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, NoUpdate, text(t, result))

	result, err = tools.impactHandler(context.Background(), callRequest(map[string]interface{}{}))
	require.NoError(t, err)
	assert.Equal(t, NoUpdate, text(t, result))
}

func TestImpactHandler(t *testing.T) {
	tools := &dashboardTools{views: &fakeViews{}}

	result, err := tools.impactHandler(context.Background(), callRequest(map[string]interface{}{"keywords": []interface{}{"ai"}}))

	require.NoError(t, err)
	out := text(t, result)
	assert.Equal(t, "pie", gjson.Get(out, "figure.data.0.type").String())
	assert.Equal(t, "percent+label", gjson.Get(out, "figure.data.0.textinfo").String())
}

func TestUniversityHandler_DefaultsToDropdown(t *testing.T) {
	views := &fakeViews{}
	tools := &dashboardTools{views: views}

	_, err := tools.universityHandler(context.Background(), callRequest(map[string]interface{}{"value": "MIT"}))

	require.NoError(t, err)
	assert.Equal(t, dashboard.TriggerUniversityDropdown, views.event.Trigger)
}

func TestFacultyHandler_ClickDataObject(t *testing.T) {
	views := &fakeViews{}
	tools := &dashboardTools{views: views}

	_, err := tools.facultyHandler(context.Background(), callRequest(map[string]interface{}{
		"click_data": map[string]interface{}{"points": []interface{}{map[string]interface{}{"x": "Ada"}}},
		"session_id": "s1",
	}))

	require.NoError(t, err)
	assert.Equal(t, dashboard.TriggerFacultyChart, views.event.Trigger)
	assert.Equal(t, "Ada", gjson.Get(views.event.ClickData, "points.0.x").String())
	assert.Equal(t, "s1", views.sessionID)
}

func TestOpenReviewsHandler_DefaultSession(t *testing.T) {
	views := &fakeViews{}
	tools := &dashboardTools{views: views}

	result, err := tools.openReviewsHandler(context.Background(), callRequest(nil))

	require.NoError(t, err)
	assert.Equal(t, session.DefaultID, views.sessionID)
	assert.Equal(t, dashboard.NoticeNoReviews, gjson.Get(text(t, result), "view.notice").String())
}

func TestSubmitReviewHandler(t *testing.T) {
	views := &fakeViews{}
	tools := &dashboardTools{views: views}

	result, err := tools.submitReviewHandler(context.Background(), callRequest(map[string]interface{}{
		"text":       "Great lectures",
		"rating":     5.0,
		"token":      "abc",
		"session_id": "s1",
	}))

	require.NoError(t, err)
	assert.True(t, gjson.Get(text(t, result), "view.appended").Bool())
	assert.Equal(t, dashboard.ReviewSubmission{Text: "Great lectures", Rating: 5, Token: "abc"}, views.review)
}

func TestSubmitReviewHandler_Invalid(t *testing.T) {
	tools := &dashboardTools{views: &fakeViews{}}

	result, err := tools.submitReviewHandler(context.Background(), callRequest(map[string]interface{}{"text": "ok", "rating": 6.0}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = tools.submitReviewHandler(context.Background(), callRequest(map[string]interface{}{"text": "ok"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestMutateHandler(t *testing.T) {
	tools := &dashboardTools{views: &fakeViews{}}

	result, err := tools.mutateHandler(context.Background(), callRequest(map[string]interface{}{"action": "create", "name": "Harvard"}))

	require.NoError(t, err)
	out := text(t, result)
	assert.Equal(t, "Harvard", gjson.Get(out, "view.name").String())
	assert.Equal(t, dashboard.NoticeCreated, gjson.Get(out, "view.notice").String())
}
