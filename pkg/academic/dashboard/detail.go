package dashboard

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/query"
	"github.com/athapong/academicworld-mcp/pkg/academic/session"
)

// Widget identifiers that can trigger a detail lookup
const (
	TriggerUniversityChart    = "uni-keyword-graph"
	TriggerUniversityDropdown = "university-dropdown"
	TriggerFacultyChart       = "faculty-keyword-graph"
	TriggerFacultyDropdown    = "faculty-dropdown"
)

// Event is a widget interaction. ClickData is the chart's raw click payload
// ({"points":[{"x":...}]}); Value is the dropdown value.
type Event struct {
	Trigger   string `json:"trigger"`
	ClickData string `json:"click_data,omitempty"`
	Value     string `json:"value,omitempty"`
}

// name resolves the entity name from whichever widget fired
func (e Event) name(chartID, dropdownID string) (string, bool) {
	var name string
	switch e.Trigger {
	case chartID:
		if e.ClickData == "" {
			return "", false
		}
		name = gjson.Get(e.ClickData, "points.0.x").String()
	case dropdownID:
		name = e.Value
	default:
		return "", false
	}
	name = strings.TrimSpace(name)
	return name, name != ""
}

// UniversityDetail shows a university's photo and number of affiliated faculty
func (d *Dashboard) UniversityDetail(ctx context.Context, ev Event) (detail *academic.UniversityDetail, err error) {
	defer func() { d.record("university_detail", err) }()

	name, ok := ev.name(TriggerUniversityChart, TriggerUniversityDropdown)
	if !ok {
		return nil, ErrNoUpdate
	}

	res, err := d.graph.Execute(ctx, query.UniversityByName(name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up university %s", name)
	}
	if len(res.Records) == 0 {
		return &academic.UniversityDetail{Name: name, Notice: NoticeUniversityDiscrepancy}, nil
	}
	photo := asString(res.Records[0]["photoUrl"])

	res, err = d.graph.Execute(ctx, query.UniversityFacultyCount(name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to count faculty of %s", name)
	}
	var total int64
	if len(res.Records) > 0 {
		total = asInt64(res.Records[0]["total"])
	}

	return &academic.UniversityDetail{Name: name, PhotoURL: photo, FacultyCount: total}, nil
}

// FacultyDetail shows a faculty member's profile and makes them the session's
// selection for subsequent review operations
func (d *Dashboard) FacultyDetail(ctx context.Context, sessionID string, ev Event) (detail *academic.FacultyDetail, err error) {
	defer func() { d.record("faculty_detail", err) }()

	name, ok := ev.name(TriggerFacultyChart, TriggerFacultyDropdown)
	if !ok {
		return nil, ErrNoUpdate
	}

	docs, err := d.document.Find(ctx, query.FacultyCollection, query.FacultyByName(name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to look up faculty %s", name)
	}
	if len(docs) == 0 {
		return &academic.FacultyDetail{Name: name, Notice: NoticeFacultyDiscrepancy}, nil
	}

	var faculty academic.Faculty
	if err := decodeDocument(docs[0], &faculty); err != nil {
		return nil, err
	}

	d.sessions.Select(sessionID, session.Selection{FacultyID: faculty.ID, FacultyName: name})
	d.logger.WithFields(logrus.Fields{"session": sessionID, "faculty": name}).Debug("Faculty selected")

	return &academic.FacultyDetail{
		Name:             name,
		PhotoURL:         faculty.PhotoURL,
		Position:         faculty.Position,
		ResearchInterest: faculty.ResearchInterest,
		Email:            faculty.Email,
		Phone:            faculty.Phone,
		University:       faculty.Affiliation.Name,
	}, nil
}
