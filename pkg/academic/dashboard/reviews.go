package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/query"
)

// ReviewSubmission is a review entered for the selected faculty member.
// Token makes the submission idempotent within a session; one is generated when empty.
type ReviewSubmission struct {
	Text   string `json:"text" validate:"required,max=2000"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Token  string `json:"token,omitempty"`
}

// OpenReviews shows the reviews of the session's selected faculty member,
// creating an empty reviews array on the document when it has none
func (d *Dashboard) OpenReviews(ctx context.Context, sessionID string) (view *academic.ReviewsView, err error) {
	defer func() { d.record("open_reviews", err) }()

	sel, ok := d.sessions.Selected(sessionID)
	if !ok {
		return &academic.ReviewsView{Notice: NoticeNoSelection}, nil
	}

	filter, update := query.InitReviews(sel.FacultyID)
	if _, err := d.document.UpdateOne(ctx, query.FacultyCollection, filter, update); err != nil {
		return nil, errors.Wrapf(err, "failed to initialise reviews of %s", sel.FacultyName)
	}

	docs, err := d.document.Find(ctx, query.FacultyCollection, query.FacultyByID(sel.FacultyID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load reviews of %s", sel.FacultyName)
	}
	if len(docs) == 0 {
		return &academic.ReviewsView{Faculty: sel.FacultyName, Reviews: []academic.Review{}, Notice: NoticeFacultyDiscrepancy}, nil
	}

	var faculty academic.Faculty
	if err := decodeDocument(docs[0], &faculty); err != nil {
		return nil, err
	}

	view = &academic.ReviewsView{Faculty: sel.FacultyName, Reviews: faculty.Reviews}
	if view.Reviews == nil {
		view.Reviews = []academic.Review{}
	}
	if len(view.Reviews) == 0 {
		view.Notice = NoticeNoReviews
	}
	return view, nil
}

// SubmitReview appends a review to the session's selected faculty member.
// A token already used in this session is reported as a duplicate and not appended again.
func (d *Dashboard) SubmitReview(ctx context.Context, sessionID string, sub ReviewSubmission) (result *academic.ReviewResult, err error) {
	defer func() { d.record("submit_review", err) }()

	if err := d.validate.Struct(sub); err != nil {
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}

	sel, ok := d.sessions.Selected(sessionID)
	if !ok {
		return &academic.ReviewResult{Token: sub.Token, Notice: NoticeNoSelection}, nil
	}

	if sub.Token == "" {
		sub.Token = uuid.NewString()
	}
	if !d.sessions.ClaimToken(sessionID, sub.Token) {
		return &academic.ReviewResult{
			Faculty:   sel.FacultyName,
			Token:     sub.Token,
			Duplicate: true,
			Notice:    NoticeDuplicateReview,
		}, nil
	}

	filter, update := query.PushReview(sel.FacultyID, sub.Text, sub.Rating)
	res, err := d.document.UpdateOne(ctx, query.FacultyCollection, filter, update)
	if err != nil {
		d.sessions.ReleaseToken(sessionID, sub.Token)
		return nil, errors.Wrapf(err, "failed to append review for %s", sel.FacultyName)
	}
	if res.Matched == 0 {
		d.sessions.ReleaseToken(sessionID, sub.Token)
		return &academic.ReviewResult{Faculty: sel.FacultyName, Token: sub.Token, Notice: NoticeFacultyDiscrepancy}, nil
	}

	d.logger.WithFields(logrus.Fields{
		"session": sessionID,
		"faculty": sel.FacultyName,
		"rating":  sub.Rating,
	}).Info("Review appended")

	return &academic.ReviewResult{Faculty: sel.FacultyName, Token: sub.Token, Appended: true}, nil
}
