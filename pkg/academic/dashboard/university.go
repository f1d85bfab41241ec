package dashboard

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/athapong/academicworld-mcp/pkg/academic"
	"github.com/athapong/academicworld-mcp/pkg/academic/query"
	"github.com/athapong/academicworld-mcp/pkg/academic/storage"
)

// University form buttons
const (
	ActionUpdate = "update"
	ActionCreate = "create"
)

// UniversityCommand is a submission of the university form; Action names the button pressed
type UniversityCommand struct {
	Action   string `json:"action"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// MutateUniversity creates a university or sets its photo in the graph store.
//
// Only the graph store and the in-memory university options change; the
// relational and document stores keep their own university lists, so a newly
// created university is not visible to the ranking or research widgets.
func (d *Dashboard) MutateUniversity(ctx context.Context, cmd UniversityCommand) (result *academic.UniversityResult, err error) {
	defer func() { d.record("mutate_university", err) }()

	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, ErrNoUpdate
	}

	switch cmd.Action {
	case ActionUpdate:
		res, err := d.graph.Execute(ctx, query.SetUniversityPhoto(name, cmd.PhotoURL))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to update university %s", name)
		}
		result := &academic.UniversityResult{
			Action:    ActionUpdate,
			Name:      name,
			PhotoURL:  cmd.PhotoURL,
			Matched:   len(res.Records) > 0,
			GraphOnly: true,
		}
		if !result.Matched {
			result.Notice = NoticeUnknownUniversity
		}
		return result, nil

	case ActionCreate:
		_, err := d.graph.Execute(ctx, query.CreateUniversity(name, cmd.PhotoURL))
		if storage.IsConstraintViolation(err) {
			d.logger.WithField("university", name).Info("University creation rejected by constraint")
			return &academic.UniversityResult{
				Action:   ActionCreate,
				Name:     name,
				PhotoURL: cmd.PhotoURL,
				Notice:   NoticeConstraintViolated,
				Options:  d.universityOptions(),
			}, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create university %s", name)
		}

		options := d.addUniversityOption(name)
		d.logger.WithFields(logrus.Fields{"university": name, "options": len(options)}).Info("University created")

		return &academic.UniversityResult{
			Action:    ActionCreate,
			Name:      name,
			PhotoURL:  cmd.PhotoURL,
			Matched:   true,
			Created:   true,
			GraphOnly: true,
			Notice:    NoticeCreated,
			Options:   options,
		}, nil
	}

	return nil, ErrNoUpdate
}
