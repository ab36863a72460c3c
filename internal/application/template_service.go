package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	repo "github.com/oksasatya/tradedocs-portal/internal/domain/repository"
)

// TemplateService is the template registry used by the send flow and the
// listing endpoints.
type TemplateService struct {
	Repo   repo.TemplateRepository
	Index  repo.TemplateIndex // optional
	Logger *logrus.Logger
}

func NewTemplateService(r repo.TemplateRepository, index repo.TemplateIndex, logger *logrus.Logger) *TemplateService {
	return &TemplateService{Repo: r, Index: index, Logger: logger}
}

// Resolve returns the template with exactly this id or ErrTemplateNotFound.
func (s *TemplateService) Resolve(ctx context.Context, id string) (*entity.Template, error) {
	if id == "" {
		return nil, ErrMissingTemplate
	}
	t, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateService) List(ctx context.Context) ([]entity.Template, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []entity.Template{}
	}
	return list, nil
}

// Search matches templates by id, title and description. The index is used when
// present; if it fails the search falls back to a substring scan.
func (s *TemplateService) Search(ctx context.Context, q string) ([]entity.Template, error) {
	q = strings.TrimSpace(q)
	all, err := s.List(ctx)
	if err != nil || q == "" {
		return all, err
	}

	if s.Index != nil {
		c, cancel := context.WithTimeout(ctx, 3*time.Second)
		ids, ierr := s.Index.Search(c, q)
		cancel()
		if ierr == nil {
			return pick(all, ids), nil
		}
		if s.Logger != nil {
			s.Logger.WithError(ierr).Warn("template index search failed; scanning")
		}
	}

	needle := strings.ToLower(q)
	out := []entity.Template{}
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.ID), needle) ||
			strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Reindex pushes every template into the index.
func (s *TemplateService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	all, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	for i := range all {
		if err := s.Index.Index(ctx, &all[i]); err != nil {
			return i, err
		}
	}
	return len(all), nil
}

func pick(all []entity.Template, ids []string) []entity.Template {
	byID := make(map[string]entity.Template, len(all))
	for _, t := range all {
		byID[t.ID] = t
	}
	out := make([]entity.Template, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}
