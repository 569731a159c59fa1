package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/interntrack/internal/common"
	"github.com/dmitrijs2005/interntrack/internal/server/models"
	"github.com/dmitrijs2005/interntrack/internal/server/repositories/internships"
)

// StatusAll in a list filter means "any status".
const StatusAll = "all"

type InternshipService struct {
	repo internships.Repository
	now  func() time.Time
}

func NewInternshipService(repo internships.Repository) *InternshipService {
	return &InternshipService{repo: repo, now: time.Now}
}

// ParseFilter validates list parameters coming from the client.
func ParseFilter(status, query string) (models.InternshipFilter, error) {
	status = strings.TrimSpace(status)
	if status == StatusAll {
		status = ""
	}
	f := models.InternshipFilter{Status: models.Status(status), Query: strings.TrimSpace(query)}
	if f.Status != "" && !f.Status.Valid() {
		return models.InternshipFilter{}, invalidStatus()
	}
	return f, nil
}

func invalidStatus() error {
	names := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		names[i] = string(s)
	}
	return common.InvalidInput("status must be one of: " + strings.Join(names, ", "))
}

func (s *InternshipService) List(ctx context.Context, userID int64, filter models.InternshipFilter) ([]*models.Internship, error) {
	items, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing internships: %w", err)
	}
	return items, nil
}

func (s *InternshipService) Get(ctx context.Context, userID, id int64) (*models.Internship, error) {
	item, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("error loading internship: %w", err)
	}
	return item, nil
}

// Create stores a new record for userID. An empty status defaults to applied.
func (s *InternshipService) Create(ctx context.Context, userID int64, in models.InternshipInput) (*models.Internship, error) {
	if strings.TrimSpace(in.Status) == "" {
		in.Status = string(models.StatusApplied)
	}

	item, err := s.build(in)
	if err != nil {
		return nil, err
	}
	item.UserID = userID
	item.CreatedAt = s.now().UTC()

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("error creating internship: %w", err)
	}
	return created, nil
}

// Update overwrites the editable fields. Status is required.
func (s *InternshipService) Update(ctx context.Context, userID, id int64, in models.InternshipInput) error {
	item, err := s.build(in)
	if err != nil {
		return err
	}
	item.ID = id
	item.UserID = userID

	if err := s.repo.Update(ctx, item); err != nil {
		return fmt.Errorf("error updating internship: %w", err)
	}
	return nil
}

func (s *InternshipService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("error deleting internship: %w", err)
	}
	return nil
}

func (s *InternshipService) build(in models.InternshipInput) (*models.Internship, error) {
	company := strings.TrimSpace(in.Company)
	role := strings.TrimSpace(in.Role)
	if company == "" || role == "" {
		return nil, common.InvalidInput("company and role are required")
	}

	status := models.Status(strings.TrimSpace(in.Status))
	if !status.Valid() {
		return nil, invalidStatus()
	}

	return &models.Internship{
		Company: company,
		Role:    role,
		Status:  status,
		Link:    models.OptionalText(in.Link),
		Notes:   models.OptionalText(in.Notes),
	}, nil
}
