package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mvdti/dashboard-service/internal/errs"
	"github.com/mvdti/dashboard-service/internal/model"
	"gorm.io/gorm"
)

const (
	// SearchLimit caps the ticket search result set.
	SearchLimit = 50

	// ComparablesLimit caps the historical evidence set for insights.
	ComparablesLimit = 20
)

// TicketServicer — интерфейс для handlers (Dependency Inversion).
type TicketServicer interface {
	GetByID(ctx context.Context, id string) (*model.Ticket, error)
	Search(ctx context.Context, q string) ([]model.TicketSummary, error)
	Comparables(ctx context.Context, category string) ([]model.Ticket, error)
	CreateFeedback(ctx context.Context, f *model.Feedback) error
}

type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

func (s *TicketService) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	var t model.Ticket
	err := s.db.WithContext(ctx).Where("id_ticket = ?", id).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Search returns active tickets only (both resolved statuses excluded),
// newest first. q filters by id or title, case-insensitive.
func (s *TicketService) Search(ctx context.Context, q string) ([]model.TicketSummary, error) {
	tx := s.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("status_name NOT IN ?", []string{model.StatusResolvedOnTime, model.StatusResolvedLate})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("id_ticket ILIKE ? OR ticket_title ILIKE ?", like, like)
	}
	var items []model.TicketSummary
	err := tx.Order("tod_date DESC").Limit(SearchLimit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Comparables returns up to 20 resolved tickets of the same category, best
// outcomes first: quality score descending, then resolution minutes
// ascending, NULLs last on both keys.
func (s *TicketService) Comparables(ctx context.Context, category string) ([]model.Ticket, error) {
	var items []model.Ticket
	err := s.db.WithContext(ctx).
		Where("category_name = ?", category).
		Where("res_date IS NOT NULL").
		Order("res_val DESC NULLS LAST").
		Order("sla_res_minu ASC NULLS LAST").
		Limit(ComparablesLimit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *TicketService) CreateFeedback(ctx context.Context, f *model.Feedback) error {
	return s.db.WithContext(ctx).Create(f).Error
}
