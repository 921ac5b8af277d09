// Package admin implements moderation of plans, inquiries and custom design
// requests.
package admin

import (
	"context"
	"fmt"

	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/archplans/plan-portal/internal/logging"
)

// Backend is the part of the backend client moderation needs.
type Backend interface {
	ListPlans(ctx context.Context, token string, q backend.PlanQuery) ([]backend.Plan, error)
	UpdatePlanStatus(ctx context.Context, token, id, status string) error
	DeletePlan(ctx context.Context, token, id string) error

	ListInquiries(ctx context.Context, token string) ([]backend.Inquiry, error)
	UpdateInquiryStatus(ctx context.Context, token, id, status string) error
	DeleteInquiry(ctx context.Context, token, id string) error

	ListCustomRequests(ctx context.Context, token string) ([]backend.CustomRequest, error)
	UpdateCustomRequestStatus(ctx context.Context, token, id, status string) error
	DeleteCustomRequest(ctx context.Context, token, id string) error
}

// CatalogRefresher is notified after a plan changes.
type CatalogRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

type Service struct {
	backend Backend
	catalog CatalogRefresher
}

// NewService creates a Service. catalog may be nil.
func NewService(b Backend, catalog CatalogRefresher) *Service {
	return &Service{backend: b, catalog: catalog}
}

// Plans lists every plan visible to the admin, optionally filtered by status.
func (s *Service) Plans(ctx context.Context, token, status string) ([]domain.PlanRecord, error) {
	if status != "" && !domain.IsValidPlanStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	plans, err := s.backend.ListPlans(ctx, token, backend.PlanQuery{Status: status})
	if err != nil {
		return nil, err
	}
	return backend.PlanRecords(plans), nil
}

func (s *Service) SetPlanStatus(ctx context.Context, token, id, status string) error {
	if !domain.IsValidPlanStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	if err := s.backend.UpdatePlanStatus(ctx, token, id, status); err != nil {
		return err
	}
	s.refreshCatalog(ctx)
	return nil
}

func (s *Service) DeletePlan(ctx context.Context, token, id string) error {
	if err := s.backend.DeletePlan(ctx, token, id); err != nil {
		return err
	}
	s.refreshCatalog(ctx)
	return nil
}

// PlanUploaded refreshes the catalog after a new plan was created.
func (s *Service) PlanUploaded(ctx context.Context) {
	s.refreshCatalog(ctx)
}

func (s *Service) Inquiries(ctx context.Context, token string) ([]domain.InquiryRecord, error) {
	in, err := s.backend.ListInquiries(ctx, token)
	if err != nil {
		return nil, err
	}
	return backend.InquiryRecords(in), nil
}

func (s *Service) SetInquiryStatus(ctx context.Context, token, id, status string) error {
	if !domain.IsValidInquiryStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.backend.UpdateInquiryStatus(ctx, token, id, status)
}

func (s *Service) DeleteInquiry(ctx context.Context, token, id string) error {
	return s.backend.DeleteInquiry(ctx, token, id)
}

func (s *Service) CustomRequests(ctx context.Context, token string) ([]domain.CustomRequestRecord, error) {
	in, err := s.backend.ListCustomRequests(ctx, token)
	if err != nil {
		return nil, err
	}
	return backend.CustomRequestRecords(in), nil
}

func (s *Service) SetCustomRequestStatus(ctx context.Context, token, id, status string) error {
	if !domain.IsValidRequestStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	return s.backend.UpdateCustomRequestStatus(ctx, token, id, status)
}

func (s *Service) DeleteCustomRequest(ctx context.Context, token, id string) error {
	return s.backend.DeleteCustomRequest(ctx, token, id)
}

// refreshCatalog is best effort: the mutation already succeeded and the
// scheduled refresh will catch up.
func (s *Service) refreshCatalog(ctx context.Context) {
	if s.catalog == nil {
		return
	}
	if _, err := s.catalog.Refresh(ctx); err != nil {
		logging.FromContext(ctx).LogWarnf("catalog_refresh", "refresh after plan change failed: %v", err)
	}
}
