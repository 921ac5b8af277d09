package service

import (
	"context"
	"fmt"
	"time"

	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/archplans/plan-portal/internal/logging"
	"golang.org/x/sync/errgroup"
)

// AdminSource is the part of the backend client the dashboard reads from.
type AdminSource interface {
	ListPlans(ctx context.Context, token string, q backend.PlanQuery) ([]backend.Plan, error)
	ListInquiries(ctx context.Context, token string) ([]backend.Inquiry, error)
	ListCustomRequests(ctx context.Context, token string) ([]backend.CustomRequest, error)
}

// Dashboard is everything the admin analytics view renders.
type Dashboard struct {
	GeneratedAt    time.Time         `json:"generatedAt"`
	Year           int               `json:"year"`
	Totals         Totals            `json:"totals"`
	Categories     []Bucket          `json:"categories"`
	RequestTypes   []Bucket          `json:"requestTypes"`
	InquiryStatus  []Bucket          `json:"inquiryStatus"`
	RequestStatus  []Bucket          `json:"requestStatus"`
	MonthlyUploads []MonthlyBucket   `json:"monthlyUploads"`
	Engagement     []EngagementEntry `json:"engagement"`
	RecentActivity []ActivityEntry   `json:"recentActivity"`
}

// Dataset is the raw input of a dashboard.
type Dataset struct {
	Plans     []domain.PlanRecord
	Inquiries []domain.InquiryRecord
	Requests  []domain.CustomRequestRecord
}

// DashboardService loads and aggregates the admin analytics
type DashboardService struct {
	source AdminSource
	now    func() time.Time
}

func NewDashboardService(source AdminSource) *DashboardService {
	return &DashboardService{source: source, now: time.Now}
}

// Fetch loads plans, inquiries and custom requests concurrently. The first
// failure cancels the other fetches and aborts the whole load.
func (s *DashboardService) Fetch(ctx context.Context, token string) (*Dataset, error) {
	var (
		plans     []backend.Plan
		inquiries []backend.Inquiry
		requests  []backend.CustomRequest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		plans, err = s.source.ListPlans(gctx, token, backend.PlanQuery{})
		return err
	})
	g.Go(func() error {
		var err error
		inquiries, err = s.source.ListInquiries(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		requests, err = s.source.ListCustomRequests(gctx, token)
		return err
	})

	if err := g.Wait(); err != nil {
		logging.FromContext(ctx).LogError("load_dashboard", err)
		return nil, fmt.Errorf("load dashboard: %w", err)
	}

	return &Dataset{
		Plans:     backend.PlanRecords(plans),
		Inquiries: backend.InquiryRecords(inquiries),
		Requests:  backend.CustomRequestRecords(requests),
	}, nil
}

// Load fetches the dataset and aggregates it. year selects the monthly upload
// histogram; 0 means the current year.
func (s *DashboardService) Load(ctx context.Context, token string, year int) (*Dashboard, error) {
	ds, err := s.Fetch(ctx, token)
	if err != nil {
		return nil, err
	}
	return Build(ds, year, s.now()), nil
}

// Build aggregates a dataset.
func Build(ds *Dataset, year int, now time.Time) *Dashboard {
	if year == 0 {
		year = now.Year()
	}
	return &Dashboard{
		GeneratedAt:    now.UTC(),
		Year:           year,
		Totals:         ComputeTotals(ds.Plans, ds.Inquiries, ds.Requests),
		Categories:     CategoryBreakdown(ds.Plans),
		RequestTypes:   RequestTypeBreakdown(ds.Requests),
		InquiryStatus:  InquiryStatusBreakdown(ds.Inquiries),
		RequestStatus:  RequestStatusBreakdown(ds.Requests),
		MonthlyUploads: MonthlyUploads(ds.Plans, year),
		Engagement:     EngagementRanking(ds.Plans),
		RecentActivity: RecentActivity(ds.Plans, ds.Inquiries, ds.Requests, now),
	}
}
