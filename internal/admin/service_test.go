package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/archplans/plan-portal/internal/backend"
	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	calls []string
	err   error
}

func (f *fakeBackend) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeBackend) ListPlans(_ context.Context, _ string, q backend.PlanQuery) ([]backend.Plan, error) {
	return []backend.Plan{{ID: "p1", Status: "draft"}}, f.record("list_plans:" + q.Status)
}
func (f *fakeBackend) UpdatePlanStatus(_ context.Context, _, id, status string) error {
	return f.record("plan_status:" + id + ":" + status)
}
func (f *fakeBackend) DeletePlan(_ context.Context, _, id string) error {
	return f.record("delete_plan:" + id)
}
func (f *fakeBackend) ListInquiries(context.Context, string) ([]backend.Inquiry, error) {
	return []backend.Inquiry{{ID: "i1", Name: "Kim"}}, f.record("list_inquiries")
}
func (f *fakeBackend) UpdateInquiryStatus(_ context.Context, _, id, status string) error {
	return f.record("inquiry_status:" + id + ":" + status)
}
func (f *fakeBackend) DeleteInquiry(_ context.Context, _, id string) error {
	return f.record("delete_inquiry:" + id)
}
func (f *fakeBackend) ListCustomRequests(context.Context, string) ([]backend.CustomRequest, error) {
	return []backend.CustomRequest{{ID: "r1"}}, f.record("list_requests")
}
func (f *fakeBackend) UpdateCustomRequestStatus(_ context.Context, _, id, status string) error {
	return f.record("request_status:" + id + ":" + status)
}
func (f *fakeBackend) DeleteCustomRequest(_ context.Context, _, id string) error {
	return f.record("delete_request:" + id)
}

type fakeRefresher struct {
	count int
	err   error
}

func (f *fakeRefresher) Refresh(context.Context) (int, error) {
	f.count++
	return 0, f.err
}

func TestSetStatus_Validation(t *testing.T) {
	b := &fakeBackend{}
	svc := NewService(b, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetPlanStatus(ctx, "t", "p1", "deleted"), domain.ErrInvalidStatus)
	assert.ErrorIs(t, svc.SetInquiryStatus(ctx, "t", "i1", "completed"), domain.ErrInvalidStatus)
	assert.ErrorIs(t, svc.SetCustomRequestStatus(ctx, "t", "r1", "closed"), domain.ErrInvalidStatus)
	_, err := svc.Plans(ctx, "t", "bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Empty(t, b.calls)

	require.NoError(t, svc.SetPlanStatus(ctx, "t", "p1", domain.PlanStatusPublished))
	require.NoError(t, svc.SetInquiryStatus(ctx, "t", "i1", domain.InquiryStatusClosed))
	require.NoError(t, svc.SetCustomRequestStatus(ctx, "t", "r1", domain.RequestStatusCompleted))
	assert.Equal(t, []string{
		"plan_status:p1:published",
		"inquiry_status:i1:closed",
		"request_status:r1:completed",
	}, b.calls)
}

func TestPlanMutations_RefreshCatalog(t *testing.T) {
	refresher := &fakeRefresher{}
	svc := NewService(&fakeBackend{}, refresher)
	ctx := context.Background()

	require.NoError(t, svc.SetPlanStatus(ctx, "t", "p1", domain.PlanStatusArchived))
	require.NoError(t, svc.DeletePlan(ctx, "t", "p1"))
	require.NoError(t, svc.DeleteInquiry(ctx, "t", "i1"))
	assert.Equal(t, 2, refresher.count)

	// A failed refresh does not fail the mutation.
	refresher.err = errors.New("backend down")
	require.NoError(t, svc.DeletePlan(ctx, "t", "p2"))
}

func TestFailedMutation_SkipsRefresh(t *testing.T) {
	refresher := &fakeRefresher{}
	svc := NewService(&fakeBackend{err: backend.ErrNotFound}, refresher)

	err := svc.DeletePlan(context.Background(), "t", "p1")
	assert.ErrorIs(t, err, backend.ErrNotFound)
	assert.Zero(t, refresher.count)
}

func TestLists(t *testing.T) {
	svc := NewService(&fakeBackend{}, nil)
	ctx := context.Background()

	plans, err := svc.Plans(ctx, "t", "draft")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, []string{domain.PlaceholderImage}, plans[0].Images)

	inquiries, err := svc.Inquiries(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, "Kim", inquiries[0].ClientName)

	requests, err := svc.CustomRequests(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, "r1", requests[0].ID)
}
