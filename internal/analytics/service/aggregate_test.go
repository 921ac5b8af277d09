package service

import (
	"testing"
	"time"

	"github.com/archplans/plan-portal/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t time.Time) *time.Time { return &t }

var now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestCategoryBreakdown(t *testing.T) {
	assert.Empty(t, CategoryBreakdown(nil))

	plans := []domain.PlanRecord{
		{CategoryGroup: domain.CategoryResidential},
		{},
		{CategoryGroup: domain.CategoryCommercial},
		{},
		{CategoryGroup: domain.CategoryResidential},
		{},
	}
	assert.Equal(t, []Bucket{
		{Name: "Residential", Value: 2},
		{Name: "Uncategorized", Value: 3},
		{Name: "Commercial", Value: 1},
	}, CategoryBreakdown(plans))
}

func TestRequestTypeBreakdown(t *testing.T) {
	requests := []domain.CustomRequestRecord{{ProjectType: "villa"}, {ProjectType: "villa"}, {}}
	assert.Equal(t, []Bucket{{Name: "villa", Value: 2}, {Name: "Other", Value: 1}}, RequestTypeBreakdown(requests))
}

func TestMonthlyUploads_EmptyHasTwelveZeroBuckets(t *testing.T) {
	out := MonthlyUploads(nil, 0)
	require.Len(t, out, 12)
	assert.Equal(t, "Jan", out[0].Month)
	assert.Equal(t, "Dec", out[11].Month)
	for _, b := range out {
		assert.Zero(t, b.Uploads)
	}
}

func TestMonthlyUploads_Year(t *testing.T) {
	plans := []domain.PlanRecord{
		{CreatedAt: at(time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC))},
		{CreatedAt: at(time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC))},
		{CreatedAt: at(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC))},
		{},
	}

	all := MonthlyUploads(plans, 0)
	assert.Equal(t, 2, all[2].Uploads)
	assert.Equal(t, 1, all[11].Uploads)

	only2025 := MonthlyUploads(plans, 2025)
	assert.Equal(t, 1, only2025[2].Uploads)
	assert.Equal(t, 1, only2025[11].Uploads)
}

func TestEngagementRanking(t *testing.T) {
	var plans []domain.PlanRecord
	for i := 0; i < 12; i++ {
		plans = append(plans, domain.PlanRecord{Title: "Plan", Views: i})
	}
	plans[3].Title = "An Extraordinarily Long Plan Title"

	out := EngagementRanking(plans)
	require.Len(t, out, 10)
	assert.Equal(t, 11, out[0].Views)
	assert.Equal(t, 2, out[9].Views)

	long := EngagementRanking([]domain.PlanRecord{plans[3]})
	assert.Equal(t, "An Extraordinarily L...", long[0].Name)
}

func TestTimeAgo(t *testing.T) {
	assert.Equal(t, "3 hours ago", TimeAgo(at(now.Add(-3*time.Hour)), now))
	assert.Equal(t, "2 days ago", TimeAgo(at(now.Add(-48*time.Hour)), now))
	assert.Equal(t, "1 hour ago", TimeAgo(at(now.Add(-10*time.Minute)), now))
	assert.Equal(t, "2 days ago", TimeAgo(at(now.Add(-25*time.Hour)), now))
	assert.Equal(t, "Unknown", TimeAgo(nil, now))

	assert.Equal(t, "3 hours ago", TimeAgoString(now.Add(-3*time.Hour).Format(time.RFC3339), now))
	assert.Equal(t, "Unknown", TimeAgoString("", now))
	assert.Equal(t, "Unknown", TimeAgoString("yesterday-ish", now))
}

func TestRecentActivity_MergedByTime(t *testing.T) {
	plans := []domain.PlanRecord{
		{Title: "Old Plan", CreatedAt: at(now.Add(-72 * time.Hour))},
		{Title: "New Plan", CreatedAt: at(now.Add(-1 * time.Hour))},
		{Title: "Mid Plan", CreatedAt: at(now.Add(-10 * time.Hour))},
	}
	inquiries := []domain.InquiryRecord{
		{ClientName: "Ann", ProjectTitle: "New Plan", CreatedAt: at(now.Add(-2 * time.Hour))},
	}
	requests := []domain.CustomRequestRecord{
		{ClientName: "Bo", ProjectType: "villa", CreatedAt: at(now.Add(-30 * time.Hour))},
		{ClientName: "Cy"},
	}

	out := RecentActivity(plans, inquiries, requests, now)
	require.Len(t, out, 5)

	assert.Equal(t, "New project uploaded: New Plan", out[0].Message)
	assert.Equal(t, "1 hour ago", out[0].Time)
	assert.Equal(t, "New inquiry from Ann about New Plan", out[1].Message)
	assert.Equal(t, "New project uploaded: Mid Plan", out[2].Message)
	assert.Equal(t, "Custom design request from Bo (villa)", out[3].Message)
	assert.Equal(t, "Custom design request from Cy", out[4].Message)
	assert.Equal(t, "Unknown", out[4].Time)
}

func TestRecentActivity_Empty(t *testing.T) {
	out := RecentActivity(nil, nil, nil, now)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestComputeTotals(t *testing.T) {
	plans := []domain.PlanRecord{{Views: 10, Favorites: 2, Inquiries: 1}, {Views: 5, Favorites: 1}}
	tot := ComputeTotals(plans, []domain.InquiryRecord{{}}, nil)
	assert.Equal(t, Totals{Plans: 2, Inquiries: 1, Views: 15, Favorites: 3, PlanInquiries: 1}, tot)
}
