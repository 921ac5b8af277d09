package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/archplans/plan-portal/internal/catalog/domain"
)

const (
	uncategorized     = "Uncategorized"
	otherType         = "Other"
	unknownTime       = "Unknown"
	engagementTopN    = 10
	engagementNameLen = 20
	recentPerGroup    = 2
	recentMax         = 6
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Bucket is a named count.
type Bucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type MonthlyBucket struct {
	Month   string `json:"month"`
	Uploads int    `json:"uploads"`
}

type EngagementEntry struct {
	Name      string `json:"name"`
	Views     int    `json:"views"`
	Favorites int    `json:"favorites"`
	Inquiries int    `json:"inquiries"`
}

type ActivityEntry struct {
	Kind    string     `json:"kind"`
	Message string     `json:"message"`
	Time    string     `json:"time"`
	At      *time.Time `json:"at,omitempty"`
}

type Totals struct {
	Plans          int `json:"plans"`
	Inquiries      int `json:"inquiries"`
	CustomRequests int `json:"customRequests"`
	Views          int `json:"views"`
	Favorites      int `json:"favorites"`
	PlanInquiries  int `json:"planInquiries"`
}

// groupCount counts keys in order of first occurrence.
func groupCount(keys []string) []Bucket {
	out := []Bucket{}
	index := map[string]int{}
	for _, k := range keys {
		if i, ok := index[k]; ok {
			out[i].Value++
			continue
		}
		index[k] = len(out)
		out = append(out, Bucket{Name: k, Value: 1})
	}
	return out
}

// CategoryBreakdown groups plans by category group. Plans without one fall
// into "Uncategorized".
func CategoryBreakdown(plans []domain.PlanRecord) []Bucket {
	keys := make([]string, len(plans))
	for i, p := range plans {
		keys[i] = orDefault(string(p.CategoryGroup), uncategorized)
	}
	return groupCount(keys)
}

// RequestTypeBreakdown groups custom requests by project type, defaulting to "Other".
func RequestTypeBreakdown(requests []domain.CustomRequestRecord) []Bucket {
	keys := make([]string, len(requests))
	for i, r := range requests {
		keys[i] = orDefault(r.ProjectType, otherType)
	}
	return groupCount(keys)
}

// InquiryStatusBreakdown groups inquiries by status.
func InquiryStatusBreakdown(inquiries []domain.InquiryRecord) []Bucket {
	keys := make([]string, len(inquiries))
	for i, q := range inquiries {
		keys[i] = orDefault(q.Status, domain.InquiryStatusNew)
	}
	return groupCount(keys)
}

// RequestStatusBreakdown groups custom requests by status.
func RequestStatusBreakdown(requests []domain.CustomRequestRecord) []Bucket {
	keys := make([]string, len(requests))
	for i, r := range requests {
		keys[i] = orDefault(r.Status, domain.RequestStatusNew)
	}
	return groupCount(keys)
}

// MonthlyUploads returns twelve buckets, January first. year == 0 counts
// plans of every year into the same month.
func MonthlyUploads(plans []domain.PlanRecord, year int) []MonthlyBucket {
	out := make([]MonthlyBucket, 12)
	for i, name := range monthNames {
		out[i].Month = name
	}
	for _, p := range plans {
		if p.CreatedAt == nil {
			continue
		}
		if year != 0 && p.CreatedAt.Year() != year {
			continue
		}
		out[p.CreatedAt.Month()-1].Uploads++
	}
	return out
}

// EngagementRanking returns the ten most viewed plans.
func EngagementRanking(plans []domain.PlanRecord) []EngagementEntry {
	out := make([]EngagementEntry, 0, len(plans))
	for _, p := range plans {
		out = append(out, EngagementEntry{
			Name:      truncateName(p.Title),
			Views:     p.Views,
			Favorites: p.Favorites,
			Inquiries: p.Inquiries,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	if len(out) > engagementTopN {
		out = out[:engagementTopN]
	}
	return out
}

// RecentActivity takes the two newest records of each group and merges them
// newest first.
func RecentActivity(plans []domain.PlanRecord, inquiries []domain.InquiryRecord, requests []domain.CustomRequestRecord, now time.Time) []ActivityEntry {
	var out []ActivityEntry

	planIdx := newestFirst(len(plans), func(i int) *time.Time { return plans[i].CreatedAt })
	for _, i := range planIdx[:min(recentPerGroup, len(planIdx))] {
		out = append(out, activity("project", fmt.Sprintf("New project uploaded: %s", orDefault(plans[i].Title, "Untitled")), plans[i].CreatedAt, now))
	}

	inqIdx := newestFirst(len(inquiries), func(i int) *time.Time { return inquiries[i].CreatedAt })
	for _, i := range inqIdx[:min(recentPerGroup, len(inqIdx))] {
		q := inquiries[i]
		msg := fmt.Sprintf("New inquiry from %s", orDefault(q.ClientName, "a visitor"))
		if q.ProjectTitle != "" {
			msg += fmt.Sprintf(" about %s", q.ProjectTitle)
		}
		out = append(out, activity("inquiry", msg, q.CreatedAt, now))
	}

	reqIdx := newestFirst(len(requests), func(i int) *time.Time { return requests[i].CreatedAt })
	for _, i := range reqIdx[:min(recentPerGroup, len(reqIdx))] {
		r := requests[i]
		msg := fmt.Sprintf("Custom design request from %s", orDefault(r.ClientName, "a visitor"))
		if r.ProjectType != "" {
			msg += fmt.Sprintf(" (%s)", r.ProjectType)
		}
		out = append(out, activity("custom-request", msg, r.CreatedAt, now))
	}

	sort.SliceStable(out, func(i, j int) bool { return newer(out[i].At, out[j].At) })
	if len(out) > recentMax {
		out = out[:recentMax]
	}
	if out == nil {
		out = []ActivityEntry{}
	}
	return out
}

// ComputeTotals sums the headline counters of the dashboard.
func ComputeTotals(plans []domain.PlanRecord, inquiries []domain.InquiryRecord, requests []domain.CustomRequestRecord) Totals {
	t := Totals{Plans: len(plans), Inquiries: len(inquiries), CustomRequests: len(requests)}
	for _, p := range plans {
		t.Views += p.Views
		t.Favorites += p.Favorites
		t.PlanInquiries += p.Inquiries
	}
	return t
}

// TimeAgo renders the elapsed time since ts, rounding up to whole hours
// under a day and whole days otherwise.
func TimeAgo(ts *time.Time, now time.Time) string {
	if ts == nil || ts.IsZero() {
		return unknownTime
	}
	elapsed := now.Sub(*ts)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed < 24*time.Hour {
		return plural(int(math.Ceil(elapsed.Hours())), "hour")
	}
	return plural(int(math.Ceil(elapsed.Hours()/24)), "day")
}

// TimeAgoString parses s before formatting it with TimeAgo.
func TimeAgoString(s string, now time.Time) string {
	t, ok := domain.ParseTimestamp(s)
	if !ok {
		return unknownTime
	}
	return TimeAgo(&t, now)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

func activity(kind, msg string, at *time.Time, now time.Time) ActivityEntry {
	return ActivityEntry{Kind: kind, Message: msg, Time: TimeAgo(at, now), At: at}
}

// newestFirst returns indexes 0..n-1 ordered by timestamp, newest first.
// Records without a timestamp go last in input order.
func newestFirst(n int, at func(int) *time.Time) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return newer(at(idx[a]), at(idx[b])) })
	return idx
}

func newer(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}

func truncateName(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= engagementNameLen {
		return string(r)
	}
	return string(r[:engagementNameLen]) + "..."
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
