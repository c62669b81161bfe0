package services

import (
	"testing"
	"time"

	"cofix-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return ts
}

func TestComputeStats_EmptyCollection(t *testing.T) {
	t.Parallel()

	stats := ComputeStats(nil, time.Now(), 0)

	if stats.TotalIssues != 0 {
		t.Errorf("TotalIssues = %d, want 0", stats.TotalIssues)
	}
	if stats.ResolutionRate != 0 {
		t.Errorf("ResolutionRate = %v, want 0", stats.ResolutionRate)
	}
	if len(stats.IssuesByMonth) != 0 {
		t.Errorf("IssuesByMonth = %v, want empty", stats.IssuesByMonth)
	}
	if len(stats.RecentActivity) != 0 {
		t.Errorf("RecentActivity = %v, want empty", stats.RecentActivity)
	}
	if len(stats.IssuesByStatus) != 4 {
		t.Errorf("IssuesByStatus has %d slices, want 4", len(stats.IssuesByStatus))
	}
}

func TestComputeStats_Counts(t *testing.T) {
	t.Parallel()

	now := mustTime(t, "2025-06-15T12:00:00Z")
	issues := []models.Issue{
		{
			ID: primitive.NewObjectID(), Title: "pothole",
			BenefitType: models.CommunityIssue, Category: models.RoadProblems,
			Status: models.Pending, Urgency: models.High,
			CreatedAt: mustTime(t, "2025-03-01T08:00:00Z"),
		},
		{
			ID: primitive.NewObjectID(), Title: "drain",
			BenefitType: models.CommunityIssue, Category: models.DrainageIssues,
			Status: models.InProgress, Urgency: models.Medium,
			CreatedAt: mustTime(t, "2025-03-20T08:00:00Z"),
		},
		{
			ID: primitive.NewObjectID(), Title: "lamp",
			BenefitType: models.CommunityIssue, Category: models.StreetLights,
			Status: models.Resolved, Urgency: models.High,
			CreatedAt: mustTime(t, "2025-04-02T08:00:00Z"),
			Resolution: &models.Resolution{
				Description: "bulb replaced",
				ResolvedAt:  mustTime(t, "2025-04-05T08:00:00Z"),
				ResolvedBy:  "admin@cofix.io",
			},
		},
		{
			ID: primitive.NewObjectID(), Title: "Rythu Bandhu",
			BenefitType: models.GovernmentScheme, SchemeName: "Rythu Bandhu",
			Status: models.Pending, Urgency: models.Low,
			CreatedAt: mustTime(t, "2025-05-10T08:00:00Z"),
		},
	}

	stats := ComputeStats(issues, now, 10)

	if stats.TotalIssues != 4 {
		t.Errorf("TotalIssues = %d, want 4", stats.TotalIssues)
	}
	if stats.PendingIssues != 2 {
		t.Errorf("PendingIssues = %d, want 2", stats.PendingIssues)
	}
	// in_progress is counted only in the total
	if stats.ResolvedIssues != 1 {
		t.Errorf("ResolvedIssues = %d, want 1", stats.ResolvedIssues)
	}
	if stats.CommunityIssues != 3 || stats.GovernmentSchemes != 1 {
		t.Errorf("Community/Government = %d/%d, want 3/1", stats.CommunityIssues, stats.GovernmentSchemes)
	}
	if stats.ResolutionRate != 0.25 {
		t.Errorf("ResolutionRate = %v, want 0.25", stats.ResolutionRate)
	}
	if stats.AdminResolvedIssues != 1 {
		t.Errorf("AdminResolvedIssues = %d, want 1", stats.AdminResolvedIssues)
	}
	// one high-urgency issue is already resolved, one is still pending
	if stats.CriticalIssues != 1 {
		t.Errorf("CriticalIssues = %d, want 1", stats.CriticalIssues)
	}
}

func TestComputeStats_ResolutionRateBounds(t *testing.T) {
	t.Parallel()

	now := time.Now()
	resolved := models.Issue{
		Status: models.Resolved, BenefitType: models.CommunityIssue,
		CreatedAt:  now.Add(-time.Hour),
		Resolution: &models.Resolution{Description: "d", ResolvedAt: now, ResolvedBy: "a@cofix.io"},
	}

	stats := ComputeStats([]models.Issue{resolved, resolved, resolved}, now, 10)
	if stats.ResolutionRate != 1 {
		t.Errorf("ResolutionRate = %v, want 1", stats.ResolutionRate)
	}
	if stats.ResolutionRate < 0 || stats.ResolutionRate > 1 {
		t.Errorf("ResolutionRate %v outside [0,1]", stats.ResolutionRate)
	}
}

func TestComputeStats_MonthsAscending(t *testing.T) {
	t.Parallel()

	now := mustTime(t, "2025-06-15T12:00:00Z")
	// deliberately out of order, spanning a year boundary
	created := []string{
		"2025-03-01T08:00:00Z",
		"2024-11-20T08:00:00Z",
		"2025-03-09T08:00:00Z",
		"2025-01-02T08:00:00Z",
	}
	issues := make([]models.Issue, 0, len(created))
	for _, ts := range created {
		issues = append(issues, models.Issue{
			BenefitType: models.CommunityIssue, Status: models.Pending,
			CreatedAt: mustTime(t, ts),
		})
	}

	stats := ComputeStats(issues, now, 10)

	want := []MonthCount{
		{Month: "Nov 2024", Count: 1},
		{Month: "Jan 2025", Count: 1},
		{Month: "Mar 2025", Count: 2},
	}
	if len(stats.IssuesByMonth) != len(want) {
		t.Fatalf("IssuesByMonth = %v, want %v", stats.IssuesByMonth, want)
	}
	for i := range want {
		if stats.IssuesByMonth[i] != want[i] {
			t.Errorf("IssuesByMonth[%d] = %v, want %v", i, stats.IssuesByMonth[i], want[i])
		}
	}
}

func TestComputeStats_StatusBreakdownSlices(t *testing.T) {
	t.Parallel()

	now := time.Now()
	issues := []models.Issue{
		{BenefitType: models.CommunityIssue, Status: models.Pending, CreatedAt: now.Add(-time.Hour)},
		{BenefitType: models.GovernmentScheme, SchemeName: "s", Status: models.Pending, CreatedAt: now.Add(-time.Hour)},
	}

	stats := ComputeStats(issues, now, 10)

	want := []StatusSlice{
		{Name: "Pending", Value: 2},
		{Name: "Resolved", Value: 0},
		{Name: "Community", Value: 1},
		{Name: "Government", Value: 1},
	}
	for i := range want {
		if stats.IssuesByStatus[i] != want[i] {
			t.Errorf("IssuesByStatus[%d] = %v, want %v", i, stats.IssuesByStatus[i], want[i])
		}
	}
}

func TestComputeStats_RecentActivityNewestFirst(t *testing.T) {
	t.Parallel()

	now := mustTime(t, "2025-06-15T12:00:00Z")
	old := models.Issue{
		ID: primitive.NewObjectID(), Title: "old", UserEmail: "a@x.io",
		BenefitType: models.CommunityIssue, Status: models.Pending,
		CreatedAt: mustTime(t, "2025-01-01T08:00:00Z"),
	}
	// created early but resolved recently, so it leads the feed
	resurrected := models.Issue{
		ID: primitive.NewObjectID(), Title: "resurrected", UserEmail: "b@x.io",
		BenefitType: models.CommunityIssue, Status: models.Resolved,
		CreatedAt: mustTime(t, "2025-01-05T08:00:00Z"),
		Resolution: &models.Resolution{
			Description: "fixed", ResolvedAt: mustTime(t, "2025-06-10T08:00:00Z"), ResolvedBy: "admin@cofix.io",
		},
	}
	fresh := models.Issue{
		ID: primitive.NewObjectID(), Title: "fresh", UserEmail: "c@x.io",
		BenefitType: models.GovernmentScheme, SchemeName: "s", Status: models.Pending,
		CreatedAt: mustTime(t, "2025-05-01T08:00:00Z"),
	}

	stats := ComputeStats([]models.Issue{old, resurrected, fresh}, now, 2)

	if len(stats.RecentActivity) != 2 {
		t.Fatalf("RecentActivity len = %d, want 2 (limit)", len(stats.RecentActivity))
	}
	if stats.RecentActivity[0].Title != "resurrected" {
		t.Errorf("RecentActivity[0].Title = %q, want %q", stats.RecentActivity[0].Title, "resurrected")
	}
	if stats.RecentActivity[1].Title != "fresh" {
		t.Errorf("RecentActivity[1].Title = %q, want %q", stats.RecentActivity[1].Title, "fresh")
	}
	if stats.RecentActivity[0].Type != string(models.CommunityIssue) {
		t.Errorf("Type = %q, want %q", stats.RecentActivity[0].Type, models.CommunityIssue)
	}
	if stats.RecentActivity[0].UserEmail != "b@x.io" {
		t.Errorf("UserEmail = %q, want %q", stats.RecentActivity[0].UserEmail, "b@x.io")
	}
}

func TestComputeStats_IgnoresIssuesAfterSnapshot(t *testing.T) {
	t.Parallel()

	asOf := mustTime(t, "2025-06-15T12:00:00Z")
	issues := []models.Issue{
		{BenefitType: models.CommunityIssue, Status: models.Pending, CreatedAt: asOf.Add(-time.Hour)},
		{BenefitType: models.CommunityIssue, Status: models.Pending, CreatedAt: asOf.Add(time.Hour)},
	}

	stats := ComputeStats(issues, asOf, 10)
	if stats.TotalIssues != 1 {
		t.Errorf("TotalIssues = %d, want 1", stats.TotalIssues)
	}
	if len(stats.RecentActivity) != 1 {
		t.Errorf("RecentActivity len = %d, want 1", len(stats.RecentActivity))
	}
}
