package services

import (
	"sort"
	"time"

	"cofix-be/models"
)

// DefaultRecentActivity is the recent-activity feed length when none is
// configured.
const DefaultRecentActivity = 10

// MonthCount is one bar of the monthly issues chart.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// StatusSlice is one slice of the dashboard breakdown chart.
type StatusSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ActivityEntry summarizes one issue in the recent-activity feed.
type ActivityEntry struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	UserEmail string `json:"userEmail"`
}

// DashboardStats is the aggregate view rendered by the admin dashboard.
type DashboardStats struct {
	TotalIssues         int             `json:"totalIssues"`
	PendingIssues       int             `json:"pendingIssues"`
	ResolvedIssues      int             `json:"resolvedIssues"`
	CommunityIssues     int             `json:"communityIssues"`
	GovernmentSchemes   int             `json:"governmentSchemes"`
	ResolutionRate      float64         `json:"resolutionRate"`
	AdminResolvedIssues int             `json:"adminResolvedIssues"`
	CriticalIssues      int             `json:"criticalIssues"`
	IssuesByMonth       []MonthCount    `json:"issuesByMonth"`
	IssuesByStatus      []StatusSlice   `json:"issuesByStatus"`
	RecentActivity      []ActivityEntry `json:"recentActivity"`
}

// ComputeStats derives dashboard statistics from a snapshot of issues. It is
// a pure function: issues created after asOf are outside the snapshot and
// ignored, an empty collection yields all zeros, and the input is never
// modified.
func ComputeStats(issues []models.Issue, asOf time.Time, recentLimit int) DashboardStats {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentActivity
	}

	stats := DashboardStats{
		IssuesByMonth:  []MonthCount{},
		RecentActivity: []ActivityEntry{},
	}

	months := make(map[time.Time]int)
	snapshot := make([]models.Issue, 0, len(issues))

	for _, issue := range issues {
		if issue.CreatedAt.After(asOf) {
			continue
		}
		snapshot = append(snapshot, issue)

		stats.TotalIssues++
		switch issue.Status {
		case models.Pending:
			stats.PendingIssues++
		case models.Resolved:
			stats.ResolvedIssues++
		}
		switch issue.BenefitType {
		case models.CommunityIssue:
			stats.CommunityIssues++
		case models.GovernmentScheme:
			stats.GovernmentSchemes++
		}
		if issue.Urgency == models.High && issue.Status != models.Resolved {
			stats.CriticalIssues++
		}
		if issue.Resolution != nil && issue.Resolution.ResolvedBy != "" {
			stats.AdminResolvedIssues++
		}

		month := time.Date(issue.CreatedAt.Year(), issue.CreatedAt.Month(), 1, 0, 0, 0, 0, time.UTC)
		months[month]++
	}

	if stats.TotalIssues > 0 {
		stats.ResolutionRate = float64(stats.ResolvedIssues) / float64(stats.TotalIssues)
	}

	keys := make([]time.Time, 0, len(months))
	for month := range months {
		keys = append(keys, month)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	for _, month := range keys {
		stats.IssuesByMonth = append(stats.IssuesByMonth, MonthCount{
			Month: month.Format("Jan 2006"),
			Count: months[month],
		})
	}

	// The dashboard pie chart mixes the status and benefit-type axes in one
	// four-slice breakdown. Kept intentionally: the frontend renders exactly
	// these four slices.
	stats.IssuesByStatus = []StatusSlice{
		{Name: "Pending", Value: stats.PendingIssues},
		{Name: "Resolved", Value: stats.ResolvedIssues},
		{Name: "Community", Value: stats.CommunityIssues},
		{Name: "Government", Value: stats.GovernmentSchemes},
	}

	stats.RecentActivity = recentActivity(snapshot, recentLimit)
	return stats
}

// activityTime is when the issue last changed in a user-visible way: its
// resolution time when resolved, its creation time otherwise.
func activityTime(issue models.Issue) time.Time {
	if issue.Resolution != nil && issue.Resolution.ResolvedAt.After(issue.CreatedAt) {
		return issue.Resolution.ResolvedAt
	}
	return issue.CreatedAt
}

func recentActivity(issues []models.Issue, limit int) []ActivityEntry {
	sorted := make([]models.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return activityTime(sorted[i]).After(activityTime(sorted[j]))
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	entries := make([]ActivityEntry, 0, len(sorted))
	for _, issue := range sorted {
		entries = append(entries, ActivityEntry{
			ID:        issue.ID.Hex(),
			Title:     issue.Title,
			Type:      string(issue.BenefitType),
			Status:    string(issue.Status),
			Date:      activityTime(issue).Format(time.RFC3339),
			UserEmail: issue.UserEmail,
		})
	}
	return entries
}
