// Package services holds the issue lifecycle, triage and aggregation logic
// behind the HTTP controllers.
package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sort"
	"strings"
	"time"

	"cofix-be/models"
	"cofix-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueService composes the issue store with the lifecycle, filter and
// aggregation logic. After creation, issues are only ever mutated through
// this service.
type IssueService struct {
	issues      store.IssueStore
	admins      store.AdminStore
	recentLimit int
}

// NewIssueService wires the service to its stores. recentLimit bounds the
// dashboard recent-activity feed; values <= 0 fall back to the default.
func NewIssueService(issues store.IssueStore, admins store.AdminStore, recentLimit int) *IssueService {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentActivity
	}
	return &IssueService{
		issues:      issues,
		admins:      admins,
		recentLimit: recentLimit,
	}
}

// SubmitIssue validates and stores a new citizen report. Status always starts
// pending and urgency defaults to medium.
func (s *IssueService) SubmitIssue(ctx context.Context, issue *models.Issue) (*models.Issue, error) {
	issue.Status = models.Pending
	issue.Resolution = nil
	if issue.Urgency == "" {
		issue.Urgency = models.Medium
	} else if urgency, ok := models.ParseUrgency(string(issue.Urgency)); ok {
		issue.Urgency = urgency
	}
	issue.CreatedAt = time.Now()
	if err := issue.Validate(); err != nil {
		return nil, err
	}
	return s.issues.CreateIssue(ctx, issue)
}

// ListIssues returns the current snapshot filtered by category and status.
// "all" or empty filters are wildcards; input order (oldest first) is kept.
func (s *IssueService) ListIssues(ctx context.Context, category, status string) ([]models.Issue, error) {
	all, err := s.issues.ListIssues(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Collect(FilterIssues(all, category, status)), nil
}

// IssuesByReporter returns the issues submitted by the given reporter email.
func (s *IssueService) IssuesByReporter(ctx context.Context, email string) ([]models.Issue, error) {
	return s.issues.ListIssuesByReporter(ctx, email)
}

// RecentIssues returns up to limit geotagged issues, newest first, for the
// public map feed.
func (s *IssueService) RecentIssues(ctx context.Context, limit int) ([]models.Issue, error) {
	all, err := s.issues.ListIssues(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// ResolveIssue transitions an issue to the terminal resolved state, recording
// the evidence and the resolving admin. Resolution happens at most once per
// issue: a second call fails with ErrAlreadyResolved and never overwrites the
// prior resolution.
func (s *IssueService) ResolveIssue(ctx context.Context, id primitive.ObjectID, description string, image *string, adminEmail string) (*models.Issue, error) {
	if adminEmail == "" {
		return nil, models.ErrUnauthorized
	}
	if strings.TrimSpace(description) == "" {
		return nil, models.ErrMissingEvidence
	}

	res := models.Resolution{
		Description: description,
		Image:       image,
		ResolvedAt:  time.Now(),
		ResolvedBy:  adminEmail,
	}
	issue, err := s.issues.Resolve(ctx, id, res)
	if err != nil {
		return nil, err
	}

	// The resolution is already durable; a failed counter update only skews
	// the admin's profile stat.
	if err := s.admins.IncrementResolved(ctx, adminEmail); err != nil {
		log.Printf("Failed to credit resolved issue to %s: %v", adminEmail, err)
	}
	return issue, nil
}

// UpdateStatus performs an administrative status change between non-terminal
// states. Setting resolved through this path is rejected; resolution requires
// evidence and must go through ResolveIssue.
func (s *IssueService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, adminEmail string) (*models.Issue, error) {
	if adminEmail == "" {
		return nil, models.ErrUnauthorized
	}
	target, ok := models.ParseStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}
	if target == models.Resolved {
		return nil, models.ErrInvalidTransition
	}
	return s.issues.SetStatus(ctx, id, target)
}

// DashboardStats aggregates all issues into the admin dashboard view. The
// admin identity gates access only; it does not filter the data.
func (s *IssueService) DashboardStats(ctx context.Context, adminEmail string) (*DashboardStats, error) {
	if adminEmail == "" {
		return nil, models.ErrUnauthorized
	}
	all, err := s.issues.ListIssues(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(all, time.Now(), s.recentLimit)
	return &stats, nil
}

// AdminProfile returns the admin account with its resolved-issues counter.
func (s *IssueService) AdminProfile(ctx context.Context, email string) (*models.AdminUser, error) {
	if email == "" {
		return nil, models.ErrUnauthorized
	}
	return s.admins.GetAdminByEmail(ctx, email)
}
