// Package store defines the persistence boundary for issues and admin
// accounts. Implementations must make status transitions atomic: the
// unresolved-precondition check and the mutation happen in a single
// compare-and-set, so two admins racing to resolve the same issue see exactly
// one winner.
package store

import (
	"context"

	"cofix-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueStore is the durable keyed storage for issues.
type IssueStore interface {
	// CreateIssue persists a new issue, assigning its ID, and returns the
	// stored copy.
	CreateIssue(ctx context.Context, issue *models.Issue) (*models.Issue, error)

	// GetIssue returns the issue with the given ID, or models.ErrNotFound.
	GetIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error)

	// ListIssues returns a point-in-time snapshot of all issues, oldest first.
	ListIssues(ctx context.Context) ([]models.Issue, error)

	// ListIssuesByReporter returns the issues submitted by the given email.
	ListIssuesByReporter(ctx context.Context, email string) ([]models.Issue, error)

	// SetStatus atomically moves an unresolved issue to the given non-terminal
	// status. Returns models.ErrNotFound for an unknown ID and
	// models.ErrInvalidTransition when the issue is already resolved.
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus) (*models.Issue, error)

	// Resolve atomically flips an unresolved issue to resolved and attaches
	// the resolution record in the same write. Returns models.ErrNotFound for
	// an unknown ID and models.ErrAlreadyResolved when the issue was resolved
	// before this call; the prior resolution is never overwritten.
	Resolve(ctx context.Context, id primitive.ObjectID, res models.Resolution) (*models.Issue, error)
}

// AdminStore persists administrator accounts and their resolution counters.
type AdminStore interface {
	CreateAdmin(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error)

	// GetAdminByEmail returns the admin account, or models.ErrNotFound.
	GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error)

	// IncrementResolved credits one resolved issue to the admin's counter.
	IncrementResolved(ctx context.Context, email string) error
}
