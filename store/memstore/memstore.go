// Package memstore provides an in-memory implementation of the store
// interfaces. Suitable for dev/testing; the mutex serializes status
// transitions the way the Mongo implementation's compare-and-set does.
package memstore

import (
	"context"
	"sync"
	"time"

	"cofix-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store holds issues and admin accounts in memory.
type Store struct {
	mu     sync.RWMutex
	issues map[primitive.ObjectID]*models.Issue
	order  []primitive.ObjectID // insertion order, oldest first
	admins map[string]*models.AdminUser
}

// New initializes an empty in-memory Store.
func New() *Store {
	return &Store{
		issues: make(map[primitive.ObjectID]*models.Issue),
		admins: make(map[string]*models.AdminUser),
	}
}

func cloneIssue(i *models.Issue) *models.Issue {
	cp := *i
	if i.Image != nil {
		img := *i.Image
		cp.Image = &img
	}
	if i.Resolution != nil {
		res := *i.Resolution
		if i.Resolution.Image != nil {
			img := *i.Resolution.Image
			res.Image = &img
		}
		cp.Resolution = &res
	}
	return &cp
}

// CreateIssue stores a copy of the issue, assigning an ID if absent.
func (s *Store) CreateIssue(_ context.Context, issue *models.Issue) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := cloneIssue(issue)
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	s.issues[cp.ID] = cp
	s.order = append(s.order, cp.ID)
	return cloneIssue(cp), nil
}

// GetIssue retrieves an issue by ID. Returns a copy.
func (s *Store) GetIssue(_ context.Context, id primitive.ObjectID) (*models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	issue, ok := s.issues[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneIssue(issue), nil
}

// ListIssues returns copies of all issues in insertion order.
func (s *Store) ListIssues(_ context.Context) ([]models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Issue, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *cloneIssue(s.issues[id]))
	}
	return out, nil
}

// ListIssuesByReporter returns copies of the issues submitted by email.
func (s *Store) ListIssuesByReporter(_ context.Context, email string) ([]models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Issue
	for _, id := range s.order {
		if s.issues[id].UserEmail == email {
			out = append(out, *cloneIssue(s.issues[id]))
		}
	}
	return out, nil
}

// SetStatus moves an unresolved issue to a non-terminal status.
func (s *Store) SetStatus(_ context.Context, id primitive.ObjectID, status models.IssueStatus) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !issue.Status.CanTransition(status) {
		return nil, models.ErrInvalidTransition
	}
	issue.Status = status
	return cloneIssue(issue), nil
}

// Resolve flips an unresolved issue to resolved, attaching the resolution.
func (s *Store) Resolve(_ context.Context, id primitive.ObjectID, res models.Resolution) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	issue, ok := s.issues[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if issue.Status == models.Resolved {
		return nil, models.ErrAlreadyResolved
	}
	issue.Status = models.Resolved
	issue.Resolution = &res
	return cloneIssue(issue), nil
}

// CreateAdmin stores a copy of the admin account.
func (s *Store) CreateAdmin(_ context.Context, admin *models.AdminUser) (*models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *admin
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	s.admins[cp.Email] = &cp
	out := cp
	return &out, nil
}

// GetAdminByEmail retrieves an admin account by email. Returns a copy.
func (s *Store) GetAdminByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.admins[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *admin
	return &cp, nil
}

// IncrementResolved credits one resolved issue to the admin's counter. A
// missing account is not an error; the resolution itself already succeeded.
func (s *Store) IncrementResolved(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if admin, ok := s.admins[email]; ok {
		admin.IssuesResolved++
	}
	return nil
}
