// Package mongostore implements the store interfaces on MongoDB. Status
// transitions use FindOneAndUpdate with an unresolved-status guard in the
// query filter, so the precondition check and the mutation are a single
// atomic operation on the server.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"cofix-be/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists issues and admin accounts in MongoDB.
type Store struct {
	issues *mongo.Collection
	admins *mongo.Collection
}

// New wraps the given database's issues and admins collections.
func New(db *mongo.Database) *Store {
	return &Store{
		issues: db.Collection("issues"),
		admins: db.Collection("admins"),
	}
}

// wrapErr translates driver errors into the domain taxonomy. Timeouts and
// network failures become ErrUnavailable so callers know the write may be
// retried after re-reading state.
func wrapErr(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.ErrNotFound
	case mongo.IsTimeout(err), mongo.IsNetworkError(err), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %v", models.ErrUnavailable, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// CreateIssue inserts a new issue, assigning an ID if absent.
func (s *Store) CreateIssue(ctx context.Context, issue *models.Issue) (*models.Issue, error) {
	cp := *issue
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	if _, err := s.issues.InsertOne(ctx, cp); err != nil {
		return nil, wrapErr("insert issue", err)
	}
	return &cp, nil
}

// GetIssue returns the issue with the given ID.
func (s *Store) GetIssue(ctx context.Context, id primitive.ObjectID) (*models.Issue, error) {
	var issue models.Issue
	if err := s.issues.FindOne(ctx, bson.M{"_id": id}).Decode(&issue); err != nil {
		return nil, wrapErr("find issue", err)
	}
	return &issue, nil
}

// ListIssues returns all issues, oldest first.
func (s *Store) ListIssues(ctx context.Context) ([]models.Issue, error) {
	return s.findIssues(ctx, bson.M{})
}

// ListIssuesByReporter returns the issues submitted by the given email.
func (s *Store) ListIssuesByReporter(ctx context.Context, email string) ([]models.Issue, error) {
	return s.findIssues(ctx, bson.M{"userEmail": email})
}

func (s *Store) findIssues(ctx context.Context, filter bson.M) ([]models.Issue, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.issues.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr("find issues", err)
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, wrapErr("decode issues", err)
	}
	return issues, nil
}

// SetStatus moves an unresolved issue to a non-terminal status. The resolved
// guard lives in the query filter, so a concurrently resolved issue is never
// reverted.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus) (*models.Issue, error) {
	if status == models.Resolved {
		return nil, models.ErrInvalidTransition
	}

	filter := bson.M{"_id": id, "status": bson.M{"$ne": models.Resolved}}
	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var issue models.Issue
	err := s.issues.FindOneAndUpdate(ctx, filter, update, opts).Decode(&issue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// No unresolved issue matched: either the ID is unknown or the
		// issue is already terminal. Re-read to tell the two apart.
		if _, gerr := s.GetIssue(ctx, id); gerr != nil {
			return nil, gerr
		}
		return nil, models.ErrInvalidTransition
	}
	if err != nil {
		return nil, wrapErr("update status", err)
	}
	return &issue, nil
}

// Resolve flips an unresolved issue to resolved and attaches the resolution
// record in the same write. The loser of a resolve race gets
// ErrAlreadyResolved and the winner's resolution is untouched.
func (s *Store) Resolve(ctx context.Context, id primitive.ObjectID, res models.Resolution) (*models.Issue, error) {
	filter := bson.M{"_id": id, "status": bson.M{"$ne": models.Resolved}}
	update := bson.M{"$set": bson.M{"status": models.Resolved, "resolution": res}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var issue models.Issue
	err := s.issues.FindOneAndUpdate(ctx, filter, update, opts).Decode(&issue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, gerr := s.GetIssue(ctx, id); gerr != nil {
			return nil, gerr
		}
		return nil, models.ErrAlreadyResolved
	}
	if err != nil {
		return nil, wrapErr("resolve issue", err)
	}
	return &issue, nil
}

// CreateAdmin inserts a new admin account.
func (s *Store) CreateAdmin(ctx context.Context, admin *models.AdminUser) (*models.AdminUser, error) {
	cp := *admin
	if cp.ID.IsZero() {
		cp.ID = primitive.NewObjectID()
	}
	if _, err := s.admins.InsertOne(ctx, cp); err != nil {
		return nil, wrapErr("insert admin", err)
	}
	return &cp, nil
}

// GetAdminByEmail returns the admin account with the given email.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.admins.FindOne(ctx, bson.M{"email": email}).Decode(&admin); err != nil {
		return nil, wrapErr("find admin", err)
	}
	return &admin, nil
}

// IncrementResolved credits one resolved issue to the admin's counter.
func (s *Store) IncrementResolved(ctx context.Context, email string) error {
	_, err := s.admins.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$inc": bson.M{"issuesResolved": 1}},
	)
	if err != nil {
		return wrapErr("increment resolved counter", err)
	}
	return nil
}
