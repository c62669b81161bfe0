package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"cofix-be/config"
	"cofix-be/models"
	"cofix-be/services"
	"cofix-be/store/mongostore"

	"github.com/gin-gonic/gin"
)

var issueService *services.IssueService = newIssueService()

func newIssueService() *services.IssueService {
	st := mongostore.New(config.ConnectDB())
	limit, _ := strconv.Atoi(os.Getenv("RECENT_ACTIVITY_LIMIT"))
	return services.NewIssueService(st, st, limit)
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAlreadyResolved), errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrMissingEvidence), errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Issue store unavailable, please retry"})
	default:
		log.Println("Unexpected error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// ReportIssue handles a citizen submitting a new issue or scheme request
func ReportIssue(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string          `json:"title" binding:"required,max=200"`
		Description string          `json:"description" binding:"required,max=1000"`
		Category    string          `json:"category"`
		BenefitType string          `json:"benefitType" binding:"required"`
		SchemeName  string          `json:"schemeName"`
		Location    models.Location `json:"location"`
		Urgency     string          `json:"urgency"`
		Image       *string         `json:"image,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue := &models.Issue{
		Title:       input.Title,
		Description: input.Description,
		Category:    models.IssueCategory(input.Category),
		BenefitType: models.BenefitType(input.BenefitType),
		SchemeName:  input.SchemeName,
		Location:    input.Location,
		Urgency:     models.Urgency(input.Urgency),
		UserEmail:   email,
		Image:       input.Image,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := issueService.SubmitIssue(ctx, issue)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetMyIssues retrieves all issues reported by the authenticated user
func GetMyIssues(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := issueService.IssuesByReporter(ctx, email)
	if err != nil {
		respondError(c, err)
		return
	}
	if issues == nil {
		issues = []models.Issue{}
	}

	c.JSON(http.StatusOK, issues)
}

// RecentIssues returns the most recent geotagged issues for the map view
func RecentIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	limit := 20

	issues, err := issueService.RecentIssues(ctx, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	type pin struct {
		ID        string    `json:"id"`
		Title     string    `json:"title"`
		Lat       float64   `json:"lat"`
		Lng       float64   `json:"lng"`
		Category  string    `json:"category,omitempty"`
		CreatedAt time.Time `json:"createdAt"`
	}

	pins := make([]pin, 0, len(issues))
	for _, issue := range issues {
		pins = append(pins, pin{
			ID:        issue.ID.Hex(),
			Title:     issue.Title,
			Lat:       issue.Location.Lat,
			Lng:       issue.Location.Lng,
			Category:  string(issue.Category),
			CreatedAt: issue.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, pins)
}
