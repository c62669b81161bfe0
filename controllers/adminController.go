package controllers

import (
	"context"
	"net/http"
	"time"

	"cofix-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetAllIssues retrieves all issues filtered by category and status for triage
func GetAllIssues(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	status := c.DefaultQuery("status", "all")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues, err := issueService.ListIssues(ctx, category, status)
	if err != nil {
		respondError(c, err)
		return
	}
	if issues == nil {
		issues = []models.Issue{}
	}

	c.JSON(http.StatusOK, issues)
}

// UpdateIssueStatus performs an administrative status change on an issue
func UpdateIssueStatus(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := issueService.UpdateStatus(ctx, issueID, input.Status, c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// ResolveIssue closes an issue with resolution evidence
func ResolveIssue(c *gin.Context) {
	issueID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Description string  `json:"description"`
		Image       *string `json:"image,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issue, err := issueService.ResolveIssue(ctx, issueID, input.Description, input.Image, c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// GetDashboardStats returns the aggregated statistics for the admin dashboard
func GetDashboardStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := issueService.DashboardStats(ctx, c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetAdminProfile returns the admin account with its resolved-issues counter
func GetAdminProfile(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := issueService.AdminProfile(ctx, c.GetString("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}
