package services

import (
	"iter"

	"cofix-be/models"
)

// FilterWildcard matches any value in a filter position.
const FilterWildcard = "all"

// FilterIssues returns a lazy sequence of the issues matching both the
// category and the status predicate. "all" or an empty string acts as a
// wildcard; concrete values match by exact string equality (normalization
// happens at ingest, not here). Input order is preserved and the input slice
// is not modified.
func FilterIssues(issues []models.Issue, category, status string) iter.Seq[models.Issue] {
	matches := func(issue models.Issue) bool {
		if category != "" && category != FilterWildcard && string(issue.Category) != category {
			return false
		}
		if status != "" && status != FilterWildcard && string(issue.Status) != status {
			return false
		}
		return true
	}
	return func(yield func(models.Issue) bool) {
		for _, issue := range issues {
			if matches(issue) && !yield(issue) {
				return
			}
		}
	}
}
