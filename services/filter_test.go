package services

import (
	"slices"
	"testing"

	"cofix-be/models"
)

func issueWith(category models.IssueCategory, status models.IssueStatus) models.Issue {
	return models.Issue{
		Title:       string(category) + "/" + string(status),
		Category:    category,
		Status:      status,
		BenefitType: models.CommunityIssue,
	}
}

func TestFilterIssues_WildcardIsIdentity(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issueWith(models.RoadProblems, models.Pending),
		issueWith(models.WaterSupply, models.Resolved),
		issueWith(models.StreetLights, models.InProgress),
	}

	got := slices.Collect(FilterIssues(issues, "all", "all"))
	if len(got) != len(issues) {
		t.Fatalf("len = %d, want %d", len(got), len(issues))
	}
	for i := range issues {
		if got[i].Title != issues[i].Title {
			t.Errorf("order changed at %d: got %q, want %q", i, got[i].Title, issues[i].Title)
		}
	}
}

func TestFilterIssues_EmptyFiltersActAsWildcards(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issueWith(models.RoadProblems, models.Pending),
		issueWith(models.WaterSupply, models.Resolved),
	}
	if got := slices.Collect(FilterIssues(issues, "", "")); len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
}

func TestFilterIssues_Conjunctive(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issueWith(models.RoadProblems, models.Pending),
		issueWith(models.RoadProblems, models.Resolved),
		issueWith(models.WaterSupply, models.Pending),
	}

	got := slices.Collect(FilterIssues(issues, "Road Problems", "pending"))
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].Category != models.RoadProblems || got[0].Status != models.Pending {
		t.Errorf("got %q/%q, want Road Problems/pending", got[0].Category, got[0].Status)
	}
}

func TestFilterIssues_SingleAxis(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issueWith(models.RoadProblems, models.Pending),
		issueWith(models.RoadProblems, models.Resolved),
		issueWith(models.WaterSupply, models.Pending),
	}

	if got := slices.Collect(FilterIssues(issues, "Road Problems", "all")); len(got) != 2 {
		t.Errorf("category filter: len = %d, want 2", len(got))
	}
	if got := slices.Collect(FilterIssues(issues, "all", "pending")); len(got) != 2 {
		t.Errorf("status filter: len = %d, want 2", len(got))
	}
}

func TestFilterIssues_ExactMatchNotNormalized(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{issueWith(models.RoadProblems, models.Pending)}
	if got := slices.Collect(FilterIssues(issues, "road problems", "all")); len(got) != 0 {
		t.Errorf("case-insensitive match leaked into the filter layer")
	}
	if got := slices.Collect(FilterIssues(issues, "all", "Pending")); len(got) != 0 {
		t.Errorf("status matching should be exact at this layer")
	}
}

func TestFilterIssues_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issueWith(models.RoadProblems, models.Pending),
		issueWith(models.WaterSupply, models.Resolved),
	}
	before := make([]models.Issue, len(issues))
	copy(before, issues)

	_ = slices.Collect(FilterIssues(issues, "Water Supply", "resolved"))

	for i := range before {
		if issues[i].Title != before[i].Title || issues[i].Status != before[i].Status {
			t.Fatal("input slice was mutated")
		}
	}
}

func TestFilterIssues_LazyStopsOnYieldFalse(t *testing.T) {
	t.Parallel()

	issues := []models.Issue{
		issueWith(models.RoadProblems, models.Pending),
		issueWith(models.RoadProblems, models.Pending),
		issueWith(models.RoadProblems, models.Pending),
	}

	seen := 0
	for range FilterIssues(issues, "all", "all") {
		seen++
		break
	}
	if seen != 1 {
		t.Fatalf("seen = %d, want 1", seen)
	}
}
