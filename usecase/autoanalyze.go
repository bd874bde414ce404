package usecase

import (
	"context"
	"fmt"
	"log"
)

// AutoAnalyzeResult reports a run across all users.
type AutoAnalyzeResult struct {
	Message    string `json:"message"`
	Analyzed   int    `json:"analyzed"`
	Errors     int    `json:"errors"`
	TotalUsers int    `json:"total_users"`
}

// AnalyzeAllUsers runs the analysis for every user that owns tasks. A
// failing user is counted and skipped so one bad account cannot stall the
// whole cron run.
func (svc *AnalysisService) AnalyzeAllUsers(ctx context.Context) (*AutoAnalyzeResult, error) {
	userIDs, err := svc.tasks.DistinctUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with tasks: %w", err)
	}

	result := &AutoAnalyzeResult{TotalUsers: len(userIDs)}
	for _, userID := range userIDs {
		if _, err := svc.AnalyzeAndSuggest(ctx, userID); err != nil {
			result.Errors++
			log.Printf("auto-analysis failed for user %s: %v", userID, err)
			continue
		}
		result.Analyzed++
	}

	result.Message = fmt.Sprintf("Auto-analysis complete: %d users analyzed, %d errors", result.Analyzed, result.Errors)
	return result, nil
}
