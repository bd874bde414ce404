package usecase

import (
	"context"
	"sort"

	"main/model"
)

// PatternService derives behavioral patterns from task history. Pure
// computation over the inputs; the only side effect is the pattern upsert.
type PatternService struct {
	patterns PatternStore
}

func NewPatternService(patterns PatternStore) *PatternService {
	return &PatternService{patterns: patterns}
}

// UpdateUserPatterns recomputes both pattern types from the given snapshot.
// Upsert semantics make this idempotent for identical inputs.
func (svc *PatternService) UpdateUserPatterns(ctx context.Context, userID string, tasks []*model.Task, analytics []*model.AnalyticsEntry) error {
	if hours := ProductiveHours(analytics); len(hours) > 0 {
		err := svc.patterns.UpsertPattern(ctx, &model.Pattern{
			UserID:          userID,
			PatternType:     model.PatternProductiveHours,
			PatternData:     model.PatternData{Hours: hours},
			ConfidenceScore: 0.7,
		})
		if err != nil {
			return err
		}
	}

	if prefs := CategoryPreferences(tasks); len(prefs) > 0 {
		err := svc.patterns.UpsertPattern(ctx, &model.Pattern{
			UserID:          userID,
			PatternType:     model.PatternCategoryPreference,
			PatternData:     model.PatternData{Preferences: prefs},
			ConfidenceScore: 0.8,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// ProductiveHours histograms completion hour-of-day and returns the top 3
// hours by count, ties broken by hour ascending so runs are reproducible.
func ProductiveHours(analytics []*model.AnalyticsEntry) []int {
	counts := make(map[int]int)
	for _, entry := range analytics {
		hour := entry.CompletedTime.Hour()
		counts[hour]++
	}
	if len(counts) == 0 {
		return nil
	}

	hours := make([]int, 0, len(counts))
	for hour := range counts {
		hours = append(hours, hour)
	}
	sort.Slice(hours, func(i, j int) bool {
		if counts[hours[i]] != counts[hours[j]] {
			return counts[hours[i]] > counts[hours[j]]
		}
		return hours[i] < hours[j]
	})

	if len(hours) > 3 {
		hours = hours[:3]
	}
	return hours
}

// CategoryPreferences counts tasks per non-empty category and returns the
// top 5 by count, ties broken by category name ascending.
func CategoryPreferences(tasks []*model.Task) []model.CategoryPreference {
	counts := make(map[string]int)
	for _, task := range tasks {
		if task.Category != "" {
			counts[task.Category]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	prefs := make([]model.CategoryPreference, 0, len(counts))
	for category, count := range counts {
		prefs = append(prefs, model.CategoryPreference{Category: category, Count: count})
	}
	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].Count != prefs[j].Count {
			return prefs[i].Count > prefs[j].Count
		}
		return prefs[i].Category < prefs[j].Category
	})

	if len(prefs) > 5 {
		prefs = prefs[:5]
	}
	return prefs
}
