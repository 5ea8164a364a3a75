package statistics

import (
	"sort"

	"surveypulse/internal/shared"
	"surveypulse/pkg/contracts/domain"
)

// CompletionRate returns completed/total as a percentage rounded to 2 decimals
func CompletionRate(total, completed int) float64 {
	if total == 0 {
		return 0
	}
	return shared.Percent(float64(completed), float64(total), 2)
}

// AverageTime returns the arithmetic mean rounded to 2 decimals, 0 when empty
func AverageTime(times []float64) float64 {
	if len(times) == 0 {
		return 0
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return shared.Round(sum/float64(len(times)), 2)
}

// MedianTime returns the median rounded to 2 decimals, 0 when empty.
// Even-length input averages the two middle values.
func MedianTime(times []float64) float64 {
	if len(times) == 0 {
		return 0
	}
	return shared.Round(median(times), 2)
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Aggregate computes ResponseStats for a response set. Every response that is
// not completed counts as abandoned; timing uses completed responses that
// report a positive completion time.
func Aggregate(responses []domain.Response) domain.ResponseStats {
	stats := domain.ResponseStats{Total: len(responses)}

	times := make([]float64, 0, len(responses))
	for _, r := range responses {
		if !r.IsCompleted() {
			continue
		}
		stats.Completed++
		if r.Metadata.CompletionTime > 0 {
			times = append(times, r.Metadata.CompletionTime)
		}
	}

	stats.Abandoned = stats.Total - stats.Completed
	stats.CompletionRate = CompletionRate(stats.Total, stats.Completed)
	stats.AverageCompletionTime = AverageTime(times)
	stats.MedianCompletionTime = MedianTime(times)

	return stats
}

// FilterByDateRange keeps responses submitted inside the range. Responses
// without a submission time are kept only when the range is unbounded.
func FilterByDateRange(responses []domain.Response, dr domain.DateRange) []domain.Response {
	if dr.IsZero() {
		return responses
	}

	filtered := make([]domain.Response, 0, len(responses))
	for _, r := range responses {
		if r.Metadata.SubmittedAt == nil {
			continue
		}
		if dr.Contains(*r.Metadata.SubmittedAt) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
