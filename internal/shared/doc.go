// Package shared provides small helpers and test utilities used across the
// survey analytics packages.
//
// It should only contain generic helpers with no domain logic (such as the
// rounding used by every statistic we report) and test utilities under
// testutil. It must not import other internal packages.
//
// Example usage:
//
//	rate := shared.Round(100*float64(completed)/float64(total), 2)
package shared
