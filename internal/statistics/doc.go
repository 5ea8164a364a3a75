// Package statistics aggregates completion and timing statistics over a
// response set and builds the per-question rollups that insight generation
// and exports read.
//
// Every function operates on a caller supplied snapshot and keeps no state.
package statistics
