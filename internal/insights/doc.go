// Package insights turns an analytics bundle into a narrative summary,
// ordered findings, recommendations and a sentiment overview.
//
// Findings and recommendations are tables of rules. Each rule is evaluated
// on its own and appended in table order when its predicate holds.
package insights
