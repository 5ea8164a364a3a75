// Package quality scores individual survey responses for signs of low-effort
// completion: answering too fast, straight-lining and skipping questions.
package quality
