// Package events maps committed workflow transitions to typed events for
// external consumers.
package events
