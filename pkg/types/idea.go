// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the innovation-engine pipeline:
// the submitted idea, normalized search results, the intelligence bundle, and
// evaluation and performance-test records.
package types

import (
	"strings"
	"time"
)

// IdeaStatus tracks where an idea is in the evaluation lifecycle.
type IdeaStatus string

const (
	StatusPending   IdeaStatus = "pending"
	StatusAnalyzing IdeaStatus = "analyzing"
	StatusCompleted IdeaStatus = "completed"
	StatusError     IdeaStatus = "error"
)

// InnovationIdea is the user-submitted concept being evaluated. It is created
// once on submission and never modified by downstream stages.
type InnovationIdea struct {
	// ID identifies the idea; a UUID is assigned when the caller omits one.
	ID string `json:"id" yaml:"id"`

	// Title is the short name of the idea. Keyword matching is done on it.
	Title string `json:"title" yaml:"title"`

	// Description is the free-text pitch.
	Description string `json:"description" yaml:"description"`

	// Category is a broad industry label (e.g. "Healthcare", "Technology").
	Category string `json:"category" yaml:"category"`

	SubmittedAt time.Time  `json:"submittedAt" yaml:"submitted_at"`
	Status      IdeaStatus `json:"status" yaml:"status"`
}

// FirstTitleWord returns the lowercased first space-separated word of the
// title, or "" for an empty title.
func (i InnovationIdea) FirstTitleWord() string {
	fields := strings.Fields(i.Title)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
