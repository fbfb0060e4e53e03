// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// WebResult is one hit from the general web-search backend.
type WebResult struct {
	Title   string `json:"title" yaml:"title"`
	Snippet string `json:"snippet" yaml:"snippet"`
	Link    string `json:"link" yaml:"link"`
}

// WebPage is the normalized payload of a single web-search query. Items keep
// the backend's ranking order.
type WebPage struct {
	Items        []WebResult `json:"items" yaml:"items"`
	TotalResults string      `json:"totalResults" yaml:"total_results"`
	SearchTime   string      `json:"searchTime" yaml:"search_time"`
}

// EmptyWebPage is returned when the backend is not configured or the call failed.
func EmptyWebPage() WebPage {
	return WebPage{Items: []WebResult{}, TotalResults: "0", SearchTime: "0"}
}

// RepoResult is one repository from the code-repository search backend.
type RepoResult struct {
	Name        string   `json:"name" yaml:"name"`
	FullName    string   `json:"fullName" yaml:"full_name"`
	Description string   `json:"description" yaml:"description"`
	Stars       int      `json:"stars" yaml:"stars"`
	Language    string   `json:"language" yaml:"language"`
	URL         string   `json:"url" yaml:"url"`
	Topics      []string `json:"topics" yaml:"topics"`
}

// RepoPage is the normalized payload of a single repository query, ordered
// by stars descending as returned by the backend.
type RepoPage struct {
	Repositories []RepoResult `json:"repositories" yaml:"repositories"`
	TotalCount   int          `json:"totalCount" yaml:"total_count"`
}

// EmptyRepoPage is returned when the backend is not configured or the call failed.
func EmptyRepoPage() RepoPage {
	return RepoPage{Repositories: []RepoResult{}}
}

// PaperResult is one entry of the preprint feed.
type PaperResult struct {
	Title     string   `json:"title" yaml:"title"`
	Summary   string   `json:"summary" yaml:"summary"`
	Authors   []string `json:"authors" yaml:"authors"`
	Published string   `json:"published" yaml:"published"`
	Link      string   `json:"link" yaml:"link"`
}

// PaperFeed is the normalized payload of a single preprint query.
type PaperFeed struct {
	Papers []PaperResult `json:"papers" yaml:"papers"`
}

// EmptyPaperFeed is returned when the call failed.
func EmptyPaperFeed() PaperFeed {
	return PaperFeed{Papers: []PaperResult{}}
}
