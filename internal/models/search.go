package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortByTitle     = "title"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"

	DateRangeTypeCreated = "created"
	DateRangeTypeUpdated = "updated"
)

type DateRangeFilter struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
	// Type selects which timestamp the range applies to: "created" or
	// "updated".
	Type string `json:"type"`
}

// SearchFilters is the composite filter set: tags are AND semantics,
// authors are OR semantics, the date range is inclusive on whichever
// bound is present, and free text matches title or description.
type SearchFilters struct {
	Tags      []uuid.UUID      `json:"tags"`
	Authors   []uuid.UUID      `json:"authors"`
	DateRange *DateRangeFilter `json:"date_range"`
	Text      string           `json:"text"`
	SortBy    string           `json:"sort_by"`
	SortOrder string           `json:"sort_order"`
}

type TagResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Color      *string   `json:"color"`
	UsageCount int       `json:"usage_count"`
}

type WhiteboardSearchResult struct {
	ID                uuid.UUID     `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	Creator           UserSummary   `json:"creator"`
	Tags              []TagResponse `json:"tags"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
	IsPublic          bool          `json:"is_public"`
	CollaboratorCount int           `json:"collaborator_count"`
}

type SearchResponse struct {
	Results  []WhiteboardSearchResult `json:"results"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
	HasNext  bool                     `json:"has_next"`
}
