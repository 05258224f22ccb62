package services

import (
	"collabboard/internal/errs"
	"collabboard/internal/models"
	"collabboard/internal/repositories"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchService runs the composite whiteboard search. Every query is
// scoped to what the caller may see before any filter applies.
type SearchService struct {
	whiteboardRepo *repositories.WhiteboardRepository
}

func NewSearchService(whiteboardRepo *repositories.WhiteboardRepository) *SearchService {
	return &SearchService{
		whiteboardRepo: whiteboardRepo,
	}
}

// normalize fills defaults and validates, reporting every problem at
// once keyed by field name.
func (ss *SearchService) normalize(filters *models.SearchFilters, page, pageSize int) (int, int, error) {
	ve := errs.NewValidationError()

	if filters.SortBy == "" {
		filters.SortBy = models.SortByUpdatedAt
	}
	switch filters.SortBy {
	case models.SortByCreatedAt, models.SortByUpdatedAt, models.SortByTitle:
	default:
		ve.Add("sort_by", "must be one of created_at, updated_at, title")
	}

	if filters.SortOrder == "" {
		filters.SortOrder = models.SortOrderDesc
	}
	if filters.SortOrder != models.SortOrderAsc && filters.SortOrder != models.SortOrderDesc {
		ve.Add("sort_order", "must be asc or desc")
	}

	if filters.DateRange != nil {
		dr := filters.DateRange
		if dr.Type == "" {
			dr.Type = models.DateRangeTypeCreated
		}
		if dr.Type != models.DateRangeTypeCreated && dr.Type != models.DateRangeTypeUpdated {
			ve.Add("date_range", "type must be created or updated")
		}
		if dr.Start != nil && dr.End != nil && dr.End.Before(*dr.Start) {
			ve.Add("date_range", "end must not be before start")
		}
	}

	if page == 0 {
		page = 1
	}
	if page < 1 {
		ve.Add("page", "must be at least 1")
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > maxPageSize {
		ve.Add("page_size", "must be between 1 and 100")
	}

	return page, pageSize, ve.ErrOrNil()
}

// Search executes the filter set and hydrates a result page. HasNext is
// derived from the total counted before pagination, so it stays correct
// on the last partial page.
func (ss *SearchService) Search(userID uuid.UUID, filters *models.SearchFilters, page, pageSize int) (*models.SearchResponse, error) {
	if filters == nil {
		filters = &models.SearchFilters{}
	}
	page, pageSize, err := ss.normalize(filters, page, pageSize)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	whiteboards, total, err := ss.whiteboardRepo.FindByFilters(userID, filters, pageSize, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(whiteboards))
	for i := range whiteboards {
		ids = append(ids, whiteboards[i].ID)
	}
	counts, err := ss.whiteboardRepo.CountCollaborators(ids)
	if err != nil {
		return nil, err
	}

	results := make([]models.WhiteboardSearchResult, 0, len(whiteboards))
	for i := range whiteboards {
		results = append(results, *toSearchResult(&whiteboards[i], counts[whiteboards[i].ID]))
	}

	return &models.SearchResponse{
		Results:  results,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasNext:  int64(page*pageSize) < total,
	}, nil
}

// VisibleTags lists tags in use on whiteboards visible to the caller,
// for populating the tag filter control.
func (ss *SearchService) VisibleTags(userID uuid.UUID) ([]models.TagResponse, error) {
	tags, err := ss.whiteboardRepo.DistinctTags(userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, toTagResponse(&tags[i]))
	}
	return out, nil
}

// VisibleAuthors lists owners of whiteboards visible to the caller, for
// populating the author filter control.
func (ss *SearchService) VisibleAuthors(userID uuid.UUID) ([]models.UserSummary, error) {
	users, err := ss.whiteboardRepo.DistinctAuthors(userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, *users[i].ToUserSummary())
	}
	return out, nil
}

func toSearchResult(whiteboard *models.Whiteboard, collaboratorCount int) *models.WhiteboardSearchResult {
	result := &models.WhiteboardSearchResult{
		ID:                whiteboard.ID,
		Title:             whiteboard.Title,
		Description:       whiteboard.Description,
		CreatedAt:         whiteboard.CreatedAt,
		UpdatedAt:         whiteboard.UpdatedAt,
		IsPublic:          whiteboard.IsPublic,
		CollaboratorCount: collaboratorCount,
		Tags:              []models.TagResponse{},
	}
	if whiteboard.Owner != nil {
		result.Creator = *whiteboard.Owner.ToUserSummary()
	}
	for i := range whiteboard.TagLinks {
		link := &whiteboard.TagLinks[i]
		if !link.Active() || link.Tag == nil {
			continue
		}
		result.Tags = append(result.Tags, toTagResponse(link.Tag))
	}
	return result
}

func toTagResponse(tag *models.Tag) models.TagResponse {
	return models.TagResponse{
		ID:         tag.ID,
		Name:       tag.Name,
		Color:      tag.Color,
		UsageCount: tag.UsageCount,
	}
}
