package services

import (
	"testing"
	"time"

	"collabboard/internal/enums"
	"collabboard/internal/errs"
	"collabboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDefaultsAndHasNext(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	for i := 0; i < 25; i++ {
		f.board(t, owner, "board", true)
	}

	// zero page controls fall back to page 1, size 20
	response, err := f.search.Search(owner.ID, nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, response.Page)
	assert.Equal(t, 20, response.PageSize)
	assert.EqualValues(t, 25, response.Total)
	assert.Len(t, response.Results, 20)
	assert.True(t, response.HasNext)

	response, err = f.search.Search(owner.ID, nil, 2, 20)
	require.NoError(t, err)
	assert.Len(t, response.Results, 5)
	assert.False(t, response.HasNext)
}

func TestSearchValidationReportsEveryField(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -7)
	_, err := f.search.Search(owner.ID, &models.SearchFilters{
		SortBy:    "popularity",
		SortOrder: "sideways",
		DateRange: &models.DateRangeFilter{Start: &start, End: &end},
	}, -1, 500)

	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "sort_by")
	assert.Contains(t, ve.Fields, "sort_order")
	assert.Contains(t, ve.Fields, "date_range")
	assert.Contains(t, ve.Fields, "page")
	assert.Contains(t, ve.Fields, "page_size")
}

func TestSearchResultsAreHydrated(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	helper := f.user(t, "helper")

	board := f.board(t, owner, "design review", true)
	f.share(t, board, owner, helper, enums.PermissionEdit)

	tag, err := f.whiteboards.CreateTag(&models.CreateTagRequestBody{Name: "design"})
	require.NoError(t, err)
	require.NoError(t, f.whiteboards.AttachTag(board.ID, owner.ID, tag.ID))

	dropped, err := f.whiteboards.CreateTag(&models.CreateTagRequestBody{Name: "dropped"})
	require.NoError(t, err)
	require.NoError(t, f.whiteboards.AttachTag(board.ID, owner.ID, dropped.ID))
	require.NoError(t, f.whiteboards.DetachTag(board.ID, owner.ID, dropped.ID))

	response, err := f.search.Search(owner.ID, &models.SearchFilters{Text: "design"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, response.Results, 1)

	result := response.Results[0]
	assert.Equal(t, board.ID, result.ID)
	assert.Equal(t, owner.ID, result.Creator.ID)
	assert.Equal(t, owner.Name, result.Creator.Name)
	assert.Equal(t, 1, result.CollaboratorCount)
	require.Len(t, result.Tags, 1)
	assert.Equal(t, "design", result.Tags[0].Name)
}

func TestSearchScopingCannotBeBypassedByFilters(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")
	stranger := f.user(t, "stranger")

	private := f.board(t, owner, "private target", false)
	tag, err := f.whiteboards.CreateTag(&models.CreateTagRequestBody{Name: "design"})
	require.NoError(t, err)
	require.NoError(t, f.whiteboards.AttachTag(private.ID, owner.ID, tag.ID))

	// filters that point straight at the private board still return nothing
	response, err := f.search.Search(stranger.ID, &models.SearchFilters{
		Tags:    []uuid.UUID{tag.ID},
		Authors: []uuid.UUID{owner.ID},
		Text:    "private target",
	}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, response.Results)
	assert.Zero(t, response.Total)
}

func TestSearchSortOrder(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "owner")

	titles := []string{"charlie", "alpha", "bravo"}
	for _, title := range titles {
		f.board(t, owner, title, true)
	}

	response, err := f.search.Search(owner.ID, &models.SearchFilters{
		SortBy:    models.SortByTitle,
		SortOrder: models.SortOrderAsc,
	}, 1, 10)
	require.NoError(t, err)
	require.Len(t, response.Results, 3)
	assert.Equal(t, "alpha", response.Results[0].Title)
	assert.Equal(t, "bravo", response.Results[1].Title)
	assert.Equal(t, "charlie", response.Results[2].Title)
}

func TestVisibleTagsAndAuthors(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	viewer := f.user(t, "viewer")

	visible := f.board(t, alice, "visible", true)
	hidden := f.board(t, bob, "hidden", false)

	shown, err := f.whiteboards.CreateTag(&models.CreateTagRequestBody{Name: "shown"})
	require.NoError(t, err)
	require.NoError(t, f.whiteboards.AttachTag(visible.ID, alice.ID, shown.ID))
	secret, err := f.whiteboards.CreateTag(&models.CreateTagRequestBody{Name: "secret"})
	require.NoError(t, err)
	require.NoError(t, f.whiteboards.AttachTag(hidden.ID, bob.ID, secret.ID))

	tags, err := f.search.VisibleTags(viewer.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "shown", tags[0].Name)

	authors, err := f.search.VisibleAuthors(viewer.ID)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, alice.ID, authors[0].ID)
}
