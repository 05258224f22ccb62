package access

import (
	"testing"

	"collabboard/internal/enums"
	"collabboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func board(owner uuid.UUID, public bool) *models.Whiteboard {
	wb := &models.Whiteboard{OwnerID: owner, IsPublic: public}
	wb.ID = uuid.New()
	return wb
}

func grant(wb *models.Whiteboard, user uuid.UUID, level enums.Permission) *models.WhiteboardCollaborator {
	return &models.WhiteboardCollaborator{
		ID:           uuid.New(),
		WhiteboardID: wb.ID,
		UserID:       user,
		Permission:   level,
	}
}

func TestOwnerHasAllPermissions(t *testing.T) {
	owner := uuid.New()
	wb := board(owner, false)

	assert.True(t, CanView(wb, owner, nil))
	assert.True(t, CanEdit(wb, owner, nil))
	assert.True(t, CanAdmin(wb, owner, nil))
}

func TestPublicBoardIsViewOnlyForStrangers(t *testing.T) {
	stranger := uuid.New()
	wb := board(uuid.New(), true)

	assert.True(t, CanView(wb, stranger, nil))
	assert.False(t, CanEdit(wb, stranger, nil))
	assert.False(t, CanAdmin(wb, stranger, nil))
}

func TestPrivateBoardDeniesStrangers(t *testing.T) {
	stranger := uuid.New()
	wb := board(uuid.New(), false)

	assert.False(t, CanView(wb, stranger, nil))
	assert.False(t, CanEdit(wb, stranger, nil))
	assert.False(t, CanAdmin(wb, stranger, nil))
}

func TestGrantLevels(t *testing.T) {
	user := uuid.New()
	wb := board(uuid.New(), false)

	cases := []struct {
		level             enums.Permission
		view, edit, admin bool
	}{
		{enums.PermissionView, true, false, false},
		{enums.PermissionEdit, true, true, false},
		{enums.PermissionAdmin, true, true, true},
	}
	for _, tc := range cases {
		g := grant(wb, user, tc.level)
		assert.Equal(t, tc.view, CanView(wb, user, g), "view for %s", tc.level)
		assert.Equal(t, tc.edit, CanEdit(wb, user, g), "edit for %s", tc.level)
		assert.Equal(t, tc.admin, CanAdmin(wb, user, g), "admin for %s", tc.level)
	}
}

func TestForeignGrantIsIgnored(t *testing.T) {
	user := uuid.New()
	wb := board(uuid.New(), false)
	other := board(uuid.New(), false)

	// Grant on a different board must not open this one.
	g := grant(other, user, enums.PermissionAdmin)
	assert.False(t, CanView(wb, user, g))
	assert.False(t, CanEdit(wb, user, g))
	assert.False(t, CanAdmin(wb, user, g))

	// Grant belonging to a different user must not open it either.
	g2 := grant(wb, uuid.New(), enums.PermissionAdmin)
	assert.False(t, CanView(wb, user, g2))
}

func TestFailsClosedOnMissingInputs(t *testing.T) {
	assert.False(t, CanView(nil, uuid.New(), nil))
	assert.False(t, CanEdit(nil, uuid.New(), nil))
	assert.False(t, CanAdmin(nil, uuid.New(), nil))
	assert.False(t, CanView(board(uuid.New(), true), uuid.Nil, nil))
}
