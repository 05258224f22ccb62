// Package access holds the pure permission predicates for whiteboards.
// All three checks fail closed: a missing whiteboard or grant answers
// false, never an error that could be mistaken for permission.
package access

import (
	"collabboard/internal/enums"
	"collabboard/internal/models"

	"github.com/google/uuid"
)

// CanView reports whether userID may view the whiteboard: the owner,
// anyone when the board is public, or any collaborator regardless of
// grant level.
func CanView(whiteboard *models.Whiteboard, userID uuid.UUID, grant *models.WhiteboardCollaborator) bool {
	if whiteboard == nil || userID == uuid.Nil {
		return false
	}
	if whiteboard.OwnerID == userID {
		return true
	}
	if whiteboard.IsPublic {
		return true
	}
	return grantFor(whiteboard, userID, grant) != nil
}

// CanEdit reports whether userID may mutate board content: the owner,
// or a collaborator holding edit or admin.
func CanEdit(whiteboard *models.Whiteboard, userID uuid.UUID, grant *models.WhiteboardCollaborator) bool {
	if whiteboard == nil || userID == uuid.Nil {
		return false
	}
	if whiteboard.OwnerID == userID {
		return true
	}
	g := grantFor(whiteboard, userID, grant)
	if g == nil {
		return false
	}
	return g.Permission == enums.PermissionEdit || g.Permission == enums.PermissionAdmin
}

// CanAdmin reports whether userID may share the board or change other
// users' permissions: the owner, or a collaborator holding admin.
// Edit does not imply admin.
func CanAdmin(whiteboard *models.Whiteboard, userID uuid.UUID, grant *models.WhiteboardCollaborator) bool {
	if whiteboard == nil || userID == uuid.Nil {
		return false
	}
	if whiteboard.OwnerID == userID {
		return true
	}
	g := grantFor(whiteboard, userID, grant)
	return g != nil && g.Permission == enums.PermissionAdmin
}

// grantFor returns the grant only if it actually belongs to this
// (whiteboard, user) pair, so a caller passing an unrelated row cannot
// widen access.
func grantFor(whiteboard *models.Whiteboard, userID uuid.UUID, grant *models.WhiteboardCollaborator) *models.WhiteboardCollaborator {
	if grant == nil {
		return nil
	}
	if grant.WhiteboardID != whiteboard.ID || grant.UserID != userID {
		return nil
	}
	return grant
}
