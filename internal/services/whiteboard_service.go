package services

import (
	"strings"

	"collabboard/internal/access"
	"collabboard/internal/errs"
	"collabboard/internal/models"
	"collabboard/internal/repositories"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// WhiteboardService enforces access rules in front of the whiteboard
// repository. A user who may not view a board gets not-found, never
// forbidden, so private boards do not leak their existence.
type WhiteboardService struct {
	whiteboardRepo *repositories.WhiteboardRepository
	tagRepo        *repositories.TagRepository
}

func NewWhiteboardService(
	whiteboardRepo *repositories.WhiteboardRepository,
	tagRepo *repositories.TagRepository,
) *WhiteboardService {
	return &WhiteboardService{
		whiteboardRepo: whiteboardRepo,
		tagRepo:        tagRepo,
	}
}

// loadForView fetches the whiteboard and the caller's grant, answering
// ErrWhiteboardNotFound when the board does not exist or the caller may
// not see it.
func (ws *WhiteboardService) loadForView(whiteboardID, userID uuid.UUID) (*models.Whiteboard, *models.WhiteboardCollaborator, error) {
	whiteboard, err := ws.whiteboardRepo.FindWhiteboardByID(whiteboardID)
	if err != nil {
		return nil, nil, err
	}
	grant, err := ws.whiteboardRepo.FindGrant(whiteboardID, userID)
	if err != nil {
		return nil, nil, err
	}
	if !access.CanView(whiteboard, userID, grant) {
		return nil, nil, errs.ErrWhiteboardNotFound
	}
	return whiteboard, grant, nil
}

func (ws *WhiteboardService) CreateWhiteboard(ownerID uuid.UUID, req *models.CreateWhiteboardRequestBody) (*models.Whiteboard, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errs.ErrInvalidRequestBody
	}
	whiteboard := &models.Whiteboard{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		OwnerID:     ownerID,
		IsPublic:    req.IsPublic,
	}
	return ws.whiteboardRepo.CreateWhiteboard(whiteboard)
}

func (ws *WhiteboardService) GetWhiteboard(whiteboardID, userID uuid.UUID) (*models.Whiteboard, error) {
	whiteboard, _, err := ws.loadForView(whiteboardID, userID)
	if err != nil {
		return nil, err
	}
	return whiteboard, nil
}

func (ws *WhiteboardService) GetOwnWhiteboards(userID uuid.UUID, page, size int) ([]models.Whiteboard, int64, error) {
	if page < 1 || size < 1 {
		return nil, 0, errs.ErrInvalidPageOrSize
	}
	return ws.whiteboardRepo.FindOwnWhiteboards(userID, page, size)
}

// UpdateWhiteboard changes metadata. Owner or admin only; nil fields in
// the request leave the current value untouched.
func (ws *WhiteboardService) UpdateWhiteboard(whiteboardID, userID uuid.UUID, req *models.UpdateWhiteboardRequestBody) (*models.Whiteboard, error) {
	whiteboard, grant, err := ws.loadForView(whiteboardID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanAdmin(whiteboard, userID, grant) {
		return nil, errs.ErrAdminPermissionRequired
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, errs.ErrInvalidRequestBody
		}
		whiteboard.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		whiteboard.Description = *req.Description
	}
	if req.IsPublic != nil {
		whiteboard.IsPublic = *req.IsPublic
	}
	if err := ws.whiteboardRepo.UpdateWhiteboard(whiteboard); err != nil {
		return nil, err
	}
	return whiteboard, nil
}

func (ws *WhiteboardService) DeleteWhiteboard(whiteboardID, userID uuid.UUID) error {
	whiteboard, _, err := ws.loadForView(whiteboardID, userID)
	if err != nil {
		return err
	}
	if whiteboard.OwnerID != userID {
		return errs.ErrOwnerOnly
	}
	return ws.whiteboardRepo.DeleteWhiteboard(whiteboardID)
}

// ShareWhiteboard grants or updates a collaborator permission. Owner or
// admin only; the owner cannot be granted to, their access is implicit.
func (ws *WhiteboardService) ShareWhiteboard(whiteboardID, actorID uuid.UUID, req *models.ShareWhiteboardRequestBody) (*models.WhiteboardCollaborator, error) {
	if !req.Permission.Valid() {
		return nil, errs.ErrInvalidPermission
	}
	whiteboard, grant, err := ws.loadForView(whiteboardID, actorID)
	if err != nil {
		return nil, err
	}
	if !access.CanAdmin(whiteboard, actorID, grant) {
		return nil, errs.ErrAdminPermissionRequired
	}
	if req.UserID == whiteboard.OwnerID {
		return nil, errs.ErrOwnerCannotBeShared
	}
	return ws.whiteboardRepo.UpsertGrant(whiteboardID, req.UserID, req.Permission)
}

func (ws *WhiteboardService) UpdatePermission(whiteboardID, actorID uuid.UUID, req *models.UpdatePermissionRequestBody) error {
	if !req.Permission.Valid() {
		return errs.ErrInvalidPermission
	}
	whiteboard, grant, err := ws.loadForView(whiteboardID, actorID)
	if err != nil {
		return err
	}
	if !access.CanAdmin(whiteboard, actorID, grant) {
		return errs.ErrAdminPermissionRequired
	}
	if req.UserID == whiteboard.OwnerID {
		return errs.ErrOwnerCannotBeShared
	}
	return ws.whiteboardRepo.UpdateGrantPermission(whiteboardID, req.UserID, req.Permission)
}

// RemoveCollaborator revokes a grant. Admins may remove anyone; a
// collaborator may always remove themselves. Removing the owner is a
// distinct error because the owner never holds a grant.
func (ws *WhiteboardService) RemoveCollaborator(whiteboardID, actorID, targetID uuid.UUID) error {
	whiteboard, grant, err := ws.loadForView(whiteboardID, actorID)
	if err != nil {
		return err
	}
	if targetID == whiteboard.OwnerID {
		return errs.ErrOwnerIsNotACollaborator
	}
	if actorID != targetID && !access.CanAdmin(whiteboard, actorID, grant) {
		return errs.ErrAdminPermissionRequired
	}
	return ws.whiteboardRepo.DeleteGrant(whiteboardID, targetID)
}

func (ws *WhiteboardService) ListParticipants(whiteboardID, userID uuid.UUID) ([]models.UserSummary, error) {
	if _, _, err := ws.loadForView(whiteboardID, userID); err != nil {
		return nil, err
	}
	users, err := ws.whiteboardRepo.ListParticipants(whiteboardID)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, *users[i].ToUserSummary())
	}
	return summaries, nil
}

// CanView is the entry point for the websocket gateway: it answers the
// pure view question without exposing internals.
func (ws *WhiteboardService) CanView(whiteboardID, userID uuid.UUID) (bool, error) {
	_, _, err := ws.loadForView(whiteboardID, userID)
	if err == errs.ErrWhiteboardNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (ws *WhiteboardService) GetElements(whiteboardID, userID uuid.UUID) ([]models.DrawingElement, error) {
	if _, _, err := ws.loadForView(whiteboardID, userID); err != nil {
		return nil, err
	}
	return ws.whiteboardRepo.FindElements(whiteboardID)
}

func (ws *WhiteboardService) requireEdit(whiteboardID, userID uuid.UUID) (*models.Whiteboard, error) {
	whiteboard, grant, err := ws.loadForView(whiteboardID, userID)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit(whiteboard, userID, grant) {
		return nil, errs.ErrEditPermissionRequired
	}
	return whiteboard, nil
}

// CreateElement persists a new drawing element. Also called from the
// realtime message router, so it does its own permission check.
func (ws *WhiteboardService) CreateElement(whiteboardID, userID uuid.UUID, req *models.CreateElementRequestBody) (*models.DrawingElement, error) {
	if !req.Type.Valid() {
		return nil, errs.ErrInvalidRequestBody
	}
	if _, err := ws.requireEdit(whiteboardID, userID); err != nil {
		return nil, err
	}
	element := req.ToDrawingElement(whiteboardID, &userID)
	return ws.whiteboardRepo.CreateElement(element)
}

func (ws *WhiteboardService) UpdateElement(whiteboardID, userID, elementID uuid.UUID, req *models.UpdateElementRequestBody) (*models.DrawingElement, error) {
	if _, err := ws.requireEdit(whiteboardID, userID); err != nil {
		return nil, err
	}
	element, err := ws.whiteboardRepo.FindElement(whiteboardID, elementID)
	if err != nil {
		return nil, err
	}
	applyElementUpdate(element, req)
	if err := ws.whiteboardRepo.SaveElement(element); err != nil {
		return nil, err
	}
	return element, nil
}

func (ws *WhiteboardService) DeleteElement(whiteboardID, userID, elementID uuid.UUID) error {
	if _, err := ws.requireEdit(whiteboardID, userID); err != nil {
		return err
	}
	return ws.whiteboardRepo.DeleteElement(whiteboardID, elementID)
}

func (ws *WhiteboardService) ClearElements(whiteboardID, userID uuid.UUID) (int64, error) {
	if _, err := ws.requireEdit(whiteboardID, userID); err != nil {
		return 0, err
	}
	deleted, err := ws.whiteboardRepo.DeleteAllElements(whiteboardID)
	if err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{
		"whiteboard_id": whiteboardID,
		"deleted":       deleted,
	}).Info("whiteboard cleared")
	return deleted, nil
}

// ReplaceElements implements the whole-board save: the previous content
// is discarded and the submitted batch becomes the new state.
func (ws *WhiteboardService) ReplaceElements(whiteboardID, userID uuid.UUID, req *models.BatchElementsRequestBody) ([]models.DrawingElement, error) {
	if _, err := ws.requireEdit(whiteboardID, userID); err != nil {
		return nil, err
	}
	elements := make([]models.DrawingElement, 0, len(req.Elements))
	for i := range req.Elements {
		if !req.Elements[i].Type.Valid() {
			return nil, errs.ErrInvalidRequestBody
		}
		elements = append(elements, *req.Elements[i].ToDrawingElement(whiteboardID, &userID))
	}
	return ws.whiteboardRepo.ReplaceElements(whiteboardID, elements)
}

func (ws *WhiteboardService) AttachTag(whiteboardID, userID, tagID uuid.UUID) error {
	if _, err := ws.requireEdit(whiteboardID, userID); err != nil {
		return err
	}
	if _, err := ws.tagRepo.FindTagByID(tagID); err != nil {
		return err
	}
	return ws.tagRepo.AttachTag(whiteboardID, tagID)
}

func (ws *WhiteboardService) DetachTag(whiteboardID, userID, tagID uuid.UUID) error {
	if _, err := ws.requireEdit(whiteboardID, userID); err != nil {
		return err
	}
	return ws.tagRepo.DetachTag(whiteboardID, tagID)
}

func (ws *WhiteboardService) GetTags(whiteboardID, userID uuid.UUID) ([]models.Tag, error) {
	if _, _, err := ws.loadForView(whiteboardID, userID); err != nil {
		return nil, err
	}
	return ws.tagRepo.ActiveTags(whiteboardID)
}

func (ws *WhiteboardService) CreateTag(req *models.CreateTagRequestBody) (*models.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.ErrInvalidRequestBody
	}
	return ws.tagRepo.CreateTag(&models.Tag{
		Name:  name,
		Color: req.Color,
	})
}

func (ws *WhiteboardService) ListTags() ([]models.Tag, error) {
	return ws.tagRepo.ListTags()
}

func applyElementUpdate(element *models.DrawingElement, req *models.UpdateElementRequestBody) {
	if req.X != nil {
		element.X = *req.X
	}
	if req.Y != nil {
		element.Y = *req.Y
	}
	if req.Width != nil {
		element.Width = req.Width
	}
	if req.Height != nil {
		element.Height = req.Height
	}
	if req.EndX != nil {
		element.EndX = req.EndX
	}
	if req.EndY != nil {
		element.EndY = req.EndY
	}
	if req.Points != nil {
		element.Points = req.Points
	}
	if req.Color != nil {
		element.Color = *req.Color
	}
	if req.StrokeWidth != nil {
		element.StrokeWidth = req.StrokeWidth
	}
	if req.FillColor != nil {
		element.FillColor = req.FillColor
	}
	if req.TextContent != nil {
		element.TextContent = req.TextContent
	}
	if req.FontSize != nil {
		element.FontSize = req.FontSize
	}
	if req.FontFamily != nil {
		element.FontFamily = req.FontFamily
	}
}
