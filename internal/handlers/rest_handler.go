package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"collabboard/internal/enums"
	"collabboard/internal/errs"
	"collabboard/internal/models"
	"collabboard/internal/msgs"
	"collabboard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type RestHandler struct {
	authService        *services.AuthenticationService
	whiteboardService  *services.WhiteboardService
	searchService      *services.SearchService
	fileManagerService *services.FileManagerService
}

func NewRestHandler(
	authService *services.AuthenticationService,
	whiteboardService *services.WhiteboardService,
	searchService *services.SearchService,
	fileManagerService *services.FileManagerService,
) *RestHandler {
	return &RestHandler{
		authService:        authService,
		whiteboardService:  whiteboardService,
		searchService:      searchService,
		fileManagerService: fileManagerService,
	}
}

// statusForError maps service errors onto HTTP statuses. Access
// failures on boards the caller may not even see come back as
// not-found upstream, so a plain 403 here always means "you can see
// it but cannot do that".
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrWhiteboardNotFound),
		errors.Is(err, errs.ErrElementNotFound),
		errors.Is(err, errs.ErrTagNotFound),
		errors.Is(err, errs.ErrUserNotFound),
		errors.Is(err, errs.ErrCollaboratorNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrEditPermissionRequired),
		errors.Is(err, errs.ErrAdminPermissionRequired),
		errors.Is(err, errs.ErrOwnerOnly),
		errors.Is(err, errs.ErrOwnerIsNotACollaborator),
		errors.Is(err, errs.ErrOwnerCannotBeShared),
		errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrTagAlreadyExists), errors.Is(err, errs.ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func respondError(ctx *gin.Context, err error) {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Fields:  ve.Fields,
		})
		return
	}
	ctx.AbortWithStatusJSON(statusForError(err), models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  []string{err.Error()},
	})
}

func respondOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func userIDFromContext(ctx *gin.Context) uuid.UUID {
	value, ok := ctx.Get("user_id")
	if !ok {
		return uuid.Nil
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

func uuidParam(ctx *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		return uuid.Nil, errs.ErrInvalidParams
	}
	return id, nil
}

func (rh *RestHandler) Login(ctx *gin.Context) {
	var loginData models.LoginRequestBody
	if err := ctx.BindJSON(&loginData); err != nil {
		logrus.WithError(err).Debug("Error login data json binding")
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(loginErrs),
		})
		return
	}

	respondOK(ctx, msgs.MsgOperationSuccessful, loginResponse)
}

func (rh *RestHandler) Register(ctx *gin.Context) {
	var user models.User
	if err := ctx.BindJSON(&user); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}

	created, registerErrs := rh.authService.Register(&user)
	if len(registerErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings(registerErrs),
		})
		return
	}

	ctx.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: msgs.MsgUserCreatedSuccessfully,
		Data:    created.ToProfileResponse(),
	})
}

func (rh *RestHandler) GetProfile(ctx *gin.Context) {
	profile, err := rh.authService.GetProfile(userIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, profile)
}

func (rh *RestHandler) UploadUserAvatar(ctx *gin.Context) {
	userID := userIDFromContext(ctx)

	file, err := ctx.FormFile("avatar")
	if err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}

	src, err := file.Open()
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []string{err.Error()},
		})
		return
	}
	defer src.Close()

	fileExt := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("user_avatar_%s%s", userID, fileExt)

	url, err := rh.fileManagerService.UploadUserAvatar(fileName, src, file.Size, file.Header.Get("Content-Type"), enums.FILE_BUCKET_USER_AVATAR)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []string{err.Error()},
		})
		return
	}

	if err := rh.authService.UpdateAvatar(userID, url); err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, msgs.MsgOperationSuccessful, url)
}

func (rh *RestHandler) CreateWhiteboard(ctx *gin.Context) {
	var body models.CreateWhiteboardRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}

	whiteboard, err := rh.whiteboardService.CreateWhiteboard(userIDFromContext(ctx), &body)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    whiteboard,
	})
}

func (rh *RestHandler) GetOwnWhiteboards(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		size = 10
	}

	whiteboards, total, err := rh.whiteboardService.GetOwnWhiteboards(userIDFromContext(ctx), page, size)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, gin.H{
		"whiteboards": whiteboards,
		"total":       total,
		"page":        page,
		"size":        size,
	})
}

func (rh *RestHandler) GetWhiteboard(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	whiteboard, err := rh.whiteboardService.GetWhiteboard(whiteboardID, userIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, whiteboard)
}

func (rh *RestHandler) UpdateWhiteboard(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	var body models.UpdateWhiteboardRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	whiteboard, err := rh.whiteboardService.UpdateWhiteboard(whiteboardID, userIDFromContext(ctx), &body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, whiteboard)
}

func (rh *RestHandler) DeleteWhiteboard(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	if err := rh.whiteboardService.DeleteWhiteboard(whiteboardID, userIDFromContext(ctx)); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgWhiteboardDeleted, nil)
}

func (rh *RestHandler) ShareWhiteboard(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	var body models.ShareWhiteboardRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	grant, err := rh.whiteboardService.ShareWhiteboard(whiteboardID, userIDFromContext(ctx), &body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgWhiteboardSharedSuccessful, grant)
}

func (rh *RestHandler) UpdatePermission(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	var body models.UpdatePermissionRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	if err := rh.whiteboardService.UpdatePermission(whiteboardID, userIDFromContext(ctx), &body); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgPermissionUpdated, nil)
}

func (rh *RestHandler) RemoveCollaborator(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	targetID, err := uuidParam(ctx, "userId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	if err := rh.whiteboardService.RemoveCollaborator(whiteboardID, userIDFromContext(ctx), targetID); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgCollaboratorRemoved, nil)
}

func (rh *RestHandler) ListParticipants(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	participants, err := rh.whiteboardService.ListParticipants(whiteboardID, userIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, participants)
}

func (rh *RestHandler) GetElements(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	elements, err := rh.whiteboardService.GetElements(whiteboardID, userIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, elements)
}

func (rh *RestHandler) CreateElement(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	var body models.CreateElementRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	element, err := rh.whiteboardService.CreateElement(whiteboardID, userIDFromContext(ctx), &body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    element,
	})
}

func (rh *RestHandler) UpdateElement(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	elementID, err := uuidParam(ctx, "elementId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	var body models.UpdateElementRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	element, err := rh.whiteboardService.UpdateElement(whiteboardID, userIDFromContext(ctx), elementID, &body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, element)
}

func (rh *RestHandler) DeleteElement(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	elementID, err := uuidParam(ctx, "elementId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	if err := rh.whiteboardService.DeleteElement(whiteboardID, userIDFromContext(ctx), elementID); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgElementDeleted, nil)
}

func (rh *RestHandler) ClearElements(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	deleted, err := rh.whiteboardService.ClearElements(whiteboardID, userIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgElementsCleared, gin.H{"deleted": deleted})
}

// ReplaceElements is whole-board save: the submitted batch atomically
// replaces all current elements.
func (rh *RestHandler) ReplaceElements(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	var body models.BatchElementsRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	elements, err := rh.whiteboardService.ReplaceElements(whiteboardID, userIDFromContext(ctx), &body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, elements)
}

func (rh *RestHandler) CreateTag(ctx *gin.Context) {
	var body models.CreateTagRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	tag, err := rh.whiteboardService.CreateTag(&body)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    tag,
	})
}

func (rh *RestHandler) ListTags(ctx *gin.Context) {
	tags, err := rh.whiteboardService.ListTags()
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, tags)
}

func (rh *RestHandler) GetWhiteboardTags(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	tags, err := rh.whiteboardService.GetTags(whiteboardID, userIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, tags)
}

func (rh *RestHandler) AttachTag(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	var body models.AttachTagRequestBody
	if err := ctx.BindJSON(&body); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}
	if err := rh.whiteboardService.AttachTag(whiteboardID, userIDFromContext(ctx), body.TagID); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgTagAttached, nil)
}

func (rh *RestHandler) DetachTag(ctx *gin.Context) {
	whiteboardID, err := uuidParam(ctx, "whiteboardId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	tagID, err := uuidParam(ctx, "tagId")
	if err != nil {
		respondError(ctx, err)
		return
	}
	if err := rh.whiteboardService.DetachTag(whiteboardID, userIDFromContext(ctx), tagID); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgTagDetached, nil)
}

// SearchWhiteboards takes the composite filter set in the body and page
// controls in the query string.
func (rh *RestHandler) SearchWhiteboards(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		respondError(ctx, errs.ErrInvalidPageOrSize)
		return
	}
	pageSize, err := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))
	if err != nil {
		respondError(ctx, errs.ErrInvalidPageOrSize)
		return
	}

	var filters models.SearchFilters
	if err := ctx.BindJSON(&filters); err != nil {
		respondError(ctx, errs.ErrInvalidRequestBody)
		return
	}

	response, err := rh.searchService.Search(userIDFromContext(ctx), &filters, page, pageSize)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, response)
}

func (rh *RestHandler) SearchableTags(ctx *gin.Context) {
	tags, err := rh.searchService.VisibleTags(userIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, tags)
}

func (rh *RestHandler) SearchableAuthors(ctx *gin.Context) {
	authors, err := rh.searchService.VisibleAuthors(userIDFromContext(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, msgs.MsgOperationSuccessful, authors)
}
