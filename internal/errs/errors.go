package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody       = Error("invalid request body")
	ErrUserAlreadyExists        = Error("user already exists")
	ErrUserNotFound             = Error("user not found")
	ErrWrongPassword            = Error("wrong password")
	ErrInvalidToken             = Error("invalid token")
	ErrInvalidEmail             = Error("invalid email")
	ErrInvalidPassword          = Error("invalid password")
	ErrInvalidName              = Error("name is empty or too short")
	ErrInvalidParams            = Error("invalid params")
	ErrInvalidPageOrSize        = Error("invalid page or size")
	ErrUnauthorized             = Error("unauthorized")
	ErrForbidden                = Error("not enough permissions")
	ErrEditPermissionRequired   = Error("not enough permissions to edit")
	ErrAdminPermissionRequired  = Error("only owner or admin can do this")
	ErrOwnerOnly                = Error("only owner can delete whiteboard")
	ErrWhiteboardNotFound       = Error("whiteboard not found")
	ErrElementNotFound          = Error("drawing element not found")
	ErrTagNotFound              = Error("tag not found")
	ErrTagAlreadyExists         = Error("tag already exists")
	ErrCollaboratorNotFound     = Error("collaborator not found")
	ErrOwnerIsNotACollaborator  = Error("owner is not a collaborator and cannot be removed")
	ErrOwnerCannotBeShared      = Error("owner already has full access")
	ErrInvalidWhiteboardId      = Error("invalid whiteboard id")
	ErrInvalidUserId            = Error("invalid user id")
	ErrInvalidPermission        = Error("invalid permission level")
	ErrPolicyViolation          = Error("policy violation")
	ErrWhiteboardCreationFailed = Error("whiteboard creation failed")
)
