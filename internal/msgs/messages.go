package msgs

const (
	MsgOperationSuccessful        = "operation successful"
	MsgOperationFailed            = "operation failed"
	MsgUserCreatedSuccessfully    = "user created successfully"
	MsgYouMustLoginFirst          = "you must login first"
	MsgWhiteboardDeleted          = "whiteboard deleted successfully"
	MsgElementDeleted             = "drawing element deleted successfully"
	MsgElementsCleared            = "drawing elements cleared"
	MsgPermissionUpdated          = "permission updated successfully"
	MsgCollaboratorRemoved        = "collaborator removed successfully"
	MsgWhiteboardSharedSuccessful = "whiteboard shared successfully"
	MsgTagAttached                = "tag attached successfully"
	MsgTagDetached                = "tag detached successfully"
)
