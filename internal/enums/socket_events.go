package enums

const (
	SOCKET_MESSAGE_DRAW          = "draw"
	SOCKET_MESSAGE_ERASE         = "erase"
	SOCKET_MESSAGE_CURSOR        = "cursor"
	SOCKET_MESSAGE_PING          = "ping"
	SOCKET_MESSAGE_PONG          = "pong"
	SOCKET_MESSAGE_DRAWING_EVENT = "drawing_event"
	SOCKET_MESSAGE_USER_JOIN     = "user_join"
	SOCKET_MESSAGE_USER_LEAVE    = "user_leave"
)
