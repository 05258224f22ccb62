package handlers

import (
	"net/http"
	"time"

	"collabboard/internal/errs"
	"collabboard/internal/hub"
	"collabboard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// SocketWhiteboardHandler is the realtime gateway. Credentials travel
// as query parameters because browsers cannot set headers on websocket
// requests; the token must verify and its subject must match the
// claimed user id. Failures after the upgrade close with policy
// violation (1008).
type SocketWhiteboardHandler struct {
	upgrader          websocket.Upgrader
	registry          *hub.Registry
	router            *hub.Router
	authService       *services.AuthenticationService
	whiteboardService *services.WhiteboardService
}

func NewSocketWhiteboardHandler(
	registry *hub.Registry,
	router *hub.Router,
	authService *services.AuthenticationService,
	whiteboardService *services.WhiteboardService,
) *SocketWhiteboardHandler {
	return &SocketWhiteboardHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		registry:          registry,
		router:            router,
		authService:       authService,
		whiteboardService: whiteboardService,
	}
}

func (swh *SocketWhiteboardHandler) HandleSocketWhiteboardRoute(ctx *gin.Context) {
	whiteboardID, err := uuid.Parse(ctx.Param("whiteboardId"))
	if err != nil {
		ctx.AbortWithStatus(http.StatusBadRequest)
		return
	}

	userID, err := swh.authorize(ctx)
	if err != nil {
		// Upgrade anyway so the client receives a proper close frame
		// instead of a failed handshake it cannot distinguish from a
		// network error.
		ws, upgradeErr := swh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if upgradeErr != nil {
			return
		}
		swh.closeWithPolicyViolation(ws, err.Error())
		return
	}

	ws, err := swh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("Failed to upgrade connection")
		return
	}

	if _, err := swh.authService.FindUserByID(userID); err != nil {
		swh.closeWithPolicyViolation(ws, errs.ErrUserNotFound.Error())
		return
	}
	canView, err := swh.whiteboardService.CanView(whiteboardID, userID)
	if err != nil || !canView {
		swh.closeWithPolicyViolation(ws, errs.ErrPolicyViolation.Error())
		return
	}

	swh.serve(ws, whiteboardID, userID)
}

// authorize checks the userId and token query parameters. The token
// must verify and belong to the claimed user; a valid token for a
// different account is a policy violation, not an identity.
func (swh *SocketWhiteboardHandler) authorize(ctx *gin.Context) (uuid.UUID, error) {
	userID, err := uuid.Parse(ctx.Query("userId"))
	if err != nil {
		return uuid.Nil, errs.ErrInvalidUserId
	}
	token := ctx.Query("token")
	if token == "" {
		return uuid.Nil, errs.ErrUnauthorized
	}
	claims, err := swh.authService.VerifyToken(token)
	if err != nil {
		return uuid.Nil, errs.ErrInvalidToken
	}
	if claims.ID != userID {
		return uuid.Nil, errs.ErrPolicyViolation
	}
	return userID, nil
}

func (swh *SocketWhiteboardHandler) closeWithPolicyViolation(ws *websocket.Conn, reason string) {
	deadline := time.Now().Add(time.Second)
	_ = ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason),
		deadline,
	)
	_ = ws.Close()
}

// readWait must exceed the ping period of the write pump so a healthy
// peer always refreshes the deadline in time.
const readWait = 60 * time.Second

func (swh *SocketWhiteboardHandler) serve(ws *websocket.Conn, whiteboardID, userID uuid.UUID) {
	client := hub.NewClient(ws, whiteboardID, userID)
	swh.registry.Register(client)
	go client.WritePump()
	defer swh.registry.Unregister(client)

	_ = ws.SetReadDeadline(time.Now().Add(readWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readWait))
	})

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithFields(logrus.Fields{
					"user_id":       userID,
					"whiteboard_id": whiteboardID,
				}).WithError(err).Warn("Unexpected websocket close")
			}
			return
		}

		msg, err := hub.ParseInbound(raw)
		if err != nil {
			// Malformed JSON from one client must not kill its session.
			logrus.WithFields(logrus.Fields{
				"user_id":       userID,
				"whiteboard_id": whiteboardID,
			}).WithError(err).Warn("Dropping malformed message")
			continue
		}
		swh.router.Handle(client, msg)
	}
}
