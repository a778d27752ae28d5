package handlers

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/Dosada05/matchday/live"
	"github.com/Dosada05/matchday/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub          *live.Hub
	matchService services.MatchService
	upgrader     websocket.Upgrader
	logger       *slog.Logger
}

// NewWebSocketHandler принимает список разрешённых Origin; "*" разрешает любой.
func NewWebSocketHandler(hub *live.Hub, ms services.MatchService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	h := &WebSocketHandler{
		hub:          hub,
		matchService: ms,
		logger:       logger,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(allowedOrigins, "*") {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// ServeMatch godoc
// @Summary Live-обновления матча
// @Tags live
// @Description WebSocket: сообщения MATCH_UPDATED и MATCH_EVENT_CHANGED для комнаты матча
// @Param matchID path int true "ID матча"
// @Success 101 "Switching Protocols"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Router /ws/matches/{matchID} [get]
func (h *WebSocketHandler) ServeMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.matchService.GetMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.serve(w, r, live.MatchRoom(matchID))
}

// ServeNotifications godoc
// @Summary Live-уведомления пользователя
// @Tags live
// @Description WebSocket: новые уведомления текущего пользователя. Токен можно передать в ?token=
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string "Не авторизован"
// @Security BearerAuth
// @Router /ws/notifications [get]
func (h *WebSocketHandler) ServeNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	h.serve(w, r, live.UserRoom(actor.UserID))
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, room string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой.
		h.logger.Warn("failed to upgrade websocket connection", slog.String("room", room), slog.Any("error", err))
		return
	}

	client := h.hub.NewClient(conn, room)
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("websocket client connected", slog.String("room", room))
}
