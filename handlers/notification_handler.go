package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dosada05/matchday/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// ListNotifications godoc
// @Summary Мои уведомления
// @Tags notifications
// @Produce json
// @Param unread query bool false "Только непрочитанные"
// @Param page query int false "Страница (с 1)"
// @Param limit query int false "Размер страницы (1..100)"
// @Success 200 {object} map[string]interface{} "notifications, pagination"
// @Security BearerAuth
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var unreadOnly bool
	if raw := r.URL.Query().Get("unread"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errorResponse(w, r, http.StatusBadRequest, "invalid unread: must be a boolean")
			return
		}
		unreadOnly = v
	}

	page, err := getPage(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	list, pagination, err := h.notificationService.ListNotifications(r.Context(), actor, unreadOnly, page)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"notifications": list,
		"pagination":    pagination,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MarkRead godoc
// @Summary Отметить уведомление прочитанным
// @Tags notifications
// @Produce json
// @Param notificationID path int true "ID уведомления"
// @Success 200 {object} map[string]string "message"
// @Failure 404 {object} map[string]string "Уведомление не найдено"
// @Security BearerAuth
// @Router /notifications/{notificationID}/read [post]
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "notificationID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), actor, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "notification marked as read"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MarkAllRead godoc
// @Summary Отметить все уведомления прочитанными
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]interface{} "message, updated"
// @Security BearerAuth
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllRead(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "notifications marked as read",
		"updated": updated,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
