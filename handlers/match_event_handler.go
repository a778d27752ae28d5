package handlers

import (
	"net/http"

	"github.com/Dosada05/matchday/services"
)

type MatchEventHandler struct {
	eventService services.MatchEventService
}

func NewMatchEventHandler(es services.MatchEventService) *MatchEventHandler {
	return &MatchEventHandler{eventService: es}
}

// ListEvents godoc
// @Summary События матча
// @Tags match-events
// @Produce json
// @Param matchID path int true "ID матча"
// @Success 200 {object} map[string]interface{} "events"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Router /matches/{matchID}/events [get]
func (h *MatchEventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	events, err := h.eventService.ListEvents(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddEvent godoc
// @Summary Добавить событие
// @Tags match-events
// @Description Голы пересчитывают счёт матча и сбрасывают подтверждения
// @Accept json
// @Produce json
// @Param matchID path int true "ID матча"
// @Param body body services.MatchEventInput true "Событие"
// @Success 201 {object} map[string]interface{} "event, match, score_changed"
// @Failure 400 {object} map[string]string "Ошибка валидации или состояние матча"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /matches/{matchID}/events [post]
func (h *MatchEventHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.MatchEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	change, err := h.eventService.AddEvent(r.Context(), actor, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeEventChange(w, r, http.StatusCreated, "match event added", change)
}

// UpdateEvent godoc
// @Summary Изменить событие
// @Tags match-events
// @Accept json
// @Produce json
// @Param matchID path int true "ID матча"
// @Param eventID path int true "ID события"
// @Param body body services.MatchEventUpdate true "Изменяемые поля"
// @Success 200 {object} map[string]interface{} "event, match, score_changed"
// @Failure 400 {object} map[string]string "Ошибка валидации или состояние матча"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Событие не найдено"
// @Security BearerAuth
// @Router /matches/{matchID}/events/{eventID} [put]
func (h *MatchEventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	matchID, eventID, ok := eventIDs(w, r)
	if !ok {
		return
	}

	var input services.MatchEventUpdate
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	change, err := h.eventService.UpdateEvent(r.Context(), actor, matchID, eventID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeEventChange(w, r, http.StatusOK, "match event updated", change)
}

// DeleteEvent godoc
// @Summary Удалить событие
// @Tags match-events
// @Produce json
// @Param matchID path int true "ID матча"
// @Param eventID path int true "ID события"
// @Success 200 {object} map[string]interface{} "event, match, score_changed"
// @Failure 400 {object} map[string]string "Состояние матча"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Событие не найдено"
// @Security BearerAuth
// @Router /matches/{matchID}/events/{eventID} [delete]
func (h *MatchEventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	matchID, eventID, ok := eventIDs(w, r)
	if !ok {
		return
	}

	change, err := h.eventService.DeleteEvent(r.Context(), actor, matchID, eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	writeEventChange(w, r, http.StatusOK, "match event deleted", change)
}

// UploadEventVideo godoc
// @Summary Загрузить видео события
// @Tags match-events
// @Accept multipart/form-data
// @Produce json
// @Param matchID path int true "ID матча"
// @Param eventID path int true "ID события"
// @Param video formData file true "Видео (mp4, webm, quicktime)"
// @Success 200 {object} map[string]interface{} "event"
// @Failure 400 {object} map[string]string "Неверный файл"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Событие не найдено"
// @Security BearerAuth
// @Router /matches/{matchID}/events/{eventID}/video [post]
func (h *MatchEventHandler) UploadEventVideo(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	matchID, eventID, ok := eventIDs(w, r)
	if !ok {
		return
	}

	file, contentType, ok := readUpload(w, r, "video")
	if !ok {
		return
	}
	defer file.Close()

	event, err := h.eventService.UploadEventVideo(r.Context(), actor, matchID, eventID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "event video uploaded",
		"event":   event,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func eventIDs(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return 0, 0, false
	}
	return matchID, eventID, true
}

func writeEventChange(w http.ResponseWriter, r *http.Request, status int, message string, change *services.EventChange) {
	response := jsonResponse{
		"message":       message,
		"event":         change.Event,
		"match":         change.Match,
		"score_changed": change.ScoreChanged,
	}
	if err := writeJSON(w, status, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
