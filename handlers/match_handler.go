package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/results"
	"github.com/Dosada05/matchday/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

type updateStatusRequest struct {
	Status models.MatchStatus `json:"status"`
}

type confirmResultRequest struct {
	// Role - home, away, referee или organizer.
	Role string `json:"role"`
}

// ListMatches godoc
// @Summary Список матчей
// @Tags matches
// @Produce json
// @Param tournament_id query int false "ID турнира"
// @Param team_id query int false "ID команды (дома или в гостях)"
// @Param status query string false "Статус матча"
// @Param page query int false "Страница (с 1)"
// @Param limit query int false "Размер страницы (1..100)"
// @Success 200 {object} map[string]interface{} "matches, pagination"
// @Failure 400 {object} map[string]string "Неверные параметры"
// @Router /matches [get]
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	var filter services.ListMatchesFilter
	var err error

	if filter.TournamentID, err = getOptionalIntQuery(r, "tournament_id"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if filter.TeamID, err = getOptionalIntQuery(r, "team_id"); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := models.MatchStatus(statusStr)
		if !status.Valid() {
			badRequestResponse(w, r, errors.New("invalid status query parameter"))
			return
		}
		filter.Status = &status
	}

	page, err := getPage(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, pagination, err := h.matchService.ListMatches(r.Context(), filter, page)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"matches":    matches,
		"pagination": pagination,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetMatch godoc
// @Summary Матч по ID
// @Tags matches
// @Produce json
// @Param matchID path int true "ID матча"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Router /matches/{matchID} [get]
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMatch godoc
// @Summary Создать матч
// @Tags matches
// @Description Матч создаётся в статусе scheduled. Доступно организатору турнира и администратору.
// @Accept json
// @Produce json
// @Param body body services.CreateMatchInput true "Матч"
// @Success 201 {object} map[string]interface{} "match"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Турнир не найден"
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.writeMatch(w, r, http.StatusCreated, "match created", match)
}

// UpdateMatch godoc
// @Summary Изменить расписание матча
// @Tags matches
// @Description Время, место и назначенный судья. referee_id <= 0 снимает судью.
// @Accept json
// @Produce json
// @Param matchID path int true "ID матча"
// @Param body body services.UpdateMatchInput true "Изменяемые поля"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /matches/{matchID} [put]
func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateMatch(r.Context(), actor, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.writeMatch(w, r, http.StatusOK, "match updated", match)
}

// DeleteMatch godoc
// @Summary Удалить матч
// @Tags matches
// @Description Матч с событиями помечается удалённым, без событий удаляется полностью
// @Param matchID path int true "ID матча"
// @Success 204 "Удалено"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /matches/{matchID} [delete]
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), actor, id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus godoc
// @Summary Сменить статус матча
// @Tags matches
// @Description Из completed допустим только completed, из cancelled только scheduled
// @Accept json
// @Produce json
// @Param matchID path int true "ID матча"
// @Param body body updateStatusRequest true "Новый статус"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 400 {object} map[string]string "Недопустимый переход"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /matches/{matchID}/status [patch]
func (h *MatchHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input updateStatusRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateStatus(r.Context(), actor, id, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.writeMatch(w, r, http.StatusOK, "match status updated", match)
}

// UpdateScore godoc
// @Summary Обновить счёт
// @Tags matches
// @Description Любое изменение счёта сбрасывает подтверждения результата
// @Accept json
// @Produce json
// @Param matchID path int true "ID матча"
// @Param body body results.ScoreUpdate true "Поля счёта"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 400 {object} map[string]string "Матч ещё не начался или отменён"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /matches/{matchID}/score [patch]
func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input results.ScoreUpdate
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.UpdateScore(r.Context(), actor, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.writeMatch(w, r, http.StatusOK, "match score updated", match)
}

// ConfirmResult godoc
// @Summary Подтвердить результат
// @Tags matches
// @Description Подтверждение от лица home, away, referee или organizer. Organizer подтверждает за всех.
// @Accept json
// @Produce json
// @Param matchID path int true "ID матча"
// @Param body body confirmResultRequest true "Роль подтверждающего"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 400 {object} map[string]string "Матч не завершён или неизвестная роль"
// @Failure 403 {object} map[string]string "Нет прав подтверждать от этой роли"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /matches/{matchID}/confirm [post]
func (h *MatchHandler) ConfirmResult(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input confirmResultRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ConfirmResult(r.Context(), actor, id, input.Role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	message := "match result confirmed"
	if match.IsResultConfirmed {
		message = "match result finalized"
	}
	h.writeMatch(w, r, http.StatusOK, message, match)
}

// ResetConfirmation godoc
// @Summary Сбросить подтверждения
// @Tags matches
// @Produce json
// @Param matchID path int true "ID матча"
// @Success 200 {object} map[string]interface{} "match"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Матч не найден"
// @Security BearerAuth
// @Router /matches/{matchID}/confirm [delete]
func (h *MatchHandler) ResetConfirmation(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ResetConfirmation(r.Context(), actor, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	h.writeMatch(w, r, http.StatusOK, "match confirmations reset", match)
}

func (h *MatchHandler) writeMatch(w http.ResponseWriter, r *http.Request, status int, message string, match *models.Match) {
	response := jsonResponse{
		"message": message,
		"match":   match,
	}
	if err := writeJSON(w, status, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
