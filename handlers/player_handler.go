package handlers

import (
	"net/http"

	"github.com/Dosada05/matchday/services"
)

// ListPlayers godoc
// @Summary Состав команды
// @Tags players
// @Produce json
// @Param teamID path int true "ID команды"
// @Success 200 {object} map[string]interface{} "players"
// @Failure 404 {object} map[string]string "Команда не найдена"
// @Router /teams/{teamID}/players [get]
func (h *TeamHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	players, err := h.playerService.ListPlayers(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddPlayer godoc
// @Summary Добавить игрока
// @Tags players
// @Accept json
// @Produce json
// @Param teamID path int true "ID команды"
// @Param body body services.PlayerInput true "Игрок"
// @Success 201 {object} map[string]interface{} "player"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 403 {object} map[string]string "Нет прав"
// @Security BearerAuth
// @Router /teams/{teamID}/players [post]
func (h *TeamHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.AddPlayer(r.Context(), actor, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "player added",
		"player":  player,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdatePlayer godoc
// @Summary Обновить игрока
// @Tags players
// @Accept json
// @Produce json
// @Param teamID path int true "ID команды"
// @Param playerID path int true "ID игрока"
// @Param body body services.PlayerInput true "Игрок"
// @Success 200 {object} map[string]interface{} "player"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Игрок не найден"
// @Security BearerAuth
// @Router /teams/{teamID}/players/{playerID} [put]
func (h *TeamHandler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.PlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.UpdatePlayer(r.Context(), actor, teamID, playerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"message": "player updated",
		"player":  player,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemovePlayer godoc
// @Summary Удалить игрока из команды
// @Tags players
// @Param teamID path int true "ID команды"
// @Param playerID path int true "ID игрока"
// @Success 204 "Удалено"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 404 {object} map[string]string "Игрок не найден"
// @Security BearerAuth
// @Router /teams/{teamID}/players/{playerID} [delete]
func (h *TeamHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.RemovePlayer(r.Context(), actor, teamID, playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
