package handler

import (
	"encoding/json"
	"net/http"

	"leetlab/internal/api/middleware"
	"leetlab/internal/app/service"
	"leetlab/internal/common"

	"github.com/go-chi/chi/v5"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(ps *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: ps}
}

func (h *PlaylistHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/", h.createPlaylist)
	r.Get("/", h.listPlaylists)
	r.Get("/{playlistID}", h.getPlaylist)
	r.Delete("/{playlistID}", h.deletePlaylist)
	r.Post("/{playlistID}/problems", h.addProblem)
	r.Delete("/{playlistID}/problems/{problemID}", h.removeProblem)
}

func (h *PlaylistHandler) createPlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	playlist, err := h.playlistService.CreatePlaylist(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, playlist)
}

func (h *PlaylistHandler) listPlaylists(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	playlists, err := h.playlistService.ListPlaylists(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, playlists)
}

func (h *PlaylistHandler) getPlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	playlist, err := h.playlistService.GetPlaylist(r.Context(), userID, chi.URLParam(r, "playlistID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, playlist)
}

func (h *PlaylistHandler) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	if err := h.playlistService.DeletePlaylist(r.Context(), userID, chi.URLParam(r, "playlistID")); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PlaylistHandler) addProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req struct {
		ProblemID string `json:"problem_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	entry, err := h.playlistService.AddProblem(r.Context(), userID, chi.URLParam(r, "playlistID"), req.ProblemID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, entry)
}

func (h *PlaylistHandler) removeProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	err := h.playlistService.RemoveProblem(r.Context(), userID,
		chi.URLParam(r, "playlistID"), chi.URLParam(r, "problemID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
