package handler

import (
	"encoding/json"
	"net/http"

	"leetlab/internal/app/service"
	"leetlab/internal/common"

	"github.com/go-chi/chi/v5"
)

type WebhookHandler struct {
	webhookService *service.WebhookService
}

func NewWebhookHandler(ws *service.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: ws}
}

func (h *WebhookHandler) RegisterRoutes(r chi.Router) {
	r.Post("/execution", h.executionResult)
}

func (h *WebhookHandler) executionResult(w http.ResponseWriter, r *http.Request) {
	var payload service.ExecutionResultPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	submission, err := h.webhookService.RecordExecutionResult(r.Context(), payload)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}
