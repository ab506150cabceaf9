package handlers

import (
	"net/http"

	"rag-gateway/internal/models"
)

// Health godoc
// @Summary Health check
// @Description Reports that the gateway is serving. The backend is not contacted.
// @Tags general
// @Produce json
// @Success 200 {object} models.BasicResponse
// @Router /health [get]
func (h *RagHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.sendJSON(w, http.StatusOK, models.BasicResponse{
		Message: "Server is healthy",
		Status:  "success",
	})
}
