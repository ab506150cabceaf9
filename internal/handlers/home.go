package handlers

import (
	"net/http"
)

// IndexPage is the identifier of the static landing page
const IndexPage = "index.html"

// Index godoc
// @Summary Landing page
// @Description Returns the identifier of the static landing page
// @Tags general
// @Produce plain
// @Success 200 {string} string "index.html"
// @Router / [get]
func (h *RagHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.sendText(w, http.StatusOK, IndexPage)
}
