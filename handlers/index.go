package handlers

import (
	"net/http"

	"linkrelay/models"
	"linkrelay/utils"
)

// IndexHandler describes the service at GET /.
type IndexHandler struct {
	Name string
	Tag  string
}

func NewIndexHandler(name, tag string) *IndexHandler {
	return &IndexHandler{Name: name, Tag: tag}
}

func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, models.StatusResponse{
		Status:    "ok",
		Message:   h.Name + " online",
		Endpoints: []string{"/health", "/get_links?id=<video_id>"},
		Tag:       h.Tag,
	})
}
