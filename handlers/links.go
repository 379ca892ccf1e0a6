package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"linkrelay/models"
	playersvc "linkrelay/services/player"
	"linkrelay/utils"
)

const (
	msgMissingVideoID  = "Missing video id"
	msgNoStreamingData = "No streaming data"
	msgUpstreamFailed  = "Upstream request failed"
)

type linksService interface {
	Links(ctx context.Context, videoID string) (*models.LinksResponse, error)
}

var _ linksService = (*playersvc.Service)(nil)

// LinksHandler relays a video id to the player API and returns its stream links.
type LinksHandler struct {
	Service linksService
	logger  logrus.FieldLogger
}

func NewLinksHandler(s linksService, logger logrus.FieldLogger) *LinksHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LinksHandler{Service: s, logger: logger.WithField("component", "links-handler")}
}

// GetLinks serves GET /get_links?id=<video id>.
func (h *LinksHandler) GetLinks(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("id")

	links, err := h.Service.Links(r.Context(), videoID)
	if err != nil {
		switch {
		case errors.Is(err, playersvc.ErrMissingVideoID):
			utils.WriteError(w, http.StatusBadRequest, msgMissingVideoID)
		case errors.Is(err, playersvc.ErrNoStreamingData):
			utils.WriteError(w, http.StatusInternalServerError, msgNoStreamingData)
		default:
			h.logger.WithFields(logrus.Fields{
				"videoId":   videoID,
				"requestId": utils.RequestID(r.Context()),
			}).WithError(err).Error("resolve links failed")
			utils.WriteError(w, http.StatusInternalServerError, msgUpstreamFailed)
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, links)
}
