// Package player fetches player responses from the upstream video platform
// and reshapes them into stream link lists.
package player

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"linkrelay/models"
)

type playerClient interface {
	Player(ctx context.Context, videoID string) (*models.PlayerResponse, error)
}

var _ playerClient = (*Client)(nil)

// Service turns a video id into the simplified link document.
type Service struct {
	client playerClient
	tag    string
	logger logrus.FieldLogger
}

func NewService(client playerClient, tag string, logger logrus.FieldLogger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		client: client,
		tag:    tag,
		logger: logger.WithField("component", "player"),
	}
}

// Links resolves videoID into its stream links: fixed formats first, then
// adaptive formats, each in upstream order.
func (s *Service) Links(ctx context.Context, videoID string) (*models.LinksResponse, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, ErrMissingVideoID
	}

	resp, err := s.client.Player(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.StreamingData == nil {
		s.logger.WithField("videoId", videoID).Info("player response has no streaming data")
		return nil, ErrNoStreamingData
	}

	data := resp.StreamingData
	formats := make([]models.PlayerFormat, 0, len(data.Formats)+len(data.AdaptiveFormats))
	formats = append(formats, data.Formats...)
	formats = append(formats, data.AdaptiveFormats...)

	links := lo.Map(formats, func(f models.PlayerFormat, _ int) models.StreamLink {
		return models.StreamLink{
			Itag:     f.Itag,
			Quality:  f.QualityLabel,
			MimeType: f.MimeType,
			URL:      f.URL,
		}
	})

	s.logger.WithFields(logrus.Fields{
		"videoId":  videoID,
		"formats":  len(data.Formats),
		"adaptive": len(data.AdaptiveFormats),
	}).Debug("resolved stream links")

	return &models.LinksResponse{
		VideoID: videoID,
		Links:   links,
		Tag:     s.tag,
	}, nil
}
