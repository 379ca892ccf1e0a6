package models

// PlayerRequest is the body posted to the player endpoint.
type PlayerRequest struct {
	Context PlayerContext `json:"context"`
	VideoID string        `json:"videoId"`
}

type PlayerContext struct {
	Client PlayerClient `json:"client"`
}

// PlayerClient names the client profile the upstream should answer for.
type PlayerClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
}

// PlayerResponse is the subset of the player response the relay reads.
// StreamingData is nil when the key is absent or null.
type PlayerResponse struct {
	StreamingData *StreamingData `json:"streamingData"`
}

// StreamingData lists the stream variants available for a video.
type StreamingData struct {
	Formats         []PlayerFormat `json:"formats"`
	AdaptiveFormats []PlayerFormat `json:"adaptiveFormats"`
}

// PlayerFormat describes one stream variant. Every field may be missing upstream.
type PlayerFormat struct {
	Itag         *int    `json:"itag"`
	QualityLabel *string `json:"qualityLabel"`
	MimeType     *string `json:"mimeType"`
	URL          *string `json:"url"`
}
