package models

// StreamLink is one entry of the simplified link list. Fields the upstream
// omitted are serialised as null.
type StreamLink struct {
	Itag     *int    `json:"itag"`
	Quality  *string `json:"quality"`
	MimeType *string `json:"mimeType"`
	URL      *string `json:"url"`
}

// LinksResponse is returned by GET /get_links.
type LinksResponse struct {
	VideoID string       `json:"videoId"`
	Links   []StreamLink `json:"links"`
	Tag     string       `json:"tag"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by the index and health endpoints.
type StatusResponse struct {
	Status    string   `json:"status"`
	Message   string   `json:"message,omitempty"`
	Time      string   `json:"time,omitempty"`
	Endpoints []string `json:"endpoints,omitempty"`
	Tag       string   `json:"tag"`
}
