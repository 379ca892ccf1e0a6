package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkrelay/config"
)

func testSettings(upstreamURL string) *config.Settings {
	settings := config.DefaultSettings()
	settings.Upstream.BaseURL = upstreamURL
	settings.Upstream.APIKey = "test-key"
	settings.Upstream.Timeout = 2 * time.Second
	return &settings
}

func startRelay(t *testing.T, upstreamURL string) *httptest.Server {
	t.Helper()
	logger, _ := test.NewNullLogger()
	relay := httptest.NewServer(NewHandler(testSettings(upstreamURL), logger))
	t.Cleanup(relay.Close)
	return relay
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestGetLinksMissingID(t *testing.T) {
	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer upstream.Close()
	relay := startRelay(t, upstream.URL)

	for _, path := range []string{"/get_links", "/get_links?id="} {
		status, body := get(t, relay.URL+path)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.JSONEq(t, `{"error":"Missing video id"}`, body)
	}
	assert.Zero(t, hits.Load())
}

func TestGetLinksNoStreamingData(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"playabilityStatus":{"status":"LOGIN_REQUIRED"}}`))
	}))
	defer upstream.Close()
	relay := startRelay(t, upstream.URL)

	status, body := get(t, relay.URL+"/get_links?id=abc")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"No streaming data"}`, body)
}

func TestGetLinksReshapesFormats(t *testing.T) {
	var gotVideoID string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			VideoID string `json:"videoId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotVideoID = req.VideoID
		_, _ = w.Write([]byte(`{"streamingData":{
			"formats":[{"itag":18,"qualityLabel":"360p","mimeType":"video/mp4","url":"u1","bitrate":1}],
			"adaptiveFormats":[{"itag":140,"qualityLabel":null,"mimeType":"audio/mp4","url":"u2"}]
		}}`))
	}))
	defer upstream.Close()
	relay := startRelay(t, upstream.URL)

	status, body := get(t, relay.URL+"/get_links?id=abc")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "abc", gotVideoID)
	assert.JSONEq(t, `{
		"videoId":"abc",
		"links":[
			{"itag":18,"quality":"360p","mimeType":"video/mp4","url":"u1"},
			{"itag":140,"quality":null,"mimeType":"audio/mp4","url":"u2"}
		],
		"tag":"Join @FAST_DevelopersOfficial, API by Shantanu ( FAST )"
	}`, body)
}

func TestGetLinksAlwaysTagged(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"streamingData":{}}`))
	}))
	defer upstream.Close()
	relay := startRelay(t, upstream.URL)

	for _, id := range []string{"abc", "zzz", "dQw4w9WgXcQ"} {
		status, body := get(t, relay.URL+"/get_links?id="+id)
		require.Equal(t, http.StatusOK, status)

		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		assert.Equal(t, "Join @FAST_DevelopersOfficial, API by Shantanu ( FAST )", resp["tag"])
		assert.Equal(t, []any{}, resp["links"])
	}
}

func TestGetLinksUpstreamUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	upstreamURL := upstream.URL
	upstream.Close()
	relay := startRelay(t, upstreamURL)

	status, body := get(t, relay.URL+"/get_links?id=abc")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Upstream request failed"}`, body)

	// The relay keeps serving after the failure.
	status, _ = get(t, relay.URL+"/health")
	assert.Equal(t, http.StatusOK, status)
}

func TestGetLinksMalformedUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer upstream.Close()
	relay := startRelay(t, upstream.URL)

	status, body := get(t, relay.URL+"/get_links?id=abc")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Upstream request failed"}`, body)
}

func TestIndex(t *testing.T) {
	relay := startRelay(t, "http://127.0.0.1:1")

	status, body := get(t, relay.URL+"/")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{
		"status":"ok",
		"message":"linkrelay online",
		"endpoints":["/health","/get_links?id=<video_id>"],
		"tag":"Join @FAST_DevelopersOfficial, API by Shantanu ( FAST )"
	}`, body)
}

func TestGetLinksRejectsPost(t *testing.T) {
	relay := startRelay(t, "http://127.0.0.1:1")

	resp, err := http.Post(relay.URL+"/get_links?id=abc", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRunStopsOnCancel(t *testing.T) {
	settings := testSettings("http://127.0.0.1:1")
	settings.Server.Host = "127.0.0.1"
	settings.Server.Port = 0
	settings.Server.ShutdownTimeout = time.Second
	logger, _ := test.NewNullLogger()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, New(settings, logger), settings, logger)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestGetLinksFailuresKeepKeyOutOfLogs(t *testing.T) {
	refused := httptest.NewServer(http.NotFoundHandler())
	refusedURL := refused.URL
	refused.Close()

	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()
	defer close(release)

	for name, upstreamURL := range map[string]string{"connection refused": refusedURL, "timeout": slow.URL} {
		t.Run(name, func(t *testing.T) {
			settings := testSettings(upstreamURL)
			settings.Upstream.Timeout = 50 * time.Millisecond
			logger, hook := test.NewNullLogger()
			relay := httptest.NewServer(NewHandler(settings, logger))
			defer relay.Close()

			status, body := get(t, relay.URL+"/get_links?id=abc")
			assert.Equal(t, http.StatusInternalServerError, status)
			assert.NotContains(t, body, settings.Upstream.APIKey)

			var handlerLogged bool
			for _, entry := range hook.AllEntries() {
				line, err := entry.String()
				require.NoError(t, err)
				assert.NotContains(t, line, settings.Upstream.APIKey)
				if entry.Data["component"] == "links-handler" {
					handlerLogged = true
				}
			}
			assert.True(t, handlerLogged, "expected the handler to log the failure")
		})
	}
}
