package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamjmurray/producer-pal-sub001/config"
	"github.com/adamjmurray/producer-pal-sub001/live/livetest"
	"github.com/adamjmurray/producer-pal-sub001/tools"
)

func newTestServer() (*Server, *livetest.Fake) {
	f := livetest.NewFake()
	engine := tools.NewEngine(f, config.Config{})
	return New(engine), f
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestToolSuccess(t *testing.T) {
	s, f := newTestServer()
	track := f.AddTrack("Drums")
	f.AddTrack("Bass")

	rec := post(t, s, "/tools/duplicate", `{"id":"`+track.ID+`","type":"track"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body struct {
		Result struct {
			Duplicated struct {
				ID   string `json:"id"`
				Type string `json:"type"`
			} `json:"duplicated"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "track", body.Result.Duplicated.Type)
	assert.NotEmpty(t, body.Result.Duplicated.ID)
	assert.Len(t, f.Tracks, 3)
}

func TestRequestIDPassthrough(t *testing.T) {
	s, f := newTestServer()
	track := f.AddTrack("Drums")

	req := httptest.NewRequest(http.MethodPost, "/tools/readClip", strings.NewReader(`{"id":"`+track.ID+`"}`))
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestUnknownIDMapsTo404(t *testing.T) {
	s, _ := newTestServer()
	rec := post(t, s, "/tools/duplicate", `{"id":"999","type":"track"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "999")
}

func TestValidationMapsTo400(t *testing.T) {
	s, f := newTestServer()
	track := f.AddTrack("Drums")

	rec := post(t, s, "/tools/duplicate", `{"id":"`+track.ID+`","type":"widget"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLimitExceededMapsTo422(t *testing.T) {
	s, f := newTestServer()
	track := f.AddTrack("Keys")
	clip := f.AddArrangementClip(track, 0, 400)

	rec := post(t, s, "/tools/transformClips", `{"clipIds":"`+clip.ID+`","slice":"1:0","seed":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestUnknownTool(t *testing.T) {
	s, _ := newTestServer()
	rec := post(t, s, "/tools/launchConfetti", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedBody(t *testing.T) {
	s, _ := newTestServer()
	rec := post(t, s, "/tools/delete", `{"ids":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
