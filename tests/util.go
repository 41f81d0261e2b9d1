package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/trezcool/apar/core"
)

// Received is one request seen by a RemoteAPI.
type Received struct {
	Endpoint    string
	Faculty     string
	ContentType string
	Body        map[string]interface{}
}

// RemoteAPI fakes the appraisal API: it records every POST and answers with Status.
type RemoteAPI struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	received []Received
}

func NewRemoteAPI(t *testing.T) *RemoteAPI {
	api := &RemoteAPI{status: http.StatusOK}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

func (api *RemoteAPI) serve(w http.ResponseWriter, r *http.Request) {
	// path: /{endpoint}/{faculty}
	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	rcv := Received{Endpoint: parts[0], ContentType: r.Header.Get("Content-Type")}
	if len(parts) > 1 {
		rcv.Faculty = parts[1]
	}
	body, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(body, &rcv.Body)

	api.mu.Lock()
	api.received = append(api.received, rcv)
	status := api.status
	api.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"message":"ok"}`))
}

// Fail makes every following request answer with status.
func (api *RemoteAPI) Fail(status int) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.status = status
}

func (api *RemoteAPI) Received() []Received {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]Received(nil), api.received...)
}

// Config returns a test config pointing at the fake API.
func (api *RemoteAPI) Config() *core.Config {
	return &core.Config{
		AppName:  "APAR",
		Env:      "test",
		TestMode: true,
		Remote: core.RemoteConfig{
			BaseURL: api.URL,
			Faculty: "Neha Patel",
			Timeout: 5 * time.Second,
		},
	}
}
