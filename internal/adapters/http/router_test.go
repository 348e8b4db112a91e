package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/VdoCall/internal/adapters/signal"
	"github.com/dkeye/VdoCall/internal/app"
	"github.com/dkeye/VdoCall/internal/app/orch"
	"github.com/dkeye/VdoCall/internal/config"
	"github.com/dkeye/VdoCall/internal/core"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func testConfig(static string) *config.Config {
	return &config.Config{
		Mode:           "test",
		Secret:         "test-secret",
		StaticPath:     static,
		ReadLimit:      4096,
		PingPeriod:     30 * time.Second,
		PongWait:       time.Minute,
		WriteWait:      time.Second,
		SendBuffer:     8,
		AllowedOrigins: []string{"http://app.example"},
	}
}

func newRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *orch.Orchestrator) {
	t.Helper()
	o := orch.New(app.NewRegistry(), app.NewRoomManager(), app.SimplePolicy{})
	ctrl := signal.NewSignalWSController(o, signal.NewRoomRateLimiter(0, 0), signal.Options{
		ReadLimit:      cfg.ReadLimit,
		PingPeriod:     cfg.PingPeriod,
		PongWait:       cfg.PongWait,
		WriteWait:      cfg.WriteWait,
		SendBuffer:     cfg.SendBuffer,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	ice := []webrtc.ICEServer{{URLs: []string{"stun:stun.example.org:3478"}}}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return SetupRouter(ctx, cfg, o, ctrl, ice), o
}

func get(r http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRootAndHealth(t *testing.T) {
	r, _ := newRouter(t, testConfig(""))

	w := get(r, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"VdoCall Signaling Server Running"}`, w.Body.String())

	w = get(r, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRoomsEndpoints(t *testing.T) {
	r, o := newRouter(t, testConfig(""))
	o.Connect("a", nopConn{}, func() {})
	o.Connect("b", nopConn{}, func() {})
	o.Connect("c", nopConn{}, func() {})
	o.Join("a", "lobby")
	o.Join("b", "lobby")
	o.Join("c", "lobby")

	w := get(r, "/api/rooms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rooms":[{"roomId":"lobby","userCount":2,"queueLength":1}]}`, w.Body.String())

	w = get(r, "/api/rooms/lobby", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"roomId":"lobby","userCount":2,"queueLength":1}`, w.Body.String())

	w = get(r, "/api/rooms/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, o.Rooms.Len())
}

func TestICEServersEndpoint(t *testing.T) {
	r, _ := newRouter(t, testConfig(""))
	w := get(r, "/api/ice-servers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"iceServers"`)
	assert.Contains(t, w.Body.String(), "stun:stun.example.org:3478")
}

func TestClientTokenSessionCookie(t *testing.T) {
	r, _ := newRouter(t, testConfig(""))
	w := get(r, "/", nil)

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName {
			found = true
			assert.NotEmpty(t, c.Value)
		}
	}
	assert.True(t, found, "session cookie should be issued")
}

func TestCORS(t *testing.T) {
	r, _ := newRouter(t, testConfig(""))

	w := get(r, "/api/rooms", http.Header{"Origin": {"http://app.example"}})
	assert.Equal(t, "http://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(r, "/api/rooms", http.Header{"Origin": {"http://evil.example"}})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/rooms", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}
	assert.Equal(t, http.StatusNoContent, preflight("http://app.example").Code)
	assert.Equal(t, http.StatusNoContent, preflight("").Code)

	rec := preflight("http://evil.example")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddlewareEmptyListAllowsAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, "/x", http.Header{"Origin": {"http://any.example"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://any.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi"), 0o644))
	r, _ := newRouter(t, testConfig(dir))

	w := get(r, "/static/hello.txt", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", w.Body.String())
}

func TestWebSocketRoutes(t *testing.T) {
	r, _ := newRouter(t, testConfig(""))
	srv := httptest.NewServer(r)
	defer srv.Close()

	for _, path := range []string{"/ws", "/api/ws/signal"} {
		t.Run(path, func(t *testing.T) {
			url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
			conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://app.example"}})
			require.NoError(t, err)
			defer conn.Close()

			require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
			_, data, err := conn.ReadMessage()
			require.NoError(t, err)

			var welcome struct {
				Type string `json:"type"`
				ID   string `json:"id"`
			}
			require.NoError(t, json.Unmarshal(data, &welcome))
			assert.Equal(t, "welcome", welcome.Type)
			assert.NotEmpty(t, welcome.ID)
		})
	}
}
