package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	httpadapter "urlnotes/internal/urlnotes/adapters/http"
	"urlnotes/internal/urlnotes/adapters/http/middleware"
	"urlnotes/internal/urlnotes/adapters/memory"
	"urlnotes/internal/urlnotes/app"
	"urlnotes/internal/urlnotes/domain/entities"
	"urlnotes/pkg/logger"
)

var fixedNow = time.UnixMilli(1_712_345_678_901)

type testServer struct {
	app     *fiber.App
	backend *memory.Backend
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	backend := memory.NewBackend()
	clock := app.WithClock(func() time.Time { return fixedNow })

	fiberApp := fiber.New()
	httpadapter.SetupRouter(fiberApp,
		app.NewNoteUseCase(backend, "/data/notes", clock),
		app.NewDrawingUseCase(backend, "/data/drawings", clock))

	return &testServer{app: fiberApp, backend: backend}
}

func (s *testServer) do(t *testing.T, method, target, body string) (int, map[string]any, *http.Response) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded, resp
}

func TestNotesEndpoints(t *testing.T) {
	t.Run("get missing note returns empty content", func(t *testing.T) {
		s := newTestServer(t)

		status, body, _ := s.do(t, http.MethodGet, "/api/notes/unknown", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"note": ""}, body)
	})

	t.Run("round trip", func(t *testing.T) {
		s := newTestServer(t)

		status, body, _ := s.do(t, http.MethodPost, "/api/notes/h1", `{"note":"hello","url":"http://x","timestamp":123}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"status": "saved", "note": "hello", "url": "http://x", "timestamp": float64(123)}, body)

		status, body, _ = s.do(t, http.MethodGet, "/api/notes/h1", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"note": "hello"}, body)

		raw, err := s.backend.ReadFile(context.Background(), "/data/notes/h1.md")
		require.NoError(t, err)
		assert.Equal(t, "<!-- URL: http://x -->\nhello", string(raw))
	})

	t.Run("empty body uses defaults", func(t *testing.T) {
		s := newTestServer(t)

		status, body, _ := s.do(t, http.MethodPost, "/api/notes/h2", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{
			"status":    "saved",
			"note":      "",
			"url":       "",
			"timestamp": float64(fixedNow.UnixMilli()),
		}, body)
	})

	t.Run("zero timestamp is replaced with now", func(t *testing.T) {
		s := newTestServer(t)

		_, body, _ := s.do(t, http.MethodPost, "/api/notes/h", `{"note":"x","timestamp":0}`)
		assert.Equal(t, float64(fixedNow.UnixMilli()), body["timestamp"])
	})

	t.Run("overwrite returns latest", func(t *testing.T) {
		s := newTestServer(t)

		s.do(t, http.MethodPost, "/api/notes/h", `{"note":"one"}`)
		s.do(t, http.MethodPost, "/api/notes/h", `{"note":"two"}`)

		_, body, _ := s.do(t, http.MethodGet, "/api/notes/h", "")
		assert.Equal(t, "two", body["note"])
	})

	t.Run("legacy file without url comment", func(t *testing.T) {
		s := newTestServer(t)
		require.NoError(t, s.backend.WriteFile(context.Background(), "/data/notes/old.md", []byte("plain\ntext")))

		_, body, _ := s.do(t, http.MethodGet, "/api/notes/old", "")
		assert.Equal(t, "plain\ntext", body["note"])
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := newTestServer(t)

		s.do(t, http.MethodPost, "/api/notes/h", `{"note":"x"}`)

		status, body, _ := s.do(t, http.MethodDelete, "/api/notes/h", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"status": "deleted", "id": "h"}, body)

		status, body, _ = s.do(t, http.MethodDelete, "/api/notes/h", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"status": "deleted", "id": "h"}, body)

		_, body, _ = s.do(t, http.MethodGet, "/api/notes/h", "")
		assert.Equal(t, "", body["note"])
	})
}

func TestDrawingsEndpoints(t *testing.T) {
	t.Run("get missing drawing returns null", func(t *testing.T) {
		s := newTestServer(t)

		status, body, _ := s.do(t, http.MethodGet, "/api/excalidraw/unknown", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"drawing": nil}, body)
	})

	t.Run("round trip", func(t *testing.T) {
		s := newTestServer(t)

		status, body, _ := s.do(t, http.MethodPost, "/api/excalidraw/d1", `{"drawing":{"a":1},"url":"http://x","timestamp":5}`)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{
			"status":    "saved",
			"drawing":   map[string]any{"a": float64(1)},
			"url":       "http://x",
			"timestamp": float64(5),
		}, body)

		status, body, _ = s.do(t, http.MethodGet, "/api/excalidraw/d1", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"drawing": map[string]any{"a": float64(1)}}, body)

		raw, err := s.backend.ReadFile(context.Background(), "/data/drawings/d1.json")
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\": 1\n}", string(raw))
	})

	t.Run("empty body uses defaults", func(t *testing.T) {
		s := newTestServer(t)

		_, body, _ := s.do(t, http.MethodPost, "/api/excalidraw/d", "")
		assert.Equal(t, map[string]any{
			"status":    "saved",
			"drawing":   map[string]any{},
			"url":       "",
			"timestamp": float64(fixedNow.UnixMilli()),
		}, body)
	})

	t.Run("malformed stored drawing is a server error", func(t *testing.T) {
		s := newTestServer(t)
		require.NoError(t, s.backend.WriteFile(context.Background(), "/data/drawings/bad.json", []byte("{oops")))

		status, body, _ := s.do(t, http.MethodGet, "/api/excalidraw/bad", "")
		assert.Equal(t, http.StatusInternalServerError, status)
		detail, ok := body["detail"].(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(detail, "Server error: "))
	})

	t.Run("delete is idempotent and independent from notes", func(t *testing.T) {
		s := newTestServer(t)

		s.do(t, http.MethodPost, "/api/notes/same", `{"note":"keep"}`)
		s.do(t, http.MethodPost, "/api/excalidraw/same", `{"drawing":{"x":1}}`)

		for i := 0; i < 2; i++ {
			status, body, _ := s.do(t, http.MethodDelete, "/api/excalidraw/same", "")
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, map[string]any{"status": "deleted", "id": "same"}, body)
		}

		_, body, _ := s.do(t, http.MethodGet, "/api/notes/same", "")
		assert.Equal(t, "keep", body["note"])
	})
}

func TestConcurrentWritesDoNotTouchOtherIdentifiers(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/notes/other", `{"note":"untouched"}`)

	var wg sync.WaitGroup
	for _, content := range []string{"a", "b"} {
		wg.Add(1)
		go func(content string) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/api/notes/race", strings.NewReader(`{"note":"`+content+`"}`))
			resp, err := s.app.Test(req)
			if err == nil {
				resp.Body.Close()
			}
		}(content)
	}
	wg.Wait()

	_, body, _ := s.do(t, http.MethodGet, "/api/notes/race", "")
	assert.Contains(t, []any{"a", "b"}, body["note"])

	_, body, _ = s.do(t, http.MethodGet, "/api/notes/other", "")
	assert.Equal(t, "untouched", body["note"])
}

func TestServiceFailures(t *testing.T) {
	notesSvc := new(mockNotesService)
	drawingsSvc := new(mockDrawingsService)
	errBoom := errors.New("permission denied")

	notesSvc.On("GetNote", mock.Anything, "x").Return("", errBoom)
	notesSvc.On("SaveNote", mock.Anything, mock.Anything).Return(nil, errBoom)
	notesSvc.On("DeleteNote", mock.Anything, "x").Return(errBoom)
	drawingsSvc.On("GetDrawing", mock.Anything, "x").Return(nil, errBoom)
	drawingsSvc.On("SaveDrawing", mock.Anything, mock.Anything).Return(nil, errBoom)
	drawingsSvc.On("DeleteDrawing", mock.Anything, "x").Return(errBoom)

	fiberApp := fiber.New()
	httpadapter.SetupRouter(fiberApp, notesSvc, drawingsSvc)
	s := &testServer{app: fiberApp}

	for _, target := range []string{"/api/notes/x", "/api/excalidraw/x"} {
		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
			t.Run(method+" "+target, func(t *testing.T) {
				status, body, _ := s.do(t, method, target, "")
				assert.Equal(t, http.StatusInternalServerError, status)
				assert.Equal(t, map[string]any{"detail": "Server error: permission denied"}, body)
			})
		}
	}

	notesSvc.AssertExpectations(t)
	drawingsSvc.AssertExpectations(t)
}

func TestPanicIsRecovered(t *testing.T) {
	notesSvc := new(mockNotesService)
	notesSvc.On("GetNote", mock.Anything, "p").Run(func(mock.Arguments) { panic("kaboom") })

	fiberApp := fiber.New()
	httpadapter.SetupRouter(fiberApp, notesSvc, new(mockDrawingsService))
	s := &testServer{app: fiberApp}

	status, body, _ := s.do(t, http.MethodGet, "/api/notes/p", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Server error: panic: kaboom", body["detail"])
}

func TestCrossCuttingRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("health", func(t *testing.T) {
		status, body, _ := s.do(t, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, map[string]any{"status": "ok"}, body)
	})

	t.Run("unknown route", func(t *testing.T) {
		status, body, _ := s.do(t, http.MethodGet, "/api/unknown", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, map[string]any{"detail": "Not Found"}, body)
	})

	t.Run("cors allows any origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notes/h", nil)
		req.Header.Set("Origin", "https://example.com")

		resp, err := s.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	})

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/excalidraw/h", nil)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)

		resp, err := s.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})

	t.Run("request id is echoed or generated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notes/h", nil)
		req.Header.Set(middleware.HeaderRequestID, "abc-123")

		resp, err := s.app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, "abc-123", resp.Header.Get(middleware.HeaderRequestID))

		_, _, resp = s.do(t, http.MethodGet, "/api/notes/h", "")
		assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))
	})
}

func TestHandlerLogsCarryRequestFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.SetGlobalLogger(logger.NewFromZap(zap.New(core)))
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/notes/h", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-7")

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	entries := logs.FilterMessage("handling get note request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/notes/h", fields["path"])
	assert.Equal(t, http.MethodGet, fields["method"])
	assert.Equal(t, "h", fields["url_hash"])
	assert.Equal(t, "req-7", fields[logger.RequestID])
}

type mockNotesService struct {
	mock.Mock
}

func (m *mockNotesService) GetNote(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockNotesService) SaveNote(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNotesService) DeleteNote(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockDrawingsService struct {
	mock.Mock
}

func (m *mockDrawingsService) GetDrawing(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockDrawingsService) SaveDrawing(ctx context.Context, drawing *entities.Drawing) (*entities.Drawing, error) {
	args := m.Called(ctx, drawing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Drawing), args.Error(1)
}

func (m *mockDrawingsService) DeleteDrawing(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
