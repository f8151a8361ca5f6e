package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tomz197/mergebox/internal/highscore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	router := newRouter(highscore.NewMemoryStore(0), "play.example.com", "2222", zap.NewNop())
	rec := serve(t, router, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ssh -t -p 2222 play.example.com")
}

func TestHighScoreAPI(t *testing.T) {
	store := highscore.NewMemoryStore(0)
	_, err := store.Submit(context.Background(), 128)
	require.NoError(t, err)

	rec := serve(t, newRouter(store, "h", "22", zap.NewNop()), "/api/highscore")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Key       string `json:"key"`
		HighScore int    `json:"highscore"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, highscore.Key, body.Key)
	assert.Equal(t, 128, body.HighScore)
}

func TestHealthz(t *testing.T) {
	rec := serve(t, newRouter(highscore.NewMemoryStore(0), "h", "22", zap.NewNop()), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
