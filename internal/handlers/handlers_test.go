package handlers

// 测试通过完整的 gin 路由发起请求，覆盖网关、处理器与错误映射的组合行为。
// 限流阈值放宽，避免测试触发 429。

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/amenocal/nodejs-api-demo/internal/config"
	"github.com/amenocal/nodejs-api-demo/internal/services"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		Env:      "test",
		HTTPAddr: ":0",
		Limits:   config.LimitConfig{Window: time.Minute, GeneralMax: 10000, StrictMax: 10000},
	}
	h := New(cfg, services.NewUserService(), services.NewPostService())
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

type envelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Errors     []string         `json:"errors"`
	Data       json.RawMessage  `json:"data"`
	Pagination map[string]int   `json:"pagination"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func dataObject(t *testing.T, env envelope) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}

func dataList(t *testing.T, env envelope) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &l))
	return l
}
