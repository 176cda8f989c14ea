package middlewares

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type gateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int    `json:"id"`
}

func gateRouter(method, path string, mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, path, mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "id": c.GetInt("id")})
	})
	return r
}

func doGate(t *testing.T, r *gin.Engine, method, path, body string) (int, gateResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var resp gateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestValidateUserInput(t *testing.T) {
	r := gateRouter(http.MethodPost, "/users", ValidateUserInput())
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"valid body", `{"name":"John","email":"j@e.com","age":30}`, 200, ""},
		{"numeric string age accepted", `{"name":"John","email":"j@e.com","age":"30"}`, 200, ""},
		{"missing name", `{"email":"j@e.com","age":30}`, 400, "Name is required and must be a non-empty string"},
		{"blank name", `{"name":"   ","email":"j@e.com","age":30}`, 400, "Name is required and must be a non-empty string"},
		{"non-string name", `{"name":42,"email":"j@e.com","age":30}`, 400, "Name is required and must be a non-empty string"},
		{"missing email", `{"name":"John","age":30}`, 400, "Email is required and must be a non-empty string"},
		{"missing age", `{"name":"John","email":"j@e.com"}`, 400, "Age is required and must be a number"},
		{"non-numeric age", `{"name":"John","email":"j@e.com","age":"abc"}`, 400, "Age is required and must be a number"},
		{"zero age treated as missing", `{"name":"John","email":"j@e.com","age":0}`, 400, "Age is required and must be a number"},
		{"first failing rule wins", `{}`, 400, "Name is required and must be a non-empty string"},
		{"malformed json", `{"name":`, 400, "Invalid JSON format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doGate(t, r, http.MethodPost, "/users", tt.body)
			require.Equal(t, tt.wantCode, code)
			if tt.wantMsg != "" {
				require.False(t, resp.Success)
				require.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}

func TestValidatePostInput(t *testing.T) {
	r := gateRouter(http.MethodPost, "/posts", ValidatePostInput())
	longTitle := strings.Repeat("a", 201)
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{"valid body", `{"title":"T","content":"C"}`, 200, ""},
		{"valid with status", `{"title":"T","content":"C","status":"published"}`, 200, ""},
		{"missing title", `{"content":"C"}`, 400, "Title is required and must be a non-empty string"},
		{"title too long", `{"title":"` + longTitle + `","content":"C"}`, 400, "Title must not exceed 200 characters"},
		{"missing content", `{"title":"T"}`, 400, "Content is required and must be a non-empty string"},
		{"bad status", `{"title":"T","content":"C","status":"archived"}`, 400, `Status must be either "draft" or "published"`},
		{"empty status ignored", `{"title":"T","content":"C","status":""}`, 200, ""},
		{"malformed json", `not json`, 400, "Invalid JSON format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doGate(t, r, http.MethodPost, "/posts", tt.body)
			require.Equal(t, tt.wantCode, code)
			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}

func TestValidateIDParam(t *testing.T) {
	r := gateRouter(http.MethodGet, "/users/:id", ValidateIDParam("Valid user ID is required"))
	tests := []struct {
		name     string
		id       string
		wantCode int
		wantID   int
	}{
		{"positive id", "5", 200, 5},
		{"non-numeric", "abc", 400, 0},
		{"zero", "0", 400, 0},
		{"negative", "-1", 400, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doGate(t, r, http.MethodGet, "/users/"+tt.id, "")
			require.Equal(t, tt.wantCode, code)
			if code == 200 {
				require.Equal(t, tt.wantID, resp.ID)
			} else {
				require.Equal(t, "Valid user ID is required", resp.Message)
			}
		})
	}
}

func TestValidateQueryParams(t *testing.T) {
	r := gateRouter(http.MethodGet, "/users", ValidateQueryParams())
	tests := []struct {
		name     string
		query    string
		wantCode int
		wantMsg  string
	}{
		{"no params", "", 200, ""},
		{"valid params", "?page=2&limit=50", 200, ""},
		{"limit at cap", "?limit=100", 200, ""},
		{"zero page", "?page=0", 400, "Page must be a positive number"},
		{"non-numeric page", "?page=abc", 400, "Page must be a positive number"},
		{"zero limit", "?limit=0", 400, "Limit must be a positive number and not exceed 100"},
		{"limit above cap", "?limit=101", 400, "Limit must be a positive number and not exceed 100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := doGate(t, r, http.MethodGet, "/users"+tt.query, "")
			require.Equal(t, tt.wantCode, code)
			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}

func TestPostInputIdentityFields(t *testing.T) {
	// 缺失或 falsy 的身份字段回落到用户 1，无法解析的值交给实体校验
	require.Equal(t, 1, PostInput{}.RequestingUser())
	require.Equal(t, 1, PostInput{RequestingUserID: float64(0)}.RequestingUser())
	require.Equal(t, 2, PostInput{RequestingUserID: float64(2)}.RequestingUser())
	require.Equal(t, 2, PostInput{RequestingUserID: "2"}.RequestingUser())
	require.Equal(t, 0, PostInput{RequestingUserID: "abc"}.RequestingUser())
	require.Equal(t, 1, PostInput{}.Author())
}
