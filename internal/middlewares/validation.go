package middlewares

// 请求网关校验：在进入业务层之前对原始请求字段做粗粒度检查，
// 首条失败规则即以单条消息返回 400。完整的累积式校验在实体层进行。

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/amenocal/nodejs-api-demo/internal/models"
)

// UserInput 是用户写操作的原始请求体。字段保持 any，
// 网关需要区分"缺失"、"类型不对"与"值非法"。
type UserInput struct {
	Name  any `json:"name"`
	Email any `json:"email"`
	Age   any `json:"age"`
}

// PostInput 是帖子写操作的原始请求体；authorId/requestingUserId
// 在无鉴权层的前提下由请求体直接携带。
type PostInput struct {
	Title            any `json:"title"`
	Content          any `json:"content"`
	Status           any `json:"status"`
	AuthorID         any `json:"authorId"`
	RequestingUserID any `json:"requestingUserId"`
}

// ValidateUserInput 校验用户写操作的请求体；请求体不是合法 JSON 时返回
// "Invalid JSON format"。
func ValidateUserInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in UserInput
		if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
			abortBadRequest(c, "Invalid JSON format")
			return
		}
		if msg := checkUserInput(in); msg != "" {
			abortBadRequest(c, msg)
			return
		}
		c.Next()
	}
}

// ValidatePostInput 校验帖子写操作的请求体。
func ValidatePostInput() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in PostInput
		if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
			abortBadRequest(c, "Invalid JSON format")
			return
		}
		if msg := checkPostInput(in); msg != "" {
			abortBadRequest(c, msg)
			return
		}
		c.Next()
	}
}

// ValidateIDParam 校验路径参数 :id 必须为正数，并把解析结果存入 Context。
func ValidateIDParam(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, ok := parseNumber(c.Param("id"))
		if !ok || int(n) <= 0 {
			abortBadRequest(c, message)
			return
		}
		c.Set("id", int(n))
		c.Next()
	}
}

// ValidateQueryParams 校验分页查询参数；page/limit 均为可选。
func ValidateQueryParams() gin.HandlerFunc {
	return func(c *gin.Context) {
		if page := c.Query("page"); page != "" {
			n, ok := parseNumber(page)
			if !ok || int(n) <= 0 {
				abortBadRequest(c, "Page must be a positive number")
				return
			}
		}
		if limit := c.Query("limit"); limit != "" {
			n, ok := parseNumber(limit)
			if !ok || int(n) <= 0 || int(n) > 100 {
				abortBadRequest(c, "Limit must be a positive number and not exceed 100")
				return
			}
		}
		c.Next()
	}
}

func checkUserInput(in UserInput) string {
	if !isNonEmptyString(in.Name) {
		return "Name is required and must be a non-empty string"
	}
	if !isNonEmptyString(in.Email) {
		return "Email is required and must be a non-empty string"
	}
	if !truthy(in.Age) || !isNumeric(in.Age) {
		return "Age is required and must be a number"
	}
	return ""
}

func checkPostInput(in PostInput) string {
	if !isNonEmptyString(in.Title) {
		return "Title is required and must be a non-empty string"
	}
	if s, _ := in.Title.(string); len([]rune(strings.TrimSpace(s))) > 200 {
		return "Title must not exceed 200 characters"
	}
	if !isNonEmptyString(in.Content) {
		return "Content is required and must be a non-empty string"
	}
	if s, _ := in.Content.(string); len([]rune(strings.TrimSpace(s))) > 10000 {
		return "Content must not exceed 10000 characters"
	}
	if truthy(in.Status) {
		s, ok := in.Status.(string)
		if !ok || (s != models.StatusDraft && s != models.StatusPublished) {
			return `Status must be either "draft" or "published"`
		}
	}
	return ""
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// truthy 复刻宽松的真值判断：nil、false、数字 0 与空串视为缺失。
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	}
	return true
}

func isNonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// isNumeric 接受 JSON 数字与数字形态的字符串（如 "30"）。
func isNumeric(v any) bool {
	_, ok := numberValue(v)
	return ok
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// Fields 提取经网关校验后的用户字段；年龄按整数截断。
func (in UserInput) Fields() (name, email string, age int) {
	name, _ = in.Name.(string)
	email, _ = in.Email.(string)
	if n, ok := numberValue(in.Age); ok {
		age = int(n)
	}
	return name, email, age
}

// CreateFields 提取创建帖子所需字段。
func (in PostInput) CreateFields() (title, content string, authorID int, status string) {
	title, _ = in.Title.(string)
	content, _ = in.Content.(string)
	status, _ = in.Status.(string)
	return title, content, in.Author(), status
}

// Patch 把请求体转换为部分更新补丁；缺失字段保持 nil。
func (in PostInput) Patch() models.PostPatch {
	var p models.PostPatch
	if s, ok := in.Title.(string); ok {
		p.Title = &s
	}
	if s, ok := in.Content.(string); ok {
		p.Content = &s
	}
	if s, ok := in.Status.(string); ok {
		p.Status = &s
	}
	return p
}

// Author 解析 authorId：缺失时回落到用户 1（演示行为，无鉴权层），
// 无法解析的值返回 0 交由实体校验拒绝。
func (in PostInput) Author() int {
	return identityField(in.AuthorID)
}

// RequestingUser 解析 requestingUserId，规则与 Author 相同。
func (in PostInput) RequestingUser() int {
	return identityField(in.RequestingUserID)
}

func identityField(v any) int {
	if !truthy(v) {
		return 1
	}
	if n, ok := numberValue(v); ok {
		return int(n)
	}
	return 0
}
