package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amenocal/nodejs-api-demo/internal/config"
	"github.com/amenocal/nodejs-api-demo/internal/metrics"
	"github.com/amenocal/nodejs-api-demo/internal/middlewares"
	"github.com/amenocal/nodejs-api-demo/internal/services"
)

// Handler 聚合所有依赖（配置与领域服务）并注册全部 HTTP 路由。
type Handler struct {
	cfg       config.Config
	userSvc   *services.UserService
	postSvc   *services.PostService
	startedAt time.Time
}

// New 构造 Handler，将领域服务注入，用于后续路由注册与处理。
func New(cfg config.Config, us *services.UserService, ps *services.PostService) *Handler {
	return &Handler{cfg: cfg, userSvc: us, postSvc: ps, startedAt: time.Now()}
}

// RegisterRoutes 在 Gin 路由上挂载全部端点。
// 读接口走宽松限流，写接口走严格限流（对应原服务的 general/strict 两档）。
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	general := middlewares.RateLimit(h.cfg.Limits.GeneralMax, h.cfg.Limits.Window, middlewares.ByClientIP)
	strict := middlewares.RateLimit(h.cfg.Limits.StrictMax, h.cfg.Limits.Window, middlewares.ByClientIP)

	// 运维端点
	r.GET("/health", h.health)
	r.GET("/info", h.info)
	r.GET("/metrics", metrics.Exposer())

	users := r.Group("/api/users")
	users.GET("", general, middlewares.ValidateQueryParams(), h.listUsers)
	users.GET("/stats", general, h.userStats)
	users.GET("/:id", general, middlewares.ValidateIDParam("Valid user ID is required"), h.getUser)
	users.POST("", strict, middlewares.ValidateUserInput(), h.createUser)
	users.PUT("/:id", strict, middlewares.ValidateIDParam("Valid user ID is required"), middlewares.ValidateUserInput(), h.updateUser)
	users.DELETE("/:id", strict, middlewares.ValidateIDParam("Valid user ID is required"), h.deleteUser)

	posts := r.Group("/api/posts")
	posts.GET("", general, middlewares.ValidateQueryParams(), h.listPosts)
	posts.GET("/stats", general, h.postStats)
	posts.GET("/:id", general, middlewares.ValidateIDParam("Valid post ID is required"), h.getPost)
	posts.POST("", strict, middlewares.ValidatePostInput(), h.createPost)
	posts.PUT("/:id", strict, middlewares.ValidateIDParam("Valid post ID is required"), middlewares.ValidatePostInput(), h.updatePost)
	posts.DELETE("/:id", strict, middlewares.ValidateIDParam("Valid post ID is required"), h.deletePost)

	r.NoRoute(h.notFound)
}

// health 返回存活状态与运行时长（秒）。
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Server is running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
		"uptime":      time.Since(h.startedAt).Seconds(),
		"environment": h.cfg.Env,
	})
}

// info 返回 API 元数据。
func (h *Handler) info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"name":        "CRUD API",
			"version":     "1.0.0",
			"description": "RESTful API with CRUD operations for users and posts",
			"endpoints": gin.H{
				"users":  "/api/users",
				"posts":  "/api/posts",
				"health": "/health",
				"info":   "/info",
			},
		},
	})
}

func (h *Handler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": fmt.Sprintf("Route %s %s not found", c.Request.Method, c.Request.URL.Path),
	})
}
