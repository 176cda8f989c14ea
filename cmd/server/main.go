package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/amenocal/nodejs-api-demo/internal/config"
	"github.com/amenocal/nodejs-api-demo/internal/handlers"
	"github.com/amenocal/nodejs-api-demo/internal/metrics"
	"github.com/amenocal/nodejs-api-demo/internal/middlewares"
	"github.com/amenocal/nodejs-api-demo/internal/services"
)

// main 为服务入口：加载配置、初始化日志与服务、注册路由并启动 HTTP 服务。
func main() {
	// 配置结构化日志格式
	log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)

	// 加载配置（以配置文件为主，配合内置默认值）
	cfg := config.Load()
	// 生产环境基线检查：携带凭据的通配 CORS 会被浏览器拒绝，也不应出现在线上。
	if cfg.Env == "prod" && cfg.CORS.AllowCredentials && cfg.CORS.Allowed("http://attacker.invalid") {
		log.Fatal("insecure cors config in prod: wildcard origin with credentials; restrict cors.allowed_origins in config.yaml")
	}
	log.WithFields(log.Fields{
		"env":          cfg.Env,
		"http_addr":    cfg.HTTPAddr,
		"cors_origins": cfg.CORS.AllowedOrigins,
		"rate_window":  cfg.Limits.Window.String(),
	}).Info("configuration loaded")

	// 初始化核心服务（内存集合随进程生命周期存在）
	userSvc := services.NewUserService()
	postSvc := services.NewPostService()

	// HTTP 路由与中间件
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.SecurityHeaders(cfg))
	router.Use(middlewares.CORS(cfg))
	router.Use(metrics.Handler())

	// 装载 HTTP 处理器
	h := handlers.New(cfg, userSvc, postSvc)
	h.RegisterRoutes(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("starting http server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen")
		}
	}()

	// 优雅退出
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	} else {
		log.Info("server stopped")
	}
}
