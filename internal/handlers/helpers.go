package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/amenocal/nodejs-api-demo/internal/services"
)

// fail 按服务层错误类别写出统一错误包络。
// 归属违规映射为 403：集合本身无法表达"资源存在但不属于你"之外的语义。
func (h *Handler) fail(c *gin.Context, err error) {
	var serr *services.Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case services.KindValidation:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": serr.Message, "errors": serr.Violations})
			return
		case services.KindNotFound:
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": serr.Message})
			return
		case services.KindConflict:
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": serr.Message})
			return
		case services.KindForbidden:
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": serr.Message})
			return
		}
	}
	log.WithError(err).WithField("path", c.Request.URL.Path).Error("unhandled error")
	body := gin.H{"success": false, "message": "Internal server error"}
	// 内部细节只在非生产环境下随响应返回
	if h.cfg.Env != "prod" {
		body["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// paramID 读取 ID 网关中间件解析好的路径参数。
func paramID(c *gin.Context) int {
	return c.GetInt("id")
}

// intQuery 解析可选的数值查询参数；缺失或无法解析时返回默认值。
// 合法性（正数、上限）已由查询参数网关保证。
func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return int(f)
}
