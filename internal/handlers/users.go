package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/amenocal/nodejs-api-demo/internal/middlewares"
)

// listUsers 返回一页用户，支持 page/limit/search 查询参数。
func (h *Handler) listUsers(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	users, pagination := h.userSvc.List(page, limit, c.Query("search"))
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users, "pagination": pagination})
}

func (h *Handler) getUser(c *gin.Context) {
	u, err := h.userSvc.GetByID(paramID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": u})
}

func (h *Handler) createUser(c *gin.Context) {
	var in middlewares.UserInput
	// 请求体已由网关校验并缓存，这里只做还原
	_ = c.ShouldBindBodyWith(&in, binding.JSON)
	name, email, age := in.Fields()
	u, err := h.userSvc.Create(name, email, age)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User created successfully", "data": u})
}

// updateUser 整体替换用户的三个可变字段（与帖子的部分更新是两套刻意不同的契约）。
func (h *Handler) updateUser(c *gin.Context) {
	var in middlewares.UserInput
	_ = c.ShouldBindBodyWith(&in, binding.JSON)
	name, email, age := in.Fields()
	u, err := h.userSvc.Update(paramID(c), name, email, age)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated successfully", "data": u})
}

func (h *Handler) deleteUser(c *gin.Context) {
	u, err := h.userSvc.Delete(paramID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully", "data": u})
}

func (h *Handler) userStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalUsers": h.userSvc.Count(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		},
	})
}
