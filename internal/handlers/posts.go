package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/amenocal/nodejs-api-demo/internal/middlewares"
	"github.com/amenocal/nodejs-api-demo/internal/services"
)

// listPosts 返回一页帖子，除分页与搜索外还支持 authorId/status 过滤。
func (h *Handler) listPosts(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 10)
	opts := services.ListOptions{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	// authorId 只要出现就会参与过滤：无法解析或非正数的值不命中任何帖子
	if raw := c.Query("authorId"); raw != "" {
		opts.AuthorID = services.AuthorNone
		if f, err := strconv.ParseFloat(raw, 64); err == nil && int(f) > 0 {
			opts.AuthorID = int(f)
		}
	}
	posts, pagination := h.postSvc.List(page, limit, opts)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": posts, "pagination": pagination})
}

func (h *Handler) getPost(c *gin.Context) {
	p, err := h.postSvc.GetByID(paramID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

func (h *Handler) createPost(c *gin.Context) {
	var in middlewares.PostInput
	_ = c.ShouldBindBodyWith(&in, binding.JSON)
	title, content, authorID, status := in.CreateFields()
	p, err := h.postSvc.Create(title, content, authorID, status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Post created successfully", "data": p})
}

// updatePost 对帖子做部分更新；requestingUserId 来自请求体（无鉴权层）。
func (h *Handler) updatePost(c *gin.Context) {
	var in middlewares.PostInput
	_ = c.ShouldBindBodyWith(&in, binding.JSON)
	p, err := h.postSvc.Update(paramID(c), in.Patch(), in.RequestingUser())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post updated successfully", "data": p})
}

// deletePost 的请求体可选，仅用于携带 requestingUserId。
func (h *Handler) deletePost(c *gin.Context) {
	var in middlewares.PostInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindBodyWith(&in, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid JSON format"})
			return
		}
	}
	p, err := h.postSvc.Delete(paramID(c), in.RequestingUser())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted successfully", "data": p})
}

func (h *Handler) postStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalPosts": h.postSvc.Count(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		},
	})
}
