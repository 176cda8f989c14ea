package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// 帖子状态枚举。
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

const (
	maxTitleLen   = 200
	maxContentLen = 10000
)

// Post 表示一篇帖子；authorId 记录作者，写操作只允许作者本人执行。
type Post struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int       `json:"authorId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPost 构造归一化后的候选帖子，状态缺省为 draft。
func NewPost(title, content string, authorID int, status string, now time.Time) Post {
	if status == "" {
		status = StatusDraft
	}
	return Post{
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		AuthorID:  authorID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// PostPatch 表示部分更新：nil 字段保持原值（与用户的整体替换形成对照，两种契约都保留）。
type PostPatch struct {
	Title   *string
	Content *string
	Status  *string
}

// Apply 把补丁套用到副本上并刷新 updatedAt；调用方校验通过后才提交到集合。
func (p Post) Apply(patch PostPatch, now time.Time) Post {
	if patch.Title != nil {
		p.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		p.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = now
	return p
}

// Validate 按固定顺序累积所有违规信息。
// 标题/正文的"缺失"与"超长"互斥；长度按字符（rune）计数。
func (p Post) Validate() []string {
	var errs []string
	title := strings.TrimSpace(p.Title)
	if title == "" {
		errs = append(errs, "Title is required")
	} else if utf8.RuneCountInString(title) > maxTitleLen {
		errs = append(errs, "Title must not exceed 200 characters")
	}
	content := strings.TrimSpace(p.Content)
	if content == "" {
		errs = append(errs, "Content is required")
	} else if utf8.RuneCountInString(content) > maxContentLen {
		errs = append(errs, "Content must not exceed 10000 characters")
	}
	if p.AuthorID <= 0 {
		errs = append(errs, "Valid author ID is required")
	}
	if p.Status != "" && p.Status != StatusDraft && p.Status != StatusPublished {
		errs = append(errs, `Status must be either "draft" or "published"`)
	}
	return errs
}
