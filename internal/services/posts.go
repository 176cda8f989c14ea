package services

// 帖子服务：过滤条件按 作者 → 状态 → 搜索 顺序叠加（AND 语义），
// 列表始终按创建时间倒序（最新在前）后再分页。

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amenocal/nodejs-api-demo/internal/models"
)

// PostService 管理帖子集合；写操作需通过作者归属检查。
type PostService struct {
	mu     sync.Mutex
	posts  []models.Post
	nextID int
	now    func() time.Time
}

// NewPostService 构造带初始样例数据的服务实例。
// 样例创建时间依次错开一分钟，保证倒序排序结果稳定可预期。
func NewPostService() *PostService {
	s := &PostService{nextID: 1, now: time.Now}
	seeds := []struct {
		title    string
		content  string
		authorID int
		status   string
	}{
		{"First Blog Post", "This is the content of the first blog post. It contains some interesting information about our platform.", 1, models.StatusPublished},
		{"Draft Post", "This is a draft post that is not yet published.", 2, models.StatusDraft},
		{"Another Published Post", "Here is another published post with more content and interesting insights.", 1, models.StatusPublished},
	}
	base := s.now()
	for i, f := range seeds {
		p := models.NewPost(f.title, f.content, f.authorID, f.status, base.Add(time.Duration(i-len(seeds))*time.Minute))
		p.ID = s.nextID
		s.nextID++
		s.posts = append(s.posts, p)
	}
	return s
}

// SetClock 仅用于测试，替换内部时间函数。
func (s *PostService) SetClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// PostPagination 描述帖子列表的分页信息，所有字段基于过滤后的数量计算。
type PostPagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalPosts  int `json:"totalPosts"`
	Limit       int `json:"limit"`
}

// AuthorNone 表示作者条件已提供但无法解析为有效作者；
// 合法作者 ID 均为正数，该哨兵值不会命中任何帖子。
const AuthorNone = -1

// ListOptions 描述帖子列表的过滤条件；零值表示对应条件未提供。
// AuthorID 为 0 时跳过作者过滤，其余值（包括 AuthorNone）都会参与匹配。
type ListOptions struct {
	AuthorID int
	Status   string
	Search   string
}

// List 返回一页帖子，过滤、排序与分页见包注释。
func (s *PostService) List(page, limit int, opts ListOptions) ([]models.Post, PostPagination) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, limit = normalizePaging(page, limit)

	filtered := make([]models.Post, 0, len(s.posts))
	q := strings.ToLower(opts.Search)
	for _, p := range s.posts {
		if opts.AuthorID != 0 && p.AuthorID != opts.AuthorID {
			continue
		}
		if opts.Status != "" && p.Status != opts.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Content), q) {
			continue
		}
		filtered = append(filtered, p)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	pageItems := paginate(filtered, page, limit)
	out := make([]models.Post, len(pageItems))
	copy(out, pageItems)
	return out, PostPagination{
		CurrentPage: page,
		TotalPages:  totalPages(len(filtered), limit),
		TotalPosts:  len(filtered),
		Limit:       limit,
	}
}

// GetByID 按 ID 精确查找。
func (s *PostService) GetByID(id int) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, notFound("Post", id)
	}
	return s.posts[i], nil
}

// Create 校验候选帖子后分配 ID 入库；状态缺省为 draft。
func (s *PostService) Create(title, content string, authorID int, status string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.NewPost(title, content, authorID, status, s.now())
	if errs := p.Validate(); len(errs) > 0 {
		return models.Post{}, invalid(errs)
	}
	p.ID = s.nextID
	s.nextID++
	s.posts = append(s.posts, p)
	return p, nil
}

// Update 对帖子做部分更新：仅补丁中出现的字段被覆盖。
// 只有作者本人可以更新；补丁先套用到暂存副本并校验，通过后才提交，
// 被拒绝的补丁不会在集合里留下任何改动。
func (s *PostService) Update(id int, patch models.PostPatch, requestingUserID int) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, notFound("Post", id)
	}
	if s.posts[i].AuthorID != requestingUserID {
		return models.Post{}, forbidden("You can only update your own posts")
	}
	cand := s.posts[i].Apply(patch, s.now())
	if errs := cand.Validate(); len(errs) > 0 {
		return models.Post{}, invalid(errs)
	}
	s.posts[i] = cand
	return cand, nil
}

// Delete 移除并返回被删除的帖子；只有作者本人可以删除。
func (s *PostService) Delete(id, requestingUserID int) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, notFound("Post", id)
	}
	if s.posts[i].AuthorID != requestingUserID {
		return models.Post{}, forbidden("You can only delete your own posts")
	}
	removed := s.posts[i]
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return removed, nil
}

// Count 返回当前帖子总数。
func (s *PostService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// ListByAuthor 返回指定作者的全部帖子，保持插入顺序。
func (s *PostService) ListByAuthor(authorID int) []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Post
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out
}

func (s *PostService) indexOf(id int) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
