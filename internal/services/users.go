package services

// 用户服务：独占持有内存集合与自增 ID 计数器，提供查询、分页、创建、更新与删除。

import (
	"strings"
	"sync"
	"time"

	"github.com/amenocal/nodejs-api-demo/internal/models"
)

// UserService 管理用户集合。互斥锁保证并发请求下仍保持单写者语义；
// 被删除的 ID 不会回收复用。
type UserService struct {
	mu     sync.Mutex
	users  []models.User
	nextID int
	now    func() time.Time
}

// NewUserService 构造带初始样例数据的服务实例，计数器从 4 继续。
func NewUserService() *UserService {
	s := &UserService{nextID: 1, now: time.Now}
	seeds := []struct {
		name  string
		email string
		age   int
	}{
		{"John Doe", "john@example.com", 30},
		{"Jane Smith", "jane@example.com", 25},
		{"Bob Johnson", "bob@example.com", 35},
	}
	for _, f := range seeds {
		u := models.NewUser(f.name, f.email, f.age, s.now())
		u.ID = s.nextID
		s.nextID++
		s.users = append(s.users, u)
	}
	return s
}

// SetClock 仅用于测试，替换内部时间函数。
func (s *UserService) SetClock(clock func() time.Time) {
	if clock != nil {
		s.now = clock
	}
}

// UserPagination 描述用户列表的分页信息，所有字段基于过滤后的数量计算。
type UserPagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalUsers  int `json:"totalUsers"`
	Limit       int `json:"limit"`
}

// List 返回一页用户。search 非空时先按姓名/邮箱做大小写不敏感的子串过滤，
// 结果保持插入顺序。
func (s *UserService) List(page, limit int, search string) ([]models.User, UserPagination) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, limit = normalizePaging(page, limit)

	filtered := s.users
	if search != "" {
		q := strings.ToLower(search)
		filtered = make([]models.User, 0, len(s.users))
		for _, u := range s.users {
			if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
				filtered = append(filtered, u)
			}
		}
	}

	pageItems := paginate(filtered, page, limit)
	out := make([]models.User, len(pageItems))
	copy(out, pageItems)
	return out, UserPagination{
		CurrentPage: page,
		TotalPages:  totalPages(len(filtered), limit),
		TotalUsers:  len(filtered),
		Limit:       limit,
	}
}

// GetByID 按 ID 精确查找。
func (s *UserService) GetByID(id int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.User{}, notFound("User", id)
	}
	return s.users[i], nil
}

// Create 校验候选用户并检查邮箱唯一性（存量邮箱已归一化为小写），通过后分配 ID 入库。
func (s *UserService) Create(name, email string, age int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := models.NewUser(name, email, age, s.now())
	if errs := u.Validate(); len(errs) > 0 {
		return models.User{}, invalid(errs)
	}
	if s.emailTaken(u.Email, 0) {
		return models.User{}, conflict("User with this email already exists")
	}
	u.ID = s.nextID
	s.nextID++
	s.users = append(s.users, u)
	return u, nil
}

// Update 整体替换三个可变字段（姓名/邮箱/年龄都必须提供）。
// 候选副本先通过校验与唯一性检查，之后才写回集合，失败不会留下半更新状态。
func (s *UserService) Update(id int, name, email string, age int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.User{}, notFound("User", id)
	}
	cand := s.users[i].Replace(name, email, age, s.now())
	if errs := cand.Validate(); len(errs) > 0 {
		return models.User{}, invalid(errs)
	}
	if s.emailTaken(cand.Email, id) {
		return models.User{}, conflict("Email already exists for another user")
	}
	s.users[i] = cand
	return cand, nil
}

// Delete 移除并返回被删除的用户；其 ID 之后不再分配。
func (s *UserService) Delete(id int) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.User{}, notFound("User", id)
	}
	removed := s.users[i]
	s.users = append(s.users[:i], s.users[i+1:]...)
	return removed, nil
}

// Count 返回当前用户总数。
func (s *UserService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *UserService) indexOf(id int) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// emailTaken 检查归一化后的邮箱是否已被其他用户占用；excludeID 用于更新时跳过自身。
func (s *UserService) emailTaken(email string, excludeID int) bool {
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true
		}
	}
	return false
}
