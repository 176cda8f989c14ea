package models

import (
	"regexp"
	"strings"
	"time"
)

// emailPattern 采用与前端一致的宽松格式（local@domain.tld 形态），不做完整 RFC 校验。
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// User 表示一个用户实体；字段序列化为 camelCase 以保持对外契约不变。
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUser 构造归一化后的候选用户：姓名去首尾空白，邮箱去空白并统一小写。
// ID 由服务层在落库时分配。
func NewUser(name, email string, age int, now time.Time) User {
	return User{
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Age:       age,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Replace 返回三个可变字段全部被覆盖后的副本（用户更新是整体替换，不支持部分更新）。
func (u User) Replace(name, email string, age int, now time.Time) User {
	u.Name = strings.TrimSpace(name)
	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.Age = age
	u.UpdatedAt = now
	return u
}

// Validate 按固定顺序累积所有违规信息，永不中途截断。
// 邮箱的"缺失"与"格式错误"互斥，只会给出其中一条。
func (u User) Validate() []string {
	var errs []string
	if strings.TrimSpace(u.Name) == "" {
		errs = append(errs, "Name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		errs = append(errs, "Email is required")
	} else if !emailPattern.MatchString(u.Email) {
		errs = append(errs, "Email format is invalid")
	}
	// 年龄为零值时视为缺失：沿用原服务的 falsy 判断，0 不是可接受的年龄。
	if u.Age == 0 || u.Age < 0 || u.Age > 150 {
		errs = append(errs, "Age must be a valid number between 0 and 150")
	}
	return errs
}
