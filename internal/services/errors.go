package services

import "fmt"

// Kind 标识服务层错误的类别；HTTP 层按类别映射状态码，不做错误文本匹配。
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindForbidden
	KindInternal
)

// Error 携带类别与展示信息；校验类错误额外附带完整的违规列表。
type Error struct {
	Kind       Kind
	Message    string
	Violations []string
}

func (e *Error) Error() string { return e.Message }

func notFound(entity string, id int) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with ID %d not found", entity, id)}
}

func invalid(violations []string) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", Violations: violations}
}

func conflict(message string) *Error { return &Error{Kind: KindConflict, Message: message} }

func forbidden(message string) *Error { return &Error{Kind: KindForbidden, Message: message} }
