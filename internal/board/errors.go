package board

// ErrKind 领域错误分类，handler 层按分类映射成 HTTP 状态码
type ErrKind string

const (
	KindValidation   ErrKind = "validation"   // 输入不符合校验规则
	KindRight        ErrKind = "right"        // 操作他人资源/权限不足
	KindPrerequisite ErrKind = "prerequisite" // 当前状态不允许该操作
	KindNotFound     ErrKind = "not_found"    // 实体不存在(由仓储层产生)
	KindConflict     ErrKind = "conflict"     // 唯一键冲突(由仓储层产生)
)

type Error struct {
	Kind ErrKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func NewRightError(msg string) *Error {
	return &Error{Kind: KindRight, Msg: msg}
}

func NewPrerequisiteError(msg string) *Error {
	return &Error{Kind: KindPrerequisite, Msg: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// KindOf 取出领域错误分类，非领域错误一律按系统错误处理
func KindOf(err error) (ErrKind, bool) {
	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}
	return "", false
}
