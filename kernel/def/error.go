package def

import (
	"fmt"
)

const (
	// 拒绝处理类错误状态，调用方输入有误
	ErrStatusRefused = 400
	// 内部错误类错误状态
	ErrStatusInternalErr = 500
)

// Error is a routing or handler failure. Code is the exit code of the call.
type Error struct {
	// 用于统计和监控的错误分类（类似http的4xx、5xx）
	Status int
	// 调用退出码，全局唯一
	Code int8
	// 用于说明具体错误的说明信息
	Msg string
}

func (t *Error) Error() string {
	return fmt.Sprintf("Err:%d-%d-%s", t.Status, t.Code, t.Msg)
}

// More returns a copy of t with detail appended to the message
func (t *Error) More(format string, args ...interface{}) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	return &Error{t.Status, t.Code, t.Msg + "+" + msg}
}

// Is lets errors.Is match on the code, ignoring attached detail
func (t *Error) Is(target error) bool {
	rhs, ok := target.(*Error)
	if !ok || rhs == nil {
		return false
	}
	return t.Code == rhs.Code
}

// Equal reports whether both errors are of the same kind
func (t *Error) Equal(rhs *Error) bool {
	if rhs == nil {
		return false
	}

	return t.Code == rhs.Code
}

// CastError maps err to an *Error, untyped failures become ErrHandler
func CastError(err error) *Error {
	return CastErrorDefault(err, ErrHandler)
}

func CastErrorDefault(err error, defaultErr *Error) *Error {
	if err == nil {
		return nil
	}

	var cur error = err
	for cur != nil {
		if defErr, ok := cur.(*Error); ok {
			return defErr
		}
		cause, ok := cur.(interface{ Cause() error })
		if !ok {
			break
		}
		cur = cause.Cause()
	}

	return defaultErr.More(err.Error())
}

// ExitCode returns 0 for nil, else the code of the error kind
func ExitCode(err error) int8 {
	if err == nil {
		return 0
	}
	return CastError(err).Code
}

// define std error, codes are exit codes and must stay stable
var (
	ErrIndexOutOfBound     = &Error{ErrStatusRefused, 1, "index out of bound"}
	ErrItemMissing         = &Error{ErrStatusRefused, 2, "item missing"}
	ErrLengthNotEnough     = &Error{ErrStatusRefused, 3, "length not enough"}
	ErrEncoding            = &Error{ErrStatusRefused, 4, "encoding error"}
	ErrEnvironmentMismatch = &Error{ErrStatusInternalErr, 5, "invalid vm version"}
	ErrInvalidMethodPath   = &Error{ErrStatusRefused, 6, "invalid method path"}
	ErrInvalidMethodArgs   = &Error{ErrStatusRefused, 7, "invalid method args"}
	ErrNotImplemented      = &Error{ErrStatusRefused, 8, "method not implemented"}
	ErrRecordNotFound      = &Error{ErrStatusRefused, 9, "record not found"}
	ErrMalformedChain      = &Error{ErrStatusRefused, 10, "malformed record chain"}
	ErrChainTooLong        = &Error{ErrStatusRefused, 11, "record chain too long"}
	ErrDuplicateMethod     = &Error{ErrStatusInternalErr, 12, "duplicate method path"}
	ErrHandler             = &Error{ErrStatusInternalErr, 13, "handler error"}
)
