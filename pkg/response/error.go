package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Mumei/internal/board"
	"Mumei/pkg/log"
	"Mumei/pkg/utils"
)

type BizError struct {
	Code int
	Msg  string
}

func (e *BizError) Error() string {
	return e.Msg
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// FromDomain 把领域错误分类映射成业务错误码
func FromDomain(err error) *BizError {
	kind, ok := board.KindOf(err)
	if !ok {
		return NewError(http.StatusInternalServerError, err.Error())
	}
	switch kind {
	case board.KindValidation:
		return NewError(http.StatusBadRequest, err.Error())
	case board.KindRight:
		return NewError(http.StatusForbidden, err.Error())
	case board.KindPrerequisite:
		return NewError(http.StatusConflict, err.Error())
	case board.KindNotFound:
		return NewError(http.StatusNotFound, err.Error())
	case board.KindConflict:
		return NewError(http.StatusConflict, err.Error())
	default:
		return NewError(http.StatusInternalServerError, err.Error())
	}
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.L.Error("handler panic", zap.String("stack", utils.PanicTrace(r)))
				c.JSON(http.StatusInternalServerError, Response{
					Code: 500,
					Msg:  "系统异常",
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			if be, ok := err.(*BizError); ok {
				Fail(c, be.Code, be.Msg)
			} else {
				Fail(c, 500, err.Error())
			}
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
