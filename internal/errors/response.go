package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope 표준 응답 구조
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"` // 에러 코드 (codes.go 참조)
}

// RespondSuccess 성공 응답 헬퍼
func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Status: StatusSuccess,
		Data:   data,
	})
}

// RespondWithError 에러 응답 헬퍼
// statusCode: HTTP 상태 코드
// errorCode: 에러 코드 상수 (codes.go 참조)
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, Envelope{
		Status:  StatusError,
		Message: message,
		Code:    errorCode,
	})
}

// RespondWithErr 에러를 분류하여 응답
func RespondWithErr(c *gin.Context, err error, notFoundMessage string) {
	info := ParseError(err, notFoundMessage)
	RespondWithError(c, info.Status, info.Code, info.Message)
}

// 자주 사용하는 에러 응답 단축 함수들

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, message string) {
	RespondWithError(c, http.StatusNotFound, ResourceNotFound, message)
}

func InternalError(c *gin.Context) {
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, MessageInternal)
}
