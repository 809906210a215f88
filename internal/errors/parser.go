package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ikkim/catalog-backend/internal/app/query"
)

// MessageInternal is the fixed message for every unclassified failure. The
// cause is logged, never returned.
const MessageInternal = "Internal server error"

// ErrorInfo 에러 정보 구조
type ErrorInfo struct {
	Status  int    // HTTP 상태 코드
	Code    string // 에러 코드 (codes.go 참조)
	Message string // 사용자 친화적 메시지
}

// ParseError 에러를 파싱하여 상태 코드, 에러 코드, 메시지로 변환
// notFoundMessage 는 리소스가 없을 때 사용할 메시지
func ParseError(err error, notFoundMessage string) ErrorInfo {
	switch {
	case err == nil:
		return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: MessageInternal}

	case errors.Is(err, query.ErrNotFound):
		if notFoundMessage == "" {
			notFoundMessage = "Resource not found"
		}
		return ErrorInfo{Status: http.StatusNotFound, Code: ResourceNotFound, Message: notFoundMessage}

	case errors.Is(err, query.ErrQuery):
		return ErrorInfo{Status: http.StatusBadRequest, Code: ValidationInvalidQuery, Message: queryMessage(err)}

	case errors.Is(err, query.ErrStorageUnavailable):
		return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalStorageUnavailable, Message: MessageInternal}
	}

	var cfgErr *query.ConfigurationError
	if errors.As(err, &cfgErr) {
		return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalConfigError, Message: MessageInternal}
	}
	return ErrorInfo{Status: http.StatusInternalServerError, Code: InternalServerError, Message: MessageInternal}
}

// queryMessage strips the sentinel prefix: "invalid query: limit must not be
// negative" becomes "Invalid query: limit must not be negative".
func queryMessage(err error) string {
	msg := err.Error()
	prefix := query.ErrQuery.Error()
	if i := strings.Index(msg, prefix); i >= 0 {
		msg = msg[i+len(prefix):]
	}
	msg = strings.TrimLeft(msg, ": ")
	if msg == "" {
		return "Invalid query"
	}
	return "Invalid query: " + msg
}
