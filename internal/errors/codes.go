package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // 잘못된 입력
	ValidationInvalidID    = "VALIDATION_INVALID_ID"    // 잘못된 ID
	ValidationInvalidQuery = "VALIDATION_INVALID_QUERY" // 잘못된 조회 조건
	ValidationRequired     = "VALIDATION_REQUIRED"      // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // 리소스 없음

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError        = "INTERNAL_SERVER_ERROR"        // 서버 오류
	InternalStorageUnavailable = "INTERNAL_STORAGE_UNAVAILABLE" // DB 연결 불가
	InternalConfigError        = "INTERNAL_CONFIG_ERROR"        // 설정 오류
)
