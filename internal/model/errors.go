package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// Messageはそのまま `detail` フィールドとしてクライアントに返却されるため、
// 文言はAPI契約の一部として固定されている。
type APIError struct {
	Code    string // エラーコード
	Message string // クライアントに返すエラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeActivityNotFound  = "ACTIVITY_NOT_FOUND"
	ErrCodeAlreadyRegistered = "ALREADY_REGISTERED"
	ErrCodeNotRegistered     = "NOT_REGISTERED"
	ErrCodeMissingEmail      = "MISSING_EMAIL"
)

// NewActivityNotFoundError は活動未検出エラーを生成する。
// 登録・解除の両操作で、レジストリに存在しない活動名が指定された場合に返す。
func NewActivityNotFoundError() *APIError {
	return &APIError{
		Code:    ErrCodeActivityNotFound,
		Message: "Activity not found",
	}
}

// NewAlreadyRegisteredError は重複登録エラーを生成する。
func NewAlreadyRegisteredError() *APIError {
	return &APIError{
		Code:    ErrCodeAlreadyRegistered,
		Message: "Student is already signed up",
	}
}

// NewNotRegisteredError は未登録者の解除エラーを生成する。
func NewNotRegisteredError() *APIError {
	return &APIError{
		Code:    ErrCodeNotRegistered,
		Message: "Student is not registered for this activity",
	}
}

// NewMissingEmailError は必須クエリパラメータemailの欠落エラーを生成する。
// レジストリではなくトランスポート層で検出されるバリデーションエラー。
// email= のように値が空の場合は欠落とみなさない。
func NewMissingEmailError() *APIError {
	return &APIError{
		Code:    ErrCodeMissingEmail,
		Message: "Missing required query parameter: email",
	}
}
