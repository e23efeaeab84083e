package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, storage, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST"
	ErrCodeInvalidWinner  = "INVALID_WINNER"
	ErrCodeInvalidMoves   = "INVALID_MOVES"
	ErrCodeStorageFailure = "STORAGE_FAILURE"
)

// NewInvalidRequestError はリクエストボディが解析できない場合のエラーを生成する。
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	}
}

// NewInvalidWinnerError は勝者の指定が不正な場合のエラーを生成する。
func NewInvalidWinnerError(winner string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidWinner,
		Message:  fmt.Sprintf("無効な勝者です: %q", winner),
		Category: "validation",
		Action:   "勝者には X、O、draw のいずれかを指定してください。",
	}
}

// NewInvalidMovesError は手順リストが不正な場合のエラーを生成する。
func NewInvalidMovesError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidMoves,
		Message:  fmt.Sprintf("無効な手順リストです: %s", reason),
		Category: "validation",
		Action:   "手順には0-8の重複しないセル位置とX/Oのマークを指定してください。",
	}
}

// NewStorageFailureError は永続化層の障害を表すエラーを生成する。
func NewStorageFailureError(err error) *APIError {
	return &APIError{
		Code:     ErrCodeStorageFailure,
		Message:  fmt.Sprintf("ゲーム記録の保存・取得に失敗しました: %v", err),
		Category: "storage",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
