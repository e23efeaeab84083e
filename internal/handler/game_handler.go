// Package handler はゲーム記録APIのHTTPハンドラーとルーティングを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/hitoshi/marubatsu/internal/model"
)

// RecordServiceInterface はゲームハンドラーが必要とするサービスインターフェース。
type RecordServiceInterface interface {
	// SubmitGame は完了したゲームの記録を検証して永続化する。
	SubmitGame(ctx context.Context, winner model.Outcome, moves []model.Move) (*model.GameRecord, error)
	// ListRecentGames は直近のゲーム記録を新しい順に最大10件返す。
	ListRecentGames(ctx context.Context) ([]*model.GameRecord, error)
	// GetStats は全ゲーム記録の集計値を返す。
	GetStats(ctx context.Context) (*model.AggregateStats, error)
}

// GameHandler はゲーム記録のHTTPハンドラー。
type GameHandler struct {
	service RecordServiceInterface
}

// NewGameHandler はGameHandlerを生成する。
func NewGameHandler(service RecordServiceInterface) *GameHandler {
	return &GameHandler{service: service}
}

// submitGameRequest はゲーム記録提出リクエストのボディ。
type submitGameRequest struct {
	Winner string       `json:"winner"`
	Moves  []model.Move `json:"moves"`
}

// gameResponse はゲーム記録のAPIレスポンス。
type gameResponse struct {
	ID        int64        `json:"id"`
	Winner    string       `json:"winner"`
	Moves     []model.Move `json:"moves"`
	CreatedAt time.Time    `json:"created_at"`
}

// statsResponse は集計統計のAPIレスポンス。
type statsResponse struct {
	TotalGames int `json:"total_games"`
	XWins      int `json:"x_wins"`
	OWins      int `json:"o_wins"`
	Draws      int `json:"draws"`
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// SubmitGame は完了したゲームの記録提出を処理する。
// POST /api/games
func (h *GameHandler) SubmitGame(w http.ResponseWriter, r *http.Request) {
	var req submitGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError())
		return
	}

	record, err := h.service.SubmitGame(r.Context(), model.Outcome(req.Winner), req.Moves)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toGameResponse(record))
}

// ListGames は直近のゲーム記録一覧を返す。
// GET /api/games
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListRecentGames(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// 記録がない場合も空配列を返す（nullにしない）
	games := make([]gameResponse, 0, len(records))
	for _, rec := range records {
		games = append(games, toGameResponse(rec))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(games)
}

// GetStats は全ゲーム記録の集計統計を返す。
// GET /api/stats
func (h *GameHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statsResponse{
		TotalGames: stats.TotalGames,
		XWins:      stats.XWins,
		OWins:      stats.OWins,
		Draws:      stats.Draws,
	})
}

// --- ヘルパー関数 ---

// toGameResponse はmodel.GameRecordからAPIレスポンスに変換する。
func toGameResponse(record *model.GameRecord) gameResponse {
	moves := record.Moves
	if moves == nil {
		moves = []model.Move{}
	}
	return gameResponse{
		ID:        record.ID,
		Winner:    string(record.Winner),
		Moves:     moves,
		CreatedAt: record.CreatedAt,
	}
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPステータスコードに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "内部エラーが発生しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidRequest, model.ErrCodeInvalidWinner, model.ErrCodeInvalidMoves:
		return http.StatusBadRequest
	case model.ErrCodeStorageFailure:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
