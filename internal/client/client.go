// Package client はゲーム記録APIのHTTPクライアントを提供する。
// ルールエンジンからの記録提出と、一覧・統計の取得に使用する。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/marubatsu/internal/game"
	"github.com/hitoshi/marubatsu/internal/model"
)

// Client はゲーム記録APIのHTTPクライアント。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
}

// NewClient はClientの新しいインスタンスを生成する。
// baseURLはAPIサーバーのルートURL（例: http://localhost:8080）。
func NewClient(httpClient *http.Client, logger *slog.Logger, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
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

// SaveGame は完了したゲームの記録をAPIサーバーに提出する。
// POST /api/games を呼び出し、201以外のステータスはエラーとして扱う。
func (c *Client) SaveGame(ctx context.Context, winner model.Outcome, moves []model.Move) (*model.GameRecord, error) {
	body, err := json.Marshal(submitGameRequest{
		Winner: string(winner),
		Moves:  moves,
	})
	if err != nil {
		return nil, fmt.Errorf("リクエストボディの生成に失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/games", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("ゲーム記録APIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
			slog.String("winner", string(winner)),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		c.logger.Error("ゲーム記録APIがエラーステータスを返しました",
			slog.Int("http_status", resp.StatusCode),
			slog.String("winner", string(winner)),
		)
		return nil, fmt.Errorf("ゲーム記録APIがステータス %d を返しました", resp.StatusCode)
	}

	record, err := decodeGameResponse(resp.Body)
	if err != nil {
		c.logger.Error("ゲーム記録APIのレスポンスのパースに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return record, nil
}

// ListRecentGames は直近のゲーム記録を新しい順に取得する。
// GET /api/games を呼び出す。
func (c *Client) ListRecentGames(ctx context.Context) ([]*model.GameRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/games", nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("ゲーム記録APIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ゲーム記録APIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var games []gameResponse
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	records := make([]*model.GameRecord, 0, len(games))
	for _, g := range games {
		records = append(records, &model.GameRecord{
			ID:        g.ID,
			Winner:    model.Outcome(g.Winner),
			Moves:     g.Moves,
			CreatedAt: g.CreatedAt,
		})
	}

	return records, nil
}

// GetStats は全ゲーム記録の集計統計を取得する。
// GET /api/stats を呼び出す。
func (c *Client) GetStats(ctx context.Context) (*model.AggregateStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/stats", nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("統計APIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("統計APIがステータス %d を返しました", resp.StatusCode)
	}

	var stats struct {
		TotalGames int `json:"total_games"`
		XWins      int `json:"x_wins"`
		OWins      int `json:"o_wins"`
		Draws      int `json:"draws"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	return &model.AggregateStats{
		TotalGames: stats.TotalGames,
		XWins:      stats.XWins,
		OWins:      stats.OWins,
		Draws:      stats.Draws,
	}, nil
}

// decodeGameResponse はAPIレスポンスからGameRecordを復元する。
func decodeGameResponse(r io.Reader) (*model.GameRecord, error) {
	var g gameResponse
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}
	return &model.GameRecord{
		ID:        g.ID,
		Winner:    model.Outcome(g.Winner),
		Moves:     g.Moves,
		CreatedAt: g.CreatedAt,
	}, nil
}

// コンパイル時のインターフェース実装チェック
var _ game.Recorder = (*Client)(nil)
