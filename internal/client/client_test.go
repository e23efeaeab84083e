package client

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/marubatsu/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// testWriter はログ出力を捨てるio.Writer。
type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

// TestSaveGame_Success は201レスポンスで保存済みレコードが返ることを検証する。
func TestSaveGame_Success(t *testing.T) {
	created := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/games" {
			t.Errorf("path = %s, want /api/games", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":         5,
			"winner":     "O",
			"moves":      []model.Move{{Player: model.PlayerO, Position: 4}},
			"created_at": created,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testLogger(), srv.URL)

	record, err := c.SaveGame(context.Background(), model.OutcomeOWin, []model.Move{{Player: model.PlayerO, Position: 4}})
	if err != nil {
		t.Fatalf("SaveGame returned error: %v", err)
	}

	if record.ID != 5 {
		t.Errorf("id = %d, want 5", record.ID)
	}
	if record.Winner != model.OutcomeOWin {
		t.Errorf("winner = %q, want %q", record.Winner, model.OutcomeOWin)
	}
	if !record.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", record.CreatedAt, created)
	}
	if gotBody["winner"] != "O" {
		t.Errorf("request winner = %v, want O", gotBody["winner"])
	}
}

// TestSaveGame_Non201Status は201以外のステータスがエラーになることを検証する。
func TestSaveGame_Non201Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testLogger(), srv.URL)

	_, err := c.SaveGame(context.Background(), model.OutcomeXWin, []model.Move{{Player: model.PlayerX, Position: 0}})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

// TestSaveGame_ConnectionError はサーバー到達不能時にエラーが返ることを検証する。
func TestSaveGame_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // すぐに閉じて接続エラーを発生させる

	c := NewClient(&http.Client{Timeout: time.Second}, testLogger(), srv.URL)

	_, err := c.SaveGame(context.Background(), model.OutcomeXWin, []model.Move{{Player: model.PlayerX, Position: 0}})
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

// TestSaveGame_ContextCancellation はコンテキストキャンセルでエラーが返ることを検証する。
func TestSaveGame_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testLogger(), srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.SaveGame(ctx, model.OutcomeXWin, []model.Move{{Player: model.PlayerX, Position: 0}})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

// TestListRecentGames_Success は一覧がGameRecordとして返ることを検証する。
func TestListRecentGames_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/games" {
			t.Errorf("path = %s, want /api/games", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": 2, "winner": "draw", "moves": []model.Move{}, "created_at": time.Now()},
			{"id": 1, "winner": "X", "moves": []model.Move{}, "created_at": time.Now()},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testLogger(), srv.URL)

	records, err := c.ListRecentGames(context.Background())
	if err != nil {
		t.Fatalf("ListRecentGames returned error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ID != 2 || records[0].Winner != model.OutcomeDraw {
		t.Errorf("records[0] = {%d, %q}, want {2, draw}", records[0].ID, records[0].Winner)
	}
}

// TestListRecentGames_EmptyArray は空配列が空スライスとして返ることを検証する。
func TestListRecentGames_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testLogger(), srv.URL)

	records, err := c.ListRecentGames(context.Background())
	if err != nil {
		t.Fatalf("ListRecentGames returned error: %v", err)
	}
	if records == nil {
		t.Fatal("records should be an empty slice, not nil")
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

// TestGetStats_Success は集計統計が取得できることを検証する。
func TestGetStats_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stats" {
			t.Errorf("path = %s, want /api/stats", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{
			"total_games": 6,
			"x_wins":      3,
			"o_wins":      2,
			"draws":       1,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testLogger(), srv.URL)

	stats, err := c.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats returned error: %v", err)
	}

	want := model.AggregateStats{TotalGames: 6, XWins: 3, OWins: 2, Draws: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}

// TestNewClient_TrimsTrailingSlash は末尾スラッシュ付きbaseURLが正規化されることを検証する。
func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), testLogger(), srv.URL+"/")

	if _, err := c.ListRecentGames(context.Background()); err != nil {
		t.Fatalf("ListRecentGames returned error: %v", err)
	}
	if gotPath != "/api/games" {
		t.Errorf("path = %q, want %q", gotPath, "/api/games")
	}
}
