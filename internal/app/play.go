package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hitoshi/marubatsu/internal/client"
	"github.com/hitoshi/marubatsu/internal/game"
	"github.com/hitoshi/marubatsu/internal/model"
)

// runPlay はターミナルでの対話的なゲームモードを起動する。
// 完了したゲームはAPIサーバーに非同期で提出される（失敗してもプレイは継続する）。
func runPlay(w io.Writer, input io.Reader) error {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// プレイ中のログは標準エラーに出してボードの描画と混ぜない
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	apiClient := client.NewClient(
		&http.Client{Timeout: 10 * time.Second},
		logger,
		baseURL,
	)

	session := game.NewSession(apiClient, logger)

	fmt.Fprintln(w, "まるばつゲーム")
	fmt.Fprintln(w, "セル番号(0-8)を入力して着手。r: 最初から、s: 統計表示、q: 終了")

	scanner := bufio.NewScanner(input)

	for {
		printBoard(w, session.Board())

		if outcome, finished := session.Outcome(); finished {
			printOutcome(w, outcome)
			fmt.Fprintln(w, "r で新しいゲーム、q で終了")
		} else {
			fmt.Fprintf(w, "%s の手番 > ", session.CurrentPlayer())
		}

		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "q":
			fmt.Fprintln(w, "終了します")
			return nil
		case "r":
			session.Restart()
			continue
		case "s":
			printStats(w, apiClient)
			continue
		case "":
			continue
		}

		index, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(w, "0-8のセル番号、r、s、q のいずれかを入力してください")
			continue
		}

		// 範囲外・埋まっているセル・終了後の入力は何も起こさない
		session.ApplyMove(index)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("入力の読み取りに失敗しました: %w", err)
	}

	return nil
}

// printBoard は3×3の盤面を描画する。空きセルにはセル番号を表示する。
func printBoard(w io.Writer, board model.Board) {
	fmt.Fprintln(w)
	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col
			if board[i] == model.Empty {
				cells[col] = strconv.Itoa(i)
			} else {
				cells[col] = string(board[i])
			}
		}
		fmt.Fprintf(w, " %s | %s | %s\n", cells[0], cells[1], cells[2])
		if row < 2 {
			fmt.Fprintln(w, "---+---+---")
		}
	}
	fmt.Fprintln(w)
}

// printOutcome はゲーム結果を表示する。
func printOutcome(w io.Writer, outcome model.Outcome) {
	switch outcome {
	case model.OutcomeDraw:
		fmt.Fprintln(w, "引き分けです")
	default:
		fmt.Fprintf(w, "%s の勝ちです\n", outcome)
	}
}

// printStats はAPIサーバーから集計統計を取得して表示する。
// 取得に失敗してもプレイは継続する。
func printStats(w io.Writer, apiClient *client.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := apiClient.GetStats(ctx)
	if err != nil {
		fmt.Fprintln(w, "統計の取得に失敗しました（サーバーが起動しているか確認してください）")
		return
	}

	fmt.Fprintf(w, "総ゲーム数: %d / X勝利: %d / O勝利: %d / 引き分け: %d\n",
		stats.TotalGames, stats.XWins, stats.OWins, stats.Draws)
}
