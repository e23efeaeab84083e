// Package game は三目並べのルールエンジンを提供する。
// 盤面状態・手番交代・勝敗判定・手順履歴の蓄積を担う純粋な同期ロジックと、
// 終局時のゲーム記録送信（非同期・失敗許容）を含む。
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/marubatsu/internal/model"
)

// winConditions は勝利となる8つのセルの組み合わせ。
// 行3つ、列3つ、対角線2つの固定パターン。
var winConditions = [8][3]int{
	{0, 1, 2}, // top row
	{3, 4, 5}, // middle row
	{6, 7, 8}, // bottom row
	{0, 3, 6}, // left column
	{1, 4, 7}, // middle column
	{2, 5, 8}, // right column
	{0, 4, 8}, // diagonal
	{2, 4, 6}, // anti-diagonal
}

// defaultSubmitTimeout は終局時のゲーム記録送信のタイムアウト。
const defaultSubmitTimeout = 10 * time.Second

// Recorder は終局したゲームの記録送信に必要なインターフェース。
// client.Clientがこれを実装する。
type Recorder interface {
	// SaveGame は勝敗と手順をゲーム記録サービスへ送信する。
	SaveGame(ctx context.Context, winner model.Outcome, moves []model.Move) (*model.GameRecord, error)
}

// Session は進行中の1ゲームの状態を所有するセッションオブジェクト。
// 1ゲームのライフタイムの間だけ盤面と手順履歴を保持し、
// Restartでリセット、終局時に記録をRecorderへ引き渡す。
// ユーザー操作イベントを逐次処理する前提であり、並行アクセスは想定しない。
type Session struct {
	cells   model.Board
	current model.Player
	active  bool
	moves   []model.Move
	outcome model.Outcome

	recorder      Recorder
	logger        *slog.Logger
	submitTimeout time.Duration
}

// NewSession は新しいゲームセッションを生成する。
// 盤面は空、手番はX、ゲームはアクティブな状態で開始する。
// recorderがnilの場合、終局時の記録送信は行わない。
func NewSession(recorder Recorder, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		current:       model.PlayerX,
		active:        true,
		recorder:      recorder,
		logger:        logger,
		submitTimeout: defaultSubmitTimeout,
	}
}

// ApplyMove は指定セルへの着手を処理する。
// ゲーム終了後の着手、占有済みセルへの着手、範囲外のインデックスは
// エラーにせず何もしない。UI上の無害なクリックとして無視する。
//
// 着手後は固定の優先順位で終局条件を評価する:
// (a) 8パターンの勝利判定 → (b) 全セル占有による引き分け → (c) 手番交代。
func (s *Session) ApplyMove(index int) {
	if !s.active || index < 0 || index >= model.BoardSize || s.cells[index] != model.Empty {
		return
	}

	s.cells[index] = s.current
	s.moves = append(s.moves, model.Move{Player: s.current, Position: index})

	if winner := s.checkWinner(); winner != model.Empty {
		s.finish(model.Outcome(winner))
		return
	}
	if s.boardFull() {
		s.finish(model.OutcomeDraw)
		return
	}

	s.current = s.current.Other()
}

// Restart は盤面・手番・手順履歴を初期状態に戻す。
// どの状態からでも常に成功する。
func (s *Session) Restart() {
	s.cells = model.Board{}
	s.current = model.PlayerX
	s.active = true
	s.moves = nil
	s.outcome = ""
}

// Board は現在の盤面のコピーを返す。
func (s *Session) Board() model.Board {
	return s.cells
}

// CurrentPlayer は現在の手番のプレイヤーを返す。
func (s *Session) CurrentPlayer() model.Player {
	return s.current
}

// Active はゲームが進行中であるかを返す。
func (s *Session) Active() bool {
	return s.active
}

// Moves はこれまでの手順履歴のコピーを返す。
func (s *Session) Moves() []model.Move {
	moves := make([]model.Move, len(s.moves))
	copy(moves, s.moves)
	return moves
}

// Outcome はゲームの結果を返す。終局していない場合は第2戻り値がfalse。
func (s *Session) Outcome() (model.Outcome, bool) {
	if s.active {
		return "", false
	}
	return s.outcome, true
}

// finish はゲームを終局状態にし、記録送信を1回だけ発火する。
func (s *Session) finish(outcome model.Outcome) {
	s.active = false
	s.outcome = outcome
	s.submitAsync(outcome)
}

// submitAsync は終局したゲームの記録を非同期で送信する。
// 送信失敗はログに記録するのみで、呼び出し元には伝播しない。
// 保存の失敗がゲームの再開を妨げてはならない。
func (s *Session) submitAsync(outcome model.Outcome) {
	if s.recorder == nil {
		return
	}

	// 送信中のRestartと干渉しないよう手順のコピーを渡す
	moves := make([]model.Move, len(s.moves))
	copy(moves, s.moves)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.submitTimeout)
		defer cancel()

		record, err := s.recorder.SaveGame(ctx, outcome, moves)
		if err != nil {
			s.logger.Error("failed to save game record",
				slog.String("winner", string(outcome)),
				slog.Int("move_count", len(moves)),
				slog.String("error", err.Error()),
			)
			return
		}

		s.logger.Info("game record saved",
			slog.Int64("record_id", record.ID),
			slog.String("winner", string(record.Winner)),
			slog.Int("move_count", len(record.Moves)),
		)
	}()
}

// checkWinner は8パターンのいずれかが揃っている場合にそのマークを返す。
// 揃っていない場合はEmptyを返す。
func (s *Session) checkWinner() model.Player {
	for _, cond := range winConditions {
		a, b, c := cond[0], cond[1], cond[2]
		if s.cells[a] != model.Empty && s.cells[a] == s.cells[b] && s.cells[b] == s.cells[c] {
			return s.cells[a]
		}
	}
	return model.Empty
}

// boardFull は全セルが占有されているかを返す。
func (s *Session) boardFull() bool {
	for _, cell := range s.cells {
		if cell == model.Empty {
			return false
		}
	}
	return true
}
