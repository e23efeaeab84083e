// Package model はドメインモデルを定義する。
package model

import "time"

// Player は盤面に置かれるマークを表す。
type Player string

const (
	// PlayerX は先手プレイヤーのマーク。
	PlayerX Player = "X"
	// PlayerO は後手プレイヤーのマーク。
	PlayerO Player = "O"
	// Empty は未配置のセルを表す。
	Empty Player = ""
)

// Valid はマークがXまたはOであるかを返す。
func (p Player) Valid() bool {
	return p == PlayerX || p == PlayerO
}

// Other は相手プレイヤーのマークを返す。
func (p Player) Other() Player {
	if p == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// BoardSize は盤面のセル数。3×3固定。
const BoardSize = 9

// Board は3×3の盤面を行優先で表す。インデックス0-8。
type Board [BoardSize]Player

// Move は1手を表す。どのプレイヤーがどのセルに置いたかを記録する。
type Move struct {
	Player   Player `json:"player"`
	Position int    `json:"position"`
}

// Outcome は終了したゲームの結果を表す。
type Outcome string

const (
	// OutcomeXWin はXの勝利。
	OutcomeXWin Outcome = "X"
	// OutcomeOWin はOの勝利。
	OutcomeOWin Outcome = "O"
	// OutcomeDraw は引き分け。
	OutcomeDraw Outcome = "draw"
)

// Valid は結果が定義済みの値であるかを返す。
func (o Outcome) Valid() bool {
	return o == OutcomeXWin || o == OutcomeOWin || o == OutcomeDraw
}

// GameRecord は完了した1ゲームの永続化レコードを表す。
// 作成後は変更・削除されないイミュータブルなログ。
type GameRecord struct {
	ID        int64
	Winner    Outcome
	Moves     []Move
	CreatedAt time.Time
}

// AggregateStats は全GameRecordから導出される集計値を表す。
// 保存されず、問い合わせのたびに計算される。
type AggregateStats struct {
	TotalGames int
	XWins      int
	OWins      int
	Draws      int
}
