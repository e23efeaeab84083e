// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/marubatsu/internal/model"
)

// GameRepository はゲーム記録の永続化インターフェース。
// レコードは追記のみで、更新・削除は存在しない。
type GameRepository interface {
	// Create はゲーム記録を作成する。
	// IDと作成日時はストア側で採番・付与され、保存済みレコードとして返される。
	// 単一行INSERTのため部分書き込みは発生しない。
	Create(ctx context.Context, winner model.Outcome, moves []model.Move) (*model.GameRecord, error)

	// ListRecent は作成日時の新しい順に最大limit件のゲーム記録を返す。
	// 記録が存在しない場合は空スライスを返す。
	ListRecent(ctx context.Context, limit int) ([]*model.GameRecord, error)

	// Stats は全ゲーム記録を走査した集計値を返す。
	// 該当レコードのない結果のカウントは0になる。
	Stats(ctx context.Context) (*model.AggregateStats, error)
}
