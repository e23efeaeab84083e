// Package record はゲーム記録サービスのドメインロジックを提供する。
// 完了したゲームの受理・検証・永続化と、集計統計の問い合わせを担う。
package record

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/marubatsu/internal/model"
	"github.com/hitoshi/marubatsu/internal/repository"
)

// RecentGamesLimit は直近ゲーム一覧で返す最大件数。
const RecentGamesLimit = 10

// MetricsCollector はサービス層が必要とするメトリクス収集インターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsCollector interface {
	RecordGameSubmitted(outcome string)
	RecordStorageFailure()
}

// noopMetrics はメトリクス収集を行わないMetricsCollector実装。
type noopMetrics struct{}

func (noopMetrics) RecordGameSubmitted(outcome string) {}
func (noopMetrics) RecordStorageFailure()              {}

// Service はゲーム記録サービス。
// ゲーム記録の全永続化データを排他的に所有し、クライアントからは
// 提出操作による追記のみを受け付ける。
type Service struct {
	repo    repository.GameRepository
	metrics MetricsCollector
}

// NewService はServiceを生成する。
// collectorがnilの場合はメトリクス収集を行わない。
func NewService(repo repository.GameRepository, collector MetricsCollector) *Service {
	if collector == nil {
		collector = noopMetrics{}
	}
	return &Service{
		repo:    repo,
		metrics: collector,
	}
}

// SubmitGame は完了したゲームの記録を検証して永続化し、保存済みレコードを返す。
// IDと作成日時はストアが付与する。検証エラーは*model.APIError、
// 永続化の失敗はSTORAGE_FAILUREの*model.APIErrorとして返す。
func (s *Service) SubmitGame(ctx context.Context, winner model.Outcome, moves []model.Move) (*model.GameRecord, error) {
	if !winner.Valid() {
		return nil, model.NewInvalidWinnerError(string(winner))
	}
	if err := validateMoves(moves); err != nil {
		return nil, err
	}

	record, err := s.repo.Create(ctx, winner, moves)
	if err != nil {
		s.metrics.RecordStorageFailure()
		slog.Error("failed to persist game record",
			slog.String("winner", string(winner)),
			slog.Int("move_count", len(moves)),
			slog.String("error", err.Error()),
		)
		return nil, model.NewStorageFailureError(err)
	}

	s.metrics.RecordGameSubmitted(string(winner))
	slog.Info("game record persisted",
		slog.Int64("record_id", record.ID),
		slog.String("winner", string(record.Winner)),
		slog.Int("move_count", len(record.Moves)),
	)

	return record, nil
}

// ListRecentGames は直近に作成されたゲーム記録を新しい順に最大10件返す。
// 記録が存在しない場合は空スライスを返す（エラーではない）。
func (s *Service) ListRecentGames(ctx context.Context) ([]*model.GameRecord, error) {
	records, err := s.repo.ListRecent(ctx, RecentGamesLimit)
	if err != nil {
		s.metrics.RecordStorageFailure()
		return nil, model.NewStorageFailureError(err)
	}
	return records, nil
}

// GetStats は全ゲーム記録の集計値を返す。
// 該当レコードのない結果のカウントは0になる。
func (s *Service) GetStats(ctx context.Context) (*model.AggregateStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.metrics.RecordStorageFailure()
		return nil, model.NewStorageFailureError(err)
	}
	return stats, nil
}

// validateMoves は手順リストの構造的な妥当性を検証する。
// 1ゲーム分の手順はマークがX/O、位置が0-8、位置の重複なし、1〜9手である必要がある。
func validateMoves(moves []model.Move) error {
	if len(moves) == 0 {
		return model.NewInvalidMovesError("手順が空です")
	}
	if len(moves) > model.BoardSize {
		return model.NewInvalidMovesError(fmt.Sprintf("手数が多すぎます: %d", len(moves)))
	}

	seen := make(map[int]bool, len(moves))
	for i, m := range moves {
		if !m.Player.Valid() {
			return model.NewInvalidMovesError(fmt.Sprintf("%d手目のマークが不正です: %q", i+1, m.Player))
		}
		if m.Position < 0 || m.Position >= model.BoardSize {
			return model.NewInvalidMovesError(fmt.Sprintf("%d手目のセル位置が範囲外です: %d", i+1, m.Position))
		}
		if seen[m.Position] {
			return model.NewInvalidMovesError(fmt.Sprintf("セル位置が重複しています: %d", m.Position))
		}
		seen[m.Position] = true
	}

	return nil
}
