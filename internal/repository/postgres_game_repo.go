package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/hitoshi/marubatsu/internal/model"
)

// PostgresGameRepo はPostgreSQLを使用したゲーム記録リポジトリ。
type PostgresGameRepo struct {
	db *sql.DB
}

// NewPostgresGameRepo はPostgresGameRepoを生成する。
func NewPostgresGameRepo(db *sql.DB) *PostgresGameRepo {
	return &PostgresGameRepo{db: db}
}

// Create はゲーム記録を作成する。
// movesはJSONBとしてシリアライズし、IDと作成日時はINSERT時にストアが付与する。
func (r *PostgresGameRepo) Create(ctx context.Context, winner model.Outcome, moves []model.Move) (*model.GameRecord, error) {
	movesJSON, err := json.Marshal(moves)
	if err != nil {
		return nil, fmt.Errorf("手順のシリアライズに失敗しました: %w", err)
	}

	record := &model.GameRecord{
		Winner: winner,
		Moves:  moves,
	}

	err = r.db.QueryRowContext(ctx,
		`INSERT INTO games (winner, moves) VALUES ($1, $2)
		 RETURNING id, created_at`,
		string(winner), movesJSON,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ゲーム記録の作成に失敗しました: %w", err)
	}

	return record, nil
}

// ListRecent は作成日時の新しい順に最大limit件のゲーム記録を返す。
func (r *PostgresGameRepo) ListRecent(ctx context.Context, limit int) ([]*model.GameRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, winner, moves, created_at
		 FROM games
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ゲーム記録一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	records := []*model.GameRecord{}
	for rows.Next() {
		record := &model.GameRecord{}
		var winner string
		var movesJSON []byte

		if err := rows.Scan(&record.ID, &winner, &movesJSON, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("ゲーム記録の読み取りに失敗しました: %w", err)
		}

		record.Winner = model.Outcome(winner)
		if err := json.Unmarshal(movesJSON, &record.Moves); err != nil {
			return nil, fmt.Errorf("手順のデシリアライズに失敗しました: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ゲーム記録の走査に失敗しました: %w", err)
	}

	return records, nil
}

// Stats は全ゲーム記録を走査した集計値を返す。
// FILTER句により結果ごとのカウントを1クエリで取得する。該当なしは0。
func (r *PostgresGameRepo) Stats(ctx context.Context) (*model.AggregateStats, error) {
	stats := &model.AggregateStats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE winner = 'X'),
		        count(*) FILTER (WHERE winner = 'O'),
		        count(*) FILTER (WHERE winner = 'draw')
		 FROM games`,
	).Scan(&stats.TotalGames, &stats.XWins, &stats.OWins, &stats.Draws)
	if err != nil {
		return nil, fmt.Errorf("集計値の取得に失敗しました: %w", err)
	}

	return stats, nil
}

// compile-time interface check
var _ GameRepository = (*PostgresGameRepo)(nil)
