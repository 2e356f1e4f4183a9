package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"idleverse/internal/adapter/repo/gorm/model"
	"idleverse/internal/app/ports"
	"idleverse/internal/domain/sim"
)

type ChangeLogRepo struct {
	db *gorm.DB
}

func NewChangeLogRepo(db *gorm.DB) ChangeLogRepo {
	return ChangeLogRepo{db: db}
}

func (r ChangeLogRepo) Append(ctx context.Context, batch ports.ChangeBatch) error {
	changesJSON, err := json.Marshal(batch.Changes)
	if err != nil {
		return fmt.Errorf("encode change batch %s: %w", batch.BatchID, err)
	}
	m := model.ChangeBatch{
		BatchID:   batch.BatchID,
		PlayerID:  batch.PlayerID,
		Ticks:     int32(batch.Ticks),
		Reason:    string(batch.Reason),
		Changes:   changesJSON,
		AppliedAt: batch.AppliedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&m).Error
}

// ListByPlayerID returns up to limit batches, newest first. A player
// with no history gets an empty slice, not an error.
func (r ChangeLogRepo) ListByPlayerID(ctx context.Context, playerID string, limit int) ([]ports.ChangeBatch, error) {
	rows := []model.ChangeBatch{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.ChangeBatch{PlayerID: playerID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "applied_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]ports.ChangeBatch, 0, len(rows))
	for _, row := range rows {
		var changes []sim.Change
		if len(row.Changes) > 0 {
			if err := json.Unmarshal(row.Changes, &changes); err != nil {
				return nil, fmt.Errorf("decode change batch %s: %w", row.BatchID, err)
			}
		}
		out = append(out, ports.ChangeBatch{
			BatchID:   row.BatchID,
			PlayerID:  row.PlayerID,
			Ticks:     int(row.Ticks),
			Reason:    sim.StopReason(row.Reason),
			Changes:   changes,
			AppliedAt: row.AppliedAt,
		})
	}
	return out, nil
}
