package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"idleverse/internal/adapter/repo/gorm/model"
	"idleverse/internal/app/ports"
	"idleverse/internal/domain/game"
)

type SnapshotRepo struct {
	db *gorm.DB
}

func NewSnapshotRepo(db *gorm.DB) SnapshotRepo {
	return SnapshotRepo{db: db}
}

func (r SnapshotRepo) GetByPlayerID(ctx context.Context, playerID string) (game.PlayerState, error) {
	var m model.PlayerSnapshot
	if err := getDBFromCtx(ctx, r.db).Where("player_id = ?", playerID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return game.PlayerState{}, ports.ErrNotFound
		}
		return game.PlayerState{}, err
	}
	var state game.PlayerState
	if err := json.Unmarshal(m.Snapshot, &state); err != nil {
		return game.PlayerState{}, fmt.Errorf("decode snapshot %s: %w", playerID, err)
	}
	// The columns are authoritative over the document copy.
	state.PlayerID = m.PlayerID
	state.Version = m.Version
	return state, nil
}

func (r SnapshotRepo) SaveWithVersion(ctx context.Context, state game.PlayerState, expectedVersion int64) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", state.PlayerID, err)
	}
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.PlayerSnapshot{
			PlayerID:  state.PlayerID,
			Snapshot:  doc,
			Version:   state.Version,
			UpdatedAt: state.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	res := db.Model(&model.PlayerSnapshot{}).
		Where("player_id = ? AND version = ?", state.PlayerID, expectedVersion).
		Updates(map[string]any{
			"snapshot":   doc,
			"version":    state.Version,
			"updated_at": state.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r SnapshotRepo) Create(ctx context.Context, state game.PlayerState) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", state.PlayerID, err)
	}
	m := model.PlayerSnapshot{
		PlayerID:  state.PlayerID,
		Snapshot:  doc,
		Version:   state.Version,
		UpdatedAt: state.UpdatedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}
