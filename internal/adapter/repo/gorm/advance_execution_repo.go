package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"idleverse/internal/adapter/repo/gorm/model"
	"idleverse/internal/app/ports"
)

type AdvanceExecutionRepo struct {
	db *gorm.DB
}

func NewAdvanceExecutionRepo(db *gorm.DB) AdvanceExecutionRepo {
	return AdvanceExecutionRepo{db: db}
}

func (r AdvanceExecutionRepo) GetByIdempotencyKey(ctx context.Context, playerID, key string) (*ports.AdvanceRecord, error) {
	var m model.AdvanceExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.AdvanceExecution{PlayerID: playerID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var result ports.AdvanceResult
	if err := json.Unmarshal(m.Result, &result); err != nil {
		return nil, fmt.Errorf("decode advance result %s/%s: %w", playerID, key, err)
	}
	return &ports.AdvanceRecord{
		PlayerID:       m.PlayerID,
		IdempotencyKey: m.IdempotencyKey,
		RequestedTicks: int(m.RequestedTicks),
		Seed:           uint64(m.Seed),
		BatchID:        m.BatchID,
		Result:         result,
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r AdvanceExecutionRepo) SaveExecution(ctx context.Context, execution ports.AdvanceRecord) error {
	resultJSON, err := json.Marshal(execution.Result)
	if err != nil {
		return fmt.Errorf("encode advance result: %w", err)
	}
	m := model.AdvanceExecution{
		PlayerID:       execution.PlayerID,
		IdempotencyKey: execution.IdempotencyKey,
		RequestedTicks: int32(execution.RequestedTicks),
		// Bit-preserving cast; reversed on load. Postgres has no
		// unsigned bigint.
		Seed:      int64(execution.Seed),
		BatchID:   execution.BatchID,
		Result:    resultJSON,
		AppliedAt: execution.AppliedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}
