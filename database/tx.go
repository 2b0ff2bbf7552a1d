package database

import (
	"context"
	"log/slog"

	"inspection-backend/apperrors"

	"gorm.io/gorm"
)

// WithTx runs fn inside one transaction: commit on a nil return, rollback on an
// error or a panic (which is re-raised after the rollback).
func WithTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return apperrors.Internal("failed to begin transaction", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
		if err != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				slog.Warn("tx rollback failed", "error", rbErr)
			}
			return
		}
		if e := tx.Commit().Error; e != nil {
			slog.Error("tx commit failed", "error", e)
			err = apperrors.Internal("transaction commit failed", e)
		}
	}()

	err = fn(tx)
	return err
}
