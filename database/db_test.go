package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"inspection-backend/apperrors"
	"inspection-backend/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func countChemParams(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.ChemInspectionParam{}).Count(&n).Error)
	return n
}

func TestWithTxCommits(t *testing.T) {
	db := newTestDB(t)

	err := WithTx(context.Background(), db, func(tx *gorm.DB) error {
		return tx.Create(&models.ChemInspectionParam{ParameterName: "Moisture"}).Error
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, countChemParams(t, db))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	boom := apperrors.Validation("rejected after insert")

	err := WithTx(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&models.ChemInspectionParam{ParameterName: "Moisture"}).Error; err != nil {
			return err
		}
		return boom
	})
	assert.Same(t, boom, err)
	assert.EqualValues(t, 0, countChemParams(t, db))
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	db := newTestDB(t)

	assert.Panics(t, func() {
		_ = WithTx(context.Background(), db, func(tx *gorm.DB) error {
			tx.Create(&models.ChemInspectionParam{ParameterName: "Moisture"})
			panic("handler bug")
		})
	})
	assert.EqualValues(t, 0, countChemParams(t, db))
}

func TestIsUniqueViolation(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.ChemInspectionParam{ParameterName: "Ash"}).Error)

	err := db.Create(&models.ChemInspectionParam{ParameterName: "Ash"}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("timeout")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsNotFound(t *testing.T) {
	db := newTestDB(t)
	var p models.ChemInspectionParam
	err := db.First(&p, 42).Error
	assert.True(t, IsNotFound(err))
}

func TestMillingConstraintExpression(t *testing.T) {
	assert.Equal(t, "'Under Milled', 'Well Milled', 'Over Milled'", quoteList(models.MillingDegrees))
	assert.Equal(t, "'it''s'", quoteList([]string{"it's"}))
}
