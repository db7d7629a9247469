package repository

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

type txKey struct{}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return &Repository{
		db: db,
	}, nil
}

// NewFromDB оборачивает уже открытое соединение (без миграции)
func NewFromDB(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate автоматическая миграция всех таблиц
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&ds.User{},
		&ds.Project{},
		&ds.Estimate{},
		&ds.Material{},
		&ds.EstimateItem{},
		&ds.EstimateItemMaterial{},
		&ds.PurchaseRequirement{},
		&ds.ActualPurchase{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// DB нужен cmd-утилитам для Close
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// conn соединение текущей транзакции, если она есть в ctx
func (r *Repository) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}

// InEstimateTx открывает транзакцию и берёт advisory-блокировку сметы.
// Блокировка транзакционная и снимается при COMMIT/ROLLBACK сама.
// Ключ блокировки (estimateLockNamespace, id сметы): id глобально уникальны,
// тенант в ключ не входит.
func (r *Repository) InEstimateTx(ctx context.Context, tenantID, estimateID uint, exclusive bool, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		if err := tryLockEstimate(tx, estimateID, exclusive); err != nil {
			return err
		}
		return fn(ctx)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tryLockEstimate(tx, estimateID, exclusive); err != nil {
			return err
		}
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// estimateLockNamespace первый ключ advisory-блокировок смет.
// Двухключевая форма не пересекается с однобиговыми блокировками
// других подсистем той же базы.
const estimateLockNamespace int32 = 0x4243

// estimateLockKey второй ключ: id сметы, усечённый до int4
func estimateLockKey(estimateID uint) int32 {
	return int32(uint32(estimateID))
}

func tryLockEstimate(tx *gorm.DB, estimateID uint, exclusive bool) error {
	query := "SELECT pg_try_advisory_xact_lock_shared(?, ?)"
	if exclusive {
		query = "SELECT pg_try_advisory_xact_lock(?, ?)"
	}

	var locked bool
	if err := tx.Raw(query, estimateLockNamespace, estimateLockKey(estimateID)).Scan(&locked).Error; err != nil {
		return err
	}
	if !locked {
		return apperr.ErrReconciliationConflict
	}
	return nil
}

// notFound переводит gorm.ErrRecordNotFound в ошибку домена
func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity, id)
	}
	return err
}
