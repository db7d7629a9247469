// Package procurement сверяет план закупок сметы с фактическими закупками.
//
// План (потребности) строится агрегацией материалов по позициям сметы.
// Журнал фактических закупок ведётся отдельно, и каждая запись, привязанная
// к потребности, в той же транзакции атомарно сдвигает её счётчик
// PurchasedQuantity. Остатки, перерасход и средняя цена вычисляются при чтении.
package procurement

import (
	"buildcost/internal/app/ds"
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Scope тенант и пользователь, от имени которых выполняется операция.
// Передаётся явно в каждый вызов.
type Scope struct {
	TenantID uint
	UserID   uint
}

// Store хранилище смет, плана и журнала закупок. Все методы ограничены тенантом.
//
// InEstimateTx выполняет fn в одной транзакции под блокировкой сметы:
// exclusive для перегенерации плана, разделяемой для записей журнала.
// Методы, вызванные с ctx из fn, работают внутри этой транзакции.
// Если блокировку взять нельзя, возвращается apperr.ErrReconciliationConflict.
type Store interface {
	InEstimateTx(ctx context.Context, tenantID, estimateID uint, exclusive bool, fn func(ctx context.Context) error) error

	GetProject(ctx context.Context, tenantID, id uint) (*ds.Project, error)
	GetEstimate(ctx context.Context, tenantID, id uint) (*ds.Estimate, error)
	GetMaterial(ctx context.Context, tenantID, id uint) (*ds.Material, error)
	GetMaterials(ctx context.Context, tenantID uint, ids []uint) ([]ds.Material, error)
	GetUserByID(ctx context.Context, id uint) (*ds.User, error)
	ListMaterialLines(ctx context.Context, tenantID, estimateID uint) ([]ds.MaterialLine, error)

	ListRequirements(ctx context.Context, tenantID, estimateID uint) ([]ds.PurchaseRequirement, error)
	GetRequirement(ctx context.Context, tenantID, id uint) (*ds.PurchaseRequirement, error)
	UpsertPlannedRequirement(ctx context.Context, req *ds.PurchaseRequirement) error
	CreateRequirement(ctx context.Context, req *ds.PurchaseRequirement) error
	MarkRequirementsOrphaned(ctx context.Context, tenantID uint, ids []uint) error
	DeleteRequirements(ctx context.Context, tenantID uint, ids []uint) error
	LinkedRequirementIDs(ctx context.Context, tenantID uint, ids []uint) (map[uint]bool, error)
	RequirementLedgerTotals(ctx context.Context, tenantID, estimateID uint) (map[uint]ds.LedgerTotals, error)
	AdjustPurchasedQuantity(ctx context.Context, tenantID, requirementID uint, delta decimal.Decimal) error

	CreatePurchase(ctx context.Context, p *ds.ActualPurchase) error
	GetPurchase(ctx context.Context, tenantID, id uint) (*ds.ActualPurchase, error)
	GetPurchaseForUpdate(ctx context.Context, tenantID, id uint) (*ds.ActualPurchase, error)
	SavePurchase(ctx context.Context, p *ds.ActualPurchase) error
	SetPurchaseReceipt(ctx context.Context, tenantID, id uint, key string) error
	DeletePurchase(ctx context.Context, tenantID, id uint) error
	ListPurchases(ctx context.Context, tenantID uint, filter ds.PurchaseFilter) ([]ds.ActualPurchase, error)
	PurchaseStatistics(ctx context.Context, tenantID uint, filter ds.PurchaseFilter) (ds.PurchaseStats, error)
}

// StatsCache кэш статистики. Ошибки кэша не должны ломать чтение.
//
// GetStatistics отдаёт поколение кэша тенанта на момент чтения (или -1, если
// кэш недоступен); SetStatistics пишет под это поколение, а не под текущее,
// чтобы результат, посчитанный до записи в журнал, не пережил инвалидацию.
type StatsCache interface {
	GetStatistics(ctx context.Context, tenantID uint, key string) (stats *ds.PurchaseStats, generation int64, ok bool)
	SetStatistics(ctx context.Context, tenantID uint, generation int64, key string, stats ds.PurchaseStats)
	InvalidateStatistics(ctx context.Context, tenantID uint)
}

// ReceiptStorage хранилище файлов чеков
type ReceiptStorage interface {
	UploadFile(ctx context.Context, data []byte, originalFilename string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	GetFileURL(ctx context.Context, key string) (string, error)
}

type Service struct {
	store    Store
	cache    StatsCache
	receipts ReceiptStorage
	now      func() time.Time
}

type Option func(*Service)

func WithStatsCache(cache StatsCache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithReceiptStorage(storage ReceiptStorage) Option {
	return func(s *Service) { s.receipts = storage }
}

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasReceiptStorage true, если настроено хранилище чеков
func (s *Service) HasReceiptStorage() bool {
	return s.receipts != nil
}
