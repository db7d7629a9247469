// Package memory хранилище в памяти с той же семантикой, что и postgres:
// транзакции с откатом, блокировка сметы, атомарный счётчик закупленного.
package memory

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type txKey struct{}

type estimateLock struct {
	exclusive bool
	shared    int
}

// Store потокобезопасное хранилище. Транзакции изолированы грубо: пока
// транзакция открыта, другие транзакции и записи плана и журнала вне
// транзакций ждут (txMu), а блокировки смет
// повторяют правила advisory-блокировок postgres (try, без ожидания).
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	locks map[uint]*estimateLock

	projects     map[uint]ds.Project
	estimates    map[uint]ds.Estimate
	items        map[uint]ds.EstimateItem
	materials    map[uint]ds.Material
	users        map[uint]ds.User
	requirements map[uint]ds.PurchaseRequirement
	purchases    map[uint]ds.ActualPurchase

	nextID uint

	// FailAdjust, если задан, возвращается из AdjustPurchasedQuantity (для тестов отката)
	FailAdjust error
}

func NewStore() *Store {
	return &Store{
		locks:        make(map[uint]*estimateLock),
		projects:     make(map[uint]ds.Project),
		estimates:    make(map[uint]ds.Estimate),
		items:        make(map[uint]ds.EstimateItem),
		materials:    make(map[uint]ds.Material),
		users:        make(map[uint]ds.User),
		requirements: make(map[uint]ds.PurchaseRequirement),
		purchases:    make(map[uint]ds.ActualPurchase),
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// ============ Транзакции ============

// InEstimateTx блокирует смету и выполняет fn; при ошибке изменения плана и
// журнала откатываются.
func (s *Store) InEstimateTx(ctx context.Context, tenantID, estimateID uint, exclusive bool, fn func(ctx context.Context) error) error {
	if err := s.TryLockEstimate(estimateID, exclusive); err != nil {
		return err
	}
	defer s.UnlockEstimate(estimateID, exclusive)

	if ctx.Value(txKey{}) == nil {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}

	s.mu.Lock()
	reqBackup := cloneMap(s.requirements)
	purchaseBackup := cloneMap(s.purchases)
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.requirements = reqBackup
		s.purchases = purchaseBackup
		s.mu.Unlock()
		return err
	}
	return nil
}

// autocommit запись вне транзакции ждёт, пока открытые транзакции завершатся,
// иначе откат чужой транзакции вернул бы снимок без этой записи.
// Вызывать до s.mu.Lock: порядок блокировок txMu, затем mu.
func (s *Store) autocommit(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// TryLockEstimate берёт блокировку сметы без ожидания. Экспортирован, чтобы
// тесты могли изобразить перегенерацию, идущую параллельно.
func (s *Store) TryLockEstimate(estimateID uint, exclusive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.locks[estimateID]
	if l == nil {
		l = &estimateLock{}
		s.locks[estimateID] = l
	}
	if l.exclusive || (exclusive && l.shared > 0) {
		return apperr.ErrReconciliationConflict
	}
	if exclusive {
		l.exclusive = true
	} else {
		l.shared++
	}
	return nil
}

func (s *Store) UnlockEstimate(estimateID uint, exclusive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.locks[estimateID]
	if l == nil {
		return
	}
	if exclusive {
		l.exclusive = false
	} else if l.shared > 0 {
		l.shared--
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ============ Справочники и смета ============

func (s *Store) AddProject(p ds.Project) ds.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	s.projects[p.ID] = p
	return p
}

func (s *Store) AddEstimate(e ds.Estimate) ds.Estimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.id()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.estimates[e.ID] = e
	return e
}

func (s *Store) AddMaterial(m ds.Material) ds.Material {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == 0 {
		m.ID = s.id()
	}
	s.materials[m.ID] = m
	return m
}

func (s *Store) AddUser(u ds.User) ds.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.users[u.ID] = u
	return u
}

// AddEstimateItem добавляет позицию сметы вместе с материалами
func (s *Store) AddEstimateItem(item ds.EstimateItem) ds.EstimateItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = s.id()
	}
	for i := range item.Materials {
		if item.Materials[i].ID == 0 {
			item.Materials[i].ID = s.id()
		}
		item.Materials[i].EstimateItemID = item.ID
	}
	s.items[item.ID] = item
	return item
}

// RemoveEstimateItem убирает позицию из сметы
func (s *Store) RemoveEstimateItem(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// SetMaterialPrice меняет цену в справочнике
func (s *Store) SetMaterialPrice(id uint, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.materials[id]
	m.Price = price
	s.materials[id] = m
}

func (s *Store) GetProject(ctx context.Context, tenantID, id uint) (*ds.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.TenantID != tenantID {
		return nil, apperr.NotFound("project", id)
	}
	return &p, nil
}

func (s *Store) GetEstimate(ctx context.Context, tenantID, id uint) (*ds.Estimate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.estimates[id]
	if !ok || e.TenantID != tenantID {
		return nil, apperr.NotFound("estimate", id)
	}
	return &e, nil
}

func (s *Store) GetMaterial(ctx context.Context, tenantID, id uint) (*ds.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[id]
	if !ok || m.TenantID != tenantID {
		return nil, apperr.NotFound("material", id)
	}
	return &m, nil
}

func (s *Store) GetMaterials(ctx context.Context, tenantID uint, ids []uint) ([]ds.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ds.Material
	for _, id := range ids {
		if m, ok := s.materials[id]; ok && m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (*ds.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperr.NotFound("user", id)
	}
	return &u, nil
}

func (s *Store) ListMaterialLines(ctx context.Context, tenantID, estimateID uint) ([]ds.MaterialLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	itemIDs := make([]uint, 0)
	for id, item := range s.items {
		if item.EstimateID == estimateID && item.TenantID == tenantID {
			itemIDs = append(itemIDs, id)
		}
	}
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

	var lines []ds.MaterialLine
	for _, id := range itemIDs {
		item := s.items[id]
		for _, m := range item.Materials {
			lines = append(lines, ds.MaterialLine{
				MaterialID:             m.MaterialID,
				Quantity:               item.Quantity,
				ConsumptionCoefficient: m.ConsumptionCoefficient,
			})
		}
	}
	return lines, nil
}
