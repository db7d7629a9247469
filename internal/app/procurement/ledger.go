package procurement

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// PurchaseInput данные новой записи журнала
type PurchaseInput struct {
	ProjectID           uint
	EstimateID          uint
	MaterialID          uint
	SourceRequirementID *uint
	Quantity            decimal.Decimal
	UnitPrice           decimal.Decimal
	PurchaseDate        time.Time // нулевая дата значит «сегодня»
	IsExtraCharge       bool // учитывается только без SourceRequirementID
	Notes               string
}

// PurchaseUpdate изменяемые поля записи; nil значит «не менять»
type PurchaseUpdate struct {
	Quantity     *decimal.Decimal
	UnitPrice    *decimal.Decimal
	PurchaseDate *time.Time
	Notes        *string
}

func (in PurchaseInput) validate() error {
	switch {
	case in.ProjectID == 0:
		return apperr.Invalid("project_id", "is required")
	case in.EstimateID == 0:
		return apperr.Invalid("estimate_id", "is required")
	case in.MaterialID == 0:
		return apperr.Invalid("material_id", "is required")
	case in.SourceRequirementID != nil && *in.SourceRequirementID == 0:
		return apperr.Invalid("source_requirement_id", "must be a valid id or omitted")
	case !in.Quantity.IsPositive():
		return apperr.Invalid("quantity", "must be greater than zero")
	case in.UnitPrice.IsNegative():
		return apperr.Invalid("unit_price", "must not be negative")
	}
	return nil
}

func (u PurchaseUpdate) validate() error {
	switch {
	case u.Quantity != nil && !u.Quantity.IsPositive():
		return apperr.Invalid("quantity", "must be greater than zero")
	case u.UnitPrice != nil && u.UnitPrice.IsNegative():
		return apperr.Invalid("unit_price", "must not be negative")
	case u.PurchaseDate != nil && u.PurchaseDate.IsZero():
		return apperr.Invalid("purchase_date", "must not be empty")
	}
	return nil
}

// RecordPurchase записывает фактическую закупку. Если указана потребность,
// в той же транзакции её PurchasedQuantity увеличивается на Quantity.
func (s *Service) RecordPurchase(ctx context.Context, scope Scope, in PurchaseInput) (*ds.ActualPurchase, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	project, err := s.store.GetProject(ctx, scope.TenantID, in.ProjectID)
	if err != nil {
		return nil, apperr.Wrap("record purchase", err)
	}
	estimate, err := s.store.GetEstimate(ctx, scope.TenantID, in.EstimateID)
	if err != nil {
		return nil, apperr.Wrap("record purchase", err)
	}
	if estimate.ProjectID != project.ID {
		return nil, apperr.Invalid("estimate_id", "estimate does not belong to the project")
	}
	material, err := s.store.GetMaterial(ctx, scope.TenantID, in.MaterialID)
	if err != nil {
		return nil, apperr.Wrap("record purchase", err)
	}

	if in.PurchaseDate.IsZero() {
		in.PurchaseDate = s.now()
	}
	quantity := in.Quantity.Round(quantityScale)
	unitPrice := in.UnitPrice.Round(priceScale)
	purchase := &ds.ActualPurchase{
		TenantID:            scope.TenantID,
		ProjectID:           project.ID,
		EstimateID:          estimate.ID,
		MaterialID:          material.ID,
		SourceRequirementID: in.SourceRequirementID,
		Quantity:            quantity,
		UnitPrice:           unitPrice,
		TotalPrice:          LineTotal(quantity, unitPrice),
		PurchaseDate:        datatypes.Date(truncateDay(in.PurchaseDate)),
		IsExtraCharge:       in.IsExtraCharge,
		MaterialName:        material.Name,
		MaterialSKU:         material.SKU,
		MaterialUnit:        material.Unit,
		ProjectName:         project.Name,
		EstimateName:        estimate.Name,
		CreatedBy:           scope.UserID,
		CreatedByName:       s.userName(ctx, scope.UserID),
		Notes:               in.Notes,
	}

	err = s.store.InEstimateTx(ctx, scope.TenantID, estimate.ID, false, func(ctx context.Context) error {
		if in.SourceRequirementID != nil {
			req, err := s.store.GetRequirement(ctx, scope.TenantID, *in.SourceRequirementID)
			if err != nil {
				return err
			}
			if req.EstimateID != estimate.ID {
				return apperr.Invalid("source_requirement_id", "requirement belongs to another estimate")
			}
			if req.MaterialID != material.ID {
				return apperr.Invalid("source_requirement_id", "requirement is for another material")
			}
			purchase.IsExtraCharge = req.IsExtraCharge
		}

		if err := s.store.CreatePurchase(ctx, purchase); err != nil {
			return err
		}
		return s.compensate(ctx, scope.TenantID, purchase.SourceRequirementID, purchase.Quantity)
	})
	if err != nil {
		return nil, apperr.Wrap("record purchase", err)
	}

	s.afterLedgerWrite(ctx, scope, "purchase recorded", purchase)
	return purchase, nil
}

// UpdatePurchase меняет запись журнала. Изменение количества переносится на
// потребность дельтой (новое - старое) в той же транзакции.
func (s *Service) UpdatePurchase(ctx context.Context, scope Scope, id uint, upd PurchaseUpdate) (*ds.ActualPurchase, error) {
	if id == 0 {
		return nil, apperr.Invalid("id", "is required")
	}
	if err := upd.validate(); err != nil {
		return nil, err
	}

	current, err := s.store.GetPurchase(ctx, scope.TenantID, id)
	if err != nil {
		return nil, apperr.Wrap("update purchase", err)
	}

	var purchase *ds.ActualPurchase
	err = s.store.InEstimateTx(ctx, scope.TenantID, current.EstimateID, false, func(ctx context.Context) error {
		// перечитываем под блокировкой строки: старое количество должно быть актуальным
		p, err := s.store.GetPurchaseForUpdate(ctx, scope.TenantID, id)
		if err != nil {
			return err
		}
		oldQuantity := p.Quantity

		if upd.Quantity != nil {
			p.Quantity = upd.Quantity.Round(quantityScale)
		}
		if upd.UnitPrice != nil {
			p.UnitPrice = upd.UnitPrice.Round(priceScale)
		}
		if upd.PurchaseDate != nil {
			p.PurchaseDate = datatypes.Date(truncateDay(*upd.PurchaseDate))
		}
		if upd.Notes != nil {
			p.Notes = *upd.Notes
		}
		p.TotalPrice = LineTotal(p.Quantity, p.UnitPrice)

		if err := s.store.SavePurchase(ctx, p); err != nil {
			return err
		}
		if err := s.compensate(ctx, scope.TenantID, p.SourceRequirementID, p.Quantity.Sub(oldQuantity)); err != nil {
			return err
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap("update purchase", err)
	}

	s.afterLedgerWrite(ctx, scope, "purchase updated", purchase)
	return purchase, nil
}

// DeletePurchase удаляет запись журнала, вычитая её количество из потребности
func (s *Service) DeletePurchase(ctx context.Context, scope Scope, id uint) error {
	if id == 0 {
		return apperr.Invalid("id", "is required")
	}
	current, err := s.store.GetPurchase(ctx, scope.TenantID, id)
	if err != nil {
		return apperr.Wrap("delete purchase", err)
	}

	var deleted *ds.ActualPurchase
	err = s.store.InEstimateTx(ctx, scope.TenantID, current.EstimateID, false, func(ctx context.Context) error {
		p, err := s.store.GetPurchaseForUpdate(ctx, scope.TenantID, id)
		if err != nil {
			return err
		}
		if err := s.compensate(ctx, scope.TenantID, p.SourceRequirementID, p.Quantity.Neg()); err != nil {
			return err
		}
		if err := s.store.DeletePurchase(ctx, scope.TenantID, id); err != nil {
			return err
		}
		deleted = p
		return nil
	})
	if err != nil {
		return apperr.Wrap("delete purchase", err)
	}

	if deleted.ReceiptKey != "" && s.receipts != nil {
		if err := s.receipts.DeleteFile(ctx, deleted.ReceiptKey); err != nil {
			logrus.Warnf("failed to delete receipt %s: %v", deleted.ReceiptKey, err)
		}
	}
	s.afterLedgerWrite(ctx, scope, "purchase deleted", deleted)
	return nil
}

// GetPurchase одна запись журнала
func (s *Service) GetPurchase(ctx context.Context, scope Scope, id uint) (*ds.ActualPurchase, error) {
	if id == 0 {
		return nil, apperr.Invalid("id", "is required")
	}
	p, err := s.store.GetPurchase(ctx, scope.TenantID, id)
	if err != nil {
		return nil, apperr.Wrap("get purchase", err)
	}
	return p, nil
}

// ListPurchases журнал закупок по фильтру, новые сверху
func (s *Service) ListPurchases(ctx context.Context, scope Scope, filter ds.PurchaseFilter) ([]ds.ActualPurchase, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	purchases, err := s.store.ListPurchases(ctx, scope.TenantID, filter)
	if err != nil {
		return nil, apperr.Wrap("list purchases", err)
	}
	return purchases, nil
}

// AttachReceipt сохраняет файл чека в хранилище и привязывает его к закупке.
// Предыдущий файл удаляется.
func (s *Service) AttachReceipt(ctx context.Context, scope Scope, id uint, filename string, data []byte) (*ds.ActualPurchase, error) {
	if s.receipts == nil {
		return nil, apperr.ErrUnavailable
	}
	if id == 0 {
		return nil, apperr.Invalid("id", "is required")
	}
	if len(data) == 0 {
		return nil, apperr.Invalid("receipt", "file is empty")
	}

	current, err := s.store.GetPurchase(ctx, scope.TenantID, id)
	if err != nil {
		return nil, apperr.Wrap("attach receipt", err)
	}

	key, err := s.receipts.UploadFile(ctx, data, filename)
	if err != nil {
		return nil, apperr.Wrap("attach receipt", err)
	}

	var (
		purchase *ds.ActualPurchase
		oldKey   string
	)
	err = s.store.InEstimateTx(ctx, scope.TenantID, current.EstimateID, false, func(ctx context.Context) error {
		p, err := s.store.GetPurchaseForUpdate(ctx, scope.TenantID, id)
		if err != nil {
			return err
		}
		if err := s.store.SetPurchaseReceipt(ctx, scope.TenantID, id, key); err != nil {
			return err
		}
		oldKey = p.ReceiptKey
		p.ReceiptKey = key
		purchase = p
		return nil
	})
	if err != nil {
		if delErr := s.receipts.DeleteFile(ctx, key); delErr != nil {
			logrus.Warnf("failed to clean up receipt %s: %v", key, delErr)
		}
		return nil, apperr.Wrap("attach receipt", err)
	}

	if oldKey != "" {
		if err := s.receipts.DeleteFile(ctx, oldKey); err != nil {
			logrus.Warnf("failed to delete old receipt %s: %v", oldKey, err)
		}
	}
	return purchase, nil
}

// ReceiptURL временная ссылка на чек или пустая строка
func (s *Service) ReceiptURL(ctx context.Context, p *ds.ActualPurchase) string {
	if s.receipts == nil || p.ReceiptKey == "" {
		return ""
	}
	url, err := s.receipts.GetFileURL(ctx, p.ReceiptKey)
	if err != nil {
		logrus.Warnf("failed to presign receipt %s: %v", p.ReceiptKey, err)
		return ""
	}
	return url
}

func (s *Service) afterLedgerWrite(ctx context.Context, scope Scope, msg string, p *ds.ActualPurchase) {
	if s.cache != nil {
		s.cache.InvalidateStatistics(ctx, scope.TenantID)
	}

	fields := logrus.Fields{
		"tenant_id":   scope.TenantID,
		"user_id":     scope.UserID,
		"purchase_id": p.ID,
		"estimate_id": p.EstimateID,
		"quantity":    p.Quantity.String(),
	}
	if p.SourceRequirementID != nil {
		fields["requirement_id"] = *p.SourceRequirementID
	}
	logrus.WithFields(fields).Info(msg)
}

// userName ФИО для снимка; пользователи ведутся вне ядра, поэтому отсутствие не ошибка
func (s *Service) userName(ctx context.Context, userID uint) string {
	if userID == 0 {
		return ""
	}
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			logrus.Warnf("failed to load user %d: %v", userID, err)
		}
		return ""
	}
	return user.FullName
}

func validateFilter(f ds.PurchaseFilter) error {
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return apperr.Invalid("date_to", "must not be before date_from")
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
