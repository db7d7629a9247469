package handler

import (
	"buildcost/internal/app/config"
	"buildcost/internal/app/ds"
	"buildcost/internal/app/dto"
	"buildcost/internal/app/middleware"
	"buildcost/internal/app/procurement"
	"buildcost/internal/app/repository/memory"
	"buildcost/internal/app/role"
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/shopspring/decimal"
)

const (
	secret   = "test-secret"
	tenantID = 1
	userID   = 7

	// anonymous запрос без заголовка Authorization
	anonymous role.Role = -1
)

type testAPI struct {
	router   *gin.Engine
	store    *memory.Store
	project  ds.Project
	estimate ds.Estimate
	cement   ds.Material
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	store.AddUser(ds.User{ID: userID, TenantID: tenantID, Login: "buyer", FullName: "Петров П.П."})
	api := &testAPI{store: store}
	api.project = store.AddProject(ds.Project{TenantID: tenantID, Name: "Дом"})
	api.estimate = store.AddEstimate(ds.Estimate{TenantID: tenantID, ProjectID: api.project.ID, Name: "Фундамент"})
	api.cement = store.AddMaterial(ds.Material{TenantID: tenantID, SKU: "CEM-500", Name: "Цемент М500", Unit: "меш", Price: decimal.NewFromInt(480)})
	store.AddEstimateItem(ds.EstimateItem{
		TenantID: tenantID, EstimateID: api.estimate.ID, Name: "Стяжка", Quantity: decimal.NewFromInt(100),
		Materials: []ds.EstimateItemMaterial{{MaterialID: api.cement.ID, ConsumptionCoefficient: decimal.RequireFromString("0.6")}},
	})

	cfg := &config.Config{JWT: config.JWTConfig{
		Token:         secret,
		ExpiresIn:     time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}}
	h := NewAPIHandler(procurement.NewService(store))
	api.router = gin.New()
	h.RegisterAPIRoutes(api.router, middleware.NewAuthMiddleware(nil, cfg))
	return api
}

func token(t *testing.T, r role.Role) string {
	t.Helper()
	claims := &ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
		TenantID:       tenantID,
		UserID:         userID,
		Role:           r,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func (a *testAPI) do(t *testing.T, r role.Role, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if r != anonymous {
		req.Header.Set("Authorization", "Bearer "+token(t, r))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func (a *testAPI) plan(t *testing.T) dto.PlanResponse {
	t.Helper()
	w := a.do(t, role.Viewer, http.MethodGet, fmt.Sprintf("/api/estimates/%d/requirements", a.estimate.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get requirements: %d %s", w.Code, w.Body.String())
	}
	var plan dto.PlanResponse
	decode(t, w, &plan)
	return plan
}

func (a *testAPI) createPurchase(t *testing.T, reqID uint, qty string) dto.PurchaseResponse {
	t.Helper()
	w := a.do(t, role.Buyer, http.MethodPost, "/api/purchases", gin.H{
		"project_id":            a.project.ID,
		"estimate_id":           a.estimate.ID,
		"material_id":           a.cement.ID,
		"source_requirement_id": reqID,
		"quantity":              qty,
		"unit_price":            "480",
		"purchase_date":         "2024-05-20",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create purchase: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Status string               `json:"status"`
		Data   dto.PurchaseResponse `json:"data"`
	}
	decode(t, w, &resp)
	if resp.Status != "success" {
		t.Errorf("status = %q", resp.Status)
	}
	return resp.Data
}

func TestPlanAndLedgerFlow(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, role.Estimator, http.MethodPost, fmt.Sprintf("/api/estimates/%d/purchase-plan", api.estimate.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("generate plan: %d %s", w.Code, w.Body.String())
	}

	plan := api.plan(t)
	if plan.Total != 1 || len(plan.Requirements) != 1 {
		t.Fatalf("plan has %d requirements, want 1", plan.Total)
	}
	req := plan.Requirements[0]
	if !req.QuantityRequired.Equal(decimal.NewFromInt(60)) || req.Status != string(procurement.StatusPending) {
		t.Errorf("requirement = %s %s", req.QuantityRequired, req.Status)
	}

	p := api.createPurchase(t, req.ID, "60")
	if p.CreatedByName != "Петров П.П." || p.PurchaseDate != "2024-05-20" {
		t.Errorf("purchase = %+v", p)
	}
	if !p.TotalPrice.Equal(decimal.NewFromInt(28800)) {
		t.Errorf("total = %s", p.TotalPrice)
	}

	req = api.plan(t).Requirements[0]
	if !req.PurchasedQuantity.Equal(decimal.NewFromInt(60)) || !req.Remainder.IsZero() || req.Status != string(procurement.StatusFulfilled) {
		t.Errorf("after purchase: purchased %s remainder %s status %s", req.PurchasedQuantity, req.Remainder, req.Status)
	}

	w = api.do(t, role.Buyer, http.MethodPut, fmt.Sprintf("/api/purchases/%d", p.ID), gin.H{"quantity": "70"})
	if w.Code != http.StatusOK {
		t.Fatalf("update purchase: %d %s", w.Code, w.Body.String())
	}
	req = api.plan(t).Requirements[0]
	if !req.Remainder.Equal(decimal.NewFromInt(-10)) || !req.IsOverspent {
		t.Errorf("after update: remainder %s overspent %v", req.Remainder, req.IsOverspent)
	}

	w = api.do(t, role.Viewer, http.MethodGet, fmt.Sprintf("/api/estimates/%d/reconciliation", api.estimate.ID), nil)
	var rec dto.ReconciliationResponse
	decode(t, w, &rec)
	if !rec.InSync {
		t.Errorf("reconciliation = %+v", rec)
	}

	w = api.do(t, role.Viewer, http.MethodGet, "/api/purchases?material_id="+fmt.Sprint(api.cement.ID), nil)
	var list dto.PurchaseListResponse
	decode(t, w, &list)
	if list.Total != 1 {
		t.Errorf("list total = %d", list.Total)
	}

	w = api.do(t, role.Viewer, http.MethodGet, "/api/purchases/statistics", nil)
	var stats dto.StatisticsResponse
	decode(t, w, &stats)
	if !stats.TotalSpent.Equal(decimal.NewFromInt(33600)) || stats.PurchaseCount != 1 {
		t.Errorf("stats = %+v", stats)
	}

	w = api.do(t, role.Buyer, http.MethodDelete, fmt.Sprintf("/api/purchases/%d", p.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete purchase: %d %s", w.Code, w.Body.String())
	}
	req = api.plan(t).Requirements[0]
	if !req.PurchasedQuantity.IsZero() || !req.Remainder.Equal(decimal.NewFromInt(60)) {
		t.Errorf("after delete: purchased %s remainder %s", req.PurchasedQuantity, req.Remainder)
	}
}

func TestAddExtraCharge(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, role.Estimator, http.MethodPost, fmt.Sprintf("/api/estimates/%d/extra-charges", api.estimate.ID), gin.H{
		"material_id": api.cement.ID,
		"quantity":    "10",
		"unit_price":  "500",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("extra charge: %d %s", w.Code, w.Body.String())
	}

	plan := api.plan(t)
	if len(plan.Requirements) != 1 || !plan.Requirements[0].IsExtraCharge {
		t.Fatalf("plan = %+v", plan.Requirements)
	}
	if !plan.Requirements[0].PlannedTotal.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("planned total = %s", plan.Requirements[0].PlannedTotal)
	}
	// докупка не входит в плановую стоимость сметы
	if !plan.Summary.PlannedTotal.IsZero() {
		t.Errorf("summary planned total = %s", plan.Summary.PlannedTotal)
	}
}

func TestStatusMapping(t *testing.T) {
	api := newTestAPI(t)
	api.do(t, role.Estimator, http.MethodPost, fmt.Sprintf("/api/estimates/%d/purchase-plan", api.estimate.ID), nil)
	reqID := api.plan(t).Requirements[0].ID
	api.createPurchase(t, reqID, "5")

	estimatePath := fmt.Sprintf("/api/estimates/%d", api.estimate.ID)
	tests := []struct {
		name   string
		role   role.Role
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"no token", anonymous, http.MethodGet, "/api/purchases", nil, http.StatusUnauthorized},
		{"viewer cannot buy", role.Viewer, http.MethodPost, "/api/purchases", gin.H{}, http.StatusForbidden},
		{"buyer cannot regenerate", role.Buyer, http.MethodPost, estimatePath + "/purchase-plan", nil, http.StatusForbidden},
		{"bad id", role.Viewer, http.MethodGet, "/api/purchases/abc", nil, http.StatusBadRequest},
		{"missing purchase", role.Viewer, http.MethodGet, "/api/purchases/9999", nil, http.StatusNotFound},
		{"missing estimate", role.Viewer, http.MethodGet, "/api/estimates/9999/requirements", nil, http.StatusNotFound},
		{"malformed json", role.Buyer, http.MethodPost, "/api/purchases", "{", http.StatusBadRequest},
		{"zero quantity", role.Buyer, http.MethodPost, "/api/purchases", gin.H{
			"project_id": api.project.ID, "estimate_id": api.estimate.ID, "material_id": api.cement.ID,
			"quantity": "0", "unit_price": "1",
		}, http.StatusBadRequest},
		{"bad date", role.Buyer, http.MethodPost, "/api/purchases", gin.H{
			"project_id": api.project.ID, "estimate_id": api.estimate.ID, "material_id": api.cement.ID,
			"quantity": "1", "unit_price": "1", "purchase_date": "20.05.2024",
		}, http.StatusBadRequest},
		{"bad filter", role.Viewer, http.MethodGet, "/api/purchases?date_from=yesterday", nil, http.StatusBadRequest},
		{"inverted range", role.Viewer, http.MethodGet, "/api/purchases/statistics?date_from=2024-05-10&date_to=2024-05-01", nil, http.StatusBadRequest},
		{"requirement in use", role.Estimator, http.MethodDelete, fmt.Sprintf("/api/requirements/%d", reqID), nil, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, tt.role, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestWriteDuringRegenerationConflicts(t *testing.T) {
	api := newTestAPI(t)
	if err := api.store.TryLockEstimate(api.estimate.ID, true); err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer api.store.UnlockEstimate(api.estimate.ID, true)

	w := api.do(t, role.Buyer, http.MethodPost, "/api/purchases", gin.H{
		"project_id": api.project.ID, "estimate_id": api.estimate.ID, "material_id": api.cement.ID,
		"quantity": "1", "unit_price": "1",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
	var resp dto.ErrorResponse
	decode(t, w, &resp)
	if resp.Status != "fail" {
		t.Errorf("status = %q", resp.Status)
	}
}

func TestUploadReceiptWithoutStorage(t *testing.T) {
	api := newTestAPI(t)
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("receipt", "check.pdf")
	part.Write([]byte("%PDF"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/purchases/1/receipt", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token(t, role.Buyer))
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", w.Code)
	}
}
