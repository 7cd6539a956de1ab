package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storenest/storenest-backend/api/middleware"
	internalorders "github.com/storenest/storenest-backend/internal/orders"
	"github.com/storenest/storenest-backend/pkg/db/models"
	"github.com/storenest/storenest-backend/pkg/enums"
	pkgerrors "github.com/storenest/storenest-backend/pkg/errors"
	"github.com/storenest/storenest-backend/pkg/pagination"
	"github.com/storenest/storenest-backend/pkg/types"
)

type stubOrdersService struct {
	placeResult *internalorders.PlaceOrderResult
	placeErr    error
	placeInput  internalorders.PlaceOrderInput
	cancelErr   error
	updateErr   error
	lastStatus  enums.OrderStatus
}

func (s *stubOrdersService) PlaceOrder(_ context.Context, _ uuid.UUID, input internalorders.PlaceOrderInput) (*internalorders.PlaceOrderResult, error) {
	s.placeInput = input
	return s.placeResult, s.placeErr
}

func (s *stubOrdersService) GetByReference(_ context.Context, _ uuid.UUID, reference string) (*internalorders.OrderDetail, error) {
	if reference == "missing" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return &internalorders.OrderDetail{Order: models.Order{OrderReference: reference}}, nil
}

func (s *stubOrdersService) List(context.Context, uuid.UUID, pagination.Params) (*internalorders.OrderList, error) {
	return &internalorders.OrderList{Orders: []internalorders.OrderSummary{}}, nil
}

func (s *stubOrdersService) UpdateStatus(_ context.Context, reference string, next enums.OrderStatus) (*models.Order, error) {
	s.lastStatus = next
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.Order{OrderReference: reference, Status: next}, nil
}

func (s *stubOrdersService) Cancel(_ context.Context, _ uuid.UUID, reference string, _, _ *string) (*models.Order, error) {
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	return &models.Order{OrderReference: reference, Status: enums.OrderStatusCancelled}, nil
}

func newOrdersRouter(svc internalorders.Service) http.Handler {
	r := chi.NewRouter()
	r.Post("/orders", PlaceOrder(svc, nil))
	r.Get("/orders", ListOrders(svc, nil))
	r.Get("/orders/{reference}", OrderDetail(svc, nil))
	r.Post("/orders/{reference}/cancel", CancelOrder(svc, nil))
	r.Patch("/admin/orders/{reference}/status", UpdateOrderStatus(svc, nil))
	return r
}

func asCustomer(r *http.Request, customerID uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithCustomerID(r.Context(), customerID.String()))
}

func TestPlaceOrderHandler(t *testing.T) {
	svc := &stubOrdersService{
		placeResult: &internalorders.PlaceOrderResult{
			OrderReference: "1757000000000-0000000042",
			Status:         enums.OrderStatusPending,
			GrandTotal:     decimal.RequireFromString("180.00"),
		},
	}
	router := newOrdersRouter(svc)

	body := `{"items":[{"variant_id":"` + uuid.NewString() + `","qty":2}],"payment":{"method":"card"}}`
	r := asCustomer(httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)), uuid.New())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, svc.placeInput.Items, 1)
	assert.Equal(t, 2, svc.placeInput.Items[0].Qty)

	var envelope types.SuccessEnvelope
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	data := envelope.Data.(map[string]any)
	assert.Equal(t, "1757000000000-0000000042", data["order_reference"])
}

func TestPlaceOrderHandlerRejectsInvalidBody(t *testing.T) {
	router := newOrdersRouter(&stubOrdersService{})

	r := asCustomer(httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"items":[]}`)), uuid.New())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderHandlerRequiresCustomer(t *testing.T) {
	router := newOrdersRouter(&stubOrdersService{})

	r := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrderHandlerMapsStockConflict(t *testing.T) {
	svc := &stubOrdersService{
		placeErr: pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for SKU-1"),
	}
	router := newOrdersRouter(svc)

	body := `{"items":[{"variant_id":"` + uuid.NewString() + `","qty":9}]}`
	r := asCustomer(httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)), uuid.New())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient stock for SKU-1")
}

func TestOrderDetailHandler(t *testing.T) {
	router := newOrdersRouter(&stubOrdersService{})

	r := asCustomer(httptest.NewRequest(http.MethodGet, "/orders/1757-42", nil), uuid.New())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	r = asCustomer(httptest.NewRequest(http.MethodGet, "/orders/missing", nil), uuid.New())
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelOrderHandler(t *testing.T) {
	router := newOrdersRouter(&stubOrdersService{})

	r := asCustomer(httptest.NewRequest(http.MethodPost, "/orders/1757-42/cancel", strings.NewReader(`{"reason":"changed my mind"}`)), uuid.New())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), string(enums.OrderStatusCancelled))
}

func TestCancelOrderHandlerStateConflict(t *testing.T) {
	svc := &stubOrdersService{
		cancelErr: pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled in status shipped"),
	}
	router := newOrdersRouter(svc)

	r := asCustomer(httptest.NewRequest(http.MethodPost, "/orders/1757-42/cancel", nil), uuid.New())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	svc := &stubOrdersService{}
	router := newOrdersRouter(svc)

	r := httptest.NewRequest(http.MethodPatch, "/admin/orders/1757-42/status", strings.NewReader(`{"status":"shipped"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, enums.OrderStatusShipped, svc.lastStatus)

	r = httptest.NewRequest(http.MethodPatch, "/admin/orders/1757-42/status", strings.NewReader(`{"status":"teleported"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
