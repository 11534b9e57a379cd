package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	tradeapp "github.com/dukahub/backend/internal/application/trade"
	"github.com/dukahub/backend/internal/domain/catalog"
	"github.com/dukahub/backend/internal/domain/partner"
	"github.com/dukahub/backend/internal/domain/shared"
	"github.com/dukahub/backend/internal/domain/store"
	"github.com/dukahub/backend/internal/domain/trade"
	"github.com/dukahub/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderHandlerFixture struct {
	orderRepo    *MockOrderRepository
	productRepo  *MockProductRepository
	customerRepo *MockCustomerRepository
	storeRepo    *MockStoreRepository
	notifier     *MockNotifier
	router       *gin.Engine

	ownerID  uuid.UUID
	store    *store.Store
	customer *partner.Customer
}

func newOrderHandlerFixture(t *testing.T) *orderHandlerFixture {
	t.Helper()

	f := &orderHandlerFixture{
		orderRepo:    new(MockOrderRepository),
		productRepo:  new(MockProductRepository),
		customerRepo: new(MockCustomerRepository),
		storeRepo:    new(MockStoreRepository),
		notifier:     new(MockNotifier),
		ownerID:      uuid.New(),
	}

	st, err := store.NewStore(f.ownerID, "Duka la Wanjiku")
	require.NoError(t, err)
	f.store = st

	customer, err := partner.NewCustomer(st.ID, "Njeri", "Kamau", "njeri@duka.co.ke")
	require.NoError(t, err)
	require.NoError(t, customer.SetPhoneNumber("+254700111222"))
	f.customer = customer

	svc := tradeapp.NewOrderService(
		f.orderRepo, f.productRepo, f.customerRepo, f.storeRepo,
		f.notifier, nil, zap.NewNop(),
	)
	h := NewOrderHandler(svc)

	f.router = gin.New()
	f.router.Use(authAs(f.ownerID))
	orders := f.router.Group("/stores/:store_id/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.PATCH("/:id", h.Update)
		orders.DELETE("/:id", h.Delete)
	}

	return f
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (f *orderHandlerFixture) do(method, path string, body any) *httptest.ResponseRecorder {
	return doRequest(f.router, method, path, body)
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *dto.ErrorInfo  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	var out T
	require.NoError(t, json.Unmarshal(envelope.Data, &out))
	return out
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var envelope struct {
		Error *dto.ErrorInfo `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error
}

func TestOrderHandler_Create(t *testing.T) {
	f := newOrderHandlerFixture(t)

	basket, err := catalog.NewProduct(f.store.ID, "Kiondo basket", decimal.NewFromInt(1200), 5)
	require.NoError(t, err)
	soap, err := catalog.NewProduct(f.store.ID, "Shea soap", decimal.NewFromInt(250), 30)
	require.NoError(t, err)

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.customerRepo.On("FindByIDForStore", mock.Anything, f.store.ID, f.customer.ID).Return(f.customer, nil)
	f.productRepo.On("FindByIDForStore", mock.Anything, f.store.ID, basket.ID).Return(basket, nil)
	f.productRepo.On("FindByIDForStore", mock.Anything, f.store.ID, soap.ID).Return(soap, nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)
	f.notifier.On("NotifyOrderCreated", mock.Anything, mock.Anything).Return(nil)

	w := f.do("POST", fmt.Sprintf("/stores/%s/orders", f.store.ID), gin.H{
		"customer_id": f.customer.ID,
		"address":     "Biashara Street, Nyeri",
		"items": []gin.H{
			{"product_id": basket.ID, "quantity": 2},
			{"product_id": soap.ID, "quantity": 3},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeData[tradeapp.OrderResponse](t, w)
	assert.True(t, decimal.NewFromInt(3150).Equal(resp.TotalPrice))
	require.Len(t, resp.Items, 2)
	assert.True(t, decimal.NewFromInt(2400).Equal(resp.Items[0].Price))
}

func TestOrderHandler_CreateClientPriceIgnored(t *testing.T) {
	f := newOrderHandlerFixture(t)

	basket, err := catalog.NewProduct(f.store.ID, "Kiondo basket", decimal.NewFromInt(1200), 5)
	require.NoError(t, err)

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.customerRepo.On("FindByIDForStore", mock.Anything, f.store.ID, f.customer.ID).Return(f.customer, nil)
	f.productRepo.On("FindByIDForStore", mock.Anything, f.store.ID, basket.ID).Return(basket, nil)
	f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)
	f.notifier.On("NotifyOrderCreated", mock.Anything, mock.Anything).Return(nil)

	// The client tries to buy at one shilling; the catalog price wins.
	w := f.do("POST", fmt.Sprintf("/stores/%s/orders", f.store.ID), gin.H{
		"customer_id": f.customer.ID,
		"items": []gin.H{
			{"product_id": basket.ID, "quantity": 1, "price": "1.00"},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeData[tradeapp.OrderResponse](t, w)
	assert.True(t, decimal.NewFromInt(1200).Equal(resp.TotalPrice))
}

func TestOrderHandler_CreateEmptyItems(t *testing.T) {
	f := newOrderHandlerFixture(t)

	w := f.do("POST", fmt.Sprintf("/stores/%s/orders", f.store.ID), gin.H{
		"customer_id": f.customer.ID,
		"items":       []gin.H{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.orderRepo.AssertNotCalled(t, "Save")
}

func TestOrderHandler_CreateUnknownCustomer(t *testing.T) {
	f := newOrderHandlerFixture(t)
	customerID := uuid.New()

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.customerRepo.On("FindByIDForStore", mock.Anything, f.store.ID, customerID).Return(nil, shared.ErrNotFound)

	w := f.do("POST", fmt.Sprintf("/stores/%s/orders", f.store.ID), gin.H{
		"customer_id": customerID,
		"items":       []gin.H{{"product_id": uuid.New(), "quantity": 1}},
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decodeError(t, w).Code)
}

func TestOrderHandler_CreateForeignStore(t *testing.T) {
	f := newOrderHandlerFixture(t)
	foreignStoreID := uuid.New()

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, foreignStoreID).Return(nil, shared.ErrNotFound)

	w := f.do("POST", fmt.Sprintf("/stores/%s/orders", foreignStoreID), gin.H{
		"customer_id": f.customer.ID,
		"items":       []gin.H{{"product_id": uuid.New(), "quantity": 1}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.orderRepo.AssertNotCalled(t, "Save")
}

func TestOrderHandler_UpdateFlags(t *testing.T) {
	f := newOrderHandlerFixture(t)

	order, err := trade.NewOrder(f.store.ID, f.customer.ID, "+254700111222", "Biashara Street")
	require.NoError(t, err)
	require.NoError(t, order.AddItem(uuid.New(), 2, decimal.NewFromInt(500)))

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.orderRepo.On("FindByIDForStore", mock.Anything, f.store.ID, order.ID).Return(order, nil)
	f.orderRepo.On("Save", mock.Anything, order).Return(nil)

	// total_price in the body must be ignored
	w := f.do("PATCH", fmt.Sprintf("/stores/%s/orders/%s", f.store.ID, order.ID), gin.H{
		"is_paid":     true,
		"total_price": "9999",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeData[tradeapp.OrderResponse](t, w)
	assert.True(t, resp.IsPaid)
	assert.False(t, resp.IsDelivered)
	assert.True(t, decimal.NewFromInt(1000).Equal(resp.TotalPrice))
}

func TestOrderHandler_GetByIDInvalidUUID(t *testing.T) {
	f := newOrderHandlerFixture(t)

	w := f.do("GET", fmt.Sprintf("/stores/%s/orders/not-a-uuid", f.store.ID), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_ListPaidFilter(t *testing.T) {
	f := newOrderHandlerFixture(t)

	order, err := trade.NewOrder(f.store.ID, f.customer.ID, "", "")
	require.NoError(t, err)
	require.NoError(t, order.AddItem(uuid.New(), 1, decimal.NewFromInt(750)))

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.orderRepo.On("FindAllForStore", mock.Anything, f.store.ID, mock.MatchedBy(func(filter trade.OrderFilter) bool {
		return filter.IsPaid != nil && *filter.IsPaid
	})).Return([]trade.Order{*order}, nil)
	f.orderRepo.On("CountForStore", mock.Anything, f.store.ID, mock.Anything).Return(int64(1), nil)

	w := f.do("GET", fmt.Sprintf("/stores/%s/orders?is_paid=true", f.store.ID), nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var envelope dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Meta)
	assert.Equal(t, int64(1), envelope.Meta.Total)
}

func TestOrderHandler_Delete(t *testing.T) {
	f := newOrderHandlerFixture(t)
	orderID := uuid.New()

	f.storeRepo.On("FindByIDForOwner", mock.Anything, f.ownerID, f.store.ID).Return(f.store, nil)
	f.orderRepo.On("DeleteForStore", mock.Anything, f.store.ID, orderID).Return(nil)

	w := f.do("DELETE", fmt.Sprintf("/stores/%s/orders/%s", f.store.ID, orderID), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	f.orderRepo.AssertExpectations(t)
}
