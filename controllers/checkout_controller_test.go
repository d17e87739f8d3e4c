package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Jayden7895/afyabora-app/controllers"
	apperrors "github.com/Jayden7895/afyabora-app/errors"
	"github.com/Jayden7895/afyabora-app/middleware"
	"github.com/Jayden7895/afyabora-app/models"
	"github.com/Jayden7895/afyabora-app/services"
)

type fakeCheckout struct {
	order    *models.Order
	err      error
	gotUser  string
	gotInput services.CheckoutInput
}

func (f *fakeCheckout) Checkout(_ context.Context, customerID string, input services.CheckoutInput) (*models.Order, error) {
	f.gotUser = customerID
	f.gotInput = input
	return f.order, f.err
}

func newCheckoutRouter(checkout *fakeCheckout) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cc := controllers.NewCheckoutController(checkout, nil, zap.NewNop())

	r := gin.New()
	r.POST("/api/checkout", middleware.AuthMiddleware(testSecret), cc.Checkout)
	return r
}

func doMultipart(t *testing.T, r *gin.Engine, token string, fields map[string]string, fileField, fileName string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		assert.NoError(t, err)
		_, err = io.WriteString(fw, "fake image bytes")
		assert.NoError(t, err)
	}
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckout_Handler(t *testing.T) {
	checkout := &fakeCheckout{
		order: &models.Order{ID: "ord_1", UserID: "u_cust", TotalAmount: 550, Status: models.OrderPending},
	}
	r := newCheckoutRouter(checkout)
	token := makeToken(t, "u_cust", models.RoleCustomer)

	w := doMultipart(t, r, token, map[string]string{
		"shippingAddress": "12 Moi Avenue, Nairobi",
		"phone":           "254712345678",
		"notes":           "leave at reception",
	}, "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u_cust", checkout.gotUser)
	assert.Equal(t, "12 Moi Avenue, Nairobi", checkout.gotInput.Address)
	assert.Equal(t, "254712345678", checkout.gotInput.Phone)
	assert.Equal(t, "leave at reception", checkout.gotInput.Notes)
	assert.Nil(t, checkout.gotInput.Prescription)

	var resp struct {
		Order models.Order `json:"order"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ord_1", resp.Order.ID)
	assert.Equal(t, 550, resp.Order.TotalAmount)
}

func TestCheckout_HandlerForwardsPrescriptionFile(t *testing.T) {
	checkout := &fakeCheckout{order: &models.Order{ID: "ord_1"}}
	r := newCheckoutRouter(checkout)
	token := makeToken(t, "u_cust", models.RoleCustomer)

	w := doMultipart(t, r, token, map[string]string{
		"shippingAddress": "12 Moi Avenue",
		"phone":           "254712345678",
	}, "prescription", "rx.jpg")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, checkout.gotInput.Prescription)
	assert.Equal(t, "rx.jpg", checkout.gotInput.Prescription.Name)
}

func TestCheckout_HandlerErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrEmptyCart, http.StatusBadRequest},
		{apperrors.ErrPrescriptionRequired, http.StatusBadRequest},
		{apperrors.ErrPaymentFailed, http.StatusPaymentRequired},
		{apperrors.ErrPaymentTimeout, http.StatusGatewayTimeout},
		{apperrors.ErrCheckoutInProgress, http.StatusConflict},
		{apperrors.ErrUploadFailed, http.StatusBadGateway},
	}

	for _, tc := range cases {
		checkout := &fakeCheckout{err: tc.err}
		r := newCheckoutRouter(checkout)
		token := makeToken(t, "u_cust", models.RoleCustomer)

		w := doMultipart(t, r, token, map[string]string{
			"shippingAddress": "12 Moi Avenue",
			"phone":           "254712345678",
		}, "", "")

		assert.Equal(t, tc.code, w.Code, "error %v", tc.err)
	}
}
