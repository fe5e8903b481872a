package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"amat_hosting/internal/adapter/http/handlers/mocks"
	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase"
)

func TestWebhookHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	deliver := func(h *WebhookHandler, path, body string) *httptest.ResponseRecorder {
		r := gin.New()
		r.POST("/webhook/payment-provider-a", h.ProviderA)
		r.POST("/webhook/payment-provider-b", h.ProviderB)
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("empty body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewWebhookHandler(mocks.NewMockINotificationUseCase(ctrl), nil)

		if w := deliver(h, "/webhook/payment-provider-a", ""); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("routes to the right provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockINotificationUseCase(ctrl)
		h := NewWebhookHandler(uc, nil)

		uc.EXPECT().HandleNotification(gomock.Any(), entities.PaymentProviderForestAPI, gomock.Any(), []byte(`{"deposit_id":"D"}`)).
			Return(usecase.NotificationResult{Outcome: usecase.OutcomeProcessed, OrderID: "AMAT-1", Status: entities.OrderStatusActive}, nil)
		uc.EXPECT().HandleNotification(gomock.Any(), entities.PaymentProviderMidtrans, gomock.Any(), gomock.Any()).
			Return(usecase.NotificationResult{Outcome: usecase.OutcomeAlreadyProcessed, OrderID: "AMAT-1", Status: entities.OrderStatusActive}, nil)

		if w := deliver(h, "/webhook/payment-provider-a", `{"deposit_id":"D"}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		w := deliver(h, "/webhook/payment-provider-b", `{"order_id":"AMAT-1"}`)
		if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"outcome":"already_processed"`)) {
			t.Fatalf("unexpected response %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("errors are mapped", func(t *testing.T) {
		cases := []struct {
			err  error
			code int
		}{
			{usecase.ErrNotificationUnauthorized, http.StatusForbidden},
			{usecase.ErrMalformedNotification, http.StatusBadRequest},
			{usecase.ErrOrderNotFound, http.StatusNotFound},
			{errors.New("dynamodb unavailable"), http.StatusInternalServerError},
		}
		for _, tc := range cases {
			ctrl := gomock.NewController(t)
			uc := mocks.NewMockINotificationUseCase(ctrl)
			uc.EXPECT().HandleNotification(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(usecase.NotificationResult{}, tc.err)

			if w := deliver(NewWebhookHandler(uc, nil), "/webhook/payment-provider-b", `{}`); w.Code != tc.code {
				t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, w.Code)
			}
			ctrl.Finish()
		}
	})
}
