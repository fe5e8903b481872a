package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"amat_hosting/internal/config"
	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"
)

// ForestSignatureHeader carries hex(HMAC-SHA256(secret, body)) on QRIS callbacks.
const ForestSignatureHeader = "X-Forest-Signature"

var ErrMissingForestAPIKey = errors.New("missing FOREST_API_KEY")

type forestEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type forestDeposit struct {
	ID            flexString `json:"id"`
	ReffID        string     `json:"reff_id"`
	Nominal       flexAmount `json:"nominal"`
	Method        string     `json:"method"`
	QRImageURL    string     `json:"qr_image_url"`
	QRImageString string     `json:"qr_image_string"`
	Status        string     `json:"status"`
	CreatedAt     string     `json:"created_at"`
	ExpiredAt     string     `json:"expired_at"`
	Fee           flexAmount `json:"fee"`
	GetBalance    flexAmount `json:"get_balance"`
}

type forestCallback struct {
	DepositID flexString `json:"deposit_id"`
	ReffID    string     `json:"reff_id"`
	Status    string     `json:"status"`
	Nominal   flexAmount `json:"nominal"`
	Message   string     `json:"message"`
}

// ForestAPIGateway opens QRIS deposits on ForestAPI.
type ForestAPIGateway struct {
	cfg        config.ForestAPI
	httpClient *http.Client
	mockMode   bool
	log        *zap.Logger
	now        func() time.Time
}

var _ interfaces.IPaymentGateway = (*ForestAPIGateway)(nil)

func NewForestAPIGateway(cfg config.ForestAPI, mockMode bool, log *zap.Logger) (*ForestAPIGateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.Method == "" {
		cfg.Method = string(entities.PaymentMethodQRIS)
	}
	g := &ForestAPIGateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		mockMode:   mockMode,
		log:        log.With(zap.String("component", "forestapi_gateway")),
		now:        func() time.Time { return time.Now().UTC() },
	}
	if mockMode {
		g.log.Info("mock mode enabled")
		return g, nil
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingForestAPIKey
	}
	if cfg.WebhookSecret == "" {
		g.log.Warn("webhook secret not set; QRIS callbacks are accepted without a signature")
	}
	return g, nil
}

func (g *ForestAPIGateway) Method() entities.PaymentMethod {
	return entities.PaymentMethodQRIS
}

func (g *ForestAPIGateway) Provider() entities.PaymentProvider {
	return entities.PaymentProviderForestAPI
}

func (g *ForestAPIGateway) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error) {
	g.log.Info("create deposit start", zap.String("order_id", req.OrderID), zap.String("reff_id", req.ReffID), zap.Int64("nominal", req.Amount))

	if g.mockMode {
		now := g.now()
		expires := now.Add(30 * time.Minute)
		ref := "MOCK-" + strings.ToUpper(uuid.NewString()[:8])
		g.log.Info("mock create deposit success", zap.String("deposit_ref", ref))
		return entities.PaymentIntent{
			DepositRef: ref,
			Status:     "pending",
			Deposit: entities.Deposit{
				Method:     entities.PaymentMethodQRIS,
				QRImageURL: "https://example.invalid/qris/" + ref + ".png",
				QRString:   "00020101021226" + ref,
				Nominal:    req.Amount,
				CreatedAt:  &now,
				ExpiredAt:  &expires,
			},
		}, nil
	}

	body := map[string]any{
		"nominal":         req.Amount,
		"method":          g.cfg.Method,
		"reff_id":         req.ReffID,
		"api_key":         g.cfg.APIKey,
		"fee_by_customer": true,
	}

	var dep forestDeposit
	if err := g.post(ctx, "/deposit/create", body, &dep); err != nil {
		g.log.Error("create deposit failed", zap.String("order_id", req.OrderID), zap.Error(err))
		return entities.PaymentIntent{}, err
	}
	if dep.ID == "" {
		return entities.PaymentIntent{}, fmt.Errorf("%w: deposit id missing in response", entities.ErrUpstreamGateway)
	}

	method := entities.PaymentMethod(dep.Method)
	if method == "" {
		method = entities.PaymentMethodQRIS
	}
	nominal := int64(dep.Nominal)
	if nominal == 0 {
		nominal = req.Amount
	}

	g.log.Info("create deposit success", zap.String("order_id", req.OrderID), zap.String("deposit_ref", string(dep.ID)), zap.String("status", dep.Status))
	return entities.PaymentIntent{
		DepositRef: string(dep.ID),
		Status:     dep.Status,
		Deposit: entities.Deposit{
			Method:     method,
			QRImageURL: dep.QRImageURL,
			QRString:   dep.QRImageString,
			Nominal:    nominal,
			Fee:        int64(dep.Fee),
			CreatedAt:  parseProviderTime(dep.CreatedAt),
			ExpiredAt:  parseProviderTime(dep.ExpiredAt),
		},
	}, nil
}

// VerifyCallback authenticates and parses a QRIS deposit callback. The HMAC
// check only applies when a webhook secret is configured.
func (g *ForestAPIGateway) VerifyCallback(header http.Header, body []byte) (entities.PaymentNotification, error) {
	if secret := g.cfg.WebhookSecret; secret != "" {
		got, err := hex.DecodeString(strings.TrimSpace(header.Get(ForestSignatureHeader)))
		if err != nil || len(got) == 0 {
			return entities.PaymentNotification{}, fmt.Errorf("%w: missing or invalid %s", entities.ErrNotificationUnauthorized, ForestSignatureHeader)
		}
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)
		if !hmac.Equal(got, mac.Sum(nil)) {
			return entities.PaymentNotification{}, fmt.Errorf("%w: signature mismatch", entities.ErrNotificationUnauthorized)
		}
	}

	var cb forestCallback
	if err := json.Unmarshal(body, &cb); err != nil {
		return entities.PaymentNotification{}, fmt.Errorf("%w: %v", entities.ErrMalformedNotification, err)
	}
	if strings.TrimSpace(string(cb.DepositID)) == "" || strings.TrimSpace(cb.Status) == "" {
		return entities.PaymentNotification{}, fmt.Errorf("%w: deposit_id and status are required", entities.ErrMalformedNotification)
	}

	return entities.PaymentNotification{
		Provider:   entities.PaymentProviderForestAPI,
		DepositRef: strings.TrimSpace(string(cb.DepositID)),
		ReffID:     cb.ReffID,
		Status:     strings.ToUpper(strings.TrimSpace(cb.Status)),
		Amount:     int64(cb.Nominal),
		Message:    cb.Message,
	}, nil
}

func (g *ForestAPIGateway) CheckStatus(ctx context.Context, order entities.Order) (entities.DepositStatusSnapshot, error) {
	if g.mockMode {
		status := order.DepositStatus
		if status == "" {
			status = "PENDING"
		}
		return entities.DepositStatusSnapshot{
			DepositRef: order.DepositRef,
			Status:     status,
			Nominal:    order.TotalPrice,
			Method:     string(entities.PaymentMethodQRIS),
			CheckedAt:  g.now(),
		}, nil
	}

	var dep forestDeposit
	if err := g.post(ctx, "/deposit/status", map[string]any{"id": order.DepositRef, "api_key": g.cfg.APIKey}, &dep); err != nil {
		g.log.Warn("deposit status failed", zap.String("deposit_ref", order.DepositRef), zap.Error(err))
		return entities.DepositStatusSnapshot{}, err
	}
	return entities.DepositStatusSnapshot{
		DepositRef: order.DepositRef,
		Status:     dep.Status,
		Nominal:    int64(dep.Nominal),
		Method:     dep.Method,
		CheckedAt:  g.now(),
	}, nil
}

func (g *ForestAPIGateway) post(ctx context.Context, path string, payload any, out *forestDeposit) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", entities.ErrUpstreamGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", entities.ErrUpstreamGateway, err)
	}

	var env forestEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: http %d: invalid response body", entities.ErrUpstreamGateway, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !strings.EqualFold(env.Status, "success") || len(env.Data) == 0 {
		msg := env.Message
		if msg == "" {
			msg = "unexpected response"
		}
		return fmt.Errorf("%w: http %d: %s", entities.ErrUpstreamGateway, resp.StatusCode, msg)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: invalid data: %v", entities.ErrUpstreamGateway, err)
	}
	return nil
}
