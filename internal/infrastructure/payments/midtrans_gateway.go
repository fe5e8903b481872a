package payments

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"

	"amat_hosting/internal/config"
	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"
)

var ErrMissingMidtransServerKey = errors.New("missing MIDTRANS_SERVER_KEY")

type snapTransactionCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type transactionStatusChecker interface {
	CheckTransaction(param string) (*coreapi.TransactionStatusResponse, *midtrans.Error)
}

type midtransCallback struct {
	OrderID           string     `json:"order_id"`
	StatusCode        string     `json:"status_code"`
	GrossAmount       flexString `json:"gross_amount"`
	SignatureKey      string     `json:"signature_key"`
	TransactionStatus string     `json:"transaction_status"`
	FraudStatus       string     `json:"fraud_status"`
	TransactionID     string     `json:"transaction_id"`
	PaymentType       string     `json:"payment_type"`
}

// MidtransGateway opens snap transactions for card and e-wallet payments.
type MidtransGateway struct {
	cfg      config.Midtrans
	snap     snapTransactionCreator
	core     transactionStatusChecker
	mockMode bool
	log      *zap.Logger
	now      func() time.Time
}

var _ interfaces.IPaymentGateway = (*MidtransGateway)(nil)

func NewMidtransGateway(cfg config.Midtrans, mockMode bool, log *zap.Logger) (*MidtransGateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &MidtransGateway{
		cfg:      cfg,
		mockMode: mockMode,
		log:      log.With(zap.String("component", "midtrans_gateway")),
		now:      func() time.Time { return time.Now().UTC() },
	}
	if mockMode {
		g.log.Info("mock mode enabled")
		return g, nil
	}
	if strings.TrimSpace(cfg.ServerKey) == "" {
		return nil, ErrMissingMidtransServerKey
	}

	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}
	var s snap.Client
	s.New(cfg.ServerKey, env)
	var c coreapi.Client
	c.New(cfg.ServerKey, env)
	g.snap = &s
	g.core = &c

	g.log.Info("midtrans client initialized", zap.Bool("production", cfg.Production))
	return g, nil
}

func (g *MidtransGateway) Method() entities.PaymentMethod {
	return entities.PaymentMethodSnap
}

func (g *MidtransGateway) Provider() entities.PaymentProvider {
	return entities.PaymentProviderMidtrans
}

func (g *MidtransGateway) CreatePaymentIntent(ctx context.Context, req entities.PaymentIntentRequest) (entities.PaymentIntent, error) {
	g.log.Info("create transaction start", zap.String("order_id", req.OrderID), zap.Int64("gross_amount", req.Amount))

	now := g.now()
	var expires *time.Time
	if g.cfg.ExpiryWindow > 0 {
		e := now.Add(g.cfg.ExpiryWindow)
		expires = &e
	}

	if g.mockMode {
		token := "mock-snap-" + uuid.NewString()
		return entities.PaymentIntent{
			DepositRef: token,
			Status:     "pending",
			Deposit: entities.Deposit{
				Method:      entities.PaymentMethodSnap,
				SnapToken:   token,
				RedirectURL: "https://app.sandbox.midtrans.com/snap/v4/redirection/" + token,
				Nominal:     req.Amount,
				CreatedAt:   &now,
				ExpiredAt:   expires,
			},
		}, nil
	}

	if err := ctx.Err(); err != nil {
		return entities.PaymentIntent{}, err
	}

	resp, mErr := g.snap.CreateTransaction(&snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: req.Amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Phone: req.PhoneNumber,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    req.PackageID,
			Name:  req.PackageName,
			Price: req.Amount,
			Qty:   1,
		}},
	})
	if mErr != nil {
		g.log.Error("create transaction failed", zap.String("order_id", req.OrderID), zap.String("error", mErr.GetMessage()))
		return entities.PaymentIntent{}, fmt.Errorf("%w: %s", entities.ErrUpstreamGateway, mErr.GetMessage())
	}
	if resp == nil || resp.Token == "" {
		return entities.PaymentIntent{}, fmt.Errorf("%w: empty snap token", entities.ErrUpstreamGateway)
	}

	g.log.Info("create transaction success", zap.String("order_id", req.OrderID))
	return entities.PaymentIntent{
		DepositRef: resp.Token,
		Status:     "pending",
		Deposit: entities.Deposit{
			Method:      entities.PaymentMethodSnap,
			SnapToken:   resp.Token,
			RedirectURL: resp.RedirectURL,
			Nominal:     req.Amount,
			CreatedAt:   &now,
			ExpiredAt:   expires,
		},
	}, nil
}

// VerifyCallback checks signature_key = SHA-512(order_id + gross + ".00" +
// transaction_status + server key), gross being the whole-unit amount.
func (g *MidtransGateway) VerifyCallback(_ http.Header, body []byte) (entities.PaymentNotification, error) {
	var cb midtransCallback
	if err := json.Unmarshal(body, &cb); err != nil {
		return entities.PaymentNotification{}, fmt.Errorf("%w: %v", entities.ErrMalformedNotification, err)
	}
	if cb.OrderID == "" || cb.TransactionStatus == "" || cb.GrossAmount == "" {
		return entities.PaymentNotification{}, fmt.Errorf("%w: order_id, transaction_status and gross_amount are required", entities.ErrMalformedNotification)
	}
	amount, err := parseAmount(string(cb.GrossAmount))
	if err != nil {
		return entities.PaymentNotification{}, fmt.Errorf("%w: gross_amount: %v", entities.ErrMalformedNotification, err)
	}

	if !g.mockMode {
		if g.cfg.ServerKey == "" || cb.SignatureKey == "" {
			return entities.PaymentNotification{}, fmt.Errorf("%w: missing signature", entities.ErrNotificationUnauthorized)
		}
		want := MidtransSignature(cb.OrderID, amount, cb.TransactionStatus, g.cfg.ServerKey)
		if subtle.ConstantTimeCompare([]byte(strings.ToLower(cb.SignatureKey)), []byte(want)) != 1 {
			return entities.PaymentNotification{}, fmt.Errorf("%w: signature mismatch", entities.ErrNotificationUnauthorized)
		}
	}

	return entities.PaymentNotification{
		Provider:      entities.PaymentProviderMidtrans,
		OrderID:       cb.OrderID,
		Status:        strings.ToLower(cb.TransactionStatus),
		FraudStatus:   strings.ToLower(cb.FraudStatus),
		Amount:        amount,
		TransactionID: cb.TransactionID,
		Message:       cb.PaymentType,
	}, nil
}

func (g *MidtransGateway) CheckStatus(ctx context.Context, order entities.Order) (entities.DepositStatusSnapshot, error) {
	if g.mockMode {
		status := order.DepositStatus
		if status == "" {
			status = "pending"
		}
		return entities.DepositStatusSnapshot{
			DepositRef: order.DepositRef,
			Status:     status,
			Nominal:    order.TotalPrice,
			Method:     string(entities.PaymentMethodSnap),
			CheckedAt:  g.now(),
		}, nil
	}
	if err := ctx.Err(); err != nil {
		return entities.DepositStatusSnapshot{}, err
	}

	resp, mErr := g.core.CheckTransaction(order.OrderID)
	if mErr != nil {
		g.log.Warn("check transaction failed", zap.String("order_id", order.OrderID), zap.String("error", mErr.GetMessage()))
		return entities.DepositStatusSnapshot{}, fmt.Errorf("%w: %s", entities.ErrUpstreamGateway, mErr.GetMessage())
	}
	if resp == nil {
		return entities.DepositStatusSnapshot{}, fmt.Errorf("%w: empty status response", entities.ErrUpstreamGateway)
	}
	nominal, _ := parseAmount(resp.GrossAmount)
	return entities.DepositStatusSnapshot{
		DepositRef: order.DepositRef,
		Status:     resp.TransactionStatus,
		Nominal:    nominal,
		Method:     resp.PaymentType,
		CheckedAt:  g.now(),
	}, nil
}

// MidtransSignature computes the expected callback signature_key.
func MidtransSignature(orderID string, grossAmount int64, transactionStatus, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + strconv.FormatInt(grossAmount, 10) + ".00" + transactionStatus + serverKey))
	return hex.EncodeToString(sum[:])
}
