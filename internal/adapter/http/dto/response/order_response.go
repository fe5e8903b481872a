package response

import (
	"time"

	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase"
)

// PaymentPresentationData is what the storefront renders to collect the
// payment: a QR for QRIS, a snap token and redirect URL for the card gateway.
type PaymentPresentationData struct {
	Method      string `json:"method"`
	QRImageURL  string `json:"qrImageUrl,omitempty"`
	QRString    string `json:"qrString,omitempty"`
	SnapToken   string `json:"snapToken,omitempty"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Fee         int64  `json:"fee,omitempty"`
}

type CheckoutResponse struct {
	Success                 bool                    `json:"success"`
	Message                 string                  `json:"message"`
	OrderID                 string                  `json:"orderId"`
	DepositRef              string                  `json:"depositRef"`
	DepositID               string                  `json:"depositId"`
	PaymentPresentationData PaymentPresentationData `json:"paymentPresentationData"`
	DepositStatus           string                  `json:"depositStatus"`
	Nominal                 int64                   `json:"nominal"`
	CreatedAt               *time.Time              `json:"createdAt,omitempty"`
	ExpiredAt               *time.Time              `json:"expiredAt,omitempty"`
}

func FromCheckout(res usecase.CheckoutResult) CheckoutResponse {
	o := res.Order
	return CheckoutResponse{
		Success:                 true,
		Message:                 res.Message,
		OrderID:                 o.OrderID,
		DepositRef:              o.DepositRef,
		DepositID:               o.DepositRef,
		PaymentPresentationData: presentation(o.Deposit),
		DepositStatus:           o.DepositStatus,
		Nominal:                 nominal(o),
		CreatedAt:               o.Deposit.CreatedAt,
		ExpiredAt:               o.Deposit.ExpiredAt,
	}
}

// DepositDetails keeps the snake_case keys the storefront already reads.
type DepositDetails struct {
	ID          string     `json:"id"`
	ReffID      string     `json:"reff_id,omitempty"`
	Nominal     int64      `json:"nominal"`
	Method      string     `json:"method"`
	QRCodeURL   string     `json:"qr_code_url,omitempty"`
	QRString    string     `json:"qr_string,omitempty"`
	SnapToken   string     `json:"snap_token,omitempty"`
	RedirectURL string     `json:"redirect_url,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	ExpiredAt   *time.Time `json:"expired_at,omitempty"`
}

type DepositDetailsResponse struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message"`
	DepositDetails DepositDetails `json:"depositDetails"`
	OrderStatus    string         `json:"orderStatus"`
}

func FromDepositDetails(o entities.Order) DepositDetailsResponse {
	return DepositDetailsResponse{
		Success: true,
		Message: "Deposit details fetched.",
		DepositDetails: DepositDetails{
			ID:          o.DepositRef,
			ReffID:      o.ReffID,
			Nominal:     nominal(o),
			Method:      string(o.Deposit.Method),
			QRCodeURL:   o.Deposit.QRImageURL,
			QRString:    o.Deposit.QRString,
			SnapToken:   o.Deposit.SnapToken,
			RedirectURL: o.Deposit.RedirectURL,
			Status:      o.DepositStatus,
			CreatedAt:   o.Deposit.CreatedAt,
			ExpiredAt:   o.Deposit.ExpiredAt,
		},
		OrderStatus: string(o.Status),
	}
}

type DepositStatusResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	DepositStatus string `json:"depositStatus"`
	Nominal       int64  `json:"nominal"`
	Method        string `json:"method"`
	OrderID       string `json:"orderId"`
	OrderStatus   string `json:"orderStatus"`
	Terminal      bool   `json:"terminal"`
}

func FromDepositStatus(v usecase.DepositStatusView) DepositStatusResponse {
	return DepositStatusResponse{
		Success:       true,
		Message:       "Deposit status fetched.",
		DepositStatus: v.Snapshot.Status,
		Nominal:       v.Snapshot.Nominal,
		Method:        v.Snapshot.Method,
		OrderID:       v.OrderID,
		OrderStatus:   string(v.OrderStatus),
		Terminal:      v.Terminal,
	}
}

type ServerResponse struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	PanelURL  string `json:"panelUrl"`
	IPAddress string `json:"ipAddress"`
	Port      string `json:"port"`
}

type ServerDetailsResponse struct {
	OrderStatus string          `json:"orderStatus"`
	Terminal    bool            `json:"terminal"`
	Message     string          `json:"message,omitempty"`
	Server      *ServerResponse `json:"server,omitempty"`
}

func FromServerDetails(v usecase.ServerDetailsView) ServerDetailsResponse {
	res := ServerDetailsResponse{
		OrderStatus: string(v.OrderStatus),
		Terminal:    v.Terminal,
		Message:     v.Message,
	}
	if v.Server != nil {
		res.Server = &ServerResponse{
			Name:      v.Server.Name,
			Username:  v.Server.Username,
			Password:  v.Server.Password,
			PanelURL:  v.Server.PanelURL,
			IPAddress: v.Server.IP,
			Port:      v.Server.Port,
		}
	}
	return res
}

func presentation(d entities.Deposit) PaymentPresentationData {
	return PaymentPresentationData{
		Method:      string(d.Method),
		QRImageURL:  d.QRImageURL,
		QRString:    d.QRString,
		SnapToken:   d.SnapToken,
		RedirectURL: d.RedirectURL,
		Fee:         d.Fee,
	}
}

func nominal(o entities.Order) int64 {
	if o.Deposit.Nominal != 0 {
		return o.Deposit.Nominal
	}
	return o.TotalPrice
}
