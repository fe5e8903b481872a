package entities

import "time"

// ServerDetails is the provisioned server returned by the panel.
type ServerDetails struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	PanelURL   string `json:"panelUrl"`
	IP         string `json:"ip"`
	Port       string `json:"port"`
	ServerID   string `json:"serverId,omitempty"`
	ServerUUID string `json:"serverUuid,omitempty"`
}

// Order is one purchase of a package.
//
// Storage model (DynamoDB):
//   - PK: order_id
//   - order_deposit_refs table: deposit_ref -> order_id (written atomically with the order)
//
// OrderID and DepositRef never change once written. ServerDetails is set
// exactly when Status is active.
type Order struct {
	OrderID          string         `json:"orderId"`
	CustomerRef      string         `json:"customerRef"`
	PhoneNumber      string         `json:"phoneNumber,omitempty"`
	PackageID        string         `json:"packageId"`
	PackageName      string         `json:"packageName"`
	BasePrice        int64          `json:"basePrice"`
	AppliedPromoCode string         `json:"appliedPromoCode,omitempty"`
	DiscountAmount   int64          `json:"discountAmount"`
	TaxPercentage    float64        `json:"taxPercentage"`
	TotalPrice       int64          `json:"totalPrice"`
	PaymentMethod    PaymentMethod  `json:"paymentMethod"`
	DepositRef       string         `json:"depositRef"`
	ReffID           string         `json:"reffId,omitempty"`
	Status           OrderStatus    `json:"status"`
	DepositStatus    string         `json:"depositStatus,omitempty"`
	Deposit          Deposit        `json:"deposit"`
	ServerDetails    *ServerDetails `json:"serverDetails,omitempty"`
	Error            string         `json:"error,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	ActivatedAt      *time.Time     `json:"activatedAt,omitempty"`
}

// OrderPatch lists the fields a status transition may set alongside the new
// status. Zero values leave the stored field untouched.
type OrderPatch struct {
	DepositStatus string
	ServerDetails *ServerDetails
	Error         string
	ActivatedAt   *time.Time
}

// Apply returns o with the patch and status applied.
func (p OrderPatch) Apply(o Order, status OrderStatus, now time.Time) Order {
	o.Status = status
	o.UpdatedAt = now
	if p.DepositStatus != "" {
		o.DepositStatus = p.DepositStatus
	}
	if p.ServerDetails != nil {
		sd := *p.ServerDetails
		o.ServerDetails = &sd
	}
	if p.Error != "" {
		o.Error = p.Error
	}
	if p.ActivatedAt != nil {
		at := *p.ActivatedAt
		o.ActivatedAt = &at
	}
	return o
}
