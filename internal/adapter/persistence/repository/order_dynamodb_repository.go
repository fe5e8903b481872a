package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type depositItem struct {
	Method      string `dynamodbav:"method"`
	QRImageURL  string `dynamodbav:"qr_image_url,omitempty"`
	QRString    string `dynamodbav:"qr_string,omitempty"`
	SnapToken   string `dynamodbav:"snap_token,omitempty"`
	RedirectURL string `dynamodbav:"redirect_url,omitempty"`
	Nominal     int64  `dynamodbav:"nominal"`
	Fee         int64  `dynamodbav:"fee"`
	CreatedAt   string `dynamodbav:"created_at,omitempty"`
	ExpiredAt   string `dynamodbav:"expired_at,omitempty"`
}

type serverDetailsItem struct {
	Name       string `dynamodbav:"name"`
	Username   string `dynamodbav:"username"`
	Password   string `dynamodbav:"password"`
	PanelURL   string `dynamodbav:"panel_url"`
	IP         string `dynamodbav:"ip"`
	Port       string `dynamodbav:"port"`
	ServerID   string `dynamodbav:"server_id,omitempty"`
	ServerUUID string `dynamodbav:"server_uuid,omitempty"`
}

type orderItem struct {
	OrderID          string             `dynamodbav:"order_id"`
	CustomerRef      string             `dynamodbav:"customer_ref"`
	PhoneNumber      string             `dynamodbav:"phone_number,omitempty"`
	PackageID        string             `dynamodbav:"package_id"`
	PackageName      string             `dynamodbav:"package_name"`
	BasePrice        int64              `dynamodbav:"base_price"`
	AppliedPromoCode string             `dynamodbav:"applied_promo_code,omitempty"`
	DiscountAmount   int64              `dynamodbav:"discount_amount"`
	TaxPercentage    string             `dynamodbav:"tax_percentage"`
	TotalPrice       int64              `dynamodbav:"total_price"`
	PaymentMethod    string             `dynamodbav:"payment_method"`
	DepositRef       string             `dynamodbav:"deposit_ref"`
	ReffID           string             `dynamodbav:"reff_id,omitempty"`
	Status           string             `dynamodbav:"status"`
	DepositStatus    string             `dynamodbav:"deposit_status,omitempty"`
	Deposit          depositItem        `dynamodbav:"deposit"`
	ServerDetails    *serverDetailsItem `dynamodbav:"server_details,omitempty"`
	Error            string             `dynamodbav:"error,omitempty"`
	CreatedAt        string             `dynamodbav:"created_at"`
	UpdatedAt        string             `dynamodbav:"updated_at"`
	ActivatedAt      string             `dynamodbav:"activated_at,omitempty"`
}

type depositRefItem struct {
	DepositRef string `dynamodbav:"deposit_ref"`
	OrderID    string `dynamodbav:"order_id"`
}

// OrderDynamoRepository persists orders in DynamoDB.
//
// Tables:
//   - orders: PK order_id
//   - order_deposit_refs: PK deposit_ref, holds order_id
//
// The deposit ref row is the unique index over provider references; it is
// written in the same transaction as the order. Promo usage lives in the
// promo_codes table and is only touched by ConfirmPayment.
type OrderDynamoRepository struct {
	ddb              DynamoAPI
	ordersTable      string
	depositRefsTable string
	promoCodesTable  string
	now              func() time.Time
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb DynamoAPI, ordersTable, depositRefsTable, promoCodesTable string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:              ddb,
		ordersTable:      ordersTable,
		depositRefsTable: depositRefsTable,
		promoCodesTable:  promoCodesTable,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	orderPut := &types.Put{
		TableName:           aws.String(r.ordersTable),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "order_id",
		},
	}

	if o.DepositRef == "" {
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                orderPut.TableName,
			Item:                     orderPut.Item,
			ConditionExpression:      orderPut.ConditionExpression,
			ExpressionAttributeNames: orderPut.ExpressionAttributeNames,
		})
		if err != nil {
			return entities.Order{}, err
		}
		return o, nil
	}

	refAV, err := attributevalue.MarshalMap(depositRefItem{DepositRef: o.DepositRef, OrderID: o.OrderID})
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: orderPut},
			{Put: &types.Put{
				TableName:           aws.String(r.depositRefsTable),
				Item:                refAV,
				ConditionExpression: aws.String("attribute_not_exists(#ref)"),
				ExpressionAttributeNames: map[string]string{
					"#ref": "deposit_ref",
				},
			}},
		},
	})
	if err != nil {
		if cancelledAt(err, 0) {
			return entities.Order{}, fmt.Errorf("order %s already exists: %w", o.OrderID, err)
		}
		if cancelledAt(err, 1) {
			return entities.Order{}, fmt.Errorf("deposit ref %s already exists: %w", o.DepositRef, err)
		}
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, orderID string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.ordersTable),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	return decodeOrder(out.Item)
}

func (r *OrderDynamoRepository) GetByDepositRef(ctx context.Context, depositRef string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.depositRefsTable),
		Key: map[string]types.AttributeValue{
			"deposit_ref": &types.AttributeValueMemberS{Value: depositRef},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it depositRefItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	if it.OrderID == "" {
		return entities.Order{}, nil
	}
	return r.GetByID(ctx, it.OrderID)
}

func (r *OrderDynamoRepository) Transition(ctx context.Context, orderID string, from, to entities.OrderStatus, patch entities.OrderPatch) (entities.Order, bool, error) {
	now := formatTime(r.now())

	sets := []string{"#status = :to", "#updated_at = :updated_at"}
	names := map[string]string{
		"#status":     "status",
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":to":         &types.AttributeValueMemberS{Value: string(to)},
		":from":       &types.AttributeValueMemberS{Value: string(from)},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}

	if patch.DepositStatus != "" {
		sets = append(sets, "#deposit_status = :deposit_status")
		names["#deposit_status"] = "deposit_status"
		values[":deposit_status"] = &types.AttributeValueMemberS{Value: patch.DepositStatus}
	}
	if patch.ServerDetails != nil {
		sdAV, err := attributevalue.Marshal(toServerDetailsItem(*patch.ServerDetails))
		if err != nil {
			return entities.Order{}, false, err
		}
		sets = append(sets, "#server_details = :server_details")
		names["#server_details"] = "server_details"
		values[":server_details"] = sdAV
	}
	if patch.Error != "" {
		sets = append(sets, "#error = :error")
		names["#error"] = "error"
		values[":error"] = &types.AttributeValueMemberS{Value: patch.Error}
	}
	if patch.ActivatedAt != nil {
		sets = append(sets, "#activated_at = :activated_at")
		names["#activated_at"] = "activated_at"
		values[":activated_at"] = &types.AttributeValueMemberS{Value: formatTimePtr(patch.ActivatedAt)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.ordersTable),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression:                 aws.String("#status = :from"),
		UpdateExpression:                    aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:            names,
		ExpressionAttributeValues:           values,
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if cfe, ok := isConditionalCheckFailed(err); ok {
			current, decodeErr := decodeOrder(cfe.Item)
			return current, false, decodeErr
		}
		return entities.Order{}, false, err
	}

	o, err := decodeOrder(out.Attributes)
	if err != nil {
		return entities.Order{}, false, err
	}
	return o, true, nil
}

func (r *OrderDynamoRepository) ConfirmPayment(ctx context.Context, orderID string, from entities.OrderStatus, depositStatus, promoCode string) (entities.Order, interfaces.ConfirmOutcome, error) {
	now := formatTime(r.now())

	orderUpdate := &types.Update{
		TableName: aws.String(r.ordersTable),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression: aws.String("#status = :from"),
		UpdateExpression:    aws.String("SET #status = :paid, #deposit_status = :deposit_status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#status":         "status",
			"#deposit_status": "deposit_status",
			"#updated_at":     "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":from":           &types.AttributeValueMemberS{Value: string(from)},
			":paid":           &types.AttributeValueMemberS{Value: string(entities.OrderStatusPaid)},
			":deposit_status": &types.AttributeValueMemberS{Value: depositStatus},
			":updated_at":     &types.AttributeValueMemberS{Value: now},
		},
	}

	items := []types.TransactWriteItem{{Update: orderUpdate}}
	if promoCode != "" {
		items = append(items, types.TransactWriteItem{Update: &types.Update{
			TableName: aws.String(r.promoCodesTable),
			Key: map[string]types.AttributeValue{
				"code": &types.AttributeValueMemberS{Value: promoCode},
			},
			ConditionExpression: aws.String("attribute_exists(#code) AND (attribute_not_exists(#usage_limit) OR #current_usage < #usage_limit)"),
			UpdateExpression:    aws.String("SET #current_usage = #current_usage + :one"),
			ExpressionAttributeNames: map[string]string{
				"#code":          "code",
				"#usage_limit":   "usage_limit",
				"#current_usage": "current_usage",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":one": &types.AttributeValueMemberN{Value: "1"},
			},
		}})
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if cancelledAt(err, 0) {
			current, getErr := r.GetByID(ctx, orderID)
			return current, interfaces.ConfirmStale, getErr
		}
		if cancelledAt(err, 1) {
			current, getErr := r.GetByID(ctx, orderID)
			return current, interfaces.ConfirmPromoExhausted, getErr
		}
		return entities.Order{}, "", err
	}

	o, err := r.GetByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, "", err
	}
	return o, interfaces.ConfirmApplied, nil
}

func (r *OrderDynamoRepository) UpdateDepositStatus(ctx context.Context, orderID, depositStatus string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.ordersTable),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: orderID},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #deposit_status = :deposit_status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "order_id",
			"#deposit_status": "deposit_status",
			"#updated_at":     "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":deposit_status": &types.AttributeValueMemberS{Value: depositStatus},
			":updated_at":     &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
	})
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return nil
		}
		return err
	}
	return nil
}

func decodeOrder(item map[string]types.AttributeValue) (entities.Order, error) {
	if len(item) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		OrderID:          o.OrderID,
		CustomerRef:      o.CustomerRef,
		PhoneNumber:      o.PhoneNumber,
		PackageID:        o.PackageID,
		PackageName:      o.PackageName,
		BasePrice:        o.BasePrice,
		AppliedPromoCode: o.AppliedPromoCode,
		DiscountAmount:   o.DiscountAmount,
		TaxPercentage:    floatToString(o.TaxPercentage),
		TotalPrice:       o.TotalPrice,
		PaymentMethod:    string(o.PaymentMethod),
		DepositRef:       o.DepositRef,
		ReffID:           o.ReffID,
		Status:           string(o.Status),
		DepositStatus:    o.DepositStatus,
		Deposit: depositItem{
			Method:      string(o.Deposit.Method),
			QRImageURL:  o.Deposit.QRImageURL,
			QRString:    o.Deposit.QRString,
			SnapToken:   o.Deposit.SnapToken,
			RedirectURL: o.Deposit.RedirectURL,
			Nominal:     o.Deposit.Nominal,
			Fee:         o.Deposit.Fee,
			CreatedAt:   formatTimePtr(o.Deposit.CreatedAt),
			ExpiredAt:   formatTimePtr(o.Deposit.ExpiredAt),
		},
		Error:       o.Error,
		CreatedAt:   formatTime(o.CreatedAt),
		UpdatedAt:   formatTime(o.UpdatedAt),
		ActivatedAt: formatTimePtr(o.ActivatedAt),
	}
	if o.ServerDetails != nil {
		sd := toServerDetailsItem(*o.ServerDetails)
		it.ServerDetails = &sd
	}
	return it
}

func fromOrderItem(it orderItem) entities.Order {
	o := entities.Order{
		OrderID:          it.OrderID,
		CustomerRef:      it.CustomerRef,
		PhoneNumber:      it.PhoneNumber,
		PackageID:        it.PackageID,
		PackageName:      it.PackageName,
		BasePrice:        it.BasePrice,
		AppliedPromoCode: it.AppliedPromoCode,
		DiscountAmount:   it.DiscountAmount,
		TaxPercentage:    parseFloat(it.TaxPercentage),
		TotalPrice:       it.TotalPrice,
		PaymentMethod:    entities.PaymentMethod(it.PaymentMethod),
		DepositRef:       it.DepositRef,
		ReffID:           it.ReffID,
		Status:           entities.OrderStatus(it.Status),
		DepositStatus:    it.DepositStatus,
		Deposit: entities.Deposit{
			Method:      entities.PaymentMethod(it.Deposit.Method),
			QRImageURL:  it.Deposit.QRImageURL,
			QRString:    it.Deposit.QRString,
			SnapToken:   it.Deposit.SnapToken,
			RedirectURL: it.Deposit.RedirectURL,
			Nominal:     it.Deposit.Nominal,
			Fee:         it.Deposit.Fee,
			CreatedAt:   parseTimePtr(it.Deposit.CreatedAt),
			ExpiredAt:   parseTimePtr(it.Deposit.ExpiredAt),
		},
		Error:       it.Error,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
		ActivatedAt: parseTimePtr(it.ActivatedAt),
	}
	if it.ServerDetails != nil {
		o.ServerDetails = &entities.ServerDetails{
			Name:       it.ServerDetails.Name,
			Username:   it.ServerDetails.Username,
			Password:   it.ServerDetails.Password,
			PanelURL:   it.ServerDetails.PanelURL,
			IP:         it.ServerDetails.IP,
			Port:       it.ServerDetails.Port,
			ServerID:   it.ServerDetails.ServerID,
			ServerUUID: it.ServerDetails.ServerUUID,
		}
	}
	return o
}

func toServerDetailsItem(sd entities.ServerDetails) serverDetailsItem {
	return serverDetailsItem{
		Name:       sd.Name,
		Username:   sd.Username,
		Password:   sd.Password,
		PanelURL:   sd.PanelURL,
		IP:         sd.IP,
		Port:       sd.Port,
		ServerID:   sd.ServerID,
		ServerUUID: sd.ServerUUID,
	}
}
