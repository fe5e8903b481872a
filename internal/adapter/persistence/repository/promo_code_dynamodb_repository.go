package repository

import (
	"context"

	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type promoCodeItem struct {
	Code          string  `dynamodbav:"code"`
	DiscountType  string  `dynamodbav:"discount_type"`
	DiscountValue float64 `dynamodbav:"discount_value"`
	IsActive      bool    `dynamodbav:"is_active"`
	StartDate     string  `dynamodbav:"start_date,omitempty"`
	EndDate       string  `dynamodbav:"end_date,omitempty"`
	UsageLimit    *int64  `dynamodbav:"usage_limit,omitempty"`
	CurrentUsage  int64   `dynamodbav:"current_usage"`
}

// PromoCodeDynamoRepository reads promo codes (PK: code). A missing
// usage_limit attribute means unlimited.
type PromoCodeDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPromoCodeRepository = (*PromoCodeDynamoRepository)(nil)

func NewPromoCodeDynamoRepository(ddb DynamoAPI, tableName string) *PromoCodeDynamoRepository {
	return &PromoCodeDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PromoCodeDynamoRepository) GetByCode(ctx context.Context, code string) (entities.PromoCode, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"code": &types.AttributeValueMemberS{Value: code},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PromoCode{}, err
	}
	if len(out.Item) == 0 {
		return entities.PromoCode{}, nil
	}

	var it promoCodeItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PromoCode{}, err
	}
	return entities.PromoCode{
		Code:          it.Code,
		DiscountType:  entities.DiscountType(it.DiscountType),
		DiscountValue: it.DiscountValue,
		IsActive:      it.IsActive,
		StartDate:     parseTimePtr(it.StartDate),
		EndDate:       parseTimePtr(it.EndDate),
		UsageLimit:    it.UsageLimit,
		CurrentUsage:  it.CurrentUsage,
	}, nil
}
