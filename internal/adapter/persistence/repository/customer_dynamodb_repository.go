package repository

import (
	"context"
	"strings"
	"time"

	"amat_hosting/internal/domain/entities"
	"amat_hosting/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type customerItem struct {
	Username    string `dynamodbav:"username"`
	PhoneNumber string `dynamodbav:"phone_number,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// CustomerDynamoRepository persists customers in DynamoDB (PK: username).
type CustomerDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.ICustomerRepository = (*CustomerDynamoRepository)(nil)

func NewCustomerDynamoRepository(ddb DynamoAPI, tableName string) *CustomerDynamoRepository {
	return &CustomerDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upsert creates the customer or refreshes it. created_at is only written once;
// the phone number is only replaced when a new one is supplied.
func (r *CustomerDynamoRepository) Upsert(ctx context.Context, c entities.Customer) (entities.Customer, error) {
	now := formatTime(r.now())

	expr := "SET #updated_at = :now, #created_at = if_not_exists(#created_at, :now)"
	names := map[string]string{
		"#updated_at": "updated_at",
		"#created_at": "created_at",
	}
	values := map[string]types.AttributeValue{
		":now": &types.AttributeValueMemberS{Value: now},
	}
	if phone := strings.TrimSpace(c.PhoneNumber); phone != "" {
		expr += ", #phone_number = :phone_number"
		names["#phone_number"] = "phone_number"
		values[":phone_number"] = &types.AttributeValueMemberS{Value: phone}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"username": &types.AttributeValueMemberS{Value: c.Username},
		},
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Customer{}, err
	}

	var it customerItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Customer{}, err
	}
	return entities.Customer{
		Username:    it.Username,
		PhoneNumber: it.PhoneNumber,
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}, nil
}
