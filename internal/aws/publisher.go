package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/ordering-helper-mock/internal/orders"
)

// Publisher wraps an SQS client and a queue URL.
type Publisher struct {
	SQS      SQSAPI
	QueueURL string
}

// NewPublisher returns a Publisher bound to a queue URL.
func NewPublisher(sqsClient SQSAPI, queueURL string) *Publisher {
	return &Publisher{
		SQS:      sqsClient,
		QueueURL: queueURL,
	}
}

// OrderMessage is the body published for every created order.
type OrderMessage struct {
	OrderID     string `json:"order_id"`
	StoreID     int    `json:"store_id"`
	TotalAmount int64  `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
	Language    string `json:"language,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// SendOrderMessage sends an order message to SQS. messageBody should be a JSON string.
// attributes map[string]string -> sent as MessageAttributes.
func (p *Publisher) SendOrderMessage(ctx context.Context, messageBody string, attributes map[string]string) error {
	input := &sqs.SendMessageInput{
		QueueUrl:    &p.QueueURL,
		MessageBody: &messageBody,
	}
	if len(attributes) > 0 {
		msgAttrs := map[string]sqstypes.MessageAttributeValue{}
		for k, v := range attributes {
			msgAttrs[k] = sqstypes.MessageAttributeValue{
				DataType:    awsString("String"),
				StringValue: awsString(v),
			}
		}
		input.MessageAttributes = msgAttrs
	}

	_, err := p.SQS.SendMessage(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("send message (%s): %w", apiErr.ErrorCode(), err)
		}
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// OrderCreated publishes o to the queue. It implements orders.Notifier.
func (p *Publisher) OrderCreated(ctx context.Context, o orders.Order) error {
	body, err := json.Marshal(OrderMessage{
		OrderID:     o.OrderID,
		StoreID:     o.StoreID,
		TotalAmount: o.TotalAmount,
		ItemCount:   len(o.Items),
		Language:    o.Language,
		CreatedAt:   o.CreatedAtTS,
	})
	if err != nil {
		return fmt.Errorf("marshal order message: %w", err)
	}

	return p.SendOrderMessage(ctx, string(body), map[string]string{
		"order_id": o.OrderID,
		"store_id": strconv.Itoa(o.StoreID),
	})
}

// awsString helper
func awsString(s string) *string { return &s }
