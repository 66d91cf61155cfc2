package aws

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/imrishuroy/ordering-helper-mock/internal/orders"
)

// MetricsEmitter pushes order metrics to CloudWatch.
type MetricsEmitter struct {
	CloudWatch CloudWatchAPI
	Namespace  string
}

// NewMetricsEmitter returns an emitter writing to namespace.
func NewMetricsEmitter(cw CloudWatchAPI, namespace string) *MetricsEmitter {
	return &MetricsEmitter{CloudWatch: cw, Namespace: namespace}
}

// OrderCreated records one order and its amount, dimensioned by store.
// It implements orders.Notifier.
func (m *MetricsEmitter) OrderCreated(ctx context.Context, o orders.Order) error {
	dims := []cwtypes.Dimension{
		{Name: awsString("StoreId"), Value: awsString(strconv.Itoa(o.StoreID))},
	}
	ts := o.CreatedAt
	count := 1.0
	amount := float64(o.TotalAmount)

	_, err := m.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: &m.Namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("OrdersCreated"),
				Dimensions: dims,
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitCount,
				Value:      &count,
			},
			{
				MetricName: awsString("OrderTotalAmount"),
				Dimensions: dims,
				Timestamp:  &ts,
				Unit:       cwtypes.StandardUnitNone,
				Value:      &amount,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
