package main

import "github.com/imrishuroy/ordering-helper-mock/internal/aws"

// WorkerMessage is the payload sent from API -> SQS -> Worker.
type WorkerMessage = aws.OrderMessage

// StoreNotification is what the worker would push to the store's channel.
type StoreNotification struct {
	OrderID     string
	StoreID     int
	StoreName   string
	TotalAmount int64
	ItemCount   int
	Language    string
}
