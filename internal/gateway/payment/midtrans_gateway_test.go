package payment

import (
	"testing"
	"time"

	"chargeflow-be/internal/entity"

	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/stretchr/testify/assert"
)

func TestMapTransactionStatus(t *testing.T) {
	tests := []struct {
		name        string
		vendor      string
		fraudStatus string
		want        entity.PaymentStatus
	}{
		{name: "capture approves", vendor: "capture", fraudStatus: "accept", want: entity.PaymentStatusApproved},
		{name: "settlement approves", vendor: "settlement", want: entity.PaymentStatusApproved},
		{name: "pending stays pending", vendor: "pending", want: entity.PaymentStatusPending},
		{name: "cancel cancels", vendor: "cancel", want: entity.PaymentStatusCancelled},
		{name: "expire cancels", vendor: "expire", want: entity.PaymentStatusCancelled},
		{name: "deny fails", vendor: "deny", want: entity.PaymentStatusFailed},
		{name: "failure fails", vendor: "failure", want: entity.PaymentStatusFailed},
		{name: "capture under fraud challenge stays pending", vendor: "capture", fraudStatus: "challenge", want: entity.PaymentStatusPending},
		{name: "unknown status retries as pending", vendor: "refund_in_progress", want: entity.PaymentStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapTransactionStatus(&coreapi.TransactionStatusResponse{
				TransactionStatus: tt.vendor,
				FraudStatus:       tt.fraudStatus,
			})
			assert.Equal(t, tt.want, got.Status)
			assert.Equal(t, tt.vendor, got.VendorStatus)
		})
	}
}

func TestMapTransactionStatusPaidAt(t *testing.T) {
	got := mapTransactionStatus(&coreapi.TransactionStatusResponse{
		TransactionStatus: "settlement",
		SettlementTime:    "2026-08-30 14:05:10",
		TransactionTime:   "2026-08-30 13:59:00",
	})

	want := time.Date(2026, 8, 30, 14, 5, 10, 0, time.UTC)
	if assert.NotNil(t, got.PaidAt) {
		assert.Equal(t, want, *got.PaidAt)
	}
}

func TestMapTransactionStatusPaidAtFallsBackToTransactionTime(t *testing.T) {
	got := mapTransactionStatus(&coreapi.TransactionStatusResponse{
		TransactionStatus: "settlement",
		TransactionTime:   "2026-08-30 13:59:00",
	})

	want := time.Date(2026, 8, 30, 13, 59, 0, 0, time.UTC)
	if assert.NotNil(t, got.PaidAt) {
		assert.Equal(t, want, *got.PaidAt)
	}
}

func TestMapTransactionStatusNoPaidAtForNonApproved(t *testing.T) {
	got := mapTransactionStatus(&coreapi.TransactionStatusResponse{
		TransactionStatus: "deny",
		TransactionTime:   "2026-08-30 13:59:00",
	})

	assert.Nil(t, got.PaidAt)
}
