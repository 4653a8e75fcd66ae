package payment

import (
	"context"
	"fmt"
	"time"

	"chargeflow-be/internal/entity"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// statusMapping translates vendor transaction statuses into local payment
// statuses. Unknown vendor statuses resolve to pending so the next batch
// retries them instead of burying the charge.
var statusMapping = map[string]entity.PaymentStatus{
	"capture":    entity.PaymentStatusApproved,
	"settlement": entity.PaymentStatusApproved,
	"pending":    entity.PaymentStatusPending,
	"cancel":     entity.PaymentStatusCancelled,
	"expire":     entity.PaymentStatusCancelled,
	"deny":       entity.PaymentStatusFailed,
	"failure":    entity.PaymentStatusFailed,
}

type MidtransGateway struct {
	client coreapi.Client
}

func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &MidtransGateway{}
	g.client.New(serverKey, env)
	return g
}

func (g *MidtransGateway) LookupStatus(ctx context.Context, orderRef string) (*StatusResult, error) {
	resp, err := g.client.CheckTransaction(orderRef)
	if err != nil {
		return nil, fmt.Errorf("midtrans check transaction %s: %w", orderRef, err)
	}
	return mapTransactionStatus(resp), nil
}

func mapTransactionStatus(resp *coreapi.TransactionStatusResponse) *StatusResult {
	status, ok := statusMapping[resp.TransactionStatus]
	if !ok {
		status = entity.PaymentStatusPending
	}

	// A captured card transaction is only money in hand once fraud
	// screening accepts it.
	if resp.TransactionStatus == "capture" && resp.FraudStatus == "challenge" {
		status = entity.PaymentStatusPending
	}

	result := &StatusResult{
		Status:       status,
		VendorStatus: resp.TransactionStatus,
	}
	if status == entity.PaymentStatusApproved {
		if paidAt := parseVendorTime(resp.SettlementTime, resp.TransactionTime); paidAt != nil {
			result.PaidAt = paidAt
		}
	}
	return result
}

func parseVendorTime(candidates ...string) *time.Time {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if t, err := time.Parse("2006-01-02 15:04:05", c); err == nil {
			return &t
		}
	}
	return nil
}
