package messaging

import "context"

// SendResult carries the vendor acknowledgement of a message hand-off.
// AckCode is the raw HTTP status; only 200 and 201 count as accepted.
type SendResult struct {
	AckCode         int
	VendorMessageId string
}

func (r *SendResult) Accepted() bool {
	return r.AckCode == 200 || r.AckCode == 201
}

// MessagingGateway is the channel adapter the dispatcher talks to. An
// instance is one tenant's connected WhatsApp session.
type MessagingGateway interface {
	IsInstanceConnected(ctx context.Context, instance string) (bool, error)
	SendText(ctx context.Context, instance, phone, body string) (*SendResult, error)
}
