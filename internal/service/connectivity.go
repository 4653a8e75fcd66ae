package service

import (
	"context"
	"time"

	"chargeflow-be/internal/gateway/messaging"

	gocache "github.com/patrickmn/go-cache"
)

// ConnectivityChecker memoizes instance connection-state lookups so one
// batch does not hit the bridge once per message for the same tenant.
type ConnectivityChecker struct {
	gateway messaging.MessagingGateway
	cache   *gocache.Cache
}

func NewConnectivityChecker(gateway messaging.MessagingGateway, ttl time.Duration) *ConnectivityChecker {
	return &ConnectivityChecker{
		gateway: gateway,
		cache:   gocache.New(ttl, 2*ttl),
	}
}

func (c *ConnectivityChecker) IsConnected(ctx context.Context, instance string) (bool, error) {
	if instance == "" {
		return false, nil
	}
	if cached, found := c.cache.Get(instance); found {
		return cached.(bool), nil
	}
	connected, err := c.gateway.IsInstanceConnected(ctx, instance)
	if err != nil {
		return false, err
	}
	c.cache.SetDefault(instance, connected)
	return connected, nil
}
