package market

import (
	"context"

	"platwatch/internal/model"
)

// Client defines the standard interface for marketplace order sources.
type Client interface {
	FetchOrders(ctx context.Context, itemName string, platform model.Platform) ([]model.RawOrder, error)
}
