package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"platwatch/internal/model"
)

// ordersResponse is the wire shape of the orders endpoint. A missing or null
// payload/orders field means zero orders, not a malformed response.
type ordersResponse struct {
	Payload *ordersPayload `json:"payload"`
}

type ordersPayload struct {
	Orders []model.RawOrder `json:"orders"`
}

// WarframeClient implements the Client interface against the warframe.market
// HTTP API.
type WarframeClient struct {
	logger  *slog.Logger
	http    *resty.Client
	baseURL string
}

// NewWarframeClient creates a new WarframeClient for the given API base URL.
func NewWarframeClient(logger *slog.Logger, baseURL string, timeout time.Duration) *WarframeClient {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &WarframeClient{
		logger:  logger,
		http:    client,
		baseURL: baseURL,
	}
}

// FetchOrders requests all orders for an item on one platform. The platform
// is selected via the Platform request header, as the API expects.
func (c *WarframeClient) FetchOrders(ctx context.Context, itemName string, platform model.Platform) ([]model.RawOrder, error) {
	endpoint := fmt.Sprintf("%s/%s/orders", c.baseURL, url.PathEscape(itemName))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Platform", string(platform)).
		Get(endpoint)
	if err != nil {
		return nil, &TransportError{Platform: platform, Err: err}
	}
	if resp.IsError() {
		return nil, &TransportError{Platform: platform, StatusCode: resp.StatusCode()}
	}

	var body ordersResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &ParseError{Platform: platform, Err: err}
	}
	if body.Payload == nil || body.Payload.Orders == nil {
		c.logger.Debug("WarframeClient: response without orders", "item", itemName, "platform", platform)
		return []model.RawOrder{}, nil
	}

	c.logger.Debug("WarframeClient: fetched orders", "item", itemName, "platform", platform, "count", len(body.Payload.Orders))
	return body.Payload.Orders, nil
}
