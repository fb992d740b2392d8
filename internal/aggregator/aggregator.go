package aggregator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"platwatch/internal/market"
	"platwatch/internal/model"
)

// ErrEmptyItemName is returned when an aggregation is requested for a blank
// item name. It short-circuits before any network call.
var ErrEmptyItemName = errors.New("aggregator: item name is empty")

// changeTolerance is the minimum absolute move of the lowest or average
// price that counts as a change. A delta of exactly 0.1 does not count.
const changeTolerance = 0.1

// sellOrderLabel is the display label for the only order type that survives
// filtering.
const sellOrderLabel = "Sell"

// Aggregator merges and ranks sell orders across marketplace platforms.
// It holds no mutable state between calls; previous price statistics are
// threaded in explicitly by the caller.
type Aggregator struct {
	logger *slog.Logger
	client market.Client
}

// New creates a new Aggregator on top of a marketplace client.
func New(logger *slog.Logger, client market.Client) *Aggregator {
	return &Aggregator{
		logger: logger,
		client: client,
	}
}

// FetchPlatformOrders fetches one platform's orders and reduces them to the
// ranked display form: buy orders and offline sellers are dropped, labels
// are resolved, and the result is sorted by presence priority then price.
func (a *Aggregator) FetchPlatformOrders(ctx context.Context, itemName string, platform model.Platform) ([]model.RankedOrder, error) {
	raw, err := a.client.FetchOrders(ctx, itemName, platform)
	if err != nil {
		return nil, err
	}

	ranked := make([]model.RankedOrder, 0, len(raw))
	for _, order := range raw {
		if order.OrderType != model.OrderTypeSell {
			continue
		}
		if order.User.Status == model.PresenceOffline {
			continue
		}

		modRank := "None"
		if order.ModRank != nil {
			modRank = strconv.Itoa(*order.ModRank)
		}

		ranked = append(ranked, model.RankedOrder{
			Platform:   platform.Display(),
			OrderType:  sellOrderLabel,
			Platinum:   order.Platinum,
			Quantity:   order.Quantity,
			Presence:   order.User.Status,
			UserStatus: order.User.Status.Display(),
			UserName:   order.User.IngameName,
			ModRank:    modRank,
		})
	}

	sortOrders(ranked)
	return ranked, nil
}

// Aggregate queries every platform in order, merges the ranked results into
// one globally sorted list and derives the price summary. A single
// platform's failure is isolated into PlatformErrors and the remaining
// platforms still contribute; an error is returned only when the item name
// is blank or every platform failed.
func (a *Aggregator) Aggregate(ctx context.Context, itemName string, platforms []model.Platform, prev model.Summary) (model.AggregateResult, error) {
	if strings.TrimSpace(itemName) == "" {
		return model.AggregateResult{}, ErrEmptyItemName
	}

	var all []model.RankedOrder
	failures := make(map[model.Platform]error)
	var firstErr error

	for _, platform := range platforms {
		orders, err := a.FetchPlatformOrders(ctx, itemName, platform)
		if err != nil {
			a.logger.Error("Aggregator: platform fetch failed", "item", itemName, "platform", platform, "error", err)
			failures[platform] = err
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		all = append(all, orders...)
	}

	if len(platforms) > 0 && len(failures) == len(platforms) {
		return model.AggregateResult{PlatformErrors: failures}, fmt.Errorf("all platforms failed: %w", firstErr)
	}

	sortOrders(all)

	result := model.AggregateResult{
		Orders:         all,
		PlatformErrors: failures,
	}
	if len(all) == 0 {
		return result, nil
	}

	lowest := all[0].Platinum
	total := 0
	for _, order := range all {
		if order.Platinum < lowest {
			lowest = order.Platinum
		}
		total += order.Platinum
	}

	result.Summary = model.Summary{
		Lowest:  float64(lowest),
		Average: float64(total) / float64(len(all)),
		HasData: true,
	}
	result.Changed = changed(result.Summary, prev)

	a.logger.Info("Aggregator: aggregation complete",
		"item", itemName,
		"orders", len(all),
		"lowest", result.Summary.Lowest,
		"average", result.Summary.Average,
		"changed", result.Changed,
	)
	return result, nil
}

// sortOrders sorts by presence priority descending, then platinum ascending.
// The sort is stable so equal orders keep their platform arrival order.
func sortOrders(orders []model.RankedOrder) {
	sort.SliceStable(orders, func(i, j int) bool {
		pi, pj := orders[i].Presence.Priority(), orders[j].Presence.Priority()
		if pi != pj {
			return pi > pj
		}
		return orders[i].Platinum < orders[j].Platinum
	})
}

// changed reports whether the lowest or average price moved by more than the
// tolerance since the previous pass.
func changed(current, prev model.Summary) bool {
	return math.Abs(current.Lowest-prev.Lowest) > changeTolerance ||
		math.Abs(current.Average-prev.Average) > changeTolerance
}
