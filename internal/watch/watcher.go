package watch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"platwatch/internal/model"
	"platwatch/internal/notify"
)

// Aggregator is the slice of the aggregation pipeline the watcher drives.
type Aggregator interface {
	Aggregate(ctx context.Context, itemName string, platforms []model.Platform, prev model.Summary) (model.AggregateResult, error)
}

// Presenter receives user-visible output from the watcher. The CLI
// implements it over stdout, standing in for the widgets of a desktop
// client.
type Presenter interface {
	Status(text string)
	ShowOrders(orders []model.RankedOrder)
	ShowSummary(summary model.Summary)
}

// Watcher runs aggregation passes and decides what the user sees. A manual
// search is "visible": it refreshes the table and always notifies. A timer
// tick is "silent": only the summary is refreshed and a notification fires
// only when prices moved. At most one pass runs at a time; concurrent
// triggers are skipped, never queued.
type Watcher struct {
	logger    *slog.Logger
	agg       Aggregator
	notifier  notify.Notifier
	presenter Presenter
	platforms []model.Platform
	interval  time.Duration

	mu   sync.Mutex
	busy bool
	prev model.Summary
}

// New creates a new Watcher.
func New(logger *slog.Logger, agg Aggregator, notifier notify.Notifier, presenter Presenter, platforms []model.Platform, interval time.Duration) *Watcher {
	return &Watcher{
		logger:    logger,
		agg:       agg,
		notifier:  notifier,
		presenter: presenter,
		platforms: platforms,
		interval:  interval,
	}
}

// Search runs one visible aggregation pass for the item.
func (w *Watcher) Search(ctx context.Context, itemName string) {
	w.run(ctx, itemName, true)
}

// Run polls for the item on the configured interval until the context is
// cancelled. Every tick is a silent pass.
func (w *Watcher) Run(ctx context.Context, itemName string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Watcher: polling started", "item", itemName, "interval", w.interval)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watcher: polling stopped")
			return
		case <-ticker.C:
			w.run(ctx, itemName, false)
		}
	}
}

func (w *Watcher) run(ctx context.Context, itemName string, visible bool) {
	if strings.TrimSpace(itemName) == "" {
		if visible {
			w.presenter.Status("enter an item name")
		}
		return
	}

	if !w.tryAcquire() {
		w.logger.Debug("Watcher: search already in flight, skipping", "item", itemName)
		return
	}
	defer w.release()

	if visible {
		w.presenter.Status(fmt.Sprintf("searching all platforms for %s...", itemName))
	}

	result, err := w.agg.Aggregate(ctx, itemName, w.platforms, w.previous())
	if err != nil {
		if visible {
			w.presenter.Status(fmt.Sprintf("error: %v", err))
		}
		w.notifier.Notify("Search error", fmt.Sprintf("searching %s failed: %v", itemName, err))
		return
	}

	for platform, perr := range result.PlatformErrors {
		w.logger.Warn("Watcher: platform skipped", "platform", platform, "error", perr)
	}

	if visible {
		w.presenter.ShowOrders(result.Orders)
		status := fmt.Sprintf("found %d sell orders across all platforms", len(result.Orders))
		if len(result.PlatformErrors) > 0 {
			status += fmt.Sprintf(" (%d platforms failed)", len(result.PlatformErrors))
		}
		w.presenter.Status(status)
	}

	if !result.Summary.HasData {
		if visible {
			w.presenter.ShowSummary(result.Summary)
			w.notifier.Notify("Search result", fmt.Sprintf("no sell orders found for %s", itemName))
		}
		return
	}

	w.setPrevious(result.Summary)
	w.presenter.ShowSummary(result.Summary)
	if visible || result.Changed {
		w.notifier.Notify(
			fmt.Sprintf("%s lowest price", itemName),
			fmt.Sprintf("current lowest: %v platinum", result.Summary.Lowest),
		)
	}
}

func (w *Watcher) tryAcquire() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return false
	}
	w.busy = true
	return true
}

func (w *Watcher) release() {
	w.mu.Lock()
	w.busy = false
	w.mu.Unlock()
}

func (w *Watcher) previous() model.Summary {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.prev
}

func (w *Watcher) setPrevious(s model.Summary) {
	w.mu.Lock()
	w.prev = s
	w.mu.Unlock()
}
