package watch

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"platwatch/internal/market"
	"platwatch/internal/model"
)

type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) Aggregate(ctx context.Context, itemName string, platforms []model.Platform, prev model.Summary) (model.AggregateResult, error) {
	args := m.Called(ctx, itemName, platforms, prev)
	return args.Get(0).(model.AggregateResult), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(title, body string) {
	m.Called(title, body)
}

type MockPresenter struct {
	mock.Mock
}

func (m *MockPresenter) Status(text string) {
	m.Called(text)
}

func (m *MockPresenter) ShowOrders(orders []model.RankedOrder) {
	m.Called(orders)
}

func (m *MockPresenter) ShowSummary(summary model.Summary) {
	m.Called(summary)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWatcher(agg *MockAggregator, notifier *MockNotifier, presenter *MockPresenter) *Watcher {
	return New(testLogger(), agg, notifier, presenter, model.DefaultPlatforms(), time.Minute)
}

func rankedResult(lowest, average float64, changed bool) model.AggregateResult {
	return model.AggregateResult{
		Orders: []model.RankedOrder{
			{Platform: "PC", OrderType: "Sell", Platinum: int(lowest), Presence: model.PresenceIngame, UserStatus: "In Game", UserName: "Tenno", ModRank: "None"},
		},
		Summary: model.Summary{Lowest: lowest, Average: average, HasData: true},
		Changed: changed,
	}
}

func TestWatcher_VisibleSearch(t *testing.T) {
	agg := new(MockAggregator)
	notifier := new(MockNotifier)
	presenter := new(MockPresenter)

	agg.On("Aggregate", mock.Anything, "chroma_prime_set", mock.Anything, model.Summary{}).
		Return(rankedResult(42, 42, true), nil)
	presenter.On("Status", mock.Anything).Return()
	presenter.On("ShowOrders", mock.Anything).Return()
	presenter.On("ShowSummary", mock.Anything).Return()
	notifier.On("Notify", "chroma_prime_set lowest price", mock.Anything).Return()

	w := newTestWatcher(agg, notifier, presenter)
	w.Search(context.Background(), "chroma_prime_set")

	agg.AssertExpectations(t)
	presenter.AssertCalled(t, "ShowOrders", mock.Anything)
	presenter.AssertCalled(t, "ShowSummary", model.Summary{Lowest: 42, Average: 42, HasData: true})
	notifier.AssertCalled(t, "Notify", "chroma_prime_set lowest price", "current lowest: 42 platinum")
}

func TestWatcher_SilentTick(t *testing.T) {
	t.Run("unchanged prices stay quiet", func(t *testing.T) {
		agg := new(MockAggregator)
		notifier := new(MockNotifier)
		presenter := new(MockPresenter)

		agg.On("Aggregate", mock.Anything, "serration", mock.Anything, mock.Anything).
			Return(rankedResult(10, 10, false), nil)
		presenter.On("ShowSummary", mock.Anything).Return()

		w := newTestWatcher(agg, notifier, presenter)
		w.run(context.Background(), "serration", false)

		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
		presenter.AssertNotCalled(t, "ShowOrders", mock.Anything)
		presenter.AssertNotCalled(t, "Status", mock.Anything)
		presenter.AssertCalled(t, "ShowSummary", mock.Anything)
	})

	t.Run("changed prices notify", func(t *testing.T) {
		agg := new(MockAggregator)
		notifier := new(MockNotifier)
		presenter := new(MockPresenter)

		agg.On("Aggregate", mock.Anything, "serration", mock.Anything, mock.Anything).
			Return(rankedResult(9, 9.5, true), nil)
		presenter.On("ShowSummary", mock.Anything).Return()
		notifier.On("Notify", "serration lowest price", mock.Anything).Return()

		w := newTestWatcher(agg, notifier, presenter)
		w.run(context.Background(), "serration", false)

		notifier.AssertNumberOfCalls(t, "Notify", 1)
		presenter.AssertNotCalled(t, "ShowOrders", mock.Anything)
	})

	t.Run("errors notify even when silent", func(t *testing.T) {
		agg := new(MockAggregator)
		notifier := new(MockNotifier)
		presenter := new(MockPresenter)

		agg.On("Aggregate", mock.Anything, "serration", mock.Anything, mock.Anything).
			Return(model.AggregateResult{}, &market.TransportError{Platform: model.PlatformPC, StatusCode: 500})
		notifier.On("Notify", "Search error", mock.Anything).Return()

		w := newTestWatcher(agg, notifier, presenter)
		w.run(context.Background(), "serration", false)

		notifier.AssertCalled(t, "Notify", "Search error", mock.Anything)
		presenter.AssertNotCalled(t, "Status", mock.Anything)
	})
}

func TestWatcher_VisibleError(t *testing.T) {
	agg := new(MockAggregator)
	notifier := new(MockNotifier)
	presenter := new(MockPresenter)

	agg.On("Aggregate", mock.Anything, "serration", mock.Anything, mock.Anything).
		Return(model.AggregateResult{}, &market.TransportError{Platform: model.PlatformPC, StatusCode: 500})
	presenter.On("Status", mock.Anything).Return()
	notifier.On("Notify", "Search error", mock.Anything).Return()

	w := newTestWatcher(agg, notifier, presenter)
	w.Search(context.Background(), "serration")

	presenter.AssertCalled(t, "Status", mock.MatchedBy(func(s string) bool {
		return len(s) > 0
	}))
	notifier.AssertCalled(t, "Notify", "Search error", mock.Anything)
}

func TestWatcher_BlankItemName(t *testing.T) {
	t.Run("visible shows a status message only", func(t *testing.T) {
		agg := new(MockAggregator)
		notifier := new(MockNotifier)
		presenter := new(MockPresenter)
		presenter.On("Status", "enter an item name").Return()

		w := newTestWatcher(agg, notifier, presenter)
		w.Search(context.Background(), "   ")

		presenter.AssertCalled(t, "Status", "enter an item name")
		agg.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})

	t.Run("silent does nothing", func(t *testing.T) {
		agg := new(MockAggregator)
		notifier := new(MockNotifier)
		presenter := new(MockPresenter)

		w := newTestWatcher(agg, notifier, presenter)
		w.run(context.Background(), "", false)

		agg.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		presenter.AssertNotCalled(t, "Status", mock.Anything)
	})
}

func TestWatcher_EmptyResult(t *testing.T) {
	agg := new(MockAggregator)
	notifier := new(MockNotifier)
	presenter := new(MockPresenter)

	agg.On("Aggregate", mock.Anything, "vaulted_thing", mock.Anything, mock.Anything).
		Return(model.AggregateResult{}, nil)
	presenter.On("Status", mock.Anything).Return()
	presenter.On("ShowOrders", mock.Anything).Return()
	presenter.On("ShowSummary", model.Summary{}).Return()
	notifier.On("Notify", "Search result", mock.Anything).Return()

	w := newTestWatcher(agg, notifier, presenter)
	w.Search(context.Background(), "vaulted_thing")

	presenter.AssertCalled(t, "ShowSummary", model.Summary{})
	notifier.AssertCalled(t, "Notify", "Search result", "no sell orders found for vaulted_thing")
}

func TestWatcher_BusyGuard(t *testing.T) {
	agg := new(MockAggregator)
	notifier := new(MockNotifier)
	presenter := new(MockPresenter)
	presenter.On("Status", mock.Anything).Return()

	w := newTestWatcher(agg, notifier, presenter)
	w.busy = true

	w.Search(context.Background(), "serration")
	agg.AssertNotCalled(t, "Aggregate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWatcher_ThreadsPreviousSummary(t *testing.T) {
	agg := new(MockAggregator)
	notifier := new(MockNotifier)
	presenter := new(MockPresenter)

	first := rankedResult(30, 32.5, true)
	agg.On("Aggregate", mock.Anything, "serration", mock.Anything, model.Summary{}).
		Return(first, nil).Once()
	agg.On("Aggregate", mock.Anything, "serration", mock.Anything, first.Summary).
		Return(rankedResult(30, 32.5, false), nil).Once()
	presenter.On("Status", mock.Anything).Return()
	presenter.On("ShowOrders", mock.Anything).Return()
	presenter.On("ShowSummary", mock.Anything).Return()
	notifier.On("Notify", mock.Anything, mock.Anything).Return()

	w := newTestWatcher(agg, notifier, presenter)
	w.Search(context.Background(), "serration")
	w.run(context.Background(), "serration", false)

	agg.AssertExpectations(t)
}
