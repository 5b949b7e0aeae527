package datasource_test

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"go.uber.org/zap"

	"github.com/spec-kit/airport-dashboard/internal/datasource"
)

func staticProvider(payload datasource.Payload) datasource.Provider {
	return datasource.ProviderFunc(func(ctx context.Context, airportCode string) (datasource.Payload, error) {
		return payload, nil
	})
}

func failingProvider(err error) datasource.Provider {
	return datasource.ProviderFunc(func(ctx context.Context, airportCode string) (datasource.Payload, error) {
		return nil, err
	})
}

func dashboardProviders() map[string]datasource.Provider {
	providers := make(map[string]datasource.Provider, len(datasource.DashboardDatasets))
	for _, dataset := range datasource.DashboardDatasets {
		providers[dataset] = staticProvider(datasource.Payload{"dataset": dataset})
	}
	return providers
}

func newAggregator(providers map[string]datasource.Provider, timeout time.Duration) *datasource.Aggregator {
	logger := zap.NewNop()
	return datasource.NewAggregator(providers, timeout, datasource.NewCache(nil, 0, logger), logger)
}

func TestFetchDashboardAllHealthy(t *testing.T) {
	c := qt.New(t)

	agg := newAggregator(dashboardProviders(), time.Second)
	data := agg.FetchDashboard(context.Background(), "DEL")

	c.Assert(data, qt.HasLen, len(datasource.DashboardDatasets))
	for _, dataset := range datasource.DashboardDatasets {
		c.Assert(data[dataset], qt.DeepEquals, datasource.Payload{"dataset": dataset})
	}
	_, hasErrors := data["errors"]
	c.Assert(hasErrors, qt.IsFalse)
}

func TestFetchDashboardPartialFailure(t *testing.T) {
	c := qt.New(t)

	providers := dashboardProviders()
	providers[datasource.DatasetFlightStatus] = failingProvider(errors.New("upstream unavailable"))
	providers[datasource.DatasetQueueStatus] = failingProvider(errors.New("connection reset"))

	agg := newAggregator(providers, time.Second)
	data := agg.FetchDashboard(context.Background(), "BLR")

	for _, dataset := range datasource.DashboardDatasets {
		c.Assert(data[dataset], qt.Not(qt.IsNil), qt.Commentf("dataset %s missing", dataset))
	}

	c.Assert(data[datasource.DatasetFlightStatus], qt.DeepEquals,
		datasource.Payload{"error": "Failed to fetch Flight Status data"})
	c.Assert(data[datasource.DatasetQueueStatus], qt.DeepEquals,
		datasource.Payload{"error": "Failed to fetch Queue Status data"})

	errs, ok := data["errors"].(map[string]string)
	c.Assert(ok, qt.IsTrue)
	c.Assert(errs, qt.HasLen, 2)
	c.Assert(errs[datasource.DatasetFlightStatus], qt.Equals, "upstream unavailable")
	c.Assert(errs[datasource.DatasetQueueStatus], qt.Equals, "connection reset")

	c.Assert(data[datasource.DatasetPassengerFlow], qt.DeepEquals,
		datasource.Payload{"dataset": datasource.DatasetPassengerFlow})
}

func TestFetchDashboardSoftError(t *testing.T) {
	c := qt.New(t)

	providers := dashboardProviders()
	providers[datasource.DatasetBaggageTracking] = staticProvider(datasource.Payload{
		"error": "tracking system offline",
	})

	agg := newAggregator(providers, time.Second)
	data := agg.FetchDashboard(context.Background(), "GOX")

	// The payload itself is kept as delivered, not replaced by the fault marker.
	c.Assert(data[datasource.DatasetBaggageTracking], qt.DeepEquals,
		datasource.Payload{"error": "tracking system offline"})

	errs, ok := data["errors"].(map[string]string)
	c.Assert(ok, qt.IsTrue)
	c.Assert(errs, qt.DeepEquals, map[string]string{
		datasource.DatasetBaggageTracking: "tracking system offline",
	})
}

func TestFetchDatasetTimeout(t *testing.T) {
	c := qt.New(t)

	slow := datasource.ProviderFunc(func(ctx context.Context, airportCode string) (datasource.Payload, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(500 * time.Millisecond):
			return datasource.Payload{"late": true}, nil
		}
	})

	agg := newAggregator(map[string]datasource.Provider{
		datasource.DatasetWeather: slow,
	}, 10*time.Millisecond)

	_, err := agg.FetchDataset(context.Background(), datasource.DatasetWeather, "DEL")
	c.Assert(errors.Is(err, context.DeadlineExceeded), qt.IsTrue)
}

func TestFetchDatasetUnknown(t *testing.T) {
	c := qt.New(t)

	agg := newAggregator(dashboardProviders(), time.Second)
	_, err := agg.FetchDataset(context.Background(), "telemetry", "DEL")
	c.Assert(err, qt.ErrorMatches, `unknown dataset "telemetry"`)
}

func TestHumanizeDataset(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"passenger_flow", "Passenger Flow"},
		{"queue_status", "Queue Status"},
		{"ai_insights", "Ai Insights"},
		{"weather", "Weather"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(datasource.HumanizeDataset(tt.key), qt.Equals, tt.want)
		})
	}
}

func TestSoftError(t *testing.T) {
	c := qt.New(t)

	msg, ok := datasource.Payload{"error": "boom"}.SoftError()
	c.Assert(ok, qt.IsTrue)
	c.Assert(msg, qt.Equals, "boom")

	_, ok = datasource.Payload{"status": "ok"}.SoftError()
	c.Assert(ok, qt.IsFalse)

	_, ok = datasource.Payload{"error": 42}.SoftError()
	c.Assert(ok, qt.IsFalse)

	_, ok = datasource.Payload{"error": ""}.SoftError()
	c.Assert(ok, qt.IsFalse)
}
