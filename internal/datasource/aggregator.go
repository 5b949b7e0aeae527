package datasource

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Aggregator produces dashboard payloads by invoking the registered
// providers per airport. Each provider runs in isolation: one faulting or
// slow feed degrades its own widget, never the whole response.
type Aggregator struct {
	providers map[string]Provider
	timeout   time.Duration
	cache     *Cache
	logger    *zap.Logger
}

// NewAggregator wires the provider set. Timeout bounds each provider call;
// a timed-out provider counts as a faulted one.
func NewAggregator(providers map[string]Provider, timeout time.Duration, cache *Cache, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		providers: providers,
		timeout:   timeout,
		cache:     cache,
		logger:    logger,
	}
}

// FetchDataset fetches a single dataset, consulting the payload cache first.
// A provider fault surfaces as an error for the caller to map to one HTTP
// failure.
func (a *Aggregator) FetchDataset(ctx context.Context, dataset, airportCode string) (Payload, error) {
	provider, ok := a.providers[dataset]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q", dataset)
	}

	if payload, ok := a.cache.Get(ctx, dataset, airportCode); ok {
		return payload, nil
	}

	fetchCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	payload, err := provider.Fetch(fetchCtx, airportCode)
	if err != nil {
		return nil, err
	}

	a.cache.Set(ctx, dataset, airportCode, payload)
	return payload, nil
}

// FetchDashboard builds the combined dashboard payload for an airport. The
// result always contains every dashboard dataset key; failed datasets hold
// the per-dataset error marker, and a top-level "errors" map collects the
// fault details only when at least one dataset failed. A successful payload
// that embeds its own error field is surfaced into "errors" as well, without
// being treated as a fault.
func (a *Aggregator) FetchDashboard(ctx context.Context, airportCode string) Payload {
	data := make(Payload, len(DashboardDatasets)+1)
	errs := map[string]string{}

	for _, dataset := range DashboardDatasets {
		payload, err := a.FetchDataset(ctx, dataset, airportCode)
		if err != nil {
			a.logger.Error("provider fault",
				zap.String("dataset", dataset),
				zap.String("airport", airportCode),
				zap.Error(err))
			data[dataset] = Payload{"error": FailureMessage(dataset)}
			errs[dataset] = err.Error()
			continue
		}

		data[dataset] = payload
		if msg, ok := payload.SoftError(); ok {
			errs[dataset] = msg
		}
	}

	if len(errs) > 0 {
		data["errors"] = errs
	}
	return data
}
