// Package datasource fans out to the per-airport operational data feeds and
// merges them into dashboard payloads, isolating the failure of any single
// feed.
package datasource

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Payload is one provider's JSON-shaped response.
type Payload map[string]any

// Provider is the capability interface for one operational data feed. A
// provider is an independent, possibly flaky external integration.
type Provider interface {
	Fetch(ctx context.Context, airportCode string) (Payload, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, airportCode string) (Payload, error)

// Fetch implements Provider.
func (f ProviderFunc) Fetch(ctx context.Context, airportCode string) (Payload, error) {
	return f(ctx, airportCode)
}

// Dataset keys. The first seven make up the combined dashboard payload; the
// rest are single-dataset endpoints.
const (
	DatasetPassengerFlow       = "passenger_flow"
	DatasetQueueStatus         = "queue_status"
	DatasetBaggageTracking     = "baggage_tracking"
	DatasetFlightStatus        = "flight_status"
	DatasetSecurityStatus      = "security_status"
	DatasetResourceUtilization = "resource_utilization"
	DatasetStaffAvailability   = "staff_availability"
	DatasetWeather             = "weather"
	DatasetLiveConveyors       = "live_conveyors"
	DatasetFacilities          = "facilities"
	DatasetGateOperations      = "gate_operations"
	DatasetComplaints          = "complaints"
	DatasetAIInsights          = "ai_insights"
)

// DashboardDatasets lists the keys of the combined dashboard payload in the
// order they are fetched.
var DashboardDatasets = []string{
	DatasetPassengerFlow,
	DatasetQueueStatus,
	DatasetBaggageTracking,
	DatasetFlightStatus,
	DatasetSecurityStatus,
	DatasetResourceUtilization,
	DatasetStaffAvailability,
}

var titleCaser = cases.Title(language.English)

// HumanizeDataset derives the user-facing dataset name from its key:
// separators become spaces and each word is title-cased.
func HumanizeDataset(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// FailureMessage is the per-dataset error marker text for a faulted feed.
func FailureMessage(key string) string {
	return fmt.Sprintf("Failed to fetch %s data", HumanizeDataset(key))
}

// SoftError extracts an application-level error embedded in an otherwise
// successful payload.
func (p Payload) SoftError() (string, bool) {
	raw, ok := p["error"]
	if !ok {
		return "", false
	}
	msg, ok := raw.(string)
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}
