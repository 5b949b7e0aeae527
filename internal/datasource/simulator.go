package datasource

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Simulator implements every provider against generated data. It stands in
// for the real operational integrations (conveyor telemetry, flight status,
// weather) during development and demos.
type Simulator struct{}

// NewSimulator builds the simulated feed set.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Providers returns one Provider per dataset key.
func (s *Simulator) Providers() map[string]Provider {
	return map[string]Provider{
		DatasetPassengerFlow:       ProviderFunc(s.passengerFlow),
		DatasetQueueStatus:         ProviderFunc(s.queueStatus),
		DatasetBaggageTracking:     ProviderFunc(s.baggageTracking),
		DatasetFlightStatus:        ProviderFunc(s.flightStatus),
		DatasetSecurityStatus:      ProviderFunc(s.securityStatus),
		DatasetResourceUtilization: ProviderFunc(s.resourceUtilization),
		DatasetStaffAvailability:   ProviderFunc(s.staffAvailability),
		DatasetWeather:             ProviderFunc(s.weather),
		DatasetLiveConveyors:       ProviderFunc(s.liveConveyors),
		DatasetFacilities:          ProviderFunc(s.facilities),
		DatasetGateOperations:      ProviderFunc(s.gateOperations),
		DatasetComplaints:          ProviderFunc(s.complaints),
		DatasetAIInsights:          ProviderFunc(s.aiInsights),
	}
}

func (s *Simulator) passengerFlow(_ context.Context, airportCode string) (Payload, error) {
	hours := make([]Payload, 0, 24)
	for h := 0; h < 24; h++ {
		hours = append(hours, Payload{
			"hour":       h,
			"arrivals":   200 + rand.IntN(400),
			"departures": 200 + rand.IntN(400),
		})
	}
	return Payload{
		"airport_code": airportCode,
		"hourly":       hours,
		"current_load": rand.IntN(100),
	}, nil
}

func (s *Simulator) queueStatus(_ context.Context, airportCode string) (Payload, error) {
	zones := []string{"check-in", "security", "immigration", "boarding"}
	queues := make([]Payload, 0, len(zones))
	for _, zone := range zones {
		queues = append(queues, Payload{
			"zone":         zone,
			"wait_minutes": rand.IntN(45),
			"depth":        rand.IntN(120),
		})
	}
	return Payload{"airport_code": airportCode, "queues": queues}, nil
}

func (s *Simulator) baggageTracking(_ context.Context, airportCode string) (Payload, error) {
	return Payload{
		"airport_code": airportCode,
		"in_transit":   rand.IntN(800),
		"delivered":    rand.IntN(2000),
		"delayed":      rand.IntN(30),
		"mishandled":   rand.IntN(5),
		"avg_delivery": 10 + rand.IntN(20),
		"last_updated": time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *Simulator) flightStatus(_ context.Context, airportCode string) (Payload, error) {
	statuses := []string{"On Time", "Boarding", "Delayed", "Departed", "Arrived"}
	flights := make([]Payload, 0, 8)
	for i := 0; i < 8; i++ {
		flights = append(flights, Payload{
			"flight_number": fmt.Sprintf("AI%03d", 100+rand.IntN(900)),
			"gate":          fmt.Sprintf("G%d", 1+rand.IntN(20)),
			"status":        statuses[rand.IntN(len(statuses))],
		})
	}
	return Payload{"airport_code": airportCode, "flights": flights}, nil
}

func (s *Simulator) securityStatus(_ context.Context, airportCode string) (Payload, error) {
	lanes := make([]Payload, 0, 6)
	for i := 1; i <= 6; i++ {
		lanes = append(lanes, Payload{
			"lane":         i,
			"open":         rand.IntN(10) > 2,
			"wait_minutes": rand.IntN(25),
		})
	}
	return Payload{"airport_code": airportCode, "lanes": lanes, "threat_level": "Normal"}, nil
}

func (s *Simulator) resourceUtilization(_ context.Context, airportCode string) (Payload, error) {
	return Payload{
		"airport_code": airportCode,
		"gates_in_use": rand.IntN(20),
		"belts_in_use": rand.IntN(8),
		"counters":     rand.IntN(40),
		"utilization":  40 + rand.IntN(55),
	}, nil
}

func (s *Simulator) staffAvailability(_ context.Context, airportCode string) (Payload, error) {
	areas := []string{"baggage", "gates", "security", "check_in"}
	byArea := make([]Payload, 0, len(areas))
	for _, area := range areas {
		byArea = append(byArea, Payload{
			"area":      area,
			"on_duty":   5 + rand.IntN(20),
			"available": rand.IntN(10),
		})
	}
	return Payload{"airport_code": airportCode, "areas": byArea}, nil
}

func (s *Simulator) weather(_ context.Context, airportCode string) (Payload, error) {
	conditions := []string{"Clear", "Partly Cloudy", "Rain", "Haze", "Thunderstorm"}
	return Payload{
		"airport_code": airportCode,
		"condition":    conditions[rand.IntN(len(conditions))],
		"temperature":  18 + rand.IntN(20),
		"wind_kmh":     rand.IntN(40),
		"visibility":   2 + rand.IntN(9),
	}, nil
}

func (s *Simulator) liveConveyors(_ context.Context, airportCode string) (Payload, error) {
	healths := []string{"Good", "Good", "Good", "Degraded", "Critical"}
	risks := []string{"Low", "Low", "Medium", "High"}
	belts := make([]Payload, 0, 6)
	alerts := []Payload{}
	for i := 1; i <= 6; i++ {
		health := healths[rand.IntN(len(healths))]
		risk := risks[rand.IntN(len(risks))]
		belt := Payload{
			"belt_id":          fmt.Sprintf("%s-B%d", airportCode, i),
			"terminal":         fmt.Sprintf("T%d", 1+rand.IntN(3)),
			"status":           "Running",
			"health_status":    health,
			"delay_risk":       risk,
			"efficiency_score": 60 + rand.IntN(40),
			"predicted_issues": []string{},
		}
		if health != "Good" {
			belt["predicted_issues"] = []string{"motor wear", "belt misalignment"}
			alerts = append(alerts, Payload{
				"scope":   "baggage",
				"belt_id": belt["belt_id"],
				"message": fmt.Sprintf("Belt %s health is %s", belt["belt_id"], health),
			})
		}
		belts = append(belts, belt)
	}
	return Payload{
		"airport_code":   airportCode,
		"conveyor_belts": belts,
		"ai_alerts":      alerts,
	}, nil
}

func (s *Simulator) facilities(_ context.Context, airportCode string) (Payload, error) {
	return Payload{
		"airport_code": airportCode,
		"lounges":      1 + rand.IntN(5),
		"restrooms":    10 + rand.IntN(30),
		"restaurants":  4 + rand.IntN(16),
		"charging":     8 + rand.IntN(24),
	}, nil
}

func (s *Simulator) gateOperations(_ context.Context, airportCode string) (Payload, error) {
	gates := make([]Payload, 0, 10)
	for i := 1; i <= 10; i++ {
		gates = append(gates, Payload{
			"gate":       fmt.Sprintf("G%d", i),
			"occupied":   rand.IntN(2) == 1,
			"turnaround": 25 + rand.IntN(35),
		})
	}
	return Payload{"airport_code": airportCode, "gates": gates}, nil
}

func (s *Simulator) complaints(_ context.Context, airportCode string) (Payload, error) {
	return Payload{
		"airport_code": airportCode,
		"open":         rand.IntN(12),
		"resolved":     rand.IntN(40),
		"complaints":   []Payload{},
	}, nil
}

func (s *Simulator) aiInsights(_ context.Context, airportCode string) (Payload, error) {
	return Payload{
		"airport_code": airportCode,
		"insights": []Payload{
			{"title": "Baggage throughput stable", "severity": "info"},
			{"title": "Security queue may exceed 20 minutes between 17:00-19:00", "severity": "warning"},
		},
	}, nil
}

// TrackBaggage answers a passenger lookup for one bag.
func (s *Simulator) TrackBaggage(bagID, flightNumber string) Payload {
	if bagID == "" && flightNumber == "" {
		return Payload{"error": "bag_id or flight_number is required"}
	}
	stages := []string{"Checked In", "Security Screening", "Sorted", "Loaded", "In Transit", "At Carousel"}
	return Payload{
		"bag_id":        bagID,
		"flight_number": flightNumber,
		"status":        stages[rand.IntN(len(stages))],
		"last_seen":     time.Now().UTC().Format(time.RFC3339),
	}
}

// SubmitComplaint records a passenger baggage complaint and returns a
// reference the passenger can track.
func (s *Simulator) SubmitComplaint(passengerName, flightNumber, bagID, issueType, description, airportCode string) Payload {
	if passengerName == "" || issueType == "" {
		return Payload{"error": "passenger_name and issue_type are required"}
	}
	return Payload{
		"success":      true,
		"reference":    uuid.NewString(),
		"passenger":    passengerName,
		"flight":       flightNumber,
		"bag_id":       bagID,
		"issue_type":   issueType,
		"description":  description,
		"airport_code": airportCode,
		"submitted_at": time.Now().UTC().Format(time.RFC3339),
	}
}
