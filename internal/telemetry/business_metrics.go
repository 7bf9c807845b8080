package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"
)

// BusinessMetrics holds Prometheus metrics for postcode and address traffic.
type BusinessMetrics struct {
	// Postcode parsing
	PostcodeLookups *prometheus.CounterVec
	PostcodeOutward *prometheus.CounterVec

	// Address validation
	AddressValidations *prometheus.CounterVec
	AddressFieldErrors *prometheus.CounterVec
}

// NewBusinessMetrics creates business metrics and registers them with reg.
// A nil reg means the default Prometheus registry.
func NewBusinessMetrics(namespace string, reg *prometheus.Registry) *BusinessMetrics {
	if namespace == "" {
		namespace = "postcode"
	}

	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	if reg != nil {
		registerer = reg
	}

	subsystem := "business"
	factory := promauto.With(registerer)

	return &BusinessMetrics{
		PostcodeLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "postcode_lookups_total",
				Help:      "Total postcode parse requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		PostcodeOutward: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "postcode_areas_total",
				Help:      "Total valid postcodes parsed, by postcode area (leading letters of the outward code)",
			},
			[]string{"area"},
		),
		AddressValidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "address_validations_total",
				Help:      "Total address validations by country and outcome",
			},
			[]string{"country", "outcome"},
		),
		AddressFieldErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "address_field_errors_total",
				Help:      "Total address field errors by field",
			},
			[]string{"field"},
		),
	}
}

// RecordLookup counts one parse attempt. area is ignored for invalid input.
func (m *BusinessMetrics) RecordLookup(endpoint string, valid bool, area string) {
	if m == nil {
		return
	}
	if !valid {
		m.PostcodeLookups.WithLabelValues(endpoint, OutcomeInvalid).Inc()
		return
	}
	m.PostcodeLookups.WithLabelValues(endpoint, OutcomeValid).Inc()
	if area != "" {
		m.PostcodeOutward.WithLabelValues(area).Inc()
	}
}

// RecordAddress counts one address validation and its field errors.
// Anything but two uppercase ASCII letters is labelled "other".
func (m *BusinessMetrics) RecordAddress(country string, valid bool, fields []string) {
	if m == nil {
		return
	}
	outcome := OutcomeValid
	if !valid {
		outcome = OutcomeInvalid
	}
	m.AddressValidations.WithLabelValues(countryLabel(country), outcome).Inc()
	for _, f := range fields {
		m.AddressFieldErrors.WithLabelValues(f).Inc()
	}
}

func countryLabel(country string) string {
	if country == "" {
		return "unknown"
	}
	if len(country) != 2 || !isUpperASCII(country[0]) || !isUpperASCII(country[1]) {
		return "other"
	}
	return country
}

func isUpperASCII(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
