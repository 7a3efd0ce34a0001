package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the OTLP meter provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics holds the operational instruments of the water network.
// A nil *Metrics records nothing.
type Metrics struct {
	registrations   metric.Int64Counter
	logins          metric.Int64Counter
	feedback        metric.Int64Counter
	distributions   metric.Int64Counter
	volume          metric.Float64Counter
	alerts          metric.Int64Counter
	pumpTransitions metric.Int64Counter
	rateLimitDenied metric.Int64Counter
}

// NewProvider installs the global meter provider. With export disabled it is a no-op provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))),
	)
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.StopHook(provider.Shutdown))
	}
	log.Info("metrics export enabled",
		zap.String("endpoint", cfg.ExporterEndpoint),
		zap.String("protocol", cfg.ExporterProtocol),
	)
	return provider, nil
}

// New creates the instruments on a meter named after the service.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "waterline"
	}
	meter := provider.Meter(name)

	m := &Metrics{}
	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.registrations, "waterline_client_registrations_total", "Client self-registrations by outcome."},
		{&m.logins, "waterline_logins_total", "Login attempts by outcome and role."},
		{&m.feedback, "waterline_feedback_submitted_total", "Client feedback entries."},
		{&m.distributions, "waterline_distributions_recorded_total", "Water deliveries recorded."},
		{&m.alerts, "waterline_alerts_total", "Alert lifecycle events."},
		{&m.pumpTransitions, "waterline_pump_state_changes_total", "Pump state changes by target state."},
		{&m.rateLimitDenied, "waterline_rate_limit_denied_total", "Requests rejected by a rate limiter."},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", c.name, err)
		}
		*c.dst = counter
	}

	volume, err := meter.Float64Counter("waterline_distributed_volume_m3_total",
		metric.WithDescription("Water volume delivered to clients."),
		metric.WithUnit("m3"),
	)
	if err != nil {
		return nil, err
	}
	m.volume = volume
	return m, nil
}

func (m *Metrics) RecordRegistration(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.registrations.Add(ctx, 1, withAttrs(attribute.String("outcome", outcome)))
}

func (m *Metrics) RecordLogin(ctx context.Context, outcome, role string) {
	if m == nil {
		return
	}
	m.logins.Add(ctx, 1, withAttrs(attribute.String("outcome", outcome), attribute.String("role", role)))
}

func (m *Metrics) RecordFeedback(ctx context.Context) {
	if m == nil {
		return
	}
	m.feedback.Add(ctx, 1)
}

// RecordDistribution counts one delivery and adds its volume.
func (m *Metrics) RecordDistribution(ctx context.Context, volume float64) {
	if m == nil {
		return
	}
	m.distributions.Add(ctx, 1)
	if volume > 0 {
		m.volume.Add(ctx, volume)
	}
}

// RecordAlert counts alert events ("raised", "resolved").
func (m *Metrics) RecordAlert(ctx context.Context, event string) {
	if m == nil {
		return
	}
	m.alerts.Add(ctx, 1, withAttrs(attribute.String("event", event)))
}

func (m *Metrics) RecordPumpState(ctx context.Context, state string) {
	if m == nil {
		return
	}
	m.pumpTransitions.Add(ctx, 1, withAttrs(attribute.String("state", state)))
}

func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	m.rateLimitDenied.Add(ctx, 1, withAttrs(attribute.String("endpoint", endpoint)))
}

func withAttrs(attrs ...attribute.KeyValue) metric.AddOption {
	return metric.WithAttributes(FilterAttributes(attrs...)...)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

// Labels outside this set are dropped; ids and free text never become label values.
var allowedLabelKeys = map[attribute.Key]struct{}{
	"endpoint": {},
	"event":    {},
	"outcome":  {},
	"role":     {},
	"state":    {},
}

func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		if attr.Value.Type() == attribute.STRING && strings.TrimSpace(attr.Value.AsString()) == "" {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
