package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resumescan/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig holds configuration for observability
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	PrettyPrint    bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// Metrics holds all custom metrics for the scan service
type Metrics struct {
	// Scan pipeline metrics
	ScanDuration         metric.Float64Histogram
	ScanCount            metric.Int64Counter
	ValidationRejections metric.Int64Counter
	ExtractorFailures    metric.Int64Counter
	BatchFiles           metric.Int64Counter
	ActiveRequests       metric.Int64UpDownCounter

	// AI enhancement metrics
	AIProcessingTime metric.Float64Histogram
	AIRequestCount   metric.Int64Counter
	AIErrorCount     metric.Int64Counter
	AITokenUsage     metric.Int64Histogram

	// Certificate metrics
	CertReloadCount metric.Int64Counter
	CertExpiryTime  metric.Float64Gauge

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// ObservabilityManager manages OpenTelemetry setup
type ObservabilityManager struct {
	config           ObservabilityConfig
	fullConfig       *config.Config // Store full config for access to nested settings
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewObservabilityManager creates a new observability manager
func NewObservabilityManager(obsConfig ObservabilityConfig, fullConfig *config.Config) (*ObservabilityManager, error) {
	if !obsConfig.Enabled {
		return &ObservabilityManager{config: obsConfig, fullConfig: fullConfig}, nil
	}

	om := &ObservabilityManager{
		config:        obsConfig,
		fullConfig:    fullConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := om.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := om.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return om, nil
}

// initTracing sets up OpenTelemetry tracing
func (om *ObservabilityManager) initTracing() error {
	var exporter trace.SpanExporter
	var err error

	if om.config.ConsoleOutput {
		// Console exporter for development
		opts := []stdouttrace.Option{}
		if om.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	} else if om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled {
		// OTLP exporter for production
		exporter, err = om.createOTLPExporter()
	} else {
		// No-op exporter when no production exporter is configured
		exporter = &noOpSpanExporter{}
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(om.config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	om.tracerProvider = tp
	om.shutdownFuncs = append(om.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (om *ObservabilityManager) initMetrics() error {
	readers, err := om.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	om.meterProvider = mp
	om.shutdownFuncs = append(om.shutdownFuncs, mp.Shutdown)

	return om.initCustomMetrics()
}

// setupMetricReaders sets up all metric readers based on configuration
func (om *ObservabilityManager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	// Console exporter for development
	if err := om.setupConsoleReader(&readers); err != nil {
		return nil, err
	}

	// OTLP exporter for production metrics
	if err := om.setupOTLPReader(&readers); err != nil {
		return nil, err
	}

	// Prometheus exporter
	if err := om.setupPrometheusReader(&readers); err != nil {
		return nil, err
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

// setupConsoleReader sets up console metric reader if enabled
func (om *ObservabilityManager) setupConsoleReader(readers *[]sdkmetric.Reader) error {
	if !om.config.ConsoleOutput {
		return nil
	}

	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create console metric exporter: %w", err)
	}

	interval := om.getMetricsCollectionInterval()
	*readers = append(*readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	return nil
}

// setupOTLPReader sets up OTLP metric reader if enabled
func (om *ObservabilityManager) setupOTLPReader(readers *[]sdkmetric.Reader) error {
	if om.fullConfig == nil || !om.fullConfig.Observability.OTLP.Enabled {
		return nil
	}

	otlpReader, err := om.createOTLPMetricsReader()
	if err != nil {
		return fmt.Errorf("failed to create OTLP metrics reader: %w", err)
	}
	if otlpReader != nil {
		*readers = append(*readers, otlpReader)
	}
	return nil
}

// setupPrometheusReader sets up Prometheus metric reader if enabled
func (om *ObservabilityManager) setupPrometheusReader(readers *[]sdkmetric.Reader) error {
	if !om.config.Prometheus.Enabled {
		return nil
	}

	prometheusReader, prometheusMux, err := SetupPrometheusExporter(om.config.Prometheus)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	if prometheusReader != nil {
		*readers = append(*readers, prometheusReader)
		om.prometheusServer = prometheusMux

		if err := StartPrometheusServer(prometheusMux, om.config.Prometheus.Port); err != nil {
			return fmt.Errorf("failed to start Prometheus server: %w", err)
		}
	}
	return nil
}

// createResource creates the OpenTelemetry resource
func (om *ObservabilityManager) createResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
			attribute.String("service.instance.id", om.getServiceInstanceID()),
		),
	)
}

// initCustomMetrics creates all custom metrics for the service
func (om *ObservabilityManager) initCustomMetrics() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}

	if err := om.createScanMetrics(meter); err != nil {
		return err
	}

	if err := om.createAIMetrics(meter); err != nil {
		return err
	}

	if err := om.createCertificateMetrics(meter); err != nil {
		return err
	}

	return om.createRateLimitMetrics(meter)
}

// createScanMetrics creates scan pipeline metrics
func (om *ObservabilityManager) createScanMetrics(meter metric.Meter) error {
	var err error

	om.metrics.ScanDuration, err = meter.Float64Histogram(
		"resumescan_scan_duration_seconds",
		metric.WithDescription("Time spent running the full analysis pipeline"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create scan duration metric: %w", err)
	}

	om.metrics.ScanCount, err = meter.Int64Counter(
		"resumescan_scans_total",
		metric.WithDescription("Total number of scans processed"),
	)
	if err != nil {
		return fmt.Errorf("failed to create scan count metric: %w", err)
	}

	om.metrics.ValidationRejections, err = meter.Int64Counter(
		"resumescan_validation_rejections_total",
		metric.WithDescription("Uploads rejected because the content is not a resume"),
	)
	if err != nil {
		return fmt.Errorf("failed to create validation rejections metric: %w", err)
	}

	om.metrics.ExtractorFailures, err = meter.Int64Counter(
		"resumescan_extractor_failures_total",
		metric.WithDescription("Signal extractors that failed during a scan"),
	)
	if err != nil {
		return fmt.Errorf("failed to create extractor failures metric: %w", err)
	}

	om.metrics.BatchFiles, err = meter.Int64Counter(
		"resumescan_batch_files_total",
		metric.WithDescription("Files received through batch scan requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create batch files metric: %w", err)
	}

	om.metrics.ActiveRequests, err = meter.Int64UpDownCounter(
		"resumescan_active_requests",
		metric.WithDescription("Scan requests currently in flight"),
	)
	if err != nil {
		return fmt.Errorf("failed to create active requests metric: %w", err)
	}

	return nil
}

// createAIMetrics creates AI enhancement metrics
func (om *ObservabilityManager) createAIMetrics(meter metric.Meter) error {
	var err error

	om.metrics.AIProcessingTime, err = meter.Float64Histogram(
		"resumescan_ai_processing_duration_seconds",
		metric.WithDescription("Time spent processing AI enhancement requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI processing time metric: %w", err)
	}

	om.metrics.AIRequestCount, err = meter.Int64Counter(
		"resumescan_ai_requests_total",
		metric.WithDescription("Total number of AI enhancement requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI request count metric: %w", err)
	}

	om.metrics.AIErrorCount, err = meter.Int64Counter(
		"resumescan_ai_errors_total",
		metric.WithDescription("Total number of AI enhancement errors"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI error count metric: %w", err)
	}

	om.metrics.AITokenUsage, err = meter.Int64Histogram(
		"resumescan_ai_token_usage_total",
		metric.WithDescription("Token usage for AI requests (input, output, total)"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AI token usage metric: %w", err)
	}

	return nil
}

// createCertificateMetrics creates certificate-related metrics
func (om *ObservabilityManager) createCertificateMetrics(meter metric.Meter) error {
	var err error

	om.metrics.CertReloadCount, err = meter.Int64Counter(
		"resumescan_cert_reloads_total",
		metric.WithDescription("Total number of certificate reloads"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate reload count metric: %w", err)
	}

	// Certificate expiry time gauge (populated by CertificateManager)
	om.metrics.CertExpiryTime, err = meter.Float64Gauge(
		"resumescan_cert_expiry_seconds",
		metric.WithDescription("Seconds until certificate expiry"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate expiry time metric: %w", err)
	}

	return nil
}

// createRateLimitMetrics creates rate limiting metrics
func (om *ObservabilityManager) createRateLimitMetrics(meter metric.Meter) error {
	var err error

	om.metrics.RateLimitHits, err = meter.Int64Counter(
		"resumescan_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (om *ObservabilityManager) GetMetrics() *Metrics {
	if om.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return om.metrics
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (om *ObservabilityManager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !om.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		om.config.ServiceName,
		otelhttp.WithTracerProvider(om.tracerProvider),
		otelhttp.WithMeterProvider(om.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if !om.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// TrackScan records the outcome of one analysis pipeline run. Validation
// rejections count as processed scans, not as errors.
func (m *Metrics) TrackScan(ctx context.Context, scoringType string, duration time.Duration, success bool) {
	attrs := []attribute.KeyValue{
		attribute.String("scoring_type", scoringType),
		attribute.Bool("success", success),
	}
	if m.ScanDuration != nil {
		m.ScanDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	}
	if m.ScanCount != nil {
		m.ScanCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordValidationRejection counts an upload the validation gate refused to score.
func (m *Metrics) RecordValidationRejection(ctx context.Context) {
	if m.ValidationRejections != nil {
		m.ValidationRejections.Add(ctx, 1)
	}
}

// RecordExtractorFailure counts a signal extractor that failed inside a scan.
func (m *Metrics) RecordExtractorFailure(ctx context.Context, extractor string) {
	if m.ExtractorFailures != nil {
		m.ExtractorFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("extractor", extractor),
		))
	}
}

// RecordBatchFiles counts the files received in one batch request.
func (m *Metrics) RecordBatchFiles(ctx context.Context, count int) {
	if m.BatchFiles != nil {
		m.BatchFiles.Add(ctx, int64(count))
	}
}

// RequestStarted marks a scan request as in flight; the returned func ends it.
func (m *Metrics) RequestStarted(ctx context.Context) func() {
	if m.ActiveRequests == nil {
		return func() {}
	}
	m.ActiveRequests.Add(ctx, 1)
	return func() { m.ActiveRequests.Add(ctx, -1) }
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func (m *Metrics) RecordRateLimitHit(ctx context.Context, attrs ...attribute.KeyValue) {
	if m.RateLimitHits != nil {
		m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// AIOperationResult holds the result of an AI operation including token usage
type AIOperationResult struct {
	Error      error
	TokenUsage *TokenUsage
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// TrackAIOperationWithTokens instruments an AI operation with tracing, metrics, and token usage
func (m *Metrics) TrackAIOperationWithTokens(ctx context.Context, operation string, fn func(context.Context) *AIOperationResult) error {
	if m.AIProcessingTime == nil {
		// Metrics not initialized, just run the function
		result := fn(ctx)
		if result != nil {
			return result.Error
		}
		return nil
	}

	tracer := otel.Tracer("resumescan.ai")
	ctx, span := tracer.Start(ctx, "ai."+operation)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	duration := time.Since(start).Seconds()

	var err error
	if result != nil {
		err = result.Error
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	m.AIProcessingTime.Record(ctx, duration, metric.WithAttributes(attrs...))
	m.AIRequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	if err != nil {
		m.AIErrorCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	m.recordTokenUsage(ctx, result, attrs, span)

	span.SetAttributes(attrs...)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}

	return err
}

// recordTokenUsage records token usage metrics and span attributes
func (m *Metrics) recordTokenUsage(ctx context.Context, result *AIOperationResult, attrs []attribute.KeyValue, span oteltrace.Span) {
	if result == nil || result.TokenUsage == nil || m.AITokenUsage == nil {
		return
	}

	tokenTypes := []struct {
		tokenType string
		value     int64
	}{
		{"input", result.TokenUsage.InputTokens},
		{"output", result.TokenUsage.OutputTokens},
		{"total", result.TokenUsage.TotalTokens},
	}
	for _, tt := range tokenTypes {
		tokenAttrs := append(attrs, attribute.String("token_type", tt.tokenType))
		m.AITokenUsage.Record(ctx, tt.value, metric.WithAttributes(tokenAttrs...))
	}

	// Always add token usage to traces for debugging
	span.SetAttributes(
		attribute.Int64("ai.tokens.input", result.TokenUsage.InputTokens),
		attribute.Int64("ai.tokens.output", result.TokenUsage.OutputTokens),
		attribute.Int64("ai.tokens.total", result.TokenUsage.TotalTokens),
	)
}

// No-op exporter for when no trace backend is configured
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// createOTLPExporter creates an OTLP HTTP trace exporter
func (om *ObservabilityManager) createOTLPExporter() (trace.SpanExporter, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// createOTLPMetricsReader creates an OTLP HTTP metrics reader
func (om *ObservabilityManager) createOTLPMetricsReader() (sdkmetric.Reader, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	interval := om.getMetricsCollectionInterval()
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)), nil
}

// getServiceInstanceID returns the service instance ID from config or generates one
func (om *ObservabilityManager) getServiceInstanceID() string {
	if om.fullConfig != nil && om.fullConfig.Observability.ServiceInstance != "" {
		return om.fullConfig.Observability.ServiceInstance
	}
	return "resumescan-1"
}

// getMetricsCollectionInterval returns the configured metrics collection interval
func (om *ObservabilityManager) getMetricsCollectionInterval() time.Duration {
	if om.fullConfig != nil {
		return om.fullConfig.Observability.Metrics.CollectionInterval
	}
	return 15 * time.Second
}
