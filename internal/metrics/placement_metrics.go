package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Этапы оформления заказа для лейблов метрик.
const (
	StageInventory = "inventory"
	StageCharge    = "charge"
	StagePersist   = "persist"
	StageShip      = "ship"
)

// Причины отклонения запроса для лейблов метрик.
const (
	RejectInvalidRequest = "invalid_request"
	RejectInventory      = "inventory_unavailable"
)

// PlacementMetrics содержит метрики оркестрации оформления заказа.
type PlacementMetrics struct {
	// Счётчики исходов
	ordersStarted   prometheus.Counter
	ordersPlaced    prometheus.Counter
	ordersRejected  *prometheus.CounterVec
	storageFailures prometheus.Counter

	// Неуспехи downstream-вызовов, не фатальные для запроса
	paymentFailures  prometheus.Counter
	shipmentFailures prometheus.Counter

	// Гистограммы времени выполнения
	placementDuration prometheus.Histogram
	stageDuration     *prometheus.HistogramVec

	// Счётчик событий timeline
	timelineEvents prometheus.Counter

	// Gauge для запросов в полёте
	inFlight prometheus.Gauge
}

// NewPlacementMetrics создаёт метрики в default-регистраторе Prometheus.
func NewPlacementMetrics() *PlacementMetrics {
	return newPlacementMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newPlacementMetricsWithRegisterer(registerer prometheus.Registerer) *PlacementMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &PlacementMetrics{
		ordersStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_started_total",
			Help: "Total number of order placement requests started",
		}),
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_placed_total",
			Help: "Total number of orders persisted and answered successfully",
		}),
		ordersRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "checkout_orders_rejected_total",
			Help: "Total number of order requests rejected before any side effect",
		}, []string{"reason"}),
		storageFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_storage_failures_total",
			Help: "Total number of order persistence failures",
		}),
		paymentFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_payment_failures_total",
			Help: "Total number of failed payment outcomes carried into orders",
		}),
		shipmentFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_shipment_failures_total",
			Help: "Total number of failed shipping requests",
		}),
		placementDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "checkout_placement_duration_seconds",
			Help:    "Duration of the whole order placement flow in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		stageDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "checkout_stage_duration_seconds",
			Help:    "Duration of individual placement stages in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"stage"}),
		timelineEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "checkout_timeline_events_total",
			Help: "Total number of timeline events recorded",
		}),
		inFlight: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "checkout_placements_in_flight",
			Help: "Number of order placements currently being processed",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordPlacementStarted увеличивает счётчик запущенных оформлений.
func (m *PlacementMetrics) RecordPlacementStarted() {
	m.ordersStarted.Inc()
	m.inFlight.Inc()
}

// RecordPlacementFinished уменьшает количество оформлений в полёте.
func (m *PlacementMetrics) RecordPlacementFinished() {
	m.inFlight.Dec()
}

// RecordOrderPlaced увеличивает счётчик успешно оформленных заказов.
func (m *PlacementMetrics) RecordOrderPlaced() {
	m.ordersPlaced.Inc()
}

// RecordRejected увеличивает счётчик отклонённых запросов по причине.
func (m *PlacementMetrics) RecordRejected(reason string) {
	m.ordersRejected.WithLabelValues(reason).Inc()
}

// RecordStorageFailure увеличивает счётчик ошибок сохранения.
func (m *PlacementMetrics) RecordStorageFailure() {
	m.storageFailures.Inc()
}

// RecordPaymentFailure увеличивает счётчик неуспешных платежей.
func (m *PlacementMetrics) RecordPaymentFailure() {
	m.paymentFailures.Inc()
}

// RecordShipmentFailure увеличивает счётчик неуспешных запросов доставки.
func (m *PlacementMetrics) RecordShipmentFailure() {
	m.shipmentFailures.Inc()
}

// RecordPlacementDuration записывает время полного цикла оформления.
func (m *PlacementMetrics) RecordPlacementDuration(duration time.Duration) {
	m.placementDuration.Observe(duration.Seconds())
}

// RecordStageDuration записывает время выполнения отдельного этапа.
func (m *PlacementMetrics) RecordStageDuration(stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *PlacementMetrics) RecordTimelineEvent() {
	m.timelineEvents.Inc()
}
