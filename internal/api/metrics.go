package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/engine-cycle/internal/engine"
	"github.com/vovakirdan/engine-cycle/internal/registry"
)

// Collector exposes the engine's operating point and indicated performance
// as Prometheus gauges. It owns its own registry so several servers can
// coexist in one process.
type Collector struct {
	registry *prometheus.Registry

	rpm          prometheus.Gauge
	load         prometheus.Gauge
	displacement prometheus.Gauge
	compression  prometheus.Gauge
	efficiency   prometheus.Gauge
	pistonSpeed  prometheus.Gauge
	imep         *prometheus.GaugeVec
	power        *prometheus.GaugeVec
	peak         *prometheus.GaugeVec

	updates  prometheus.Counter
	requests *prometheus.CounterVec
}

// NewCollector creates and registers the engine gauges.
func NewCollector() *Collector {
	c := &Collector{
		registry:     prometheus.NewRegistry(),
		rpm:          prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_rpm", Help: "Crankshaft speed (rev/min)"}),
		load:         prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_load_nm", Help: "Applied load torque (N·m)"}),
		displacement: prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_displacement_cc", Help: "Swept volume (cm³)"}),
		compression:  prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_compression_ratio", Help: "Geometric compression ratio"}),
		efficiency:   prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_thermal_efficiency", Help: "Otto-cycle thermal efficiency (fraction)"}),
		pistonSpeed:  prometheus.NewGauge(prometheus.GaugeOpts{Name: "engine_mean_piston_speed_mps", Help: "Mean piston speed (m/s)"}),
		imep: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "engine_imep_bar",
				Help: "Indicated mean effective pressure of each pressure model (bar)",
			},
			[]string{"model"},
		),
		power: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "engine_indicated_power_kw",
				Help: "Indicated power of each pressure model (kW)",
			},
			[]string{"model"},
		),
		peak: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "engine_peak_pressure_bar",
				Help: "Peak cylinder pressure of each pressure model (bar)",
			},
			[]string{"model"},
		),
		updates: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_config_updates_total",
			Help: "Accepted configuration updates",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "engine_api_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
	}

	c.registry.MustRegister(
		c.rpm, c.load, c.displacement, c.compression, c.efficiency, c.pistonSpeed,
		c.imep, c.power, c.peak, c.updates, c.requests,
	)
	return c
}

// Registry returns the registry the gauges live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe recomputes every gauge from e.
func (c *Collector) Observe(e *engine.Engine) {
	cfg := e.Config()
	c.rpm.Set(cfg.RPM)
	c.load.Set(cfg.Load)

	perf := e.Performance()
	c.displacement.Set(perf.DisplacementCC)
	c.compression.Set(perf.CompressionRatio)
	c.efficiency.Set(perf.ThermalEfficiency)
	c.pistonSpeed.Set(perf.MeanPistonSpeed)

	for _, info := range registry.List() {
		m, err := registry.Create(info.ID)
		if err != nil {
			continue
		}
		p := e.PerformanceFor(m)
		c.imep.WithLabelValues(info.ID).Set(p.IMEP)
		c.power.WithLabelValues(info.ID).Set(p.IndicatedPower)
		c.peak.WithLabelValues(info.ID).Set(p.PeakPressure)
	}
}
