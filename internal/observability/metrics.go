package observability

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/strokesheet/internal/platform/envutil"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

// Metrics is a small Prometheus text exposition of request and sheet
// counters. A nil *Metrics is valid and records nothing.
type Metrics struct {
	apiRequests  *Vec
	apiLatency   *HistogramVec
	apiInflight  *Vec
	sheets       *Vec
	sheetLatency *HistogramVec
	cells        *Vec
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init builds the process metrics when METRICS_ENABLED is set.
func Init(log *logger.Logger) *Metrics {
	if !envutil.Bool("METRICS_ENABLED", false, log) {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
	})
	return instance
}

func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("strokesheet_api_requests_total", "API requests by method/route/status.", "method", "route", "status"),
		apiLatency: NewHistogramVec(
			"strokesheet_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			"method", "route",
		),
		apiInflight: NewGaugeVec("strokesheet_api_inflight_requests", "In-flight API requests."),
		sheets:      NewCounterVec("strokesheet_sheets_total", "Sheet generations by outcome.", "outcome"),
		sheetLatency: NewHistogramVec(
			"strokesheet_sheet_duration_seconds",
			"Sheet generation latency in seconds.",
			[]float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		),
		cells: NewCounterVec("strokesheet_cells_total", "Cell lookups by result.", "result"),
	}
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Add(1, method, route, fmt.Sprint(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) InflightInc() {
	if m != nil {
		m.apiInflight.Add(1)
	}
}

func (m *Metrics) InflightDec() {
	if m != nil {
		m.apiInflight.Add(-1)
	}
}

// ObserveSheet records one generation. rendered and hits are the cell
// cache's counters for the run.
func (m *Metrics) ObserveSheet(outcome string, dur time.Duration, rendered, hits int) {
	if m == nil {
		return
	}
	m.sheets.Add(1, outcome)
	m.sheetLatency.Observe(dur.Seconds())
	m.cells.Add(float64(rendered), "rendered")
	m.cells.Add(float64(hits), "hit")
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.sheets, m.sheetLatency, m.cells,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

// ---- lightweight metric primitives (Prometheus exposition) ----

// Vec is a labelled counter or gauge.
type Vec struct {
	name       string
	help       string
	kind       string
	labelNames []string
	mu         sync.RWMutex
	values     map[string]float64
}

func NewCounterVec(name, help string, labels ...string) *Vec {
	return &Vec{name: name, help: help, kind: "counter", labelNames: labels, values: map[string]float64{}}
}

func NewGaugeVec(name, help string, labels ...string) *Vec {
	return &Vec{name: name, help: help, kind: "gauge", labelNames: labels, values: map[string]float64{}}
}

func (v *Vec) Add(delta float64, values ...string) {
	if v == nil {
		return
	}
	lbl := labelString(v.labelNames, values)
	v.mu.Lock()
	v.values[lbl] += delta
	v.mu.Unlock()
}

func (v *Vec) Value(values ...string) float64 {
	if v == nil {
		return 0
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.values[labelString(v.labelNames, values)]
}

func (v *Vec) WritePrometheus(w io.Writer) error {
	if v == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", v.name, v.help, v.name, v.kind); err != nil {
		return err
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, k := range sortedKeys(v.values) {
		if _, err := fmt.Fprintf(w, "%s%s %g\n", v.name, k, v.values[k]); err != nil {
			return err
		}
	}
	return nil
}

type HistogramVec struct {
	name       string
	help       string
	labelNames []string
	buckets    []float64
	mu         sync.RWMutex
	values     map[string]*histogram
}

type histogram struct {
	counts []uint64 // cumulative per bucket, last is +Inf
	sum    float64
	total  uint64
}

func NewHistogramVec(name, help string, buckets []float64, labels ...string) *HistogramVec {
	return &HistogramVec{name: name, help: help, labelNames: labels, buckets: buckets, values: map[string]*histogram{}}
}

func (h *HistogramVec) Observe(v float64, values ...string) {
	if h == nil {
		return
	}
	lbl := labelString(h.labelNames, values)
	h.mu.Lock()
	defer h.mu.Unlock()
	hist, ok := h.values[lbl]
	if !ok {
		hist = &histogram{counts: make([]uint64, len(h.buckets)+1)}
		h.values[lbl] = hist
	}
	hist.sum += v
	hist.total++
	for i, b := range h.buckets {
		if v <= b {
			hist.counts[i]++
		}
	}
	hist.counts[len(h.buckets)]++
}

func (h *HistogramVec) WritePrometheus(w io.Writer) error {
	if h == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s histogram\n", h.name, h.help, h.name); err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	keys := make([]string, 0, len(h.values))
	for k := range h.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		hist := h.values[k]
		for i, b := range h.buckets {
			if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, withLe(k, fmt.Sprintf("%g", b)), hist.counts[i]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n%s_sum%s %g\n%s_count%s %d\n",
			h.name, withLe(k, "+Inf"), hist.counts[len(h.buckets)],
			h.name, k, hist.sum,
			h.name, k, hist.total); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func labelString(names []string, values []string) string {
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, len(names))
	for i, name := range names {
		val := "unknown"
		if i < len(values) {
			val = values[i]
		}
		parts[i] = name + `="` + escapeLabel(val) + `"`
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func escapeLabel(v string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(v)
}

func withLe(labels string, le string) string {
	if labels == "" {
		return `{le="` + le + `"}`
	}
	return strings.TrimSuffix(labels, "}") + `,le="` + le + `"}`
}
