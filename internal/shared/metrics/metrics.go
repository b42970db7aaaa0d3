package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	recommendationRequestsTotal atomic.Uint64
	recommendationFailedTotal   atomic.Uint64
	serviceRequestsCreatedTotal atomic.Uint64
	billScansTotal              atomic.Uint64

	requestJobsReceivedTotal  atomic.Uint64
	requestJobsCompletedTotal atomic.Uint64
	requestJobsFailedTotal    atomic.Uint64
	requestJobsDroppedTotal   atomic.Uint64

	recommendationDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
)

// IncRecommendationRequest increments the recommendation request counter.
func IncRecommendationRequest() {
	recommendationRequestsTotal.Add(1)
}

// IncRecommendationFailed increments the failed counter.
func IncRecommendationFailed() {
	recommendationFailedTotal.Add(1)
}

// IncServiceRequestCreated increments the switch request counter.
func IncServiceRequestCreated() {
	serviceRequestsCreatedTotal.Add(1)
}

// IncBillScan increments the bill scan counter.
func IncBillScan() {
	billScansTotal.Add(1)
}

// IncRequestJobsReceived counts switch request jobs picked up by the worker.
func IncRequestJobsReceived() {
	requestJobsReceivedTotal.Add(1)
}

// IncRequestJobsCompleted counts jobs processed and deleted from the queue.
func IncRequestJobsCompleted() {
	requestJobsCompletedTotal.Add(1)
}

// IncRequestJobsFailed counts jobs whose processing returned an error.
func IncRequestJobsFailed() {
	requestJobsFailedTotal.Add(1)
}

// IncRequestJobsDropped counts malformed jobs deleted without processing.
func IncRequestJobsDropped() {
	requestJobsDroppedTotal.Add(1)
}

// ObserveRecommendationDurationMs records how long ranking took.
func ObserveRecommendationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	recommendationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "recommendation_requests_total", "Total recommendation requests served", recommendationRequestsTotal.Load())
	writeCounter(&buf, "recommendation_failed_total", "Total recommendation requests that failed", recommendationFailedTotal.Load())
	writeCounter(&buf, "service_requests_created_total", "Total provider switch requests created", serviceRequestsCreatedTotal.Load())
	writeCounter(&buf, "bill_scans_total", "Total bill uploads scanned", billScansTotal.Load())
	writeCounter(&buf, "request_jobs_received_total", "Total switch request jobs received by the worker", requestJobsReceivedTotal.Load())
	writeCounter(&buf, "request_jobs_completed_total", "Total switch request jobs completed", requestJobsCompletedTotal.Load())
	writeCounter(&buf, "request_jobs_failed_total", "Total switch request jobs that failed", requestJobsFailedTotal.Load())
	writeCounter(&buf, "request_jobs_dropped_total", "Total malformed jobs dropped without processing", requestJobsDroppedTotal.Load())
	writeHistogram(&buf, "recommendation_duration_ms", "Recommendation ranking duration in milliseconds", recommendationDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	for i, bound := range snap.buckets {
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), snap.counts[i])
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
