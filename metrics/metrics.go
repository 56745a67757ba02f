package metrics

import (
	"bytes"
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
	"github.com/zkarcade/campaign-tools/types"
	"github.com/zkarcade/campaign-tools/utils"
)

// Recorder collects the counters of a single batch run. Each run gets its own
// set so repeated runs in one process never share state.
type Recorder struct {
	set *metrics.Set

	rowsTotal            *metrics.Counter
	acceptedTotal        *metrics.Counter
	historyAddresses     *metrics.Gauge
	sanctionedAddresses  *metrics.Gauge
	historyFilesSkipped  *metrics.Counter
	sanctionsLoadErrors  *metrics.Counter
	metadataFilesWritten *metrics.Counter
}

func NewRecorder() *Recorder {
	set := metrics.NewSet()
	r := &Recorder{
		set:                  set,
		rowsTotal:            set.NewCounter("allowlist_rows_total"),
		acceptedTotal:        set.NewCounter("allowlist_accepted_total"),
		historyAddresses:     set.NewGauge("allowlist_history_addresses", nil),
		sanctionedAddresses:  set.NewGauge("allowlist_sanctioned_addresses", nil),
		historyFilesSkipped:  set.NewCounter("allowlist_history_files_skipped_total"),
		sanctionsLoadErrors:  set.NewCounter("allowlist_sanctions_load_errors_total"),
		metadataFilesWritten: set.NewCounter("metadata_files_written_total"),
	}
	// initialize every reason so the exposition always carries all of them
	for _, reason := range types.Reasons {
		r.rejected(reason)
	}
	return r
}

func rejectedKey(reason types.Reason) string {
	return fmt.Sprintf(`allowlist_rejected_total{reason=%q}`, reason)
}

func (r *Recorder) rejected(reason types.Reason) *metrics.Counter {
	return r.set.GetOrCreateCounter(rejectedKey(reason))
}

func (r *Recorder) ObserveSummary(s types.Summary) {
	r.rowsTotal.Add(s.Total)
	r.acceptedTotal.Add(s.Accepted)
	for reason, n := range s.ByReason {
		r.rejected(reason).Add(n)
	}
}

func (r *Recorder) SetHistoryAddresses(n int)    { r.historyAddresses.Set(float64(n)) }
func (r *Recorder) SetSanctionedAddresses(n int) { r.sanctionedAddresses.Set(float64(n)) }
func (r *Recorder) IncHistoryFileSkipped()       { r.historyFilesSkipped.Inc() }
func (r *Recorder) IncSanctionsLoadError()       { r.sanctionsLoadErrors.Inc() }
func (r *Recorder) IncMetadataFileWritten()      { r.metadataFilesWritten.Inc() }

// Rejected returns the current count for one reason.
func (r *Recorder) Rejected(reason types.Reason) uint64 {
	return r.rejected(reason).Get()
}

func (r *Recorder) MetadataFilesWritten() uint64 {
	return r.metadataFilesWritten.Get()
}

// WritePrometheus writes every counter in Prometheus text exposition format.
func (r *Recorder) WritePrometheus(w io.Writer) {
	r.set.WritePrometheus(w)
}

// WriteFile stores the exposition at path, for the node_exporter textfile collector.
func (r *Recorder) WriteFile(path string) error {
	var buf bytes.Buffer
	r.WritePrometheus(&buf)
	return utils.WriteFileAtomic(path, buf.Bytes())
}
