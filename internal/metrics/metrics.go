package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FixtureFilesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiver_fixture_files_written_total",
		Help: "Total number of fixture files written, by element type",
	}, []string{"dtype"})

	FixtureBytesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiver_fixture_bytes_written_total",
		Help: "Total bytes of fixture data written to disk",
	})

	FixtureWriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiver_fixture_write_duration_seconds",
		Help:    "Duration of individual fixture file writes",
		Buckets: prometheus.DefBuckets,
	})

	CorpusRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiver_corpus_runs_total",
		Help: "Total number of corpus generation runs",
	})

	CorpusRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quiver_corpus_run_duration_seconds",
		Help:    "End-to-end duration of corpus generation runs",
		Buckets: prometheus.DefBuckets,
	})

	VerifyIssues = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quiver_verify_issues_total",
		Help: "Total number of corpus verification issues, by kind",
	}, []string{"kind"})

	ArchiveBundles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quiver_archive_bundles_total",
		Help: "Total number of NPZ archives bundled",
	})
)

func RecordFixtureWrite(dtype string, bytes int, duration time.Duration) {
	FixtureFilesWritten.WithLabelValues(dtype).Inc()
	FixtureBytesWritten.Add(float64(bytes))
	FixtureWriteDuration.Observe(duration.Seconds())
}

func RecordCorpusRun(duration time.Duration) {
	CorpusRuns.Inc()
	CorpusRunDuration.Observe(duration.Seconds())
}

func RecordVerifyIssue(kind string) {
	VerifyIssues.WithLabelValues(kind).Inc()
}

func RecordArchiveBundle() {
	ArchiveBundles.Inc()
}
