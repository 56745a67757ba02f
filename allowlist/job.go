package allowlist

import (
	"context"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/zkarcade/campaign-tools/adapters/csvfile"
	"github.com/zkarcade/campaign-tools/config"
	"github.com/zkarcade/campaign-tools/metrics"
	"github.com/zkarcade/campaign-tools/types"
	"github.com/zkarcade/campaign-tools/utils"
)

// Job filters one whitelist file against the campaign history and the
// sanctioned-address list, and writes the accepted and removed tables.
type Job struct {
	WhitelistPath string
	HistoryDir    string
	Config        config.FilterConfig

	log     log.Logger
	metrics *metrics.Recorder
}

// Report describes a completed run
type Report struct {
	RunID               uuid.UUID
	Summary             types.Summary
	Destination         config.Destination
	Public              bool
	AcceptedFingerprint utils.Fingerprint
	RemovedFingerprint  utils.Fingerprint
}

func NewJob(whitelistPath, historyDir string, cfg config.FilterConfig, logger log.Logger, recorder *metrics.Recorder) *Job {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	return &Job{
		WhitelistPath: whitelistPath,
		HistoryDir:    historyDir,
		Config:        cfg,
		log:           logger,
		metrics:       recorder,
	}
}

func (j *Job) Metrics() *metrics.Recorder {
	return j.metrics
}

// Run executes the job. Errors reading the whitelist are returned before any
// output is written; problems with the exclusion sources are only logged.
func (j *Job) Run() (*Report, error) {
	runID := uuid.New()
	logger := j.log.New("run", runID.String())
	loader := NewLoader(logger, j.metrics)

	logger.Info("Reading previously filtered addresses", "dir", j.HistoryDir)
	history := loader.History(j.HistoryDir)

	logger.Info("Reading sanctioned addresses", "file", j.Config.SanctionsFile)
	sanctioned := loader.Sanctions(j.Config.SanctionsFile)

	logger.Info("Reading whitelist", "file", j.WhitelistPath)
	whitelist, err := csvfile.Read(j.WhitelistPath)
	if err != nil {
		return nil, errors.Wrap(err, "read whitelist")
	}

	if logger.Enabled(context.Background(), log.LevelDebug) {
		logger.Debug("Loaded exclusion sources", "history", history.Sorted(), "sanctioned", sanctioned.Sorted())
	}

	result, err := Filter(whitelist, history, sanctioned)
	if err != nil {
		return nil, errors.Wrapf(err, "filter whitelist %s", j.WhitelistPath)
	}

	acceptedBytes, err := result.AcceptedTable().Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "encode accepted addresses")
	}
	removedBytes, err := result.RemovedTable().Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "encode removed addresses")
	}

	dest, public := SelectDestination(j.WhitelistPath, j.Config.PublicMarker, j.Config.Output)
	err = utils.WriteFilesAtomic(
		utils.PendingFile{Path: dest.Accepted, Data: acceptedBytes},
		utils.PendingFile{Path: dest.Removed, Data: removedBytes},
	)
	if err != nil {
		return nil, errors.Wrap(err, "write outputs")
	}

	report := &Report{
		RunID:               runID,
		Summary:             result.Summary,
		Destination:         dest,
		Public:              public,
		AcceptedFingerprint: utils.FingerprintOf(acceptedBytes),
		RemovedFingerprint:  utils.FingerprintOf(removedBytes),
	}

	s := result.Summary
	logger.Info("Whitelist filtered",
		"total", s.Total,
		"accepted", s.Accepted,
		"rejected", s.Rejected,
		"duplicate_current_whitelist", s.ByReason[types.ReasonDuplicateCurrentWhitelist],
		"duplicate_previous_campaign", s.ByReason[types.ReasonDuplicatePreviousCampaign],
		"ofac", s.ByReason[types.ReasonOFAC],
	)
	logger.Info("Wrote outputs",
		"public", public,
		"accepted", dest.Accepted, "acceptedFingerprint", report.AcceptedFingerprint,
		"removed", dest.Removed, "removedFingerprint", report.RemovedFingerprint,
	)

	j.metrics.ObserveSummary(s)
	if j.Config.MetricsFile != "" {
		if err := j.metrics.WriteFile(j.Config.MetricsFile); err != nil {
			logger.Warn("Could not write metrics file", "file", j.Config.MetricsFile, "error", err)
		}
	}

	return report, nil
}
