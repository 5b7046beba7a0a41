package services

import (
	"context"
	"time"

	"github.com/esalabs/controltower/modules/catalog/domain/program"
	"github.com/esalabs/controltower/modules/monitoring/domain/executionlog"
	"github.com/esalabs/controltower/pkg/serrors"
)

// Snapshot is the daily health readout of the registry and its sync jobs.
type Snapshot struct {
	Date               string  `json:"date"`
	CompletenessPct    float64 `json:"completeness_pct"`
	ConflictPct        float64 `json:"conflict_pct"`
	MeanLatencyMinutes float64 `json:"mean_latency_minutes"`
}

// CompletenessPct is the share of programs with every required registry
// field populated. An empty registry scores 0, not an error.
func CompletenessPct(programs []*program.Program) float64 {
	if len(programs) == 0 {
		return 0
	}
	var complete int
	for _, p := range programs {
		if p.Complete() {
			complete++
		}
	}
	return float64(complete) / float64(len(programs)) * 100
}

// ConflictPct is the share of programs marked Active whose current window
// is Closed. The comparison is exact; casing variants do not count.
func ConflictPct(programs []*program.Program) float64 {
	if len(programs) == 0 {
		return 0
	}
	var conflicting int
	for _, p := range programs {
		if p.Conflicting() {
			conflicting++
		}
	}
	return float64(conflicting) / float64(len(programs)) * 100
}

// MeanLatencyMinutes averages the recorded durations of the given runs,
// skipping runs without one. No recorded durations yields 0.
func MeanLatencyMinutes(logs []*executionlog.ExecutionLog) float64 {
	var sum int64
	var n int
	for _, log := range logs {
		if log.DurationMs == nil {
			continue
		}
		sum += *log.DurationMs
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n) / 60000
}

type KPIService struct {
	programs   program.Repository
	logs       executionlog.Repository
	sampleSize int
}

func NewKPIService(programs program.Repository, logs executionlog.Repository, sampleSize int) *KPIService {
	return &KPIService{programs: programs, logs: logs, sampleSize: sampleSize}
}

// Snapshot computes all KPIs over the current registry and the most recent
// job runs.
func (s *KPIService) Snapshot(ctx context.Context) (*Snapshot, error) {
	programs, err := s.programs.ListAll(ctx)
	if err != nil {
		return nil, serrors.WrapStore(err)
	}
	logs, err := s.logs.ListRecent(ctx, s.sampleSize, 0)
	if err != nil {
		return nil, serrors.WrapStore(err)
	}

	return &Snapshot{
		Date:               time.Now().UTC().Format(time.DateOnly),
		CompletenessPct:    CompletenessPct(programs),
		ConflictPct:        ConflictPct(programs),
		MeanLatencyMinutes: MeanLatencyMinutes(logs),
	}, nil
}
