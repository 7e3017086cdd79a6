package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/agusespa/chateval/internal/types"
	"github.com/agusespa/chateval/pkg/logger"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type ResultsManager struct {
	resultsDir string
	logger     logger.Logger
}

func NewResultsManager(resultsDir string, log logger.Logger) *ResultsManager {
	if log == nil {
		log = logger.Nop()
	}
	return &ResultsManager{
		resultsDir: resultsDir,
		logger:     log,
	}
}

func (rm *ResultsManager) Dir() string {
	return rm.resultsDir
}

// SaveRun writes a single run and returns the file path
func (rm *ResultsManager) SaveRun(run *types.BatchRun) (string, error) {
	filename := fmt.Sprintf("eval_%s_%s_%d.json",
		safeName(run.Campaign), safeName(run.EvaluatorModel), run.StartTime.Unix())
	return rm.write(filename, run)
}

// SaveCampaign writes a campaign result; single-run campaigns are saved as a plain run
func (rm *ResultsManager) SaveCampaign(result *types.CampaignResult) (string, error) {
	if result.TotalRuns == 1 && len(result.IndividualRuns) == 1 {
		return rm.SaveRun(&result.IndividualRuns[0])
	}
	filename := fmt.Sprintf("eval_%s_%s_%druns_%d.json",
		safeName(result.Campaign), safeName(result.EvaluatorModel), result.TotalRuns, result.StartTime.Unix())
	return rm.write(filename, result)
}

func (rm *ResultsManager) write(filename string, v any) (string, error) {
	if err := os.MkdirAll(rm.resultsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory at %s: %w", rm.resultsDir, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	path := filepath.Join(rm.resultsDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write results file to %s: %w", path, err)
	}

	rm.logger.Info("results saved", "path", path)
	return path, nil
}

// LoadRuns loads every run in the results directory, expanding multi-run
// campaign files into their individual runs. Runs are sorted by start time.
func (rm *ResultsManager) LoadRuns() ([]types.BatchRun, error) {
	files, err := filepath.Glob(filepath.Join(rm.resultsDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob for json files in %s: %w", rm.resultsDir, err)
	}

	var runs []types.BatchRun
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read result file %s: %w", file, err)
		}

		var probe struct {
			IndividualRuns []types.BatchRun `json:"individual_runs"`
		}
		if err := json.Unmarshal(data, &probe); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result file %s: %w", file, err)
		}
		if len(probe.IndividualRuns) > 0 {
			runs = append(runs, probe.IndividualRuns...)
			continue
		}

		var run types.BatchRun
		if err := json.Unmarshal(data, &run); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result file %s: %w", file, err)
		}
		runs = append(runs, run)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartTime.Before(runs[j].StartTime)
	})
	return runs, nil
}

func safeName(s string) string {
	s = unsafeFileChars.ReplaceAllString(s, "-")
	if s == "" {
		return "unnamed"
	}
	return s
}
