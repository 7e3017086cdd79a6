package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agusespa/chateval/internal/criteria"
	"github.com/agusespa/chateval/internal/evaluation"
	"github.com/agusespa/chateval/internal/scoring"
	"github.com/agusespa/chateval/internal/types"
	"github.com/agusespa/chateval/pkg/config"
	"github.com/agusespa/chateval/pkg/logger"
	"github.com/agusespa/chateval/pkg/spinner"
)

const defaultConfigName = "chateval.yaml"

// app bundles what every command needs after configuration is loaded
type app struct {
	cfg    *config.Config
	logger logger.Logger
}

func resolveConfigPath(path string) string {
	if strings.TrimSpace(path) != "" {
		return path
	}
	if env := strings.TrimSpace(os.Getenv("CHATEVAL_CONFIG")); env != "" {
		return env
	}
	if _, err := os.Stat(defaultConfigName); err == nil {
		return defaultConfigName
	}
	return ""
}

func loadApp() (*app, error) {
	cfg, err := config.LoadConfig(resolveConfigPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &app{cfg: cfg, logger: logger.New(cfg.Logging)}, nil
}

func (a *app) newRunner() *evaluation.Runner {
	ev := a.cfg.Evaluator

	jitter := scoring.ZeroJitter()
	if ev.Jitter.Enabled {
		jitter = scoring.Jitter{Enabled: true, Amplitude: ev.Jitter.Amplitude}
	}
	scorer := scoring.NewHeuristicScorer(scoring.NewRandom(ev.Seed), jitter)

	return evaluation.NewRunner(scorer, evaluation.Options{
		Delay:               ev.Delay,
		Concurrency:         ev.Concurrency,
		StrictCoherenceFlag: ev.StrictCoherence,
		EvaluatorModel:      ev.Model,
	}, a.logger)
}

// thresholds returns the per-criterion table from the config file
func (a *app) thresholds() map[types.CriterionID]float64 {
	out := make(map[types.CriterionID]float64)
	for name, v := range a.cfg.Thresholds {
		if name == "overall" {
			continue
		}
		out[types.CriterionID(name)] = v
	}
	return out
}

func (a *app) overallThreshold() *float64 {
	if v, ok := a.cfg.Threshold("overall"); ok {
		return types.Float(v)
	}
	return nil
}

// applyThresholds fills unset thresholds of checks from the config file
func (a *app) applyThresholds(checks types.EvaluationCriteria) types.EvaluationCriteria {
	checks = criteria.WithDefaults(checks, a.thresholds())
	if checks.OverallThreshold == nil {
		checks.OverallThreshold = a.overallThreshold()
	}
	return checks
}

func (a *app) resultsManager() *evaluation.ResultsManager {
	return evaluation.NewResultsManager(a.cfg.Results.Dir, a.logger)
}

// progress returns a spinner driven by the runner's progress callback
func progress(w io.Writer, message string) (*spinner.Spinner, evaluation.ProgressFunc) {
	s := spinner.NewWithWriter(message, w)
	return s, func(current, total int) {
		s.SetProgress(current, total)
	}
}
