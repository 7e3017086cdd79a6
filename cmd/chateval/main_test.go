package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agusespa/chateval/internal/types"
)

const testDataset = `
name: support
items:
  - question: When do you open?
    expected_answer: The store opens at 9 and closes at 18 on weekdays.
    actual_answer: The store opens at 9 and closes at 18 on weekdays.
  - question: Do you ship abroad?
    expected_answer: We ship to every country in Europe.
    actual_answer: Sorry, no idea.
`

type env struct {
	dir     string
	config  string
	dataset string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()

	config := filepath.Join(dir, "chateval.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
logging:
  level: error
evaluator:
  seed: 7
  jitter:
    enabled: false
storage:
  path: `+filepath.Join(dir, "store.db")+`
results:
  dir: `+filepath.Join(dir, "results")+`
`), 0644))

	dataset := filepath.Join(dir, "support.yaml")
	require.NoError(t, os.WriteFile(dataset, []byte(testDataset), 0644))

	return env{dir: dir, config: config, dataset: dataset}
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := buildRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBuildRootCmdIncludesSubcommands(t *testing.T) {
	cmd := buildRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	for _, name := range []string{"run", "campaign", "evaluate", "criteria", "summary", "compare", "export", "serve", "store", "version"} {
		assert.True(t, names[name], "expected subcommand %q to be registered", name)
	}
}

func TestRunCommand(t *testing.T) {
	e := newEnv(t)
	exportPath := filepath.Join(e.dir, "out", "results.csv")

	out, err := e.run(t, "run", e.dataset, "--accuracy", "--save", "--failures", "--export", exportPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Summary for support (gpt-4)")
	assert.Contains(t, out, "Total:         2")
	assert.Contains(t, out, "Failed items")
	assert.Contains(t, out, "Results saved to")

	saved, err := filepath.Glob(filepath.Join(e.dir, "results", "eval_support_gpt-4_*.json"))
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	f, err := os.Open(exportPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "5.0", rows[1][2], "identical answer scores 5 on accuracy")
	assert.Equal(t, "", rows[1][3], "relevance was not checked")

	out, err = e.run(t, "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary for support")

	out, err = e.run(t, "compare")
	require.NoError(t, err)
	assert.Contains(t, out, "Full Ranking")

	out, err = e.run(t, "export", saved[0], "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"totalTests": 2`)
}

func TestRunCommand_Detailed(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "run", e.dataset, "--detailed", "--model", "gpt-3.5-turbo")
	require.NoError(t, err)
	assert.Contains(t, out, "Detailed evaluation of support (gpt-3.5-turbo)")
	assert.Contains(t, out, "Estimated Cost: $0.0040")
}

func TestRunCommand_MissingDataset(t *testing.T) {
	e := newEnv(t)
	_, err := e.run(t, "run", filepath.Join(e.dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to load dataset")
}

func TestCampaignCommand(t *testing.T) {
	e := newEnv(t)
	campaigns := filepath.Join(e.dir, "campaigns.yaml")
	require.NoError(t, os.WriteFile(campaigns, []byte(`
- key: smoke
  description: two quick runs
  dataset: support.yaml
  runs: 2
  criteria:
    check_accuracy: true
    check_toxicity: true
`), 0644))

	out, err := e.run(t, "campaign", "--file", campaigns, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "smoke: two quick runs")

	out, err = e.run(t, "campaign", "--file", campaigns)
	require.NoError(t, err)
	assert.Contains(t, out, "Running 2 evaluations for campaign: smoke")
	assert.Contains(t, out, "Campaign Summary for smoke")

	saved, err := filepath.Glob(filepath.Join(e.dir, "results", "eval_smoke_gpt-4_2runs_*.json"))
	require.NoError(t, err)
	assert.Len(t, saved, 1)

	_, err = e.run(t, "campaign", "--file", campaigns, "--key", "nope")
	assert.ErrorContains(t, err, "campaign with key 'nope' not found")
}

func TestEvaluateCommand(t *testing.T) {
	e := newEnv(t)
	answer := "The capital of France is Paris"

	out, err := e.run(t, "evaluate", "-q", "Capital?", "-e", answer, "-a", answer, "--json")
	require.NoError(t, err)

	var res types.QuestionEvalResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.CriteriaScores, 8)
	assert.Equal(t, 5.0, res.CriteriaScores[types.CriterionAccuracy].Score)
	assert.NotEmpty(t, res.OverallAssessment)

	_, err = e.run(t, "evaluate", "-a", answer)
	assert.Error(t, err, "question is required")
}

func TestCriteriaCommand(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "criteria")
	require.NoError(t, err)
	assert.Contains(t, out, "accuracy")
	assert.Contains(t, out, "Overall threshold: 4.0")
	assert.Contains(t, out, "Enabled weight sum: 1.00")

	out, err = e.run(t, "criteria", "--models")
	require.NoError(t, err)
	assert.Contains(t, out, "gpt-4 (default)")
	assert.Contains(t, out, "claude-3-haiku")
}

func TestStoreCommands(t *testing.T) {
	e := newEnv(t)
	dump := filepath.Join(e.dir, "dump.json")
	require.NoError(t, os.WriteFile(dump, []byte(`{
		"chatbots": [{"id": "bot-1", "name": "Helpdesk"}],
		"datasets": [{"id": "ds-1", "name": "FAQ"}]
	}`), 0644))

	_, err := e.run(t, "store", "import", dump)
	require.NoError(t, err)

	out, err := e.run(t, "store", "list", "chatbots")
	require.NoError(t, err)
	assert.Contains(t, out, "bot-1\tHelpdesk")

	out, err = e.run(t, "store", "get", "datasets", "ds-1")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "FAQ"`)

	out, err = e.run(t, "store", "export")
	require.NoError(t, err)
	var exported map[string][]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	assert.Len(t, exported["chatbots"], 1)
	assert.Empty(t, exported["evaluations"])

	_, err = e.run(t, "store", "delete", "chatbots", "bot-1")
	require.NoError(t, err)
	_, err = e.run(t, "store", "get", "chatbots", "bot-1")
	assert.ErrorContains(t, err, "record not found")

	_, err = e.run(t, "store", "list", "users")
	assert.ErrorContains(t, err, "unknown collection")
}

func TestVersionCommand(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chateval version dev")
}
