package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agusespa/chateval/internal/criteria"
	"github.com/agusespa/chateval/internal/types"
)

// LoadCampaigns loads campaign definitions from a YAML or JSON file
func LoadCampaigns(path string) ([]types.Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaign file at %s: %w", path, err)
	}

	var campaigns []types.Campaign
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &campaigns)
	} else {
		err = yaml.Unmarshal(data, &campaigns)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse campaign file %s: %w", path, err)
	}

	return campaigns, nil
}

// ValidateCampaign validates a single campaign
func ValidateCampaign(c types.Campaign) error {
	if c.Key == "" {
		return fmt.Errorf("missing required 'key' field")
	}
	if c.Dataset == "" {
		return fmt.Errorf("campaign %s: missing required 'dataset' field", c.Key)
	}
	if !c.Criteria.AnyChecked() {
		return fmt.Errorf("campaign %s: at least one criterion check must be enabled", c.Key)
	}
	if c.EvaluatorModel != "" && !criteria.IsKnownModel(c.EvaluatorModel) {
		return fmt.Errorf("campaign %s: unknown evaluator model '%s'", c.Key, c.EvaluatorModel)
	}
	if c.Runs < 0 {
		return fmt.Errorf("campaign %s: runs must not be negative", c.Key)
	}

	thresholds := []*float64{
		c.Criteria.AccuracyThreshold,
		c.Criteria.RelevanceThreshold,
		c.Criteria.CoherenceThreshold,
		c.Criteria.CompletenessThreshold,
		c.Criteria.ToxicityThreshold,
		c.Criteria.HallucinationThreshold,
		c.Criteria.OverallThreshold,
	}
	for _, th := range thresholds {
		if th != nil && (*th < 0 || *th > 5) {
			return fmt.Errorf("campaign %s: threshold %.2f outside [0,5]", c.Key, *th)
		}
	}
	return nil
}

// ValidateCampaigns validates every campaign and rejects duplicate keys
func ValidateCampaigns(campaigns []types.Campaign) error {
	if len(campaigns) == 0 {
		return fmt.Errorf("no campaigns found")
	}

	keys := make(map[string]bool)
	for _, c := range campaigns {
		if err := ValidateCampaign(c); err != nil {
			return err
		}

		if keys[c.Key] {
			return fmt.Errorf("duplicate campaign key: %s", c.Key)
		}
		keys[c.Key] = true
	}

	return nil
}

// FilterByKey filters campaigns by key, returns all if key is empty
func FilterByKey(campaigns []types.Campaign, key string) []types.Campaign {
	if key == "" {
		return campaigns
	}

	var filtered []types.Campaign
	for _, c := range campaigns {
		if c.Key == key {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func GetCampaignByKey(campaigns []types.Campaign, key string) (types.Campaign, error) {
	for _, c := range campaigns {
		if c.Key == key {
			return c, nil
		}
	}
	return types.Campaign{}, fmt.Errorf("campaign with key '%s' not found", key)
}

// DefaultRuns returns the number of runs for a campaign, defaulting to 1
func DefaultRuns(c types.Campaign) int {
	if c.Runs <= 0 {
		return 1
	}
	return c.Runs
}

func ListCampaignKeys(campaigns []types.Campaign) []string {
	keys := make([]string, len(campaigns))
	for i, c := range campaigns {
		keys[i] = c.Key
	}
	return keys
}

// ResolveDataset makes a relative dataset path relative to the campaign file
func ResolveDataset(campaignFile string, c types.Campaign) string {
	if filepath.IsAbs(c.Dataset) {
		return c.Dataset
	}
	return filepath.Join(filepath.Dir(campaignFile), c.Dataset)
}
