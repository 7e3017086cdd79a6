package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/agusespa/chateval/internal/types"
)

var ErrEmptyDataset = errors.New("dataset has no items")

// Dataset is a named list of question/expected/actual triples
type Dataset struct {
	ID    string       `json:"id" yaml:"id"`
	Name  string       `json:"name" yaml:"name"`
	Items []types.Item `json:"items" yaml:"items"`
}

// Load reads a dataset from a .json, .yaml/.yml or .csv file. JSON and YAML
// files may hold either a full dataset document or a bare list of items.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	var ds *Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		ds, err = decodeJSON(f)
	case ".yaml", ".yml":
		ds, err = decodeYAML(f)
	case ".csv":
		ds, err = decodeCSV(f)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}

	if ds.Name == "" {
		ds.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := ds.normalize(); err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	return ds, nil
}

// New builds a validated dataset from items already in memory
func New(name string, items []types.Item) (*Dataset, error) {
	ds := &Dataset{Name: name, Items: items}
	if err := ds.normalize(); err != nil {
		return nil, err
	}
	return ds, nil
}

func (d *Dataset) normalize() error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if len(d.Items) == 0 {
		return ErrEmptyDataset
	}
	for i, item := range d.Items {
		if strings.TrimSpace(item.Question) == "" {
			return fmt.Errorf("item %d is missing a question", i+1)
		}
	}
	return nil
}

func decodeJSON(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var ds Dataset
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal(data, &ds.Items)
	} else {
		err = json.Unmarshal(data, &ds)
	}
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

func decodeYAML(r io.Reader) (*Dataset, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, err
	}

	var ds Dataset
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	var err error
	if root.Kind == yaml.SequenceNode {
		err = root.Decode(&ds.Items)
	} else {
		err = root.Decode(&ds)
	}
	if err != nil {
		return nil, err
	}
	return &ds, nil
}

// CSVColumns is the header a CSV dataset must carry, in any order
var CSVColumns = []string{"question", "expected_answer", "actual_answer"}

func decodeCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range CSVColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", col)
		}
	}

	var ds Dataset
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}
		ds.Items = append(ds.Items, types.Item{
			Question:       record[index["question"]],
			ExpectedAnswer: record[index["expected_answer"]],
			ActualAnswer:   record[index["actual_answer"]],
		})
	}
	return &ds, nil
}
