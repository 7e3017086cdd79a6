package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agusespa/chateval/internal/types"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantID   string
		wantName string
		first    types.Item
		count    int
	}{
		{
			name: "json document",
			file: "support.json",
			content: `{"id": "ds-1", "name": "Support", "items": [
				{"question": "Hours?", "expectedAnswer": "9 to 5", "actualAnswer": "We open 9 to 5"},
				{"question": "Refunds?", "expectedAnswer": "30 days", "actualAnswer": "Within 30 days"}
			]}`,
			wantID:   "ds-1",
			wantName: "Support",
			first:    types.Item{Question: "Hours?", ExpectedAnswer: "9 to 5", ActualAnswer: "We open 9 to 5"},
			count:    2,
		},
		{
			name:     "json list",
			file:     "faq.json",
			content:  `[{"question": "Hi?", "expectedAnswer": "Hello", "actualAnswer": "Hello there"}]`,
			wantName: "faq",
			first:    types.Item{Question: "Hi?", ExpectedAnswer: "Hello", ActualAnswer: "Hello there"},
			count:    1,
		},
		{
			name: "yaml document",
			file: "bank.yaml",
			content: `
name: Bank
items:
  - question: Interest rate?
    expected_answer: 5 percent
    actual_answer: The rate is 5 percent
`,
			wantName: "Bank",
			first:    types.Item{Question: "Interest rate?", ExpectedAnswer: "5 percent", ActualAnswer: "The rate is 5 percent"},
			count:    1,
		},
		{
			name: "yaml list",
			file: "list.yml",
			content: `
- question: A?
  expected_answer: a
  actual_answer: a
- question: B?
  expected_answer: b
  actual_answer: c
`,
			wantName: "list",
			first:    types.Item{Question: "A?", ExpectedAnswer: "a", ActualAnswer: "a"},
			count:    2,
		},
		{
			name:     "csv with reordered columns",
			file:     "shop.csv",
			content:  "actual_answer,Question,expected_answer\n\"Yes, we ship\",Do you ship?,We ship worldwide\n",
			wantName: "shop",
			first:    types.Item{Question: "Do you ship?", ExpectedAnswer: "We ship worldwide", ActualAnswer: "Yes, we ship"},
			count:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Load(write(t, tt.file, tt.content))
			require.NoError(t, err)

			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, ds.ID)
			} else {
				assert.NotEmpty(t, ds.ID)
			}
			assert.Equal(t, tt.wantName, ds.Name)
			require.Len(t, ds.Items, tt.count)
			assert.Equal(t, tt.first, ds.Items[0])
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
		is      error
	}{
		{name: "empty json list", file: "a.json", content: `[]`, is: ErrEmptyDataset},
		{name: "empty yaml", file: "a.yaml", content: ``, is: ErrEmptyDataset},
		{name: "header-only csv", file: "a.csv", content: "question,expected_answer,actual_answer\n", is: ErrEmptyDataset},
		{name: "missing question", file: "a.json", content: `[{"question": " ", "expectedAnswer": "x"}]`, wantErr: "item 1 is missing a question"},
		{name: "missing csv column", file: "a.csv", content: "question,actual_answer\nq,a\n", wantErr: `missing column "expected_answer"`},
		{name: "bad json", file: "a.json", content: `{`, wantErr: "failed to parse dataset"},
		{name: "unsupported", file: "a.txt", content: `x`, wantErr: `unsupported dataset format ".txt"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.file, tt.content))
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), err.Error())
			}
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open dataset")
}

func TestNew(t *testing.T) {
	ds, err := New("inline", []types.Item{{Question: "q"}})
	require.NoError(t, err)
	assert.Equal(t, "inline", ds.Name)
	assert.NotEmpty(t, ds.ID)

	_, err = New("empty", nil)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}
