package spinner

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNew(t *testing.T) {
	s := New("Testing spinner")
	assert.Equal(t, "Testing spinner", s.message)
	assert.False(t, s.Active())
	assert.NotEmpty(t, s.chars)
	assert.NotZero(t, s.delay)
}

func TestSpinnerStartStop(t *testing.T) {
	out := &syncBuffer{}
	s := NewWithWriter("Scoring", out)

	s.Start()
	assert.True(t, s.Active())
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	assert.False(t, s.Active())
	assert.Contains(t, out.String(), "Scoring")
}

func TestSpinnerDoubleStartStop(t *testing.T) {
	s := NewWithWriter("Scoring", &syncBuffer{})

	s.Start()
	s.Start()
	assert.True(t, s.Active())

	s.Stop()
	s.Stop()
	assert.False(t, s.Active())

	s.Start()
	assert.True(t, s.Active(), "spinner can be restarted")
	s.Stop()
}

func TestSpinnerUpdateWhileRunning(t *testing.T) {
	out := &syncBuffer{}
	s := NewWithWriter("Initial", out)
	s.delay = time.Millisecond

	s.Start()
	s.Update("Updated")
	s.SetProgress(2, 4)
	time.Sleep(20 * time.Millisecond)
	s.Stop()

	assert.Contains(t, out.String(), "Updated")
	assert.Contains(t, out.String(), "2/4")
}

func TestBar(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    string
	}{
		{"empty", 0, 4, "[" + strings.Repeat(" ", 20) + "] 0/4"},
		{"half", 2, 4, "[" + strings.Repeat("=", 10) + strings.Repeat(" ", 10) + "] 2/4"},
		{"full", 3, 3, "[" + strings.Repeat("=", 20) + "] 3/3"},
		{"overflow clamped", 5, 3, "[" + strings.Repeat("=", 20) + "] 3/3"},
		{"no total", 1, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bar(tt.current, tt.total))
		})
	}
}
