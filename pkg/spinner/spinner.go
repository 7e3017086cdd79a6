package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const barWidth = 20

// Spinner animates a status line with an optional [i/n] progress bar
type Spinner struct {
	chars   []string
	delay   time.Duration
	out     io.Writer
	message string
	current int
	total   int
	active  bool
	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
}

func New(message string) *Spinner {
	return NewWithWriter(message, os.Stdout)
}

func NewWithWriter(message string, out io.Writer) *Spinner {
	return &Spinner{
		chars:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay:   100 * time.Millisecond,
		out:     out,
		message: message,
	}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.delay)
		defer ticker.Stop()
		for i := 0; ; i++ {
			s.mu.Lock()
			fmt.Fprintf(s.out, "\r%s %s", s.chars[i%len(s.chars)], s.lineLocked())
			s.mu.Unlock()

			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop halts the animation and clears the line. Safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	stop, done := s.stop, s.done
	width := len(s.lineLocked()) + 4
	s.mu.Unlock()

	close(stop)
	<-done

	s.mu.Lock()
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", width)+"\r")
	s.mu.Unlock()
}

func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// SetProgress records completed/total; a zero total hides the bar
func (s *Spinner) SetProgress(current, total int) {
	s.mu.Lock()
	s.current = current
	s.total = total
	s.mu.Unlock()
}

func (s *Spinner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Spinner) lineLocked() string {
	if s.total <= 0 {
		return s.message
	}
	return fmt.Sprintf("%s %s", Bar(s.current, s.total), s.message)
}

// Bar renders a fixed-width progress bar such as "[=====     ] 1/2"
func Bar(current, total int) string {
	if total <= 0 {
		return ""
	}
	if current < 0 {
		current = 0
	}
	if current > total {
		current = total
	}
	filled := current * barWidth / total
	return fmt.Sprintf("[%s%s] %d/%d", strings.Repeat("=", filled), strings.Repeat(" ", barWidth-filled), current, total)
}
