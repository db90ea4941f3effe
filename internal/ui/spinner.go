package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/imgajeed76/mojifix/internal/ui/styles"
	"golang.org/x/term"
)

// IsTTY reports whether stdout is an interactive terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Spinner provides a simple animated spinner for long operations
type Spinner struct {
	message string
	out     io.Writer
	done    chan struct{}
	wg      sync.WaitGroup
	static  bool
}

// NewSpinner creates a new spinner with the given message
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stdout,
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation in the background
func (s *Spinner) Start() {
	// Accessible mode or non-TTY: just print static message
	if styles.IsAccessible() || !IsTTY() {
		s.static = true
		fmt.Fprintln(s.out, s.message+"...")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		style := lipgloss.NewStyle().Foreground(styles.Accent)
		i := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				// Clear the spinner line
				fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
				frame := style.Render(frames[i%len(frames)])
				fmt.Fprintf(s.out, "\r%s %s", frame, s.message)
				i++
			}
		}
	}()
}

// Stop stops the spinner and waits for the line to be cleared
func (s *Spinner) Stop() {
	close(s.done)
	s.wg.Wait()
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(msg string) {
	s.Stop()
	fmt.Fprintln(s.out, styles.SuccessMsg(msg))
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(msg string) {
	s.Stop()
	fmt.Fprintln(s.out, styles.ErrorMsg(msg))
}

// ══════════════════════════════════════════════════════════════════════════
// Progress bar for operations with known progress
// ══════════════════════════════════════════════════════════════════════════

// Progress represents a progress bar. Increment may be called from several
// goroutines.
type Progress struct {
	mu      sync.Mutex
	out     io.Writer
	total   int
	current int
	label   string
	width   int
	plain   bool
}

// NewProgress creates a new progress bar
func NewProgress(label string, total int) *Progress {
	return &Progress{
		out:   os.Stdout,
		label: label,
		total: total,
		width: 30,
		plain: styles.IsAccessible() || !IsTTY(),
	}
}

// Increment increments progress by 1
func (p *Progress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current++
	p.render()
}

func (p *Progress) render() {
	if p.total <= 0 {
		return
	}

	// Accessible mode or non-TTY: print simple text progress
	if p.plain {
		pct := p.current * 100 / p.total
		prev := (p.current - 1) * 100 / p.total
		// Print every 10% to avoid spam
		if pct/10 != prev/10 || p.current == p.total {
			fmt.Fprintf(p.out, "%s: %d%% (%d of %d)\n", p.label, pct, p.current, p.total)
		}
		return
	}

	pct := float64(p.current) / float64(p.total)
	filled := int(pct * float64(p.width))
	empty := p.width - filled

	bar := lipgloss.NewStyle().Foreground(styles.Success).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(styles.Muted).Render(strings.Repeat("░", empty))

	fmt.Fprintf(p.out, "\r%s %s %3d%% [%d/%d]", p.label, bar, int(pct*100), p.current, p.total)
}

// Done finishes the progress bar
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.plain && p.total > 0 {
		fmt.Fprintln(p.out)
	}
}
