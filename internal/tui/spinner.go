package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Spinner cycles through a fixed set of braille animation frames.
type Spinner struct {
	frames []string
	frame  int
}

func NewSpinner() *Spinner {
	return &Spinner{
		frames: []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"},
	}
}

// Next moves to the following frame, wrapping around.
func (s *Spinner) Next() {
	s.frame = (s.frame + 1) % len(s.frames)
}

func (s *Spinner) View() string {
	return s.frames[s.frame]
}

// LoadingIndicator is a spinner with a short caption describing the
// query in flight.
type LoadingIndicator struct {
	spinner *Spinner
	message string
}

func NewLoadingIndicator(message string) *LoadingIndicator {
	return &LoadingIndicator{
		spinner: NewSpinner(),
		message: message,
	}
}

// SetMessage swaps the caption without restarting the animation.
func (l *LoadingIndicator) SetMessage(message string) {
	l.message = message
}

// Tick advances one animation frame.
func (l *LoadingIndicator) Tick() {
	l.spinner.Next()
}

func (l *LoadingIndicator) View() string {
	spinnerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212"))
	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250"))

	return fmt.Sprintf("%s %s",
		spinnerStyle.Render(l.spinner.View()),
		messageStyle.Render(l.message))
}

// LoadingOverlay fills the given area with the indicator centered over
// a cancel hint.
func LoadingOverlay(width, height int, indicator *LoadingIndicator) string {
	cancelHint := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("[ESC to cancel]")

	content := fmt.Sprintf("%s\n\n%s", indicator.View(), cancelHint)

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(content)
}
