package sessionlist

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentdeck/agentdeck/pkg/models"
)

func TestMain(m *testing.M) {
	// Color assertions need a fixed profile; CI terminals report Ascii.
	lipgloss.SetColorProfile(termenv.ANSI256)
	m.Run()
}

func testSessions() []models.SessionSummary {
	base := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.Local)
	return []models.SessionSummary{
		{ID: "s1", DisplayName: "Build pipeline", LastUpdated: base, StepCount: 3, Status: models.StatusActive},
		{ID: "s2", DisplayName: "Dependency audit", LastUpdated: base.Add(-time.Hour), StepCount: 5, Status: models.StatusCompleted},
		{ID: "s3", DisplayName: "Flaky tests", LastUpdated: base.Add(-2 * time.Hour), StepCount: 21, Status: models.StatusError},
		{ID: "s4", DisplayName: "Spike", LastUpdated: base.Add(-3 * time.Hour), StepCount: 1, Status: models.Status("paused")},
	}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRowCountMatchesInput(t *testing.T) {
	sessions := testSessions()
	m := New(WithSessions(sessions))

	rows := m.rows()
	require.Len(t, rows, len(sessions))

	// Input order is preserved, never re-sorted.
	for i, s := range sessions {
		assert.Contains(t, rows[i], s.DisplayName)
	}
}

func TestEmptySequenceRendersEmpty(t *testing.T) {
	m := New(WithSessions([]models.SessionSummary{}))
	assert.Empty(t, m.rows())

	_, ok := m.Hovered()
	assert.False(t, ok)
}

func TestOmittedSessionsFallBackToSample(t *testing.T) {
	m := New()
	assert.NotEmpty(t, m.Sessions())
}

func TestStatusColors(t *testing.T) {
	assert.Equal(t, lipgloss.Color("39"), StatusColor(models.StatusActive))
	assert.Equal(t, lipgloss.Color("42"), StatusColor(models.StatusCompleted))
	assert.Equal(t, lipgloss.Color("196"), StatusColor(models.StatusError))
	assert.Equal(t, lipgloss.Color("245"), StatusColor(models.Status("paused")))
	assert.Equal(t, lipgloss.Color("245"), StatusColor(models.Status("")))
}

func TestIndicatorColorInRow(t *testing.T) {
	m := New(WithSessions(testSessions()))
	rows := m.rows()

	assert.Contains(t, rows[0], "38;5;39", "active row should carry the blue dot")
	assert.Contains(t, rows[1], "38;5;42", "completed row should carry the green dot")
	assert.Contains(t, rows[2], "38;5;196", "error row should carry the red dot")
	assert.Contains(t, rows[3], "38;5;245", "unknown state should carry the default dot")
}

func TestCurrentSessionHighlight(t *testing.T) {
	m := New(
		WithSessions(testSessions()),
		WithCurrentSession("s2"),
	)
	rows := m.rows()

	assert.Contains(t, rows[1], "48;5;63", "current session should carry the highlight background")
	for i, row := range rows {
		if i == 1 {
			continue
		}
		assert.NotContains(t, row, "48;5;63")
	}
}

func TestCursorMarksHoveredRow(t *testing.T) {
	m := New(WithSessions(testSessions()))
	rows := m.rows()
	assert.True(t, strings.HasPrefix(rows[0], "> "))
	assert.True(t, strings.HasPrefix(rows[1], "  "))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	rows = m.rows()
	assert.True(t, strings.HasPrefix(rows[0], "  "))
	assert.True(t, strings.HasPrefix(rows[1], "> "))
}

func TestCursorClamping(t *testing.T) {
	m := New(WithSessions(testSessions()[:2]))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	hovered, _ := m.Hovered()
	assert.Equal(t, "s1", hovered.ID)

	for i := 0; i < 5; i++ {
		m, _ = m.Update(keyRune('j'))
	}
	hovered, _ = m.Hovered()
	assert.Equal(t, "s2", hovered.ID)
}

func TestSelectInvokesCallbackExactlyOnce(t *testing.T) {
	var got []string
	m := New(
		WithSessions(testSessions()),
		WithOnSelect(func(id string) { got = append(got, id) }),
	)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, []string{"s1"}, got)

	require.NotNil(t, cmd)
	msg, ok := cmd().(SelectMsg)
	require.True(t, ok)
	assert.Equal(t, "s1", msg.ID)
}

func TestSelectWithoutCallbackIsNoOp(t *testing.T) {
	m := New(WithSessions(testSessions()))
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectMsg{ID: "s1"}, cmd())
}

func TestSelectOnEmptyListIsNoOp(t *testing.T) {
	calls := 0
	m := New(
		WithSessions([]models.SessionSummary{}),
		WithOnSelect(func(string) { calls++ }),
	)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Zero(t, calls)
}

func TestTrailingActionFiresOnce(t *testing.T) {
	var selected, trailed []string
	m := New(
		WithSessions(testSessions()),
		WithOnSelect(func(id string) { selected = append(selected, id) }),
		WithTrailingAction([]string{"x"}, "x: close", func(id string) { trailed = append(trailed, id) }),
	)

	m, cmd := m.Update(keyRune('x'))
	assert.Equal(t, []string{"s1"}, selected, "trailing activation invokes the select callback once")
	assert.Equal(t, []string{"s1"}, trailed)

	require.NotNil(t, cmd)
	assert.Equal(t, TrailingMsg{ID: "s1"}, cmd())
}

func TestTrailingActionSuppressesRowActivation(t *testing.T) {
	// Bind the trailing action to the row's own activation key: the
	// select callback must still fire exactly once.
	var selected []string
	trailed := 0
	m := New(
		WithSessions(testSessions()),
		WithOnSelect(func(id string) { selected = append(selected, id) }),
		WithTrailingAction([]string{"enter"}, "close", func(string) { trailed++ }),
	)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"s1"}, selected)
	assert.Equal(t, 1, trailed)

	require.NotNil(t, cmd)
	_, isTrailing := cmd().(TrailingMsg)
	assert.True(t, isTrailing, "row activation must not also fire when trailing handled the key")
}

func TestRowWrapperReceivesHoverFlag(t *testing.T) {
	var flags []bool
	m := New(
		WithSessions(testSessions()[:2]),
		WithRowWrapper(func(row string, hovered bool) string {
			flags = append(flags, hovered)
			return "[" + row + "]"
		}),
	)

	rows := m.rows()
	assert.Equal(t, []bool{true, false}, flags)
	for _, row := range rows {
		assert.True(t, strings.HasPrefix(row, "["))
		assert.True(t, strings.HasSuffix(row, "]"))
	}
}

func TestContainerStyleApplied(t *testing.T) {
	style := lipgloss.NewStyle().Background(lipgloss.Color("17"))
	m := New(
		WithSessions(testSessions()),
		WithContainerStyle(style),
	)
	assert.Contains(t, m.View(), "48;5;17")
}

func TestFormatSubtitle(t *testing.T) {
	at := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.Local)
	got := FormatSubtitle(3, at)

	assert.Equal(t, "3 steps • Mar 5, 02:07 PM", got)
	assert.NotContains(t, got, "2024", "subtitle never carries a year")
}

func TestFormatSubtitleMorning(t *testing.T) {
	at := time.Date(2025, time.December, 31, 9, 5, 59, 0, time.Local)
	got := FormatSubtitle(1, at)

	assert.Equal(t, "1 steps • Dec 31, 09:05 AM", got)
	assert.NotContains(t, got, "59", "subtitle never carries seconds")
}

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "Active", StateLabel(models.StatusActive))
	assert.Equal(t, "Completed", StateLabel(models.StatusCompleted))
	assert.Equal(t, "Error", StateLabel(models.StatusError))
	assert.Equal(t, "Paused", StateLabel(models.Status("paused")))
	assert.Equal(t, "", StateLabel(models.Status("")))
}

func TestExampleRow(t *testing.T) {
	m := New(WithSessions([]models.SessionSummary{{
		ID:          "s1",
		DisplayName: "Build pipeline",
		LastUpdated: time.Date(2024, time.March, 5, 14, 7, 0, 0, time.Local),
		StepCount:   3,
		Status:      models.StatusActive,
	}}))

	row := m.rows()[0]
	assert.Contains(t, row, "Build pipeline")
	assert.Contains(t, row, "3 steps • Mar 5, 02:07 PM")
	assert.Contains(t, row, "Active")
	assert.Contains(t, row, "38;5;39")
}

func TestWrapText(t *testing.T) {
	lines := wrapText("This is a long text that should be wrapped at the specified width", 20)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 20)
	}

	assert.Equal(t, []string{"unbroken"}, wrapText("unbroken", 0))
	assert.Equal(t, []string{""}, wrapText("", 20))
}

func TestScrollFollowsCursor(t *testing.T) {
	sessions := make([]models.SessionSummary, 20)
	for i := range sessions {
		sessions[i] = models.SessionSummary{
			ID:          fmt.Sprintf("s%02d", i+1),
			DisplayName: fmt.Sprintf("SESSION%02d", i+1),
			LastUpdated: time.Date(2024, time.March, 5, 14, 7, 0, 0, time.Local),
			StepCount:   i + 1,
			Status:      models.StatusActive,
		}
	}
	m := New(WithSessions(sessions))
	m.SetSize(40, 9)

	// Scroll well past the bottom of the viewport.
	for i := 0; i < 19; i++ {
		m, _ = m.Update(keyRune('j'))
	}
	hovered, _ := m.Hovered()
	assert.Equal(t, "s20", hovered.ID)
	assert.Contains(t, m.View(), hovered.DisplayName, "hovered session must be visible after scrolling down")

	// And back up into the middle of the list.
	for i := 0; i < 9; i++ {
		m, _ = m.Update(keyRune('k'))
	}
	hovered, _ = m.Hovered()
	assert.Equal(t, "s11", hovered.ID)
	assert.Contains(t, m.View(), hovered.DisplayName, "hovered session must be visible after scrolling back up")
}

func TestLongNameWrapsNotTruncates(t *testing.T) {
	name := "A very long session display name that cannot possibly fit on one line"
	m := New(WithSessions([]models.SessionSummary{{ID: "s1", DisplayName: name, LastUpdated: time.Now()}}))
	m.SetSize(30, 10)

	row := m.rows()[0]
	for _, word := range strings.Fields(name) {
		assert.Contains(t, row, word)
	}
	assert.Greater(t, lipgloss.Height(row), 3, "long names spill onto continuation lines")
}
