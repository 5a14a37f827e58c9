package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/exercise"
	"github.com/abhisek/cinelingo/internal/feedback"
)

// Color palette, a dim auditorium with marquee accents
var (
	Primary   = lipgloss.Color("#E11D48") // Curtain Red
	Secondary = lipgloss.Color("#FBBF24") // Marquee Gold
	Accent    = lipgloss.Color("#38BDF8") // Projector Blue
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0C0A09") // Stone Black
	BgCard    = lipgloss.Color("#1C1917") // Dark Stone
	Border    = lipgloss.Color("#44403C") // Stone
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Section = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(Border).
			Strikethrough(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Pending = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	Chip = lipgloss.NewStyle().
		Foreground(BgDark).
		Background(Secondary).
		Padding(0, 1)

	ChipHeld = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 1)
)

// ForVerdict returns the style used to mark an answer with verdict v.
func ForVerdict(v exercise.Verdict) lipgloss.Style {
	switch v {
	case exercise.Correct:
		return Correct
	case exercise.Incorrect:
		return Incorrect
	default:
		return Pending
	}
}

// ForFeedback returns the style of a feedback message of kind k.
func ForFeedback(k feedback.Kind) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 2)
	switch k {
	case feedback.Success:
		return base.Foreground(BgDark).Background(Success)
	case feedback.Failure:
		return base.Foreground(Text).Background(Error)
	default:
		return base.Foreground(BgDark).Background(Accent)
	}
}
