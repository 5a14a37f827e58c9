package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cinelingo/internal/ui/theme"
)

const bannerArt = `
  ██████╗██╗███╗   ██╗███████╗██╗     ██╗███╗   ██╗ ██████╗  ██████╗
 ██╔════╝██║████╗  ██║██╔════╝██║     ██║████╗  ██║██╔════╝ ██╔═══██╗
 ██║     ██║██╔██╗ ██║█████╗  ██║     ██║██╔██╗ ██║██║  ███╗██║   ██║
 ██║     ██║██║╚██╗██║██╔══╝  ██║     ██║██║╚██╗██║██║   ██║██║   ██║
 ╚██████╗██║██║ ╚████║███████╗███████╗██║██║ ╚████║╚██████╔╝╚██████╔╝
  ╚═════╝╚═╝╚═╝  ╚═══╝╚══════╝╚══════╝╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝`

const bannerCompact = "C I N E L I N G O"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 72

// RenderBanner returns the title in the primary color, falling back to
// spaced letters on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
