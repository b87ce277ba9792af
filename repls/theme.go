package repls

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name   string
	Green  lipgloss.Color
	Blue   lipgloss.Color
	Red    lipgloss.Color
	Accent lipgloss.Color
}

var (
	Dark = &Theme{
		Name:   "dark",
		Green:  "#4E9A06",
		Blue:   "#3465A4",
		Red:    "#CC0000",
		Accent: "#C4A000",
	}
	Light = &Theme{
		Name:   "light",
		Green:  "#008000",
		Blue:   "#0000FF",
		Red:    "#FF0000",
		Accent: "#AA5500",
	}
)

func (t *Theme) Toggle() *Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// painter renders text in theme colors. A nil renderer paints nothing.
type painter struct {
	renderer *lipgloss.Renderer
	theme    *Theme
}

func (p painter) paint(color lipgloss.Color, text string) string {
	if p.renderer == nil || text == "" {
		return text
	}
	return p.renderer.NewStyle().Foreground(color).Render(text)
}

func (p painter) prompt(prompt string, shell bool) string {
	if !shell {
		return prompt
	}
	userHost, dir, ok := strings.Cut(prompt, ":")
	if !ok {
		return p.paint(p.theme.Green, prompt)
	}
	return p.paint(p.theme.Green, userHost+":") + p.paint(p.theme.Blue, dir)
}

func (p painter) error(text string) string {
	return p.paint(p.theme.Red, text)
}

func (p painter) notice(text string) string {
	return p.paint(p.theme.Accent, text)
}
