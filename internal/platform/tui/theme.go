package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tilematch/internal/core"
)

// Theme maps semantic screen colors to terminal styles, plus the styles used
// by the menu screens.
type Theme struct {
	Name   string
	Colors map[core.Color]lipgloss.Style

	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	HelpBar         lipgloss.Style
}

// Style returns the style for c, falling back to the default style.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.Colors[c]; ok {
		return s
	}
	return t.Colors[core.ColorDefault]
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DarkTheme returns the default theme for dark terminals.
func DarkTheme() Theme {
	return Theme{
		Name: "dark",
		Colors: map[core.Color]lipgloss.Style{
			core.ColorDefault:  lipgloss.NewStyle(),
			core.ColorText:     fg("252"),
			core.ColorMuted:    fg("240"),
			core.ColorAccent:   fg("51").Bold(true),
			core.ColorCursor:   fg("226").Bold(true),
			core.ColorSelected: fg("205").Bold(true),
			core.ColorHint:     fg("87"),
			core.ColorWarning:  fg("203"),
			core.ColorSuccess:  fg("46").Bold(true),
			core.ColorPower:    fg("255").Bold(true),

			core.ColorSymbol0: fg("226"), // Star
			core.ColorSymbol1: fg("196"),
			core.ColorSymbol2: fg("46"),
			core.ColorSymbol3: fg("33"),
			core.ColorSymbol4: fg("201"),
			core.ColorSymbol5: fg("208"),
			core.ColorSymbol6: fg("51"),
			core.ColorSymbol7: fg("135"),
		},
		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuDescription: fg("245"),
		HelpBar:         fg("241"),
	}
}

// LightTheme returns a theme readable on light backgrounds.
func LightTheme() Theme {
	return Theme{
		Name: "light",
		Colors: map[core.Color]lipgloss.Style{
			core.ColorDefault:  lipgloss.NewStyle(),
			core.ColorText:     fg("235"),
			core.ColorMuted:    fg("246"),
			core.ColorAccent:   fg("25").Bold(true),
			core.ColorCursor:   fg("160").Bold(true),
			core.ColorSelected: fg("127").Bold(true),
			core.ColorHint:     fg("31"),
			core.ColorWarning:  fg("124"),
			core.ColorSuccess:  fg("28").Bold(true),
			core.ColorPower:    fg("16").Bold(true),

			core.ColorSymbol0: fg("136"),
			core.ColorSymbol1: fg("160"),
			core.ColorSymbol2: fg("28"),
			core.ColorSymbol3: fg("20"),
			core.ColorSymbol4: fg("127"),
			core.ColorSymbol5: fg("166"),
			core.ColorSymbol6: fg("30"),
			core.ColorSymbol7: fg("55"),
		},
		MenuTitle:       fg("25").Bold(true),
		MenuItemNormal:  fg("237"),
		MenuItemActive:  fg("160").Bold(true),
		MenuDescription: fg("243"),
		HelpBar:         fg("244"),
	}
}

// Themes lists the available themes in toggle order.
func Themes() []Theme {
	return []Theme{DarkTheme(), LightTheme()}
}

// ThemeByName returns the named theme, or the dark theme if unknown.
func ThemeByName(name string) Theme {
	for _, t := range Themes() {
		if t.Name == name {
			return t
		}
	}
	return DarkTheme()
}

// NextTheme returns the theme after t in toggle order.
func NextTheme(t Theme) Theme {
	all := Themes()
	for i, candidate := range all {
		if candidate.Name == t.Name {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}
