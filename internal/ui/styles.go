package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hmans/authors/internal/author"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#6B7280") // Gray
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorDanger    = lipgloss.Color("#EF4444") // Red
	ColorMuted     = lipgloss.Color("#9CA3AF") // Light gray
	ColorBlue      = lipgloss.Color("#3B82F6") // Blue
	ColorPink      = lipgloss.Color("#EC4899") // Pink
)

// Text styles
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Muted     = lipgloss.NewStyle().Foreground(ColorMuted)
	Primary   = lipgloss.NewStyle().Foreground(ColorPrimary)
	Success   = lipgloss.NewStyle().Foreground(ColorSuccess)
	Warning   = lipgloss.NewStyle().Foreground(ColorWarning)
	Danger    = lipgloss.NewStyle().Foreground(ColorDanger)
	Secondary = lipgloss.NewStyle().Foreground(ColorSecondary)
)

// ID style - distinctive for author IDs
var ID = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true)

// Name style
var Name = lipgloss.NewStyle().Bold(true)

// Header style for section headers
var Header = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true).
	MarginBottom(1)

// Gender badge styles
var (
	GenderMale = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fff")).
			Background(ColorBlue).
			Padding(0, 1).
			Bold(true)

	GenderFemale = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fff")).
			Background(ColorPink).
			Padding(0, 1).
			Bold(true)

	GenderOther = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fff")).
			Background(ColorSecondary).
			Padding(0, 1)
)

// Placeholder is shown for fields that have no value.
const Placeholder = "—"

// RenderGender returns a styled gender badge, or a muted placeholder when unset.
func RenderGender(gender *string) string {
	if gender == nil || *gender == "" {
		return Muted.Render(Placeholder)
	}
	switch strings.ToUpper(*gender) {
	case "M":
		return GenderMale.Render(*gender)
	case "F":
		return GenderFemale.Render(*gender)
	default:
		return GenderOther.Render(*gender)
	}
}

// RenderGenderText returns gender text for tables (no background).
func RenderGenderText(gender *string) string {
	if gender == nil || *gender == "" {
		return Muted.Render(Placeholder)
	}
	switch strings.ToUpper(*gender) {
	case "M":
		return lipgloss.NewStyle().Foreground(ColorBlue).Bold(true).Render(*gender)
	case "F":
		return lipgloss.NewStyle().Foreground(ColorPink).Bold(true).Render(*gender)
	default:
		return Secondary.Render(*gender)
	}
}

// RenderAge returns the age, or a muted placeholder when unset.
func RenderAge(age *int) string {
	if age == nil {
		return Muted.Render(Placeholder)
	}
	return strconv.Itoa(*age)
}

// RenderTable renders authors as an aligned table with a header row.
func RenderTable(authors []*author.Author) string {
	maxIDWidth := 2 // minimum for "ID" header
	for _, a := range authors {
		if len(a.ID) > maxIDWidth {
			maxIDWidth = len(a.ID)
		}
	}
	maxIDWidth += 2 // padding

	idStyle := lipgloss.NewStyle().Width(maxIDWidth)
	ageStyle := lipgloss.NewStyle().Width(6)
	genderStyle := lipgloss.NewStyle().Width(9)
	nameStyle := lipgloss.NewStyle()
	headerCol := lipgloss.NewStyle().Foreground(ColorMuted)

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		idStyle.Render(headerCol.Render("ID")),
		ageStyle.Render(headerCol.Render("AGE")),
		genderStyle.Render(headerCol.Render("GENDER")),
		nameStyle.Render(headerCol.Render("NAME")),
	))
	sb.WriteString("\n")
	sb.WriteString(Muted.Render(strings.Repeat("─", maxIDWidth+6+9+30)))

	for _, a := range authors {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(ID.Render(a.ID)),
			ageStyle.Render(RenderAge(a.Info.Age)),
			genderStyle.Render(RenderGenderText(a.Info.Gender)),
			nameStyle.Render(truncate(a.Info.Name, 50)),
		))
	}
	return sb.String()
}

// RenderAuthor renders a single author as a header line plus detail rows.
func RenderAuthor(a *author.Author) string {
	var sb strings.Builder
	sb.WriteString(ID.Render(a.ID))
	sb.WriteString(" ")
	sb.WriteString(RenderGender(a.Info.Gender))
	sb.WriteString("\n")
	sb.WriteString(Name.Render(a.Info.Name))
	sb.WriteString("\n")
	sb.WriteString(Muted.Render("age: "))
	sb.WriteString(RenderAge(a.Info.Age))
	return sb.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
