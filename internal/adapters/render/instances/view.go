package instances

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type RenderOptions struct {
	Now time.Time
	// Limit caps the number of rendered instances; zero renders all of them.
	Limit int
}

var counts = message.NewPrinter(language.English)

func titled(s string) string {
	return cases.Title(language.English).String(s)
}

// Render lays out the instance list the way the terminal listing shows it.
func Render(instances []domain.Instance, opts RenderOptions) string {
	s := newStyles()
	lines := []string{
		s.title.Render("Minecraft Instances"),
		s.header.Render(counts.Sprintf("instances: %d", len(instances))),
	}

	if len(instances) == 0 {
		lines = append(lines, s.empty.Render("No instances found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	shown := instances
	if opts.Limit > 0 && len(shown) > opts.Limit {
		shown = shown[:opts.Limit]
	}
	for _, instance := range shown {
		lines = append(lines, s.section.Render(renderInstance(instance, opts, s)))
	}
	if hidden := len(instances) - len(shown); hidden > 0 {
		lines = append(lines, s.section.Render(s.empty.Render(counts.Sprintf("... and %d more", hidden))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderInstance(instance domain.Instance, opts RenderOptions, s styles) string {
	details := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.detail.Render(releaseLabel(instance.ReleaseID)),
		s.meta.Render(" · "),
		s.loader.Render(ModloaderLabel(instance.Modloader)),
		s.meta.Render(" · "),
		s.meta.Render(typeLabel(instance.Type)),
	)

	played := s.meta.Render("last played " + FormatLastPlayed(instance.LastPlayed, opts.Now))
	if instance.LastPlayed == nil {
		played = s.neverUsed.Render("never played")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.name.Render(instance.Name)+" "+s.meta.Render("("+instance.ID+")"),
		details,
		played,
	)
}

func releaseLabel(id string) string {
	if strings.TrimSpace(id) == "" {
		return "unknown version"
	}
	return "Minecraft " + id
}

var loaderNames = map[domain.ModloaderType]string{
	domain.ModloaderVanilla:    "Vanilla",
	domain.ModloaderForge:      "Forge",
	domain.ModloaderNeoForge:   "NeoForge",
	domain.ModloaderFabric:     "Fabric",
	domain.ModloaderQuilt:      "Quilt",
	domain.ModloaderLiteLoader: "LiteLoader",
}

// ModloaderLabel renders a loader as "Type version". Unknown types fall back
// to the producer's name for the loader.
func ModloaderLabel(loader domain.Modloader) string {
	name, ok := loaderNames[loader.Type]
	if !ok {
		name = strings.TrimSpace(loader.Name)
	}
	if name == "" {
		name = "Vanilla"
	}
	if loader.Version == "" || loader.Type == domain.ModloaderVanilla {
		return name
	}
	return name + " " + loader.Version
}

func typeLabel(t domain.InstanceType) string {
	switch t {
	case domain.InstanceTypeCurseForge:
		return "CurseForge"
	case domain.InstanceTypeMultiMC:
		return "MultiMC"
	default:
		return titled(string(t))
	}
}

// FormatLastPlayed renders a relative timestamp when now is known, and an
// absolute one otherwise.
func FormatLastPlayed(played *time.Time, now time.Time) string {
	if played == nil {
		return "never"
	}
	if now.IsZero() {
		return played.Format("2006-01-02 15:04")
	}

	elapsed := now.Sub(*played)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	case elapsed < 30*24*time.Hour:
		return plural(int(math.Floor(elapsed.Hours()/24)), "day") + " ago"
	default:
		return played.Format("02 Jan 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
