// Package tables renders runtime and release listings as plain text tables.
package tables

import (
	"io"
	"strings"

	"github.com/bnema/yamcl/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
)

func newWriter(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	return t
}

// Runtimes renders runtimes in stored order; the index column is what the
// runtime subcommands take.
func Runtimes(out io.Writer, runtimes []domain.RuntimeConfig) {
	t := newRuntimeWriter(out)
	for i, runtime := range runtimes {
		t.AppendRow(runtimeRow(i, runtime))
	}
	t.Render()
}

// Runtime renders a single runtime under its stored index.
func Runtime(out io.Writer, index int, runtime domain.RuntimeConfig) {
	t := newRuntimeWriter(out)
	t.AppendRow(runtimeRow(index, runtime))
	t.Render()
}

func newRuntimeWriter(out io.Writer) table.Writer {
	t := newWriter(out)
	t.AppendHeader(table.Row{"#", "Label", "Path", "Version", "Releases", "JVM Args"})
	return t
}

func runtimeRow(index int, runtime domain.RuntimeConfig) table.Row {
	return table.Row{
		index,
		runtime.Label,
		runtime.Path,
		runtime.Version,
		runtime.Range.String(),
		strings.Join(runtime.JVMArgs(), " "),
	}
}

func Releases(out io.Writer, releases []domain.Release) {
	t := newWriter(out)
	t.AppendHeader(table.Row{"Release", "Type", "Released"})
	for _, release := range releases {
		t.AppendRow(table.Row{release.ID, string(release.Type), formatDate(release)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, AutoMerge: true},
	})
	t.Render()
}

func formatDate(release domain.Release) string {
	if release.ReleaseTime.IsZero() {
		return "unknown"
	}
	return release.ReleaseTime.Format("2006-01-02")
}
