package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/appinstaller"
	"github.com/arthur-debert/dotstrap/pkg/applist"
	"github.com/arthur-debert/dotstrap/pkg/dotfiles"
	"github.com/arthur-debert/dotstrap/pkg/environment"
	"github.com/arthur-debert/dotstrap/pkg/output/styles"
	"github.com/arthur-debert/dotstrap/pkg/packagemanager"
	"github.com/pterm/pterm"
)

const labelWidth = 24

// Renderer writes human readable results to an io.Writer
type Renderer struct {
	w     io.Writer
	color bool
}

// New creates a Renderer that styles its output when w supports color
func New(w io.Writer) *Renderer {
	return &Renderer{w: w, color: ColorEnabled(w)}
}

// NewPlain creates a Renderer that never styles its output
func NewPlain(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Color reports whether the renderer applies styles
func (r *Renderer) Color() bool {
	return r.color
}

func (r *Renderer) style(name, text string) string {
	if !r.color {
		return text
	}
	return styles.Get(name).Render(text)
}

func (r *Renderer) label(text string) string {
	padded := fmt.Sprintf("%-*s", labelWidth, text)
	if !r.color {
		return padded
	}
	return styles.Get("Muted").Render(padded)
}

func (r *Renderer) println(args ...interface{}) {
	_, _ = fmt.Fprintln(r.w, args...)
}

func (r *Renderer) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

// Heading writes a section title
func (r *Renderer) Heading(title string) {
	if r.color {
		title = pterm.Bold.Sprint(title)
	}
	r.println(title)
}

// Success writes a line reporting something that went well
func (r *Renderer) Success(msg string) {
	r.println(r.style("Success", msg))
}

// Info writes an informational line
func (r *Renderer) Info(msg string) {
	r.println(r.style("Info", msg))
}

// Warning writes a warning line
func (r *Renderer) Warning(msg string) {
	r.println(r.style("Warning", "warning: "+msg))
}

// Error writes an error line
func (r *Renderer) Error(err error) {
	if err == nil {
		return
	}
	r.println(r.style("Error", "error: "+err.Error()))
}

// Result writes one package's outcome, followed by its warnings
func (r *Renderer) Result(res packagemanager.Result) {
	name := res.App.Name
	switch res.Decision {
	case packagemanager.Skipped:
		r.printf("  %s%s\n", r.label(string(res.Decision)), r.style("Skipped", name+" (already installed)"))
	case packagemanager.Failed:
		line := name
		if res.Err != nil {
			line += ": " + res.Err.Error()
		}
		r.printf("  %s%s\n", r.label(string(res.Decision)), r.style("Error", line))
	default:
		r.printf("  %s%s\n", r.label(string(res.Decision)), r.style("Success", name))
	}

	for _, w := range res.Warnings {
		r.printf("    %s\n", r.style("Warning", "warning: "+w.Error()))
	}
}

// AppsSummary writes the totals of an app installer run and lists what failed
func (r *Renderer) AppsSummary(s appinstaller.Summary) {
	r.println()
	r.Heading(fmt.Sprintf("Summary (mode: %s)", s.Mode))
	r.printf("  %s%d\n", r.label("installed"), len(s.Installed()))
	r.printf("  %s%d\n", r.label("skipped"), len(s.Skipped()))
	r.printf("  %s%d\n", r.label("failed"), len(s.Failed()))

	if warnings := s.Warnings(); len(warnings) > 0 {
		r.println()
		r.Heading("Warnings")
		for _, w := range warnings {
			r.printf("  %s\n", r.style("Warning", w.Error()))
		}
	}

	if failed := s.Failed(); len(failed) > 0 {
		r.println()
		r.Heading("Failed packages")
		for _, res := range failed {
			line := res.App.Name
			if res.Err != nil {
				line += ": " + res.Err.Error()
			}
			r.printf("  %s\n", r.style("Error", line))
		}
	}
}

// DotfilesReport writes every entry of a dotfiles run, the backups it made
// and the totals.
func (r *Renderer) DotfilesReport(rep dotfiles.Report) {
	if rep.DryRun {
		r.println(r.style("DryRunBanner", "Dry run: no changes will be made"))
	}

	r.Heading("Dotfiles from " + rep.SourceDir)
	for _, entry := range rep.Entries {
		r.dotfilesEntry(entry)
	}

	if backups := rep.Backups(); len(backups) > 0 {
		title := "Backups in "
		if rep.DryRun {
			title = "Planned backups in "
		}
		r.println()
		r.Heading(title + rep.BackupDir)
		for _, b := range backups {
			r.printf("  %s\n", b.String())
		}
		if rep.ManifestPath != "" {
			r.printf("  %s%s\n", r.label("manifest"), r.style("FilePath", rep.ManifestPath))
		}
	}
	if rep.ManifestErr != nil {
		r.Warning("backup manifest not written: " + rep.ManifestErr.Error())
	}

	r.println()
	r.Heading("Summary")
	if rep.DryRun {
		r.printf("  %s%d\n", r.label("would link"), rep.Count(dotfiles.PlannedLink))
		r.printf("  %s%d\n", r.label("would back up and link"), rep.Count(dotfiles.PlannedBackupAndLink))
		r.printf("  %s%d\n", r.label("already linked"), rep.Count(dotfiles.AlreadyLinked))
		return
	}
	r.printf("  %s%d\n", r.label("linked"), rep.Count(dotfiles.Linked))
	r.printf("  %s%d\n", r.label("backed up and linked"), rep.Count(dotfiles.BackedUpAndLinked))
	r.printf("  %s%d\n", r.label("already linked"), rep.Count(dotfiles.AlreadyLinked))
	r.printf("  %s%d\n", r.label("failed"), rep.Count(dotfiles.Failed))
}

func (r *Renderer) dotfilesEntry(entry dotfiles.EntryResult) {
	line := fmt.Sprintf("%s -> %s", entry.Mapping.Source, entry.Mapping.Target)

	styleName := "Success"
	switch entry.Outcome {
	case dotfiles.AlreadyLinked:
		styleName = "Skipped"
	case dotfiles.Failed:
		styleName = "Error"
		if entry.Err != nil {
			line += ": " + entry.Err.Error()
		}
	case dotfiles.PlannedLink, dotfiles.PlannedBackupAndLink:
		styleName = "Info"
	}

	r.printf("  %s%s\n", r.label(string(entry.Outcome)), r.style(styleName, line))
}

// Environment writes the detected environment classification
func (r *Renderer) Environment(c environment.Classification) {
	r.Heading("Environment")
	r.printf("  %s%s/%s\n", r.label("platform"), c.OS, c.Arch)
	r.printf("  %s%s\n", r.label("distro"), c.Distro)
	r.printf("  %s%t\n", r.label("root"), c.IsRoot)
	r.printf("  %s%t\n", r.label("sudo"), c.HasSudo)
	r.printf("  %s%s\n", r.label("brew"), r.optionalPath(c.HasBrew, c.BrewPath))
	r.printf("  %s%s\n", r.label("mamba"), r.optionalPath(c.HasMamba, c.MambaPath))
	r.printf("  %s%s\n", r.label("home"), r.style("FilePath", c.Home))
	r.printf("  %s%s\n", r.label("local bin"), r.style("FilePath", c.LocalBin))
	r.printf("  %s%s\n", r.label("auto mode"), autoMode(c))
}

func (r *Renderer) optionalPath(found bool, path string) string {
	if !found {
		return r.style("Muted", "not found")
	}
	return r.style("FilePath", path)
}

func autoMode(c environment.Classification) environment.Mode {
	mode, err := environment.SelectMode(string(environment.ModeAuto), c)
	if err != nil {
		return environment.ModeAuto
	}
	return mode
}

// List writes an app list with its packages in order
func (r *Renderer) List(name string, list applist.List) {
	r.Heading(fmt.Sprintf("%s (%d)", name, len(list)))
	if len(list) == 0 {
		r.println("  " + r.style("Muted", "empty"))
		return
	}
	r.println("  " + strings.Join(list, "\n  "))
}
