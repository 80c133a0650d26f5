package report

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/graphlayers/pkg/layers"
	"github.com/matzehuels/graphlayers/pkg/render"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

var (
	// ErrUnknownFormat is returned for a format outside [Formats].
	ErrUnknownFormat = errors.New("report: unknown format")

	// ErrGraphRequired is returned when a graph format is requested without
	// a graph to read edges from.
	ErrGraphRequired = errors.New("report: format requires the graph")
)

// Formats lists the supported output formats.
func Formats() []string { return []string{FormatText, FormatJSON, FormatDOT, FormatSVG} }

// ValidFormat reports whether f names a supported format.
func ValidFormat(f string) bool {
	switch f {
	case FormatText, FormatJSON, FormatDOT, FormatSVG:
		return true
	}
	return false
}

// Options configures a report.
type Options struct {
	// Format selects the output format. Empty means text.
	Format string
	// Labels are used by the text format. The zero value means English.
	Labels Labels
	// Graph supplies edges for the dot and svg formats.
	Graph render.Neighborer
	// Detailed adds layer indices to diagram node labels.
	Detailed bool
}

func (o Options) format() string {
	if o.Format == "" {
		return FormatText
	}
	return strings.ToLower(o.Format)
}

func (o Options) labels() Labels {
	if o.Labels == (Labels{}) {
		return English
	}
	return o.Labels
}

// Render writes m to w in the requested format.
func Render(ctx context.Context, w io.Writer, m *layers.Map, opts Options) error {
	switch f := opts.format(); f {
	case FormatText:
		return WriteText(w, m, opts.labels())
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatDOT, FormatSVG:
		if opts.Graph == nil {
			return fmt.Errorf("%w: %s", ErrGraphRequired, f)
		}
		dot := render.ToDOT(opts.Graph, m, render.Options{Detailed: opts.Detailed})
		if f == FormatDOT {
			_, err := io.WriteString(w, dot)
			return err
		}
		svg, err := render.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	default:
		return fmt.Errorf("%w: %q (available: %s)", ErrUnknownFormat, opts.Format, strings.Join(Formats(), ", "))
	}
}

// WriteFile renders m and replaces path with the result. The report is
// rendered into a temporary file in the same directory and renamed into
// place, so path holds either the old or the complete new report.
func WriteFile(ctx context.Context, path string, m *layers.Map, opts Options) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	w := bufio.NewWriter(f)
	if err = Render(ctx, w, m, opts); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
