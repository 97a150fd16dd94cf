// Package render invokes an external SVG renderer to convert
// materialized documents into their final output format.
package render

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"bitbucket.org/creachadair/shell"
	log "github.com/sirupsen/logrus"

	"github.com/svgmerge/svgmerge/pkg/extcmd"
)

// Renderer converts a materialized SVG file into the requested format.
type Renderer interface {
	// Name returns the backend name for logs and status reports.
	Name() string
	// Available reports whether the backend can run on this system.
	Available() bool
	// Render converts svgPath into format at dpi, writing outPath.
	Render(ctx context.Context, svgPath, format string, dpi int, outPath string) error
}

// Inkscape renders through the inkscape command line.
type Inkscape struct{}

func (Inkscape) Name() string    { return "inkscape" }
func (Inkscape) Available() bool { return extcmd.InPath("inkscape") }

func (Inkscape) Render(ctx context.Context, svgPath, format string, dpi int, outPath string) error {
	_, stderr, err := extcmd.Execute(ctx, nil, "inkscape",
		"--without-gui",
		"--export-dpi="+strconv.Itoa(dpi),
		"--export-"+format+"="+outPath,
		svgPath)
	if err != nil {
		return fmt.Errorf("inkscape failed: %w (%s)", err, strings.TrimSpace(stderr))
	}
	return nil
}

// Rsvg renders through rsvg-convert. It is much faster than inkscape
// but known to change the page size of some documents.
type Rsvg struct{}

func (Rsvg) Name() string    { return "rsvg" }
func (Rsvg) Available() bool { return extcmd.InPath("rsvg-convert") }

func (Rsvg) Render(ctx context.Context, svgPath, format string, dpi int, outPath string) error {
	_, stderr, err := extcmd.Execute(ctx, nil, "rsvg-convert",
		"--dpi-x="+strconv.Itoa(dpi),
		"--dpi-y="+strconv.Itoa(dpi),
		"--format="+format,
		"--output="+outPath,
		svgPath)
	if err != nil {
		return fmt.Errorf("rsvg-convert failed: %w (%s)", err, strings.TrimSpace(stderr))
	}
	return nil
}

// Command runs a user-supplied renderer command line. The command
// string is split with shell quoting rules; the placeholders %INPUT%,
// %OUTPUT%, %FORMAT% and %DPI% are replaced in every argument.
type Command struct {
	line string
	argv []string
}

// NewCommand parses a renderer command line such as
//
//	my-renderer --format %FORMAT% -o %OUTPUT% %INPUT%
func NewCommand(line string) (*Command, error) {
	argv, ok := shell.Split(line)
	if !ok {
		return nil, fmt.Errorf("unbalanced quotes in renderer command %q", line)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty renderer command")
	}
	return &Command{line: line, argv: argv}, nil
}

func (c *Command) Name() string    { return c.argv[0] }
func (c *Command) Available() bool { return extcmd.InPath(c.argv[0]) }

func (c *Command) arguments(svgPath, format string, dpi int, outPath string) []string {
	replacer := strings.NewReplacer(
		"%INPUT%", svgPath,
		"%OUTPUT%", outPath,
		"%FORMAT%", format,
		"%DPI%", strconv.Itoa(dpi),
	)
	args := make([]string, 0, len(c.argv)-1)
	for _, a := range c.argv[1:] {
		args = append(args, replacer.Replace(a))
	}
	return args
}

func (c *Command) Render(ctx context.Context, svgPath, format string, dpi int, outPath string) error {
	args := c.arguments(svgPath, format, dpi, outPath)
	_, stderr, err := extcmd.Execute(ctx, nil, c.argv[0], args...)
	if err != nil {
		return fmt.Errorf("%s failed: %w (%s)", c.argv[0], err, strings.TrimSpace(stderr))
	}
	return nil
}

// Backends lists the built-in renderer backends in preference order.
func Backends() []Renderer {
	return []Renderer{Inkscape{}, Rsvg{}}
}

// Select resolves a renderer name from the configuration surface.
// "auto" (or "") picks the first available built-in backend.
func Select(name string) (Renderer, error) {
	switch name {
	case "", "auto":
		for _, r := range Backends() {
			if r.Available() {
				log.Debugf("Using renderer %s", r.Name())
				return r, nil
			}
		}
		return nil, fmt.Errorf("no renderer found in PATH (tried inkscape, rsvg-convert)")
	case "inkscape":
		return Inkscape{}, nil
	case "rsvg":
		return Rsvg{}, nil
	}
	return nil, fmt.Errorf("unknown renderer %q", name)
}
