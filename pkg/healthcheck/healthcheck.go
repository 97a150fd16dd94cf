// Package healthcheck verifies that the external collaborators of the
// document pipeline (renderer binaries, preview helper) are present on
// the current system.
package healthcheck

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/fatih/color"

	"github.com/svgmerge/svgmerge/pkg/render"
)

var bold = color.New(color.Bold).SprintfFunc()
var errNotFound = errors.New("not found")

type checker interface {
	check() error
	format(err error) string
}

func category(name string, needAll bool, checks ...checker) error {
	var msgs []string
	passed := 0
	for _, c := range checks {
		if err := c.check(); err != nil {
			msgs = append(msgs, c.format(err))
		} else {
			passed++
		}
	}

	failed := passed == 0 || (needAll && passed < len(checks))
	if failed {
		fmt.Printf("%s %s\n", color.YellowString("[!]"), name)
		for _, m := range msgs {
			fmt.Print(m)
		}
		return fmt.Errorf("some checks failed")
	}
	fmt.Printf("%s %s\n", color.GreenString("[✓]"), name)
	return nil
}

type checkInPath struct {
	binary      string
	packageName string
}

func (c *checkInPath) check() error {
	_, err := exec.LookPath(c.binary)
	return err
}

func (c *checkInPath) format(err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "    %s The %s tool is not available\n", color.RedString("✗"), bold(c.binary))
	fmt.Fprintf(&b, "      %s\n", err.Error())
	fmt.Fprintf(&b, "      Please install the %s package\n", bold(c.packageName))
	return b.String()
}

type checkRenderer struct {
	name string
}

func (c *checkRenderer) check() error {
	r, err := render.Select(c.name)
	if err != nil {
		return err
	}
	if !r.Available() {
		return errNotFound
	}
	return nil
}

func (c *checkRenderer) format(err error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "    %s The configured renderer %s cannot be used\n", color.RedString("✗"), bold(c.name))
	fmt.Fprintf(&b, "      %s\n", err.Error())
	return b.String()
}

// CheckRequirements runs all health checks and reports the results to
// stdout. The renderer argument is the configured default renderer
// ("auto" checks that any backend is available).
func CheckRequirements(renderer string) error {
	errs := 0

	// One available backend is enough to render non-svg formats.
	if err := category("Renderers", false,
		&checkInPath{"inkscape", "inkscape"},
		&checkInPath{"rsvg-convert", "librsvg2-bin"},
	); err != nil {
		errs++
	}

	if err := category("Configured renderer", true,
		&checkRenderer{renderer},
	); err != nil {
		errs++
	}

	if runtime.GOOS == "linux" {
		if err := category("Preview", true,
			&checkInPath{"xdg-open", "xdg-utils"},
		); err != nil {
			errs++
		}
	}

	if errs > 0 {
		return fmt.Errorf("found %d issues", errs)
	}
	return nil
}
