// Package preview opens a generated file with the OS default viewer.
package preview

import (
	"context"
	"runtime"

	log "github.com/sirupsen/logrus"

	"github.com/svgmerge/svgmerge/pkg/extcmd"
)

// Open shows path with the platform's default viewer. Preview is a
// best-effort convenience; failures are logged and swallowed.
func Open(ctx context.Context, path string) {
	var name string
	var args []string
	switch runtime.GOOS {
	case "windows":
		name, args = "cmd", []string{"/c", "start", "", path}
	case "darwin":
		name, args = "open", []string{path}
	default:
		name, args = "xdg-open", []string{path}
	}

	if _, _, err := extcmd.Execute(ctx, nil, name, args...); err != nil {
		log.Debugf("Could not open preview for %s: %v", path, err)
	}
}
