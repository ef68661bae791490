package resources

import (
	"embed"
	"fmt"
	"sync"

	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/present"

	"fyne.io/fyne/v2"
)

const logoDir = "logo/"

//go:embed logo/*.svg
var logoFS embed.FS

var logoCache sync.Map
var trayCache sync.Map

// Logo returns a Fyne resource for the given logo file.
func Logo(fileName string) (fyne.Resource, error) {
	path := logoDir + fileName
	if cached, ok := logoCache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := logoFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	logoCache.Store(path, resource)
	return resource, nil
}

// MustLogo returns a Fyne resource or panics on error.
func MustLogo(fileName string) fyne.Resource {
	resource, err := Logo(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// TrayIcon returns a small disc in the accent colour of mode. A running
// timer gets a filled disc, an idle or paused one a ring.
func TrayIcon(mode model.Mode, running bool) fyne.Resource {
	key := fmt.Sprintf("tray-%s-%t.svg", mode, running)
	if cached, ok := trayCache.Load(key); ok {
		return cached.(fyne.Resource)
	}

	fill := "none"
	if running {
		fill = present.ModeHex(mode)
	}
	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64" viewBox="0 0 64 64">`+
		`<circle cx="32" cy="32" r="26" fill="%s" stroke="%s" stroke-width="8"/></svg>`,
		fill, present.ModeHex(mode))

	resource := fyne.NewStaticResource(key, []byte(svg))
	actual, _ := trayCache.LoadOrStore(key, resource)
	return actual.(fyne.Resource)
}
