// SPDX-License-Identifier: Unlicense OR MIT

//go:build linux && !android

package driver

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/xgb"
)

// defaultProbe checks for the display-server runtime a backend needs.
// Wayland is detected by its compositor socket, X11 by opening a
// connection. Protocols without a known check are assumed present.
func defaultProbe(name string) bool {
	switch name {
	case "wayland":
		return waylandPresent()
	case "x11":
		return x11Present()
	default:
		return true
	}
}

func waylandPresent() bool {
	disp := os.Getenv("WAYLAND_DISPLAY")
	if disp == "" {
		disp = "wayland-0"
	}
	if !filepath.IsAbs(disp) {
		dir := os.Getenv("XDG_RUNTIME_DIR")
		if dir == "" {
			return false
		}
		disp = filepath.Join(dir, disp)
	}
	_, err := os.Stat(disp)
	return err == nil
}

func x11Present() bool {
	if os.Getenv("DISPLAY") == "" {
		return false
	}
	c, err := xgb.NewConn()
	if err != nil {
		log.Printf("driver: $DISPLAY is set but X11 connect failed: %v", err)
		return false
	}
	c.Close()
	return true
}
