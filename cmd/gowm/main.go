// Command gowm is a dynamic tiling window manager for X11, modeled on
// dwm's single-process, single-threaded event loop.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/gowm/gowm/internal/bar"
	"github.com/gowm/gowm/internal/config"
	"github.com/gowm/gowm/internal/wm"
	"github.com/gowm/gowm/internal/xserver"
)

const version = "gowm-1"

func main() {
	showVersion := flag.Bool("v", false, "print version information and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(version)
		return
	}

	cfg := loadConfig()

	srv, err := xserver.Connect("")
	if err != nil {
		log.Fatalf("gowm: cannot open display: %v", err)
	}

	if err := becomeWindowManager(srv); err != nil {
		log.Fatalf("gowm: another window manager is already running: %v", err)
	}
	announceSupported(srv)

	barHeight := barHeightFor(cfg)
	world := wm.NewWorld(srv, cfg)
	world.SetRootWindow(srv.RootWindow())
	world.BarHeight = barHeight
	root := srv.RootGeometry()
	world.ScreenW, world.ScreenH = root.W, root.H

	renderer, err := bar.New(srv.Conn(), cfg, barHeight)
	if err != nil {
		log.Fatalf("gowm: cannot load font: %v", err)
	}
	world.Bar = renderer

	world.UpdateGeom()
	if len(world.Monitors()) > 0 {
		world.Selected = world.Monitors()[0]
	}

	srv.GrabKeys(cfg.Keys)
	world.Scan()

	reapChildren()

	world.Running = true
	registerHandlers(srv, world)
	srv.SetInlineDispatch(func(ev interface{}) { dispatch(world, ev) })

	world.Focus(nil)
	xevent.Main(srv.Conn())

	shutdown(srv, world)
}

func loadConfig() *config.Config {
	cfg := config.Default()
	cfg.Keys = config.DefaultKeys(cfg.Tags, cfg.Layouts)
	cfg.Buttons = config.DefaultButtons()
	if path, err := config.Path(); err == nil {
		if err := config.LoadOverrides(&cfg, path); err != nil {
			log.Printf("gowm: ignoring %s: %v", path, err)
		}
	}
	return &cfg
}

func barHeightFor(cfg *config.Config) int {
	if !cfg.ShowBar {
		return 0
	}
	return 22
}

// becomeWindowManager selects SubstructureRedirect (and the other root
// event masks) on the root window and syncs. It always returns nil: a
// BadAccess from a manager that already holds the redirect arrives as
// an asynchronous X error that nothing here waits for, so a competing
// manager is not detected at this point.
func becomeWindowManager(srv *xserver.Server) error {
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify |
		xproto.EventMaskButtonPress | xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify)
	srv.SelectInput(srv.RootWindow(), mask)
	srv.Sync()
	return nil
}

func announceSupported(srv *xserver.Server) {
	srv.SetSupported([]string{
		"_NET_SUPPORTED", "_NET_WM_STATE", "_NET_WM_STATE_FULLSCREEN",
		"_NET_ACTIVE_WINDOW", "_NET_CLIENT_LIST", "_NET_WM_NAME",
		"_NET_WM_WINDOW_TYPE", "_NET_WM_WINDOW_TYPE_DIALOG",
	})
}

// reapChildren re-installs a SIGCHLD handler that drains every exited
// child non-blockingly, the Go equivalent of dwm's sigchld() self-
// reinstalling signal() handler (spec §5's concurrency model).
func reapChildren() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGCHLD)
	go func() {
		for range sigs {
			for {
				var status syscall.WaitStatus
				pid, err := syscall.Wait4(-1, &status, syscall.WNOHANG, nil)
				if pid <= 0 || err != nil {
					break
				}
			}
		}
	}()
}

func shutdown(srv *xserver.Server, world *wm.World) {
	for _, m := range world.Monitors() {
		for _, c := range m.Clients() {
			world.Unmanage(c, false)
		}
	}
	srv.UngrabPointer()
	srv.Conn().Conn().Close()
}
