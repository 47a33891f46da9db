package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RE4CT-SC/388-Client/internal/config"
	"github.com/RE4CT-SC/388-Client/internal/diag"
	"github.com/RE4CT-SC/388-Client/internal/feed"
	"github.com/RE4CT-SC/388-Client/internal/hotkey"
	"github.com/RE4CT-SC/388-Client/internal/input"
	"github.com/RE4CT-SC/388-Client/internal/remote"
	"github.com/RE4CT-SC/388-Client/internal/session"
	"github.com/RE4CT-SC/388-Client/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (default: user config dir)")
	local := flag.Bool("local", false, "Target the LAN instance instead of the public server")
	feedAddr := flag.String("feed", "", "Serve the local status feed on this address, e.g. 127.0.0.1:28811")
	rebind := flag.Bool("rebind", false, "Re-run first-time setup even if a binding exists")
	flag.Parse()

	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Fatalf("Failed to resolve config path: %v", err)
		}
		path = p
	}

	// A missing config file is first run, not a fault.
	cfg, err := config.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = config.Default()
	}
	if *local {
		cfg.LocalInstance = true
	}
	if *feedAddr != "" {
		cfg.FeedAddr = *feedAddr
	}

	if err := diag.RaisePriority(); err != nil {
		log.Printf("Could not raise process priority: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan input.Event, 64)
	sources := []input.Source{input.NewHookSource(), input.NewJoystickSource()}
	for _, src := range sources {
		go func(src input.Source) {
			if err := src.Run(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
				if errors.Is(err, input.ErrUnavailable) {
					log.Printf("Input source %s unavailable: %v", src.Name(), err)
				} else {
					log.Printf("Input source %s stopped: %v", src.Name(), err)
				}
			}
		}(src)
	}

	dispatcher := hotkey.NewDispatcher(events, cfg.Debounce)
	go dispatcher.Run(ctx)

	if !cfg.HasBinding() || *rebind {
		if !runSetup(cfg, path, dispatcher.Tokens()) {
			cancel()
			return
		}
	}

	api := remote.New(cfg.BaseURL(), cfg.AuthToken)
	binding := hotkey.Token(cfg.Keybind)
	ctrl := session.New(api, binding, dispatcher.Tokens(), session.WithPollInterval(cfg.PollInterval))

	ctrlDone := make(chan struct{})
	go func() {
		ctrl.Run(ctx)
		close(ctrlDone)
	}()

	if cfg.FeedAddr != "" {
		broadcaster := feed.NewBroadcaster(ctrl, binding)
		go broadcaster.Run(ctx)

		mux := http.NewServeMux()
		feed.NewServer(broadcaster).SetupRoutes(mux)
		go func() {
			if err := feed.ListenAndServe(ctx, cfg.FeedAddr, mux); err != nil {
				log.Printf("Status feed stopped: %v", err)
			}
		}()
	}

	p := tea.NewProgram(tui.NewStatus(ctrl, binding), tea.WithAltScreen())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		log.Printf("UI error: %v", err)
	}

	// Let the controller deactivate a live session before the process exits.
	cancel()
	<-ctrlDone
}

// runSetup drives the first-run wizard and persists the result. Returns false
// when the user cancelled.
func runSetup(cfg *config.Config, path string, tokens <-chan hotkey.Token) bool {
	// The wizard reads a private stream so that once it exits no reader is
	// left racing the controller for the shared token channel. Anything
	// queued during setup (the auth token is typed under the global hook)
	// is drained before the controller takes the channel over.
	setupTokens := make(chan hotkey.Token, 8)
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			case tok := <-tokens:
				select {
				case setupTokens <- tok:
				default:
				}
			}
		}
	}()

	p := tea.NewProgram(tui.NewWizard(setupTokens), tea.WithAltScreen())
	m, err := p.Run()
	close(stop)
	<-done
	hotkey.Drain(tokens)
	if err != nil {
		log.Fatalf("Setup failed: %v", err)
	}
	w, ok := m.(tui.Wizard)
	if !ok {
		return false
	}
	if w.Cancelled() || !w.Done() {
		log.Println("Setup cancelled")
		return false
	}

	cfg.Keybind = string(w.Binding())
	cfg.AuthToken = w.AuthToken()
	if err := cfg.Save(path); err != nil {
		log.Fatalf("Failed to save config: %v", err)
	}
	log.Printf("Saved binding %q to %s", w.Binding().Display(), path)
	return true
}
