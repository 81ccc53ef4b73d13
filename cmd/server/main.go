// isoworld-server starts an SSH server that gives every connection its own
// generated isometric scene. Build:
//
//	go build -o isoworld-server ./cmd/server
//
// Usage:
//
//	./isoworld-server [--config isoworld.yaml] [--port 2222] [--key server_host_key] [--seed 0]
//
// Connect from any terminal:
//
//	ssh -p 2222 localhost
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"isoworld/internal/config"
	"isoworld/internal/game"
	"isoworld/internal/logging"
	internalssh "isoworld/internal/ssh"
)

// options are the command-line settings. Zero port, empty key and zero
// seed keep the configured or random values.
type options struct {
	configPath string
	port       int
	keyFile    string
	seed       int64
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("isoworld-server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "Path to a YAML config file")
	fs.IntVar(&o.port, "port", 0, "SSH server port (overrides server.port)")
	fs.StringVar(&o.keyFile, "key", "", "Path to the PEM-encoded host key (auto-generated if absent)")
	fs.Int64Var(&o.seed, "seed", 0, "Scene seed shared by every session (0 = random per session)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	return o, nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(o options) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}
	if o.port != 0 {
		cfg.Server.Port = o.port
	}
	if o.keyFile != "" {
		cfg.Server.HostKey = o.keyFile
	}
	return cfg, cfg.Validate()
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	var paths []string
	if cfg.Log.Path != "" {
		paths = append(paths, cfg.Log.Path)
	}
	log, err := logging.New(cfg.Log.Level, paths...)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, log)
	if err != nil {
		return err
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: func(s gossh.Session) {
			serveSession(s, cfg, o.seed, log)
		},
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{signer},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("ssh server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !eris.Is(err, gossh.ErrServerClosed) {
			return eris.Wrap(err, "ssh server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("ssh server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// serveSession runs one viewer for the lifetime of an SSH connection. Each
// session owns its World, so nothing is shared between goroutines.
func serveSession(s gossh.Session, cfg config.Config, seed int64, log *zap.Logger) {
	id := uuid.NewString()
	name := internalssh.SanitizeName(s.User())
	if name == "" {
		name = "guest"
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log = log.With(zap.String("session", id), zap.String("user", name), zap.Int64("seed", seed))

	screen, err := internalssh.NewScreen(s)
	if eris.Is(err, internalssh.ErrNoPTY) {
		fmt.Fprintln(s, "This viewer requires a PTY. Connect with: ssh -t -p <port> <host>")
		return
	}
	if err != nil {
		log.Warn("screen setup failed", zap.Error(err))
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	w, scene, err := game.NewScene(seed, name, log)
	if err != nil {
		screen.Fini()
		log.Error("scene generation failed", zap.Error(err))
		return
	}
	v, err := game.NewViewer(screen, w, scene.Player, cfg, log)
	if err != nil {
		screen.Fini()
		log.Error("viewer setup failed", zap.Error(err))
		return
	}

	log.Info("session started", zap.Int("entities", w.Len()), zap.Int("tiles", w.TileCount()))
	if err := v.Run(s.Context()); err != nil {
		log.Error("session ended with error", zap.Error(err))
		return
	}
	log.Info("session ended")
}
