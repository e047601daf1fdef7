// ABOUTME: Entry point for the orgadmin server
// ABOUTME: Subcommands: serve, init, health; first-run bootstrap runs inside serve

package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/harborview/orgadmin/internal/auth"
	"github.com/harborview/orgadmin/internal/collection"
	"github.com/harborview/orgadmin/internal/config"
	"github.com/harborview/orgadmin/internal/entity"
	"github.com/harborview/orgadmin/internal/kv"
	"github.com/harborview/orgadmin/internal/server"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
  ___  _ __ __ _  __ _  __| |_ __ ___ (_)_ __
 / _ \| '__/ _' |/ _' |/ _' | '_ ' _ \| | '_ \
| (_) | | | (_| | (_| | (_| | | | | | | | | | |
 \___/|_|  \__, |\__,_|\__,_|_| |_| |_|_|_| |_|
           |___/
`

// getConfigPath returns the path to the orgadmin config file.
// Priority: ORGADMIN_CONFIG env var > XDG_CONFIG_HOME/orgadmin/orgadmin.yaml > ~/.config/orgadmin/orgadmin.yaml
func getConfigPath() string {
	if envPath := os.Getenv("ORGADMIN_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "orgadmin.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "orgadmin", "orgadmin.yaml")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: orgadmin <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve    Start the server")
		fmt.Println("  init     Write a starter config file")
		fmt.Println("  health   Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:  %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:    %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Storage: %s\n", cfg.Storage.Backend)
	fmt.Println()

	store, err := kv.Open(ctx, kv.Options{
		Backend:  cfg.Storage.Backend,
		Path:     cfg.Storage.Path,
		DSN:      cfg.Storage.DSN,
		Database: cfg.Storage.Database,
	})
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	issuer, err := auth.NewIssuer([]byte(cfg.Auth.SessionSecret))
	if err != nil {
		return fmt.Errorf("configuring session signing: %w", err)
	}

	if cfg.Bootstrap.Enabled {
		if err := bootstrap(ctx, store, cfg.Bootstrap); err != nil {
			return fmt.Errorf("bootstrapping: %w", err)
		}
	}

	srv := server.New(store, issuer, cfg.Auth.SecureCookies)

	mux := http.NewServeMux()
	mux.Handle("/api/", srv.Handler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting orgadmin", "config", configPath, "http_addr", cfg.Server.HTTPAddr, "backend", cfg.Storage.Backend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// bootstrap creates the first organization and its owner account when the
// store is empty. The generated password is printed exactly once; it is
// never stored in clear or logged.
func bootstrap(ctx context.Context, store kv.Store, cfg config.BootstrapConfig) error {
	users := entity.NewUsers(store)
	if _, err := users.GetByEmail(ctx, cfg.OwnerEmail); err == nil {
		return nil // already bootstrapped
	} else if !errors.Is(err, collection.ErrNotFound) {
		return fmt.Errorf("checking owner account: %w", err)
	}

	password, err := generatePassword()
	if err != nil {
		return fmt.Errorf("generating owner password: %w", err)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing owner password: %w", err)
	}

	orgName := cfg.OrgName
	if orgName == "" {
		orgName = "Default Organization"
	}
	ownerName := cfg.OwnerName
	if ownerName == "" {
		ownerName = "Owner"
	}

	// The organization is its own tenant, same as signup
	cols := entity.NewCollections(store)
	orgID := uuid.New().String()
	org := &entity.Organization{Name: orgName}
	org.ID = orgID
	org.OrgID = orgID
	if err := cols.Organizations.Create(ctx, org); err != nil {
		return fmt.Errorf("creating organization: %w", err)
	}

	if err := users.Create(ctx, &entity.User{
		Email:        cfg.OwnerEmail,
		Name:         ownerName,
		OrgID:        orgID,
		Role:         auth.RoleOwner,
		PasswordHash: hash,
	}); err != nil {
		return fmt.Errorf("creating owner account: %w", err)
	}

	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow)
	green.Println("    ✓ First-run bootstrap complete")
	fmt.Printf("      Organization: %s\n", orgName)
	fmt.Printf("      Owner email:  %s\n", entity.NormalizeEmail(cfg.OwnerEmail))
	fmt.Print("      Password:     ")
	yellow.Println(password)
	fmt.Println()
	fmt.Println("      Save this password now; it will not be shown again.")
	fmt.Println()
	return nil
}

func generatePassword() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

const starterConfig = `server:
  http_addr: "127.0.0.1:8080"

storage:
  backend: sqlite
  path: orgadmin.db

auth:
  # Required. Generate one with: openssl rand -base64 32
  session_secret: "${ORGADMIN_SESSION_SECRET}"
  secure_cookies: false

bootstrap:
  enabled: true
  org_name: "My Organization"
  owner_email: "owner@example.com"
  owner_name: "Owner"

logging:
  level: info
  format: text
`

func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(starterConfig), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("    ✓ ")
	fmt.Printf("Wrote %s\n", configPath)
	fmt.Println("      Set ORGADMIN_SESSION_SECRET before starting the server.")
	return nil
}

func runHealth(ctx context.Context) error {
	configPath := getConfigPath()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = &colorHandler{
			level: level,
		}
	}

	return slog.New(handler)
}

// colorHandler provides colorized log output with thread-safe writes.
type colorHandler struct {
	mu     sync.Mutex
	level  slog.Level
	attrs  []slog.Attr
	groups []string
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var buf strings.Builder

	buf.WriteString(color.HiBlackString(r.Time.Format("15:04:05") + " "))

	switch r.Level {
	case slog.LevelDebug:
		buf.WriteString(color.MagentaString("DBG "))
	case slog.LevelInfo:
		buf.WriteString(color.CyanString("INF "))
	case slog.LevelWarn:
		buf.WriteString(color.YellowString("WRN "))
	case slog.LevelError:
		buf.WriteString(color.New(color.FgRed, color.Bold).Sprint("ERR "))
	default:
		buf.WriteString("??? ")
	}

	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
	}

	r.Attrs(func(a slog.Attr) bool {
		buf.WriteString(color.HiBlackString(" " + a.Key + "="))
		buf.WriteString(a.Value.String())
		return true
	})

	buf.WriteString("\n")
	fmt.Print(buf.String())
	return nil
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	newAttrs = append(newAttrs, attrs...)
	return &colorHandler{
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *colorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups), len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups = append(newGroups, name)
	return &colorHandler{
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
	}
}
