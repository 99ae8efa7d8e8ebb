package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/theirongolddev/finpulse/internal/api"
	"github.com/theirongolddev/finpulse/internal/config"
	"github.com/theirongolddev/finpulse/internal/identity"
	"github.com/theirongolddev/finpulse/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type serverRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DBPath    string    `json:"db_path"`
}

var (
	flagServeAddr    string
	flagServeDetach  bool
	flagServePIDFile string
	flagServeLogFile string
	flagServeChild   bool
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"daemon"},
	Short:   "Run the HTTP API with SSE event stream",
	RunE:    runServe,
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server process and API status",
	RunE:  runServeStatus,
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running server",
	RunE:  runServeStop,
}

func init() {
	defaultPID := filepath.Join(config.DataDir(), "finpulsed.pid")
	defaultLog := filepath.Join(config.DataDir(), "finpulsed.log")

	serveCmd.PersistentFlags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.PersistentFlags().StringVar(&flagServePIDFile, "pid-file", defaultPID, "PID file path")
	serveCmd.PersistentFlags().StringVar(&flagServeLogFile, "log-file", defaultLog, "Log file path for detached mode")

	serveCmd.Flags().BoolVar(&flagServeDetach, "detach", false, "Run server as a background process")
	serveCmd.Flags().BoolVar(&flagServeChild, "child", false, "Internal: mark detached child process")
	_ = serveCmd.Flags().MarkHidden("child")

	serveCmd.AddCommand(serveStatusCmd)
	serveCmd.AddCommand(serveStopCmd)
	rootCmd.AddCommand(serveCmd)
}

func serveAddr() string {
	if flagServeAddr != "" {
		return flagServeAddr
	}
	return cfg.Server.Addr
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagServeDetach && flagServeChild {
		return errors.New("invalid server launch mode")
	}

	if flagServeDetach {
		return startServerDetached()
	}

	return runServerForeground()
}

func startServerDetached() error {
	if err := ensureServerNotRunning(flagServePIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagServePIDFile), 0o750); err != nil {
		return fmt.Errorf("create server directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagServeLogFile), 0o750); err != nil {
		return fmt.Errorf("create server log directory: %w", err)
	}

	//nolint:gosec // server log path is configured by the local user
	logf, err := os.OpenFile(flagServeLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open server log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	cmd := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Stdin = nil
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detached server: %w", err)
	}

	fmt.Printf("  Started server (pid %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", flagServePIDFile)
	fmt.Printf("  API: http://%s/v1/status\n", serveAddr())
	fmt.Printf("  Log: %s\n", flagServeLogFile)
	return nil
}

func runServerForeground() error {
	if err := ensureServerNotRunning(flagServePIDFile); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flagServePIDFile), 0o750); err != nil {
		return fmt.Errorf("create server directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(flagServePIDFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagServePIDFile) }()

	addr := serveAddr()
	state := serverRuntimeState{
		PID:       pid,
		Addr:      addr,
		StartedAt: time.Now(),
		DBPath:    cfg.DBPath(),
	}
	_ = writeState(statePath(flagServePIDFile), state)
	defer func() { _ = os.Remove(statePath(flagServePIDFile)) }()

	verifier, closeVerifier, err := buildVerifier(cfg.Identity)
	if err != nil {
		return err
	}
	defer closeVerifier()

	svc, closeFn, err := openService()
	if err != nil {
		return err
	}
	defer closeFn()

	log := logger.Get()
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	server := api.New(api.Config{
		Addr:         addr,
		EventsBuffer: cfg.Server.EventsBuffer,
		CORSOrigins:  cfg.Server.CORSOrigins,
	}, svc, verifier, log)

	fmt.Printf("  finpulse API listening on http://%s\n", addr)
	fmt.Printf("  Database: %s\n", cfg.DBPath())
	fmt.Printf("  Auth: %s · Advice: %s\n", cfg.Identity.Mode, adviceState(svc.AdviceEnabled()))
	fmt.Printf("  Stop with: finpulse serve stop --pid-file %s\n", flagServePIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

func adviceState(enabled bool) string {
	if enabled {
		return cfg.Advisor.Provider
	}
	return "disabled"
}

// buildVerifier returns the bearer token verifier for the configured mode.
// Remote verifiers are wrapped in a TTL cache. The returned func releases
// the cache.
func buildVerifier(c config.IdentityConfig) (identity.Verifier, func(), error) {
	var v identity.Verifier
	switch c.Mode {
	case config.IdentityClerk:
		// A nil *ClerkVerifier must not reach the interface.
		cv := identity.NewClerkVerifier(c.ClerkSecretKey, c.ClerkAPIURL)
		if cv == nil {
			return nil, nil, errors.New("identity mode clerk needs CLERK_SECRET_KEY")
		}
		v = cv
	case config.IdentityJWT:
		jv := identity.NewJWTVerifier(c.JWTSecret, c.JWTIssuer)
		if jv == nil {
			return nil, nil, errors.New("identity mode jwt needs FINPULSE_JWT_SECRET")
		}
		v = jv
	case config.IdentityNone, "":
		return identity.StaticVerifier{Identity: identity.Identity{Subject: c.LocalSubject}}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown identity mode %q", c.Mode)
	}

	cached, err := identity.NewCachedVerifier(v, c.CacheTTL())
	if err != nil {
		return nil, nil, err
	}
	return cached, cached.Close, nil
}

func runServeStatus(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagServePIDFile)
	if err != nil {
		fmt.Printf("  Server: not running (pid file not found)\n")
		return nil
	}

	if !processAlive(pid) {
		fmt.Printf("  Server: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := serveAddr()
	if st, err := readState(statePath(flagServePIDFile)); err == nil && st.Addr != "" {
		addr = st.Addr
	}

	fmt.Printf("  Server PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status check
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st api.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	fmt.Printf("  Started: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	fmt.Printf("  Events: %d\n", st.EventCount)
	fmt.Printf("  Subscribers: %d\n", st.SubscriberCount)
	return nil
}

func runServeStop(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagServePIDFile)
	if err != nil {
		return errors.New("server is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find server process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal server process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagServePIDFile)
			_ = os.Remove(statePath(flagServePIDFile))
			fmt.Printf("  Stopped server (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("server (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureServerNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("server already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(statePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // server pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func statePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st serverRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (serverRuntimeState, error) {
	var st serverRuntimeState
	//nolint:gosec // server state path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
