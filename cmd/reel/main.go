package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/adapter"
	"github.com/mmcdole/reel/internal/api"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/mmcdole/reel/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

const usage = `usage: reel [flags] <command>

commands:
  init             write the effective configuration to the config file
  login            sign in with email and password
  signup           create an account
  logout           sign out
  whoami           show the signed-in user
  play <episode>   play an episode

flags:
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired dependencies shared by every command
type app struct {
	cfg       *adapter.Config
	logger    *slog.Logger
	transport *api.Transport
	store     *store.SessionStore
	closeLog  func() error
	session   *service.SessionService
	episodes  *api.EpisodeClient
}

func newApp() (*app, error) {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, closeLog = adapter.NullLogger(), func() error { return nil }
	}
	slog.SetDefault(logger)

	baseURL, err := api.ResolveBaseURL(cfg.API.Origin, cfg.API.BaseURL)
	if err != nil {
		return nil, err
	}

	scheduler := api.NewScheduler(api.ScheduleConfig{
		RatePerSecond: cfg.Schedule.RatePerSecond,
		Burst:         cfg.Schedule.Burst,
		MaxInFlight:   cfg.Schedule.MaxInFlight,
	})
	transport, err := api.NewTransport(baseURL,
		api.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.API.Timeout) * time.Second}),
		api.WithPlugins(scheduler),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	st, err := store.NewSessionStore(cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	session := service.NewSessionService(api.NewAuthClient(transport, logger), transport, st, logger)
	session.Restore()

	logger.Info("starting reel", "version", Version, "baseURL", transport.BaseURL())

	return &app{
		cfg:       cfg,
		logger:    logger,
		transport: transport,
		store:     st,
		closeLog:  closeLog,
		session:   session,
		episodes:  api.NewEpisodeClient(transport),
	}, nil
}

func run(args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.closeLog()
	defer a.store.Close()

	switch args[0] {
	case "init":
		if err := adapter.SaveConfig(a.cfg); err != nil {
			return err
		}
		fmt.Println("✓ Configuration saved!")
		return nil
	case "login":
		return a.runAuthFlow("Sign in", "Signed in", a.session.SignIn)
	case "signup":
		return a.runAuthFlow("Sign up", "Account created, signed in", a.session.SignUp)
	case "logout":
		return a.runLogout()
	case "whoami":
		return a.runWhoAmI()
	case "play":
		if len(args) < 2 {
			return errors.New("play requires an episode id")
		}
		return a.runPlayer(args[1])
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// runAuthFlow prompts for credentials and submits them
func (a *app) runAuthFlow(title, done string, submit func(context.Context, domain.Credentials) (*domain.User, error)) error {
	fmt.Println()
	fmt.Println(title)
	fmt.Println(strings.Repeat("━", 24))

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()
	fmt.Println()

	creds := domain.Credentials{Email: strings.TrimSpace(email), Password: string(passwordBytes)}

	var user *domain.User
	err = withSpinner(title+"...", func(ctx context.Context) error {
		var err error
		user, err = submit(ctx, creds)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrAuthFailed) {
			return errors.New("incorrect email or password")
		}
		return err
	}

	fmt.Printf("✓ %s as %s\n", done, user.Email)
	return nil
}

func (a *app) runLogout() error {
	err := withSpinner("Signing out...", a.session.SignOut)
	if err != nil {
		return err
	}
	fmt.Println("✓ Signed out")
	return nil
}

func (a *app) runWhoAmI() error {
	var user *domain.User
	err := withSpinner("Checking session...", func(ctx context.Context) error {
		var err error
		user, err = a.session.CurrentUser(ctx)
		return err
	})
	if errors.Is(err, domain.ErrUnauthenticated) {
		fmt.Println("Not signed in. Run `reel login`.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", user.Email, user.ID)
	return nil
}

func (a *app) runPlayer(episodeID string) error {
	playback := service.NewPlaybackService(0, a.cfg.Playback.Clamp, a.logger)
	if a.cfg.Playback.StartMuted {
		playback.ToggleMuted()
	}

	model := tui.NewModel(
		playback,
		a.session,
		a.episodes,
		a.store,
		a.transport.BaseURL(),
		episodeID,
		tui.Options{
			SeekStep: a.cfg.Playback.SeekStep,
			Resume:   a.cfg.Playback.Resume,
		},
		a.logger,
	)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	a.logger.Info("starting TUI", "episodeID", episodeID)

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

// withSpinner runs fn in the background while animating a spinner
func withSpinner(label string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- fn(ctx)
	}()

	frame := 0
	fmt.Printf("\r%s %s", styles.SpinnerFrames[frame], label)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-errCh:
			fmt.Print(clearSpinnerLine)
			return err

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s %s", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)], label)

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("%s timed out", strings.TrimSuffix(label, "..."))
		}
	}
}
