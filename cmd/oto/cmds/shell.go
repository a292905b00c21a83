package cmds

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/oto-sh/oto/pkg/api"
	"github.com/oto-sh/oto/pkg/chat/engine"
	"github.com/oto-sh/oto/pkg/config"
	"github.com/oto-sh/oto/pkg/onboarding"
	"github.com/oto-sh/oto/pkg/persistence/transcript"
	"github.com/oto-sh/oto/pkg/prefs"
	"github.com/oto-sh/oto/pkg/session"
	"github.com/oto-sh/oto/pkg/shell"
)

// RunShell boots the full desktop: prefs, session, reply engine, and the
// Bubble Tea program, with the engine's reply stream pumped into the program
// until it exits.
func RunShell(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cleanup, err := config.SetupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := prefs.OpenBolt(cfg.PrefsPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sess := session.NewMemory()
	client := api.New(cfg.APIBaseURL, api.WithToken(func() string {
		if tok := sess.Token(); tok != "" {
			return tok
		}
		return cfg.Token
	}))

	// A configured token resolves to a profile; failure just means guest.
	if cfg.Token != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		profile, err := client.Profile(ctx)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("component", "bootstrap").Msg("token did not resolve to a profile, starting as guest")
		} else {
			sess.Set(session.Session{UserID: profile.ID, Email: profile.Email, Name: profile.Name, Token: cfg.Token})
			log.Info().Str("component", "bootstrap").Str("email", profile.Email).Msg("session restored from token")
		}
	}

	eng := engine.New(onboarding.NewMachine(), engine.WithDelay(cfg.ThinkingDelay))
	defer func() { _ = eng.Close() }()

	var archive *transcript.Store
	if cfg.Transcript.Enabled {
		archive, err = transcript.Open(cfg.Transcript.Path)
		if err != nil {
			return err
		}
		defer func() { _ = archive.Close() }()
	}

	m := shell.New(store, sess, client, eng, archive)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	eg, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg.Go(func() error {
		return eng.Forward(ctx, func(msg any) { p.Send(msg) })
	})
	eg.Go(func() error {
		defer cancel()
		_, runErr := p.Run()
		// Closing the engine ends the forward loop even if the context is
		// already done.
		_ = eng.Close()
		return runErr
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "shell exited")
	}
	return nil
}
