package tilematch

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
	"github.com/vovakirdan/tilematch/internal/games/tilematch/levels"
)

// Options describe a new game.
type Options struct {
	Campaign     levels.Campaign
	Session      core.Config
	Seed         int64         // 0 picks a time-based seed
	TickInterval time.Duration // 0 disables the level timer
	Logger       *log.Logger
}

// New builds a session for the campaign, starts its dispatcher and wraps it
// in a Game. Call Close when done.
func New(opts Options) (*Game, error) {
	if len(opts.Campaign.Levels) == 0 {
		return nil, fmt.Errorf("campaign %q has no levels", opts.Campaign.ID)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := opts.Session
	if cfg.Logger == nil {
		cfg.Logger = opts.Logger
	}

	session, err := core.NewSession(opts.Campaign.Levels, core.NewSource(seed), cfg)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	dcfg := DefaultDispatcherConfig()
	dcfg.TickInterval = opts.TickInterval
	d := NewDispatcher(session, dcfg, opts.Logger)
	d.Start()

	if opts.Logger != nil {
		opts.Logger.Debug("game created",
			"campaign", opts.Campaign.ID,
			"levels", len(opts.Campaign.Levels),
			"seed", seed,
		)
	}

	return NewGame(d, opts.Campaign), nil
}

// Close stops the game's dispatcher.
func (g *Game) Close() {
	g.dispatcher.Stop()
}
