package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/shiwake/internal/app"
	"github.com/abhisek/shiwake/internal/bank"
	"github.com/abhisek/shiwake/internal/progress"
	"github.com/abhisek/shiwake/internal/store"
)

const (
	startHome   = app.StartHome
	startPlay   = app.StartPlay
	startReview = app.StartReview
)

// env is everything a command needs once the store and bank are ready.
type env struct {
	store    *store.Store
	bank     *bank.Bank
	progress *progress.Service
}

// openEnv opens the store, loads the bank, and restores progress.
// Callers must Close the returned store.
func openEnv(cmd *cobra.Command) (*env, error) {
	ctx := cmdContext(cmd)

	scfg, err := storeConfig(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(scfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	b, err := bank.Load(ctx, bankConfig(cmd))
	if err != nil {
		st.Close()
		return nil, err
	}

	svc := progress.NewService(ctx, st.KV(), progressKey(cmd), b.TotalItems())
	return &env{store: st, bank: b, progress: svc}, nil
}

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command, start app.Start) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.store.Close()

	return app.Run(app.Options{
		Bank:     e.bank,
		Progress: e.progress,
		Events:   e.store.EventRepo(),
		Review:   reviewConfig(cmd),
		Rand:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Start:    start,
	})
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
