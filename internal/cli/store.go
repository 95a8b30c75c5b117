package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksindesign/little-lemon-rn/internal/sqlite"
	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// openStore attaches the SQLite store in the resolved data directory and
// ensures both schemas. The caller must defer Detach.
func (a *app) openStore(ctx context.Context) (*sqlite.Backend, error) {
	cfg := types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: a.dataDir,
	}
	if err := cfg.Validate(); err != nil {
		return nil, userError("invalid config: %w", err)
	}

	backend := sqlite.NewBackend(sqlite.WithLogger(a.logger))
	if err := backend.Attach(cfg); err != nil {
		return nil, sysError("attach store: %w", err)
	}
	if err := backend.Init(ctx); err != nil {
		backend.Detach()
		return nil, sysError("initialize schema: %w", err)
	}
	return backend, nil
}

// writeJSON prints v as indented JSON to the command's output.
func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
