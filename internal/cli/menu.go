package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ksindesign/little-lemon-rn/internal/menucache"
	"github.com/ksindesign/little-lemon-rn/internal/menusource"
	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

// menuItemView is a menu item as printed, with the image resolved to a URL.
type menuItemView struct {
	types.MenuItem
	ImageURL     string `json:"imageUrl"`
	DisplayPrice string `json:"displayPrice"`
}

func (a *app) newMenuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Sync, list and filter the cached menu",
	}
	cmd.AddCommand(a.newMenuSyncCmd())
	cmd.AddCommand(a.newMenuListCmd())
	cmd.AddCommand(a.newMenuCategoriesCmd())
	return cmd
}

func (a *app) newMenuSyncCmd() *cobra.Command {
	var refresh bool
	var source string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the menu when the local cache is empty",
		Long: "Fetch the remote menu document and store it when the local cache is empty.\n" +
			"With --refresh the cache is replaced even when it already holds items.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Detach()

			menu, err := store.Menu()
			if err != nil {
				return sysError("open menu: %w", err)
			}
			if source == "" {
				source = a.cfg.GetString(cfgKeyMenuSource)
			}
			loader := &menucache.Loader{
				Store:  menu,
				Source: menusource.NewSource(source, a.fs),
				Logger: a.logger,
			}

			load := loader.Load
			if refresh {
				load = loader.Refresh
			}
			items, err := load(ctx)
			if err != nil {
				if errors.Is(err, types.ErrInvalidMenuDocument) || errors.Is(err, types.ErrInvalidMenuItem) {
					return userError("sync menu: %w", err)
				}
				return sysError("sync menu: %w", err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, a.views(items))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "menu ready: %d items\n", len(items))
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "replace the cached menu even when it is populated")
	cmd.Flags().StringVar(&source, "source", "", "menu document URL or file (default: menu_source from config)")
	return cmd
}

func (a *app) newMenuListCmd() *cobra.Command {
	var filter types.MenuFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached menu items, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Detach()

			menu, err := store.Menu()
			if err != nil {
				return sysError("open menu: %w", err)
			}
			items, err := menu.Filter(ctx, filter)
			if err != nil {
				return sysError("list menu: %w", err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, a.views(items))
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				if filter.IsEmpty() {
					fmt.Fprintln(out, "menu is empty; run 'littlelemon menu sync'")
				} else {
					fmt.Fprintln(out, "no items match")
				}
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Name, it.Category, formatPrice(it.Price))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringSliceVar(&filter.Categories, "category", nil, "only items in these categories (repeatable, case-insensitive)")
	cmd.Flags().StringVar(&filter.Search, "search", "", "only items whose name contains this text")
	return cmd
}

func (a *app) newMenuCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories present in the cached menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Detach()

			menu, err := store.Menu()
			if err != nil {
				return sysError("open menu: %w", err)
			}
			categories, err := menu.Categories(ctx)
			if err != nil {
				return sysError("list categories: %w", err)
			}
			if a.flags.jsonMode {
				return writeJSON(cmd, categories)
			}
			for _, c := range categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func (a *app) views(items []types.MenuItem) []menuItemView {
	base := a.cfg.GetString(cfgKeyImageBaseURL)
	out := make([]menuItemView, len(items))
	for i, it := range items {
		out[i] = menuItemView{
			MenuItem:     it,
			ImageURL:     menusource.ImageURL(base, it.Image),
			DisplayPrice: formatPrice(it.Price),
		}
	}
	return out
}
