package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksindesign/little-lemon-rn/pkg/types"
)

func (a *app) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show, save or clear the signed-in user's profile",
	}
	cmd.AddCommand(a.newProfileShowCmd())
	cmd.AddCommand(a.newProfileSetCmd())
	cmd.AddCommand(a.newProfileClearCmd())
	return cmd
}

func (a *app) newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Detach()

			users, err := store.Users()
			if err != nil {
				return sysError("open users: %w", err)
			}
			p, found, err := users.GetUser(ctx)
			if err != nil {
				return sysError("read profile: %w", err)
			}
			if !found {
				return userError("no profile saved; run 'littlelemon profile set'")
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, p)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", p.FullName(), p.Initials())
			fmt.Fprintln(out, "email:", p.Email)
			if p.ProfilePic != "" {
				fmt.Fprintln(out, "picture:", p.ProfilePic)
			}
			return nil
		},
	}
}

func (a *app) newProfileSetCmd() *cobra.Command {
	var in types.UserProfile
	var clearPic bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the profile, merging flags onto the stored one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Detach()

			users, err := store.Users()
			if err != nil {
				return sysError("open users: %w", err)
			}
			p, _, err := users.GetUser(ctx)
			if err != nil {
				return sysError("read profile: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("first-name") {
				p.FirstName = in.FirstName
			}
			if flags.Changed("last-name") {
				p.LastName = in.LastName
			}
			if flags.Changed("email") {
				p.Email = in.Email
			}
			if flags.Changed("picture") {
				p.ProfilePic = in.ProfilePic
			}
			if clearPic {
				p.ProfilePic = ""
			}

			p = p.Normalize()
			if err := p.Validate(); err != nil {
				return userError("%w", err)
			}
			saved, err := users.SaveUser(ctx, p)
			if err != nil {
				if errors.Is(err, types.ErrDuplicateEmail) {
					return userError("save profile: %w", err)
				}
				return sysError("save profile: %w", err)
			}

			if a.flags.jsonMode {
				return writeJSON(cmd, saved)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "profile saved for %s\n", saved.FullName())
			return nil
		},
	}
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.ProfilePic, "picture", "", "profile picture URI")
	cmd.Flags().BoolVar(&clearPic, "clear-picture", false, "remove the profile picture")
	return cmd
}

func (a *app) newProfileClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored profile (log out)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Detach()

			users, err := store.Users()
			if err != nil {
				return sysError("open users: %w", err)
			}
			if err := users.ClearUser(ctx); err != nil {
				return sysError("clear profile: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "profile cleared")
			return nil
		},
	}
}
