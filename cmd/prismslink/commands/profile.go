package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prismslink/internal/domain"
	"prismslink/internal/store"
	"prismslink/internal/ui"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage saved connection profiles",
	}
	cmd.AddCommand(profileSaveCmd(), profileShowCmd(), profileListCmd())
	return cmd
}

func profileSaveCmd() *cobra.Command {
	var (
		p            domain.Profile
		savePassword bool
	)
	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Create or replace a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := store.NewProfileFileStore(home)
			p.Name = args[0]
			if p.ServerURL == "" {
				p.ServerURL = settings.Server.URL
			}
			if p.App == "" {
				p.App = settings.Server.App
			}
			if p.Client == "" {
				p.Client = settings.Server.Client
			}

			if savePassword {
				if passphrase == "" {
					return fmt.Errorf("passphrase required (-p or $%s) to save a password", EnvPassphrase)
				}
				if p.User == "" {
					return fmt.Errorf("--user is required to save a password")
				}
				term := ui.NewTerminal(p.App, os.Stdin, cmd.OutOrStdout())
				pwd, err := term.ReadPassword("Password for " + p.User + ": ")
				if err != nil {
					return err
				}
				if p.SealedPassword, err = profiles.SealPassword(passphrase, pwd); err != nil {
					return err
				}
			}

			if err := profiles.SaveProfile(p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s saved.\n", p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&p.ServerURL, "url", "", "servlet URL (default from config)")
	cmd.Flags().StringVar(&p.App, "app", "", "application name (default from config)")
	cmd.Flags().StringVar(&p.Client, "client", "", "client name (default from config)")
	cmd.Flags().StringVar(&p.User, "user", "", "user name")
	cmd.Flags().BoolVar(&savePassword, "save-password", false, "prompt for the password and store it sealed")
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := store.NewProfileFileStore(home).LoadProfile(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("profile %q not found", args[0])
			}
			view := struct {
				domain.Profile
				SealedPassword bool `json:"sealed_password"`
			}{Profile: p, SealedPassword: len(p.SealedPassword) > 0}
			b, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}

func profileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store.NewProfileFileStore(home).ListProfiles()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
