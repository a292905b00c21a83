package cmds

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oto-sh/oto/pkg/config"
	"github.com/oto-sh/oto/pkg/prefs"
)

// NewPrefsCmd groups subcommands for inspecting and editing the local
// preference store without launching the shell.
func NewPrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and edit local preferences",
	}
	cmd.AddCommand(newPrefsListCmd())
	cmd.AddCommand(newPrefsSetCmd())
	cmd.AddCommand(newPrefsResetCmd())
	return cmd
}

// openPrefsStore resolves the store from config. Unlike the shell these
// subcommands do not own the terminal, so logging goes to the console.
func openPrefsStore(cmd *cobra.Command) (prefs.Store, func(), error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup, err := config.SetupLogging(cfg, false)
	if err != nil {
		return nil, nil, err
	}
	store, err := prefs.OpenBolt(cfg.PrefsPath)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}

func newPrefsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all stored preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openPrefsStore(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			defer func() { _ = store.Close() }()

			keys, err := store.Keys()
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Println("no preferences stored")
				return nil
			}
			for _, k := range keys {
				v, err := store.GetString(k)
				if err != nil {
					return err
				}
				fmt.Printf("%s = %s\n", k, v)
			}
			return nil
		},
	}
}

func newPrefsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a preference value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := openPrefsStore(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			defer func() { _ = store.Close() }()

			if err := store.SetString(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}
}

func newPrefsResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, cleanup, err := openPrefsStore(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			defer func() { _ = store.Close() }()

			keys, err := store.Keys()
			if err != nil {
				return err
			}
			for _, k := range keys {
				if err := store.Delete(k); err != nil {
					return err
				}
			}
			fmt.Printf("deleted %d preference(s)\n", len(keys))
			return nil
		},
	}
}
