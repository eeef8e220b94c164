package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filenest/internal/config"
	"filenest/internal/log"
)

var (
	cfgFile string
	debug   bool
	cfg     *config.Config
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filenest",
		Short: "Organize files into category folders by rule",
		Long: `Filenest reorganizes the files in a directory into category
subfolders, driven by a profile of ordered rules (extension, size,
date). Runs can be previewed, journaled for undo, and repeated from a
directory watch.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			if debug || cfg.Settings.Debug {
				log.SetDebug(true)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/filenest/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(NewOrganizeCmd())
	rootCmd.AddCommand(NewUndoCmd())
	rootCmd.AddCommand(NewProfilesCmd())
	rootCmd.AddCommand(NewLogsCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewWatchCmd())
	rootCmd.AddCommand(NewCleanCmd())

	return rootCmd
}

// profileStore opens the default profile store.
func profileStore() (*config.Store, error) {
	store, err := config.DefaultStore()
	if err != nil {
		return nil, fmt.Errorf("locating profile store: %w", err)
	}
	return store, nil
}

// resolveProfile loads the named profile, defaulting to the active one.
func resolveProfile(name string) (*config.Profile, error) {
	store, err := profileStore()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = cfg.ActiveProfile
	}
	return store.Load(name)
}
