package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"filenest/internal/config"
)

// NewProfilesCmd creates the profiles command group.
func NewProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage organization profiles",
	}
	cmd.AddCommand(
		newProfilesListCmd(),
		newProfilesShowCmd(),
		newProfilesUseCmd(),
		newProfilesCreateCmd(),
		newProfilesDeleteCmd(),
		newProfilesCopyCmd(),
		newProfilesExportCmd(),
		newProfilesImportCmd(),
	)
	return cmd
}

func newProfilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored and builtin profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := profileStore()
			if err != nil {
				return err
			}
			stored, err := store.List()
			if err != nil {
				return err
			}
			seen := make(map[string]bool, len(stored))
			for _, name := range stored {
				seen[name] = true
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Name", "Method", "Rules", "Description"})
			appendProfile := func(name, origin string) {
				p, err := store.Load(name)
				if err != nil {
					t.AppendRow(table.Row{name, "?", "?", fmt.Sprintf("unreadable: %v", err)})
					return
				}
				display := name
				if name == cfg.ActiveProfile {
					display += " (active)"
				}
				desc := p.Description
				if origin != "" {
					desc = strings.TrimSpace(desc + " " + origin)
				}
				t.AppendRow(table.Row{display, p.OrganizeBy, len(p.Rules), desc})
			}
			for _, name := range stored {
				appendProfile(name, "")
			}
			for _, builtin := range config.BuiltinProfiles() {
				if !seen[builtin.Name] {
					appendProfile(builtin.Name, "[builtin]")
				}
			}
			t.Render()
			return nil
		},
	}
}

func newProfilesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show one profile's rules and options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := profileStore()
			if err != nil {
				return err
			}
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Profile:   %s\n", p.Name)
			if p.Description != "" {
				fmt.Printf("About:     %s\n", p.Description)
			}
			fmt.Printf("Target:    %s\n", valueOr(p.TargetDirectory, "(none)"))
			fmt.Printf("Method:    %s\n", valueOr(p.OrganizeBy, "(unset)"))
			fmt.Printf("Collision: %s\n", p.DuplicatePolicy.OrDefault())
			fmt.Printf("Date folders: %v   Size folders: %v   Hidden files: %v\n",
				p.CreateDateFolders, p.CreateSizeFolders, p.IncludeHidden)
			if len(p.ExcludePatterns) > 0 {
				fmt.Printf("Excludes:  %s\n", strings.Join(p.ExcludePatterns, ", "))
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"#", "Rule", "Target", "Extensions", "Enabled"})
			for i, r := range p.Rules {
				t.AppendRow(table.Row{i + 1, r.Name, r.Target(), summarizeExtensions(r.Extensions), r.Enabled})
			}
			if p.CatchAll != nil {
				t.AppendRow(table.Row{"*", p.CatchAll.Name, p.CatchAll.Target(), "(catch-all)", p.CatchAll.Enabled})
			}
			t.Render()
			return nil
		},
	}
}

func newProfilesUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Set the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := resolveProfile(args[0]); err != nil {
				return err
			}
			cfg.ActiveProfile = args[0]
			if err := saveConfig(); err != nil {
				return err
			}
			color.Green("active profile set to %s", args[0])
			return nil
		},
	}
}

func newProfilesCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create TYPE [NAME]",
		Short: "Create a profile from a builtin template",
		Long:  "TYPE is one of: default, photographer, developer, student, business.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			builtin := config.BuiltinProfile(args[0])
			if builtin == nil {
				return fmt.Errorf("unknown profile type %q", args[0])
			}
			p := builtin.Clone()
			if len(args) == 2 {
				p.Name = args[1]
			}
			store, err := profileStore()
			if err != nil {
				return err
			}
			if err := store.Save(p); err != nil {
				return err
			}
			color.Green("created profile %s", p.Name)
			return nil
		},
	}
}

func newProfilesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := profileStore()
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			color.Green("deleted profile %s", args[0])
			return nil
		},
	}
}

func newProfilesCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy SRC DST",
		Short: "Duplicate a profile under a new name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := profileStore()
			if err != nil {
				return err
			}
			if err := store.Copy(args[0], args[1]); err != nil {
				return err
			}
			color.Green("copied profile %s to %s", args[0], args[1])
			return nil
		},
	}
}

func newProfilesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export NAME FILE",
		Short: "Write a profile to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := profileStore()
			if err != nil {
				return err
			}
			return store.Export(args[0], args[1])
		},
	}
}

func newProfilesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a profile from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := profileStore()
			if err != nil {
				return err
			}
			p, err := store.Import(args[0])
			if err != nil {
				return err
			}
			color.Green("imported profile %s", p.Name)
			return nil
		},
	}
}

func saveConfig() error {
	path := cfgFile
	if path == "" {
		dir, err := config.DefaultConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	return config.SaveConfig(cfg, path)
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func summarizeExtensions(exts []string) string {
	if len(exts) == 0 {
		return "(any)"
	}
	if len(exts) > 6 {
		return strings.Join(exts[:6], " ") + fmt.Sprintf(" +%d", len(exts)-6)
	}
	return strings.Join(exts, " ")
}
