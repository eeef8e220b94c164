package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestRootRegistersCommands(t *testing.T) {
	root := NewRootCmd()
	registered := make(map[string]bool)
	for _, c := range root.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range []string{"organize", "undo", "profiles", "logs", "stats", "watch", "clean"} {
		assert.True(t, registered[name], "command %s not registered", name)
	}
}

func TestLockOptOutOnEveryOrganizingCommand(t *testing.T) {
	// Both commands that take the per-target lock must offer the same
	// way out of it.
	for name, cmd := range map[string]*cobra.Command{
		"organize": NewOrganizeCmd(),
		"watch":    NewWatchCmd(),
	} {
		assert.NotNil(t, cmd.Flags().Lookup("no-lock"), "%s is missing --no-lock", name)
	}
}

func TestLogsCSVFlag(t *testing.T) {
	assert.NotNil(t, NewLogsCmd().Flags().Lookup("csv"))
}
