package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kathekon/kathekon/internal/quotes"
	"github.com/spf13/cobra"
)

// modeValue is a flag value restricted to a set of interpretation modes.
type modeValue struct {
	mode    quotes.Mode
	allowed []quotes.Mode
}

func newModeValue(def quotes.Mode, allowed []quotes.Mode) *modeValue {
	return &modeValue{mode: def, allowed: allowed}
}

func (v *modeValue) String() string { return v.mode.String() }

func (v *modeValue) Set(s string) error {
	m, err := quotes.ParseMode(s)
	if err != nil || !slices.Contains(v.allowed, m) {
		return fmt.Errorf("must be one of %s", strings.Join(v.names(), ", "))
	}
	v.mode = m
	return nil
}

func (v *modeValue) Type() string { return "mode" }

func (v *modeValue) names() []string {
	names := make([]string, len(v.allowed))
	for i, m := range v.allowed {
		names[i] = m.String()
	}
	return names
}

// addModeFlag registers --interpretation with shell completion of the allowed modes.
func addModeFlag(cmd *cobra.Command, v *modeValue) {
	cmd.Flags().Var(v, "interpretation",
		fmt.Sprintf("Method to fetch or generate interpretation (%s)", strings.Join(v.names(), ", ")))
	_ = cmd.RegisterFlagCompletionFunc("interpretation", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return v.names(), cobra.ShellCompDirectiveNoFileComp
	})
}
