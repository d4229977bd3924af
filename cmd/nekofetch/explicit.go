package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExplicitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "explicit [on|off]",
		Short:     "Show or set the persisted content rating",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				enabled, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				a.modes.SetExplicitMode(enabled)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "explicit: %s\n", onOff(a.modes.GetExplicitMode()))
			return nil
		},
	}
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
