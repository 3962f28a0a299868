package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/matrix-arcade/internal/config"
	"github.com/vovakirdan/matrix-arcade/internal/input"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List detected input devices",
	Long: `Opens every evdev node, reports whether it is used as a keyboard or a
gamepad and which gamepad profile matches it.

Devices shown as "unknown" are ignored by the arcade. A permission error
usually means the user is not in the "input" group.`,
	Args: cobra.NoArgs,
	RunE: runDevices,
}

func runDevices(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	profiles, err := input.LoadProfiles(config.ExpandHome(cfg.Input.ProfilesDir))
	if err != nil {
		return err
	}
	reports, err := input.ListDevices(cfg.Input.DeviceGlob, profiles)
	if err != nil {
		return err
	}

	fmt.Printf("Profiles: %v\n\n", profiles.Names())
	if len(reports) == 0 {
		fmt.Printf("No devices match %s.\n", cfg.Input.DeviceGlob)
		return nil
	}

	fmt.Printf("  %-20s  %-9s  %-14s  %s\n", "Path", "Kind", "Profile", "Name")
	fmt.Printf("  %-20s  %-9s  %-14s  %s\n", "----", "----", "-------", "----")
	for _, r := range reports {
		if r.Err != nil {
			fmt.Printf("  %-20s  %-9s  %-14s  %v\n", r.Path, "error", "-", r.Err)
			continue
		}
		profile := r.Profile
		if profile == "" {
			profile = "-"
		}
		fmt.Printf("  %-20s  %-9s  %-14s  %s\n", r.Path, r.Kind, profile, r.Name)
		if len(r.Caps) > 0 {
			fmt.Printf("  %-20s  %s\n", "", strings.Join(r.Caps, " "))
		}
	}
	return nil
}
