package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"drifter-tracker/internal/api"
	"drifter-tracker/internal/engine"
	"drifter-tracker/internal/sde"
)

func fleetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fleet SHIP=COUNT...",
		Short: "Check whether a fleet fits through a drifter hole",
		Example: `  drifter fleet Stratios=4 "Vexor Navy Issue=2"
  drifter fleet Loki`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ships, err := parseFleetArgs(args)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			data, err := loadSDE(cfg)
			if err != nil {
				return err
			}
			printFleet(os.Stdout, api.CheckFleet(data.ShipMass, ships))
			return nil
		},
	}
}

// parseFleetArgs reads "Name=Count" arguments; a bare name counts once.
func parseFleetArgs(args []string) (map[string]int, error) {
	ships := make(map[string]int)
	for _, arg := range args {
		name, count := arg, 1
		if i := strings.LastIndex(arg, "="); i >= 0 {
			n, err := strconv.Atoi(strings.TrimSpace(arg[i+1:]))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("bad ship count in %q", arg)
			}
			name, count = arg[:i], n
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("missing ship name in %q", arg)
		}
		ships[name] += count
	}
	return ships, nil
}

func printFleet(w io.Writer, fc api.FleetCheck) {
	for _, s := range fc.Ships {
		mass := "unknown mass"
		if s.Mass > 0 {
			mass = humanize.Comma(s.Mass) + " kg"
		}
		fmt.Fprintf(w, "  %3d x %-24s %s\n", s.Quantity, s.Ship, mass)
	}
	fmt.Fprintf(w, "  %d ships, %s total\n\n", fc.TotalShips, fc.TotalMassText)
	for _, st := range fc.Stages {
		line := fmt.Sprintf("  %-13s %s / %s kg (%.0f%%)  %s",
			st.Life, humanize.Comma(fc.TotalMass), humanize.Comma(st.Capacity), st.UsedPercent, st.Verdict)
		if st.Verdict == engine.FleetOK && st.FullJumps > 0 {
			line += fmt.Sprintf(", %d full passes", st.FullJumps)
		}
		fmt.Fprintln(w, line)
	}
	if len(fc.HeavyShips) > 0 {
		fmt.Fprintf(w, "\n  Too heavy for any drifter hole (> %s kg): %s\n",
			humanize.Comma(engine.IndividualMassLimit), strings.Join(fc.HeavyShips, ", "))
	}
	if len(fc.UnknownShip) > 0 {
		fmt.Fprintf(w, "  Unknown hulls, counted as weightless: %s\n", strings.Join(fc.UnknownShip, ", "))
	}
}

func sdeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sde",
		Short: "Manage the static universe data",
	}
	var download bool
	process := &cobra.Command{
		Use:   "process",
		Short: "Build the processed universe files from the raw dump",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if download {
				if err := sde.Download(cfg.DataDir); err != nil {
					return err
				}
			}
			if err := sde.Process(cfg.DataDir); err != nil {
				return err
			}
			_, err = loadSDE(cfg)
			return err
		},
	}
	process.Flags().BoolVar(&download, "download", false, "fetch missing raw files first")
	cmd.AddCommand(process)
	return cmd
}
