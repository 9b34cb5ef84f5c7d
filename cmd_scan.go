package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"drifter-tracker/internal/api"
	"drifter-tracker/internal/db"
	"drifter-tracker/internal/wormhole"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Record and manage drifter wormhole sightings",
	}
	cmd.AddCommand(scanAddCmd())
	cmd.AddCommand(scanListCmd())
	cmd.AddCommand(scanNoneCmd())
	cmd.AddCommand(scanRmCmd())
	cmd.AddCommand(scanCleanupCmd())
	cmd.AddCommand(scanClearCmd())
	return cmd
}

func scanAddCmd() *cobra.Command {
	var in api.ScanInput
	var ago time.Duration
	cmd := &cobra.Command{
		Use:   "add SYSTEM",
		Short: "Record a hole from its type and status, or from pasted info-window text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(true)
			if err != nil {
				return err
			}
			defer e.Close()

			now := time.Now()
			in.System = args[0]
			if ago > 0 {
				in.ScannedAt = now.Add(-ago)
			}
			sc, err := in.Build(e.data, now)
			if err != nil {
				return err
			}
			sc.RoleID = roleID(e.db, sc.RoleID, e.cfg.DefaultRoleID)
			saved, err := e.db.AddScan(sc)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Recorded %s\n", saved.ID)
			printScan(os.Stdout, saved, now)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.HoleType, "type", "", "Vidette, Redoubt, Sentinel, Barbican, Conflux or Unidentified")
	cmd.Flags().StringVar(&in.LifeStatus, "life", "", "Fresh, Destabilizing or Critical")
	cmd.Flags().StringVar(&in.MassStatus, "mass", "", `"100% > 50%", "50% > 10%" or "< 10%"`)
	cmd.Flags().StringVar(&in.Probe, "probe", "", "text copied from the info window")
	cmd.Flags().StringVar(&in.RoleID, "role", "", "reporting role, remembered as the new default")
	cmd.Flags().DurationVar(&ago, "ago", 0, "how long ago the hole was scanned")
	return cmd
}

// roleID returns the role to tag a scan with and remembers an explicit one.
func roleID(database *db.DB, explicit, fallback string) string {
	if explicit != "" {
		if err := database.SetSetting(db.SettingDefaultRoleID, explicit); err != nil {
			fmt.Fprintf(os.Stderr, "warning: remember role: %v\n", err)
		}
		return explicit
	}
	return database.GetSetting(db.SettingDefaultRoleID, fallback)
}

func scanListCmd() *cobra.Command {
	var activeOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded scans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			scans, err := e.db.ListScans()
			if err != nil {
				return err
			}
			now := time.Now()
			shown := 0
			for _, sc := range scans {
				if activeOnly && !(sc.HasHole() && sc.Active(now)) {
					continue
				}
				printScan(os.Stdout, sc, now)
				shown++
			}
			if shown == 0 {
				fmt.Fprintln(os.Stdout, "No scans.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only holes that are still usable")
	return cmd
}

func printScan(w io.Writer, sc wormhole.Scan, now time.Time) {
	v := api.NewScanView(sc, now)
	if !sc.HasHole() {
		fmt.Fprintf(w, "%s  %-12s %-16s no hole (reported %s)\n",
			shortID(sc.ID), sc.SystemName, sc.RegionName, humanize.RelTime(sc.SpawnedAt, now, "ago", "from now"))
		return
	}
	lifetime := v.Remaining
	if lifetime == "" {
		lifetime = "spawn time unknown"
	}
	fmt.Fprintf(w, "%s  %-12s %-16s %-12s %-13s mass %-10s %s\n",
		shortID(sc.ID), sc.SystemName, sc.RegionName, sc.HoleType, sc.LifeStatus, sc.MassStatus, lifetime)
}

// shortID keeps the random tail of a UUIDv7, which is what differs between
// scans recorded in the same millisecond.
func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

func scanNoneCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "none SYSTEM",
		Short: "Record that a system has no drifter hole",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(true)
			if err != nil {
				return err
			}
			defer e.Close()

			name, err := api.ResolveSystem(e.data, args[0])
			if err != nil {
				return err
			}
			id, _ := e.data.Universe.SystemID(name)
			regionID, _ := e.data.SystemRegionID(name)
			_, removed, err := e.db.MarkNoHole(wormhole.Scan{
				RegionID:   regionID,
				RegionName: e.data.RegionOf(name),
				SystemID:   id,
				SystemName: name,
				RoleID:     roleID(e.db, role, e.cfg.DefaultRoleID),
			}, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s marked empty (%d earlier scans removed)\n", name, removed)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "reporting role")
	return cmd
}

func scanRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a scan by ID or by the last characters of its ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()

			id, err := matchScanID(e.db, args[0])
			if err != nil {
				return err
			}
			if err := e.db.DeleteScan(id); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Deleted %s\n", id)
			return nil
		},
	}
}

// matchScanID expands the short form printed by "scan list" to a full ID.
func matchScanID(database *db.DB, arg string) (string, error) {
	if _, err := database.GetScan(arg); err == nil {
		return arg, nil
	}
	scans, err := database.ListScans()
	if err != nil {
		return "", err
	}
	var matches []string
	for _, sc := range scans {
		if strings.HasSuffix(sc.ID, arg) {
			matches = append(matches, sc.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", db.ErrScanNotFound
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d scans", arg, len(matches))
	}
}

func scanCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Delete holes past their lifetime",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			n, err := e.db.CleanupExpired(time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Removed %d expired scans\n", n)
			return nil
		},
	}
}

func scanClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all scans without --yes")
			}
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			n, err := e.db.ClearScans()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Removed %d scans\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	return cmd
}
