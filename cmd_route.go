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
	"drifter-tracker/internal/engine"
	"drifter-tracker/internal/wormhole"
)

func routeCmd() *cobra.Command {
	var maxGates, results int
	cmd := &cobra.Command{
		Use:   "route ORIGIN DESTINATION",
		Short: "Find hybrid gate + drifter wormhole routes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(args[0], args[1], maxGates, results)
		},
	}
	cmd.Flags().IntVar(&maxGates, "max-gates", 0, "gate budget per static leg (default from config)")
	cmd.Flags().IntVar(&results, "results", 0, "number of routes to show (default from config)")
	return cmd
}

func runRoute(originArg, destArg string, maxGates, results int) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	origin, err := api.ResolveSystem(e.data, originArg)
	if err != nil {
		return err
	}
	destination, err := api.ResolveSystem(e.data, destArg)
	if err != nil {
		return err
	}
	if maxGates <= 0 {
		maxGates = e.cfg.MaxGatesPerLeg
	}
	if results <= 0 {
		results = e.cfg.MaxResults
	}
	scans, err := e.db.ListScans()
	if err != nil {
		return err
	}

	router := engine.NewRouter(e.data.Universe)
	router.UseJumpbridges = e.cfg.UseJumpbridges
	start := time.Now()
	out := router.Plan(engine.RouteParams{
		Origin:         origin,
		Destination:    destination,
		MaxGatesPerLeg: maxGates,
		DirectMaxJumps: e.cfg.DirectMaxJumps,
		MaxResults:     results,
		Now:            start,
	}, scans)
	api.RecordRoute(e.db, origin, destination, out, time.Since(start))

	printOutcome(os.Stdout, out, origin, destination)
	return nil
}

func printOutcome(w io.Writer, out engine.Outcome, origin, destination string) {
	switch out.Kind {
	case engine.OutcomeRoutes:
		fmt.Fprintf(w, "%s -> %s: %d of %d routes (%d systems with active holes)\n\n",
			origin, destination, len(out.Routes), out.Candidates, out.ActiveHoles)
		for i, r := range out.Routes {
			printRoute(w, i+1, r, out.ComputedAt)
		}
	case engine.OutcomeDirect:
		fmt.Fprintf(w, "No wormhole route helps. Direct route: %d gates", out.Direct.Gates)
		if out.Direct.Jumpbridges > 0 {
			fmt.Fprintf(w, " (%d jumpbridges)", out.Direct.Jumpbridges)
		}
		fmt.Fprintf(w, "\n  %s\n", strings.Join(out.Direct.Path, " > "))
	case engine.OutcomeNoRoute:
		fmt.Fprintf(w, "No route from %s to %s.\n", origin, destination)
	case engine.OutcomeUnresolved:
		fmt.Fprintf(w, "Unknown system %q.\n", out.Unresolved)
	}
}

func printRoute(w io.Writer, n int, r engine.Route, now time.Time) {
	kind := "single hop"
	if r.HopCount > 1 {
		kind = fmt.Sprintf("%d hops", r.HopCount)
	}
	fmt.Fprintf(w, "#%d  [%s] score %d, %d gates, %s\n", n, r.Band, r.Score, r.TotalGates, kind)
	if r.EntryGates > 0 {
		fmt.Fprintf(w, "    gates  %s (%d)\n", strings.Join(r.EntryPath, " > "), r.EntryGates)
	}
	for _, h := range r.Hops {
		fmt.Fprintf(w, "    hole   %s => %s  %s %s, mass %s%s\n",
			h.EntrySystem, h.ExitSystem, h.HoleType, h.LifeStatus, h.MassStatus, expiry(h.ExpiresAt, now))
	}
	if r.ExitGates > 0 {
		fmt.Fprintf(w, "    gates  %s (%d)\n", strings.Join(r.ExitPath, " > "), r.ExitGates)
	}
	if r.Jumpbridges > 0 {
		fmt.Fprintf(w, "    uses %d jumpbridge(s)\n", r.Jumpbridges)
	}
	fmt.Fprintln(w)
}

func expiry(at *time.Time, now time.Time) string {
	if at == nil {
		return ""
	}
	return ", " + humanize.RelTime(now, *at, "left", "ago")
}

func regionsCmd() *cobra.Command {
	var homes []string
	cmd := &cobra.Command{
		Use:   "regions [TARGET_REGION]",
		Short: "List single-hop links from the home regions into a target region",
		Long:  "Without a target, lists the regions that currently hold an active hole.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := ""
			if len(args) == 1 {
				target = args[0]
			}
			return runRegions(target, homes)
		},
	}
	cmd.Flags().StringSliceVar(&homes, "home", nil, "home regions (default from config)")
	return cmd
}

func runRegions(targetArg string, homes []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	scans, err := e.db.ListScans()
	if err != nil {
		return err
	}
	router := engine.NewRouter(e.data.Universe)
	conns := wormhole.BuildConnections(scans, time.Now())

	if targetArg == "" {
		regions := router.RegionsWithActiveHoles(conns)
		if len(regions) == 0 {
			fmt.Fprintln(os.Stdout, "No active holes.")
			return nil
		}
		for _, r := range regions {
			fmt.Fprintln(os.Stdout, r)
		}
		return nil
	}

	target, ok := e.data.ResolveRegion(targetArg)
	if !ok {
		return fmt.Errorf("%w: %s", engine.ErrUnknownRegion, targetArg)
	}
	if len(homes) == 0 {
		homes = e.cfg.HomeRegions
	}
	now := time.Now()
	for _, h := range homes {
		home, ok := e.data.ResolveRegion(h)
		if !ok {
			return fmt.Errorf("%w: %s", engine.ErrUnknownRegion, h)
		}
		routes, err := router.FindRegionRoutes(home, target, conns)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s -> %s\n", home, target)
		if len(routes) == 0 {
			fmt.Fprintln(os.Stdout, "  no direct links")
			continue
		}
		for _, r := range routes {
			fmt.Fprintf(os.Stdout, "  [%s] %s => %s  %s, mass %s%s\n",
				r.Band, r.EntrySystem, r.ExitSystem, r.Hop.LifeStatus, r.Hop.MassStatus, expiry(r.Hop.ExpiresAt, now))
			for _, warn := range r.Warnings {
				fmt.Fprintf(os.Stdout, "      ! %s\n", warn)
			}
		}
	}
	return nil
}

func pathCmd() *cobra.Command {
	var maxJumps int
	cmd := &cobra.Command{
		Use:   "path FROM TO",
		Short: "Shortest gate and jumpbridge path between two systems",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(args[0], args[1], maxJumps)
		},
	}
	cmd.Flags().IntVar(&maxJumps, "max", 0, "jump budget, 1-100 (default from config)")
	return cmd
}

func runPath(fromArg, toArg string, maxJumps int) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	from, err := api.ResolveSystem(e.data, fromArg)
	if err != nil {
		return err
	}
	to, err := api.ResolveSystem(e.data, toArg)
	if err != nil {
		return err
	}
	if maxJumps <= 0 {
		maxJumps = e.cfg.DirectMaxJumps
	}
	router := engine.NewRouter(e.data.Universe)
	router.UseJumpbridges = e.cfg.UseJumpbridges
	fromID, _ := e.data.Universe.SystemID(from)
	toID, _ := e.data.Universe.SystemID(to)
	direct, ok := router.Direct(fromID, toID, maxJumps)
	if !ok {
		return fmt.Errorf("no path from %s to %s within %d jumps", from, to, maxJumps)
	}
	fmt.Fprintf(os.Stdout, "%d gates, %d jumpbridges\n  %s\n", direct.Gates, direct.Jumpbridges, strings.Join(direct.Path, " > "))
	return nil
}

func historyCmd() *cobra.Command {
	var limit int
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent routing requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(false)
			if err != nil {
				return err
			}
			defer e.Close()
			if clearAll {
				return e.db.ClearRouteHistory()
			}
			for _, r := range e.db.GetRouteHistory(limit) {
				best := "-"
				if r.BestScore != nil {
					best = fmt.Sprint(*r.BestScore)
				}
				fmt.Fprintf(os.Stdout, "%s  %s -> %s  %s  candidates=%d best=%s  %dms\n",
					r.Timestamp, r.Origin, r.Destination, r.Kind, r.Candidates, best, r.DurationMs)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete the history")
	return cmd
}
