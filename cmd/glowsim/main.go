package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/glowsim/internal/config"
	"github.com/san-kum/glowsim/internal/engine"
	"github.com/san-kum/glowsim/internal/export"
	"github.com/san-kum/glowsim/internal/metrics"
	"github.com/san-kum/glowsim/internal/storage"
	"github.com/san-kum/glowsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	seed       int64
	frames     int
	intervalMs int
	gravity    float64
	renderAt   int
	renderOut  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glowsim",
		Short: "bouncing-ball animation phase engine",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".glowsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a phase headless and record it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPhase,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "phase config file (yaml)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = preset seed)")
	runCmd.Flags().IntVar(&frames, "frames", 0, "frame budget override")
	runCmd.Flags().IntVar(&intervalMs, "interval", 0, "tick interval override (ms)")
	runCmd.Flags().Float64Var(&gravity, "gravity", 0, "per-tick gravity override")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a phase with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  livePhase,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "phase config file (yaml)")
	liveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = preset seed)")
	liveCmd.Flags().IntVar(&frames, "frames", 0, "frame budget override")
	liveCmd.Flags().IntVar(&intervalMs, "interval", 0, "tick interval override (ms)")
	liveCmd.Flags().Float64Var(&gravity, "gravity", 0, "per-tick gravity override")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "render one frame of a phase as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFrame,
	}
	renderCmd.Flags().StringVar(&configFile, "config", "", "phase config file (yaml)")
	renderCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = preset seed)")
	renderCmd.Flags().IntVar(&renderAt, "frame", 0, "frame to render (0 = last)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in phase presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tFRAMES\tINTERVAL\tPARTICLES\tTRAIL")
			for _, name := range names {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%dms\t%d\t%d\n",
					name,
					cfg.BodyCount(),
					cfg.Frames,
					cfg.IntervalMs,
					cfg.Particles.Burst,
					cfg.Trail.Cap,
				)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, renderCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig builds the phase config from a preset name and/or a config
// file, then applies CLI overrides.
func resolveConfig(args []string) (*config.PhaseConfig, error) {
	var cfg *config.PhaseConfig

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case len(args) > 0:
		preset := config.GetPreset(args[0])
		if preset == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
		copied := *preset
		cfg = &copied
	default:
		cfg = config.DefaultConfig()
	}

	if seed != 0 {
		cfg.Seed = seed
	}
	if frames != 0 {
		cfg.Frames = frames
	}
	if intervalMs != 0 {
		cfg.IntervalMs = intervalMs
	}
	if gravity != 0 {
		cfg.Gravity = gravity
	}
	return cfg, nil
}

func runPhase(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s phase...\n", cfg.Name)
	start := time.Now()

	result, err := engine.Run(cmd.Context(), cfg, metrics.Defaults(cfg.Arena.YGround)...)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.2f\n", name, result.Metrics[name])
	}

	return nil
}

func livePhase(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}
	return viz.Run(cfg)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPHASE\tTIME\tFRAMES\tBODIES\tSEED\tDONE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%v\n",
			run.ID,
			run.Phase,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Bodies,
			run.Seed,
			run.Completed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tracks, particles, err := st.LoadTracks(runID)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("phase: %s\n", meta.Phase)
	fmt.Printf("frames: %d\n\n", meta.Frames)

	maxPlots := 3
	if len(tracks) < maxPlots {
		maxPlots = len(tracks)
	}

	for i := 0; i < maxPlots; i++ {
		heights := make([]float64, len(tracks[i].Y))
		for j, y := range tracks[i].Y {
			heights[j] = meta.YGround - y
		}
		graph := asciigraph.Plot(heights,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d height above ground", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	hasParticles := false
	for _, n := range particles {
		if n > 0 {
			hasParticles = true
			break
		}
	}
	if hasParticles {
		graph := asciigraph.Plot(particles,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("live particles"),
		)
		fmt.Println(graph)
	}

	return nil
}

func renderFrame(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	target := renderAt
	if target <= 0 || target > cfg.Frames {
		target = cfg.Frames
	}

	p, err := engine.NewPhase(cfg)
	if err != nil {
		return err
	}
	var snap engine.Snapshot
	for i := 0; i < target; i++ {
		snap, _ = p.Advance()
	}

	svg := export.SnapshotSVG(cfg, snap)
	if renderOut == "" {
		fmt.Print(svg)
		return nil
	}
	if err := os.WriteFile(renderOut, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote frame %d to %s\n", snap.Frame, renderOut)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
