package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"splat/internal/config"
	"splat/internal/split"
)

func main() {
	// Command line flags
	var (
		configFlag      = flag.String("config", "", "Path to config file")
		noTaggingFlag   = flag.Bool("notagging", false, "Do not write tags into the outputs")
		streamCopyFlag  = flag.Bool("streamcopy", false, "Copy FLAC frames bit-exactly instead of re-encoding")
		onExistsFlag    = flag.String("on-exists", "", "What to do when an output exists: fail, overwrite or skip")
		concurrencyFlag = flag.Int("concurrency", 0, "How many transcodes run in parallel")
		playlistFlag    = flag.Bool("playlist", false, "Create a playlist file next to the tracks")
		playlistFmtFlag = flag.String("playlist-format", "", "Playlist format: m3u, pls, wpl or zpl")
		coverFlag       = flag.Bool("cover", false, "Embed cover art found next to the sheet")
		ffmpegFlag      = flag.String("ffmpeg", "", "Path to the ffmpeg binary")
		ffprobeFlag     = flag.String("ffprobe", "", "Path to the ffprobe binary")
		dryRunFlag      = flag.Bool("dry-run", false, "Plan the split without writing any file")
		verboseFlag     = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("splat - split continuous rips into per-track FLAC files")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  splat [options] <sheet.cue>")
		fmt.Println()
		fmt.Println("For interactive mode, use: splat-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}
	cuePath := flag.Arg(0)

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *noTaggingFlag {
		settings.Tagging = false
	}
	if *streamCopyFlag {
		settings.CopyMode = config.CopyModeStreamCopy
	}
	if *onExistsFlag != "" {
		settings.OnExists = *onExistsFlag
	}
	if *concurrencyFlag > 0 {
		settings.Concurrency = *concurrencyFlag
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *playlistFmtFlag != "" {
		settings.PlaylistFormat = *playlistFmtFlag
	}
	if *coverFlag {
		settings.EmbedCoverArt = true
	}
	if *ffmpegFlag != "" {
		settings.FFmpegPath = *ffmpegFlag
	}
	if *ffprobeFlag != "" {
		settings.FFprobePath = *ffprobeFlag
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	manager := split.NewManager(settings, func(event split.ProgressEvent) {
		if event.Level == split.LevelVerbose && !*verboseFlag {
			return
		}

		out := os.Stdout
		prefix := "   "
		switch event.Level {
		case split.LevelError:
			out = os.Stderr
			prefix = "error: "
		case split.LevelWarning:
			prefix = "warning: "
		}
		fmt.Fprintln(out, prefix+event.Message)
	})
	manager.SetDryRun(*dryRunFlag)

	if err := manager.Initialize(ctx, cuePath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := manager.Run(ctx)
	if ctx.Err() != nil {
		fmt.Println("\nSplit cancelled.")
		os.Exit(130)
	}
	if err := report.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
