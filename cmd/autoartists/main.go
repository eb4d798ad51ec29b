package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/autoartists/internal/audio"
	"github.com/handiism/autoartists/internal/autoartists"
	"github.com/handiism/autoartists/internal/config"
	"github.com/handiism/autoartists/internal/library"
	"github.com/handiism/autoartists/internal/logging"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	oldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configFlag      = pflag.StringP("config", "c", config.DefaultPath(), "Path to config file")
		libraryFlag     = pflag.StringP("library", "l", "", "Library directory (overrides config)")
		overwriteFlag   = pflag.Bool("overwrite", false, "Overwrite if artists field is already present (overrule config overwrite: false)")
		noOverwriteFlag = pflag.Bool("no-overwrite", false, "Don't overwrite if artists field is already present (overrule config overwrite: true)")
		yesFlag         = pflag.BoolP("yes", "y", false, "Apply all changes without asking")
		dryRunFlag      = pflag.BoolP("dry-run", "n", false, "Show changes without writing them")
		verboseFlag     = pflag.BoolP("verbose", "v", false, "Show verbose output")
		playlistFlag    = pflag.StringP("playlist", "p", "", "Write a playlist (.m3u, .pls, .wpl) of the changed items")
		importFlag      = pflag.Bool("import", false, "Run the import stage over the matched items")
	)

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "autoartists - fill in the artists field from artist and title tags")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  autoartists [options] [query...]")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Query terms match artist, title or path; use artist:, title:, path: or artists: to pick a field.")
		fmt.Fprintln(os.Stderr, "For interactive mode, use: autoartists-tui")
		fmt.Fprintln(os.Stderr)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		return 1
	}
	if *libraryFlag != "" {
		settings.LibraryPath = *libraryFlag
	}
	if *verboseFlag {
		settings.Log.Level = "debug"
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, err := logging.New(settings.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	overwrite, err := autoartists.ResolveOverwrite(settings.Overwrite, *overwriteFlag, *noOverwriteFlag)
	if err != nil {
		logger.Error("Invalid flags", zap.Error(err))
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		return 1
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

	lib := library.New(settings, logger)
	manager := autoartists.NewManager(settings, lib, logger, func(event autoartists.ProgressEvent) {
		if event.Level == autoartists.LevelVerbose && !*verboseFlag {
			return
		}
		printEvent(event)
	})
	manager.SetOverwrite(overwrite)

	query := library.ParseQuery(pflag.Args())

	if *importFlag {
		return runImport(ctx, manager, lib, query)
	}

	plan, err := manager.Plan(ctx, query)
	if err != nil {
		return exitCode(ctx, err)
	}

	fmt.Println(plan.Summary(overwrite))
	if len(plan.Changes) == 0 {
		fmt.Println(plan.EmptyMessage())
		return 0
	}

	printPlan(plan)

	if *playlistFlag != "" {
		creator := audio.NewPlaylistCreator(audio.FormatFromPath(*playlistFlag), true)
		if err := creator.WritePlaylist(*playlistFlag, plan.Changes); err != nil {
			fmt.Fprintln(os.Stderr, warningStyle.Render(fmt.Sprintf("Error writing playlist: %v", err)))
		} else {
			fmt.Printf("Wrote playlist %s\n", *playlistFlag)
		}
	}

	if *dryRunFlag {
		fmt.Println("\n[Dry run - not writing]")
		return 0
	}

	var confirmer autoartists.Confirmer = surveyConfirmer{}
	if *yesFlag {
		confirmer = yesConfirmer{}
	}

	if _, err := manager.Apply(ctx, plan.Changes, confirmer); err != nil {
		if errors.Is(err, autoartists.ErrCanceled) {
			return 0
		}
		return exitCode(ctx, err)
	}
	return 0
}

// runImport runs the import stage over the matched items.
func runImport(ctx context.Context, manager *autoartists.Manager, lib *library.Library, query library.Query) int {
	items, err := lib.Items(ctx, query)
	if err != nil {
		return exitCode(ctx, err)
	}
	written, err := manager.Imported(ctx, items)
	if err != nil {
		return exitCode(ctx, err)
	}
	if written == 0 && len(items) > 0 {
		fmt.Println("Import stage changed nothing (is auto enabled?)")
		return 0
	}
	fmt.Printf("Import stage changed %d of %d items\n", written, len(items))
	return 0
}

func printPlan(plan *autoartists.Plan) {
	if len(plan.Unchanged) > 0 {
		fmt.Println(headerStyle.Render("Unchanged:"))
	}
	for _, change := range plan.Unchanged {
		fmt.Printf("%s: %s\n", change.Item, formatList(change.Before()))
	}

	fmt.Println("---")
	fmt.Println(headerStyle.Render("Changes:"))
	for _, change := range plan.Changes {
		fmt.Printf("%s: \n", change.Item)
		fmt.Printf("old: %s => new: %s\n",
			oldStyle.Render(formatList(change.Before())),
			newStyle.Render(formatList(change.Artists)))
	}
}

func printEvent(event autoartists.ProgressEvent) {
	switch event.Level {
	case autoartists.LevelError:
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+event.Message))
	case autoartists.LevelWarning:
		fmt.Println(warningStyle.Render(event.Message))
	case autoartists.LevelSuccess:
		fmt.Println(newStyle.Render("✓ " + event.Message))
	default:
		fmt.Println("  " + event.Message)
	}
}

// formatList renders an artists list as [a, b].
func formatList(list []string) string {
	return "[" + strings.Join(list, ", ") + "]"
}

// exitCode reports err and picks the exit status, 130 after an interrupt.
func exitCode(ctx context.Context, err error) int {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		fmt.Println("\nCancelled.")
		return 130
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
