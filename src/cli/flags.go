package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

// SubCommand represents CLI subcommands
type SubCommand string

const (
	ItemSubCommand  SubCommand = "item"
	SpellSubCommand SubCommand = "spell"
	CacheSubCommand SubCommand = "cache"
)

var KnownSubCommands = []SubCommand{ItemSubCommand, SpellSubCommand, CacheSubCommand}

// Flags holds all CLI flags and configuration
type Flags struct {
	SubCommand  SubCommand
	LogLevel    slog.Level
	ItemConfig  ItemConfig
	SpellConfig SpellConfig
	CacheConfig CacheConfig
	ShowHelp    bool
	ShowVersion bool
}

// ItemConfig holds configuration for the item subcommand.
type ItemConfig struct {
	Name     string
	Class    string
	Slot     string
	SheetDir string
	Append   bool
}

// SpellConfig holds configuration for the spell subcommand.
type SpellConfig struct {
	Name string
	ID   string
}

// CacheConfig holds configuration for the cache subcommand.
type CacheConfig struct {
	ShowStats   bool
	ClearItems  bool
	ClearSpells bool
	ClearAll    bool
}

// ParseFlags parses command line arguments and returns configuration
func ParseFlags(args []string, version string) (*Flags, error) {
	flags := &Flags{}

	// Global flags
	defaults := flag.NewFlagSet("eq-gear-compare", flag.ContinueOnError)
	defaults.BoolVarP(&flags.ShowHelp, "help", "h", false, "print this help and exit")
	defaults.BoolVarP(&flags.ShowVersion, "version", "V", false, "print program version and exit")

	var logLevelStr string
	defaults.StringVar(&logLevelStr, "log-level", "info", "verbosity level. one of: debug, info, warn, error")

	// Determine subcommand
	var subcommand string
	if len(args) > 1 {
		subcommand = args[1]
	}

	var flagset *flag.FlagSet
	itemConfig := ItemConfig{}
	spellConfig := SpellConfig{}
	cacheConfig := CacheConfig{}

	switch subcommand {
	case string(ItemSubCommand):
		flagset = flag.NewFlagSet("item", flag.ExitOnError)
		flagset.StringVar(&itemConfig.Class, "class", "", "character class sheet to append to")
		flagset.StringVar(&itemConfig.Slot, "slot", "", "equipment slot for the sheet row")
		flagset.StringVar(&itemConfig.SheetDir, "sheet-dir", ".", "directory holding the class sheets")
		flagset.BoolVar(&itemConfig.Append, "append", false, "append the matched item to the class sheet")
		flagset.AddFlagSet(defaults)

	case string(SpellSubCommand):
		flagset = flag.NewFlagSet("spell", flag.ExitOnError)
		flagset.StringVar(&spellConfig.ID, "id", "", "spell id, skips name resolution when given")
		flagset.AddFlagSet(defaults)

	case string(CacheSubCommand):
		flagset = flag.NewFlagSet("cache", flag.ExitOnError)
		flagset.BoolVar(&cacheConfig.ShowStats, "stats", false, "print cache statistics")
		flagset.BoolVar(&cacheConfig.ClearItems, "clear-items", false, "clear the item cache")
		flagset.BoolVar(&cacheConfig.ClearSpells, "clear-spells", false, "clear the spell cache")
		flagset.BoolVar(&cacheConfig.ClearAll, "clear", false, "clear both caches")
		flagset.AddFlagSet(defaults)

	default:
		flagset = defaults
	}

	// Parse flags
	if err := flagset.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// Handle help and version
	if flags.ShowHelp {
		printUsage(flagset)
		os.Exit(0)
	}

	if flags.ShowVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Validate subcommand
	if subcommand == "" || !slices.Contains(KnownSubCommands, SubCommand(subcommand)) {
		printUsage(flagset)
		return nil, fmt.Errorf("unknown subcommand: %s", subcommand)
	}

	// Multi-word item and spell names arrive as separate positional args.
	positional := flagset.Args()
	if len(positional) > 2 {
		name := strings.TrimSpace(strings.Join(positional[2:], " "))
		itemConfig.Name = name
		spellConfig.Name = name
	}

	switch SubCommand(subcommand) {
	case ItemSubCommand:
		if itemConfig.Name == "" {
			return nil, fmt.Errorf("item subcommand requires an item name")
		}
	case SpellSubCommand:
		if spellConfig.Name == "" && spellConfig.ID == "" {
			return nil, fmt.Errorf("spell subcommand requires a spell name or --id")
		}
	}

	// Parse log level
	logLevelMap := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}

	logLevel, exists := logLevelMap[logLevelStr]
	if !exists {
		return nil, fmt.Errorf("unknown log level: %s", logLevelStr)
	}

	// Assign parsed values
	flags.SubCommand = SubCommand(subcommand)
	flags.LogLevel = logLevel
	flags.ItemConfig = itemConfig
	flags.SpellConfig = spellConfig
	flags.CacheConfig = cacheConfig

	return flags, nil
}

// printUsage prints usage information
func printUsage(flagset *flag.FlagSet) {
	fmt.Println("usage: eq-gear-compare <item|spell|cache> [options] [name]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  item     Look up an item by name and print its stats")
	fmt.Println("  spell    Look up a spell by name or id and print its details")
	fmt.Println("  cache    Inspect or clear the item and spell caches")
	fmt.Println()
	fmt.Println("Options:")
	flagset.PrintDefaults()
}
