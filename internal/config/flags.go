package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into encoding, display, and utility.

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses args (os.Args[1:]) into cfg. On --help or --version it
// prints and exits. On error it returns non-nil (unknown flag, missing
// positional arg). version is shown in help and --version output.
func ParseFlags(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet("webpbatch", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var showHelp, showVersion, forceColor, noColor bool

	// Encoding.
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "Encoder quality 0-100")
	fs.IntVar(&cfg.Quality, "q", cfg.Quality, "Same as --quality")
	fs.BoolVar(&cfg.Lossless, "lossless", cfg.Lossless, "Encode losslessly")
	fs.BoolVar(&cfg.Lossless, "l", cfg.Lossless, "Same as --lossless")

	// Output.
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory root")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --out")

	// Display.
	fs.BoolVar(&forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")

	// Utility.
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Check encoder availability and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&showVersion, "V", false, "Same as --version")
	fs.BoolVar(&showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&showHelp, "h", false, "Same as --help")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if showVersion {
		fmt.Fprintln(os.Stdout, "webpbatch v"+version)
		os.Exit(0)
	}

	if noColor {
		cfg.ColorMode = ColorNever
	} else if forceColor {
		cfg.ColorMode = ColorAlways
	}

	return parsePositionalArgs(fs, cfg)
}

// parsePositionalArgs sets InputPath from the single positional arg when
// not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one input file or directory")
	}
	cfg.InputPath = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(cfg.OutputDir)
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 26 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "webpbatch v" + version + " — batch image to WebP converter"},
		{"", ""},
		{"  webpbatch [OPTIONS] -o <output_dir> <input>", ""},
		{"", ""},
		{"Encoding", ""},
		{"  -q, --quality <0-100>", "Encoder quality (default: 80)"},
		{"  -l, --lossless", "Encode losslessly"},
		{"", ""},
		{"Output", ""},
		{"  -o, --out <dir>", "Output directory root (required)"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --log <path>", "Append logs to file"},
		{"  -c, --check", "Check cwebp/gif2webp availability and exit"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
