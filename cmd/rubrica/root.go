package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// cfgFile is the --config flag value, read by initConfig.
var cfgFile string

// usageError marks failures that should exit with status 2 instead
// of the general failure status 1.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{fmt.Errorf(format, args...)}
}

func init() {
	cobra.OnInitialize(initConfig)
}

// newRootCmd builds the rubrica command. The tool is single-purpose,
// so the root command performs the conversion itself. A fresh instance
// is built for every run so that tests can execute independently.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rubrica --mode in2out [--offset N] [--long] [--force] INFILE [OUTFILE]",
		Short: "Convert bookmark descriptions between PDF and DJVU tool formats",
		Long: `rubrica converts hierarchical bookmark (outline) descriptions between
the textual formats used by PDF and DJVU tooling: iText XML ("xml"),
indentation-based plain text ("text"), pdftk dump_data output ("pdftk"),
jpdftweak CSV ("csv"), nested HTML lists ("html"), djvused s-expressions
("djvused"), and LaTeX bookmark commands ("latex").

The conversion is selected with --mode in2out over those format names,
for example --mode xml2text. Without OUTFILE the input file is rewritten
in place after confirmation. All data is read and written in UTF-8, with
the exception of XML files, which are read in the encoding declared in
their header but always written in UTF-8.`,
		Example:       `  rubrica --offset 2 --mode xml2text bm.xml bm.txt`,
		Version:       version,
		Args:          checkArgs,
		RunE:          runConvert,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringP("mode", "m", "", "conversion mode in2out, for example xml2text (required)")
	cmd.Flags().IntP("offset", "o", 0, "shift all page numbers by this amount")
	cmd.Flags().BoolP("long", "l", false, "write full text destinations instead of bare page numbers")
	cmd.Flags().Bool("force", false, "overwrite files without asking")
	cmd.Flags().BoolP("verbose", "v", false, "dump the parsed bookmark tree to stderr")
	cmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: ./rubrica.yaml or ~/.config/rubrica/config.yaml)")

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})

	viper.BindPFlag("offset", cmd.Flags().Lookup("offset"))
	viper.BindPFlag("long", cmd.Flags().Lookup("long"))
	viper.BindPFlag("force", cmd.Flags().Lookup("force"))

	return cmd
}

func checkArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(1, 2)(cmd, args); err != nil {
		return &usageError{err}
	}
	return nil
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rubrica")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rubrica"))
		}
	}

	viper.SetEnvPrefix("RUBRICA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// run executes the command line and returns the process exit status:
// 0 on success, 1 on conversion failure, 2 on usage errors.
func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		var uerr *usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(os.Stderr, "Run '%s --help' for usage.\n", cmd.Name())
			return 2
		}
		return 1
	}
	return 0
}
