package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tsawler/rubrica"
	"github.com/tsawler/rubrica/format"
)

// runConvert performs the conversion described by the command line.
func runConvert(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	if mode == "" {
		return usagef("the --mode option is required, for example --mode xml2text")
	}
	from, to, err := format.ParseMode(mode)
	if err != nil {
		return &usageError{err}
	}

	infile := args[0]
	if _, err := os.Stat(infile); err != nil {
		return usagef("the input file '%s' does not exist", infile)
	}

	force := viper.GetBool("force")
	outfile := infile
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "You did not provide an output file. The input file will be overwritten")
		ok, err := confirmOverwrite(force)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	} else {
		outfile = args[1]
		if fileExists(outfile) {
			fmt.Fprintf(os.Stderr, "The output filename '%s' already exists.\n", outfile)
			ok, err := confirmOverwrite(force)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
	}

	offset := viper.GetInt("offset")

	fmt.Fprintf(os.Stderr, "Reading bookmarks in '%s' in %s format\n", infile, from)
	root, warnings, err := rubrica.Open(infile, from).Offset(offset).Tree()
	if err != nil {
		return err
	}
	if offset != 0 {
		fmt.Fprintf(os.Stderr, "Shifting page-numbers by %d\n", offset)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		root.Dump(os.Stderr)
	}

	out := rubrica.FromTree(root)
	if viper.GetBool("long") {
		out = out.Long()
	}
	fmt.Fprintf(os.Stderr, "Writing out bookmarks to '%s' in %s format\n", outfile, to)
	writeWarnings, err := out.Save(outfile, to)
	if err != nil {
		return err
	}

	for _, w := range append(warnings, writeWarnings...) {
		fmt.Fprintln(os.Stderr, "Warning:", w.Message)
	}
	return nil
}

// confirmOverwrite asks whether the target may be overwritten. force
// answers yes without asking. When stdin is not a terminal there is
// nobody to ask, so the overwrite is refused.
func confirmOverwrite(force bool) (bool, error) {
	if force {
		return true, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New("refusing to overwrite without confirmation (stdin is not a terminal; use --force)")
	}
	return promptYes(os.Stdin)
}

// promptYes reads the overwrite answer from r. Only "yes" confirms.
func promptYes(r io.Reader) (bool, error) {
	fmt.Fprint(os.Stderr, "Do you want to overwrite? Yes [No]: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return strings.ToLower(strings.TrimSpace(line)) == "yes", nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
