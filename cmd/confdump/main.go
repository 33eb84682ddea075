// Package main implements confdump, a debugging tool that resolves a
// confstack configuration and prints the effective key-value pairs.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/confstack/loader"
	"github.com/dshills/confstack/source"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var dirs []string
	var files []string

	rootCmd := &cobra.Command{
		Use:   "confdump",
		Short: "Print the effective confstack configuration",
		Long: `confdump resolves a confstack configuration the same way an application
would (confstack-defaults, confstack-app, confstack-local, later files
overriding earlier ones) and prints every effective key=value pair, so you
can see exactly which value wins after merging.`,
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(dirs, files)
			if err != nil {
				return err
			}
			dump(cmd, cfg)
			return nil
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.Flags().StringSliceVarP(&dirs, "dir", "d", nil,
		"directory to search for default source files (repeatable, default \".\")")
	rootCmd.Flags().StringSliceVarP(&files, "file", "f", nil,
		"extra TOML/YAML file overriding the default source (repeatable, later wins)")

	return rootCmd
}

// resolve builds the default source, then overlays any extra files in
// order.
func resolve(dirs, files []string) (source.Configuration, error) {
	def, err := loader.DefaultSource(dirs...)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return def, nil
	}

	merged := source.CopyOf(def, "confdump")
	for _, path := range files {
		src, err := loader.FileSource(path)
		if err != nil {
			return nil, err
		}
		if src == nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		for _, key := range src.Keys() {
			if val, ok := src.Get(key); ok {
				_ = merged.Set(key, val)
			}
		}
	}
	return merged, nil
}

// dump prints sorted key=value pairs to the command's stdout.
func dump(cmd *cobra.Command, cfg source.Configuration) {
	for _, key := range cfg.Keys() {
		val, _ := cfg.Get(key)
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%v\n", key, val)
	}
}
