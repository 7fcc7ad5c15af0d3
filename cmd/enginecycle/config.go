package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/engine-cycle/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after applying the file search order, the
preset and any engine flags, as YAML. With --defaults, prints the
embedded default file instead, which is a good starting point for
~/.enginecycle/configs/engine.yaml.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the embedded default file")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagConfigDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	data, err := config.Marshal(s.config)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "# source: %s\n", s.source)
	_, err = out.Write(data)
	return err
}
