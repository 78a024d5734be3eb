package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/arbgen/config"
)

var initForce bool

// InitCmd represents the init command
var InitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default arbgen.toml",
	Long: `Write arbgen.toml with every option at its default value into dir (default:
the current directory). An existing file is kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		path := filepath.Join(dir, config.FileName)
		if err := config.WriteDefault(path, initForce); err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("wrote %s", path))
		return nil
	},
}

func init() {
	InitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing arbgen.toml (kept as .back1)")
}
