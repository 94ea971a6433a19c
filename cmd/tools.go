package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Void-n-Null/MiniCouncil/internal/config"
	"github.com/Void-n-Null/MiniCouncil/internal/tools"
	"github.com/Void-n-Null/MiniCouncil/internal/workspace"
)

var toolsJSON bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the registered tools and their parameters",
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "Dump the wire-format schemas as JSON")
}

func runTools(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	guard := workspace.NewGuard(cfg.Workspace.Root, cfg.Workspace.AllowedDir)
	registry := tools.NewRegistry()
	registry.Discover(tools.DefaultFactories(guard))

	if toolsJSON {
		data, err := json.MarshalIndent(registry.Schemas(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for _, d := range registry.List() {
		fmt.Printf("%s - %s\n", d.Name(), d.Description())
		for _, p := range d.Parameters() {
			req := "optional"
			if p.Required() {
				req = "required"
			} else {
				req = fmt.Sprintf("optional, default %v", p.Default)
			}
			fmt.Printf("  %-12s %-8s (%s) %s\n", p.Name, p.Type, req, p.Description)
		}
		fmt.Println()
	}
	return nil
}
