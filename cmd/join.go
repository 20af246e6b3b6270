package cmd

import (
	"github.com/digigeolab/parkphotos/internal/iojoin"
	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getJoinCmd returns the join command.
func getJoinCmd() *cobra.Command {
	var inSnapshot, userTable, outSnapshot, regionsPath string

	joinCmd := &cobra.Command{
		Use:   "join",
		Short: "Merge visitor survey attributes onto the records",
		Long: `Merge the visitor metadata table onto a snapshot by photo
identifier and derive the season, visitor origin and landscape region
columns.

Records without a visitor row are dropped. The landscape regions come
from regions.yaml in the config directory unless --regions points
elsewhere.

Examples:
  parkphotos join --in objects.gob --users visitors.csv --out joined.gob`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(inSnapshot, userTable, outSnapshot, regionsPath)
		},
	}

	joinCmd.Flags().StringVar(&inSnapshot, "in", "",
		"input snapshot file")
	joinCmd.Flags().StringVar(&userTable, "users", "",
		"visitor metadata table (CSV)")
	joinCmd.Flags().StringVar(&outSnapshot, "out", "",
		"output snapshot file")
	joinCmd.Flags().StringVar(&regionsPath, "regions", "",
		"landscape regions file (default: regions.yaml in config dir)")
	joinCmd.MarkFlagRequired("in")
	joinCmd.MarkFlagRequired("users")
	joinCmd.MarkFlagRequired("out")

	return joinCmd
}

func runJoin(inSnapshot, userTable, outSnapshot, regionsPath string) error {
	if regionsPath == "" {
		regionsPath = config.RegionsFilePath(cfg.HomeDir)
	}

	j := iojoin.New(iojoin.NewLoader(regionsPath))
	if err := j.Join(inSnapshot, userTable, outSnapshot); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
