package app

import (
	"github.com/spf13/cobra"

	"github.com/pustakahq/pustakactl/internal/convert"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <source> <destination>",
		Short: "Convert a collection file between JSON, CSV, and YAML",
		Long: `Convert rewrites a collection file in another encoding, chosen from the
destination's extension (.json, .csv, .yml/.yaml). Field names are kept;
numeric-looking CSV cells are parsed as int, then float, then left as text.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := convert.Convert(args[0], args[1]); err != nil {
				return err
			}
			ok("converted %s -> %s", args[0], args[1])
			return nil
		},
	}
}
