package cmd

import (
	"fmt"
	"io"

	"github.com/danpilch/ifstat/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(out, version.Get().Long())
			return err
		},
	}
}
