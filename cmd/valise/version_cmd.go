package main

import (
	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/output"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the version",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.FromContext(cmd.Context()).Println(versionString())
			return nil
		},
	}
}
