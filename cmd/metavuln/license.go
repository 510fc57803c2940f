package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const licenseText = `
    metavuln is released under the MIT License.
    This program comes with ABSOLUTELY NO WARRANTY.
    This is free software, and you are welcome to redistribute it
    under the terms of the MIT License.
`

func licenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "license",
		Short: "Print license info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), licenseText)
			return err
		},
	}
}
