package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var lookupPhone string

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Look up the LeadSquared lead for a phone number",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := newService(cfg).Retrieve(cmd.Context(), lookupPhone)
		if err != nil {
			return eris.Wrap(err, "lookup")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupPhone, "phone", "", "customer phone number (any format, last 9 digits are used)")
	_ = lookupCmd.MarkFlagRequired("phone")
	rootCmd.AddCommand(lookupCmd)
}
