package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/csat-sync/internal/survey"
)

var (
	submitPhone     string
	submitStatus    string
	submitFeedback  string
	submitFirstName string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Record one survey answer without going through the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newService(cfg)
		out, err := svc.Submit(cmd.Context(), survey.Response{
			Phone:     submitPhone,
			Status:    survey.Status(submitStatus),
			Feedback:  submitFeedback,
			FirstName: submitFirstName,
		})
		if err != nil {
			return eris.Wrap(err, "submit")
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			survey.Outcome
			SubmissionID string `json:"submissionId"`
		}{out, out.SubmissionID})
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitPhone, "phone", "", "customer phone number (any format, last 9 digits are used)")
	submitCmd.Flags().StringVar(&submitStatus, "status", "", "survey answer, e.g. Satisfied or Unsatisfied")
	submitCmd.Flags().StringVar(&submitFeedback, "feedback", "", "optional free-text feedback")
	submitCmd.Flags().StringVar(&submitFirstName, "first-name", "", "known first name; skips the CRM lookup")
	_ = submitCmd.MarkFlagRequired("phone")
	_ = submitCmd.MarkFlagRequired("status")
	rootCmd.AddCommand(submitCmd)
}
