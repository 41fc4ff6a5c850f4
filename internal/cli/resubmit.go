package cli

import (
	"github.com/spf13/cobra"

	"github.com/LeJamon/xrplpay/internal/payment"
)

var resubmitBlob string

var resubmitCmd = &cobra.Command{
	Use:   "resubmit",
	Short: "Submit an already signed payment once more",
	Long: `Submit a signed Payment blob printed by an earlier "pay" whose result was
ambiguous. The blob is sent unchanged; its fixed sequence number means it can
apply at most once.`,
	Args: cobra.NoArgs,
	RunE: runResubmit,
}

func init() {
	rootCmd.AddCommand(resubmitCmd)

	resubmitCmd.Flags().StringVar(&resubmitBlob, "blob", "", "signed transaction blob (hex)")
	resubmitCmd.MarkFlagRequired("blob")
}

func runResubmit(cmd *cobra.Command, args []string) error {
	tx, err := payment.ParseSignedBlob(resubmitBlob)
	if err != nil {
		return err
	}

	submitter, cleanup, err := newSubmitter()
	if err != nil {
		return err
	}
	defer cleanup()

	outcome, err := submitter.Resubmit(cmd.Context(), tx)
	if printErr := printOutcome(cmd.OutOrStdout(), outcome); printErr != nil {
		return printErr
	}
	return err
}
