package cli

import (
	"github.com/spf13/cobra"

	"github.com/LeJamon/xrplpay/internal/crypto"
	"github.com/LeJamon/xrplpay/internal/payment"
)

var (
	payTo     string
	payAmount string
	payRef    string
	paySeed   string
)

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Send one XRP payment for a marketplace offer",
	Long: `Check that the destination exists, read the sender's sequence, then build,
sign and submit a single Payment carrying the offer reference as a memo.
The transaction is never resubmitted automatically.`,
	Example: `  xrplpay pay --to rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe --amount 100 --ref offer-42`,
	Args:    cobra.NoArgs,
	RunE:    runPay,
}

func init() {
	rootCmd.AddCommand(payCmd)

	payCmd.Flags().StringVar(&payTo, "to", "", "destination classic address")
	payCmd.Flags().StringVar(&payAmount, "amount", "", "amount in XRP, up to 6 decimals")
	payCmd.Flags().StringVar(&payRef, "ref", "", "offer reference attached as a memo")
	payCmd.Flags().StringVar(&paySeed, "seed", "", "sender family seed (default $"+SeedEnv+")")
	payCmd.MarkFlagRequired("to")
	payCmd.MarkFlagRequired("amount")
}

func runPay(cmd *cobra.Command, args []string) error {
	seed, err := seedFrom(paySeed)
	if err != nil {
		return err
	}
	sender, err := crypto.KeypairFromSeed(seed)
	if err != nil {
		return err
	}

	submitter, cleanup, err := newSubmitter()
	if err != nil {
		return err
	}
	defer cleanup()

	outcome, err := submitter.Submit(cmd.Context(), payment.Request{
		Destination:  payTo,
		Sender:       sender,
		Amount:       payAmount,
		ReferenceTag: payRef,
	})
	if printErr := printOutcome(cmd.OutOrStdout(), outcome); printErr != nil {
		return printErr
	}
	return err
}
