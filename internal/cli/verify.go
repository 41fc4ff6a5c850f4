package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJamon/xrplpay/internal/payment"
)

var (
	verifyHash   string
	verifyTo     string
	verifyAmount string
	verifyRef    string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that a transaction settled an offer",
	Long: `Look up a transaction by hash and check that it is a validated, successful
Payment to the given destination that delivered exactly the given amount and
carries the offer reference as a text memo.

Exits with an error unless the offer is settled.`,
	Example: `  xrplpay verify --hash E08D6E97... --to rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe --amount 100 --ref offer-42`,
	Args:    cobra.NoArgs,
	RunE:    runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&verifyHash, "hash", "", "transaction hash")
	verifyCmd.Flags().StringVar(&verifyTo, "to", "", "address the offer is paid to")
	verifyCmd.Flags().StringVar(&verifyAmount, "amount", "", "offer price in XRP")
	verifyCmd.Flags().StringVar(&verifyRef, "ref", "", "offer reference")
	for _, name := range []string{"hash", "to", "amount", "ref"} {
		verifyCmd.MarkFlagRequired(name)
	}
}

type verifyView struct {
	Hash     string `json:"hash"`
	Paid     bool   `json:"paid"`
	Pending  bool   `json:"pending,omitempty"`
	Mismatch string `json:"mismatch,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	paid, err := payment.VerifyOfferPayment(cmd.Context(), client, payment.OfferPayment{
		Hash:         verifyHash,
		Destination:  verifyTo,
		Amount:       verifyAmount,
		ReferenceTag: verifyRef,
	})

	view := verifyView{
		Hash:    verifyHash,
		Paid:    paid,
		Pending: errors.Is(err, payment.ErrPaymentPending),
	}
	var mismatch *payment.MismatchError
	if errors.As(err, &mismatch) {
		view.Mismatch = mismatch.Field
	}
	if err != nil {
		view.Error = err.Error()
	}

	data, jsonErr := json.MarshalIndent(view, "", "  ")
	if jsonErr != nil {
		return jsonErr
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
