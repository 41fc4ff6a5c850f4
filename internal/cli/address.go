package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LeJamon/xrplpay/internal/crypto"
)

var addressSeed string

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the account a seed controls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, err := seedFrom(addressSeed)
		if err != nil {
			return err
		}
		kp, err := crypto.KeypairFromSeed(seed)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "address:    %s\n", kp.Address())
		fmt.Fprintf(out, "key type:   %s\n", kp.KeyType())
		fmt.Fprintf(out, "public key: %s\n", kp.PublicKeyHex())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addressCmd)

	addressCmd.Flags().StringVar(&addressSeed, "seed", "", "family seed (default $"+SeedEnv+")")
}
