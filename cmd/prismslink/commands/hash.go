package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"prismslink/internal/crypto"
	"prismslink/internal/domain"
	"prismslink/internal/hashing"
)

func hashCmd() *cobra.Command {
	var (
		password   string
		h          domain.Hashing
		maxKeyBits int
	)
	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the partial hash, full hash and key for a password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(h.PrimaryMultiples) != len(h.PrimaryModulos) {
				return fmt.Errorf("--primary-mult and --primary-mod differ in length")
			}
			if len(h.SecondaryMultiples) != len(h.SecondaryModulos) {
				return fmt.Errorf("--secondary-mult and --secondary-mod differ in length")
			}
			key := hashing.DeriveKey(password, h, maxKeyBits)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Partial hash: %v\n", hashing.PartialHash(password, h))
			fmt.Fprintf(out, "Full hash:    %v\n", hashing.FullHash(password, h))
			fmt.Fprintf(out, "Key:          %s\n", key)
			fmt.Fprintf(out, "Fingerprint:  %s\n", crypto.Fingerprint(key))
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password to hash")
	cmd.Flags().Int64SliceVar(&h.PrimaryMultiples, "primary-mult", nil, "primary multiples")
	cmd.Flags().Int64SliceVar(&h.PrimaryModulos, "primary-mod", nil, "primary moduli")
	cmd.Flags().Int64SliceVar(&h.SecondaryMultiples, "secondary-mult", nil, "secondary multiples")
	cmd.Flags().Int64SliceVar(&h.SecondaryModulos, "secondary-mod", nil, "secondary moduli")
	cmd.Flags().IntVar(&maxKeyBits, "max-key-bits", hashing.DefaultMaxKeyBits, "bound on the derived key")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
