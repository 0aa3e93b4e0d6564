package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dtroode/storefront-server/internal/model"
)

// ReceiptOptions holds flags for the receipt command.
type ReceiptOptions struct {
	*RootOptions
	UserID  string
	OrderID string
}

// NewReceiptCommand creates the receipt command.
func NewReceiptCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReceiptOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Print an archived order receipt",
		Long: `Download an order receipt from the MinIO archive and print it as YAML.

Example:
  storefront receipt --user 6f1c... --order pi_3Nx...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(opts.RootOptions)
			if err != nil {
				return err
			}
			if !cfg.Storage.Enabled {
				return errors.New("receipt archive is disabled, set MINIO_ENABLED=true")
			}

			archive, err := openReceiptArchive(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}

			order, err := archive.GetReceipt(cmd.Context(), opts.UserID, opts.OrderID)
			if errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("no receipt for order %s of user %s", opts.OrderID, opts.UserID)
			}
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			return enc.Encode(order)
		},
	}

	cmd.Flags().StringVar(&opts.UserID, "user", "", "user id (required)")
	cmd.Flags().StringVar(&opts.OrderID, "order", "", "order (payment intent) id (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("order")

	return cmd
}
