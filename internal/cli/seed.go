package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/repository/document"
)

var ErrMissingID = errors.New("catalog entry has no id")

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

// CatalogFile is the layout of a seed file.
type CatalogFile struct {
	Products []model.Product `yaml:"products"`
	Titles   []model.Title   `yaml:"titles"`
}

// SeedResult counts the documents written by Seed.
type SeedResult struct {
	Products int
	Titles   int
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load products and titles into the document store",
		Long: `Write the products and titles of a YAML catalog file through the
configured document store. Existing documents with the same id are replaced.

Example:
  storefront seed --file catalog.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts.RootOptions)
			if err != nil {
				return err
			}

			f, err := os.Open(opts.File)
			if err != nil {
				return fmt.Errorf("failed to open catalog file: %w", err)
			}
			defer f.Close()

			st, err := openStores(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := Seed(cmd.Context(), st.documents, f)
			if err != nil {
				return err
			}

			logger.Info("Seed: catalog written",
				"products", res.Products,
				"titles", res.Titles)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products, %d titles\n", res.Products, res.Titles)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "path to the catalog YAML file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// Seed decodes a catalog file from r and writes every entry to documents.
// The file is validated before anything is written.
func Seed(ctx context.Context, documents model.DocumentStore, r io.Reader) (SeedResult, error) {
	var catalog CatalogFile
	if err := yaml.NewDecoder(r).Decode(&catalog); err != nil && !errors.Is(err, io.EOF) {
		return SeedResult{}, fmt.Errorf("failed to decode catalog file: %w", err)
	}

	for i, p := range catalog.Products {
		if p.ID == "" {
			return SeedResult{}, fmt.Errorf("products[%d]: %w", i, ErrMissingID)
		}
	}
	for i, t := range catalog.Titles {
		if t.ID == "" {
			return SeedResult{}, fmt.Errorf("titles[%d]: %w", i, ErrMissingID)
		}
	}

	var res SeedResult
	for _, p := range catalog.Products {
		if err := writeEntry(ctx, documents, model.CollectionProducts, p.ID, p); err != nil {
			return res, err
		}
		res.Products++
	}
	for _, t := range catalog.Titles {
		if err := writeEntry(ctx, documents, model.CollectionTitles, t.ID, t); err != nil {
			return res, err
		}
		res.Titles++
	}
	return res, nil
}

func writeEntry(ctx context.Context, documents model.DocumentStore, collection, id string, v any) error {
	normalized, err := document.Normalize(v)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", collection, id, err)
	}
	fields, ok := normalized.(map[string]any)
	if !ok {
		return fmt.Errorf("%s/%s: entry is not an object", collection, id)
	}
	delete(fields, "id")

	if err := documents.SetDocument(ctx, collection, id, fields); err != nil {
		return &model.StoreError{Op: "set", Collection: collection, ID: id, Err: err}
	}
	return nil
}
