package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fitable-backend/internal/catalog"
	"fitable-backend/internal/sizing"
)

// recommendInput is the document read by `sizectl recommend`. JSON input is
// accepted as well since it parses as YAML.
type recommendInput struct {
	Profile    *sizing.Profile           `yaml:"profile"`
	Product    sizing.ProductAttributes  `yaml:"product"`
	References []sizing.ReferenceGarment `yaml:"references"`
	BrandChart []sizing.SizeChartEntry   `yaml:"brandChart"`
}

func newRecommendCmd() *cobra.Command {
	var input, tablesPath, seedsPath, format string
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Run one recommendation offline against the bundled catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return errors.New("--input is required")
			}
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			res, err := recommendOffline(cmd.Context(), data, tablesPath, seedsPath)
			if err != nil {
				return err
			}
			switch format {
			case "text":
				renderText(cmd.OutOrStdout(), res)
				return nil
			case "json":
			default:
				return fmt.Errorf("unknown --format %q (json or text)", format)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML or JSON file with profile, product and optional references")
	cmd.Flags().StringVar(&tablesPath, "tables", "", "override sizing tables file")
	cmd.Flags().StringVar(&seedsPath, "seeds", "", "seeds file or glob such as charts/**/*.yaml (defaults to the bundled catalog)")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or text")
	return cmd
}

// recommendOffline resolves the brand chart and references against an
// in-memory catalog, then runs the engine once.
func recommendOffline(ctx context.Context, data []byte, tablesPath, seedsPath string) (sizing.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var in recommendInput
	if err := yaml.Unmarshal(data, &in); err != nil {
		return sizing.Result{}, fmt.Errorf("decode input: %w", err)
	}

	var tables *sizing.Tables
	if tablesPath != "" {
		t, err := sizing.LoadTables(tablesPath)
		if err != nil {
			return sizing.Result{}, err
		}
		tables = t
	}

	seeds, err := loadSeeds(seedsPath)
	if err != nil {
		return sizing.Result{}, err
	}
	charts := catalog.NewService(catalog.NewMemoryRepo())
	if _, err := charts.Seed(ctx, seeds); err != nil {
		return sizing.Result{}, err
	}

	engineIn := sizing.Input{Profile: in.Profile, Product: in.Product, BrandChart: in.BrandChart}
	if in.Profile != nil {
		if len(engineIn.BrandChart) == 0 {
			_, rows, err := charts.BrandChart(ctx, in.Product.Brand)
			if err != nil && !errors.Is(err, catalog.ErrNotFound) {
				return sizing.Result{}, err
			}
			engineIn.BrandChart = rows
		}
		refs := in.References
		if in.Profile.ReferenceBrand != "" && in.Profile.ReferenceSize != "" {
			refs = append(refs, sizing.ReferenceGarment{Brand: in.Profile.ReferenceBrand, SizeLabel: in.Profile.ReferenceSize})
		}
		resolved, err := charts.ResolveReferences(ctx, in.Profile.Gender, refs)
		if err != nil {
			return sizing.Result{}, err
		}
		engineIn.References = resolved
	}
	return sizing.New(tables).Recommend(engineIn), nil
}

// loadSeeds reads the bundled catalog, one seeds file, or every file matching
// a doublestar glob. Brands repeated across files are upserted in file order.
func loadSeeds(pattern string) ([]catalog.BrandSeed, error) {
	if pattern == "" {
		return catalog.DefaultSeeds()
	}
	paths, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("seeds pattern %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no seeds files match %q", pattern)
	}
	var seeds []catalog.BrandSeed
	for _, path := range paths {
		batch, err := catalog.LoadSeeds(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		seeds = append(seeds, batch...)
	}
	return seeds, nil
}
