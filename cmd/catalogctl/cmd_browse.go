package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/qurrah/internal/bootstrap"
	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/models"
	"github.com/example/qurrah/internal/utils"
)

type browseOptions struct {
	Category  string
	Gender    string
	Widths    []string
	Shapes    []string
	Materials []string
	Colors    []string
	MinPrice  string
	MaxPrice  string
	Sort      string
	Locale    string
	Verbose   bool
	Timeout   time.Duration
}

var browseOpts browseOptions

// catalogctl browse
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List a category through the catalog view controller",
	Example: `  catalogctl browse --category eyeglasses --gender men --shape round,square
  catalogctl browse --category sunglasses --sort price-asc --max-price 180 --locale ar`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, backend, log, err := boot(ctx)
		if err != nil {
			return err
		}
		defer backend.Close(context.Background())

		svc := catalog.NewService(backend.Store, bootstrap.OpenCache(ctx, cfg, log), cfg.CacheTTL, log)
		if browseOpts.Timeout == 0 {
			browseOpts.Timeout = cfg.FetchTimeout
		}
		return browse(ctx, svc, browseOpts, log, cmd.OutOrStdout())
	},
}

func init() {
	f := browseCmd.Flags()
	f.StringVarP(&browseOpts.Category, "category", "c", "", "category slug (required)")
	f.StringVar(&browseOpts.Gender, "gender", "", "men, women or unisex")
	f.StringSliceVar(&browseOpts.Widths, "width", nil, "frame widths to include")
	f.StringSliceVar(&browseOpts.Shapes, "shape", nil, "frame shapes to include")
	f.StringSliceVar(&browseOpts.Materials, "material", nil, "frame materials to include")
	f.StringSliceVar(&browseOpts.Colors, "color", nil, "colour names to include")
	f.StringVar(&browseOpts.MinPrice, "min-price", "", "lowest price")
	f.StringVar(&browseOpts.MaxPrice, "max-price", "", "highest price")
	f.StringVarP(&browseOpts.Sort, "sort", "s", string(catalog.SortNewest), "newest, price-asc, price-desc or bestseller")
	f.StringVar(&browseOpts.Locale, "locale", models.LocaleEnglish, "en or ar")
	f.BoolVarP(&browseOpts.Verbose, "verbose", "v", false, "print every controller state change")
	f.DurationVar(&browseOpts.Timeout, "timeout", 0, "per-fetch timeout (defaults to FETCH_TIMEOUT_SECONDS)")
	_ = browseCmd.MarkFlagRequired("category")
}

// browse mounts a controller on the category page, replays the requested
// filter changes and prints the settled product list.
func browse(ctx context.Context, svc *catalog.Service, opts browseOptions, log *slog.Logger, out io.Writer) error {
	category, initial, err := svc.CategoryPage(ctx, opts.Category)
	if err != nil {
		return err
	}
	if opts.Sort != "" && !catalog.Sort(opts.Sort).Valid() {
		return fmt.Errorf("unknown sort %q", opts.Sort)
	}

	var observer func(catalog.Snapshot)
	if opts.Verbose {
		observer = func(s catalog.Snapshot) {
			fmt.Fprintf(out, "# seq=%d state=%s active=%d\n", s.Seq, s.State, s.ActiveFilters)
		}
	}

	ctrl := catalog.Mount(ctx, catalog.ControllerConfig{
		Translator:      svc.Translator(),
		Store:           svc.Store(),
		CategorySlug:    category.Slug,
		InitialProducts: initial,
		FetchTimeout:    opts.Timeout,
		Logger:          log,
		Observer:        observer,
	})
	defer ctrl.Unmount()

	mutations := applyOptions(ctrl, opts)

	snap, err := settle(ctx, ctrl, mutations)
	if err != nil {
		return err
	}
	if snap.State == catalog.StateFailed {
		return fmt.Errorf("fetch failed: %w", snap.Err)
	}

	fmt.Fprintf(out, "%s (%s) · %d products · %d filters · sort %s\n",
		category.Name(opts.Locale), category.Slug, len(snap.Products), snap.ActiveFilters, snap.Sort)
	printProducts(out, opts.Locale, snap.Products)
	return nil
}

// applyOptions issues one controller mutation per flag value and returns
// how many were sent.
func applyOptions(ctrl *catalog.Controller, opts browseOptions) uint64 {
	var n uint64
	if opts.Gender != "" {
		g := models.Gender(opts.Gender)
		ctrl.SetGender(&g)
		n++
	}
	for dim, values := range map[catalog.Dimension][]string{
		catalog.DimWidth:    opts.Widths,
		catalog.DimShape:    opts.Shapes,
		catalog.DimMaterial: opts.Materials,
		catalog.DimColor:    opts.Colors,
	} {
		for _, v := range values {
			ctrl.SetFilter(dim, strings.TrimSpace(v))
			n++
		}
	}
	if opts.MinPrice != "" {
		ctrl.SetFilter(catalog.DimMinPrice, opts.MinPrice)
		n++
	}
	if opts.MaxPrice != "" {
		ctrl.SetFilter(catalog.DimMaxPrice, opts.MaxPrice)
		n++
	}
	if opts.Sort != "" && catalog.Sort(opts.Sort) != catalog.SortNewest {
		ctrl.SetSort(catalog.Sort(opts.Sort))
		n++
	}
	return n
}

// settle waits until the controller has processed every mutation and is no
// longer fetching.
func settle(ctx context.Context, ctrl *catalog.Controller, mutations uint64) (catalog.Snapshot, error) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		snap := ctrl.Snapshot()
		if snap.Seq >= mutations && snap.State != catalog.StateFetching {
			return snap, nil
		}
		select {
		case <-ctx.Done():
			return catalog.Snapshot{}, ctx.Err()
		case <-ctrl.Done():
			return catalog.Snapshot{}, errors.New("controller stopped before settling")
		case <-ticker.C:
		}
	}
}

func printProducts(out io.Writer, locale string, products []models.Product) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tGENDER\tSHAPE\tWIDTH\tMATERIAL\tPRICE\tWAS\tCOLOURS")
	for _, p := range products {
		names := make([]string, 0, len(p.Colors))
		for _, c := range p.Colors {
			names = append(names, c.Name)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Slug, p.Name, p.Gender, p.Shape, p.Width, p.Material,
			utils.FormatPrice(locale, p.Price),
			orDash(utils.FormatOriginalPrice(locale, p)),
			strings.Join(names, ","),
		)
	}
	_ = w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
