package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"toolshop/internal/cache"
	"toolshop/internal/catalog"
	"toolshop/internal/config"
	"toolshop/internal/database"
	"toolshop/internal/store"
)

const (
	configFlag = "config"
	fileFlag   = "file"
)

func configOption() cobraflags.Flag {
	return &cobraflags.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "Optional config file; environment variables take precedence",
	}
}

func loadFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		configFlag: configOption(),
		fileFlag: &cobraflags.StringFlag{
			Name:  fileFlag,
			Value: "",
			Usage: "JSON dataset to load instead of the bundled catalog",
		},
	}
}

func configFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		configFlag: configOption(),
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "toolshopctl",
		Short:        "Operator tasks for the toolshop catalog",
		SilenceUsage: true,
	}
	root.AddCommand(newLoadCatalogCommand(), newCopyProductsCommand(), newMigrateCommand())
	return root
}

func newLoadCatalogCommand() *cobra.Command {
	flags := loadFlags()
	cmd := &cobra.Command{
		Use:   "load-catalog",
		Short: "Create or update categories and products from a dataset",
		Long: `Load categories and their products from a JSON dataset, matching
existing rows by slug. Without --file the dataset bundled with the binary is
used. Running the command twice with the same data changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readDataset(flags[fileFlag].GetString())
			if err != nil {
				return err
			}
			return withServices(cmd.Context(), flags[configFlag].GetString(), func(s *services) error {
				imp := catalog.NewImporter(s.categories, s.products, cmd.OutOrStdout())
				if _, err := imp.LoadCatalog(cmd.Context(), data); err != nil {
					return err
				}
				s.invalidatePages(cmd.Context())
				return nil
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newCopyProductsCommand() *cobra.Command {
	flags := configFlags()
	cmd := &cobra.Command{
		Use:   "copy-products",
		Short: "Copy the six base products into every category",
		Long: `Give every category its own copy of each base product. Copies that
already exist are skipped. A missing base product or an empty category list
only prints a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd.Context(), flags[configFlag].GetString(), func(s *services) error {
				return copyProducts(cmd.Context(), s, cmd.OutOrStdout())
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// copyProducts runs the copy job. Precondition warnings are not errors.
func copyProducts(ctx context.Context, s *services, out io.Writer) error {
	imp := catalog.NewImporter(s.categories, s.products, out)
	report, err := imp.CopyBaseProducts(ctx)
	if catalog.IsSoft(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if report.Created > 0 {
		s.invalidatePages(ctx)
	}
	return nil
}

func newMigrateCommand() *cobra.Command {
	flags := configFlags()
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd.Context(), flags[configFlag].GetString(), func(s *services) error {
				if err := database.Migrate(s.db); err != nil {
					return err
				}
				version, err := database.Version(s.db)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Schema at version %d\n", version)
				s.invalidatePages(cmd.Context())
				return nil
			})
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// readDataset opens path, or the bundled dataset when path is empty.
func readDataset(path string) ([]catalog.CategoryData, error) {
	if path == "" {
		return catalog.DefaultDataset()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return catalog.LoadDataset(f)
}

// services holds the connections a command needs. pages is nil when Valkey
// is unreachable.
type services struct {
	db         *sql.DB
	categories *store.CategoryStore
	products   *store.ProductStore
	pages      *cache.PageCache
}

// invalidatePages drops every cached public page so imported data shows up
// immediately.
func (s *services) invalidatePages(ctx context.Context) {
	if s.pages != nil {
		s.pages.InvalidateAll(ctx)
	}
}

// withServices loads configuration, connects to PostgreSQL and, if
// reachable, Valkey, runs fn and closes everything.
func withServices(ctx context.Context, configPath string, fn func(*services) error) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	s := &services{
		db:         db,
		categories: store.NewCategoryStore(db),
		products:   store.NewProductStore(db),
	}

	client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, cached pages will expire on their own", "error", err)
	} else {
		defer client.Close()
		s.pages = cache.NewPageCache(client, cfg.CatalogCacheTTL)
	}

	return fn(s)
}
