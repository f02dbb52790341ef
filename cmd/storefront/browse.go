package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Haleralex/storefront/internal/adapters/tui"
	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/resource"
	"github.com/Haleralex/storefront/internal/container"
)

// browseSizeV3 is the page size of the v3 grid.
const browseSizeV3 = 12

func newBrowseCmd(a *app) *cobra.Command {
	var (
		apiVersion string
		size       int
		categories bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Opens the product list in the terminal.

Keys: n/→ next page, p/← previous page, r refetch, c next category (v3), q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if apiVersion == "" {
				apiVersion = a.cfg.Catalog.APIVersion
			}
			model, closeLists, err := browseModel(cmd.Context(), a.container, apiVersion, size, categories)
			if err != nil {
				return err
			}
			defer closeLists()

			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&apiVersion, "version", "", "product API version: v1, v2 or v3 (default: catalog.api_version)")
	cmd.Flags().IntVar(&size, "size", 0, "page size (default: catalog.page_size, 12 for v3)")
	cmd.Flags().BoolVar(&categories, "categories", false, "browse categories instead of products")
	return cmd
}

// browseModel builds the view for apiVersion. The returned func closes the lists.
func browseModel(ctx context.Context, c *container.Container, apiVersion string, size int, categories bool) (tea.Model, func(), error) {
	if categories {
		list := c.CategoriesList()
		m := tui.NewProductListModel(ctx, list, tui.CategoryCard, tui.Options{
			Title: "Categories",
			Label: resource.LabelCategories,
		})
		return m, closer(m, list), nil
	}

	switch apiVersion {
	case "v1":
		list := c.ProductsV1List(size)
		m := tui.NewProductsV1Model(ctx, list, tui.Options{})
		return m, closer(m, list), nil
	case "v2":
		list := c.ProductsV2List(size)
		m := tui.NewProductsV2Model(ctx, list, tui.Options{})
		return m, closer(m, list), nil
	case "v3":
		if size == 0 {
			size = browseSizeV3
		}
		list := c.ProductsV3List(size)
		cats := c.CategoriesList()
		m := tui.NewProductsV3Model(ctx, list, cats, tui.Options{})
		return m, closer(m, list, cats), nil
	default:
		return nil, nil, fmt.Errorf("unsupported api version: %q", apiVersion)
	}
}

type closable interface {
	Close()
	Wait()
}

func closer[T any](m *tui.ProductListModel[T], lists ...closable) func() {
	return func() {
		m.Close()
		for _, l := range lists {
			l.Close()
			l.Wait()
		}
	}
}

// compile-time checks
var (
	_ tea.Model = (*tui.ProductListModel[dtos.Product])(nil)
	_ closable  = (*resource.List[dtos.Category])(nil)
)
