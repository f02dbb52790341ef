package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Haleralex/storefront/internal/application/dtos"
	"github.com/Haleralex/storefront/internal/application/errmsg"
	"github.com/Haleralex/storefront/internal/application/resource"
	"github.com/Haleralex/storefront/internal/pkg/format"
	"github.com/Haleralex/storefront/internal/pkg/pagination"
)

const labelProduct = "product"

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "List and manage products",
	}
	cmd.AddCommand(
		newProductsListCmd(a),
		newProductsGetCmd(a),
		newProductsCreateCmd(a),
		newProductsUpdateCmd(a),
		newProductsDeleteCmd(a),
	)
	return cmd
}

// ============================================
// list
// ============================================

type listFlags struct {
	apiVersion string
	page       int
	size       int
	sort       string
	query      string
	category   string
	json       bool
}

func newProductsListCmd(a *app) *cobra.Command {
	f := &listFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of products",
		Example: `  storefront products list --version v3 --category 2 --sort price,asc
  storefront products list -q pixel --page 1 --size 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.apiVersion == "" {
				f.apiVersion = a.cfg.Catalog.APIVersion
			}
			if f.category != "" && f.apiVersion != "v3" {
				return errors.New("--category needs --version v3")
			}
			return listProducts(cmd.Context(), cmd.OutOrStdout(), a, f)
		},
	}

	cmd.Flags().StringVar(&f.apiVersion, "version", "", "product API version: v1, v2 or v3 (default: catalog.api_version)")
	cmd.Flags().IntVar(&f.page, "page", 0, "zero-based page index")
	cmd.Flags().IntVar(&f.size, "size", 0, "page size (default: catalog.page_size)")
	cmd.Flags().StringVar(&f.sort, "sort", "", `sort as "field,asc|desc"`)
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "search text")
	cmd.Flags().StringVar(&f.category, "category", "", "category id (v3 only)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the page as JSON")
	return cmd
}

func listProducts(ctx context.Context, w io.Writer, a *app, f *listFlags) error {
	size := f.size
	if size == 0 {
		size = a.cfg.Catalog.PageSize
	}
	params := resource.Params{Page: f.page, Size: size, Sort: f.sort, Query: f.query, CategoryID: f.category}

	switch f.apiVersion {
	case "v1":
		return printList(ctx, w, a.container.ProductsV1List(size), params, f.json, productRow)
	case "v2":
		return printList(ctx, w, a.container.ProductsV2List(size), params, f.json, productV2Row)
	case "v3":
		return printList(ctx, w, a.container.ProductsV3List(size), params, f.json, productV3Row)
	default:
		return fmt.Errorf("unsupported api version: %q", f.apiVersion)
	}
}

// printList runs one fetch cycle of l and prints the result.
func printList[T any](ctx context.Context, w io.Writer, l *resource.List[T], params resource.Params, asJSON bool, row func(T) []string) error {
	defer l.Close()

	l.SetParams(params)
	l.Mount(ctx)
	l.Wait()

	st := l.State()
	if st.Error != "" {
		return errors.New(st.Error)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dtos.Page[T]{
			Items:         st.Items,
			Page:          st.Pagination.Page,
			Size:          st.Pagination.Size,
			TotalElements: st.Pagination.TotalElements,
			TotalPages:    st.Pagination.TotalPages,
		})
	}

	if len(st.Items) == 0 {
		_, err := fmt.Fprintln(w, "No products found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, item := range st.Items {
		fmt.Fprintln(tw, strings.Join(row(item), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	pg := st.Pagination
	fmt.Fprintln(w, pagination.FormatInfo(pg.Page, pg.Size, pg.TotalElements))
	if pagination.ShouldShow(pg.TotalPages) {
		fmt.Fprintln(w, pagination.FormatPage(pg.Page, pg.TotalPages))
	}
	return nil
}

func stock(inStock bool) string {
	if inStock {
		return "in stock"
	}
	return "out of stock"
}

func productRow(p dtos.Product) []string {
	return []string{
		p.ID,
		format.TruncateText(p.Name, format.MaxTitleLength),
		format.FormatPrice(p.Price, p.Currency),
		stock(p.InStock),
	}
}

func productV2Row(p dtos.ProductV2) []string {
	row := productRow(p.Product)
	extra := []string{"", ""}
	if p.HasDiscount() {
		extra[0] = format.FormatDiscount(*p.DiscountPercent)
	}
	if p.Rating != nil {
		extra[1] = format.FormatRating(*p.Rating)
	}
	return append(row, extra...)
}

func productV3Row(p dtos.ProductV3) []string {
	return append(productV2Row(p.ProductV2), p.Category.Name)
}

// ============================================
// get / create / update / delete (v3)
// ============================================

func newProductsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a v3 product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.container.ProductV3Service().Get(cmd.Context(), args[0])
			if err != nil {
				return userError(err, labelProduct)
			}
			return printProduct(cmd.OutOrStdout(), p)
		},
	}
}

// productFlags are the editable product fields.
type productFlags struct {
	name        string
	description string
	sku         string
	price       string
	currency    string
	inStock     bool
	imageURL    string
	discount    float64
	rating      float64
	category    string
}

func (f *productFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "product name")
	flags.StringVar(&f.description, "description", "", "description")
	flags.StringVar(&f.sku, "sku", "", "stock keeping unit")
	flags.StringVar(&f.price, "price", "", "price, e.g. 999.99")
	flags.StringVar(&f.currency, "currency", "USD", "ISO currency code")
	flags.BoolVar(&f.inStock, "in-stock", true, "whether the product is in stock")
	flags.StringVar(&f.imageURL, "image-url", "", "image URL")
	flags.Float64Var(&f.discount, "discount", 0, "discount percent 0..100")
	flags.Float64Var(&f.rating, "rating", 0, "rating 0..5")
	flags.StringVar(&f.category, "category", "", "category id")
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q", s)
	}
	return d, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func newProductsCreateCmd(a *app) *cobra.Command {
	f := &productFlags{}

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a v3 product",
		Example: `  storefront products create --name "Steam Deck" --price 549 --category 4`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			price, err := parsePrice(f.price)
			if err != nil {
				return err
			}
			p, err := a.container.ProductV3Service().Create(cmd.Context(), dtos.CreateProductV3Request{
				SKU:             optional(f.sku),
				Name:            f.name,
				Description:     optional(f.description),
				Price:           price,
				Currency:        f.currency,
				InStock:         f.inStock,
				ImageURL:        f.imageURL,
				DiscountPercent: f.discount,
				Rating:          f.rating,
				CategoryID:      f.category,
			})
			if err != nil {
				return userError(err, labelProduct)
			}
			return printProduct(cmd.OutOrStdout(), p)
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newProductsUpdateCmd(a *app) *cobra.Command {
	f := &productFlags{}

	cmd := &cobra.Command{
		Use:     "update <id>",
		Short:   "Change the given fields of a v3 product",
		Example: `  storefront products update prd_201 --price 949.99 --discount 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.patch(cmd)
			if err != nil {
				return err
			}
			p, err := a.container.ProductV3Service().Patch(cmd.Context(), args[0], req)
			if err != nil {
				return userError(err, labelProduct)
			}
			return printProduct(cmd.OutOrStdout(), p)
		},
	}
	f.register(cmd)
	return cmd
}

// patch sends only the flags given on the command line.
func (f *productFlags) patch(cmd *cobra.Command) (dtos.PatchProductV3Request, error) {
	var req dtos.PatchProductV3Request
	changed := cmd.Flags().Changed

	if changed("name") {
		req.Name = &f.name
	}
	if changed("description") {
		req.Description = &f.description
	}
	if changed("sku") {
		req.SKU = &f.sku
	}
	if changed("price") {
		price, err := parsePrice(f.price)
		if err != nil {
			return req, err
		}
		req.Price = &price
	}
	if changed("currency") {
		req.Currency = &f.currency
	}
	if changed("in-stock") {
		req.InStock = &f.inStock
	}
	if changed("image-url") {
		req.ImageURL = &f.imageURL
	}
	if changed("discount") {
		req.DiscountPercent = &f.discount
	}
	if changed("rating") {
		req.Rating = &f.rating
	}
	if changed("category") {
		req.CategoryID = &f.category
	}
	return req, nil
}

func newProductsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a v3 product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.container.ProductV3Service().Delete(cmd.Context(), args[0]); err != nil {
				return userError(err, labelProduct)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted product %s\n", args[0])
			return err
		},
	}
}

func printProduct(w io.Writer, p *dtos.ProductV3) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name\t%s\n", p.Name)
	fmt.Fprintf(tw, "Price\t%s\n", format.FormatPrice(p.Price, p.Currency))
	if p.HasDiscount() {
		fmt.Fprintf(tw, "Discount\t%s\n", format.FormatDiscount(*p.DiscountPercent))
	}
	if p.Rating != nil {
		fmt.Fprintf(tw, "Rating\t%s\n", format.FormatRating(*p.Rating))
	}
	fmt.Fprintf(tw, "Stock\t%s\n", stock(p.InStock))
	fmt.Fprintf(tw, "Category\t%s (%s)\n", p.Category.Name, p.Category.ID)
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(tw, "Created\t%s\n", format.FormatDate(p.CreatedAt))
	}
	return tw.Flush()
}

// userError replaces err with its user-facing message. Server field errors
// are appended one per line, sorted by field.
func userError(err error, label string) error {
	msg := errmsg.Normalize(err, label)
	fields := errmsg.FieldErrors(err)

	var b strings.Builder
	b.WriteString(msg)
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		if fields[field] == msg {
			continue
		}
		fmt.Fprintf(&b, "\n  %s: %s", field, fields[field])
	}
	return errors.New(b.String())
}
