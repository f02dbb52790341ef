package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Haleralex/storefront/internal/application/resource"
	"github.com/Haleralex/storefront/internal/pkg/format"
)

func newCategoriesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "List and manage categories",
	}
	cmd.AddCommand(
		newCategoriesListCmd(a),
		newCategoriesCreateCmd(a),
		newCategoriesRenameCmd(a),
		newCategoriesDeleteCmd(a),
	)
	return cmd
}

func newCategoriesListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := a.container.CategoriesList()
			defer l.Close()

			l.Mount(cmd.Context())
			l.Wait()

			st := l.State()
			if st.Error != "" {
				return errors.New(st.Error)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(st.Items)
			}
			if len(st.Items) == 0 {
				_, err := fmt.Fprintln(w, "No categories found")
				return err
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCREATED")
			for _, c := range st.Items {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, format.FormatDate(c.CreatedAt))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newCategoriesCreateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container.CategoryMutations().Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return userError(err, resource.LabelCategories)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created category %s %q\n", c.ID, c.Name)
			return err
		},
	}
}

func newCategoriesRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <id> <name>",
		Aliases: []string{"update"},
		Short:   "Rename a category",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.container.CategoryMutations().Update(cmd.Context(), args[0], strings.Join(args[1:], " "))
			if err != nil {
				return userError(err, "category")
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %s to %q\n", c.ID, c.Name)
			return err
		},
	}
}

func newCategoriesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category without products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.container.CategoryMutations().Delete(cmd.Context(), args[0]); err != nil {
				return userError(err, "category")
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
			return err
		},
	}
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the catalog API answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := a.container.Health(cmd.Context())

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(status); err != nil {
				return err
			}
			if status.Status != "healthy" {
				return fmt.Errorf("catalog is %s", status.Status)
			}
			return nil
		},
	}
}
