package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/evcraddock/house-market/internal/client"
	"github.com/evcraddock/house-market/internal/fetch"
	"github.com/evcraddock/house-market/internal/publication"
	"github.com/evcraddock/house-market/internal/validate"
)

func newPubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pub",
		Aliases: []string{"publication"},
		Short:   "Browse marketplace publications",
	}

	cmd.AddCommand(newPubListCmd(), newPubShowCmd())

	return cmd
}

type pubListOptions struct {
	page, size int
	state      string
	propertyID int64
	all        bool
}

func newPubListCmd() *cobra.Command {
	var opts pubListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List publications",
		Long: `List publications one page at a time, or filtered by state or property.

Examples:
  hm pub list --page 2
  hm pub list --all
  hm pub list --state active`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPubList(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 0, "page number, starting at 0")
	cmd.Flags().IntVar(&opts.size, "size", publication.DefaultPageSize, "publications per page")
	cmd.Flags().StringVar(&opts.state, "state", "", "only publications in this state (active, paused, finished, draft)")
	cmd.Flags().Int64Var(&opts.propertyID, "property", 0, "only publications of this property")
	cmd.Flags().BoolVar(&opts.all, "all", false, "load every page")

	return cmd
}

func runPubList(ctx context.Context, out io.Writer, opts pubListOptions) error {
	q := publication.Query{Page: opts.page, Size: opts.size}
	if opts.state != "" {
		s, err := publication.ParseState(opts.state)
		if err != nil {
			return err
		}
		q.State = s
	}
	if err := validate.Struct(q); err != nil {
		return err
	}
	if q.State != "" && opts.propertyID != 0 {
		return fmt.Errorf("use only one of --state or --property")
	}

	c, err := newAPIClient()
	if err != nil {
		return err
	}

	var (
		pubs   []*publication.Publication
		footer string
	)
	switch {
	case q.State != "":
		pubs, err = c.ListPublicationsByState(ctx, q.State)
	case opts.propertyID != 0:
		pubs, err = c.ListPublicationsByProperty(ctx, opts.propertyID)
	case opts.all:
		pager := fetch.NewPager[*publication.Publication](q.Size)
		pubs, err = pager.All(ctx, publicationPages(c))
	default:
		var page *client.Page[*publication.Publication]
		page, err = c.ListPublications(ctx, q.Page, q.Size)
		if err == nil {
			pubs = page.Content
			footer = fmt.Sprintf("\nPage %d of %d (%d total)\n", page.Number+1, max(page.TotalPages, 1), page.TotalElements)
		}
	}
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(out, pubs)
	}
	if err := printPublicationTable(out, pubs); err != nil {
		return err
	}
	if footer != "" && len(pubs) > 0 {
		fmt.Fprint(out, footer)
	}
	return nil
}

// publicationPages adapts ListPublications to a fetch.PageFunc.
func publicationPages(c *client.Client) fetch.PageFunc[*publication.Publication] {
	return func(ctx context.Context, page, size int) ([]*publication.Publication, bool, error) {
		p, err := c.ListPublications(ctx, page, size)
		if err != nil {
			return nil, false, err
		}
		return p.Content, p.Last, nil
	}
}

func newPubShowCmd() *cobra.Command {
	var withProperty bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "publication")
			if err != nil {
				return err
			}
			c, err := newAPIClient()
			if err != nil {
				return err
			}
			p, err := c.GetPublication(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}

			out := cmd.OutOrStdout()
			printPublicationDetail(out, p)
			if withProperty && p.PropertyID != nil {
				prop, err := c.GetProperty(cmd.Context(), *p.PropertyID)
				if err != nil {
					fmt.Fprintf(out, "\nProperty: %s\n", client.UserMessage(err))
					return nil
				}
				fmt.Fprintln(out)
				printPropertySummary(out, prop)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withProperty, "property", false, "also show the listed property")

	return cmd
}
