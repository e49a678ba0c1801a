// ABOUTME: Template, strategy library, link vault and document CLI commands
// ABOUTME: Browses built-in catalogs and manages the agent's own links, docs and templates
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/lifehub/catalog"
	"github.com/harperreed/lifehub/models"
)

func (a *App) templatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Content templates: built-ins plus your own",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List built-in and user templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "", "NAME", "KIND", "ID")
			for _, t := range h.Templates.All() {
				kind := "user"
				if catalog.IsBuiltin(t.ID) {
					kind = "built-in"
				}
				row(tw, t.Icon, t.Name, kind, t.ID)
			}
			return tw.Flush()
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a template's structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			t, ok := h.Templates.Find(args[0])
			if !ok {
				return fmt.Errorf("template not found: %s", args[0])
			}
			return printMarkdown(cmd.OutOrStdout(), fmt.Sprintf("# %s %s\n\n%s", t.Icon, t.Name, t.Structure))
		},
	}

	var name, structure string
	add := &cobra.Command{
		Use:   "add",
		Short: "Save a template of your own",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			t, err := h.Templates.AddUserTemplate(name, structure, h.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Template saved: %s (ID: %s)\n", t.Name, t.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "template name (required)")
	add.Flags().StringVar(&structure, "structure", "", "template structure (required)")

	generate := &cobra.Command{
		Use:   "generate <request>",
		Short: "Have AI draft a template from a description and save it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			t, err := h.GenerateTemplate(ctxOf(cmd), strings.Join(args, " "))
			if err != nil {
				return aiError{err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Template saved: %s (ID: %s)\n\n", t.Name, t.ID)
			return printMarkdown(cmd.OutOrStdout(), t.Structure)
		},
	}

	remove := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			if catalog.IsBuiltin(args[0]) {
				return fmt.Errorf("built-in templates cannot be deleted")
			}
			if !h.Templates.DeleteUserTemplate(args[0]) {
				return fmt.Errorf("template not found: %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Template deleted")
			return nil
		},
	}

	cmd.AddCommand(list, show, add, generate, remove)
	return cmd
}

func (a *App) libraryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Strategy library and full-text search across links, docs and templates",
	}

	var limit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search links, documents and strategy templates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			hits, err := h.SearchLibrary(strings.Join(args, " "), limit)
			if err != nil {
				return fmt.Errorf("failed to search library: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintln(out, "No matches")
				return nil
			}
			tw := newTable(out, "KIND", "TITLE", "REF", "SCORE")
			for _, hit := range hits {
				row(tw, hit.Kind, hit.Title, hit.RefID, fmt.Sprintf("%.2f", hit.Score))
			}
			return tw.Flush()
		},
	}
	search.Flags().IntVar(&limit, "limit", 10, "maximum results")

	var category, query string
	strategies := &cobra.Command{
		Use:   "strategies",
		Short: "Browse the built-in strategy templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.UnlockedHub(); err != nil {
				return err
			}
			list := catalog.SearchLibrary(query, category)
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No strategies found")
				return nil
			}
			tw := newTable(out, "CATEGORY", "SUBCATEGORY", "TITLE", "ID")
			for _, t := range list {
				row(tw, string(t.Category), t.SubCategory, t.Title, t.ID)
			}
			return tw.Flush()
		},
	}
	strategies.Flags().StringVar(&category, "category", "", "Life Insurance, Annuities, Legacy & Estate or Business Protection")
	strategies.Flags().StringVarP(&query, "query", "q", "", "filter by title, description or subcategory")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one strategy template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.UnlockedHub(); err != nil {
				return err
			}
			t, ok := catalog.FindLibraryTemplate(args[0])
			if !ok {
				return fmt.Errorf("strategy not found: %s", args[0])
			}
			md := fmt.Sprintf("# %s\n\n_%s · %s_\n\n%s\n\n%s\n\n%s", t.Title, t.Category, t.SubCategory, t.Description, t.Structure, strings.Join(t.Hashtags, " "))
			return printMarkdown(cmd.OutOrStdout(), md)
		},
	}

	blueprints := &cobra.Command{
		Use:   "blueprints",
		Short: "List funnel, landing page and form blueprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "FUNNELS")
			for _, b := range catalog.FunnelBlueprints() {
				fmt.Fprintf(out, "  %s (%s): %s\n", b.Name, b.Persona, strings.Join(b.Stages, " → "))
			}
			fmt.Fprintln(out, "\nLANDING PAGES")
			for _, b := range catalog.LandingPageBlueprints() {
				fmt.Fprintf(out, "  %s: %s\n", b.Name, strings.Join(b.Sections, ", "))
			}
			fmt.Fprintln(out, "\nFORMS")
			for _, b := range catalog.FormBlueprints() {
				fmt.Fprintf(out, "  %s: %s\n", b.Name, strings.Join(b.Fields, ", "))
			}
			return nil
		},
	}

	cmd.AddCommand(search, strategies, show, blueprints)
	return cmd
}

func (a *App) linksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "links",
		Aliases: []string{"link"},
		Short:   "Bookmarked portals and tools",
	}

	var category, query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List links, favorites first",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			links := h.Links.Filter(category, query)
			out := cmd.OutOrStdout()
			if len(links) == 0 {
				fmt.Fprintln(out, "No links found")
				return nil
			}
			tw := newTable(out, "★", "NAME", "CATEGORY", "URL", "ID")
			for _, l := range links {
				star := ""
				if l.IsFavorite {
					star = "★"
				}
				row(tw, star, l.Name, string(l.Category), l.URL, shortID(l.ID))
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&category, "category", "", "only this category")
	list.Flags().StringVarP(&query, "query", "q", "", "search name, url, tags and notes")

	var item models.LinkItem
	var linkCategory, tags string
	add := &cobra.Command{
		Use:   "add",
		Short: "Save a link",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			if linkCategory != "" {
				c, ok := models.ParseLinkCategory(linkCategory)
				if !ok {
					return fmt.Errorf("unknown link category %q", linkCategory)
				}
				item.Category = c
			}
			item.Tags = models.SplitTags(tags)
			saved, err := h.Links.Upsert(item, h.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Link saved: %s (ID: %s)\n", saved.Name, shortID(saved.ID))
			return nil
		},
	}
	add.Flags().StringVar(&item.Name, "name", "", "link name (required)")
	add.Flags().StringVar(&item.URL, "url", "", "address (required)")
	add.Flags().StringVar(&linkCategory, "category", "", "Carrier, GFI, Portals, Social, Tools, Funnels or Other")
	add.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	add.Flags().StringVar(&item.Notes, "notes", "", "notes")
	add.Flags().BoolVar(&item.IsFavorite, "favorite", false, "star it")

	star := &cobra.Command{
		Use:   "star <id>",
		Short: "Toggle a link's favorite flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			l, err := resolve(h.Links.List(), func(l models.LinkItem) string { return l.ID }, args[0], "link")
			if err != nil {
				return err
			}
			toggled, _ := h.Links.ToggleFavorite(l.ID, h.Now())
			if toggled.IsFavorite {
				fmt.Fprintf(cmd.OutOrStdout(), "★ %s\n", toggled.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "☆ %s\n", toggled.Name)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			l, err := resolve(h.Links.List(), func(l models.LinkItem) string { return l.ID }, args[0], "link")
			if err != nil {
				return err
			}
			h.Links.Remove(l.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Link removed: %s\n", l.Name)
			return nil
		},
	}

	cmd.AddCommand(list, add, star, remove)
	return cmd
}

func (a *App) docsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "docs",
		Aliases: []string{"doc"},
		Short:   "Brochures, guides and scripts",
	}

	var category, query string
	list := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			docs := h.Docs.Filter(category, query)
			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				fmt.Fprintln(out, "No documents found")
				return nil
			}
			tw := newTable(out, "TITLE", "CATEGORY", "CARRIER", "URL", "ID")
			for _, d := range docs {
				row(tw, d.Title, string(d.Category), dash(d.Carrier), dash(d.URL), shortID(d.ID))
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVar(&category, "category", "", "only this category")
	list.Flags().StringVarP(&query, "query", "q", "", "search title, carrier, tags and notes")

	var item models.DocItem
	var docCategory, tags string
	add := &cobra.Command{
		Use:   "add",
		Short: "Save a document reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			if docCategory != "" {
				c, ok := models.ParseDocCategory(docCategory)
				if !ok {
					return fmt.Errorf("unknown document category %q", docCategory)
				}
				item.Category = c
			}
			item.Tags = models.SplitTags(tags)
			saved, err := h.Docs.Upsert(item, h.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Document saved: %s (ID: %s)\n", saved.Title, shortID(saved.ID))
			return nil
		},
	}
	add.Flags().StringVar(&item.Title, "title", "", "document title (required)")
	add.Flags().StringVar(&docCategory, "category", "", "Brochure, Product Guide, Presentation, Script, Compliance or Other")
	add.Flags().StringVar(&item.Carrier, "carrier", "", "carrier")
	add.Flags().StringVar(&item.URL, "url", "", "where it lives")
	add.Flags().StringVar(&tags, "tags", "", "comma-separated tags")
	add.Flags().StringVar(&item.Notes, "notes", "", "notes")

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a document reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.UnlockedHub()
			if err != nil {
				return err
			}
			d, err := resolve(h.Docs.List(), func(d models.DocItem) string { return d.ID }, args[0], "document")
			if err != nil {
				return err
			}
			h.Docs.Remove(d.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Document removed: %s\n", d.Title)
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}
