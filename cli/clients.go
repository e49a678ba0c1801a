// ABOUTME: Client pipeline CLI commands
// ABOUTME: List, add, update, move and delete clients plus AI snapshots and review scripts
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harperreed/lifehub/crm"
	"github.com/harperreed/lifehub/hub"
	"github.com/harperreed/lifehub/models"
)

// parseEnum matches input case-insensitively against values. Blank input
// returns the zero value.
func parseEnum[T ~string](input string, values []T, kind string) (T, error) {
	var zero T
	input = strings.TrimSpace(input)
	if input == "" {
		return zero, nil
	}
	for _, v := range values {
		if strings.EqualFold(string(v), input) {
			return v, nil
		}
	}
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return zero, fmt.Errorf("unknown %s %q (choose from: %s)", kind, input, strings.Join(names, ", "))
}

func parseStage(input string) (models.PipelineStage, error) {
	stage, ok := models.ParseStage(input)
	if !ok {
		return "", fmt.Errorf("unknown stage %q (use a stage name or 1-%d)", input, len(models.Stages()))
	}
	return stage, nil
}

func findClient(h *hub.Hub, ref string) (models.Client, error) {
	return resolve(h.Clients(), func(c models.Client) string { return c.ID }, ref, "client")
}

type clientFlags struct {
	name, email, phone, stage string
	county, source, product   string
	household, notes, carrier string
	goals                     []string
	premium                   float64
}

func (f *clientFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "client name")
	fl.StringVar(&f.email, "email", "", "email address")
	fl.StringVar(&f.phone, "phone", "", "phone number")
	fl.StringVar(&f.stage, "stage", "", "pipeline stage name or number (1-10)")
	fl.StringVar(&f.county, "county", "", "Schuylkill, Luzerne, Northumberland or Other")
	fl.StringVar(&f.source, "source", "", "lead source")
	fl.StringVar(&f.product, "product", "", "product interest (Term, IUL, FE, FIA, Business, Whole Life)")
	fl.StringVar(&f.household, "household", "", "household description")
	fl.StringVar(&f.notes, "notes", "", "free-form notes")
	fl.StringVar(&f.carrier, "carrier", "", "carrier of the placed policy")
	fl.StringSliceVar(&f.goals, "goal", nil, "client goal (repeatable)")
	fl.Float64Var(&f.premium, "premium", 0, "monthly premium")
}

func (f *clientFlags) draft(cmd *cobra.Command) (crm.Draft, error) {
	d := crm.Draft{
		Name:      f.name,
		Email:     f.email,
		Phone:     f.phone,
		Household: f.household,
		Goals:     f.goals,
		Notes:     f.notes,
		Carrier:   f.carrier,
	}
	var err error
	if f.stage != "" {
		if d.Status, err = parseStage(f.stage); err != nil {
			return d, err
		}
	}
	if d.County, err = parseEnum(f.county, models.Counties(), "county"); err != nil {
		return d, err
	}
	if d.LeadSource, err = parseEnum(f.source, models.LeadSources(), "lead source"); err != nil {
		return d, err
	}
	if d.ProductInterest, err = parseEnum(f.product, models.ProductTypes(), "product"); err != nil {
		return d, err
	}
	if cmd.Flags().Changed("premium") {
		p := f.premium
		d.MonthlyPremium = &p
	}
	return d, nil
}

func (a *App) clientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clients",
		Aliases: []string{"client", "crm"},
		Short:   "Manage the client pipeline",
	}

	var stage, query string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List clients, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClientsList(cmd, stage, query, limit)
		},
	}
	list.Flags().StringVar(&stage, "stage", "", "only clients in this stage")
	list.Flags().StringVarP(&query, "query", "q", "", "search name or email")
	list.Flags().IntVar(&limit, "limit", 50, "maximum results")

	var addFlags clientFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a client (name and email required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClientsAdd(cmd, &addFlags)
		},
	}
	addFlags.register(add)

	var updateFlags clientFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields on an existing client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runClientsUpdate(cmd, args[0], &updateFlags)
		},
	}
	updateFlags.register(update)

	cmd.AddCommand(
		list,
		add,
		update,
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show one client with its pipeline progress",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runClientsShow(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "move <id> <stage>",
			Short: "Move a client to another pipeline stage",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runClientsMove(cmd, args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a client",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runClientsDelete(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "snapshot <id>",
			Short: "Generate and save an AI client snapshot from notes and household",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runClientsSnapshot(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "review <id>",
			Short: "Draft an annual review call script",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runClientsReview(cmd, args[0])
			},
		},
	)
	return cmd
}

func (a *App) runClientsList(cmd *cobra.Command, stage, query string, limit int) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	clients := h.SearchClients(query)
	if stage != "" {
		s, err := parseStage(stage)
		if err != nil {
			return err
		}
		clients = crm.FilterByStage(clients, s)
	}

	tiles := h.StageTiles()
	parts := make([]string, 0, len(crm.TileStages))
	for _, s := range crm.TileStages {
		parts = append(parts, fmt.Sprintf("%s: %d", s, tiles[s]))
	}
	fmt.Fprintln(out, strings.Join(parts, "  ·  "))
	fmt.Fprintln(out)

	if len(clients) == 0 {
		fmt.Fprintln(out, "No clients found")
		return nil
	}
	total := len(clients)
	if limit > 0 && len(clients) > limit {
		clients = clients[:limit]
	}

	tw := newTable(out, "NAME", "STAGE", "PRODUCT", "COUNTY", "LAST TOUCH", "ID")
	for _, c := range clients {
		row(tw, c.Name, string(c.Status), string(c.ProductInterest), string(c.County), dash(c.LastInteraction), shortID(c.ID))
	}
	_ = tw.Flush()

	fmt.Fprintf(out, "\nTotal: %d client(s)\n", total)
	return nil
}

func (a *App) runClientsAdd(cmd *cobra.Command, f *clientFlags) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	draft, err := f.draft(cmd)
	if err != nil {
		return err
	}
	c, err := h.AddClient(draft)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Client created: %s (ID: %s)\n", c.Name, shortID(c.ID))
	fmt.Fprintf(out, "  Stage: %s\n", c.Status)
	fmt.Fprintf(out, "  Email: %s\n", c.Email)
	if c.Phone != "" {
		fmt.Fprintf(out, "  Phone: %s\n", c.Phone)
	}
	return nil
}

func (a *App) runClientsUpdate(cmd *cobra.Command, ref string, f *clientFlags) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	c, err := findClient(h, ref)
	if err != nil {
		return err
	}
	draft, err := f.draft(cmd)
	if err != nil {
		return err
	}

	changed := cmd.Flags().Changed
	if changed("name") {
		if strings.TrimSpace(draft.Name) == "" {
			return models.Required("name")
		}
		c.Name = strings.TrimSpace(draft.Name)
	}
	if changed("email") {
		if strings.TrimSpace(draft.Email) == "" {
			return models.Required("email")
		}
		c.Email = strings.TrimSpace(draft.Email)
	}
	if changed("phone") {
		c.Phone = draft.Phone
	}
	if changed("stage") {
		c.Status = draft.Status
	}
	if changed("county") {
		c.County = draft.County
	}
	if changed("source") {
		c.LeadSource = draft.LeadSource
	}
	if changed("product") {
		c.ProductInterest = draft.ProductInterest
	}
	if changed("household") {
		c.Household = draft.Household
	}
	if changed("notes") {
		c.Notes = draft.Notes
	}
	if changed("carrier") {
		c.Carrier = draft.Carrier
	}
	if changed("goal") {
		c.Goals = draft.Goals
	}
	if changed("premium") {
		c.MonthlyPremium = draft.MonthlyPremium
	}

	if err := h.UpdateClient(c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Client updated: %s\n", c.Name)
	return nil
}

func (a *App) runClientsShow(cmd *cobra.Command, ref string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	c, err := findClient(h, ref)
	if err != nil {
		return err
	}
	writeClient(cmd.OutOrStdout(), c)
	return nil
}

func writeClient(out io.Writer, c models.Client) {
	fmt.Fprintf(out, "%s\n", c.Name)
	fmt.Fprintf(out, "  ID:       %s\n", c.ID)
	fmt.Fprintf(out, "  Email:    %s\n", c.Email)
	fmt.Fprintf(out, "  Phone:    %s\n", dash(c.Phone))
	fmt.Fprintf(out, "  County:   %s\n", c.County)
	fmt.Fprintf(out, "  Source:   %s\n", c.LeadSource)
	fmt.Fprintf(out, "  Product:  %s\n", c.ProductInterest)
	if c.Carrier != "" {
		fmt.Fprintf(out, "  Carrier:  %s\n", c.Carrier)
	}
	if c.MonthlyPremium != nil {
		fmt.Fprintf(out, "  Premium:  $%.2f/mo\n", *c.MonthlyPremium)
	}
	fmt.Fprintf(out, "  Last touch: %s\n", dash(c.LastInteraction))

	var bar strings.Builder
	for _, p := range crm.Progress(c.Status) {
		if p.Passed {
			bar.WriteString("■")
		} else {
			bar.WriteString("□")
		}
	}
	fmt.Fprintf(out, "\n  %s  %s (%d/%d)\n", bar.String(), c.Status, c.Status.Index()+1, len(models.Stages()))

	if c.Household != "" {
		fmt.Fprintf(out, "\nHousehold: %s\n", c.Household)
	}
	if len(c.Goals) > 0 {
		fmt.Fprintf(out, "Goals: %s\n", strings.Join(c.Goals, "; "))
	}
	if c.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", c.Notes)
	}
	if s := c.Snapshot; s != nil {
		fmt.Fprintf(out, "\nSnapshot: %s\n  %s\n", s.WhoTheyAre, s.Summary)
	}
}

func (a *App) runClientsMove(cmd *cobra.Command, ref, stageArg string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	c, err := findClient(h, ref)
	if err != nil {
		return err
	}
	stage, err := parseStage(stageArg)
	if err != nil {
		return err
	}
	if err := h.AdvanceStage(c.ID, stage); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %s → %s\n", c.Name, c.Status, stage)
	return nil
}

func (a *App) runClientsDelete(cmd *cobra.Command, ref string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	c, err := findClient(h, ref)
	if err != nil {
		return err
	}
	h.DeleteClient(c.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Client deleted: %s\n", c.Name)
	return nil
}

func (a *App) runClientsSnapshot(cmd *cobra.Command, ref string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	c, err := findClient(h, ref)
	if err != nil {
		return err
	}
	snap, err := h.GenerateSnapshot(ctxOf(cmd), c.ID)
	if err != nil {
		return aiError{err}
	}

	md := fmt.Sprintf("# %s\n\n**%s**\n\n%s\n\n## Family\n%s\n## Financial picture\n%s\n## Top goals\n%s\n## Risk themes\n%s",
		c.Name, snap.WhoTheyAre, snap.Summary,
		bullets(snap.FamilyContext), bullets(snap.FinancialPicture), bullets(snap.TopGoals), bullets(snap.RiskThemes))
	return printMarkdown(cmd.OutOrStdout(), md)
}

func (a *App) runClientsReview(cmd *cobra.Command, ref string) error {
	h, err := a.UnlockedHub()
	if err != nil {
		return err
	}
	c, err := findClient(h, ref)
	if err != nil {
		return err
	}
	if !crm.NeedsReview(c) {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: %s is in %q, review scripts are meant for in-force policies\n", c.Name, c.Status)
	}
	script, err := h.ReviewScript(ctxOf(cmd), c.ID)
	if err != nil {
		return aiError{err}
	}

	md := fmt.Sprintf("# Annual review: %s\n\n## Opening\n%s\n\n## Discovery questions\n%s\n## Strategic pivot\n%s\n\n## Closing\n%s\n",
		c.Name, script.Opening, bullets(script.DiscoveryQuestions), script.StrategicPivot, script.Closing)
	return printMarkdown(cmd.OutOrStdout(), md)
}
