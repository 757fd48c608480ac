package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/evcraddock/house-market/internal/chat"
	"github.com/evcraddock/house-market/internal/preference"
	"github.com/evcraddock/house-market/internal/property"
	"github.com/evcraddock/house-market/internal/publication"
	"github.com/evcraddock/house-market/internal/transaction"
	"github.com/evcraddock/house-market/internal/visit"
)

// timeFormat is how timestamps are shown in text output.
const timeFormat = "2006-01-02 15:04"

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table writes rows under a header with a dashed separator.
func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	sep := make([]string, len(header))
	for i, h := range header {
		sep[i] = strings.Repeat("-", len(h))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(sep, "\t")); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}
	for _, r := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(r, "\t")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

// printVisitTable prints a list of visits as a formatted table.
func printVisitTable(w io.Writer, visits []*visit.Visit) error {
	if len(visits) == 0 {
		fmt.Fprintln(w, "No visits found.")
		return nil
	}

	rows := make([][]string, 0, len(visits))
	for _, v := range visits {
		rows = append(rows, []string{
			fmt.Sprint(v.ID),
			fmt.Sprint(v.PropertyID),
			formatTime(v.ScheduledAt.Time),
			v.StatusLabel(),
			formatID(v.ClientID),
			formatID(v.AgentID),
		})
	}
	if err := table(w, []string{"ID", "PROPERTY", "WHEN", "STATUS", "CLIENT", "AGENT"}, rows); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d visits\n", len(visits))
	return nil
}

// printVisitDetail prints a single visit with its available actions.
func printVisitDetail(w io.Writer, v *visit.Visit) {
	fmt.Fprintf(w, "Visit #%d\n", v.ID)
	fmt.Fprintf(w, "  Property: #%d\n", v.PropertyID)
	fmt.Fprintf(w, "  When:     %s\n", formatTime(v.ScheduledAt.Time))
	fmt.Fprintf(w, "  Status:   %s\n", v.StatusLabel())
	if v.ClientID > 0 {
		fmt.Fprintf(w, "  Client:   #%d\n", v.ClientID)
	}
	if v.AgentID > 0 {
		fmt.Fprintf(w, "  Agent:    #%d\n", v.AgentID)
	}
	if v.Comment != "" {
		fmt.Fprintf(w, "  Comment:  %s\n", v.Comment)
	}

	actions := v.Status().Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	fmt.Fprintf(w, "  Actions:  %s\n", strings.Join(names, ", "))
}

// printMessages prints chat messages oldest first.
func printMessages(w io.Writer, msgs []*chat.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages.")
		return
	}

	for _, m := range msgs {
		printMessage(w, m)
		fmt.Fprintln(w)
	}
}

// printMessage prints a single message in text format.
func printMessage(w io.Writer, m *chat.Message) {
	mark := " "
	if !m.Read {
		mark = "•"
	}
	fmt.Fprintf(w, "%s [%s] #%d  %d → %d", mark, formatTime(m.SentAt.Time), m.ID, m.SenderID, m.ReceiverID)
	if m.PropertyID != nil {
		fmt.Fprintf(w, "  (property #%d)", *m.PropertyID)
	}
	fmt.Fprintf(w, "\n  %s\n", m.Content)
}

// printPreferenceTable prints notification preferences as a table.
func printPreferenceTable(w io.Writer, prefs []*preference.Preference) error {
	if len(prefs) == 0 {
		fmt.Fprintln(w, "No notification preferences.")
		return nil
	}

	rows := make([][]string, 0, len(prefs))
	for _, p := range prefs {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			string(p.SearchMode),
			string(p.TransactionType),
			preferencePlace(p.Region, p.District),
			preference.FormatFloat(p.RadiusKm),
			formatActive(p.Active),
		})
	}
	return table(w, []string{"ID", "MODE", "TYPE", "PLACE", "RADIUS_KM", "ACTIVE"}, rows)
}

// printPreferenceDetail prints one preference.
func printPreferenceDetail(w io.Writer, p *preference.Preference) {
	fmt.Fprintf(w, "Preference #%d (user #%d)\n", p.ID, p.UserID)
	printDraftFields(w, preference.DraftFrom(p))
}

// printDraftFields prints the editable fields of a preference draft.
func printDraftFields(w io.Writer, d preference.Draft) {
	fmt.Fprintf(w, "  Mode:       %s\n", d.SearchMode)
	fmt.Fprintf(w, "  Type:       %s\n", d.TransactionType)
	fmt.Fprintf(w, "  Region:     %s\n", preference.FormatString(d.Region))
	fmt.Fprintf(w, "  District:   %s\n", preference.FormatString(d.District))
	fmt.Fprintf(w, "  Radius km:  %s\n", preference.FormatFloat(d.RadiusKm))
	fmt.Fprintf(w, "  Latitude:   %s\n", preference.FormatFloat(d.Latitude))
	fmt.Fprintf(w, "  Longitude:  %s\n", preference.FormatFloat(d.Longitude))
	fmt.Fprintf(w, "  Active:     %s\n", formatActive(d.Active))
}

// printPublicationTable prints publications as a table.
func printPublicationTable(w io.Writer, pubs []*publication.Publication) error {
	if len(pubs) == 0 {
		fmt.Fprintln(w, "No publications found.")
		return nil
	}

	rows := make([][]string, 0, len(pubs))
	for _, p := range pubs {
		prop := "-"
		if p.PropertyID != nil {
			prop = fmt.Sprint(*p.PropertyID)
		}
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			truncate(p.Title, 40),
			p.State.Label(),
			formatOptionalPrice(p.Price),
			p.StartDate.String(),
			prop,
		})
	}
	return table(w, []string{"ID", "TITLE", "STATE", "PRICE", "FROM", "PROPERTY"}, rows)
}

// printPublicationDetail prints one publication.
func printPublicationDetail(w io.Writer, p *publication.Publication) {
	fmt.Fprintf(w, "Publication #%d\n", p.ID)
	fmt.Fprintf(w, "  Title:    %s\n", p.Title)
	fmt.Fprintf(w, "  State:    %s\n", p.State.Label())
	fmt.Fprintf(w, "  Price:    %s\n", formatOptionalPrice(p.Price))
	if p.PropertyID != nil {
		fmt.Fprintf(w, "  Property: #%d\n", *p.PropertyID)
	}
	fmt.Fprintf(w, "  Period:   %s → %s\n", orDash(p.StartDate.String()), orDash(p.EndDate.String()))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Created:  %s\n", formatTime(p.CreatedAt.Time))
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}

// printTransactionTable prints transactions as a table.
func printTransactionTable(w io.Writer, txs []*transaction.Transaction) error {
	if len(txs) == 0 {
		fmt.Fprintln(w, "No transactions found.")
		return nil
	}

	rows := make([][]string, 0, len(txs))
	var total float64
	for _, t := range txs {
		total += t.Amount
		rows = append(rows, []string{
			fmt.Sprint(t.ID),
			string(t.Type),
			formatPrice(t.Amount),
			formatTime(t.Date.Time),
			fmt.Sprint(t.PropertyID),
			orDash(t.Status),
		})
	}
	if err := table(w, []string{"ID", "TYPE", "AMOUNT", "DATE", "PROPERTY", "STATUS"}, rows); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d transactions, %s\n", len(txs), formatPrice(total))
	return nil
}

// printTransactionDetail prints one transaction.
func printTransactionDetail(w io.Writer, t *transaction.Transaction) {
	fmt.Fprintf(w, "Transaction #%d\n", t.ID)
	fmt.Fprintf(w, "  Type:     %s\n", t.Type)
	fmt.Fprintf(w, "  Amount:   %s\n", formatPrice(t.Amount))
	fmt.Fprintf(w, "  Date:     %s\n", formatTime(t.Date.Time))
	fmt.Fprintf(w, "  Property: #%d\n", t.PropertyID)
	fmt.Fprintf(w, "  Client:   #%d\n", t.ClientID)
	fmt.Fprintf(w, "  Agent:    #%d\n", t.AgentID)
	fmt.Fprintf(w, "  Status:   %s\n", orDash(t.Status))
	if t.Notes != "" {
		fmt.Fprintf(w, "  Notes:    %s\n", t.Notes)
	}
}

// printPropertySummary prints a single property summary in text format.
func printPropertySummary(w io.Writer, p *property.Property) {
	fmt.Fprintf(w, "Property #%d\n", p.ID)
	fmt.Fprintf(w, "  Title:    %s\n", p.DisplayName())
	if p.Address != "" {
		fmt.Fprintf(w, "  Address:  %s\n", p.Address)
	}
	if p.District != "" {
		fmt.Fprintf(w, "  District: %s\n", p.District)
	}
	if p.Type != "" {
		fmt.Fprintf(w, "  Type:     %s\n", p.Type)
	}
	if p.Price != nil {
		fmt.Fprintf(w, "  Price:    %s\n", formatPrice(*p.Price))
	}
	if p.Bedrooms != nil {
		fmt.Fprintf(w, "  Beds:     %d\n", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		fmt.Fprintf(w, "  Baths:    %d\n", *p.Bathrooms)
	}
	if p.AreaM2 != nil {
		fmt.Fprintf(w, "  Area:     %g m²\n", *p.AreaM2)
	}
	if img := p.PrimaryImage(); img != "" {
		fmt.Fprintf(w, "  Image:    %s\n", img)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}

// formatPrice formats an amount with thousands separators and two decimals
// when it has cents.
func formatPrice(amount float64) string {
	neg := amount < 0
	amount = math.Abs(amount)
	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	s := fmt.Sprintf("%d", whole)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}
	if cents > 0 {
		s += fmt.Sprintf(".%02d", cents)
	}
	if neg {
		s = "-" + s
	}
	return s
}

func formatOptionalPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return formatPrice(*p)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(timeFormat)
}

func formatID(id int64) string {
	if id <= 0 {
		return "-"
	}
	return fmt.Sprint(id)
}

func formatActive(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}

func preferencePlace(region, district *string) string {
	var parts []string
	if district != nil {
		parts = append(parts, *district)
	}
	if region != nil {
		parts = append(parts, *region)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
