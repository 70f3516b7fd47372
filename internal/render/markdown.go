package render

import (
	"strings"

	"github.com/custodia-labs/docket/internal/core/domain"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`,
	"<", `\<`, ">", `\>`, "#", `\#`, "|", `\|`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// cell escapes s for a single table cell.
func cell(s string) string {
	return escapeMarkdown(strings.Join(strings.Fields(s), " "))
}

// paragraph escapes s keeping its line breaks as hard breaks.
func paragraph(s string) string {
	lines := splitLines(s)
	for i, line := range lines {
		lines[i] = escapeMarkdown(strings.TrimSpace(line))
	}
	return strings.Join(lines, "  \n")
}

// Markdown returns a GitHub-flavoured Markdown projection of a layout for
// terminal preview. Images are replaced by short placeholders.
func Markdown(layout domain.LayoutDocument) string {
	var b strings.Builder
	h := layout.Header

	b.WriteString("# " + cell(h.CompanyName) + "\n\n")
	if h.Logo != "" {
		b.WriteString("_[company logo]_\n\n")
	}
	if len(h.AddressLines) > 0 {
		b.WriteString(paragraph(strings.Join(h.AddressLines, "\n")) + "\n\n")
	}
	b.WriteString("**" + cell(h.InvoiceNumber) + "**  \n")
	b.WriteString(LabelIssueDate + escapeMarkdown(h.IssueDate) + "\n\n")

	b.WriteString("## " + escapeMarkdown(layout.BillTo.Heading) + "\n\n")
	b.WriteString("**" + cell(layout.BillTo.CustomerName) + "**  \n")
	b.WriteString(cell(layout.BillTo.Email) + "\n\n")

	t := layout.Items
	b.WriteString("| " + strings.Join(t.Columns, " | ") + " |\n")
	b.WriteString("|:---|---:|---:|---:|\n")
	for _, r := range t.Rows {
		b.WriteString("| " + cell(r.Description) + " | " + r.Quantity + " | " +
			cell(r.UnitPrice) + " | " + cell(r.LineTotal) + " |\n")
	}
	b.WriteString("| | | **" + t.TotalLabel + "** | **" + cell(t.Total) + "** |\n\n")

	if r := layout.Remarks; r != nil {
		if r.Notes != "" {
			b.WriteString("## " + HeadingNotes + "\n\n" + paragraph(r.Notes) + "\n\n")
		}
		if r.Terms != "" {
			b.WriteString("## " + HeadingTerms + "\n\n" + paragraph(r.Terms) + "\n\n")
		}
	}
	if layout.Signature != nil {
		b.WriteString("## " + layout.Signature.Heading + "\n\n_[signed]_\n")
	}
	return b.String()
}
