package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/interntrack/internal/client/models"
)

// clearValue typed at an edit prompt empties an optional field.
const clearValue = "-"

const dateLayout = "2006-01-02"

// List handles "list [status] [query...]". A leading known status (or
// "all") filters by status; the remaining words are the search text.
func (a *App) List(ctx context.Context, args []string) error {
	status, query := parseListArgs(args)

	items, err := a.internships.List(ctx, status, query)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(a.out, "No applications found")
		return nil
	}
	printTable(a.out, items)
	return nil
}

func parseListArgs(args []string) (status, query string) {
	if len(args) > 0 && (args[0] == "all" || slices.Contains(models.Statuses, args[0])) {
		status, args = args[0], args[1:]
	}
	return status, strings.Join(args, " ")
}

func (a *App) Add(ctx context.Context) error {
	var in models.InternshipInput
	var err error

	if in.Company, err = getSimpleText(a.reader, "Company", a.out); err != nil {
		return err
	}
	if in.Role, err = getSimpleText(a.reader, "Role", a.out); err != nil {
		return err
	}
	if in.Status, err = GetWithDefault(a.reader, "Status ("+strings.Join(models.Statuses, "/")+")", "applied", a.out); err != nil {
		return err
	}
	if in.Link, err = getSimpleText(a.reader, "Link (optional)", a.out); err != nil {
		return err
	}
	if in.Notes, err = getSimpleText(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}

	item, err := a.internships.Add(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added #%d %s, %s\n", item.ID, item.Company, item.Role)
	return nil
}

// Edit prompts for every field with the current value as default. For link
// and notes, "-" clears the value.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit")
	if err != nil {
		return err
	}

	item, err := a.internships.Get(ctx, id)
	if err != nil {
		return err
	}
	in := item.Input()

	if in.Company, err = GetWithDefault(a.reader, "Company", in.Company, a.out); err != nil {
		return err
	}
	if in.Role, err = GetWithDefault(a.reader, "Role", in.Role, a.out); err != nil {
		return err
	}
	if in.Status, err = GetWithDefault(a.reader, "Status ("+strings.Join(models.Statuses, "/")+")", in.Status, a.out); err != nil {
		return err
	}
	if in.Link, err = a.optional("Link", in.Link); err != nil {
		return err
	}
	if in.Notes, err = a.optional("Notes", in.Notes); err != nil {
		return err
	}

	if err := a.internships.Edit(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated #%d\n", id)
	return nil
}

func (a *App) optional(label, current string) (string, error) {
	if current != "" {
		label += " ('" + clearValue + "' clears)"
	}
	v, err := GetWithDefault(a.reader, label, current, a.out)
	if err != nil {
		return "", err
	}
	if v == clearValue {
		return "", nil
	}
	return v, nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete")
	if err != nil {
		return err
	}
	if err := a.internships.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted #%d\n", id)
	return nil
}

func parseID(args []string, cmd string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <id>", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive number")
	}
	return id, nil
}

func printTable(w io.Writer, items []*models.Internship) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOMPANY\tROLE\tSTATUS\tADDED\tLINK")
	for _, it := range items {
		link := ""
		if it.Link != nil {
			link = *it.Link
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			it.ID, it.Company, it.Role, it.Status, it.CreatedAt.Local().Format(dateLayout), link)
	}
	_ = tw.Flush()
}
