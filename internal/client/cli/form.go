package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kbadmin/internal/client/forms"
	"github.com/dmitrijs2005/kbadmin/internal/client/models"
)

// promptForm asks for every field, offering the values of cur as defaults.
func (a *App) promptForm(cur forms.Form) (forms.Form, error) {
	var (
		f   forms.Form
		err error
	)
	if f.Title, err = GetWithDefault(a.reader, "Title", cur.Title, a.out); err != nil {
		return cur, err
	}
	if f.Description, err = GetMultiline(a.reader, "Description", cur.Description, a.out); err != nil {
		return cur, err
	}
	if f.Category, err = GetChoice(a.reader, "Category", a.config.Categories, cur.Category, a.out); err != nil {
		return cur, err
	}
	statuses := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		statuses[i] = string(s)
	}
	if f.Status, err = GetChoice(a.reader, "Status", statuses, cur.Status, a.out); err != nil {
		return cur, err
	}
	if f.TechName, err = GetWithDefault(a.reader, "Technician name", cur.TechName, a.out); err != nil {
		return cur, err
	}
	prompt := fmt.Sprintf("Production time in minutes (%d-%d)", forms.MinProdMinutes, forms.MaxProdMinutes)
	if f.ProdMinutes, err = GetWithDefault(a.reader, prompt, cur.ProdMinutes, a.out); err != nil {
		return cur, err
	}
	if f.CoverPath, err = GetWithDefault(a.reader, "Cover image path (optional, preview only)", cur.CoverPath, a.out); err != nil {
		return cur, err
	}
	return f, nil
}

func splitErrors(err error) []string {
	var fe forms.Errors
	if !errors.As(err, &fe) {
		return []string{err.Error()}
	}
	lines := make([]string, len(fe))
	for i, e := range fe {
		lines[i] = e.Field + " " + e.Message
	}
	return lines
}
