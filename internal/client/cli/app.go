package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/kbadmin/internal/client/client"
	"github.com/dmitrijs2005/kbadmin/internal/client/config"
	"github.com/dmitrijs2005/kbadmin/internal/client/forms"
	"github.com/dmitrijs2005/kbadmin/internal/client/models"
	"github.com/dmitrijs2005/kbadmin/internal/client/output"
	"github.com/dmitrijs2005/kbadmin/internal/client/store"
	"github.com/dmitrijs2005/kbadmin/internal/logging"
)

// App holds what every console command needs.
type App struct {
	config    *config.Config
	store     *store.Store
	formatter output.Formatter
	reader    *bufio.Reader
	out       io.Writer
	log       logging.Logger
}

func NewApp(cfg *config.Config, st *store.Store, in io.Reader, out io.Writer, log logging.Logger) (*App, error) {
	f, err := output.NewFormatter(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	return &App{
		config:    cfg,
		store:     st,
		formatter: f,
		reader:    bufio.NewReader(in),
		out:       out,
		log:       logging.OrNop(log),
	}, nil
}

func (a *App) write(data any) error {
	return a.formatter.Write(a.out, data)
}

// List fetches the collection and prints it.
func (a *App) List(ctx context.Context) error {
	entries, err := a.store.FetchAll(ctx)
	if err != nil {
		printErr(a.out, store.Message(err, client.MsgFetchEntries))
		printHint(a.out, "Run list again to retry.")
		return reported(err)
	}
	return a.write(entries)
}

// Show fetches one entry and prints its details.
func (a *App) Show(ctx context.Context, id string) error {
	e, err := a.store.FetchOne(ctx, id)
	if err != nil {
		msg := store.Message(err, client.MsgFetchEntry)
		if client.IsNotFound(err) {
			msg = fmt.Sprintf("%s: no entry with id %s", msg, id)
		}
		printErr(a.out, msg)
		return reported(err)
	}
	return a.write(e)
}

// Stats prints the dashboard counters for the current collection.
func (a *App) Stats(ctx context.Context) error {
	if _, err := a.store.FetchAll(ctx); err != nil {
		printErr(a.out, store.Message(err, client.MsgFetchEntries))
		return reported(err)
	}
	return a.write(a.store.Stats())
}

// Create runs the interactive create form. Invalid input shows the form
// again with the typed values kept.
func (a *App) Create(ctx context.Context) error {
	f := forms.Form{
		Category: a.config.Categories[0],
		Status:   string(models.StatusCertified),
	}
	for {
		var err error
		if f, err = a.promptForm(f); err != nil {
			return err
		}
		in, err := f.Validate(a.config.Categories)
		if err != nil {
			fieldErrors(a.out, err)
			if a.offerEdit() {
				continue
			}
			return reported(err)
		}
		a.previewCover(f.CoverPath)
		return a.submitCreate(ctx, in)
	}
}

// CreateFrom validates f and submits it without prompting for fields.
func (a *App) CreateFrom(ctx context.Context, f forms.Form) error {
	in, err := f.Validate(a.config.Categories)
	if err != nil {
		fieldErrors(a.out, err)
		return reported(err)
	}
	a.previewCover(f.CoverPath)
	return a.submitCreate(ctx, in)
}

// submitCreate posts in. On failure the user may retry with the same values.
func (a *App) submitCreate(ctx context.Context, in models.EntryInput) error {
	for {
		e, err := a.store.Create(ctx, in)
		if err == nil {
			a.log.Info(ctx, "entry created", "id", e.ID)
			printOK(a.out, "Created entry %s.", e.ID)
			return a.write(e)
		}
		printErr(a.out, store.Message(err, client.MsgCreateEntry))
		if !a.offerRetry() {
			return reported(err)
		}
	}
}

// Edit loads the entry and runs the form pre-filled with its values.
func (a *App) Edit(ctx context.Context, id string) error {
	cur, err := a.store.FetchOne(ctx, id)
	if err != nil {
		printErr(a.out, store.Message(err, client.MsgFetchEntry))
		return reported(err)
	}
	defer a.store.ClearSelected()

	f := forms.FromEntry(cur)
	for {
		if f, err = a.promptForm(f); err != nil {
			return err
		}
		in, err := f.Validate(a.config.Categories)
		if err != nil {
			fieldErrors(a.out, err)
			if a.offerEdit() {
				continue
			}
			return reported(err)
		}
		a.previewCover(f.CoverPath)
		return a.submitUpdate(ctx, cur, in)
	}
}

// EditWith loads the entry, applies change to its form values and submits
// the result without prompting for fields.
func (a *App) EditWith(ctx context.Context, id string, change func(*forms.Form)) error {
	cur, err := a.store.FetchOne(ctx, id)
	if err != nil {
		printErr(a.out, store.Message(err, client.MsgFetchEntry))
		return reported(err)
	}
	defer a.store.ClearSelected()

	f := forms.FromEntry(cur)
	change(&f)
	in, err := f.Validate(a.config.Categories)
	if err != nil {
		fieldErrors(a.out, err)
		return reported(err)
	}
	a.previewCover(f.CoverPath)
	return a.submitUpdate(ctx, cur, in)
}

// submitUpdate sends the fields of in that differ from cur.
func (a *App) submitUpdate(ctx context.Context, cur models.KnowledgeEntry, in models.EntryInput) error {
	patch := forms.Diff(cur, in)
	if patch.Empty() {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}
	for {
		e, err := a.store.Update(ctx, cur.ID, patch)
		if err == nil {
			a.log.Info(ctx, "entry updated", "id", e.ID)
			printOK(a.out, "Updated entry %s.", e.ID)
			return a.write(e)
		}
		printErr(a.out, store.Message(err, client.MsgUpdateEntry))
		if !a.offerRetry() {
			return reported(err)
		}
	}
}

// Delete removes an entry. Unless confirmed is set the user is asked first.
func (a *App) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		label := id
		if e, ok := a.store.Entry(id); ok {
			label = fmt.Sprintf("%s (%s)", id, e.Title)
		}
		ok, err := Confirm(a.reader, "Delete entry "+label+"?", a.out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Aborted.")
			return nil
		}
	}

	if err := a.store.Delete(ctx, id); err != nil {
		printErr(a.out, store.Message(err, client.MsgDeleteEntry))
		return reported(err)
	}
	a.log.Info(ctx, "entry deleted", "id", id)
	printOK(a.out, "Deleted entry %s.", id)
	return nil
}

// ClearErrors resets every error field of the store.
func (a *App) ClearErrors() {
	a.store.ClearErrors()
}

// status is the REPL prompt decoration: in-flight operations and pending
// errors.
func (a *App) status() string {
	st := a.store.State()
	s := fmt.Sprintf("%d entries", len(st.Entries))
	if n := len(st.Errors()); n > 0 {
		s += fmt.Sprintf(", %d error(s)", n)
	}
	return "(" + s + ")"
}

func (a *App) offerRetry() bool {
	ok, err := Confirm(a.reader, "Retry?", a.out)
	return err == nil && ok
}

func (a *App) offerEdit() bool {
	ok, err := Confirm(a.reader, "Edit the form again?", a.out)
	return err == nil && ok
}

func (a *App) previewCover(path string) {
	if path == "" {
		return
	}
	c, err := forms.LoadCover(path)
	if err != nil {
		printErr(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Cover: "+c.Preview())
}
