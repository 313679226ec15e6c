package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/kbadmin/internal/client/client"
	"github.com/dmitrijs2005/kbadmin/internal/client/config"
	"github.com/dmitrijs2005/kbadmin/internal/client/forms"
	"github.com/dmitrijs2005/kbadmin/internal/client/store"
	"github.com/dmitrijs2005/kbadmin/internal/client/tui"
	"github.com/dmitrijs2005/kbadmin/internal/logging"
)

// Options are the injection points of the command tree. Zero values select
// the real implementations.
type Options struct {
	In  io.Reader
	Out io.Writer

	// NewClient builds the repository client from the loaded config.
	NewClient func(cfg *config.Config, log logging.Logger) (client.Client, error)
	// Logger replaces the file logger configured by log_file.
	Logger logging.Logger
}

var newFileLogger = func(path, level string) (logging.Logger, func() error, error) {
	return logging.NewFileZapLogger(path, level)
}

// console is the state shared by the commands of one invocation.
type console struct {
	opts   Options
	loader *config.Loader

	cfg      *config.Config
	log      logging.Logger
	closeLog func() error
	store    *store.Store
	app      *App
}

// NewRootCmd builds the kbconsole command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.NewClient == nil {
		opts.NewClient = newRESTClient
	}
	c := &console{opts: opts}

	root := &cobra.Command{
		Use:   "kbconsole",
		Short: "Knowledge base administration console",
		Long: `kbconsole lists, creates, edits and deletes knowledge entries held by
the knowledge base REST API. Run it without a subcommand for an
interactive prompt, or use "dashboard" for the full-screen view.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Knowledge base console, API "+c.cfg.APIBaseURL+" (type 'help' for commands)")
			_ = c.app.List(cmd.Context())
			runREPL(cmd.Context(), c.app, c.app.status, c.app.reader, c.app.out)
			return nil
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Out)
	c.loader = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		c.listCmd(),
		c.showCmd(),
		c.createCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.statsCmd(),
		c.dashboardCmd(),
	)
	c.closeOnExit(root)
	return root
}

// closeOnExit wraps the RunE of cmd and its children so the log file is
// closed when the command fails too. Cobra skips post-run hooks on error.
func (c *console) closeOnExit(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := c.teardown(); cerr != nil {
					err = errors.Join(err, cerr)
				}
			}()
			return run(cmd, args)
		}
	}
	for _, sub := range cmd.Commands() {
		c.closeOnExit(sub)
	}
}

func newRESTClient(cfg *config.Config, log logging.Logger) (client.Client, error) {
	return client.NewRESTClient(cfg.APIBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)
}

func (c *console) setup(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if err != nil {
			_ = c.teardown()
		}
	}()

	cfg, err := c.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg

	c.log = c.opts.Logger
	if c.log == nil {
		l, closeFn, err := newFileLogger(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return err
		}
		c.log, c.closeLog = l, closeFn
	}
	c.log.Info(cmd.Context(), "console started", "command", cmd.Name(), "api", cfg.APIBaseURL)

	cl, err := c.opts.NewClient(cfg, c.log)
	if err != nil {
		return err
	}
	c.store = store.New(cl, c.log)

	c.app, err = NewApp(cfg, c.store, cmd.InOrStdin(), cmd.OutOrStdout(), c.log)
	return err
}

func (c *console) teardown() error {
	if c.closeLog == nil {
		return nil
	}
	err := c.closeLog()
	c.closeLog = nil
	return err
}

func (c *console) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all entries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.List(cmd.Context())
		},
	}
}

func (c *console) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Show(cmd.Context(), args[0])
		},
	}
}

// formFlags registers the entry field flags and reports which were set.
type formFlags struct {
	f   forms.Form
	cmd *cobra.Command
}

func bindFormFlags(cmd *cobra.Command) *formFlags {
	ff := &formFlags{cmd: cmd}
	fs := cmd.Flags()
	fs.StringVar(&ff.f.Title, "title", "", "entry title")
	fs.StringVar(&ff.f.Description, "description", "", "entry description")
	fs.StringVar(&ff.f.Category, "category", "", "category")
	fs.StringVar(&ff.f.Status, "status", "", "status: certified or training")
	fs.StringVar(&ff.f.TechName, "tech", "", "technician name")
	fs.StringVar(&ff.f.ProdMinutes, "minutes", "", fmt.Sprintf("production time in minutes (%d-%d)", forms.MinProdMinutes, forms.MaxProdMinutes))
	fs.StringVar(&ff.f.CoverPath, "cover", "", "cover image to preview (never uploaded)")
	return ff
}

var formFlagNames = []string{"title", "description", "category", "status", "tech", "minutes", "cover"}

func (ff *formFlags) any() bool {
	for _, n := range formFlagNames {
		if ff.cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

// apply copies the flags that were set onto f.
func (ff *formFlags) apply(f *forms.Form) {
	fs := ff.cmd.Flags()
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("title", &f.Title, ff.f.Title)
	set("description", &f.Description, ff.f.Description)
	set("category", &f.Category, ff.f.Category)
	set("status", &f.Status, ff.f.Status)
	set("tech", &f.TechName, ff.f.TechName)
	set("minutes", &f.ProdMinutes, ff.f.ProdMinutes)
	set("cover", &f.CoverPath, ff.f.CoverPath)
}

func (c *console) createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an entry (interactive unless field flags are given)",
		Args:  cobra.NoArgs,
	}
	ff := bindFormFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !ff.any() {
			return c.app.Create(cmd.Context())
		}
		var f forms.Form
		ff.apply(&f)
		return c.app.CreateFrom(cmd.Context(), f)
	}
	return cmd
}

func (c *console) editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry (interactive unless field flags are given)",
		Args:  cobra.ExactArgs(1),
	}
	ff := bindFormFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if !ff.any() {
			return c.app.Edit(cmd.Context(), args[0])
		}
		return c.app.EditWith(cmd.Context(), args[0], ff.apply)
	}
	return cmd
}

func (c *console) deleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Delete(cmd.Context(), args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (c *console) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show total, certified and training counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Stats(cmd.Context())
		},
	}
}

func (c *console) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the full-screen dashboard",
		Long: `Launch an interactive dashboard with entry statistics and the entry list.

Key bindings:
  ↑/↓ or j/k   Move the cursor
  enter        Open the entry under the cursor
  esc          Back to the list
  d            Delete the entry (asks for confirmation)
  r            Refresh, or retry after a failed fetch
  c            Dismiss errors
  q / Ctrl+C   Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(int(os.Stdin.Fd())) {
				return errors.New("dashboard needs an interactive terminal")
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			p := tea.NewProgram(tui.New(ctx, c.store, c.cfg.APIBaseURL), tea.WithAltScreen(), tea.WithContext(ctx))
			unsub := c.store.Subscribe(func(st store.State) { p.Send(tui.Snapshot(st)) })
			defer unsub()
			_, err := p.Run()
			return err
		},
	}
}
