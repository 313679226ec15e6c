package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL drives. *App implements it;
// tests use a stub.
type execIface interface {
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, confirmed bool) error
	Stats(ctx context.Context) error
	ClearErrors()
}

const replHelp = `Available commands:
  (l)ist          list entries (also retries a failed fetch)
  show <id>       show one entry
  create          create an entry
  edit <id>       edit an entry
  delete <id>     delete an entry
  stats           total / certified / training counts
  clear           dismiss error messages
  exit | quit     leave the console`

// runREPL reads commands from reader until EOF, "exit" or "quit". Command
// handlers print their own results and errors. Commands that need an id
// ask for one when it is omitted.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "kb %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		withID := func(run func(id string) error) {
			id := ""
			if len(args) > 0 {
				id = args[0]
			} else if id, err = GetSimpleText(reader, "Enter entry id", w); err != nil {
				return
			}
			if id == "" {
				fmt.Fprintf(w, "Usage: %s <id>\n", cmd)
				return
			}
			_ = run(id)
		}

		switch cmd {
		case "help", "?":
			fmt.Fprintln(w, replHelp)
		case "l", "list":
			_ = a.List(ctx)
		case "show":
			withID(func(id string) error { return a.Show(ctx, id) })
		case "create", "add":
			_ = a.Create(ctx)
		case "edit":
			withID(func(id string) error { return a.Edit(ctx, id) })
		case "delete", "rm":
			withID(func(id string) error { return a.Delete(ctx, id, false) })
		case "stats":
			_ = a.Stats(ctx)
		case "clear":
			a.ClearErrors()
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}
