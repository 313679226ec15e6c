// Package cli is the knowledge-base console: a cobra command tree with
// one-shot subcommands (list, show, create, edit, delete, stats), the
// full-screen dashboard, and an interactive REPL started when no subcommand
// is given.
//
// Every command goes through a store.Store, so the REPL, the one-shot
// commands and the dashboard share one view of loading and error state.
// Failures are printed where they happen; the error returned to cobra only
// sets the exit status (see Reported).
package cli
