// Package cli wires the content operations into the "content" command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"episolve/apperr"
	"episolve/cache"
	"episolve/options"
	"episolve/records"
	"episolve/vibe"
)

// App is everything the commands need. Cache may be nil; a nil Err
// means os.Stderr.
type App struct {
	Ops   *records.Operations
	Cache *cache.Cache
	In    io.Reader
	Out   io.Writer
	Err   io.Writer
	Log   *zap.Logger
}

func (app *App) errOut() io.Writer {
	if app.Err == nil {
		return os.Stderr
	}
	return app.Err
}

// Run executes args and returns the process exit status.
func Run(ctx context.Context, app *App, args []string) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(app.errOut(), "\n❌ Error: %v\n", err)
		app.Log.Debug("command failed", zap.String("code", apperr.Code(err)), zap.Error(err))
		return 1
	}
	return 0
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "content",
		Short:         "Manage Episolve website content",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.Out)
	root.SetErr(app.errOut())
	if app.In != nil {
		root.SetIn(app.In)
	}

	root.AddCommand(
		generateCmd(app),
		bulkUpdateCmd(app),
		createPageCmd(app),
		testimonialsCmd(app),
		updateServiceCmd(app),
		uploadImageCmd(app),
		seedCmd(app),
		listCmd(app),
		leadsCmd(app),
		vibeCmd(app),
		cacheCmd(app),
	)
	return root
}

// clearCache drops cached API responses after a write so the site sees
// the change immediately.
func (app *App) clearCache() {
	if app.Cache == nil {
		return
	}
	n, err := app.Cache.Clear()
	if err != nil {
		app.Log.Warn("clearing response cache", zap.Error(err))
		return
	}
	app.Log.Debug("response cache cleared", zap.Int("files", n))
}

type runFunc func(ctx context.Context, opts *options.Options) error

// fieldCommand builds a command whose arguments are "--key value" tokens
// mixed with positionals, parsed by options rather than cobra.
func fieldCommand(app *App, use, short string, mutates bool, run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && (args[0] == "--help" || args[0] == "-h") {
				return cmd.Help()
			}
			if err := run(cmd.Context(), options.Parse(args)); err != nil {
				return err
			}
			if mutates {
				app.clearCache()
			}
			return nil
		},
	}
}

func usage(line string) error {
	return apperr.Usage("usage: content %s", line)
}

func generateCmd(app *App) *cobra.Command {
	const line = "generate <service|blog|bio|testimonial> <generate|create|enhance> [slug] [--flag value]..."
	cmd := fieldCommand(app, "generate <type> <action> [slug] [--flag value]...", "Generate copy, optionally saving it", false,
		func(ctx context.Context, opts *options.Options) error {
			typ, action := opts.Positional(0), opts.Positional(1)
			if typ == "" || action == "" {
				return usage(line)
			}
			opts.Positionals = opts.Positionals[2:]
			if err := app.Ops.Generate(ctx, typ, action, opts); err != nil {
				return err
			}
			if action != records.ActionGenerate {
				app.clearCache()
			}
			return nil
		})
	cmd.Long = "Types: " + strings.Join(records.GenerateTypes, ", ") + "\n" +
		"Actions: generate previews, create saves, enhance rewrites an existing service."
	return cmd
}

func bulkUpdateCmd(app *App) *cobra.Command {
	return fieldCommand(app, "bulk-update <collection> <selector> [--field value]...", "Apply the same change to many records", true,
		func(ctx context.Context, opts *options.Options) error {
			collection, selector := opts.Positional(0), opts.Positional(1)
			if collection == "" || selector == "" {
				return usage("bulk-update <" + strings.Join(records.BulkCollections, "|") + "> <all|id:N|slug1,slug2> [--field value]...")
			}
			return app.Ops.BulkUpdate(ctx, collection, selector, opts)
		})
}

func createPageCmd(app *App) *cobra.Command {
	return fieldCommand(app, "create-page <title> <slug> [--published]", "Create a page with placeholder content", true,
		func(ctx context.Context, opts *options.Options) error {
			title, slug := opts.Positional(0), opts.Positional(1)
			if title == "" || slug == "" {
				return usage("create-page <title> <slug> [--published]")
			}
			_, err := app.Ops.CreatePage(ctx, title, slug, opts.Bool("published"))
			return err
		})
}

func testimonialsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:                "testimonials <create|update|delete|list> [id] [--field value]...",
		Short:              "Manage testimonials",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.HasPrefix(args[0], "-") {
				return usage("testimonials <create|update|delete|list> [id] [--field value]...")
			}
			action := args[0]
			if err := app.Ops.Testimonials(cmd.Context(), action, options.Parse(args[1:])); err != nil {
				return err
			}
			if action != "list" {
				app.clearCache()
			}
			return nil
		},
	}
}

func updateServiceCmd(app *App) *cobra.Command {
	return fieldCommand(app, "update-service <slug> [--field value]...", "Change fields of one service", true,
		func(ctx context.Context, opts *options.Options) error {
			slug := opts.Positional(0)
			if slug == "" {
				return usage("update-service <slug> [--title|--short|--icon|--featured|--order|--cta-text|--cta-link value]...")
			}
			return app.Ops.UpdateService(ctx, slug, opts)
		})
}

func uploadImageCmd(app *App) *cobra.Command {
	return fieldCommand(app, "upload-image <file-path> [--alt text]", "Add an image to the media library", true,
		func(ctx context.Context, opts *options.Options) error {
			path := opts.Positional(0)
			if path == "" {
				return usage("upload-image <file-path> [--alt text]")
			}
			_, err := app.Ops.UploadMedia(ctx, path, opts.Get("alt"))
			return err
		})
}

func seedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "seed <globals|content>",
		Short:     "Load the default header, footer and starter content",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"globals", "content"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			switch args[0] {
			case "globals":
				err = app.Ops.SeedGlobals(cmd.Context())
			case "content":
				err = app.Ops.SeedContent(cmd.Context())
			default:
				return usage("seed <globals|content>")
			}
			if err != nil {
				return err
			}
			app.clearCache()
			return nil
		},
	}
}

func listCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "list <collection>",
		Short:     "Print every record of a collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: records.ListCollections(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Ops.List(cmd.Context(), args[0])
		},
	}
}

func leadsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Review contact form leads",
	}

	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List leads, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Ops.ListLeads(cmd.Context(), status)
		},
	}
	list.Flags().StringVar(&status, "status", "", "only leads with this status")

	setStatus := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a lead through the pipeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Ops.SetLeadStatus(cmd.Context(), args[0], args[1])
		},
	}

	cmd.AddCommand(list, setStatus)
	return cmd
}

func vibeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "vibe",
		Short: "Describe changes in plain English",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer app.clearCache()
			return vibe.NewSession(app.Ops, cmd.InOrStdin(), app.Out, app.Log).Run(cmd.Context())
		},
	}
}

func cacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API response cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every cached response",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Cache == nil {
				fmt.Fprintln(app.Out, "⚠️  Response cache is not configured")
				return nil
			}
			n, err := app.Cache.Clear()
			if err != nil {
				return apperr.Store(err, "clearing response cache")
			}
			fmt.Fprintf(app.Out, "🧹 Cleared %d cached responses\n", n)
			return nil
		},
	})
	return cmd
}
