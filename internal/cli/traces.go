package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/plantrace/internal/generate"
	"github.com/aretw0/plantrace/internal/presentation/graph"
	"github.com/aretw0/plantrace/internal/presentation/tui"
	"github.com/aretw0/plantrace/internal/validator"
	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/observation"
)

// Output formats.
const (
	FormatAuto    = "auto"
	FormatJSON    = "json"
	FormatReport  = "report"
	FormatMermaid = "mermaid"
)

// WholePlan as a sample length keeps whole plans regardless of the
// configured goal_length.
const WholePlan = -1

// GenerateOptions configures the random and sample commands.
// Zero Traces or Length fall back to the configuration.
type GenerateOptions struct {
	Generator string
	Traces    int
	Length    int
	Format    string
	NoSave    bool
}

// Generate produces a trace list, stores it and writes it to w.
func Generate(ctx context.Context, app *App, opts GenerateOptions, w io.Writer) error {
	if opts.Traces <= 0 {
		opts.Traces = app.Config.Generation.Traces
	}
	switch {
	case opts.Length > 0:
	case opts.Generator == generate.GeneratorGoal && opts.Length == 0:
		opts.Length = app.Config.Generation.GoalLength
	case opts.Generator == generate.GeneratorGoal:
		opts.Length = 0
	default:
		opts.Length = app.Config.Generation.Length
	}

	var (
		list *domain.TraceList
		err  error
	)
	switch opts.Generator {
	case generate.GeneratorRandom:
		list, err = app.Engine.Random(ctx, opts.Traces, opts.Length)
	case generate.GeneratorGoal:
		list, err = app.Engine.Sample(ctx, opts.Traces, opts.Length)
	default:
		return fmt.Errorf("unknown generator %q", opts.Generator)
	}
	if err != nil {
		return err
	}

	if !opts.NoSave {
		if err := app.Engine.Save(ctx, list); err != nil {
			return fmt.Errorf("failed to store trace list: %w", err)
		}
		if !app.Quiet {
			printSystemMessage("Stored trace list '%s' (%d traces).", list.ID, list.Len())
		}
	}
	return writeList(w, list, opts.Format)
}

// Show writes a stored trace list to w.
func Show(ctx context.Context, app *App, id, format string, w io.Writer) error {
	list, err := app.Engine.Load(ctx, id)
	if err != nil {
		return err
	}
	return writeList(w, list, format)
}

// List writes the IDs of the stored trace lists, one per line.
func List(ctx context.Context, app *App, w io.Writer) error {
	ids, err := app.Engine.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 && !app.Quiet {
		printSystemMessage("No stored trace lists.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}

// Delete removes a stored trace list.
func Delete(ctx context.Context, app *App, id string) error {
	if err := app.Engine.Delete(ctx, id); err != nil {
		return err
	}
	if !app.Quiet {
		printSystemMessage("Deleted trace list '%s'.", id)
	}
	return nil
}

// ObserveOptions configures the observe command.
type ObserveOptions struct {
	ID      string
	Method  string
	Percent int
	Hide    []string
}

// Observe tokenizes a stored trace list and writes the tokens as JSON.
func Observe(ctx context.Context, app *App, opts ObserveOptions, w io.Writer) error {
	hide, err := app.Engine.Fluents(opts.Hide...)
	if err != nil {
		return err
	}
	method, err := observation.NewMethod(opts.Method, opts.Percent, hide, nil)
	if err != nil {
		return err
	}
	list, err := app.Engine.Load(ctx, opts.ID)
	if err != nil {
		return err
	}
	tokens, err := app.Engine.Observe(list, method)
	if err != nil {
		return err
	}
	app.Logger.Debug("Observed", "id", list.ID, "method", method.Name())
	return writeJSON(w, tokens)
}

// writeList renders the markdown report on terminals and JSON elsewhere,
// unless the format is forced.
func writeList(w io.Writer, list *domain.TraceList, format string) error {
	if format == "" || format == FormatAuto {
		format = FormatJSON
		if isTerminal(w) {
			format = FormatReport
		}
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, list)
	case FormatReport:
		out, err := tui.NewRenderer()(tui.Report(list))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case FormatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(list, nil))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Planners writes the names of the configured planners, one per line.
func Planners(app *App, w io.Writer) error {
	reg, err := LoadRegistry(app.Config, app.Logger)
	if err != nil {
		return err
	}
	names := reg.Names()
	if len(names) == 0 && !app.Quiet {
		printSystemMessage("No planners configured in %s.", app.Config.PlannersFile)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

// Validate crawls the task's state space and writes the reachability report.
func Validate(app *App, limit int, w io.Writer) error {
	report, err := validator.ValidateTask(app.Engine.Problem(), limit)
	if report != nil {
		fmt.Fprint(w, report.String())
	}
	return err
}
