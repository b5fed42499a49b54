package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/studiowebux/productdesk/internal/history"
	"github.com/studiowebux/productdesk/internal/types"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentGets bounds the parallel fetches of "get a b c"
const maxConcurrentGets = 4

// API is the part of the product client the commands need
type API interface {
	ListProducts(ctx context.Context) ([]types.ShortProduct, error)
	GetProduct(ctx context.Context, id types.ProductID) (types.Product, error)
	CreateProduct(ctx context.Context, p types.Product) (string, error)
	UpdateProduct(ctx context.Context, p types.Product) (string, error)
	DeleteProduct(ctx context.Context, id types.ProductID) error
}

// HistoryStore is the part of the call log the history command reads
type HistoryStore interface {
	Recent(limit int) ([]types.CallRecord, error)
	Stats() ([]history.OperationStats, error)
	Clear() error
}

// Options contains options for running commands in CLI mode
type Options struct {
	Output    string // text, json, yaml
	Query     string // JMESPath applied to the JSON form
	Highlight bool   // colorize JSON output
	Out       io.Writer
	Err       io.Writer
}

// Runner executes the non-interactive commands
type Runner struct {
	api     API
	history HistoryStore
	opts    Options

	// Pick chooses a product when a command needs an id and none was given
	Pick func(products []types.ShortProduct) (types.ProductID, error)
}

// NewRunner creates a runner. store may be nil when history is disabled.
func NewRunner(api API, store HistoryStore, opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.Output == "" {
		opts.Output = "text"
	}
	return &Runner{api: api, history: store, opts: opts, Pick: pickProduct}
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ValidateOutput checks the -o flag
func ValidateOutput(format string) error {
	switch format {
	case "", "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// List prints the short product list in server order
func (r *Runner) List(ctx context.Context) error {
	products, err := r.api.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch short products: %w", err)
	}

	return r.render(products, func(w io.Writer) {
		if len(products) == 0 {
			dimColor.Fprintln(w, "No products")
			return
		}
		for _, p := range products {
			fmt.Fprintf(w, "%s  %s\n", dimColor.Sprint(p.ID), p.Label())
		}
	})
}

// Get fetches one or more products concurrently and prints them in argument order
func (r *Runner) Get(ctx context.Context, ids []types.ProductID) error {
	if len(ids) == 0 {
		id, err := r.pick(ctx)
		if err != nil {
			return err
		}
		ids = []types.ProductID{id}
	}

	products := make([]types.Product, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentGets)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := r.api.GetProduct(gctx, id)
			if err != nil {
				return fmt.Errorf("failed to fetch product %s: %w", id, err)
			}
			products[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var v any = products
	if len(products) == 1 {
		v = products[0]
	}
	return r.render(v, func(w io.Writer) {
		for i, p := range products {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeProduct(w, p)
		}
	})
}

// Create posts a new product built from the flags
func (r *Runner) Create(ctx context.Context, p types.Product) error {
	if p.ID.IsZero() {
		p.ID = types.NewProductID()
	}

	resp, err := r.api.CreateProduct(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	okColor.Fprintf(r.opts.Err, "Created product %s\n", p.ID)
	return r.writeResponse(resp)
}

// Update fetches a product, applies edit to it and puts it back
func (r *Runner) Update(ctx context.Context, id types.ProductID, edit func(*types.Product)) error {
	if id.IsZero() {
		picked, err := r.pick(ctx)
		if err != nil {
			return err
		}
		id = picked
	}

	p, err := r.api.GetProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch product detail: %w", err)
	}
	edit(&p)
	p.ID = id

	resp, err := r.api.UpdateProduct(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	okColor.Fprintf(r.opts.Err, "Updated product %s\n", id)
	return r.writeResponse(resp)
}

// Delete removes a product
func (r *Runner) Delete(ctx context.Context, id types.ProductID) error {
	if id.IsZero() {
		picked, err := r.pick(ctx)
		if err != nil {
			return err
		}
		id = picked
	}

	if err := r.api.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	okColor.Fprintf(r.opts.Err, "Deleted product %s\n", id)
	return nil
}

// History prints the call log, or per-operation stats
func (r *Runner) History(limit int, stats bool, clear bool) error {
	if r.history == nil {
		return fmt.Errorf("history is disabled (set history_enabled: true)")
	}

	if clear {
		if err := r.history.Clear(); err != nil {
			return err
		}
		okColor.Fprintln(r.opts.Err, "History cleared")
		return nil
	}

	if stats {
		s, err := r.history.Stats()
		if err != nil {
			return err
		}
		return r.render(s, func(w io.Writer) {
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "OPERATION\tCALLS\tFAILED\tAVG MS\tMAX MS")
			for _, op := range s {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f\t%d\n", op.Operation, op.Total, op.Failed, op.AvgDurationMs, op.MaxDurationMs)
			}
			tw.Flush()
		})
	}

	records, err := r.history.Recent(limit)
	if err != nil {
		return err
	}
	return r.render(records, func(w io.Writer) {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tOP\tMETHOD\tSTATUS\tMS\tURL")
		for _, rec := range records {
			status := fmt.Sprint(rec.Status)
			if rec.Failed() {
				status = failColor.Sprint(status)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
				rec.Timestamp.Format("2006-01-02 15:04:05"), rec.Operation, rec.Method, status, rec.Duration, rec.URL)
		}
		tw.Flush()
	})
}

// PrintError writes a failed command to stderr
func PrintError(w io.Writer, err error) {
	failColor.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

// PrintRequest writes one served request, as the mock command shows them
func PrintRequest(w io.Writer, ts time.Time, method, path string, status int, d time.Duration) {
	c := okColor
	if status >= 400 {
		c = failColor
	}
	fmt.Fprintf(w, "%s %-6s %s %s %s\n",
		dimColor.Sprint(ts.Format("15:04:05")), method, path, c.Sprint(status), dimColor.Sprint(d.Round(time.Millisecond)))
}

// pick lists the products and lets the user choose one
func (r *Runner) pick(ctx context.Context) (types.ProductID, error) {
	if r.Pick == nil {
		return "", fmt.Errorf("product id is required")
	}
	products, err := r.api.ListProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch short products: %w", err)
	}
	if len(products) == 0 {
		return "", fmt.Errorf("no products to choose from")
	}
	return r.Pick(products)
}

func (r *Runner) writeResponse(resp string) error {
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return nil
	}
	_, err := fmt.Fprintln(r.opts.Out, resp)
	return err
}

func writeProduct(w io.Writer, p types.Product) {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", p.ID)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	fmt.Fprintf(tw, "Price:\t%s\n", types.FormatAmount(p.Price))
	fmt.Fprintf(tw, "Quantity:\t%s\n", types.FormatAmount(p.Quantity))
	fmt.Fprintf(tw, "Status:\t%s\n", p.Status)
	tw.Flush()
}
