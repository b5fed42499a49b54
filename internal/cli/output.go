package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/studiowebux/productdesk/internal/filter"
	"gopkg.in/yaml.v3"
)

// render prints v in the selected format. text is used for the text format
// when no query is set.
func (r *Runner) render(v any, text func(w io.Writer)) error {
	if r.opts.Query == "" && r.opts.Output == "text" {
		text(r.opts.Out)
		return nil
	}

	out, err := filter.ApplyValue(v, r.opts.Query)
	if err != nil {
		return err
	}

	if r.opts.Output == "yaml" {
		return r.writeYAML(out)
	}
	return r.writeJSON(out)
}

// writeJSON prints a JSON document, highlighted when stdout is a terminal
func (r *Runner) writeJSON(doc string) error {
	if !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	if r.opts.Highlight {
		if err := quick.Highlight(r.opts.Out, doc, "json", "terminal256", "monokai"); err == nil {
			return nil
		}
	}
	_, err := io.WriteString(r.opts.Out, doc)
	return err
}

// writeYAML re-encodes a JSON document as YAML
func (r *Runner) writeYAML(doc string) error {
	var v any
	if err := json.Unmarshal([]byte(doc), &v); err != nil {
		return fmt.Errorf("failed to decode JSON for yaml output: %w", err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = r.opts.Out.Write(data)
	return err
}
