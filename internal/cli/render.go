package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/logictree/pkg/export"
	"github.com/matzehuels/logictree/pkg/tree"
)

const (
	vizChart = "chart" // geometric layout from the document coordinates
	vizGraph = "graph" // structural layout computed by Graphviz
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple outputs)
	vizTypes []string // visualization types: "chart", "graph"
	formats  []string // output formats: "svg", "png", "pdf", "dot"
	scale    float64  // PNG resolution multiplier
}

// newRenderCmd creates the render command for generating visualizations.
// It supports the geometric chart view and a Graphviz-laid-out graph view,
// in SVG, PNG, PDF, and DOT formats.
func newRenderCmd() *cobra.Command {
	var vizTypesStr, formatsStr string
	opts := renderOpts{scale: 2.0}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a logic tree document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.vizTypes = parseVizTypes(vizTypesStr)
			opts.formats = parseFormats(formatsStr)
			if err := validateVizTypes(opts.vizTypes); err != nil {
				return err
			}
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single type/format) or base path (multiple)")
	cmd.Flags().StringVarP(&vizTypesStr, "type", "t", "", "visualization type(s): chart (default), graph (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")

	return cmd
}

// parseVizTypes parses the --type flag into a slice of visualization types.
// If empty, defaults to ["chart"].
func parseVizTypes(s string) []string {
	if s == "" {
		return []string{vizChart}
	}
	return strings.Split(s, ",")
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "pdf": true, "dot": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'pdf', or 'dot')", f)
		}
	}
	return nil
}

// validateVizTypes checks that all requested types are valid.
func validateVizTypes(types []string) error {
	for _, v := range types {
		if v != vizChart && v != vizGraph {
			return fmt.Errorf("invalid type: %s (must be 'chart' or 'graph')", v)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file
// paths. If output is empty, it strips the extension from input. If output
// has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender loads the document, builds the tree, and renders it to the
// requested type/format combinations.
func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)
	prog := newProgress(logger)

	doc, err := LoadDocument(input)
	if err != nil {
		return err
	}
	t, err := doc.Build()
	if err != nil {
		return err
	}
	logger.Infof("Built tree: %d boxes, %d connections", t.Boxes(), len(t.Edges()))

	if len(opts.vizTypes) == 1 && len(opts.formats) == 1 {
		outputPath := opts.output
		if outputPath == "" {
			outputPath = basePath("", input) + "." + opts.formats[0]
		}
		if err := renderAndWrite(ctx, t, opts.vizTypes[0], opts.formats[0], outputPath, opts); err != nil {
			return err
		}
		prog.done("Render complete")
		printSuccess("Rendered %s", input)
		return nil
	}

	base := basePath(opts.output, input)
	for _, vizType := range opts.vizTypes {
		for _, format := range opts.formats {
			var path string
			if len(opts.vizTypes) == 1 {
				path = fmt.Sprintf("%s.%s", base, format)
			} else {
				path = fmt.Sprintf("%s_%s.%s", base, vizType, format)
			}
			if err := renderAndWrite(ctx, t, vizType, format, path, opts); err != nil {
				return fmt.Errorf("%s/%s: %w", vizType, format, err)
			}
		}
	}
	prog.done("Render complete")
	printSuccess("Rendered %s", input)
	return nil
}

// renderAndWrite renders a single type/format combination and writes it to
// path (or stdout when path is "-").
func renderAndWrite(ctx context.Context, t *tree.Tree, vizType, format, path string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	data, err := renderTree(ctx, t, vizType, format, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", format, len(data))

	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	logger.Infof("Generated %s", path)
	printFile(path)
	return nil
}

// renderTree dispatches to the chart or graph renderer.
func renderTree(ctx context.Context, t *tree.Tree, vizType, format string, opts *renderOpts) ([]byte, error) {
	switch vizType {
	case vizChart:
		return renderChart(ctx, t, format, opts)
	case vizGraph:
		return renderGraph(ctx, t, format, opts)
	default:
		return nil, fmt.Errorf("unknown visualization type: %s", vizType)
	}
}

// renderChart renders the geometric chart view from the document
// coordinates.
func renderChart(ctx context.Context, t *tree.Tree, format string, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)
	switch format {
	case "svg":
		logger.Info("Rendering chart SVG")
		return t.SVG()
	case "png":
		logger.Info("Rendering chart PNG")
		return t.PNG(opts.scale)
	case "pdf":
		logger.Info("Rendering chart PDF")
		return t.PDF()
	case "dot":
		return []byte(export.ToDOT(t, export.Options{Styled: true})), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// renderGraph renders the structural view laid out by Graphviz.
func renderGraph(ctx context.Context, t *tree.Tree, format string, opts *renderOpts) ([]byte, error) {
	logger := loggerFromContext(ctx)
	logger.Info("Generating graph diagram")
	dot := export.ToDOT(t, export.Options{Styled: false})

	switch format {
	case "svg":
		return export.RenderSVG(dot)
	case "png":
		return export.RenderPNG(dot, opts.scale)
	case "pdf":
		return export.RenderPDF(dot)
	case "dot":
		return []byte(dot), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// nopCloser wraps a Writer with a no-op Close.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path. "-" writes to
// stdout. Otherwise the file at path is created, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
