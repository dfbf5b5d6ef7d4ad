package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"resume-builder/internal/model"
	"resume-builder/internal/registry"
	"resume-builder/internal/usecase"

	"github.com/spf13/cobra"
)

type renderOpts struct {
	template string
	format   string // json or html
	output   string // file path; empty means stdout
	skills   skillEdits
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: "html"}
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render resume data to an HTML page or a document tree",
		Long:  `Reads resume data as JSON from file, or stdin when omitted, and prints the rendered document.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template id")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: html or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")
	opts.skills.register(cmd)
	return cmd
}

func (c *CLI) runRender(args []string, opts renderOpts) error {
	if opts.format != "html" && opts.format != "json" {
		return fmt.Errorf("unknown format %q: want html or json", opts.format)
	}
	raw, err := c.readInput(firstArg(args))
	if err != nil {
		return err
	}
	data, err := model.DecodeResume(raw)
	if err != nil {
		return err
	}
	opts.skills.apply(&data)
	doc := usecase.Render(data, registry.Default().Resolve(opts.template))

	var w io.Writer = c.out
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if opts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	v, err := c.viewOnly()
	if err != nil {
		return err
	}
	return v.Write(w, doc)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
