package cli

import (
	"context"
	"fmt"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type exportOpts struct {
	template string
	name     string  // output file name
	outDir   string  // overrides EXPORT_DIR
	mode     string  // crop or clip
	scale    float64 // overrides RENDER_SCALE
	skills   skillEdits
}

// applyRender copies export overrides onto the render configuration.
func (c *CLI) applyRender(outDir, mode string, scale float64) error {
	if outDir != "" {
		c.cfg.Render.ExportDir = outDir
	}
	if mode != "" {
		c.cfg.Render.Pagination = mode
	}
	if scale > 0 {
		c.cfg.Render.Scale = scale
	}
	return c.cfg.Validate()
}

func addExportFlags(cmd *cobra.Command, outDir, mode *string, scale *float64) {
	cmd.Flags().StringVarP(outDir, "out-dir", "d", "", "directory for the PDF (default EXPORT_DIR)")
	cmd.Flags().StringVar(mode, "mode", "", "pagination: crop or clip (default PAGINATION_MODE)")
	cmd.Flags().Float64Var(scale, "scale", 0, "capture scale, at least 2 (default RENDER_SCALE)")
}

func (c *CLI) exportCommand() *cobra.Command {
	var opts exportOpts
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export resume data as a paginated A4 PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "template id")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "PDF file name (default <Full_Name>_Resume.pdf)")
	addExportFlags(cmd, &opts.outDir, &opts.mode, &opts.scale)
	opts.skills.register(cmd)
	return cmd
}

func (c *CLI) runExport(ctx context.Context, args []string, opts exportOpts) error {
	if err := c.applyRender(opts.outDir, opts.mode, opts.scale); err != nil {
		return err
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

	svc, closeStore, err := c.services(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	doc := usecase.Render(data, svc.Templates.Resolve(opts.template))
	name := usecase.ResolveFileName(opts.name, data.PersonalInfo.FullName)
	return c.deliver(ctx, svc.Exporter, doc, name)
}

func (c *CLI) deliver(ctx context.Context, e *usecase.Exporter, doc *domain.Document, fileName string) error {
	sink := usecase.FileSink{Dir: c.cfg.Render.ExportDir}
	art, err := e.ExportToSink(ctx, doc, fileName, sink)
	if err != nil {
		return err
	}
	c.log.Info("exported", zap.String("file", sink.Path(art.FileName)), zap.Int("pages", art.Pages))
	fmt.Fprintf(c.out, "%s (%d pages)\n", sink.Path(art.FileName), art.Pages)
	return nil
}
