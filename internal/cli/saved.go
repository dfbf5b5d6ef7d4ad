package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/server"
	"resume-builder/internal/usecase"

	"github.com/spf13/cobra"
)

func (c *CLI) savedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "saved",
		Aliases: []string{"s"},
		Short:   "Manage saved resumes",
	}
	cmd.AddCommand(
		c.savedListCommand(),
		c.savedAddCommand(),
		c.savedShowCommand(),
		c.savedRenameCommand(),
		c.savedRemoveCommand(),
		c.savedClearCommand(),
		c.savedExportCommand(),
	)
	return cmd
}

// withSaved runs fn against the saved-resume manager of the configured store.
func (c *CLI) withSaved(ctx context.Context, fn func(*server.Services) error) error {
	svc, closeStore, err := c.services(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(svc)
}

func (c *CLI) savedListCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved resumes, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSaved(cmd.Context(), func(svc *server.Services) error {
				list := svc.Saved.List()
				if asJSON {
					return c.printJSON(list)
				}
				w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tTEMPLATE\tCREATED")
				for _, s := range list {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.TemplateID, s.CreatedAt.Format(time.RFC3339))
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func (c *CLI) savedAddCommand() *cobra.Command {
	var (
		name, template string
		force          bool
		skills         skillEdits
	)
	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Save resume data under a name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := c.readInput(firstArg(args))
			if err != nil {
				return err
			}
			data, err := model.DecodeResume(raw)
			if err != nil {
				return err
			}
			skills.apply(&data)
			if data.IsEmpty() {
				if !force {
					return errors.New(domain.EmptyResumeWarning + "; pass --force to save anyway")
				}
				c.log.Warn(domain.EmptyResumeWarning)
			}
			return c.withSaved(cmd.Context(), func(svc *server.Services) error {
				if template == "" {
					template = svc.Templates.First().ID
				}
				s, err := svc.Saved.Add(cmd.Context(), name, template, data)
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s\t%s\n", s.ID, s.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (default <Full_Name>_Resume)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "template id")
	cmd.Flags().BoolVar(&force, "force", false, "save even when the resume looks empty")
	skills.register(cmd)
	return cmd
}

func (c *CLI) savedShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved resume as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSaved(cmd.Context(), func(svc *server.Services) error {
				s, err := svc.Saved.Get(args[0])
				if err != nil {
					return err
				}
				return c.printJSON(s)
			})
		},
	}
}

func (c *CLI) savedRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a saved resume",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSaved(cmd.Context(), func(svc *server.Services) error {
				s, err := svc.Saved.Rename(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s\t%s\n", s.ID, s.Name)
				return nil
			})
		},
	}
}

func (c *CLI) savedRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Delete saved resumes",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSaved(cmd.Context(), func(svc *server.Services) error {
				for _, id := range args {
					if err := svc.Saved.Remove(cmd.Context(), id); err != nil {
						return fmt.Errorf("remove %s: %w", id, err)
					}
				}
				return nil
			})
		},
	}
}

func (c *CLI) savedClearCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved resume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			return c.withSaved(cmd.Context(), func(svc *server.Services) error {
				return svc.Saved.Clear(cmd.Context())
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")
	return cmd
}

func (c *CLI) savedExportCommand() *cobra.Command {
	var outDir, mode string
	var scale float64
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a saved resume as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.applyRender(outDir, mode, scale); err != nil {
				return err
			}
			return c.withSaved(cmd.Context(), func(svc *server.Services) error {
				s, err := svc.Saved.Get(args[0])
				if err != nil {
					return err
				}
				doc := usecase.Render(s.Data, svc.Templates.Resolve(s.TemplateID))
				return c.deliver(cmd.Context(), svc.Exporter, doc, usecase.SavedFileName(s))
			})
		},
	}
	addExportFlags(cmd, &outDir, &mode, &scale)
	return cmd
}

func (c *CLI) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
