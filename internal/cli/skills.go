package cli

import (
	"resume-builder/internal/domain"

	"github.com/spf13/cobra"
)

// skillEdits adjusts the skills of the input before it is used.
type skillEdits struct {
	add  []string
	drop []string
}

func (e *skillEdits) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&e.add, "skill", nil, "add a skill (repeatable)")
	cmd.Flags().StringArrayVar(&e.drop, "drop-skill", nil, "remove a skill (repeatable)")
}

func (e skillEdits) apply(d *domain.ResumeData) {
	for _, s := range e.drop {
		d.Skills.Remove(s)
	}
	for _, s := range e.add {
		d.Skills.Add(s)
	}
}
