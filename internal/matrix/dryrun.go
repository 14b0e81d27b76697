package matrix

import (
	"fmt"
	"io"
	"sort"

	"github.com/mrz1836/runmatrix/internal/domain"
	"github.com/mrz1836/runmatrix/internal/logging"
)

// PlannedCommand is one entry in a dry-run plan: the step it belongs to
// and the command that would run.
type PlannedCommand struct {
	Step    domain.StepName `json:"step"`
	Command string          `json:"command"`
}

// EnvironmentPlan is the resolved command sequence for one environment.
// Env overrides are redacted for display; the plan never executes.
type EnvironmentPlan struct {
	Name     string            `json:"name"`
	OS       string            `json:"os"`
	Runtime  string            `json:"runtime_language"`
	Env      map[string]string `json:"env_overrides,omitempty"`
	Commands []PlannedCommand  `json:"commands"`
}

// Plan is the full dry-run output: one entry per selected environment in
// declaration order.
type Plan struct {
	Environments []EnvironmentPlan `json:"environments"`
}

// BuildPlan resolves the command sequences without executing anything.
func BuildPlan(envs []domain.Environment) *Plan {
	plan := &Plan{Environments: make([]EnvironmentPlan, 0, len(envs))}

	for i := range envs {
		env := &envs[i]
		ep := EnvironmentPlan{
			Name:    env.Name,
			OS:      env.OS,
			Runtime: env.Runtime,
			Env:     logging.RedactEnvOverrides(env.Env),
		}
		for _, command := range env.PreInstall {
			ep.Commands = append(ep.Commands, PlannedCommand{Step: domain.StepBootstrap, Command: command})
		}
		ep.Commands = append(ep.Commands,
			PlannedCommand{Step: domain.StepInstall, Command: env.InstallCommand},
			PlannedCommand{Step: domain.StepTest, Command: env.TestCommand},
		)
		plan.Environments = append(plan.Environments, ep)
	}

	return plan
}

// RenderText writes the plan in a human-readable form.
func (p *Plan) RenderText(w io.Writer) error {
	for i := range p.Environments {
		ep := &p.Environments[i]
		if _, err := fmt.Fprintf(w, "%s (%s, %s)\n", ep.Name, ep.OS, ep.Runtime); err != nil {
			return err
		}

		for _, key := range sortedKeys(ep.Env) {
			if _, err := fmt.Fprintf(w, "  env %s=%s\n", key, ep.Env[key]); err != nil {
				return err
			}
		}

		for _, cmd := range ep.Commands {
			if _, err := fmt.Fprintf(w, "  [%s] %s\n", cmd.Step, cmd.Command); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
