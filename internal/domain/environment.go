// Package domain provides shared domain types for the run-matrix orchestrator.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON and YAML field names use snake_case.
package domain

// Environment is the immutable descriptor of one target platform: how to
// bring it from its baseline state to a tested package. Descriptors are
// defined once at configuration load and never mutated during a run.
//
// Example YAML representation:
//
//	name: Linux
//	os: linux
//	runtime_language: python
//	pre_install_commands:
//	  - sudo apt-get update
//	  - sudo apt-get install -y libomp-dev
//	install_command: pip install -e .
//	test_command: python -m pytest
//	env_overrides:
//	  OMP_NUM_THREADS: "1"
type Environment struct {
	// Name is the human-readable label, unique within a run.
	Name string `json:"name" mapstructure:"name" yaml:"name"`

	// OS identifies the target operating system (e.g. linux, macos, windows).
	// Informational: the descriptor is data, the commands do the work.
	OS string `json:"os" mapstructure:"os" yaml:"os"`

	// Runtime is the interpreter or toolchain family the environment needs.
	Runtime string `json:"runtime_language" mapstructure:"runtime_language" yaml:"runtime_language"`

	// PreInstall is the ordered bootstrap command sequence. May be empty,
	// in which case bootstrap is vacuously successful (skipped).
	PreInstall []string `json:"pre_install_commands,omitempty" mapstructure:"pre_install_commands" yaml:"pre_install_commands,omitempty"`

	// InstallCommand installs the package. Always required.
	InstallCommand string `json:"install_command" mapstructure:"install_command" yaml:"install_command"`

	// TestCommand runs the package's test suite. Always required.
	TestCommand string `json:"test_command" mapstructure:"test_command" yaml:"test_command"`

	// Env holds variable overrides applied only to this environment's
	// process invocations, merged over the inherited environment at
	// invocation time. Never written to a shared global table.
	Env map[string]string `json:"env_overrides,omitempty" mapstructure:"env_overrides" yaml:"env_overrides,omitempty"`
}

// StepName identifies one of the three pipeline steps.
type StepName string

// Pipeline step names in execution order.
const (
	// StepBootstrap runs the pre-install command sequence.
	StepBootstrap StepName = "bootstrap"

	// StepInstall runs the install command.
	StepInstall StepName = "install"

	// StepTest runs the test command.
	StepTest StepName = "test"
)

// String returns the string representation of the StepName.
func (s StepName) String() string {
	return string(s)
}
