package cli

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"task-list/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// FlagBinder is implemented by commands that accept flags. The same binding
// serves cobra and the interactive shell.
type FlagBinder interface {
	BindFlags(flags *pflag.FlagSet)
}

// CommandSpec describes a command and how to build it
type CommandSpec struct {
	Name  string
	Use   string
	Short string
	Long  string

	// MinArgs is the number of positional arguments required
	MinArgs int

	// Interactive commands may prompt and run with a doubled timeout
	Interactive bool

	// Session commands run without the application timeout
	Session bool

	New func(app *App) Command
}

// CommandRegistry manages all available commands
type CommandRegistry struct {
	app      *App
	commands map[string]CommandSpec
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry(app *App) *CommandRegistry {
	registry := &CommandRegistry{
		app:      app,
		commands: make(map[string]CommandSpec),
	}

	// Register all commands
	registry.Register(addCommandSpec)
	registry.Register(listCommandSpec)
	registry.Register(searchCommandSpec)
	registry.Register(narrowCommandSpec)
	registry.Register(showCommandSpec)
	registry.Register(editCommandSpec)
	registry.Register(tagCommandSpec)
	registry.Register(untagCommandSpec)
	registry.Register(deleteCommandSpec)
	registry.Register(summaryCommandSpec)
	registry.Register(exportCommandSpec)
	registry.Register(shellCommandSpec)

	return registry
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(spec CommandSpec) {
	r.commands[spec.Name] = spec
}

// Lookup returns the spec registered under name
func (r *CommandRegistry) Lookup(name string) (CommandSpec, bool) {
	spec, ok := r.commands[name]
	return spec, ok
}

// Specs returns every registered command ordered by name
func (r *CommandRegistry) Specs() []CommandSpec {
	specs := make([]CommandSpec, 0, len(r.commands))
	for _, spec := range r.commands {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Execute parses the flags in args and runs the specified command
func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	spec, exists := r.commands[commandName]
	if !exists {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}

	command := spec.New(r.app)
	flags := pflag.NewFlagSet(commandName, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	if binder, ok := command.(FlagBinder); ok {
		binder.BindFlags(flags)
	}
	if err := flags.Parse(args); err != nil {
		return errors.NewInvalidInputError("flags", strings.Join(args, " "), err.Error())
	}

	positional := flags.Args()
	if len(positional) < spec.MinArgs {
		return errors.NewInvalidInputError("command", commandName, "usage: todo "+spec.Use)
	}
	return command.Execute(ctx, positional)
}

// GetUsage returns the usage string for the CLI
func (r *CommandRegistry) GetUsage() string {
	lines := []string{"usage:"}
	for _, spec := range r.Specs() {
		lines = append(lines, "  todo "+spec.Use)
	}
	return strings.Join(lines, "\n")
}
