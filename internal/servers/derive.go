package servers

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/magnetlabs/magnet/internal/catalog"
	"github.com/magnetlabs/magnet/internal/clientconfig"
	"github.com/magnetlabs/magnet/internal/launcher"
	"github.com/magnetlabs/magnet/internal/runtime"
)

// InstallOptions holds caller-supplied overrides for an install or update.
// A nil field means the caller didn't supply it, and catalog defaults are used.
type InstallOptions struct {
	// Env replaces the catalog's environment variables.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`

	// InputArgs replaces the input argument's values and is appended to the launch arguments.
	InputArgs []string `json:"inputArgs,omitempty" yaml:"inputArgs,omitempty"`
}

// deriver builds installed records from catalog definitions.
type deriver struct {
	logger    hclog.Logger
	launcher  launcher.Launcher
	toolchain runtime.Toolchain
	creator   string
}

// derive resolves the launch command for def.
//
// When the program is a well-known runtime whose tool was privately provisioned, the command is rewritten
// to run through the platform shell with the tool's directory prepended to the search path. The program,
// the catalog arguments, and each quoted input value (in that order) become the single shell command line.
// Otherwise the catalog arguments are used verbatim, followed by each input value as its own argument.
func (d deriver) derive(def catalog.Definition, opts InstallOptions) (clientconfig.Record, error) {
	info := def.CommandInfo

	if err := info.InputArg.Validate(opts.InputArgs); err != nil {
		return clientconfig.Record{}, err
	}

	inputArg := info.InputArg.WithValues(info.InputArg.Value)
	if opts.InputArgs != nil {
		inputArg = info.InputArg.WithValues(opts.InputArgs)
	}

	env := info.Env
	if opts.Env != nil {
		env = opts.Env
	}
	env = maps.Clone(env)
	if env == nil {
		env = map[string]string{}
	}

	program := info.Command
	args := slices.Clone(info.Args)
	if args == nil {
		args = []string{}
	}

	if name, tool, ok := d.toolchain.For(program); ok {
		switch {
		case tool.NeedsPathPrepend():
			quoted := make([]string, 0, len(opts.InputArgs))
			for _, v := range opts.InputArgs {
				if err := d.launcher.CheckValue(v); err != nil {
					return clientconfig.Record{}, err
				}
				quoted = append(quoted, d.launcher.Quote(v))
			}
			inner := fmt.Sprintf("%s %s %s", program, strings.Join(args, " "), strings.Join(quoted, " "))
			dir := d.launcher.ToolDir(tool.Path)
			program, args = d.launcher.WrapWithPathPrepend(dir, inner)

			d.logger.Debug("Prepending tool directory", "id", def.ID, "tool", name, "dir", dir)

			return d.record(program, args, env, inputArg), nil
		case !tool.System:
			d.logger.Warn(
				"Private runtime tool has no stored path, using the system search path",
				"id", def.ID,
				"tool", name,
			)
		}
	}

	args = append(args, opts.InputArgs...)

	return d.record(program, args, env, inputArg), nil
}

func (d deriver) record(program string, args []string, env map[string]string, arg catalog.InputArg) clientconfig.Record {
	return clientconfig.Record{
		Command:        program,
		Args:           args,
		Env:            env,
		CommandCreator: d.creator,
		InputArg:       &arg,
	}
}
