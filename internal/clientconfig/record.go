package clientconfig

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"

	"github.com/magnetlabs/magnet/internal/catalog"
)

// Record keys written to the client config file.
const (
	keyCommand        = "command"
	keyArgs           = "args"
	keyEnv            = "env"
	keyCommandCreator = "commandCreator"
	keyInputArg       = "inputArg"
)

// EnvMap is a server's environment variables.
// When written, each literal two-character sequence `\n` in a value becomes a real newline,
// so that multi-line secrets pasted into a single-line field are launched correctly.
type EnvMap map[string]string

// MarshalJSON implements json.Marshaler.
func (e EnvMap) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("{}"), nil
	}

	out := make(map[string]string, len(e))
	for k, v := range e {
		out[k] = strings.ReplaceAll(v, `\n`, "\n")
	}

	return encodeJSON(out, "")
}

// Record is an installed server's launch specification, keyed by server identifier in the client config file.
// Keys this package doesn't manage are kept as they were read, so records written by other tools survive a rewrite.
type Record struct {
	// Command is the resolved program name, after runtime substitution.
	Command string

	// Args is the resolved argument list, after runtime substitution and input argument interpolation.
	Args []string

	// Env holds the server's environment variables.
	Env EnvMap

	// CommandCreator is the provenance tag of the tool that wrote the record.
	CommandCreator string

	// InputArg is the input argument descriptor and its current values, if the record has one.
	InputArg *catalog.InputArg

	present map[string]struct{}
	extra   map[string]json.RawMessage
}

// Installation returns the subset of the record needed to project it for display.
func (r Record) Installation() catalog.Installation {
	inst := catalog.Installation{Env: maps.Clone(map[string]string(r.Env))}
	if r.InputArg != nil {
		inst.InputValues = slices.Clone(r.InputArg.Value)
	}
	return inst
}

// Extra returns a copy of the record's unmanaged keys.
func (r Record) Extra() map[string]json.RawMessage {
	return maps.Clone(r.extra)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	out := Record{
		present: map[string]struct{}{},
		extra:   map[string]json.RawMessage{},
	}

	for k, v := range fields {
		var err error
		switch k {
		case keyCommand:
			err = json.Unmarshal(v, &out.Command)
		case keyArgs:
			err = json.Unmarshal(v, &out.Args)
		case keyEnv:
			var env map[string]string
			err = json.Unmarshal(v, &env)
			out.Env = env
		case keyCommandCreator:
			err = json.Unmarshal(v, &out.CommandCreator)
		case keyInputArg:
			if string(v) != "null" {
				var arg catalog.InputArg
				err = json.Unmarshal(v, &arg)
				out.InputArg = &arg
			}
		default:
			out.extra[k] = v
			continue
		}
		if err != nil {
			return err
		}
		out.present[k] = struct{}{}
	}

	*r = out
	return nil
}

// MarshalJSON implements json.Marshaler.
// Managed keys are written when they hold a value or were present when the record was read.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.extra)+5)
	for k, v := range r.extra {
		out[k] = v
	}

	if r.Command != "" || r.has(keyCommand) {
		out[keyCommand] = r.Command
	}
	// Launch records always carry an args array.
	if r.Args != nil || r.Command != "" || r.has(keyArgs) {
		args := r.Args
		if args == nil {
			args = []string{}
		}
		out[keyArgs] = args
	}
	if r.Env != nil || r.has(keyEnv) {
		out[keyEnv] = r.Env
	}
	if r.CommandCreator != "" || r.has(keyCommandCreator) {
		out[keyCommandCreator] = r.CommandCreator
	}
	if r.InputArg != nil {
		out[keyInputArg] = r.InputArg
	}

	return encodeJSON(out, "")
}

func (r Record) has(key string) bool {
	_, ok := r.present[key]
	return ok
}
