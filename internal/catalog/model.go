package catalog

import (
	"encoding/json"
	"maps"
	"slices"
)

// Server holds the display metadata shared by every shape of a catalog entry.
type Server struct {
	ID          string   `json:"id"          yaml:"id"`
	Title       string   `json:"title"       yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Creator     string   `json:"creator"     yaml:"creator"`
	Tags        []string `json:"tags"        yaml:"tags"`
	LogoURL     string   `json:"logoUrl"     yaml:"logoUrl"`
	Rating      uint8    `json:"rating"      yaml:"rating"`
	PublishDate string   `json:"publishDate" yaml:"publishDate"`
}

// CommandInfo is the launch specification a catalog entry declares before any runtime substitution.
type CommandInfo struct {
	Command  string            `json:"command"  yaml:"command"`
	Args     []string          `json:"args"     yaml:"args"`
	InputArg InputArg          `json:"inputArg" yaml:"inputArg"`
	Env      map[string]string `json:"env"      yaml:"env"`
	Guide    string            `json:"guide"    yaml:"guide"`
}

// UnmarshalJSON decodes a command, using DefaultInputArg when inputArg is absent.
func (c *CommandInfo) UnmarshalJSON(data []byte) error {
	type alias CommandInfo
	out := alias{InputArg: DefaultInputArg()}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*c = CommandInfo(out)
	return nil
}

// Definition is a full catalog entry, including install metadata.
// Definitions are treated as immutable once decoded from the catalog store.
type Definition struct {
	Server      `yaml:",inline"`
	CommandInfo CommandInfo `json:"commandInfo" yaml:"commandInfo"`
}

// FrontendServer is a read-only projection of a Definition merged with its installed state.
// It is recomputed on every read and never persisted.
type FrontendServer struct {
	Server      `yaml:",inline"`
	IsInstalled bool              `json:"isInstalled" yaml:"isInstalled"`
	Env         map[string]string `json:"env"         yaml:"env"`
	Args        []string          `json:"args"        yaml:"args"`
	Guide       string            `json:"guide"       yaml:"guide"`
	InputArg    InputArg          `json:"inputArg"    yaml:"inputArg"`
}

// Installation is the subset of an installed server record that a projection needs.
type Installation struct {
	Env         map[string]string
	InputValues []string
}

// Find returns the definition with the given identifier.
func Find(defs []Definition, id string) (Definition, bool) {
	i := slices.IndexFunc(defs, func(d Definition) bool { return d.ID == id })
	if i < 0 {
		return Definition{}, false
	}
	return defs[i], true
}

// Project joins catalog definitions with installed state, keyed by server identifier.
// Installed servers take env and input values from their installation,
// others take the catalog's default env and no input values.
// Output order follows the catalog.
func Project(defs []Definition, installed map[string]Installation) []FrontendServer {
	out := make([]FrontendServer, 0, len(defs))

	for _, def := range defs {
		inst, ok := installed[def.ID]

		env := def.CommandInfo.Env
		var values []string
		if ok {
			env = inst.Env
			values = inst.InputValues
		}

		out = append(out, FrontendServer{
			Server:      cloneServer(def.Server),
			IsInstalled: ok,
			Env:         cloneEnv(env),
			Args:        nonNil(slices.Clone(def.CommandInfo.Args)),
			Guide:       def.CommandInfo.Guide,
			InputArg:    def.CommandInfo.InputArg.WithValues(values),
		})
	}

	return out
}

// Installed filters projections down to installed servers, keeping order.
func Installed(servers []FrontendServer) []FrontendServer {
	out := make([]FrontendServer, 0, len(servers))
	for _, s := range servers {
		if s.IsInstalled {
			out = append(out, s)
		}
	}
	return out
}

func cloneServer(s Server) Server {
	s.Tags = nonNil(slices.Clone(s.Tags))
	return s
}

func cloneEnv(env map[string]string) map[string]string {
	if env == nil {
		return map[string]string{}
	}
	return maps.Clone(env)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
