package content

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Type selects which entity variant a definition constructs.
type Type string

const (
	TypePlayer   Type = "player"
	TypeNpc      Type = "npc"
	TypeLocation Type = "location"
)

// Definition is one content record: the constructor arguments for a
// prototype entity. Its id is the defining file's name.
type Definition struct {
	Type      Type   `yaml:"type"`
	ShortDesc string `yaml:"short_desc"`
	LongDesc  string `yaml:"long_desc"`
	Location  string `yaml:"location,omitempty"`

	// Location definitions only.
	Exits map[string]string `yaml:"exits,omitempty"`
	Npcs  []string          `yaml:"npcs,omitempty"`
}

func (d *Definition) Validate() error {
	el := errors.NewErrorList()

	switch d.Type {
	case TypePlayer, TypeNpc, TypeLocation:
	case "":
		el.Add(fmt.Errorf("type is required"))
	default:
		el.Add(fmt.Errorf("unknown type %q", d.Type))
	}

	if d.Type != TypeLocation {
		if len(d.Exits) > 0 {
			el.Add(fmt.Errorf("only locations may have exits"))
		}
		if len(d.Npcs) > 0 {
			el.Add(fmt.Errorf("only locations may have npc populations"))
		}
	}

	for dir, dest := range d.Exits {
		if dir == "" {
			el.Add(fmt.Errorf("exit direction must not be empty"))
		}
		if dest == "" {
			el.Add(fmt.Errorf("exit %q: destination is required", dir))
		}
	}

	for i, npc := range d.Npcs {
		if npc == "" {
			el.Add(fmt.Errorf("npc %d: prototype id must not be empty", i))
		}
	}

	return el.Err()
}
