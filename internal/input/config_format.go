package input

import "fmt"

// Keyspec is a key sequence in config notation, e.g. "dd" or "<c-s>".
type Keyspec string

// Actionspec names an action a key sequence is bound to, e.g. "delete-row".
type Actionspec string

// InputConfig holds the key mappings of the grid front end.
type InputConfig struct {
	// Grid mappings apply while navigating.
	Grid map[Keyspec]Actionspec `yaml:"grid"`
	// Editor mappings apply while a row is in edit mode; runes not mapped here
	// are typed into the focused widget.
	Editor map[Keyspec]Actionspec `yaml:"editor"`
}

// SingleKeyMappings converts mappings whose keyspecs denote exactly one key
// each.
func SingleKeyMappings[T any](spec map[Keyspec]T) (map[Key]T, error) {
	result := make(map[Key]T, len(spec))
	for keyspec, v := range spec {
		keys, err := ConfigKeyspecToKeys(keyspec)
		if err != nil {
			return nil, fmt.Errorf("could not convert '%s' to keys (%w)", keyspec, err)
		}
		if len(keys) != 1 {
			return nil, fmt.Errorf("keyspec '%s' has not exactly one key (but %d)", keyspec, len(keys))
		}
		result[keys[0]] = v
	}
	return result, nil
}
