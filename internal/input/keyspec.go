package input

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// ConfigKeyspecToKeys converts full key sequence specification strings (e.g.
// "<space>qw" meaning the SPACE key, then the Q key, then the W key) to the
// appropriate sequence of Keys (or an error, if invalid).
func ConfigKeyspecToKeys(spec Keyspec) ([]Key, error) {
	specR := []rune(spec)
	keys := make([][]rune, 0)
	specialContext := false

	for pos := range spec {
		switch spec[pos] {

		case '<':
			if specialContext {
				return nil, fmt.Errorf("illegal second opening special context ('<') before previous is closed (pos %d)", pos)
			}
			specialContext = true
			keys = append(keys, []rune{specR[pos]})

		case '>':
			if !specialContext {
				return nil, fmt.Errorf("illegal closing of special context ('>') while none open (pos %d)", pos)
			}
			specialContext = false
			keys[len(keys)-1] = append(keys[len(keys)-1], specR[pos])

		default:
			if specialContext {
				if !unicode.IsLetter(specR[pos]) && spec[pos] != '-' {
					return nil,
						fmt.Errorf("illegal character '%c' in special context (pos %d)", spec[pos], pos)
				}
				keys[len(keys)-1] = append(keys[len(keys)-1], specR[pos])
			} else {
				keys = append(keys, []rune{specR[pos]})
			}

		}
	}

	result := make([]Key, 0)
	for _, keyIdentifier := range keys {
		if keyIdentifier[0] == '<' {
			key, err := KeyIdentifierToKey(string(keyIdentifier[1 : len(keyIdentifier)-1]))
			if err != nil {
				return nil, fmt.Errorf("error mapping identifier '%s' to key: %s", string(keyIdentifier), err.Error())
			}
			result = append(result, key)
		} else {
			result = append(result, Key{Key: tcell.KeyRune, Ch: keyIdentifier[0]})
		}
	}

	return result, nil
}

// identifiers maps special key identifiers (as used between '<' and '>') to
// keys.
var identifiers = map[string]Key{
	"space":   {Key: tcell.KeyRune, Ch: ' '},
	"cr":      {Key: tcell.KeyEnter},
	"esc":     {Key: tcell.KeyESC},
	"del":     {Key: tcell.KeyDelete},
	"bs":      {Key: tcell.KeyBackspace2},
	"tab":     {Key: tcell.KeyTab},
	"backtab": {Key: tcell.KeyBacktab},
	"left":    {Key: tcell.KeyLeft},
	"right":   {Key: tcell.KeyRight},
	"up":      {Key: tcell.KeyUp},
	"down":    {Key: tcell.KeyDown},
	"home":    {Key: tcell.KeyHome},
	"end":     {Key: tcell.KeyEnd},
	"pgup":    {Key: tcell.KeyPgUp},
	"pgdn":    {Key: tcell.KeyPgDn},

	"c-space": {Key: tcell.KeyCtrlSpace},
	"c-bs":    {Key: tcell.KeyBackspace},
}

// names is the reverse of identifiers. Where keys coincide (e.g. <c-i> and
// <tab>) the named key wins.
var names = map[Key]string{}

func init() {
	specials := make(map[string]Key, len(identifiers))
	for identifier, key := range identifiers {
		specials[identifier] = key
	}
	for c := 'a'; c <= 'z'; c++ {
		identifier := "c-" + string(c)
		key := Key{Key: tcell.KeyCtrlA + tcell.Key(c-'a')}
		identifiers[identifier] = key
		names[key] = identifier
	}
	for identifier, key := range specials {
		names[key] = identifier
	}
}

// KeyIdentifierToKey converts the given special identifier to the appropriate
// key (or an error, if invalid).
func KeyIdentifierToKey(identifier string) (Key, error) {
	key, ok := identifiers[strings.ToLower(identifier)]
	if !ok {
		return Key{}, fmt.Errorf("no mapping present for identifier '%s'", identifier)
	}
	return key, nil
}

// ToConfigIdentifierString converts the given key to its configuration
// identifier.
func ToConfigIdentifierString(k Key) string {
	if identifier, ok := names[k]; ok {
		return "<" + identifier + ">"
	}
	if k.Key == tcell.KeyRune {
		return string(k.Ch)
	}
	return fmt.Sprintf("<%s>", strings.ToLower(tcell.KeyNames[k.Key]))
}
