// Package keyspace enumerates the key symbols the remapper may touch: the
// printable keys that can be both sources and targets, and the named special
// keys that may only ever be sources.
package keyspace

// Key is a single remappable key symbol. Printable keys are one character
// long; special keys use their lowercase names.
type Key string

// Special key names
const (
	Space     Key = "space"
	Backspace Key = "backspace"
	Enter     Key = "enter"
)

var letters = []Key{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
}

var digits = []Key{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"}

var symbols = []Key{
	"!", "@", "#", "$", "%", "^", "&", "*", "(", ")", "-", "=", "+",
	"[", "]", "{", "}", `\`, "|", ";", ":", "'", `"`, ",", ".", "<",
	">", "/", "?", "`", "~",
}

var specials = []Key{Space, Backspace, Enter}

// keySet is built once; callers only ever receive copies.
var keySet = func() []Key {
	all := make([]Key, 0, len(letters)+len(digits)+len(symbols))
	all = append(all, letters...)
	all = append(all, digits...)
	all = append(all, symbols...)
	return all
}()

var members = func() map[Key]struct{} {
	m := make(map[Key]struct{}, len(keySet))
	for _, k := range keySet {
		m[k] = struct{}{}
	}
	return m
}()

// KeySet returns the ordered printable keys: letters, then digits, then
// punctuation. The returned slice is a fresh copy.
func KeySet() []Key {
	out := make([]Key, len(keySet))
	copy(out, keySet)
	return out
}

// SpecialKeySet returns space, backspace and enter, in that order.
func SpecialKeySet() []Key {
	out := make([]Key, len(specials))
	copy(out, specials)
	return out
}

// Size is the number of printable keys.
func Size() int {
	return len(keySet)
}

// Contains reports whether k is one of the printable keys.
func Contains(k Key) bool {
	_, ok := members[k]
	return ok
}

// IsSpecial reports whether k names a special key.
func IsSpecial(k Key) bool {
	for _, s := range specials {
		if s == k {
			return true
		}
	}
	return false
}

// FromRune returns the key symbol a typed character would produce.
// ' ' maps to Space, '\b' to Backspace and '\n'/'\r' to Enter; every other
// rune is its own single-character key.
func FromRune(r rune) Key {
	switch r {
	case ' ':
		return Space
	case '\b', 0x7f:
		return Backspace
	case '\n', '\r':
		return Enter
	}
	return Key(string(r))
}

// Rune returns the first rune of a printable key. Special keys report false.
func (k Key) Rune() (rune, bool) {
	if IsSpecial(k) || k == "" {
		return 0, false
	}
	for _, r := range string(k) {
		return r, true
	}
	return 0, false
}

// Label is the display form of a key: special keys are bracketed.
func (k Key) Label() string {
	if IsSpecial(k) {
		return "<" + string(k) + ">"
	}
	return string(k)
}
