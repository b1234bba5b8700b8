package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/randrtile/internal/arrange"
	"github.com/1broseidon/randrtile/internal/config"
)

type keymapAction struct {
	action   arrange.Action
	name     string
	desc     string
	defaults []string
	override []string
}

type boundAction struct {
	action  arrange.Action
	binding key.Binding
}

// keyMap decodes key presses into dispatcher actions. It implements
// help.KeyMap.
type keyMap struct {
	bindings []boundAction
}

func buildKeyMap(cfg config.KeysConfig) (keyMap, error) {
	actions := []keymapAction{
		{arrange.ActionLeft, "left", "left", []string{"h", "left"}, cfg.Left},
		{arrange.ActionDown, "down", "down", []string{"j", "down"}, cfg.Down},
		{arrange.ActionUp, "up", "up", []string{"k", "up"}, cfg.Up},
		{arrange.ActionRight, "right", "right", []string{"l", "right"}, cfg.Right},
		{arrange.ActionEnter, "enter", "select", []string{"enter"}, cfg.Enter},
		{arrange.ActionEscape, "escape", "back", []string{"esc"}, cfg.Escape},
		{arrange.ActionSwap, "swap", "move monitor", []string{"m"}, cfg.Swap},
		{arrange.ActionApply, "apply", "apply", []string{"s"}, cfg.Apply},
		{arrange.ActionUndo, "undo", "undo", []string{"u"}, cfg.Undo},
		{arrange.ActionPrimary, "primary", "make primary", []string{"p"}, cfg.Primary},
		{arrange.ActionPreview, "preview", "show command", []string{"d"}, cfg.Preview},
		{arrange.ActionHelp, "help", "help", []string{"?"}, cfg.Help},
		{arrange.ActionConnections, "connections", "outputs", []string{"D"}, cfg.Connections},
		{arrange.ActionToggle, "toggle", "enable/disable", []string{"space"}, cfg.Toggle},
		{arrange.ActionQuit, "quit", "quit", []string{"q"}, cfg.Quit},
	}

	km := keyMap{}
	used := make(map[string]string)
	for _, a := range actions {
		keys, err := resolveKeyList(a.name, a.override, a.defaults)
		if err != nil {
			return keyMap{}, err
		}
		for _, k := range keys {
			if prev, ok := used[k]; ok {
				return keyMap{}, fmt.Errorf("keys.%s: key %q already bound to keys.%s", a.name, k, prev)
			}
			used[k] = a.name
		}
		binding := key.NewBinding(
			key.WithKeys(withAliases(keys)...),
			key.WithHelp(formatKeyLabel(keys), a.desc),
		)
		km.bindings = append(km.bindings, boundAction{action: a.action, binding: binding})
	}
	return km, nil
}

// actionFor returns the action bound to msg.
func (k keyMap) actionFor(msg tea.KeyMsg) (arrange.Action, bool) {
	for _, b := range k.bindings {
		if key.Matches(msg, b.binding) {
			return b.action, true
		}
	}
	return 0, false
}

func (k keyMap) binding(a arrange.Action) key.Binding {
	for _, b := range k.bindings {
		if b.action == a {
			return b.binding
		}
	}
	return key.Binding{}
}

func (k keyMap) pick(actions ...arrange.Action) []key.Binding {
	out := make([]key.Binding, 0, len(actions))
	for _, a := range actions {
		out = append(out, k.binding(a))
	}
	return out
}

// forState lists the bindings worth showing in the help bar for st.
func (k keyMap) forState(st arrange.State) []key.Binding {
	switch st {
	case arrange.MonitorEdit:
		return k.pick(arrange.ActionLeft, arrange.ActionRight, arrange.ActionEnter, arrange.ActionSwap,
			arrange.ActionApply, arrange.ActionUndo, arrange.ActionHelp, arrange.ActionQuit)
	case arrange.MonitorSwap:
		return k.pick(arrange.ActionLeft, arrange.ActionRight, arrange.ActionUp, arrange.ActionDown,
			arrange.ActionEnter, arrange.ActionUndo, arrange.ActionQuit)
	case arrange.MenuSelect:
		return k.pick(arrange.ActionDown, arrange.ActionUp, arrange.ActionEnter, arrange.ActionEscape,
			arrange.ActionPrimary, arrange.ActionQuit)
	case arrange.InfoEdit:
		return k.pick(arrange.ActionDown, arrange.ActionUp, arrange.ActionEnter, arrange.ActionEscape)
	case arrange.ConnectionPopup:
		return k.pick(arrange.ActionDown, arrange.ActionUp, arrange.ActionToggle, arrange.ActionEscape)
	default:
		return k.pick(arrange.ActionEnter, arrange.ActionEscape)
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return k.forState(arrange.MonitorEdit)
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.pick(arrange.ActionLeft, arrange.ActionDown, arrange.ActionUp, arrange.ActionRight, arrange.ActionEnter),
		k.pick(arrange.ActionEscape, arrange.ActionSwap, arrange.ActionApply, arrange.ActionUndo, arrange.ActionPrimary),
		k.pick(arrange.ActionPreview, arrange.ActionHelp, arrange.ActionConnections, arrange.ActionToggle, arrange.ActionQuit),
	}
}

func resolveKeyList(field string, override, defaults []string) ([]string, error) {
	keys := override
	if len(keys) == 0 {
		keys = defaults
	}
	seen := make(map[string]struct{})
	out := make([]string, 0, len(keys))
	for _, raw := range keys {
		normalized, err := normalizeKeyString(raw)
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", field, err)
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("keys.%s: no valid keys configured", field)
	}
	return out, nil
}

// normalizeKeyString maps a configured key to the form tea.KeyMsg.String()
// reports. Single characters keep their case, so "D" and "d" differ.
func normalizeKeyString(raw string) (string, error) {
	if raw == " " {
		return " ", nil
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("invalid key %q (empty)", raw)
	}
	if isSingleRune(value) {
		return value, nil
	}
	if strings.EqualFold(value, "space") {
		return " ", nil
	}

	parts := strings.Split(value, "+")
	base := strings.TrimSpace(parts[len(parts)-1])
	if base == "" {
		return "", fmt.Errorf("invalid key %q (missing base key)", raw)
	}
	mods := make([]string, 0, len(parts)-1)
	for _, m := range parts[:len(parts)-1] {
		switch mod := strings.ToLower(strings.TrimSpace(m)); mod {
		case "ctrl", "alt", "shift":
			mods = append(mods, mod)
		default:
			return "", invalidKeyError(raw)
		}
	}
	base = strings.ToLower(base)
	if !isSingleRune(base) {
		if _, ok := namedKeys[base]; !ok {
			return "", invalidKeyError(raw)
		}
	}
	return strings.Join(append(mods, base), "+"), nil
}

var namedKeys = map[string]struct{}{
	"enter": {}, "esc": {}, "tab": {}, "backspace": {}, "delete": {}, "insert": {},
	"up": {}, "down": {}, "left": {}, "right": {},
	"home": {}, "end": {}, "pgup": {}, "pgdown": {},
	"f1": {}, "f2": {}, "f3": {}, "f4": {}, "f5": {}, "f6": {},
	"f7": {}, "f8": {}, "f9": {}, "f10": {}, "f11": {}, "f12": {},
}

func isSingleRune(value string) bool {
	r, size := utf8.DecodeRuneInString(value)
	return r != utf8.RuneError && size == len(value)
}

func invalidKeyError(raw string) error {
	return fmt.Errorf(
		"invalid key %q (use a single character like \"k\", combos like \"ctrl+q\", or named keys like \"enter\", \"esc\", \"up\", \"space\")",
		raw,
	)
}

// withAliases adds "space" next to " " since terminals report the space bar
// either way.
func withAliases(keys []string) []string {
	out := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, k)
		if k == " " {
			out = append(out, "space")
		}
	}
	return out
}

func formatKeyLabel(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		switch k {
		case " ":
			labels = append(labels, "space")
		case "left":
			labels = append(labels, "←")
		case "right":
			labels = append(labels, "→")
		case "up":
			labels = append(labels, "↑")
		case "down":
			labels = append(labels, "↓")
		default:
			labels = append(labels, k)
		}
	}
	return strings.Join(labels, "/")
}
