// Package highlight renders scanned lines as ANSI colored text.
package highlight

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/codestation/huginn-mode/pkg/mode"
)

// Pseudo-categories painted by the renderer only.
const (
	Escape      mode.Category = "escape"      // Escapes and format placeholders inside strings
	Punctuation mode.Category = "punctuation" // Structural punctuation
)

// Scheme maps categories to colors. A missing entry renders plain text.
type Scheme map[mode.Category]*color.Color

// DefaultScheme returns the terminal palette of the Huginn interpreter.
func DefaultScheme() Scheme {
	return Scheme{
		mode.Keyword:  color.New(color.FgHiYellow),
		mode.Type:     color.New(color.FgHiGreen),
		mode.Builtin:  color.New(color.FgHiGreen),
		mode.Class:    color.New(color.FgYellow),
		mode.Constant: color.New(color.FgYellow),
		mode.Field:    color.New(color.FgHiBlue),
		mode.Argument: color.New(color.FgGreen),
		mode.Atom:     color.New(color.FgHiMagenta),
		mode.Number:   color.New(color.FgHiMagenta),
		mode.String:   color.New(color.FgHiMagenta),
		mode.Comment:  color.New(color.FgHiCyan),
		mode.Import:   color.New(color.FgHiBlue),
		mode.Magic:    color.New(color.FgCyan),
		mode.Operator: color.New(color.FgWhite),
		Punctuation:   color.New(color.FgWhite),
		Escape:        color.New(color.FgHiRed),
	}
}

var attributes = map[string]color.Attribute{
	"bold":      color.Bold,
	"faint":     color.Faint,
	"italic":    color.Italic,
	"underline": color.Underline,

	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,

	"hi_black":   color.FgHiBlack,
	"hi_red":     color.FgHiRed,
	"hi_green":   color.FgHiGreen,
	"hi_yellow":  color.FgHiYellow,
	"hi_blue":    color.FgHiBlue,
	"hi_magenta": color.FgHiMagenta,
	"hi_cyan":    color.FgHiCyan,
	"hi_white":   color.FgHiWhite,
}

// ParseColor builds a color from space separated attribute names such
// as "hi_yellow bold".
func ParseColor(spec string) (*color.Color, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty color")
	}
	attrs := make([]color.Attribute, 0, len(fields))
	for _, name := range fields {
		attr, ok := attributes[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown color attribute '%s'", name)
		}
		attrs = append(attrs, attr)
	}
	return color.New(attrs...), nil
}

// LoadScheme reads a YAML mapping of category names to colors and
// applies it on top of the default scheme. A value of "none" removes
// the category's color.
func LoadScheme(data []byte) (Scheme, error) {
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	known := make(map[mode.Category]bool)
	for _, c := range append(mode.Categories(), Escape, Punctuation) {
		known[c] = true
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	scheme := DefaultScheme()
	for _, name := range names {
		cat := mode.Category(name)
		if !known[cat] {
			return nil, fmt.Errorf("unknown category '%s'", name)
		}
		if strings.EqualFold(strings.TrimSpace(entries[name]), "none") {
			delete(scheme, cat)
			continue
		}
		c, err := ParseColor(entries[name])
		if err != nil {
			return nil, fmt.Errorf("category '%s': %w", name, err)
		}
		scheme[cat] = c
	}
	return scheme, nil
}

// LoadSchemeFile loads a scheme from a YAML file.
func LoadSchemeFile(filename string) (Scheme, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scheme file '%s': %w", filename, err)
	}
	scheme, err := LoadScheme(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheme file '%s': %w", filename, err)
	}
	return scheme, nil
}
