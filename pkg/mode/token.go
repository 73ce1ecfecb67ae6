package mode

import (
	"encoding/json"
)

// Category is the style label the engine assigns to a token.
type Category string

const (
	None Category = "" // Whitespace and structural punctuation

	Keyword  Category = "keyword"
	Type     Category = "type"
	Builtin  Category = "builtin"
	Atom     Category = "atom"
	Import   Category = "import"
	Magic    Category = "magic"
	Constant Category = "constant"
	Class    Category = "class"
	Field    Category = "field"
	Argument Category = "argument"
	Variable Category = "variable"
	Operator Category = "operator"
	Number   Category = "number"
	String   Category = "string"
	Comment  Category = "comment"
)

// Categories lists every non-empty category in classification order.
func Categories() []Category {
	return []Category{
		Keyword, Type, Builtin, Atom, Import, Magic, Constant, Class,
		Field, Argument, Variable, Operator, Number, String, Comment,
	}
}

// Position represents a line and column position in the source.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Span represents the start and end positions of a token.
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// MarshalJSON implements custom JSON marshaling for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [4]int{s.Start.Line, s.Start.Col, s.End.Line, s.End.Col}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [4]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	s.Start = Position{Line: arr[0], Col: arr[1]}
	s.End = Position{Line: arr[2], Col: arr[3]}
	return nil
}

// Token is one scanned piece of a line. Tokens are produced for the
// caller's convenience and are never retained by the engine.
type Token struct {
	Text     string   `json:"text"`
	Span     Span     `json:"span"`
	Category Category `json:"category,omitempty"`
	Punct    string   `json:"punct,omitempty"` // Structural punctuation character, if any

	// Byte offsets into the line, used by renderers.
	Start int `json:"-"`
	End   int `json:"-"`
}

// IsSpace reports whether the token is a run of whitespace.
func (t Token) IsSpace() bool {
	return t.Category == None && t.Punct == ""
}
