package mode

// ContextType identifies what opened a context.
type ContextType string

const (
	TopContext       ContextType = "top"
	BraceContext     ContextType = "}"
	BracketContext   ContextType = "]"
	ParenContext     ContextType = ")"
	StatementContext ContextType = "statement"
	SwitchContext    ContextType = "switchstatement"
	NamespaceContext ContextType = "namespace"
)

// Implicit reports whether the type is a statement pseudo-scope, opened
// without a bracket and closed by a terminator or an enclosing block.
func (t ContextType) Implicit() bool {
	return t == StatementContext || t == SwitchContext || t == NamespaceContext
}

// closerFor maps opening punctuation to the context type it pushes.
var closerFor = map[string]ContextType{
	"{": BraceContext,
	"[": BracketContext,
	"(": ParenContext,
}

// Align tracks whether lines in a context align to its opening column.
// It stays undetermined until the first token is seen while the context
// is current.
type Align int8

const (
	AlignUnknown Align = iota
	AlignFalse
	AlignTrue
)

// Context is one frame of the nesting stack.
type Context struct {
	Indented int
	Column   int
	Type     ContextType
	Info     string // Text of the token that opened an implicit scope
	Align    Align
}

// State is the resumable scanning state carried from line to line.
// Each document owns exactly one; the engine mutates it in place.
//
// The context stack is held as a slice whose last element is the
// current context; a frame's parent is the element below it.
type State struct {
	tokenize    scanFunc
	contexts    []Context
	Indented    int
	StartOfLine bool
	PrevToken   string
}

// Top returns the current context.
func (st *State) Top() Context { return st.contexts[len(st.contexts)-1] }

// Depth returns the number of contexts on the stack, top-level included.
func (st *State) Depth() int { return len(st.contexts) }

// Context returns the i-th context counting down from the top (0 = current).
func (st *State) Context(i int) (Context, bool) {
	idx := len(st.contexts) - 1 - i
	if idx < 0 || idx >= len(st.contexts) {
		return Context{}, false
	}
	return st.contexts[idx], true
}

// Types returns the stack's context types from bottom to top.
func (st *State) Types() []ContextType {
	out := make([]ContextType, len(st.contexts))
	for i, c := range st.contexts {
		out[i] = c.Type
	}
	return out
}

// Suspended reports whether a string or block comment continues onto the next line.
func (st *State) Suspended() bool { return st.tokenize != nil }

// Copy returns an independent snapshot of the state.
func (st *State) Copy() *State {
	cp := *st
	cp.contexts = append([]Context(nil), st.contexts...)
	return &cp
}

func (st *State) top() *Context { return &st.contexts[len(st.contexts)-1] }

// pushContext opens a context at col. Implicit scopes lend their own
// baseline to the brackets opened inside them; a nested implicit scope
// starts from the current line's indentation.
func (st *State) pushContext(col int, typ ContextType, info string) {
	indent := st.Indented
	if parent := st.Top(); parent.Type.Implicit() && !typ.Implicit() {
		indent = parent.Indented
	}
	st.contexts = append(st.contexts, Context{
		Indented: indent,
		Column:   col,
		Type:     typ,
		Info:     info,
	})
}

// popContext closes the current context. The top-level frame is never popped.
func (st *State) popContext() {
	if len(st.contexts) == 1 {
		return
	}
	switch st.Top().Type {
	case BraceContext, BracketContext, ParenContext:
		st.Indented = st.Top().Indented
	}
	st.contexts = st.contexts[:len(st.contexts)-1]
}

func (st *State) popImplicit() {
	for len(st.contexts) > 1 && st.Top().Type.Implicit() {
		st.popContext()
	}
}

// closeBlock unwinds for a '}': dangling statements inside the block, the
// block itself, then the statement the block belonged to.
func (st *State) closeBlock() {
	st.popImplicit()
	if st.Top().Type == BraceContext {
		st.popContext()
	}
	st.popImplicit()
}
