package optypes

// Option is one selectable entry in a menu. Menus keep the slice order.
type Option struct {
	Key     string
	Display string
}

// OptionsProvider computes the options offered for a search query.
type OptionsProvider func(query string) []Option

// Prompter is the input collaborator. Implementations return io.EOF or an
// interrupt error when the operator leaves the terminal.
type Prompter interface {
	// Select shows the options and returns the chosen key.
	Select(label string, options []Option) (string, error)
	// Search asks for a query, offers provider(query) and returns the chosen key.
	// The boolean is false when nothing was chosen.
	Search(label, placeholder string, provider OptionsProvider) (string, bool, error)
	Confirm(label string, def bool) (bool, error)
	Ask(label string) (string, error)
}

// KeyValue is a (label, value) row for the renderer.
type KeyValue struct {
	Label string
	Value string
}

// Renderer is the output collaborator. No core behaviour depends on how it draws.
type Renderer interface {
	Println(text string)
	Info(text string)
	Success(text string)
	Warning(text string)
	Error(text string)
	Note(text string)
	Header(title, subtitle string)
	KeyValues(rows []KeyValue)
	Table(headers []string, rows [][]string)
	Result(value any)
	// Pause blocks until the operator acknowledges the message.
	Pause(message string)
}

// Evaluator runs operator-entered code in a sandbox with the session variables
// in scope and returns the value of the expression, or nil for statements.
type Evaluator interface {
	Language() string
	Eval(code string, variables map[string]any) (any, error)
}
