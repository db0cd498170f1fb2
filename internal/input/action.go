package input

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from keyboard input.
	SourceKeyboard ActionSource = iota
	// SourceCommandLine indicates the action came from a command-line flag.
	SourceCommandLine
	// SourcePlugin indicates the action originated from a plugin.
	SourcePlugin
	// SourceAPI indicates the action originated from an API call.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceCommandLine:
		return "command-line"
	case SourcePlugin:
		return "plugin"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "paredit.slurpForward").
	Name string

	// Source indicates where this action originated.
	Source ActionSource

	// Count is the repeat count. Zero means not specified.
	Count int

	// Text is the payload of text-entry actions.
	Text string
}

// NewAction creates an action with the given name.
func NewAction(name string) Action {
	return Action{Name: name}
}

// WithCount returns a copy of the action with the specified count.
func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// WithText returns a copy of the action carrying text.
func (a Action) WithText(text string) Action {
	a.Text = text
	return a
}

// WithSource returns a copy of the action with the specified source.
func (a Action) WithSource(source ActionSource) Action {
	a.Source = source
	return a
}

// Namespace returns the prefix before the first dot, or "" if none.
func (a Action) Namespace() string {
	for i := 0; i < len(a.Name); i++ {
		if a.Name[i] == '.' {
			return a.Name[:i]
		}
	}
	return ""
}
