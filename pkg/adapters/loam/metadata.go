package loam

// NodeMetadata is the frontmatter of one dialogue state stored as a Loam document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type NodeMetadata struct {
	ID          string             `json:"id" mapstructure:"id"`
	Type        string             `json:"type" mapstructure:"type"`
	Text        string             `json:"text" mapstructure:"text"`
	Transitions []LoaderTransition `json:"transitions" mapstructure:"transitions"`
	Options     []LoaderTransition `json:"options" mapstructure:"options"`
	// To is a shorthand for a single unlabelled transition.
	To string `json:"to" mapstructure:"to"`
}

// LoaderTransition is an outgoing edge. Targets may be given under any of the
// accepted keys; the first non-empty one wins.
type LoaderTransition struct {
	To        string `json:"to" mapstructure:"to"`
	ToFull    string `json:"to_node_id" mapstructure:"to_node_id"`
	JumpTo    string `json:"jump_to" mapstructure:"jump_to"`
	Condition string `json:"condition" mapstructure:"condition"`
	// Text is the display label for options/buttons.
	// It becomes the edge label; Condition is used when Text is empty.
	Text string `json:"text" mapstructure:"text"`
}

func (lt LoaderTransition) target() string {
	switch {
	case lt.To != "":
		return lt.To
	case lt.ToFull != "":
		return lt.ToFull
	default:
		return lt.JumpTo
	}
}

func (lt LoaderTransition) label() string {
	if lt.Text != "" {
		return lt.Text
	}
	return lt.Condition
}
