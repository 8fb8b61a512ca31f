package dto

// FlowDocument is a chatbot scenario export: a list of sections linked by buttons.
// It uses "mapstructure" tags so JSON and YAML documents decode the same way.
type FlowDocument struct {
	Root     string    `json:"root,omitempty" mapstructure:"root"`
	Sections []Section `json:"sections" mapstructure:"sections"`
}

// Section is one dialogue state.
type Section struct {
	ID      string   `json:"id" mapstructure:"id"`
	Text    string   `json:"text" mapstructure:"text"`
	Type    string   `json:"type" mapstructure:"type"`
	Buttons []Button `json:"buttons" mapstructure:"buttons"`
}

// SectionTypeStop marks a section that ends the conversation. Its buttons are ignored.
const SectionTypeStop = "stop"

// Button is a transition offered to the user.
// Several exports name the target differently; the first non-empty one wins.
type Button struct {
	Text          string `json:"text" mapstructure:"text"`
	NextSectionID string `json:"nextSectionId" mapstructure:"nextSectionId"`
	Next          string `json:"next" mapstructure:"next"`
	To            string `json:"to" mapstructure:"to"`
}

// Target returns the id of the section the button leads to.
func (b Button) Target() string {
	switch {
	case b.NextSectionID != "":
		return b.NextSectionID
	case b.Next != "":
		return b.Next
	default:
		return b.To
	}
}
