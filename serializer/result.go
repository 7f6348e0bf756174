package serializer

// Result holds the output of a serialization pass.
type Result struct {
	Text      string    `json:"text"`
	SourceMap SourceMap `json:"sourceMap"`
	Warnings  []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes serialization warnings.
type WarningType string

const (
	WarningUnknownNode      WarningType = "unknown_node"
	WarningUnknownMark      WarningType = "unknown_mark"
	WarningMissingAttribute WarningType = "missing_attribute"
	WarningSkippedNode      WarningType = "skipped_node"
)

// Warning represents a non-fatal issue encountered during serialization.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeKind string      `json:"nodeKind,omitempty"`
	Message  string      `json:"message"`
}
