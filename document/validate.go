package document

import "fmt"

// Validate checks the structural invariants of a document tree. The root must
// contain block-level children only, heading content is inline-only, images
// never appear under headings, code block text is unmarked, and no text node
// carries two marks of the same type.
func Validate(root Node) error {
	for i, child := range root.Children {
		if !child.Kind.IsBlock() {
			return fmt.Errorf("root child %d: inline node %q at top level", i, child.Kind)
		}
	}
	return validateNode(root)
}

func validateNode(n Node) error {
	switch n.Kind {
	case KindHeading:
		for _, child := range n.Children {
			if child.Kind == KindImage {
				return fmt.Errorf("heading contains image child")
			}
			if !child.Kind.IsInline() {
				return fmt.Errorf("heading contains block child %q", child.Kind)
			}
		}
	case KindCodeBlock:
		for _, child := range n.Children {
			if child.Kind == KindText && len(child.Marks) > 0 {
				return fmt.Errorf("code block text carries marks")
			}
		}
	case KindText:
		seen := make(map[MarkType]bool, len(n.Marks))
		for _, m := range n.Marks {
			if seen[m.Type] {
				return fmt.Errorf("duplicate mark %q on text node", m.Type)
			}
			seen[m.Type] = true
		}
	}

	for _, child := range n.Children {
		if err := validateNode(child); err != nil {
			return err
		}
	}
	return nil
}
