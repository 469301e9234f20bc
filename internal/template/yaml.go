package template

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	wetwire "github.com/lex00/wetwire-sls-go"
)

// parseYAML decodes a YAML template, expanding short-form intrinsics (!Ref, !Sub,
// !GetAtt, ...) into their long form so they survive a later save.
func parseYAML(data []byte, t *wetwire.Template) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Kind == 0 {
		return nil
	}
	if err := expandShortForm(&doc); err != nil {
		return err
	}
	return doc.Decode(t)
}

// expandShortForm rewrites every node tagged !X into a {"Fn::X": value} mapping.
// !Ref and !Condition keep their bare names.
func expandShortForm(n *yaml.Node) error {
	for _, child := range n.Content {
		if err := expandShortForm(child); err != nil {
			return err
		}
	}

	if !strings.HasPrefix(n.Tag, "!") || strings.HasPrefix(n.Tag, "!!") {
		return nil
	}

	fn := strings.TrimPrefix(n.Tag, "!")
	key := "Fn::" + fn
	if fn == "Ref" || fn == "Condition" {
		key = fn
	}

	value := &yaml.Node{
		Kind:    n.Kind,
		Style:   n.Style &^ yaml.TaggedStyle,
		Value:   n.Value,
		Content: n.Content,
		Line:    n.Line,
		Column:  n.Column,
	}

	if fn == "GetAtt" && n.Kind == yaml.ScalarNode {
		resource, attribute, ok := strings.Cut(n.Value, ".")
		if !ok {
			return fmt.Errorf("line %d: !GetAtt %q is not <resource>.<attribute>", n.Line, n.Value)
		}
		value = &yaml.Node{
			Kind: yaml.SequenceNode,
			Tag:  "!!seq",
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Tag: "!!str", Value: resource},
				{Kind: yaml.ScalarNode, Tag: "!!str", Value: attribute},
			},
		}
	}

	*n = yaml.Node{
		Kind:   yaml.MappingNode,
		Tag:    "!!map",
		Line:   n.Line,
		Column: n.Column,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			value,
		},
	}
	return nil
}
