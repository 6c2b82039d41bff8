package signature

import (
	"strings"

	"github.com/mvp-joe/code-skeleton/internal/grammar"
)

var javaBuilders = map[string]builderFunc{
	"class_declaration":           javaTypeBuilder(KindClass, "class"),
	"interface_declaration":       javaTypeBuilder(KindInterface, "interface"),
	"enum_declaration":            javaTypeBuilder(KindEnum, "enum"),
	"record_declaration":          javaTypeBuilder(KindClass, "record"),
	"annotation_type_declaration": javaTypeBuilder(KindInterface, "@interface"),
	"method_declaration":          buildJavaMethod,
}

// javaTypeBuilder returns a builder for type declarations introduced by keyword.
func javaTypeBuilder(kind Kind, keyword string) builderFunc {
	return func(node grammar.Node, source []byte) *Node {
		name := grammar.Text(node.ChildByFieldName("name"), source)
		return newNode(kind, name, javaTypeSignature(node, source, keyword), node)
	}
}

// javaTypeSignature renders
// modifiers, keyword, name with type parameters, superclass, interfaces.
func javaTypeSignature(node grammar.Node, source []byte, keyword string) string {
	var sig fields
	sig.add(modifiersText(node, source))
	sig.add(keyword)

	// Type parameters and record components hug the name: Box<T>, Point(int x, int y).
	head := grammar.Text(node.ChildByFieldName("name"), source) +
		grammar.Text(node.ChildByFieldName("type_parameters"), source)
	if keyword == "record" {
		head += grammar.Text(node.ChildByFieldName("parameters"), source)
	}
	sig.add(head)

	sig.addNode(node.ChildByFieldName("superclass"), source)

	interfaces := node.ChildByFieldName("interfaces")
	if interfaces == nil {
		interfaces = grammar.ChildOfKind(node, "extends_interfaces")
	}
	sig.addNode(interfaces, source)

	return orRaw(sig.String(), node, source)
}

func buildJavaMethod(node grammar.Node, source []byte) *Node {
	name := grammar.Text(node.ChildByFieldName("name"), source)
	kind := KindFunction
	if name == "main" {
		kind = KindMainFunction
	}
	return newNode(kind, name, javaMethodSignature(node, source), node)
}

// javaMethodSignature renders
// modifiers, type parameters, return type, name with parameters, throws clause.
func javaMethodSignature(node grammar.Node, source []byte) string {
	var sig fields
	sig.add(modifiersText(node, source))
	sig.addNode(node.ChildByFieldName("type_parameters"), source)
	sig.addNode(node.ChildByFieldName("type"), source)
	sig.add(grammar.Text(node.ChildByFieldName("name"), source) +
		grammar.Text(node.ChildByFieldName("parameters"), source))

	if throws := javaThrows(node, source); throws != "" {
		sig.add("throws " + throws)
	}

	return orRaw(sig.String(), node, source)
}

// javaThrows returns the comma-separated exception types of the method's
// throws clause. The clause is a plain child, not a named field, in the grammar.
func javaThrows(node grammar.Node, source []byte) string {
	clause := grammar.ChildOfKind(node, "throws")
	if clause == nil {
		return ""
	}

	var types []string
	for i := 0; i < clause.ChildCount(); i++ {
		child := clause.Child(i)
		switch child.Kind() {
		case "throws", ",", "line_comment", "block_comment":
			continue
		}
		if text := grammar.Text(child, source); text != "" {
			types = append(types, text)
		}
	}
	return strings.Join(types, ", ")
}
