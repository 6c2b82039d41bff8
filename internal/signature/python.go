package signature

import (
	"github.com/mvp-joe/code-skeleton/internal/grammar"
)

var pythonBuilders = map[string]builderFunc{
	"class_definition":    buildPythonClass,
	"function_definition": buildPythonFunction,
}

func buildPythonClass(node grammar.Node, source []byte) *Node {
	name := grammar.Text(node.ChildByFieldName("name"), source)
	return newNode(KindClass, name, pythonClassSignature(node, source), node)
}

// pythonClassSignature renders "class Name[T](Bases):".
func pythonClassSignature(node grammar.Node, source []byte) string {
	var sig fields
	sig.add("class")
	sig.add(grammar.Text(node.ChildByFieldName("name"), source) +
		grammar.Text(node.ChildByFieldName("type_parameters"), source) +
		grammar.Text(node.ChildByFieldName("superclasses"), source))
	return orRaw(sig.String()+":", node, source)
}

func buildPythonFunction(node grammar.Node, source []byte) *Node {
	name := grammar.Text(node.ChildByFieldName("name"), source)
	return newNode(KindFunction, name, pythonFunctionSignature(node, source), node)
}

// pythonFunctionSignature renders "[async] def name[T](params) -> ret:".
func pythonFunctionSignature(node grammar.Node, source []byte) string {
	var sig fields
	if grammar.ChildOfKind(node, "async") != nil {
		sig.add("async")
	}
	sig.add("def")
	sig.add(grammar.Text(node.ChildByFieldName("name"), source) +
		grammar.Text(node.ChildByFieldName("type_parameters"), source) +
		grammar.Text(node.ChildByFieldName("parameters"), source))

	if ret := grammar.Text(node.ChildByFieldName("return_type"), source); ret != "" {
		sig.add("->")
		sig.add(ret)
	}
	return orRaw(sig.String()+":", node, source)
}
