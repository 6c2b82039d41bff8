package signature

import "fmt"

// Kind is the entity kind of a signature node.
type Kind int

const (
	// KindUnknown is the zero value. Extraction never emits it.
	KindUnknown Kind = iota
	KindClass
	KindStruct
	KindEnum
	KindInterface
	KindFunction
	KindMainFunction
	KindPrimaryConstructor
	KindProperty
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindClass:              "class",
	KindStruct:             "struct",
	KindEnum:               "enum",
	KindInterface:          "interface",
	KindFunction:           "func",
	KindMainFunction:       "main",
	KindPrimaryConstructor: "primary_constructor",
	KindProperty:           "prop",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown entity kind %q", string(text))
}
