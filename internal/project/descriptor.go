package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// DescriptorFile is the name of the project descriptor in a project root.
const DescriptorFile = "project.json"

// DefaultLanguage is used when the descriptor does not name a language.
const DefaultLanguage = "c"

// ErrMissingID is returned when a descriptor has no "id".
var ErrMissingID = errors.New("project descriptor is missing an id")

// Descriptor is a parsed project.json.
type Descriptor struct {
	Project *Project
	// Attributes holds the members of the optional "gen" object, used to
	// seed the driver attribute set.
	Attributes map[string]cty.Value
}

// LoadDescriptor reads and parses dir/project.json.
func LoadDescriptor(dir string) (*Descriptor, error) {
	path := filepath.Join(dir, DescriptorFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project descriptor: %w", err)
	}
	desc, err := ParseDescriptor(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	desc.Project.Path = dir
	return desc, nil
}

// ParseDescriptor decodes descriptor JSON. The document is decoded with its
// implied type so that unknown members are tolerated.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return nil, err
	}
	if !ty.IsObjectType() {
		return nil, fmt.Errorf("descriptor must be a JSON object, got %s", ty.FriendlyName())
	}
	root, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return nil, err
	}

	id, err := stringAttr(root, "id")
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, ErrMissingID
	}
	typeName, err := stringAttr(root, "type")
	if err != nil {
		return nil, err
	}

	p := &Project{
		ID:       id,
		Type:     ParseType(typeName),
		Language: DefaultLanguage,
	}
	p.Public = p.Type == Package

	if value, ok := objectAttr(root, "value"); ok {
		if lang, err := stringAttr(value, "language"); err != nil {
			return nil, err
		} else if lang != "" {
			p.Language = lang
		}
		if pub, ok := attrValue(value, "public"); ok {
			if pub.Type() != cty.Bool {
				return nil, fmt.Errorf("value.public must be a bool, got %s", pub.Type().FriendlyName())
			}
			p.Public = pub.True()
		}
		if p.Use, err = stringListAttr(value, "use"); err != nil {
			return nil, err
		}
		if p.UsePrivate, err = stringListAttr(value, "use-private"); err != nil {
			return nil, err
		}
	}

	desc := &Descriptor{Project: p, Attributes: make(map[string]cty.Value)}
	if gen, ok := objectAttr(root, "gen"); ok {
		for name := range gen.Type().AttributeTypes() {
			desc.Attributes[name] = gen.GetAttr(name)
		}
	}
	return desc, nil
}

func attrValue(obj cty.Value, name string) (cty.Value, bool) {
	if !obj.Type().IsObjectType() || !obj.Type().HasAttribute(name) {
		return cty.NilVal, false
	}
	v := obj.GetAttr(name)
	if v.IsNull() {
		return cty.NilVal, false
	}
	return v, true
}

func objectAttr(obj cty.Value, name string) (cty.Value, bool) {
	v, ok := attrValue(obj, name)
	if !ok || !v.Type().IsObjectType() {
		return cty.NilVal, false
	}
	return v, true
}

func stringAttr(obj cty.Value, name string) (string, error) {
	v, ok := attrValue(obj, name)
	if !ok {
		return "", nil
	}
	if v.Type() != cty.String {
		return "", fmt.Errorf("%s must be a string, got %s", name, v.Type().FriendlyName())
	}
	return v.AsString(), nil
}

func stringListAttr(obj cty.Value, name string) ([]string, error) {
	v, ok := attrValue(obj, name)
	if !ok {
		return nil, nil
	}
	ty := v.Type()
	if !ty.IsTupleType() && !ty.IsListType() {
		return nil, fmt.Errorf("%s must be a list of strings, got %s", name, ty.FriendlyName())
	}
	var out []string
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.IsNull() || elem.Type() != cty.String {
			return nil, fmt.Errorf("%s must only contain strings", name)
		}
		out = append(out, elem.AsString())
	}
	return out, nil
}
