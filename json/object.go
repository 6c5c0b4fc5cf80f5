package json

import (
	"github.com/Laisky/errors/v2"
	"github.com/tailscale/hujson"
)

// Member one name/value pair of a json object
type Member struct {
	Name  string
	Value RawMessage
}

// ObjectMembers list members of the top level object in data,
// in the order they appear.
//
// comments are allowed. duplicate names are kept as is.
func ObjectMembers(data []byte) ([]Member, error) {
	ast, err := hujson.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	ast.Standardize()

	obj, ok := ast.Value.(*hujson.Object)
	if !ok {
		return nil, errors.Errorf("top level value should be object, got %T", ast.Value)
	}

	members := make([]Member, 0, len(obj.Members))
	for i := range obj.Members {
		m := &obj.Members[i]

		var name string
		if err = std.Unmarshal(m.Name.Pack(), &name); err != nil {
			return nil, errors.Wrapf(err, "unmarshal name of member %d", i)
		}

		members = append(members, Member{
			Name:  name,
			Value: RawMessage(m.Value.Pack()),
		})
	}

	return members, nil
}
