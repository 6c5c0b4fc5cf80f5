package json

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectMembers(t *testing.T) {
	t.Parallel()

	raw := []byte(`// comment
	{
		// order matters
		"keys": {"n": 2, "k": 2},
		"3": {"base": "16", /* hex */ "value": "a"},
		"1": {"base": "10", "value": "4"}, // trailing comma
	}`)

	members, err := ObjectMembers(raw)
	require.NoError(t, err)
	require.Len(t, members, 3)
	require.Equal(t, "keys", members[0].Name)
	require.Equal(t, "3", members[1].Name)
	require.Equal(t, "1", members[2].Name)

	var root struct {
		Base  string `json:"base"`
		Value string `json:"value"`
	}
	require.NoError(t, Unmarshal(members[1].Value, &root))
	require.Equal(t, "16", root.Base)
	require.Equal(t, "a", root.Value)

	// values are standard json once comments are stripped
	m := map[string]interface{}{}
	require.NoError(t, Unmarshal(members[0].Value, &m))
	require.Equal(t, float64(2), m["n"])

	t.Run("duplicate names", func(t *testing.T) {
		members, err := ObjectMembers([]byte(`{"1": 1, "1": 2}`))
		require.NoError(t, err)
		require.Len(t, members, 2)
		require.Equal(t, "1", members[0].Name)
		require.Equal(t, "1", members[1].Name)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, raw := range []string{`[1, 2]`, `{"a": `, ``} {
			_, err := ObjectMembers([]byte(raw))
			require.Error(t, err, raw)
		}
	})

	t.Run("comments rejected by Unmarshal", func(t *testing.T) {
		m := map[string]interface{}{}
		require.Error(t, Unmarshal(raw, &m))
		require.Empty(t, m)
	})
}
