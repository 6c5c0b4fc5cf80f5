// Package testcase reads and writes secret recovery test case documents.
//
// A document is a json object like:
//
//	{
//	    "keys": {"n": 4, "k": 3},
//	    "1": {"base": "10", "value": "4"},
//	    "2": {"base": "2", "value": "111"},
//	    "3": {"base": "10", "value": "12"},
//	    "6": {"base": "4", "value": "213"}
//	}
//
// every member named by a decimal integer is one root, the name is x and
// value is y written in base. Roots keep the order they appear in the document.
package testcase

import (
	"bytes"
	"os"
	"strconv"
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/go-sss/crypto/threshold/shamir"
	"github.com/Laisky/go-sss/json"
	"github.com/Laisky/go-sss/radix"
)

const keysMember = "keys"

// Keys parameters of test case
type Keys struct {
	// N total roots declared, informational only
	N int `json:"n"`
	// K minimal roots required to recover the secret
	K int `json:"k"`
}

// Root one encoded share
type Root struct {
	X     int64
	Base  int
	Value string
}

// Case parsed test case
type Case struct {
	Keys
	Roots []Root
}

// Degree of the hidden polynomial
func (c *Case) Degree() int {
	return c.K - 1
}

// Point decode root to a point
func (r Root) Point() (shamir.Point, error) {
	y, err := radix.Decode(r.Value, r.Base)
	if err != nil {
		return shamir.Point{}, errors.Wrapf(err, "decode root x=%d", r.X)
	}

	return shamir.Point{X: r.X, Y: y}, nil
}

// Points decode all roots, in order
func (c *Case) Points() ([]shamir.Point, error) {
	points := make([]shamir.Point, 0, len(c.Roots))
	for _, r := range c.Roots {
		p, err := r.Point()
		if err != nil {
			return nil, err
		}

		points = append(points, p)
	}

	return points, nil
}

// intString int that may be written as json number or string
type intString int

func (v *intString) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	i, err := strconv.Atoi(s)
	if err != nil {
		return errors.Wrapf(err, "parse %q as int", s)
	}

	*v = intString(i)
	return nil
}

type rawRoot struct {
	Base  intString `json:"base"`
	Value string    `json:"value"`
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// Parse parse test case document, comments are allowed
func Parse(data []byte) (*Case, error) {
	members, err := json.ObjectMembers(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse test case")
	}

	var (
		c       = new(Case)
		hasKeys bool
	)
	for _, m := range members {
		switch {
		case m.Name == keysMember:
			if err = json.Unmarshal(m.Value, &c.Keys); err != nil {
				return nil, errors.Wrap(err, "unmarshal keys")
			}
			hasKeys = true
		case isDecimal(m.Name):
			x, err := strconv.ParseInt(m.Name, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parse x %q", m.Name)
			}

			var rr rawRoot
			if err = json.Unmarshal(m.Value, &rr); err != nil {
				return nil, errors.Wrapf(err, "unmarshal root %q", m.Name)
			}
			if rr.Value == "" {
				return nil, errors.Errorf("root %q has empty value", m.Name)
			}

			c.Roots = append(c.Roots, Root{X: x, Base: int(rr.Base), Value: rr.Value})
		}
	}

	if !hasKeys {
		return nil, errors.Errorf("member %q not found", keysMember)
	}
	if c.K < 1 {
		return nil, errors.Errorf("k should be at least 1, got %d", c.K)
	}

	return c, nil
}

// Load read and parse test case file
func Load(fpath string) (*Case, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "read file %q", fpath)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse file %q", fpath)
	}

	return c, nil
}

// Encode build a test case from points, every y is written in base
func Encode(n, k, base int, points []shamir.Point) (*Case, error) {
	c := &Case{Keys: Keys{N: n, K: k}}
	for _, p := range points {
		if p.X < 0 {
			return nil, errors.Errorf("x should not be negative, got %d", p.X)
		}

		v, err := radix.Encode(p.Y, base)
		if err != nil {
			return nil, errors.Wrapf(err, "encode y of x=%d", p.X)
		}

		c.Roots = append(c.Roots, Root{X: p.X, Base: base, Value: v})
	}

	return c, nil
}

// Marshal render test case document, roots keep their order
func (c *Case) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	keys, err := json.Marshal(c.Keys)
	if err != nil {
		return nil, errors.Wrap(err, "marshal keys")
	}

	buf.WriteString("{\n    \"" + keysMember + "\": ")
	buf.Write(keys)
	for _, r := range c.Roots {
		root, err := json.Marshal(struct {
			Base  string `json:"base"`
			Value string `json:"value"`
		}{strconv.Itoa(r.Base), r.Value})
		if err != nil {
			return nil, errors.Wrapf(err, "marshal root x=%d", r.X)
		}

		buf.WriteString(",\n    \"" + strconv.FormatInt(r.X, 10) + "\": ")
		buf.Write(root)
	}
	buf.WriteString("\n}\n")

	return buf.Bytes(), nil
}
