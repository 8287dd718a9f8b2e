package domain

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion_Valid(t *testing.T) {
	cases := []struct {
		in   string
		want Version
	}{
		{"v1", NewVersion(1, 0, 0, false)},
		{"V2.3", NewVersion(2, 3, 0, false)},
		{"3.4.5", NewVersion(3, 4, 5, false)},
		{"  v0.10.2 ", NewVersion(0, 10, 2, false)},
	}
	for _, tc := range cases {
		got, err := ParseVersion(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.False(t, got.IsPrerelease)
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "1.2.3.4", "x.2.3", "v", "1..2", "1.-2"} {
		_, err := ParseVersion(in)
		require.Error(t, err, "input %q", in)

		var perr *ParseError
		assert.True(t, errors.As(err, &perr), "input %q should yield a ParseError", in)
	}
}

func TestVersionCompare_PrereleaseIsLower(t *testing.T) {
	stable := NewVersion(1, 2, 3, false)
	pre := NewVersion(1, 2, 3, true)

	assert.True(t, stable.IsNewerThan(pre))
	assert.True(t, pre.Less(stable))
	assert.Equal(t, 1, stable.Compare(pre))
	assert.Equal(t, -1, pre.Compare(stable))
}

func TestVersionCompare_Numbers(t *testing.T) {
	assert.True(t, NewVersion(1, 2, 4, false).IsNewerThan(NewVersion(1, 2, 3, false)))
	assert.True(t, NewVersion(2, 0, 0, false).IsNewerThan(NewVersion(1, 99, 99, false)))
	assert.True(t, NewVersion(1, 3, 0, true).IsNewerThan(NewVersion(1, 2, 9, false)))
	assert.Equal(t, 0, NewVersion(1, 2, 3, false).Compare(NewVersion(1, 2, 3, false)))
}

func TestVersionCompare_TotalOrder(t *testing.T) {
	vs := []Version{
		NewVersion(1, 0, 0, false),
		NewVersion(0, 1, 0, true),
		NewVersion(1, 0, 0, true),
		NewVersion(0, 1, 0, false),
		NewVersion(0, 0, 9, false),
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })

	want := []string{"0.0.9", "0.1.0-pre", "0.1.0", "1.0.0-pre", "1.0.0"}
	var got []string
	for _, v := range vs {
		got = append(got, v.String())
	}
	assert.Equal(t, want, got)

	for i := range vs {
		assert.False(t, vs[i].Less(vs[i]), "irreflexive at %s", vs[i])
		for j := range vs {
			if vs[i].Less(vs[j]) {
				assert.False(t, vs[j].Less(vs[i]), "antisymmetric %s/%s", vs[i], vs[j])
			}
		}
	}
}

func TestParseVersion_ConsistentWithConstructor(t *testing.T) {
	parsed, err := ParseVersion("v4.5.6")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(NewVersion(4, 5, 6, false)))
	assert.Equal(t, "4.5.6", parsed.String())
}

func TestSameVersion(t *testing.T) {
	a := NewVersion(1, 0, 0, false)
	b := NewVersion(1, 0, 0, false)
	c := NewVersion(1, 0, 1, false)

	assert.True(t, SameVersion(nil, nil))
	assert.True(t, SameVersion(&a, &b))
	assert.False(t, SameVersion(&a, &c))
	assert.False(t, SameVersion(&a, nil))
	assert.False(t, SameVersion(nil, &a))
}
