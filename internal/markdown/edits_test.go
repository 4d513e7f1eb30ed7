package markdown

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyEdits_MultipleReplacements(t *testing.T) {
	src := []byte("A: ./old.md\nB: ./old.md#frag\n")

	idx1 := bytes.Index(src, []byte("./old.md"))
	idx2 := bytes.LastIndex(src, []byte("./old.md#frag"))

	out, err := ApplyEdits(src, []Edit{
		{Start: idx1, End: idx1 + len("./old.md"), Replacement: []byte("./new.md")},
		{Start: idx2, End: idx2 + len("./old.md#frag"), Replacement: []byte("./new.md#frag")},
	})
	require.NoError(t, err)
	require.Equal(t, "A: ./new.md\nB: ./new.md#frag\n", string(out))
	require.Equal(t, "A: ./old.md\nB: ./old.md#frag\n", string(src), "source is not modified")
}

func TestApplyEdits_NoEdits(t *testing.T) {
	src := []byte("unchanged")
	out, err := ApplyEdits(src, nil)
	require.NoError(t, err)
	require.Equal(t, src, out)
}

func TestApplyEdits_Invalid(t *testing.T) {
	src := []byte("0123456789")

	_, err := ApplyEdits(src, []Edit{{Start: 2, End: 1}})
	require.Error(t, err)

	_, err = ApplyEdits(src, []Edit{{Start: 8, End: 11}})
	require.Error(t, err)

	_, err = ApplyEdits(src, []Edit{{Start: 1, End: 5}, {Start: 4, End: 6}})
	require.ErrorContains(t, err, "overlapping")
}
