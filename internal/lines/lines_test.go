package lines

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func split(data string) (lines []string) {
	for _, line := range Split([]byte(data)) {
		lines = append(lines, string(line))
	}

	return lines
}

func TestSplit(t *testing.T) {
	t.Run("CRLF and bare LF", func(t *testing.T) {
		lines := split("line1\r\nline2\r\nline3\nline4\r\nline5\r\nline6")
		require.Equal(t, []string{"line1", "line2", "line3\nline4", "line5", "line6"}, lines)
	})

	t.Run("empty line", func(t *testing.T) {
		lines := split("line1\r\n\r\nline2")
		require.Equal(t, []string{"line1", "", "line2"}, lines)
	})

	t.Run("trailing CRLF", func(t *testing.T) {
		lines := split("line1\r\nline2\r\n")
		require.Equal(t, []string{"line1", "line2", ""}, lines)
	})

	t.Run("trailing CR", func(t *testing.T) {
		require.Equal(t, []string{"line1", "line2"}, split("line1\r\nline2\r"))
		require.Equal(t, []string{"line1", "line2\nline3"}, split("line1\r\nline2\nline3\r"))
	})

	t.Run("LF only", func(t *testing.T) {
		lines := split("a\nb\n\nc\n")
		require.Equal(t, []string{"a\nb\n\nc\n"}, lines)
	})

	t.Run("consecutive LFs before CRLF", func(t *testing.T) {
		lines := split("a\n\n\r\nb")
		require.Equal(t, []string{"a\n\n", "b"}, lines)
	})

	t.Run("bare CR", func(t *testing.T) {
		lines := split("a\rb\r\nc")
		require.Equal(t, []string{"a\rb", "c"}, lines)
	})

	t.Run("empty input", func(t *testing.T) {
		require.Equal(t, []string{""}, split(""))
	})

	t.Run("only CRLF", func(t *testing.T) {
		require.Equal(t, []string{"", ""}, split("\r\n"))
	})

	t.Run("lines alias the input", func(t *testing.T) {
		data := []byte("abc\r\ndef")
		lines := Split(data)
		data[5] = 'X'
		require.Equal(t, "Xef", string(lines[1]))
	})

	t.Run("early break", func(t *testing.T) {
		var got []string
		for line := range All([]byte("a\r\nb\r\nc")) {
			got = append(got, string(line))
			if len(got) == 2 {
				break
			}
		}

		require.Equal(t, []string{"a", "b"}, got)
	})
}
