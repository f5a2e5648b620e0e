package multipart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/formdata/bytesize"
	"github.com/indigo-web/formdata/config"
	"github.com/indigo-web/formdata/form"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, boundary string, f form.Form) []byte {
	buff := new(bytes.Buffer)
	require.NoError(t, Encode(buff, boundary, f))
	return buff.Bytes()
}

func TestEncode(t *testing.T) {
	t.Run("layout", func(t *testing.T) {
		data := encode(t, "b", form.Form{
			{Name: "a", Value: []byte("1")},
			{Name: "f", Filename: "f.txt", Type: "text/plain", TransferEncoding: "8bit", Value: []byte("2")},
		})
		require.Equal(t, "--b\r\n"+
			"Content-Disposition: form-data; name=\"a\"\r\n"+
			"\r\n"+
			"1\r\n"+
			"--b\r\n"+
			"Content-Disposition: form-data; name=\"f\"; filename=\"f.txt\"\r\n"+
			"Content-Type: text/plain\r\n"+
			"Content-Transfer-Encoding: 8bit\r\n"+
			"\r\n"+
			"2\r\n"+
			"--b--\r\n", string(data))
	})

	t.Run("empty form", func(t *testing.T) {
		data := encode(t, "b", nil)
		require.Equal(t, "--b--\r\n", string(data))

		result, err := Parse(data, bytesize.Unlimited)
		require.NoError(t, err)
		require.Equal(t, "b--", result.Boundary, "a lone close-delimiter is taken as the boundary")
		require.Empty(t, result.Form)
	})

	t.Run("errors", func(t *testing.T) {
		for _, tc := range []struct {
			Boundary string
			Form     form.Form
			Err      error
		}{
			{"", nil, ErrBadBoundary},
			{"with space", nil, ErrBadBoundary},
			{strings.Repeat("b", 71), nil, ErrBadBoundary},
			{"b", form.Form{{Value: []byte("v")}}, ErrUnnamed},
			{"b", form.Form{{Name: `quo"te`}}, ErrBadHeader},
			{"b", form.Form{{Name: "a", Filename: "x; name=y"}}, ErrBadHeader},
			{"b", form.Form{{Name: "a", Type: "text/plain\r\nX-Injected: 1"}}, ErrBadHeader},
			{"b", form.Form{{Name: "a", Value: []byte("--b")}}, ErrAmbiguousValue},
			{"b", form.Form{{Name: "a", Value: []byte("x\r\n--b--")}}, ErrAmbiguousValue},
		} {
			err := Encode(new(bytes.Buffer), tc.Boundary, tc.Form)
			require.ErrorIs(t, err, tc.Err)
		}
	})

	t.Run("nothing is written on error", func(t *testing.T) {
		buff := new(bytes.Buffer)
		err := Encode(buff, "b", form.Form{{Name: "a"}, {Value: []byte("unnamed")}})
		require.ErrorIs(t, err, ErrUnnamed)
		require.Zero(t, buff.Len())
	})
}

func TestNewBoundary(t *testing.T) {
	first, second := NewBoundary(), NewBoundary()
	require.Len(t, first, boundaryLength)
	require.True(t, strings.HasPrefix(first, "----FormBoundary"))
	require.NotEqual(t, first, second)
	require.True(t, validBoundary(first))
}

func TestRoundTrip(t *testing.T) {
	cfg := config.Default().Parser
	cfg.Base64 = config.Base64Off

	for i := 0; i < 50; i++ {
		var original form.Form
		for j := 0; j <= i%7; j++ {
			value := uniuri.NewLen(j * 13)
			if j%2 == 1 {
				// sprinkle framing-like bytes into values
				value = "\r\n" + value + "\n\r\n\r" + string(fakePNG)
			}

			data := form.Data{
				Name:  "field-" + uniuri.NewLen(6),
				Value: []byte(value),
			}

			if j%3 == 0 {
				data.Filename = uniuri.NewLen(8) + ".bin"
				data.Type = "application/octet-stream"
			}

			original = append(original, data)
		}

		boundary := NewBoundary()
		result, err := ParseConfig(cfg, encode(t, boundary, original))
		require.NoError(t, err)
		require.Equal(t, boundary, result.Boundary)
		require.Len(t, result.Form, len(original))

		for j := range original {
			require.Equal(t, original[j].Name, result.Form[j].Name)
			require.Equal(t, original[j].Filename, result.Form[j].Filename)
			require.Equal(t, original[j].Type, result.Form[j].Type)
			require.Equal(t, string(original[j].Value), string(result.Form[j].Value))
		}
	}
}
