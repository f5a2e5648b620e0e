package body

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/indigo-web/formdata/bytesize"
	"github.com/indigo-web/formdata/config"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, data []byte) []byte {
	buff := new(bytes.Buffer)
	w := gzip.NewWriter(buff)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buff.Bytes()
}

func deflated(t *testing.T, data []byte) []byte {
	buff := new(bytes.Buffer)
	w, err := flate.NewWriter(buff, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buff.Bytes()
}

func zstded(t *testing.T, data []byte) []byte {
	w, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer w.Close()
	return w.EncodeAll(data, nil)
}

func TestRead(t *testing.T) {
	data, err := Read(strings.NewReader("hello"), 5)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	_, err = Read(strings.NewReader("hello!"), 5)
	require.ErrorIs(t, err, ErrTooLarge)

	data, err = Read(strings.NewReader("hello!"), bytesize.Unlimited)
	require.NoError(t, err)
	require.Equal(t, "hello!", string(data))
}

func TestDechunk(t *testing.T) {
	t.Run("single chunk", func(t *testing.T) {
		data, err := Dechunk([]byte("d\r\nHello, world!\r\n0\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(data))
	})

	t.Run("multiple chunks", func(t *testing.T) {
		data, err := Dechunk([]byte("5\r\nHello\r\n8\r\n, world!\r\n0\r\n\r\n"))
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(data))
	})

	t.Run("incomplete", func(t *testing.T) {
		_, err := Dechunk([]byte("5\r\nHello\r\n"))
		require.ErrorIs(t, err, ErrIncompleteChunked)

		_, err = Dechunk(nil)
		require.ErrorIs(t, err, ErrIncompleteChunked)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Dechunk([]byte("zz\r\nHello\r\n0\r\n\r\n"))
		require.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	payload := []byte(strings.Repeat("--boundary\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\nb\r\n", 100))

	t.Run("identity", func(t *testing.T) {
		for _, coding := range []string{"", "identity", " Identity "} {
			data, err := Decode(coding, payload, bytesize.Unlimited)
			require.NoError(t, err)
			require.Equal(t, payload, data)
		}
	})

	t.Run("single coding", func(t *testing.T) {
		for coding, encoded := range map[string][]byte{
			"gzip":    gzipped(t, payload),
			"x-gzip":  gzipped(t, payload),
			"deflate": deflated(t, payload),
			"zstd":    zstded(t, payload),
			"GZIP":    gzipped(t, payload),
		} {
			data, err := Decode(coding, encoded, bytesize.MiB)
			require.NoError(t, err, coding)
			require.Equal(t, payload, data, coding)
		}
	})

	t.Run("stacked codings", func(t *testing.T) {
		encoded := zstded(t, gzipped(t, payload))
		data, err := Decode("gzip, zstd", encoded, bytesize.MiB)
		require.NoError(t, err)
		require.Equal(t, payload, data)

		_, err = Decode("gzip, gzip, gzip, gzip, gzip", encoded, bytesize.MiB)
		require.ErrorIs(t, err, ErrTooManyCodings)
	})

	t.Run("limit", func(t *testing.T) {
		_, err := Decode("gzip", gzipped(t, payload), bytesize.ByteSize(len(payload)-1))
		require.ErrorIs(t, err, ErrTooLarge)

		_, err = Decode("identity", payload, bytesize.ByteSize(len(payload)-1))
		require.ErrorIs(t, err, ErrTooLarge)

		data, err := Decode("zstd", zstded(t, payload), bytesize.ByteSize(len(payload)))
		require.NoError(t, err)
		require.Equal(t, payload, data)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := Decode("br", payload, bytesize.Unlimited)
		require.ErrorIs(t, err, ErrUnsupportedCoding)
	})

	t.Run("corrupted", func(t *testing.T) {
		_, err := Decode("gzip", payload, bytesize.Unlimited)
		require.Error(t, err)
	})
}

func TestPrepare(t *testing.T) {
	const payload = "--b\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\nvalue\r\n--b--\r\n"
	compressed := gzipped(t, []byte(payload))

	chunked := new(bytes.Buffer)
	chunked.WriteString(strconv.FormatInt(int64(len(compressed)), 16) + "\r\n")
	chunked.Write(compressed)
	chunked.WriteString("\r\n0\r\n\r\n")

	cfg := config.Default().Body
	cfg.Chunked = true
	cfg.ContentEncoding = "gzip"

	data, err := Prepare(cfg, chunked)
	require.NoError(t, err)
	require.Equal(t, payload, string(data))

	cfg = config.Default().Body
	cfg.MaxSize = 3
	_, err = Prepare(cfg, strings.NewReader(payload))
	require.ErrorIs(t, err, ErrTooLarge)
}
