package httpx

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipBytes(data []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func brotliBytes(data []byte) []byte {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func zstdBytes(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := zstd.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func zlibBytes(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func rawDeflateBytes(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	plain := []byte(`{"choices":[{"message":{"content":"{\"risk_level\":\"safe\"}"}}]}`)

	tests := []struct {
		name        string
		encoding    string
		body        []byte
		wantChanged bool
	}{
		{"no encoding", "", plain, false},
		{"identity", "identity", plain, false},
		{"gzip", "gzip", gzipBytes(plain), true},
		{"brotli", "br", brotliBytes(plain), true},
		{"zstd", "zstd", zstdBytes(plain), true},
		{"zlib deflate", "deflate", zlibBytes(plain), true},
		{"raw deflate", "deflate", rawDeflateBytes(plain), true},
		{"chained gzip then br", "gzip, br", brotliBytes(gzipBytes(plain)), true},
		{"case and whitespace", "  GZip ", gzipBytes(plain), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, changed, err := Decode(tt.encoding, tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, plain, decoded)
		})
	}
}

func TestDecode_UnknownEncoding(t *testing.T) {
	_, _, err := Decode("compress", []byte("abc"))
	assert.Error(t, err)
}

func TestDecode_CorruptBody(t *testing.T) {
	_, _, err := Decode("gzip", []byte("definitely not gzip"))
	assert.Error(t, err)
}
