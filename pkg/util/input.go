// Package util holds small helpers shared by the CLI commands.
package util

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// gzipMagic opens every gzip stream
var gzipMagic = []byte{0x1f, 0x8b}

// ReadInput loads the whole of uri: "-" for stdin, an http(s) URL, or a file
// path (a file:// prefix is allowed). Gzip-compressed content is inflated.
func ReadInput(ctx context.Context, uri string, insecure bool) ([]byte, error) {
	uri = strings.TrimPrefix(uri, "file://")

	var in io.Reader
	switch {
	case uri == "":
		return nil, fmt.Errorf("no input given")
	case uri == "-":
		in = os.Stdin
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		cl := &http.Client{
			Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: insecure}},
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := cl.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to download: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to download: %s", resp.Status)
		}
		in = resp.Body
	default:
		f, err := os.Open(uri)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		in = f
	}
	return readMaybeGzip(in)
}

func readMaybeGzip(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(gzipMagic))
	if !bytes.Equal(head, gzipMagic) {
		return io.ReadAll(br)
	}
	gr, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gr.Close()
	return io.ReadAll(gr)
}
