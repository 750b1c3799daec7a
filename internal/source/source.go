// Package source resolves EDI inputs: local files, s3:// objects, and
// gzip-compressed variants of either, with BOM-safe UTF-8 decoding.
package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dimchansky/utfbom"
	"github.com/klauspost/pgzip"
)

// Open returns a reader over the input at path. Paths with the s3:// scheme
// are fetched from S3; everything else is a local file. Gzip payloads are
// detected by magic bytes and decompressed transparently.
func Open(ctx context.Context, path string) (io.ReadCloser, error) {
	var rc io.ReadCloser
	var err error
	if strings.HasPrefix(path, "s3://") {
		rc, err = openS3(ctx, path)
	} else {
		rc, err = os.Open(path)
	}
	if err != nil {
		return nil, err
	}
	return maybeGunzip(rc)
}

// ReadAll opens path, strips any UTF-8 byte-order mark, and returns the
// decoded content. Input that is not valid UTF-8 is rejected; that is the
// one decode error the parse path treats as fatal.
func ReadAll(ctx context.Context, path string) (string, error) {
	rc, err := Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(utfbom.SkipOnly(rc))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: input is not valid UTF-8", path)
	}
	return string(data), nil
}

func openS3(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting S3 object %s: %w", uri, err)
	}
	return resp.Body, nil
}

// ParseS3URI splits s3://bucket/key into its parts.
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(uri, "s3://")
	if rest == uri {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 uri: %s", uri)
	}
	return bucket, key, nil
}

// maybeGunzip sniffs the stream and, for gzip payloads, wraps it in a
// parallel decompressor. The returned closer closes every layer.
func maybeGunzip(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	magic, err := br.Peek(2)
	if err != nil && err != io.EOF {
		rc.Close()
		return nil, fmt.Errorf("sniff input: %w", err)
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := pgzip.NewReader(br)
		if err != nil {
			rc.Close()
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		return &layeredCloser{Reader: gz, closers: []io.Closer{gz, rc}}, nil
	}
	return &layeredCloser{Reader: br, closers: []io.Closer{rc}}, nil
}

// layeredCloser reads from the outermost layer and closes all layers in order.
type layeredCloser struct {
	io.Reader
	closers []io.Closer
}

func (l *layeredCloser) Close() error {
	var first error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
