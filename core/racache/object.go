package racache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"achievement-manager/core/storage"

	"github.com/minio/minio-go/v7"
)

// Object is a Store on an object storage bucket.
type Object struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObject returns a store keeping files under prefix in bucket.
func NewObject(client storage.Client, bucket, prefix string) *Object {
	return &Object{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *Object) key(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if s.prefix == "" || name == "" {
		return s.prefix + name
	}
	return s.prefix + "/" + name
}

func (s *Object) ReadFile(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, s.readError(name, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.readError(name, err)
	}
	return data, nil
}

func (s *Object) readError(name string, err error) error {
	if storage.IsNotFound(err) {
		return fmt.Errorf("%s: %w", s.Location(name), ErrNotExist)
	}
	return fmt.Errorf("failed to read %s: %w", s.Location(name), err)
}

func (s *Object) WriteFile(ctx context.Context, name string, data []byte) error {
	contentType := "text/plain"
	if strings.HasSuffix(name, ".json") {
		contentType = "application/json"
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Location(name), err)
	}
	return nil
}

func (s *Object) List(ctx context.Context, dir string) ([]string, error) {
	prefix := s.key(dir)
	if prefix != "" {
		prefix += "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", s.Location(dir), obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" || strings.HasSuffix(name, "/") {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *Object) Location(name string) string {
	return "s3://" + s.bucket + "/" + s.key(name)
}
