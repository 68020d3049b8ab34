// Package s3 provides a source catalog backed by S3-compatible object
// storage, for pipelines whose source definitions are published as objects.
package s3

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/mkessel/artifactfs/catalog"
)

// S3Catalog stores source text as one object per class name under a
// configurable prefix.
type S3Catalog struct {
	client     *minio.Client
	bucketName string
	prefix     string
}

// NewS3Catalog creates a new S3-backed source catalog. The bucket must
// already exist; Open-style bucket provisioning is the deployment's job.
func NewS3Catalog(ctx context.Context, endpoint, bucketName, accessKey, secretKey string, useSSL bool) (*S3Catalog, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("catalog: bucket %q does not exist", bucketName)
	}

	return &S3Catalog{
		client:     client,
		bucketName: bucketName,
		prefix:     "sources/",
	}, nil
}

// Resolve returns the source text registered under className.
func (sc *S3Catalog) Resolve(ctx context.Context, className string) (string, error) {
	obj, err := sc.client.GetObject(ctx, sc.bucketName, sc.buildKey(className), minio.GetObjectOptions{})
	if err != nil {
		return "", err
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return "", fmt.Errorf("%w: %s", catalog.ErrNotFound, className)
		}
		return "", err
	}

	return string(raw), nil
}

// Store registers source text under className, replacing any previous text.
func (sc *S3Catalog) Store(ctx context.Context, className, source string) error {
	_, err := sc.client.PutObject(ctx, sc.bucketName, sc.buildKey(className),
		strings.NewReader(source), int64(len(source)), minio.PutObjectOptions{
			ContentType: "text/plain",
		})

	return err
}

// List returns the class names under the given dotted package prefix in
// lexical order. Objects list by key prefix, so package filtering happens
// client-side.
func (sc *S3Catalog) List(ctx context.Context, pkg string) ([]string, error) {
	var names []string
	for info := range sc.client.ListObjects(ctx, sc.bucketName, minio.ListObjectsOptions{
		Prefix:    sc.prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, info.Err
		}

		name := strings.TrimPrefix(info.Key, sc.prefix)
		if catalog.InPackage(name, pkg) {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// Delete removes the source registered under className.
func (sc *S3Catalog) Delete(ctx context.Context, className string) (bool, error) {
	key := sc.buildKey(className)

	// RemoveObject succeeds on missing keys, so check first.
	if _, err := sc.client.StatObject(ctx, sc.bucketName, key, minio.StatObjectOptions{}); err != nil {
		errResponse := minio.ToErrorResponse(err)
		if errResponse.Code == "NoSuchKey" {
			return false, nil
		}
		return false, err
	}

	if err := sc.client.RemoveObject(ctx, sc.bucketName, key, minio.RemoveObjectOptions{}); err != nil {
		return false, err
	}

	return true, nil
}

// Close is a no-op; the S3 client holds no connections to release.
func (sc *S3Catalog) Close(ctx context.Context) error {
	return nil
}

// buildKey maps a class name to its object key.
func (sc *S3Catalog) buildKey(className string) string {
	return sc.prefix + className
}
