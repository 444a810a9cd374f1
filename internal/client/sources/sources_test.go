package sources

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	data   []byte
	err    error
	bucket string
	key    string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket, f.key = aws.ToString(in.Bucket), aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.data))}, nil
}

func stubS3(t *testing.T, fake *fakeS3) *s3.Options {
	t.Helper()
	oldLoad, oldNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() { loadDefaultAWSConfig, newS3ClientFromConfig = oldLoad, oldNew })

	seen := &s3.Options{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		var lo config.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		cfg := aws.Config{Region: lo.Region, Credentials: lo.Credentials}
		return cfg, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		seen.Region = cfg.Region
		seen.Credentials = cfg.Credentials
		for _, fn := range optFns {
			fn(seen)
		}
		return fake
	}
	return seen
}

func TestOpen_LocalFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "guests.xlsx")
	require.NoError(t, os.WriteFile(p, []byte("PK"), 0o600))

	up, err := NewOpener(S3Settings{}, nil).Open(context.Background(), "  "+p+"  ")
	require.NoError(t, err)
	assert.Equal(t, p, up.Name)
	assert.Equal(t, []byte("PK"), up.Data)

	_, err = NewOpener(S3Settings{}, nil).Open(context.Background(), filepath.Join(dir, "missing.xlsx"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_LocalFileTooLarge(t *testing.T) {
	orig := maxFileSize
	t.Cleanup(func() { maxFileSize = orig })
	maxFileSize = 4

	dir := t.TempDir()
	p := filepath.Join(dir, "guests.xlsx")
	require.NoError(t, os.WriteFile(p, []byte("PK-too-long"), 0o600))

	_, err := NewOpener(S3Settings{}, nil).Open(context.Background(), p)
	assert.ErrorContains(t, err, "file exceeds 4 bytes")

	require.NoError(t, os.WriteFile(p, []byte("PK"), 0o600))
	up, err := NewOpener(S3Settings{}, nil).Open(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), up.Data)
}

func TestReadCapped(t *testing.T) {
	orig := maxFileSize
	t.Cleanup(func() { maxFileSize = orig })
	maxFileSize = 4

	data, err := readCapped(bytes.NewReader([]byte("abcd")))
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), data)

	_, err = readCapped(bytes.NewReader([]byte("abcde")))
	assert.ErrorContains(t, err, "file exceeds 4 bytes")
}

func TestOpen_Empty(t *testing.T) {
	_, err := NewOpener(S3Settings{}, nil).Open(context.Background(), " ")
	assert.ErrorIs(t, err, ErrBadReference)
}

func TestOpen_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="list.xlsx"`)
		_, _ = w.Write([]byte("PK-remote"))
	}))
	defer srv.Close()

	up, err := NewOpener(S3Settings{}, srv.Client()).Open(context.Background(), srv.URL+"/x")
	require.NoError(t, err)
	assert.Equal(t, "list.xlsx", up.Name)
	assert.Equal(t, []byte("PK-remote"), up.Data)
}

func TestOpen_HTTPError(t *testing.T) {
	old := download
	t.Cleanup(func() { download = old })
	download = func(ctx context.Context, c *http.Client, rawURL string) ([]byte, string, error) {
		return nil, "", errors.New("404 Not Found")
	}

	_, err := NewOpener(S3Settings{}, nil).Open(context.Background(), "https://files.example.com/g.xlsx")
	assert.ErrorContains(t, err, "404 Not Found")
}

func TestOpen_S3(t *testing.T) {
	fake := &fakeS3{data: []byte("PK-s3")}
	seen := stubS3(t, fake)

	o := NewOpener(S3Settings{
		Region:       "eu-north-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "minio",
		SecretKey:    "minio123",
	}, nil)

	up, err := o.Open(context.Background(), "s3://imports/2025/guests.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "guests.xlsx", up.Name)
	assert.Equal(t, []byte("PK-s3"), up.Data)

	assert.Equal(t, "imports", fake.bucket)
	assert.Equal(t, "2025/guests.xlsx", fake.key)

	assert.Equal(t, "eu-north-1", seen.Region)
	assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(seen.BaseEndpoint))
	assert.True(t, seen.UsePathStyle)

	creds, err := seen.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "minio", creds.AccessKeyID)
	assert.Equal(t, "minio123", creds.SecretAccessKey)
}

func TestOpen_S3Errors(t *testing.T) {
	fake := &fakeS3{err: errors.New("NoSuchKey")}
	stubS3(t, fake)
	o := NewOpener(S3Settings{}, nil)

	_, err := o.Open(context.Background(), "s3://bucket-only")
	assert.ErrorIs(t, err, ErrBadReference)

	_, err = o.Open(context.Background(), "s3://imports/guests.xlsx")
	assert.ErrorContains(t, err, "NoSuchKey")

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}
	_, err = o.Open(context.Background(), "s3://imports/guests.xlsx")
	assert.ErrorContains(t, err, "aws config")
}
