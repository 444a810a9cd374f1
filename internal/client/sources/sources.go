// Package sources loads guest spreadsheets for bulk import from a local path,
// an http(s) URL or an s3:// object.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/wedlink-admin/internal/client/models"
	"github.com/dmitrijs2005/wedlink-admin/internal/filex"
	"github.com/dmitrijs2005/wedlink-admin/internal/netx"
)

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
	download = netx.Download

	maxFileSize int64 = netx.MaxDownloadSize
)

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var ErrBadReference = errors.New("bad import reference")

// S3Settings configures s3:// access. Empty fields fall back to the AWS
// default chain; BaseEndpoint points the client at MinIO or another
// S3-compatible store.
type S3Settings struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

type Opener struct {
	s3   S3Settings
	http *http.Client
}

func NewOpener(s3 S3Settings, hc *http.Client) *Opener {
	return &Opener{s3: s3, http: hc}
}

// Open resolves ref to an upload.
func (o *Opener) Open(ctx context.Context, ref string) (*models.Upload, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadReference)
	}

	switch {
	case strings.HasPrefix(ref, "s3://"):
		return o.openS3(ctx, ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data, name, err := download(ctx, o.http, ref)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", ref, err)
		}
		return &models.Upload{Name: name, Data: data}, nil
	default:
		return openFile(ref)
	}
}

func openFile(ref string) (*models.Upload, error) {
	p, err := filex.ExpandHome(ref)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("read %s: file exceeds %d bytes", p, maxFileSize)
	}

	data, err := readCapped(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return &models.Upload{Name: p, Data: data}, nil
}

// readCapped reads r to the end and fails past maxFileSize bytes.
func readCapped(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxFileSize {
		return nil, fmt.Errorf("file exceeds %d bytes", maxFileSize)
	}
	return data, nil
}

func parseS3(ref string) (bucket, key string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrBadReference, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: want s3://bucket/key, got %s", ErrBadReference, ref)
	}
	return bucket, key, nil
}

func (o *Opener) s3Client(ctx context.Context) (objectGetter, error) {
	var opts []func(*config.LoadOptions) error
	if o.s3.Region != "" {
		opts = append(opts, config.WithRegion(o.s3.Region))
	}
	if o.s3.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.s3.AccessKey, o.s3.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.s3.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.s3.BaseEndpoint)
			so.UsePathStyle = true
		}
	}), nil
}

func (o *Opener) openS3(ctx context.Context, ref string) (*models.Upload, error) {
	bucket, key, err := parseS3(ref)
	if err != nil {
		return nil, err
	}

	c, err := o.s3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := c.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", ref, err)
	}
	defer out.Body.Close()

	data, err := readCapped(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return &models.Upload{Name: path.Base(key), Data: data}, nil
}
