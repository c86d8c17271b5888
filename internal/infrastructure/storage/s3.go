package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/zhihern080614/mochibay-backend/internal/application/ports"
	"github.com/zhihern080614/mochibay-backend/pkg/config"
)

var _ ports.ReceiptStore = (*S3Bucket)(nil)

// objectPutter es el subconjunto del cliente S3 que se usa (permite un fake en tests).
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Bucket guarda comprobantes en un bucket compatible con S3 (AWS, MinIO, R2, Spaces).
type S3Bucket struct {
	client  objectPutter
	bucket  string
	baseURL string
}

// NewS3Bucket crea el cliente con credenciales estáticas si se proporcionan, o la cadena por defecto de AWS.
func NewS3Bucket(ctx context.Context, cfg config.S3Config) (*S3Bucket, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage/s3: S3_BUCKET no configurado")
	}
	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(cfg.Region)}
	if cfg.Key != "" && cfg.Secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Key, cfg.Secret, ""),
		))
	}
	awsConf, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage/s3: load config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO
		})
	}
	baseURL := strings.TrimRight(cfg.URL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return newS3Bucket(s3.NewFromConfig(awsConf, clientOpts...), cfg.Bucket, baseURL), nil
}

func newS3Bucket(client objectPutter, bucket, baseURL string) *S3Bucket {
	return &S3Bucket{client: client, bucket: bucket, baseURL: baseURL}
}

// Save sube el objeto a receipts/<name> y devuelve su URL pública.
func (b *S3Bucket) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	key := path.Join(ReceiptsDir, path.Base(name))
	// el SDK necesita un body con Seek para firmar sobre HTTP plano (MinIO); el tamaño ya viene acotado
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("storage/s3: read: %w", err)
	}
	in := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		in.ContentType = aws.String(ct)
	}
	if _, err := b.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("storage/s3: put %s: %w", key, err)
	}
	return b.baseURL + "/" + key, nil
}

// Remove borra receipts/<name> del bucket.
func (b *S3Bucket) Remove(ctx context.Context, name string) error {
	key := path.Join(ReceiptsDir, path.Base(name))
	if _, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("storage/s3: delete %s: %w", key, err)
	}
	return nil
}
