package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testS3Config() *S3Config {
	client := s3.New(s3.Options{
		Region: "ap-northeast-2",
		Credentials: aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
			return aws.Credentials{AccessKeyID: "AKIDEXAMPLE", SecretAccessKey: "secret"}, nil
		}),
	})
	return &S3Config{Client: client, BucketName: "fridgechef-images", URLTTL: 10 * time.Minute}
}

func TestResolveImageURLPassThrough(t *testing.T) {
	s := testS3Config()
	for _, ref := range []string{"", "http://cdn.test/a.jpg", "https://cdn.test/b.jpg"} {
		got, err := s.ResolveImageURL(context.Background(), ref)
		require.NoError(t, err)
		assert.Equal(t, ref, got)
	}
}

func TestResolveImageURLPresignsObjectKeys(t *testing.T) {
	s := testS3Config()
	got, err := s.ResolveImageURL(context.Background(), "/recipes/kimchi-jjigae.jpg")
	require.NoError(t, err)
	assert.Contains(t, got, "fridgechef-images")
	assert.Contains(t, got, "recipes/kimchi-jjigae.jpg")
	assert.Contains(t, got, "X-Amz-Signature=")
	assert.Contains(t, got, "X-Amz-Expires=600")
}
