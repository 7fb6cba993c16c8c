package ps

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// stubS3 keeps objects in a map, enough to exercise the blob store paths.
type stubS3 struct {
	objects map[string][]byte
}

func newStubS3() *stubS3 {
	return &stubS3{objects: map[string][]byte{}}
}

func (s *stubS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := s.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (s *stubS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	s.objects[*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (s *stubS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(s.objects, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3BlobStoreRoundTrip(t *testing.T) {
	store := NewS3BlobStoreWithClient(newStubS3(), "diary", "database.json")

	if _, found, err := store.Load(); err != nil || found {
		t.Fatalf("expected missing object, found=%v err=%v", found, err)
	}

	payload := []byte(`{"water_entries":[]}`)
	if err := store.Save(payload); err != nil {
		t.Fatal(err)
	}

	data, found, err := store.Load()
	if err != nil || !found {
		t.Fatalf("expected object, found=%v err=%v", found, err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("expected %s, got %s", payload, data)
	}

	if err := store.Delete(); err != nil {
		t.Fatal(err)
	}
	if _, found, _ := store.Load(); found {
		t.Error("expected missing object after delete")
	}
}

func TestNewS3BlobStoreRequiresLocation(t *testing.T) {
	if _, err := NewS3BlobStore(context.Background(), S3Config{}); err == nil {
		t.Error("expected error for missing bucket and key")
	}
}
