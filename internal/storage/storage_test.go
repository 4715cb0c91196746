package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "cut.jpg", want: "cut.jpg"},
		{in: "../../etc/passwd", want: "passwd"},
		{in: `C:\Users\me\cut.png`, want: "cut.png"},
		{in: "..", want: ""},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root)
	require.NoError(t, err)
	ctx := context.Background()

	stored, err := store.Save(ctx, "3_7_../fade.jpg", strings.NewReader("jpeg bytes"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "static/barber_images/fade.jpg", stored)

	data, err := os.ReadFile(filepath.Join(root, PhotoDir, "fade.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	listed, err := store.List(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []string{"static/barber_images/fade.jpg"}, listed)

	require.NoError(t, store.Delete(ctx, stored))
	_, err = os.Stat(filepath.Join(root, PhotoDir, "fade.jpg"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, stored), "deleting twice is a no-op")
	assert.Error(t, store.Delete(ctx, "/etc/passwd"))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("client went away") }

func TestLocalStorage_SaveFailureLeavesNoFile(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStorage(root)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "broken.jpg", failingReader{}, "")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, PhotoDir, "broken.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}

type fakeS3 struct {
	puts    map[string]string
	deletes []string
	putErr  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, _ := io.ReadAll(in.Body)
	f.puts[aws.ToString(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_SaveAndDelete(t *testing.T) {
	client := &fakeS3{puts: map[string]string{}}
	store := NewS3StorageWithClient(client, "crimcuts", "us-east-2", "")
	ctx := context.Background()

	url, err := store.Save(ctx, "1_2_cut.jpg", strings.NewReader("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://crimcuts.s3.us-east-2.amazonaws.com/barber_images/1_2_cut.jpg", url)
	assert.Equal(t, "img", client.puts["barber_images/1_2_cut.jpg"])

	require.NoError(t, store.Delete(ctx, url))
	assert.Equal(t, []string{"barber_images/1_2_cut.jpg"}, client.deletes)
}

func TestS3Storage_BaseURLAndErrors(t *testing.T) {
	client := &fakeS3{puts: map[string]string{}, putErr: errors.New("access denied")}
	store := NewS3StorageWithClient(client, "crimcuts", "us-east-2", "https://cdn.example.com/")

	assert.Equal(t, "https://cdn.example.com/barber_images/x.jpg", store.URL("barber_images/x.jpg"))

	_, err := store.Save(context.Background(), "x.jpg", strings.NewReader("img"), "")
	assert.Error(t, err)

	assert.Error(t, store.Delete(context.Background(), "https://elsewhere.example.com/x.jpg"))
}
