package s3

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/strintern/blobstore"
)

type fakeS3 struct {
	mu        sync.Mutex
	objects   map[string][]byte
	checksums map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, checksums: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.checksums[aws.ToString(in.Key)] = aws.ToString(in.ChecksumCRC32C)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) UploadPart(context.Context, *s3.UploadPartInput, ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	panic("multipart upload not expected")
}

func (f *fakeS3) CreateMultipartUpload(context.Context, *s3.CreateMultipartUploadInput, ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	panic("multipart upload not expected")
}

func (f *fakeS3) CompleteMultipartUpload(context.Context, *s3.CompleteMultipartUploadInput, ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	panic("multipart upload not expected")
}

func (f *fakeS3) AbortMultipartUpload(context.Context, *s3.AbortMultipartUploadInput, ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return &s3.AbortMultipartUploadOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	return out, nil
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	store := NewStore(fake, "bucket", WithPrefix("interners/"), WithRateLimit(1<<30))

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	ok, err := store.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "a.sint", []byte("alpha")))
	require.NoError(t, store.Put(ctx, "nested/b.sint", []byte("beta")))
	assert.Contains(t, fake.objects, "interners/a.sint")
	assert.Equal(t, computeCRC32C([]byte("alpha")), fake.checksums["interners/a.sint"])

	got, err := store.Get(ctx, "a.sint")
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(got))

	ok, err = store.Exists(ctx, "a.sint")
	require.NoError(t, err)
	assert.True(t, ok)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sint", "nested/b.sint"}, names)

	names, err = store.List(ctx, "nested/")
	require.NoError(t, err)
	assert.Equal(t, []string{"nested/b.sint"}, names)

	require.NoError(t, store.Delete(ctx, "a.sint"))
	_, err = store.Get(ctx, "a.sint")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	assert.ErrorIs(t, store.Put(ctx, "../x", nil), blobstore.ErrInvalidName)
}

func TestComputeCRC32C(t *testing.T) {
	// CRC32C("123456789") = 0xe3069283
	assert.Equal(t, "4waSgw==", computeCRC32C([]byte("123456789")))
}

type fakeDDB struct {
	mu    sync.Mutex
	items map[string]map[uint64]string
	// raceOnce simulates another writer committing between Query and PutItem.
	raceOnce bool
}

func newFakeDDB() *fakeDDB {
	return &fakeDDB{items: map[string]map[uint64]string{}}
}

func (f *fakeDDB) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uri := in.Item["base_uri"].(*ddbtypes.AttributeValueMemberS).Value
	version, _ := strconv.ParseUint(in.Item["version"].(*ddbtypes.AttributeValueMemberN).Value, 10, 64)
	name := in.Item["snapshot_name"].(*ddbtypes.AttributeValueMemberS).Value

	if f.items[uri] == nil {
		f.items[uri] = map[uint64]string{}
	}
	if f.raceOnce {
		f.raceOnce = false
		f.items[uri][version] = "other-writer"
	}
	if _, exists := f.items[uri][version]; exists {
		return nil, &ddbtypes.ConditionalCheckFailedException{}
	}
	f.items[uri][version] = name
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDDB) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uri := in.ExpressionAttributeValues[":uri"].(*ddbtypes.AttributeValueMemberS).Value
	var latest uint64
	for v := range f.items[uri] {
		latest = max(latest, v)
	}
	if latest == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	return &dynamodb.QueryOutput{Items: []map[string]ddbtypes.AttributeValue{{
		"base_uri":      &ddbtypes.AttributeValueMemberS{Value: uri},
		"version":       &ddbtypes.AttributeValueMemberN{Value: strconv.FormatUint(latest, 10)},
		"snapshot_name": &ddbtypes.AttributeValueMemberS{Value: f.items[uri][latest]},
	}}}, nil
}

func TestCommitStore(t *testing.T) {
	ctx := context.Background()
	ddb := newFakeDDB()
	store := NewCommitStore(NewStore(newFakeS3(), "bucket"), ddb, "commits", "s3://bucket")

	_, err := blobstore.Current(ctx, store)
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "v1.sint", []byte("one")))
	require.NoError(t, blobstore.Commit(ctx, store, "v1.sint"))
	require.NoError(t, store.Put(ctx, blobstore.CurrentName, []byte("v2.sint")))

	current, err := blobstore.Current(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, "v2.sint", current)

	raw, err := store.Get(ctx, blobstore.CurrentName)
	require.NoError(t, err)
	assert.Equal(t, "v2.sint", string(raw))

	version, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)

	data, err := store.Get(ctx, "v1.sint")
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	ddb.raceOnce = true
	assert.ErrorIs(t, store.Commit(ctx, "v3.sint"), ErrConcurrentModification)
}
