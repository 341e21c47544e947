package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/leadscope/internal/domain/companies"
)

const objectBody = "company,industry,size,tech_stack,pain_points,contact_name,contact_email,source\n" +
	"CloudTech,SaaS,50-200,\"AWS, React\",Scaling,Jane,jane@cloudtech.io,LinkedIn\n"

const noSuchKey = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message><Key>missing.csv</Key><BucketName>leads</BucketName><Resource>/leads/missing.csv</Resource><RequestId>1</RequestId><HostId>1</HostId></Error>`

// fakeS3 serves one object at /leads/companies.csv and NoSuchKey for the rest.
func fakeS3(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/leads/companies.csv" {
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Length", strconv.Itoa(len(objectBody)))
			w.Header().Set("ETag", `"0123456789abcdef"`)
			w.Header().Set("Last-Modified", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat))
			w.WriteHeader(http.StatusOK)
			if r.Method != http.MethodHead {
				fmt.Fprint(w, objectBody)
			}
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		if r.Method != http.MethodHead {
			fmt.Fprint(w, noSuchKey)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestStore(t *testing.T, object string) *Store {
	t.Helper()
	srv := fakeS3(t)
	st, err := New(strings.TrimPrefix(srv.URL, "http://"), "us-east-1", "leads", object, "key", "secret", false)
	require.NoError(t, err)
	return st
}

func TestStore_Load(t *testing.T) {
	t.Parallel()

	st := newTestStore(t, "companies.csv")
	ds, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "CloudTech", ds.Records[0].Name)
	assert.Equal(t, "AWS, React", ds.Records[0].TechStack)
	assert.Equal(t, "s3://leads/companies.csv", st.Location())
}

func TestStore_Load_MissingObject(t *testing.T) {
	t.Parallel()

	st := newTestStore(t, "missing.csv")
	_, err := st.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNew_RequiresBucketAndObject(t *testing.T) {
	t.Parallel()

	_, err := New("localhost:9000", "", "leads", "", "k", "s", false)
	assert.Error(t, err)
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	assert.True(t, isNotFound(fmt.Errorf("reading header: %w", minio.ErrorResponse{Code: "NoSuchBucket"})))
	assert.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
	assert.False(t, isNotFound(fmt.Errorf("boom")))
}
