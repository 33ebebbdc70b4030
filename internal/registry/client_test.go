package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client pointed at a test server.
func newTestClient(ts *httptest.Server, token string) *Client {
	return NewClient(ts.URL, token, WithHTTPClient(ts.Client()))
}

func TestLookup_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "测试科技有限公司", r.URL.Query().Get("keyword"))
		assert.Equal(t, "test-token-12345", r.Header.Get("Authorization"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error_code":0,"result":{"name":"测试科技有限公司","regStatus":"在业"}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, "test-token-12345")
	record, err := c.Lookup(context.Background(), "测试科技有限公司")
	require.NoError(t, err)

	assert.Equal(t, Record{"name": "测试科技有限公司", "regStatus": "在业"}, record)
}

func TestLookup_KeywordEncoded(t *testing.T) {
	var gotKeyword string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKeyword = r.URL.Query().Get("keyword")
		_, _ = w.Write([]byte(`{"error_code":0,"result":{"name":"x"}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, "token")
	_, err := c.Lookup(context.Background(), "Foo & Bar 股份有限公司")
	require.NoError(t, err)

	assert.Equal(t, "Foo & Bar 股份有限公司", gotKeyword)
}

func TestLookup_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error_code":1,"reason":"未查询到匹配结果"}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, "token")
	record, err := c.Lookup(context.Background(), "不存在的公司")
	require.Error(t, err)

	assert.Nil(t, record)
	assert.True(t, IsKind(err, KindProvider))
	assert.Contains(t, err.Error(), "未查询到匹配结果")
}

func TestLookup_ProviderErrorWithoutReason(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error_code":300001}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, "token")
	_, err := c.Lookup(context.Background(), "某公司")
	require.Error(t, err)

	assert.True(t, IsKind(err, KindProvider))
	assert.Contains(t, err.Error(), "unknown error")
}

func TestLookup_EmptyResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error_code":0,"result":{}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, "token")
	_, err := c.Lookup(context.Background(), "某公司")
	require.Error(t, err)

	assert.True(t, IsKind(err, KindNotFound))
}

func TestLookup_AbsentResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error_code":0}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, "token")
	_, err := c.Lookup(context.Background(), "某公司")
	require.Error(t, err)

	assert.True(t, IsKind(err, KindNotFound))
}

func TestLookup_MalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer ts.Close()

	c := newTestClient(ts, "token")
	_, err := c.Lookup(context.Background(), "某公司")
	require.Error(t, err)

	assert.True(t, IsKind(err, KindDecode))
}

func TestLookup_WrongEnvelopeShape(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error_code":"0","result":{"name":"x"}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, "token")
	_, err := c.Lookup(context.Background(), "某公司")
	require.Error(t, err)

	assert.True(t, IsKind(err, KindDecode))
}

func TestLookup_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := newTestClient(ts, "token")
	_, err := c.Lookup(context.Background(), "某公司")
	require.Error(t, err)

	assert.True(t, IsKind(err, KindNetwork))
}

func TestLookup_ConnectionRefused(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	ts.Close()

	c := NewClient(ts.URL, "token")
	_, err := c.Lookup(context.Background(), "某公司")
	require.Error(t, err)

	assert.True(t, IsKind(err, KindNetwork))
}

func TestLookup_MissingToken(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"error_code":0,"result":{"name":"x"}}`))
	}))
	defer ts.Close()

	c := newTestClient(ts, "")
	_, err := c.Lookup(context.Background(), "某公司")
	require.Error(t, err)

	assert.True(t, IsKind(err, KindConfig))
	assert.Equal(t, int32(0), calls.Load(), "no outbound call should be issued without a token")
}

func TestTruncateSecret(t *testing.T) {
	assert.Equal(t, "****", truncateSecret("short"))
	assert.Equal(t, "abcd...wxyz", truncateSecret("abcdefghijklmnopqrstuvwxyz"))
}
