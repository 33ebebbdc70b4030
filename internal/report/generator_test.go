package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-insight/internal/llm"
	"github.com/jonathan/company-insight/internal/registry"
)

// fakeClient captures completion requests and returns a canned response.
type fakeClient struct {
	calls    int
	lastReq  llm.Request
	response *llm.Response
	err      error
}

func (f *fakeClient) Complete(_ context.Context, req llm.Request) (*llm.Response, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func TestGenerate_Success(t *testing.T) {
	fake := &fakeClient{
		response: &llm.Response{Content: "### 企业速览\n测试报告", Model: "deepseek-chat", FinishReason: "stop"},
	}
	g := NewGenerator(fake)

	record := registry.Record{"name": "测试科技有限公司", "regStatus": "在业"}
	got, err := g.Generate(context.Background(), record)
	require.NoError(t, err)

	assert.Equal(t, "### 企业速览\n测试报告", got)
	assert.Equal(t, 1, fake.calls, "exactly one completion request per generation")

	req := fake.lastReq
	assert.Equal(t, DefaultModel, req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, llm.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, llm.RoleUser, req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "测试科技有限公司")

	require.NotNil(t, req.Temperature)
	assert.Equal(t, 0.5, *req.Temperature)
	assert.Equal(t, 1500, req.MaxTokens)
}

func TestGenerate_ModelOverride(t *testing.T) {
	fake := &fakeClient{response: &llm.Response{Content: "ok"}}
	g := NewGenerator(fake, WithModel("deepseek-reasoner"))

	_, err := g.Generate(context.Background(), registry.Record{"name": "x"})
	require.NoError(t, err)

	assert.Equal(t, "deepseek-reasoner", fake.lastReq.Model)
}

func TestGenerate_ClientErrorsPassThrough(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "missing key", err: llm.ErrMissingAPIKey},
		{name: "transport", err: &llm.TransportError{Cause: errors.New("dial tcp: refused")}},
		{name: "provider", err: &llm.ProviderError{StatusCode: 429, Body: "rate limited"}},
		{name: "malformed", err: &llm.MalformedResponseError{Message: "no choices in response"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeClient{err: tt.err}
			g := NewGenerator(fake)

			got, err := g.Generate(context.Background(), registry.Record{"name": "x"})
			assert.Empty(t, got)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
