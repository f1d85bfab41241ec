package util

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestErrorGuard_Panic(t *testing.T) {
	handler := ErrorGuard(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panic("boom")
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "boom")
}

func TestErrorGuard_Error(t *testing.T) {
	handler := ErrorGuard(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("mysql down")
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: mysql down", resultText(t, result))
}

func TestAdaptLegacyHandler(t *testing.T) {
	handler := AdaptLegacyHandler(func(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(StringArg(arguments, "name")), nil
	})

	var request mcp.CallToolRequest
	request.Params.Arguments = map[string]interface{}{"name": " Ada "}
	result, err := handler(context.Background(), request)

	require.NoError(t, err)
	assert.Equal(t, "Ada", resultText(t, result))
}

func TestStringSliceArg(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  []string
	}{
		{name: "json array", value: []interface{}{"a", 1.0, "b"}, want: []string{"a", "b"}},
		{name: "string slice", value: []string{"x"}, want: []string{"x"}},
		{name: "comma separated", value: "data mining, robotics", want: []string{"data mining", "robotics"}},
		{name: "blank", value: "  ", want: nil},
		{name: "missing", value: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]interface{}{}
			if tt.value != nil {
				args["v"] = tt.value
			}
			assert.Equal(t, tt.want, StringSliceArg(args, "v"))
		})
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{"a": 4.0, "b": "2010", "c": "x", "d": true}

	n, ok := IntArg(args, "a")
	assert.True(t, ok)
	assert.Equal(t, 4, n)

	n, ok = IntArg(args, "b")
	assert.True(t, ok)
	assert.Equal(t, 2010, n)

	_, ok = IntArg(args, "c")
	assert.False(t, ok)
	_, ok = IntArg(args, "d")
	assert.False(t, ok)
	_, ok = IntArg(args, "missing")
	assert.False(t, ok)
}
