package llm

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// generateMethod is the unary RPC served by the model-serving sidecar this
// client talks to. The wire envelope is a google.protobuf.Struct rather than
// a hand-authored message type: structpb.Struct is a stable, already-compiled
// type from google.golang.org/protobuf, so the sidecar's wire contract can
// evolve without a local codegen step.
const generateMethod = "/rfpagent.llm.LLMService/Generate"

// GRPCClient is the concrete LLM backend: a gRPC wrapper around a
// model-serving sidecar.
type GRPCClient struct {
	conn        *grpc.ClientConn
	model       string
	temperature float32
	maxTokens   int32
}

// NewGRPCClient dials addr and configures the model from the GEMINI_MODEL /
// GEMINI_MAX_TOKENS environment variables, defaulting temperature to temp.
func NewGRPCClient(addr string, temp float32) (*GRPCClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to LLM service: %w", err)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	maxTokens := int32(2048)
	if maxStr := os.Getenv("GEMINI_MAX_TOKENS"); maxStr != "" {
		if parsed, err := strconv.ParseInt(maxStr, 10, 32); err == nil {
			maxTokens = int32(parsed)
		}
	}

	slog.Info("llm grpc client configured", "model", model, "temperature", temp, "max_tokens", maxTokens)

	return &GRPCClient{conn: conn, model: model, temperature: temp, maxTokens: maxTokens}, nil
}

// Close releases the underlying gRPC connection.
func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// Generate sends messages as a structpb.Struct and unmarshals the reply's
// "content" field.
func (c *GRPCClient) Generate(ctx context.Context, messages []Message) (*Response, error) {
	msgList := make([]interface{}, 0, len(messages))
	for _, m := range messages {
		msgList = append(msgList, map[string]interface{}{
			"role":    string(m.Role),
			"content": m.Content,
		})
	}

	req, err := structpb.NewStruct(map[string]interface{}{
		"model":       c.model,
		"temperature": math.Round(float64(c.temperature)*100) / 100,
		"max_tokens":  float64(c.maxTokens),
		"messages":    msgList,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build request envelope: %w", err)
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, generateMethod, req, resp); err != nil {
		return nil, fmt.Errorf("llm generate rpc failed: %w", err)
	}

	content := resp.GetFields()["content"].GetStringValue()
	return &Response{Content: content}, nil
}

// FactoryOverGRPC is a Factory that memoizes one GRPCClient per rounded
// temperature, keyed by construction, never by response.
type FactoryOverGRPC struct {
	addr string

	mu      sync.Mutex
	clients map[float32]*GRPCClient
}

// NewFactoryOverGRPC returns a Factory dialing addr lazily per temperature.
func NewFactoryOverGRPC(addr string) *FactoryOverGRPC {
	return &FactoryOverGRPC{addr: addr, clients: make(map[float32]*GRPCClient)}
}

// ForTemperature returns the cached client for temperature, dialing a new
// one on first use. Temperature is rounded to two decimal places before
// being used as the cache key so near-identical floats share an instance.
func (f *FactoryOverGRPC) ForTemperature(temperature float32) (LLM, error) {
	key := float32(math.Round(float64(temperature)*100) / 100)

	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.clients[key]; ok {
		return c, nil
	}

	c, err := NewGRPCClient(f.addr, key)
	if err != nil {
		return nil, err
	}
	f.clients[key] = c
	return c, nil
}

// Close tears down every cached client.
func (f *FactoryOverGRPC) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var firstErr error
	for _, c := range f.clients {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
