package vectorstore

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

// TestNewQdrantStore_URLParsing tests URL parsing logic without creating a real client.
// This avoids connection warnings in unit tests.
func TestNewQdrantStore_URLParsing(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantHost string
		wantPort int
	}{
		{
			name:     "valid URL",
			urlStr:   "http://localhost:6333",
			wantHost: "localhost",
			wantPort: 6334, // gRPC port is HTTP port + 1
		},
		{
			name:     "URL with custom port",
			urlStr:   "http://localhost:9000",
			wantHost: "localhost",
			wantPort: 9001,
		},
		{
			name:     "URL without port",
			urlStr:   "http://localhost",
			wantHost: "localhost",
			wantPort: 6334, // Default
		},
		{
			name:     "URL without hostname",
			urlStr:   "http://:6333",
			wantHost: "localhost", // Defaults to localhost
			wantPort: 6334,
		},
		{
			name:     "remote host",
			urlStr:   "http://qdrant.internal:6333",
			wantHost: "qdrant.internal",
			wantPort: 6334,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsedURL, err := url.Parse(tt.urlStr)
			if err != nil {
				t.Fatalf("Failed to parse URL: %v", err)
			}

			// Test the URL parsing logic that NewQdrantStore uses
			host := parsedURL.Hostname()
			if host == "" {
				host = "localhost"
			}

			port := 6334 // Default gRPC port
			if parsedURL.Port() != "" {
				httpPort, err := strconv.Atoi(parsedURL.Port())
				if err == nil {
					port = httpPort + 1
				}
			}

			if host != tt.wantHost {
				t.Errorf("Host = %v, want %v", host, tt.wantHost)
			}
			if port != tt.wantPort {
				t.Errorf("Port = %v, want %v", port, tt.wantPort)
			}
		})
	}
}

// TestNewQdrantStore_InvalidURL tests that invalid URLs return errors.
func TestNewQdrantStore_InvalidURL(t *testing.T) {
	_, err := NewQdrantStore("://invalid")
	if err == nil {
		t.Error("NewQdrantStore() with invalid URL should return error")
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	payload := map[string]*qdrant.Value{
		"title":   {Kind: &qdrant.Value_StringValue{StringValue: "Understanding Ayurvedic Principles"}},
		"indexed": {Kind: &qdrant.Value_BoolValue{BoolValue: true}},
		"chunks":  {Kind: &qdrant.Value_IntegerValue{IntegerValue: 3}},
		"score":   {Kind: &qdrant.Value_DoubleValue{DoubleValue: 0.87}},
		"nil":     nil,
	}

	got := convertPayloadToMap(payload)

	if got["title"] != "Understanding Ayurvedic Principles" {
		t.Errorf("title = %v", got["title"])
	}
	if got["indexed"] != true {
		t.Errorf("indexed = %v", got["indexed"])
	}
	if got["chunks"] != int64(3) {
		t.Errorf("chunks = %v", got["chunks"])
	}
	if got["score"] != 0.87 {
		t.Errorf("score = %v", got["score"])
	}
	if _, ok := got["nil"]; ok {
		t.Error("nil values should be skipped")
	}
}

func TestConvertValue_Nested(t *testing.T) {
	value := &qdrant.Value{Kind: &qdrant.Value_ListValue{
		ListValue: &qdrant.ListValue{Values: []*qdrant.Value{
			{Kind: &qdrant.Value_StringValue{StringValue: "vata"}},
			{Kind: &qdrant.Value_StringValue{StringValue: "pitta"}},
		}},
	}}

	got, ok := convertValue(value).([]any)
	if !ok {
		t.Fatalf("convertValue() = %T, want []any", convertValue(value))
	}
	if len(got) != 2 || got[0] != "vata" || got[1] != "pitta" {
		t.Errorf("convertValue() = %v", got)
	}
}
