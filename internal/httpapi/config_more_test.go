package httpapi

import (
	"testing"
	"time"
)

func TestSetStatusTimeout_NormalizesNegativeToZero(t *testing.T) {
	defer SetStatusTimeout(DefaultStatusTimeout)
	SetStatusTimeout(-time.Second)
	if statusTimeout != 0 {
		t.Fatalf("expected 0, got %v", statusTimeout)
	}
	SetStatusTimeout(3 * time.Second)
	if statusTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %v", statusTimeout)
	}
}

func TestSetCORSOptions_CopiesSlices(t *testing.T) {
	defer SetCORSOptions(false, nil, nil, nil)
	origins := []string{"http://a"}
	SetCORSOptions(true, origins, nil, nil)
	origins[0] = "http://b"
	if corsAllowedOrigins[0] != "http://a" {
		t.Fatalf("origins aliased: %v", corsAllowedOrigins)
	}
}
