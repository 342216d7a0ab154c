package wsproto

import (
	"strings"
	"testing"
)

func TestValidateHandshakeAcceptsShortName(t *testing.T) {
	req := HandshakeRequest{ProtocolVersion: 1, ClientName: "indexer-client", ClientVersion: 3}
	if err := validateHandshake(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateHandshakeRejectsOversizedName(t *testing.T) {
	req := HandshakeRequest{ProtocolVersion: 1, ClientName: strings.Repeat("x", 65)}
	if err := validateHandshake(req); err == nil {
		t.Fatal("expected error for oversized client name")
	}
}

func TestValidateHandshakeAcceptsExactBoundary(t *testing.T) {
	req := HandshakeRequest{ProtocolVersion: 1, ClientName: strings.Repeat("x", 64)}
	if err := validateHandshake(req); err != nil {
		t.Fatalf("unexpected error at exact boundary: %v", err)
	}
}
