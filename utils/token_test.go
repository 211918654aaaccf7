package utils

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	userID := primitive.NewObjectID()
	token, err := GenerateToken(userID, "farmer", 60)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	gotID, role, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if gotID != userID {
		t.Errorf("Expected user id %s, got %s", userID.Hex(), gotID.Hex())
	}
	if role != "farmer" {
		t.Errorf("Expected role farmer, got %s", role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateToken(primitive.NewObjectID(), "farmer", -1)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, _, err := ValidateToken(token); err == nil {
		t.Errorf("Expected expired token to be rejected")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	InitJWT("test-secret")

	token, _ := GenerateToken(primitive.NewObjectID(), "farmer", 60)

	InitJWT("other-secret")
	if _, _, err := ValidateToken(token); err == nil {
		t.Errorf("Expected token signed with another secret to be rejected")
	}
}
