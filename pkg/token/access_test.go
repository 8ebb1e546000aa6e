package token

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")
	tok, err := GenerateAccessToken("alice", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := VerifyToken(tok, secret)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Operator != "alice" || claims.Subject != "alice" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestVerifyTokenRejects(t *testing.T) {
	secret := []byte("secret")
	expired, err := GenerateAccessToken("alice", secret, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	valid, err := GenerateAccessToken("alice", secret, time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{"expired", expired, secret},
		{"wrong secret", valid, []byte("other")},
		{"garbage", "not.a.token", secret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyToken(tt.token, tt.secret); err == nil {
				t.Error("token accepted")
			}
		})
	}

	if _, err := GenerateAccessToken("", secret, time.Hour); err == nil {
		t.Error("empty operator accepted")
	}
}
