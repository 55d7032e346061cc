package n8n

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"job_id":"abc","user_id":"def"}`)
	now := time.Unix(1700000000, 0)

	header := Sign(secret, now, body)
	if !strings.HasPrefix(header, "t=1700000000,v1=") {
		t.Fatalf("unexpected header shape: %q", header)
	}

	if err := Verify(secret, header, body, now, DefaultVerifyWindow); err != nil {
		t.Fatalf("Verify failed on round trip: %v", err)
	}
}

func TestVerifyTamperedBody(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"question":"pourquoi"}`)
	now := time.Now()

	header := Sign(secret, now, body)
	tampered := []byte(`{"question":"comment"}`)
	if err := Verify(secret, header, tampered, now, DefaultVerifyWindow); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("want ErrSignatureMismatch, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	body := []byte(`{}`)
	now := time.Now()
	header := Sign("secret-a", now, body)
	if err := Verify("secret-b", header, body, now, DefaultVerifyWindow); !errors.Is(err, ErrSignatureMismatch) {
		t.Fatalf("want ErrSignatureMismatch, got %v", err)
	}
}

func TestVerifyTimestampWindow(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{}`)
	signedAt := time.Unix(1700000000, 0)
	header := Sign(secret, signedAt, body)

	cases := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "inside_window", now: signedAt.Add(299 * time.Second)},
		{name: "at_window_edge", now: signedAt.Add(300 * time.Second)},
		{name: "past_window", now: signedAt.Add(301 * time.Second), wantErr: ErrSignatureExpired},
		{name: "future_skew_inside", now: signedAt.Add(-200 * time.Second)},
		{name: "future_skew_past", now: signedAt.Add(-301 * time.Second), wantErr: ErrSignatureExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Verify(secret, header, body, tc.now, DefaultVerifyWindow)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("want nil, got %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestVerifyMalformedHeaders(t *testing.T) {
	body := []byte(`{}`)
	now := time.Now()
	for _, header := range []string{
		"",
		"v1=deadbeef",
		fmt.Sprintf("t=%d", now.Unix()),
		"t=notanumber,v1=deadbeef",
	} {
		if err := Verify("s", header, body, now, DefaultVerifyWindow); !errors.Is(err, ErrSignatureMalformed) {
			t.Fatalf("header %q: want ErrSignatureMalformed, got %v", header, err)
		}
	}
}
