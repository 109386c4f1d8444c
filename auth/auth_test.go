// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/memberscorner/models"
)

const testSecret = "test-session-secret"

func memberSession() models.Session {
	return models.Session{Profile: &models.Profile{Name: "Alice", MemberID: "m-1"}}
}

func TestSignSession(t *testing.T) {
	tests := []struct {
		name string
		sess models.Session
	}{
		{"anonymous", models.Session{}},
		{"member", memberSession()},
		{"officer", models.Session{Profile: &models.Profile{Name: "Olga", MemberID: "m-9"}, IsOfficer: true, IsCommitteePlus: true}},
		{"expired", models.Session{Profile: &models.Profile{Name: "Eve", MemberID: "m-3"}, IsExpired: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := SignSession(tt.sess, testSecret)

			if sig == "" {
				t.Error("SignSession() returned empty string")
			}

			// Should be deterministic
			if sig != SignSession(tt.sess, testSecret) {
				t.Error("SignSession() is not deterministic")
			}

			// Should be URL-safe (no padding)
			if strings.Contains(sig, "=") {
				t.Error("SignSession() contains padding characters")
			}

			if sig == SignSession(tt.sess, "other-secret") {
				t.Error("SignSession() ignored the secret")
			}
		})
	}

	committee := memberSession()
	committee.IsCommitteePlus = true
	if SignSession(memberSession(), testSecret) == SignSession(committee, testSecret) {
		t.Error("SignSession() produced same signature for different roles")
	}
}

func TestValidateSignature(t *testing.T) {
	sess := memberSession()
	valid := SignSession(sess, testSecret)

	tampered := memberSession()
	tampered.IsCommitteePlus = true

	tests := []struct {
		name      string
		sess      models.Session
		signature string
		secret    string
		wantErr   bool
	}{
		{"valid signature", sess, valid, testSecret, false},
		{"wrong signature", sess, "wrong", testSecret, true},
		{"tampered session", tampered, valid, testSecret, true},
		{"wrong secret", sess, valid, "different-secret", true},
		{"empty signature", sess, "", testSecret, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignature(tt.sess, tt.signature, tt.secret)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSignature() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidSignature {
				t.Errorf("ValidateSignature() error = %v, want %v", err, ErrInvalidSignature)
			}
		})
	}
}

func TestSessionFromRequest_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		sess models.Session
	}{
		{"anonymous", models.Session{}},
		{"member", memberSession()},
		{"committee", models.Session{Profile: &models.Profile{Name: "Cal", MemberID: "m-2"}, IsCommitteePlus: true}},
		{"officer", models.Session{Profile: &models.Profile{Name: "Olga", MemberID: "m-9"}, IsOfficer: true, IsCommitteePlus: true}},
		{"expired", models.Session{Profile: &models.Profile{Name: "Eve", MemberID: "m-3"}, IsExpired: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/corner", nil)
			SetSessionHeaders(req.Header, tt.sess, testSecret)

			got, err := SessionFromRequest(req, testSecret)
			if err != nil {
				t.Fatalf("SessionFromRequest() error = %v", err)
			}

			if got.MemberID() != tt.sess.MemberID() {
				t.Errorf("member id = %q, want %q", got.MemberID(), tt.sess.MemberID())
			}
			if got.IsCommitteePlus != tt.sess.IsCommitteePlus {
				t.Errorf("IsCommitteePlus = %v, want %v", got.IsCommitteePlus, tt.sess.IsCommitteePlus)
			}
			if got.IsOfficer != tt.sess.IsOfficer {
				t.Errorf("IsOfficer = %v, want %v", got.IsOfficer, tt.sess.IsOfficer)
			}
			if got.IsExpired != tt.sess.IsExpired {
				t.Errorf("IsExpired = %v, want %v", got.IsExpired, tt.sess.IsExpired)
			}
		})
	}
}

func TestSessionFromRequest_OfficerImpliesCommittee(t *testing.T) {
	sess := models.Session{Profile: &models.Profile{Name: "Olga", MemberID: "m-9"}, IsOfficer: true, IsCommitteePlus: true}

	req := httptest.NewRequest("GET", "/corner", nil)
	req.Header.Set(HeaderMemberID, "m-9")
	req.Header.Set(HeaderName, "Olga")
	req.Header.Set(HeaderRoles, " Officer , committee")
	req.Header.Set(HeaderSignature, SignSession(sess, testSecret))

	got, err := SessionFromRequest(req, testSecret)
	if err != nil {
		t.Fatalf("SessionFromRequest() error = %v", err)
	}
	if !got.IsOfficer || !got.IsCommitteePlus {
		t.Errorf("officer session = %+v, want officer and committee", got)
	}
}

func TestSessionFromRequest_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(h map[string]string)
		wantErr error
	}{
		{
			name:    "missing signature",
			mutate:  func(h map[string]string) { delete(h, HeaderSignature) },
			wantErr: ErrMissingSignature,
		},
		{
			name:    "escalated role",
			mutate:  func(h map[string]string) { h[HeaderRoles] = "officer" },
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "cleared expiry",
			mutate:  func(h map[string]string) { h[HeaderExpired] = "false" },
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "garbage expiry",
			mutate:  func(h map[string]string) { h[HeaderExpired] = "soon" },
			wantErr: ErrInvalidSession,
		},
	}

	expired := models.Session{Profile: &models.Profile{Name: "Eve", MemberID: "m-3"}, IsExpired: true}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{
				HeaderMemberID:  "m-3",
				HeaderName:      "Eve",
				HeaderExpired:   "true",
				HeaderSignature: SignSession(expired, testSecret),
			}
			tt.mutate(headers)

			req := httptest.NewRequest("GET", "/corner", nil)
			for k, v := range headers {
				req.Header.Set(k, v)
			}

			_, err := SessionFromRequest(req, testSecret)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SessionFromRequest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
