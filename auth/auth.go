// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/danielhkuo/memberscorner/models"
)

// Session headers set by the host application's proxy
const (
	HeaderMemberID  = "X-Member-ID"
	HeaderName      = "X-Member-Name"
	HeaderRoles     = "X-Member-Roles"
	HeaderExpired   = "X-Member-Expired"
	HeaderSignature = "X-Session-Signature"
)

var (
	ErrMissingSignature = errors.New("missing session signature")
	ErrInvalidSignature = errors.New("invalid session signature")
	ErrInvalidSession   = errors.New("invalid session headers")
)

// SignSession creates the HMAC signature the proxy attaches to a session.
// This is deterministic and verifiable
func SignSession(sess models.Session, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(canonical(sess)))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner signatures
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateSignature checks a signature against the session it claims to sign
func ValidateSignature(sess models.Session, signature, secret string) error {
	expected := SignSession(sess, secret)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}
	return nil
}

// SessionFromRequest reads and verifies the session headers.
// A request without X-Member-ID is an anonymous session.
func SessionFromRequest(r *http.Request, secret string) (models.Session, error) {
	signature := r.Header.Get(HeaderSignature)
	if signature == "" {
		return models.Session{}, ErrMissingSignature
	}

	var sess models.Session
	if memberID := strings.TrimSpace(r.Header.Get(HeaderMemberID)); memberID != "" {
		sess.Profile = &models.Profile{
			MemberID: memberID,
			Name:     strings.TrimSpace(r.Header.Get(HeaderName)),
		}
	}

	if expired := r.Header.Get(HeaderExpired); expired != "" {
		v, err := strconv.ParseBool(expired)
		if err != nil {
			return models.Session{}, ErrInvalidSession
		}
		sess.IsExpired = v
	}

	for _, role := range parseRoles(r.Header.Get(HeaderRoles)) {
		switch role {
		case models.RoleCommittee:
			sess.IsCommitteePlus = true
		case models.RoleOfficer:
			// Officers rank above committee members
			sess.IsOfficer = true
			sess.IsCommitteePlus = true
		}
	}

	if err := ValidateSignature(sess, signature, secret); err != nil {
		return models.Session{}, err
	}

	return sess, nil
}

// SetSessionHeaders writes sess and its signature onto h
func SetSessionHeaders(h http.Header, sess models.Session, secret string) {
	if sess.Profile != nil {
		h.Set(HeaderMemberID, sess.Profile.MemberID)
		h.Set(HeaderName, sess.Profile.Name)
	}
	h.Set(HeaderRoles, strings.Join(roles(sess), ","))
	h.Set(HeaderExpired, strconv.FormatBool(sess.IsExpired))
	h.Set(HeaderSignature, SignSession(sess, secret))
}

// canonical is the signed form of a session. It depends only on the
// resolved flags, so header ordering and casing do not matter.
func canonical(sess models.Session) string {
	var memberID, name string
	if sess.Profile != nil {
		memberID = sess.Profile.MemberID
		name = sess.Profile.Name
	}
	return strings.Join([]string{
		memberID,
		name,
		strings.Join(roles(sess), ","),
		strconv.FormatBool(sess.IsExpired),
	}, "\n")
}

func roles(sess models.Session) []string {
	switch {
	case sess.IsOfficer:
		return []string{models.RoleOfficer}
	case sess.IsCommitteePlus:
		return []string{models.RoleCommittee}
	}
	return nil
}

func parseRoles(header string) []string {
	var out []string
	for _, role := range strings.Split(header, ",") {
		role = strings.ToLower(strings.TrimSpace(role))
		if role != "" && !slices.Contains(out, role) {
			out = append(out, role)
		}
	}
	return out
}
