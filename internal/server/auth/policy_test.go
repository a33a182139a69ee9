package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophbot/internal/common"
)

func TestNewPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		secret  string
		want    string
		wantErr bool
	}{
		{"default is credential", "", "", PolicyCredential, false},
		{"credential", "credential", "", PolicyCredential, false},
		{"static", "static", "s3cret", PolicyStatic, false},
		{"static without secret", "static", "", "", true},
		{"jwt", "jwt", "s3cret", PolicyJWT, false},
		{"unknown", "oauth", "s", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPolicy(tt.policy, tt.secret, time.Minute)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Name())
		})
	}
}

func TestCredentialPolicy_RoundTrip(t *testing.T) {
	p := CredentialPolicy{}

	tok, err := p.Issue("admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "YWRtaW46YWRtaW4xMjM=", tok)

	pr, err := p.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", pr.UserName)
	assert.Equal(t, "admin123", pr.Password)
	assert.True(t, pr.NeedsRecheck())

	// the password may itself contain a colon
	tok, _ = p.Issue("bob", "a:b")
	pr, err = p.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "a:b", pr.Password)
}

func TestCredentialPolicy_Malformed(t *testing.T) {
	p := CredentialPolicy{}

	for _, tok := range []string{
		"",
		"!!!",
		"YWRtaW46YWRtaW4xMjM",  // missing padding
		"YWRtaW46YWRtaW4xMjN=", // non-zero padding bits
		"YWRtaW4=",             // "admin", no colon
		"OmFkbWluMTIz",         // ":admin123", empty user
		"YWRtaW46",             // "admin:", empty password
		"/w==",                 // invalid UTF-8
	} {
		_, err := p.Parse(tok)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "token %q", tok)
	}
}

func TestStaticPolicy(t *testing.T) {
	p, err := NewStaticPolicy("shared-secret")
	require.NoError(t, err)

	a, _ := p.Issue("alice", "x")
	b, _ := p.Issue("bob", "y")
	assert.Equal(t, a, b, "every login gets the same token")

	pr, err := p.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, SharedPrincipal, pr.UserName)
	assert.False(t, pr.NeedsRecheck())

	_, err = p.Parse("shared-secreT")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestParseBearer(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer  abc ", "abc", true},
		{"bearer abc", "", false},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"", "", false},
		{"abc", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := ParseBearer(tt.header)
			if !tt.ok {
				assert.ErrorIs(t, err, common.ErrInvalidToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserNameContext(t *testing.T) {
	_, ok := UserNameFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithUserName(context.Background(), "admin")
	name, ok := UserNameFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "admin", name)
}
