package jira_test

import (
	"encoding/base64"
	"testing"

	"github.com/issuetrack-io/jira-client/pkg/jira"
	"github.com/stretchr/testify/assert"
)

func TestSession_Header(t *testing.T) {
	cookie := &jira.Session{Mode: jira.AuthModeCookie, Token: "JSESSIONID=9F3A7EC2"}
	name, value := cookie.Header()
	assert.Equal(t, "Cookie", name)
	assert.Equal(t, "JSESSIONID=9F3A7EC2", value)

	basic := &jira.Session{Mode: jira.AuthModeBasic, Token: jira.BasicToken("bob", "hunter2")}
	name, value = basic.Header()
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Basic Ym9iOmh1bnRlcjI=", value)

	token := &jira.Session{Mode: jira.AuthModeToken, Token: jira.BasicToken("bob", "api-token")}
	name, value = token.Header()
	assert.Equal(t, "Authorization", name)
	assert.Equal(t, "Basic "+jira.BasicToken("bob", "api-token"), value)
}

func TestBasicToken(t *testing.T) {
	token := jira.BasicToken("alice", "s3cret")

	decoded, err := base64.StdEncoding.DecodeString(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice:s3cret", string(decoded))
}
