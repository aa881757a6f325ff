package service

import (
	"strings"
	"testing"
	"time"

	"eduquiz-web/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHandoffSecret = "0123456789abcdef0123456789abcdef"

func TestHandoffCodec_RoundTrip(t *testing.T) {
	codec := NewHandoffCodec(testHandoffSecret, time.Hour)
	a, err := domain.NewAttempt(fixtureQuestions(3))
	require.NoError(t, err)
	require.NoError(t, a.Select(2))
	require.NoError(t, a.Next())

	token, err := codec.Encode(testSID, a)
	require.NoError(t, err)

	got, err := codec.Decode(testSID, token)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Current)
	assert.True(t, got.Answers.Answered(0))
	assert.Equal(t, 2, *got.Answers[0])
	assert.False(t, got.Answers.Answered(1))
	assert.Equal(t, a.Questions, got.Questions)
}

func TestHandoffCodec_Rejects(t *testing.T) {
	codec := NewHandoffCodec(testHandoffSecret, time.Hour)
	a, err := domain.NewAttempt(fixtureQuestions(1))
	require.NoError(t, err)
	token, err := codec.Encode(testSID, a)
	require.NoError(t, err)

	expired := NewHandoffCodec(testHandoffSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	foreignKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": testSID}).
		SignedString([]byte("another-secret-another-secret-xx"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		codec *HandoffCodec
		sid   string
		token string
	}{
		{"missing", codec, testSID, ""},
		{"garbage", codec, testSID, "not-a-token"},
		{"tampered", codec, testSID, tamper(token)},
		{"other session", codec, "01HZXJ4N8V8S2Q9K3M5T7W1Y30", token},
		{"expired", expired, testSID, token},
		{"wrong key", codec, testSID, foreignKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Decode(tt.sid, tt.token)
			require.Error(t, err)
			assert.True(t, domain.IsCode(err, domain.CodeNavigationState))
		})
	}
}

// tamper flips the first signature character, which always changes the
// decoded signature bytes.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}

func TestHandoffCodec_EncodeInvalidAttempt(t *testing.T) {
	_, err := NewHandoffCodec(testHandoffSecret, time.Hour).Encode(testSID, &domain.Attempt{})
	assert.True(t, domain.IsCode(err, domain.CodeNavigationState))
}
