package adapter

import (
	"context"
	"errors"
	"testing"

	"eduquiz-web/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSID        = "01HZXJ4N8V8S2Q9K3M5T7W1Y2Z"
	testSessionKey = "eduquiz:web:session:01HZXJ4N8V8S2Q9K3M5T7W1Y2Z"
)

func TestRedisSessionStore_GetSession(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectHGetAll(testSessionKey).SetVal(map[string]string{
			"access_token": "tok",
			"user":         `{"email":"ada@example.com"}`,
		})
		rec, err := store.GetSession(ctx, testSID)
		require.NoError(t, err)
		assert.Equal(t, "tok", rec.AccessToken)
		assert.Equal(t, `{"email":"ada@example.com"}`, rec.User)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectHGetAll(testSessionKey).SetVal(map[string]string{})
		rec, err := store.GetSession(ctx, testSID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		assert.Nil(t, rec)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PartialRecordIsReturnedAsIs", func(t *testing.T) {
		mock.ExpectHGetAll(testSessionKey).SetVal(map[string]string{"access_token": "tok"})
		rec, err := store.GetSession(ctx, testSID)
		require.NoError(t, err)
		assert.False(t, rec.Complete())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectHGetAll(testSessionKey).SetErr(redisErr)
		_, err := store.GetSession(ctx, testSID)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisNil", func(t *testing.T) {
		mock.ExpectHGetAll(testSessionKey).SetErr(redis.Nil)
		_, err := store.GetSession(ctx, testSID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisSessionStore_SetSession(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(db)
	ctx := context.Background()
	record := domain.SessionRecord{AccessToken: "tok", User: `{"email":"ada@example.com"}`}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectHSet(testSessionKey, "access_token", "tok", "user", `{"email":"ada@example.com"}`).SetVal(2)
		err := store.SetSession(ctx, testSID, record)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectHSet(testSessionKey, "access_token", "tok", "user", `{"email":"ada@example.com"}`).SetErr(redisErr)
		err := store.SetSession(ctx, testSID, record)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisSessionStore_ClearSession(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectDel(testSessionKey).SetVal(1)
		assert.NoError(t, store.ClearSession(ctx, testSID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SuccessKeyNotFound", func(t *testing.T) {
		mock.ExpectDel(testSessionKey).SetVal(0)
		assert.NoError(t, store.ClearSession(ctx, testSID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectDel(testSessionKey).SetErr(redisErr)
		err := store.ClearSession(ctx, testSID)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisSessionStore_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisSessionStore(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectPing().SetVal("PONG")
		assert.NoError(t, store.Ping(ctx))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("some redis error")
		mock.ExpectPing().SetErr(redisErr)
		assert.ErrorIs(t, store.Ping(ctx), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
