package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	sessionTable = "session"

	// authTokenKey is the session row holding the bearer token.
	authTokenKey = "authToken"
)

func getSessionValueQuery(key string) (string, []any, error) {
	return sq.Select("value").
		From(sessionTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}

func upsertSessionValueQuery(key, value string, now time.Time) (string, []any, error) {
	return sq.Insert(sessionTable).
		Columns("key", "value", "updated_at").
		Values(key, value, now).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func deleteSessionValueQuery(key string) (string, []any, error) {
	return sq.Delete(sessionTable).
		Where(sq.Eq{"key": key}).
		ToSql()
}
