package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dqlkit/internal/store"
)

func TestHistory_AddListClear(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "", "--db", db, "--format", "json", "history", "add", "db1", "SELECT COUNT(*) FROM cars")
	require.NoError(t, err)

	var recorded RecordResult
	decodeData(t, out, &recorded)
	require.True(t, recorded.Recorded)
	require.NotNil(t, recorded.Entry)
	assert.Equal(t, "cars", recorded.Entry.Collection)
	assert.True(t, recorded.Entry.Aggregate)

	_, err = execute(t, "", "--db", db, "history", "add", "db1", "SELECT * FROM people")
	require.NoError(t, err)

	out, err = execute(t, "", "--db", db, "--format", "json", "history", "list", "db1")
	require.NoError(t, err)

	var entries []store.Entry
	decodeData(t, out, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, "SELECT * FROM people", entries[0].Query)
	assert.Equal(t, "SELECT COUNT(*) FROM cars", entries[1].Query)

	out, err = execute(t, "", "--db", db, "--format", "json", "history", "clear", "db1")
	require.NoError(t, err)

	var cleared ClearResult
	decodeData(t, out, &cleared)
	assert.Equal(t, int64(2), cleared.Removed)

	out, err = execute(t, "", "--db", db, "history", "list", "db1")
	require.NoError(t, err)
	assert.Equal(t, "no history for db1\n", out)
}

func TestHistory_SkipsBlank(t *testing.T) {
	out, err := execute(t, "", "--db", tempDB(t), "history", "add", "db1", "   ")
	require.NoError(t, err)
	assert.Equal(t, "skipped blank query\n", out)
}

func TestHistory_ListLimit(t *testing.T) {
	db := tempDB(t)
	for i := 0; i < 3; i++ {
		_, err := execute(t, "", "--db", db, "history", "add", "db1", "SELECT * FROM cars")
		require.NoError(t, err)
	}

	out, err := execute(t, "", "--db", db, "--format", "json", "history", "list", "db1", "--limit", "2")
	require.NoError(t, err)

	var entries []store.Entry
	decodeData(t, out, &entries)
	assert.Len(t, entries, 2)
}

func TestHistory_Delete(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "", "--db", db, "--format", "json", "history", "add", "db1", "SELECT * FROM cars")
	require.NoError(t, err)
	var recorded RecordResult
	decodeData(t, out, &recorded)

	out, err = execute(t, "", "--db", db, "history", "delete", recorded.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "deleted "+recorded.Entry.ID+"\n", out)

	out, err = execute(t, "", "--db", db, "--format", "json", "history", "delete", recorded.Entry.ID)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, ErrCodeNotFound, decodeError(t, out).Code)
}

func TestHistory_EnvDatabase(t *testing.T) {
	t.Setenv(EnvDBPath, tempDB(t))

	_, err := execute(t, "", "history", "add", "db1", "SELECT * FROM cars")
	require.NoError(t, err)

	out, err := execute(t, "", "--format", "json", "history", "list", "db1")
	require.NoError(t, err)
	var entries []store.Entry
	decodeData(t, out, &entries)
	assert.Len(t, entries, 1)
}

func TestFavorite_AddDedupesAndLists(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "", "--db", db, "--format", "json", "favorite", "add", "db1",
		"SELECT * FROM cars WHERE make = :make", "--args", `{"make":"Ford"}`)
	require.NoError(t, err)
	var first store.Favorite
	decodeData(t, out, &first)
	assert.Equal(t, `{"make":"Ford"}`, first.Args)

	out, err = execute(t, "", "--db", db, "--format", "json", "fav", "add", "db1", "SELECT * FROM cars WHERE make = :make")
	require.NoError(t, err)
	var again store.Favorite
	decodeData(t, out, &again)
	assert.Equal(t, first.ID, again.ID)

	out, err = execute(t, "", "--db", db, "favorite", "list", "db1")
	require.NoError(t, err)
	assert.Equal(t, first.ID+"  SELECT * FROM cars WHERE make = :make  args={\"make\":\"Ford\"}\n", out)
}

func TestFavorite_InvalidArgs(t *testing.T) {
	out, err := execute(t, "", "--db", tempDB(t), "--format", "json", "favorite", "add", "db1", "SELECT * FROM cars", "--args", "{oops")
	require.Error(t, err)
	assert.Equal(t, ErrCodeStoreFailed, decodeError(t, out).Code)
}

func TestFavorite_DeleteAndClear(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "", "--db", db, "--format", "json", "favorite", "add", "db1", "SELECT * FROM a")
	require.NoError(t, err)
	var fav store.Favorite
	decodeData(t, out, &fav)

	_, err = execute(t, "", "--db", db, "favorite", "add", "db1", "SELECT * FROM b")
	require.NoError(t, err)

	_, err = execute(t, "", "--db", db, "favorite", "delete", fav.ID)
	require.NoError(t, err)

	_, err = execute(t, "", "--db", db, "favorite", "delete", fav.ID)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err = execute(t, "", "--db", db, "favorite", "clear", "db1")
	require.NoError(t, err)
	assert.Equal(t, "removed 1 favorites\n", out)
}
