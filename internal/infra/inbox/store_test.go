package inbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSeenClaimsEventOnce(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first delivery", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		store, err := NewStore(context.Background(), mt.DB, "cache-sync")
		require.NoError(mt, err)

		seen, err := store.Seen(context.Background(), "evt-1")
		require.NoError(mt, err)
		assert.False(mt, seen)

		started := mt.GetAllStartedEvents()
		require.Len(mt, started, 2)
		assert.Equal(mt, "createIndexes", started[0].CommandName)
		assert.Equal(mt, "insert", started[1].CommandName)
		assert.Equal(mt, "lynx_inbox", started[1].Command.Lookup("insert").StringValue())
	})

	mt.Run("redelivery", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
		)
		store, err := NewStore(context.Background(), mt.DB, "cache-sync")
		require.NoError(mt, err)

		seen, err := store.Seen(context.Background(), "evt-1")
		require.NoError(mt, err)
		assert.True(mt, seen)
	})

	mt.Run("server failure", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: "bad document"}),
		)
		store, err := NewStore(context.Background(), mt.DB, "cache-sync")
		require.NoError(mt, err)

		seen, err := store.Seen(context.Background(), "evt-1")
		assert.Error(mt, err)
		assert.False(mt, seen)
	})
}

func TestNewStoreFailsWithoutIndex(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("index error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))
		_, err := NewStore(context.Background(), mt.DB, "cache-sync")
		assert.ErrorContains(mt, err, "inbox: ensure index")
	})
}
