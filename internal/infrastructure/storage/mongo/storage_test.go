package mongo

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStorage_MockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get existing entry", func(mt *mtest.T) {
		st := NewStorage(mt.DB, time.Hour)
		ns := mt.DB.Name() + "." + collectionSessionEntries
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "session:abc:token"},
			{Key: "value", Value: "tok"},
		}))

		v, ok, err := st.Get(context.Background(), "session:abc:token")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if !ok || v != "tok" {
			t.Fatalf("expected tok, got %q (found=%v)", v, ok)
		}
	})

	mt.Run("get missing entry", func(mt *mtest.T) {
		st := NewStorage(mt.DB, time.Hour)
		ns := mt.DB.Name() + "." + collectionSessionEntries
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, ok, err := st.Get(context.Background(), "missing")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if ok {
			t.Fatalf("expected missing entry")
		}
	})

	mt.Run("set and remove", func(mt *mtest.T) {
		st := NewStorage(mt.DB, time.Hour)
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		if err := st.Set(context.Background(), "k", "v"); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := st.Remove(context.Background(), "k"); err != nil {
			t.Fatalf("remove: %v", err)
		}
	})

	mt.Run("set surfaces server errors", func(mt *mtest.T) {
		st := NewStorage(mt.DB, time.Hour)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
			Name:    "BadValue",
		}))

		if err := st.Set(context.Background(), "k", "v"); err == nil {
			t.Fatalf("expected error")
		}
	})
}
