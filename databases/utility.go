package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPaginate struct {
	limit int64
	page  int64
}

func newMongoPaginate(limit, page int) *mongoPaginate {
	return &mongoPaginate{
		limit: int64(limit),
		page:  int64(page),
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	l := mp.limit
	skip := mp.page*mp.limit - mp.limit
	fOpt := options.FindOptions{Limit: &l, Skip: &skip}

	return &fOpt
}

// upsertByKey writes the single row identified by the unique key, creating it
// when absent. Current deadlines, driver documents and scheduler locks all
// share this primitive so the edge cases stay in one place.
func upsertByKey(ctx context.Context, coll CollectionHelper, key bson.M, set bson.M, setOnInsert bson.M) error {
	update := bson.M{"$set": set}
	if len(setOnInsert) > 0 {
		update["$setOnInsert"] = setOnInsert
	}
	_, err := coll.UpdateOne(ctx, key, update, options.Update().SetUpsert(true))
	return err
}
