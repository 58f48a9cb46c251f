package db

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NameFilter returns a filter matching documents whose field contains substr, ignoring case.
// An empty substr matches everything. Regex metacharacters in substr are matched literally.
func NameFilter(field, substr string) bson.M {
	if substr == "" {
		return bson.M{}
	}
	return bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(substr), Options: "i"}}
}

// PageOptions returns find options that skip offset documents and return at most limit.
// A zero limit leaves the result unbounded.
func PageOptions(limit, offset int64) *options.FindOptions {
	opts := options.Find().SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return opts
}
