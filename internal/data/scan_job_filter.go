package data

import (
	"regexp"

	"github.com/target/iris/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// searchFields are matched by the free-text search, case-insensitively.
// tenant_id is matched separately since it may be stored as an ObjectID.
var searchFields = []string{"domain", "error_message"} //nolint:gochecknoglobals // read-only

// buildScanJobFilter translates a JobFilter into the document store predicate.
// Only the latest run of each logical job is ever matched.
func buildScanJobFilter(f model.JobFilter) bson.D {
	filter := bson.D{{Key: "is_latest", Value: true}}

	switch len(f.Statuses) {
	case 0:
	case 1:
		filter = append(filter, bson.E{Key: "status", Value: string(f.Statuses[0])})
	default:
		values := make(bson.A, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			values = append(values, string(s))
		}
		filter = append(filter, bson.E{Key: "status", Value: bson.D{{Key: "$in", Value: values}}})
	}

	if f.Search != "" {
		quoted := regexp.QuoteMeta(f.Search)
		pattern := primitive.Regex{Pattern: quoted, Options: "i"}
		or := make(bson.A, 0, len(searchFields)+1)
		for _, field := range searchFields {
			or = append(or, bson.D{{Key: field, Value: pattern}})
		}
		or = append(or, tenantIDSearch(quoted))
		filter = append(filter, bson.E{Key: "$or", Value: or})
	}

	if f.TenantID != "" {
		filter = append(filter, bson.E{Key: "tenant_id", Value: tenantIDMatch(f.TenantID)})
	}

	return filter
}

// tenantIDSearch regex-matches tenant_id by its string form, so ObjectID values
// are searchable by hex substring. Values that cannot be converted match nothing.
func tenantIDSearch(quoted string) bson.D {
	asString := bson.D{{Key: "$convert", Value: bson.D{
		{Key: "input", Value: "$tenant_id"},
		{Key: "to", Value: "string"},
		{Key: "onError", Value: ""},
		{Key: "onNull", Value: ""},
	}}}
	return bson.D{{Key: "$expr", Value: bson.D{{Key: "$regexMatch", Value: bson.D{
		{Key: "input", Value: asString},
		{Key: "regex", Value: quoted},
		{Key: "options", Value: "i"},
	}}}}}
}

// tenantIDMatch matches tenant_id stored either as an ObjectID or as its hex string.
func tenantIDMatch(id string) any {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return id
	}
	return bson.D{{Key: "$in", Value: bson.A{oid, id}}}
}

// scanJobSort orders newest first. Documents without created_at sort last.
func scanJobSort() bson.D {
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
}
