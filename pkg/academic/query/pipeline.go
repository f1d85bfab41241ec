package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FacultyCollection holds one document per faculty member
const FacultyCollection = "faculty"

// ResearchVolume aggregates faculty documents into one row per university with
// faculty, distinct keyword and publication totals, sorted by keyword count.
// A non-empty universities list restricts the input documents first.
func ResearchVolume(universities []string) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$keywords"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "university", Value: "$affiliation.name"},
				{Key: "faculty_id", Value: "$_id"},
			}},
			{Key: "uniqueKeywords", Value: bson.D{{Key: "$addToSet", Value: "$keywords.name"}}},
			{Key: "publications", Value: bson.D{{Key: "$first", Value: "$publications"}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id.university"},
			{Key: "facultyCount", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "uniqueKeywordsCount", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: "$uniqueKeywords"}}}}},
			{Key: "distinctPublicationsCount", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: "$publications"}}}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "university", Value: "$_id"},
			{Key: "uniqueKeywordsCount", Value: 1},
			{Key: "facultyCount", Value: 1},
			{Key: "distinctPublicationsCount", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "uniqueKeywordsCount", Value: -1}}}},
	}

	if len(universities) > 0 {
		match := bson.D{{Key: "$match", Value: bson.D{
			{Key: "affiliation.name", Value: bson.D{{Key: "$in", Value: universities}}},
		}}}
		pipeline = append(mongo.Pipeline{match}, pipeline...)
	}
	return pipeline
}

// FacultyByName matches a faculty document by display name
func FacultyByName(name string) bson.D {
	return bson.D{{Key: "name", Value: name}}
}

// FacultyByID matches a faculty document by identifier
func FacultyByID(id interface{}) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// InitReviews returns the filter and update that create an empty reviews array
// only on documents that have none
func InitReviews(id interface{}) (filter, update bson.D) {
	filter = bson.D{
		{Key: "_id", Value: id},
		{Key: "reviews", Value: bson.D{{Key: "$exists", Value: false}}},
	}
	update = bson.D{{Key: "$set", Value: bson.D{{Key: "reviews", Value: bson.A{}}}}}
	return filter, update
}

// PushReview appends one review to the reviews array
func PushReview(id interface{}, text string, rating int) (filter, update bson.D) {
	filter = FacultyByID(id)
	update = bson.D{{Key: "$push", Value: bson.D{
		{Key: "reviews", Value: bson.D{
			{Key: "review-text", Value: text},
			{Key: "review-rating", Value: rating},
		}},
	}}}
	return filter, update
}
