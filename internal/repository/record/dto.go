package record

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/kailas-cloud/cancerdx/internal/domain"
	domrec "github.com/kailas-cloud/cancerdx/internal/domain/record"
)

// personalDoc is the stored shape of patient information.
type personalDoc struct {
	Name   any `bson:"name" json:"name"`
	Age    any `bson:"age" json:"age"`
	Gender any `bson:"gender" json:"gender"`
}

func toPersonalDoc(p domrec.Personal) personalDoc {
	return personalDoc{Name: p.Name, Age: p.Age, Gender: p.Gender}
}

func (p personalDoc) toDomain() domrec.Personal {
	return domrec.Personal{Name: p.Name, Age: p.Age, Gender: p.Gender}
}

// mongoDoc is the BSON document in the diagnosis collection.
type mongoDoc struct {
	ID         bson.ObjectID  `bson:"_id,omitempty"`
	Personal   personalDoc    `bson:"personal"`
	Features   map[string]any `bson:"features,omitempty"`
	Prediction string         `bson:"prediction"`
	Timestamp  time.Time      `bson:"timestamp,omitempty"`
}

func toMongoDoc(rec *domrec.Record) mongoDoc {
	return mongoDoc{
		Personal:   toPersonalDoc(rec.Personal()),
		Features:   rec.Features(),
		Prediction: string(rec.Prediction()),
		Timestamp:  rec.Timestamp(),
	}
}

func (d *mongoDoc) toDomain() domrec.Record {
	features := make(map[string]any, len(d.Features))
	for k, v := range d.Features {
		features[k] = plainValue(v)
	}
	personal := domrec.Personal{
		Name:   plainValue(d.Personal.Name),
		Age:    plainValue(d.Personal.Age),
		Gender: plainValue(d.Personal.Gender),
	}
	return domrec.Reconstruct(
		d.ID.Hex(), personal, features, domain.Label(d.Prediction), d.Timestamp.UTC(),
	)
}

func (d *mongoDoc) toSummary() domrec.Summary {
	return domrec.Summary{
		ID: d.ID.Hex(),
		Personal: domrec.Personal{
			Name:   plainValue(d.Personal.Name),
			Age:    plainValue(d.Personal.Age),
			Gender: plainValue(d.Personal.Gender),
		},
		Prediction: domain.Label(d.Prediction),
	}
}

// plainValue converts driver container types into maps and slices that encode as JSON objects and arrays.
func plainValue(v any) any {
	switch t := v.(type) {
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case bson.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plainValue(e)
		}
		return m
	case bson.A:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = plainValue(e)
		}
		return s
	default:
		return v
	}
}

// jsonDoc is the RedisJSON document stored under a record key.
type jsonDoc struct {
	ID         string         `json:"_id"`
	Personal   personalDoc    `json:"personal"`
	Features   map[string]any `json:"features"`
	Prediction string         `json:"prediction"`
	Timestamp  time.Time      `json:"timestamp"`
}

func toJSONDoc(id string, rec *domrec.Record) jsonDoc {
	return jsonDoc{
		ID:         id,
		Personal:   toPersonalDoc(rec.Personal()),
		Features:   rec.Features(),
		Prediction: string(rec.Prediction()),
		Timestamp:  rec.Timestamp(),
	}
}

func (d *jsonDoc) toDomain() domrec.Record {
	return domrec.Reconstruct(
		d.ID, d.Personal.toDomain(), d.Features, domain.Label(d.Prediction), d.Timestamp.UTC(),
	)
}
