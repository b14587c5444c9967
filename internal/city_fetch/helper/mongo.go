package helper

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"city-fetch/internal/city_fetch/model"
)

type Stores struct {
	DB       *mongo.Database
	Sources  *mongo.Collection // per-portal integration configs
	Meetings *mongo.Collection // canonical meeting records
}

func MustMongo(ctx context.Context, host, dbname, username, password, authSource string) *Stores {
	clientOpts := options.Client().
		ApplyURI("mongodb://" + host).
		SetAuth(options.Credential{
			Username:   username,
			Password:   password,
			AuthSource: authSource,
		})

	cli, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		panic(err)
	}
	if err = cli.Ping(ctx, nil); err != nil {
		panic(err)
	}

	db := cli.Database(dbname)
	s := &Stores{
		DB:       db,
		Sources:  db.Collection("sources"),
		Meetings: db.Collection("meetings"),
	}
	ensureIndexes(ctx, s)
	return s
}

func ensureIndexes(ctx context.Context, s *Stores) {
	_, _ = s.Sources.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "enabled", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	})
	_, _ = s.Meetings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "spider", Value: 1}}},
		{Keys: bson.D{{Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "classification", Value: 1}}},
	})
}

// SeedSources inserts any missing source configs without touching existing
// documents, so operator edits (like flipping enabled) survive restarts.
func (s *Stores) SeedSources(ctx context.Context, sources []model.SourceInfo) error {
	for _, src := range sources {
		filter := bson.M{"_id": src.Name}
		update := bson.M{"$setOnInsert": src}
		opts := options.Update().SetUpsert(true)
		if _, err := s.Sources.UpdateOne(ctx, filter, update, opts); err != nil {
			return err
		}
	}
	return nil
}

// EnabledSources loads every source the scheduler should run this tick.
func (s *Stores) EnabledSources(ctx context.Context) ([]model.SourceInfo, error) {
	cur, err := s.Sources.Find(ctx, bson.M{"enabled": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []model.SourceInfo
	for cur.Next(ctx) {
		var src model.SourceInfo
		if err := cur.Decode(&src); err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, cur.Err()
}

// UpsertMeeting writes a meeting keyed by its deterministic id. Re-crawling
// identical source data replaces the same document, which is the upsert
// contract downstream consumers rely on.
func (s *Stores) UpsertMeeting(ctx context.Context, m model.Meeting) error {
	filter := bson.M{"_id": m.ID}
	opts := options.Replace().SetUpsert(true)
	_, err := s.Meetings.ReplaceOne(ctx, filter, m, opts)
	return err
}

// LoadTimezone resolves the service's display timezone, falling back to a
// fixed UTC-6 zone when tzdata is unavailable.
func LoadTimezone(name string) *time.Location {
	if name == "" {
		name = "America/Chicago"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("CST", -6*3600)
	}
	return loc
}
