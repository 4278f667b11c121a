package mongo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lynx/internal/domain/preferences"
	"lynx/internal/domain/reports"
)

const (
	favoritesID = "favorites"
	graphsID    = "graphs"
)

// PreferencesStore keeps favorites and graphs as single documents in
// lynx_preferences and one document per user report template in
// lynx_report_templates. Entries that no longer decode or validate are
// dropped with a warning, like the file store does.
type PreferencesStore struct {
	settings  *mongo.Collection
	templates *mongo.Collection
}

func NewPreferencesStore(db *mongo.Database) *PreferencesStore {
	return &PreferencesStore{
		settings:  db.Collection("lynx_preferences"),
		templates: db.Collection("lynx_report_templates"),
	}
}

type favoritesDocument struct {
	ID        string    `bson:"_id"`
	Keys      []string  `bson:"keys"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type graphsDocument struct {
	ID        string     `bson:"_id"`
	Graphs    []bson.Raw `bson:"graphs"`
	UpdatedAt time.Time  `bson:"updated_at"`
}

type templateDocument struct {
	Name             string `bson:"_id"`
	reports.Template `bson:",inline"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

func (s *PreferencesStore) Favorites(ctx context.Context) ([]string, []string, error) {
	var doc favoritesDocument
	if err := s.settings.FindOne(ctx, bson.M{"_id": favoritesID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []string{}, nil, nil
		}
		return []string{}, []string{fmt.Sprintf("Could not load custom metrics: %v", err)}, nil
	}
	return preferences.CleanFavorites(doc.Keys), nil, nil
}

func (s *PreferencesStore) SaveFavorites(ctx context.Context, keys []string) error {
	return s.upsertSetting(ctx, favoritesID, bson.M{"keys": append([]string{}, keys...)})
}

func (s *PreferencesStore) Graphs(ctx context.Context) ([]preferences.Graph, []string, error) {
	var doc graphsDocument
	if err := s.settings.FindOne(ctx, bson.M{"_id": graphsID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []preferences.Graph{}, nil, nil
		}
		return []preferences.Graph{}, []string{fmt.Sprintf("Could not load custom graphs: %v", err)}, nil
	}
	out := make([]preferences.Graph, 0, len(doc.Graphs))
	var warnings []string
	for i, raw := range doc.Graphs {
		var g preferences.Graph
		if err := bson.Unmarshal(raw, &g); err != nil {
			warnings = append(warnings, fmt.Sprintf("custom graph #%d dropped: %v", i+1, err))
			continue
		}
		if err := g.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("custom graph #%d dropped: %v", i+1, err))
			continue
		}
		out = append(out, g)
	}
	return out, warnings, nil
}

func (s *PreferencesStore) SaveGraphs(ctx context.Context, graphs []preferences.Graph) error {
	return s.upsertSetting(ctx, graphsID, bson.M{"graphs": append([]preferences.Graph{}, graphs...)})
}

func (s *PreferencesStore) upsertSetting(ctx context.Context, id string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	_, err := s.settings.UpdateByID(ctx, id, bson.M{"$set": set}, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo: save %s: %w", id, err)
	}
	return nil
}

func (s *PreferencesStore) Templates(ctx context.Context) (map[string]reports.Template, []string, error) {
	out := make(map[string]reports.Template)
	cur, err := s.templates.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return out, []string{fmt.Sprintf("Could not load report templates: %v", err)}, nil
	}
	defer cur.Close(ctx)

	var warnings []string
	for cur.Next(ctx) {
		var doc templateDocument
		if err := cur.Decode(&doc); err != nil {
			name, _ := cur.Current.Lookup("_id").StringValueOK()
			warnings = append(warnings, fmt.Sprintf("report template %q dropped: %v", name, err))
			continue
		}
		t := doc.Template
		if err := t.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("report template %q dropped: %v", doc.Name, err))
			continue
		}
		t.BuiltIn = false
		out[doc.Name] = t
	}
	if err := cur.Err(); err != nil {
		return out, append(warnings, fmt.Sprintf("Could not load report templates: %v", err)), nil
	}
	return out, warnings, nil
}

// SaveTemplates makes the collection match templates exactly.
func (s *PreferencesStore) SaveTemplates(ctx context.Context, templates map[string]reports.Template) error {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	now := time.Now().UTC()
	models := []mongo.WriteModel{
		mongo.NewDeleteManyModel().SetFilter(bson.M{"_id": bson.M{"$nin": names}}),
	}
	for _, name := range names {
		t := templates[name]
		t.BuiltIn = false
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": name}).
			SetReplacement(templateDocument{Name: name, Template: t, UpdatedAt: now}).
			SetUpsert(true))
	}
	if _, err := s.templates.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("mongo: save report templates: %w", err)
	}
	return nil
}

var _ preferences.Store = (*PreferencesStore)(nil)
