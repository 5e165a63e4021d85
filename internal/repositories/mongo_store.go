package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	tirsCollection       = "tirs"
	documentsCollection  = "documents"
	shareLinksCollection = "sharelinks"
)

type tirRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Phone        string             `bson:"phone"`
	Plate        string             `bson:"plate"`
	TrailerPlate string             `bson:"trailerPlate"`
	Location     string             `bson:"location"`
	LastUpdated  time.Time          `bson:"lastUpdated"`
}

func (r *tirRecord) model() *models.Tir {
	return &models.Tir{
		ID:           r.ID.Hex(),
		Phone:        r.Phone,
		Plate:        r.Plate,
		TrailerPlate: r.TrailerPlate,
		Location:     r.Location,
		LastUpdated:  r.LastUpdated.UTC(),
	}
}

type documentRecord struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	TirID              string             `bson:"tirId"`
	FileName           string             `bson:"fileName"`
	FileType           models.FileType    `bson:"fileType"`
	CloudinaryURL      string             `bson:"cloudinaryUrl"`
	CloudinaryPublicID string             `bson:"cloudinaryPublicId"`
	UploadDate         time.Time          `bson:"uploadDate"`
	FileSize           *int64             `bson:"fileSize,omitempty"`
	MimeType           string             `bson:"mimeType,omitempty"`
}

func (r *documentRecord) model() models.Document {
	return models.Document{
		ID:                 r.ID.Hex(),
		TirID:              r.TirID,
		FileName:           r.FileName,
		FileType:           r.FileType,
		CloudinaryURL:      r.CloudinaryURL,
		CloudinaryPublicID: r.CloudinaryPublicID,
		UploadDate:         r.UploadDate.UTC(),
		FileSize:           r.FileSize,
		MimeType:           r.MimeType,
	}
}

type shareLinkRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Type         models.ShareType   `bson:"type"`
	TirID        string             `bson:"tirId,omitempty"`
	Token        string             `bson:"token"`
	Active       bool               `bson:"active"`
	ExpiryDate   *time.Time         `bson:"expiryDate,omitempty"`
	LastAccessed *time.Time         `bson:"lastAccessed,omitempty"`
	AccessCount  int64              `bson:"accessCount"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (r *shareLinkRecord) model() *models.ShareLink {
	return &models.ShareLink{
		ID:           r.ID.Hex(),
		Type:         r.Type,
		TirID:        r.TirID,
		Token:        r.Token,
		Active:       r.Active,
		ExpiryDate:   utcPtr(r.ExpiryDate),
		LastAccessed: utcPtr(r.LastAccessed),
		AccessCount:  r.AccessCount,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// MongoStore keeps one collection per entity.
type MongoStore struct {
	tirs       *mongo.Collection
	documents  *mongo.Collection
	shareLinks *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		tirs:       db.Collection(tirsCollection),
		documents:  db.Collection(documentsCollection),
		shareLinks: db.Collection(shareLinksCollection),
	}
}

func (s *MongoStore) Name() string { return "mongo" }

// EnsureIndexes creates the secondary indexes. Safe to call on every start.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	if _, err := s.documents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tirId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create documents.tirId index: %w", err)
	}
	if _, err := s.shareLinks.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("create sharelinks indexes: %w", err)
	}
	if _, err := s.tirs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "lastUpdated", Value: -1}},
	}); err != nil {
		return fmt.Errorf("create tirs.lastUpdated index: %w", err)
	}
	return nil
}

// objectID parses id; ok is false for ids that cannot exist in the store.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

func (s *MongoStore) GetTir(ctx context.Context, id string) (*models.Tir, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	var rec tirRecord
	if err := s.tirs.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find tir: %w", err)
	}
	return rec.model(), nil
}

func (s *MongoStore) ListTirs(ctx context.Context) ([]models.Tir, error) {
	cur, err := s.tirs.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "lastUpdated", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find tirs: %w", err)
	}
	var recs []tirRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode tirs: %w", err)
	}
	out := make([]models.Tir, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].model())
	}
	return out, nil
}

func (s *MongoStore) CreateTir(ctx context.Context, in *models.InsertTir) (*models.Tir, error) {
	rec := tirRecord{
		ID:           primitive.NewObjectID(),
		Phone:        in.Phone,
		Plate:        in.Plate,
		TrailerPlate: in.TrailerPlate,
		Location:     in.Location,
		LastUpdated:  now(),
	}
	if _, err := s.tirs.InsertOne(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert tir: %w", err)
	}
	return rec.model(), nil
}

func (s *MongoStore) UpdateTir(ctx context.Context, id string, patch *models.TirPatch) (*models.Tir, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	set := bson.M{"lastUpdated": now()}
	if patch != nil {
		if patch.Phone != nil {
			set["phone"] = *patch.Phone
		}
		if patch.Plate != nil {
			set["plate"] = *patch.Plate
		}
		if patch.TrailerPlate != nil {
			set["trailerPlate"] = *patch.TrailerPlate
		}
		if patch.Location != nil {
			set["location"] = *patch.Location
		}
	}
	var rec tirRecord
	err := s.tirs.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update tir: %w", err)
	}
	return rec.model(), nil
}

// DeleteTir removes dependants first so a failure never leaves orphans
// pointing at a missing truck.
func (s *MongoStore) DeleteTir(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	n, err := s.tirs.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("find tir: %w", err)
	}
	if n == 0 {
		return false, nil
	}
	if _, err := s.documents.DeleteMany(ctx, bson.M{"tirId": id}); err != nil {
		return false, fmt.Errorf("delete tir documents: %w", err)
	}
	if _, err := s.shareLinks.DeleteMany(ctx, bson.M{"type": models.ShareTypeTir, "tirId": id}); err != nil {
		return false, fmt.Errorf("delete tir share links: %w", err)
	}
	res, err := s.tirs.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete tir: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	var rec documentRecord
	if err := s.documents.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	d := rec.model()
	return &d, nil
}

func (s *MongoStore) ListDocumentsByTir(ctx context.Context, tirID string) ([]models.Document, error) {
	cur, err := s.documents.Find(ctx, bson.M{"tirId": tirID}, options.Find().SetSort(bson.D{{Key: "uploadDate", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}
	var recs []documentRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}
	out := make([]models.Document, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].model())
	}
	return out, nil
}

func (s *MongoStore) GroupDocumentsByType(ctx context.Context, tirID string) (models.DocumentsByType, error) {
	docs, err := s.ListDocumentsByTir(ctx, tirID)
	if err != nil {
		return models.DocumentsByType{}, err
	}
	return models.GroupByType(docs), nil
}

func (s *MongoStore) CountDocumentsByTir(ctx context.Context, tirID string) (int64, error) {
	n, err := s.documents.CountDocuments(ctx, bson.M{"tirId": tirID})
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

func (s *MongoStore) CreateDocument(ctx context.Context, in *models.InsertDocument) (*models.Document, error) {
	rec := documentRecord{
		ID:                 primitive.NewObjectID(),
		TirID:              in.TirID,
		FileName:           in.FileName,
		FileType:           in.FileType,
		CloudinaryURL:      in.CloudinaryURL,
		CloudinaryPublicID: in.CloudinaryPublicID,
		UploadDate:         now(),
		FileSize:           in.FileSize,
		MimeType:           in.MimeType,
	}
	if _, err := s.documents.InsertOne(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	d := rec.model()
	return &d, nil
}

func (s *MongoStore) DeleteDocument(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	res, err := s.documents.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) DeleteDocumentsByTir(ctx context.Context, tirID string) (int64, error) {
	res, err := s.documents.DeleteMany(ctx, bson.M{"tirId": tirID})
	if err != nil {
		return 0, fmt.Errorf("delete documents: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) findShareLink(ctx context.Context, filter bson.M) (*models.ShareLink, error) {
	var rec shareLinkRecord
	if err := s.shareLinks.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find share link: %w", err)
	}
	return rec.model(), nil
}

func (s *MongoStore) GetShareLink(ctx context.Context, id string) (*models.ShareLink, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return s.findShareLink(ctx, bson.M{"_id": oid})
}

func (s *MongoStore) GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	return s.findShareLink(ctx, bson.M{"token": token})
}

func (s *MongoStore) listShareLinks(ctx context.Context, filter bson.M) ([]models.ShareLink, error) {
	cur, err := s.shareLinks.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find share links: %w", err)
	}
	var recs []shareLinkRecord
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode share links: %w", err)
	}
	out := make([]models.ShareLink, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].model())
	}
	return out, nil
}

func (s *MongoStore) ListShareLinksByType(ctx context.Context, t models.ShareType) ([]models.ShareLink, error) {
	return s.listShareLinks(ctx, bson.M{"type": t})
}

func (s *MongoStore) ListShareLinksByTir(ctx context.Context, tirID string) ([]models.ShareLink, error) {
	return s.listShareLinks(ctx, bson.M{"type": models.ShareTypeTir, "tirId": tirID})
}

func (s *MongoStore) CreateShareLink(ctx context.Context, in *models.InsertShareLink) (*models.ShareLink, error) {
	rec := shareLinkRecord{
		ID:         primitive.NewObjectID(),
		Type:       in.Type,
		TirID:      in.TirID,
		Token:      in.Token,
		Active:     in.Active,
		ExpiryDate: in.ExpiryDate,
		CreatedAt:  now(),
	}
	if _, err := s.shareLinks.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateToken
		}
		return nil, fmt.Errorf("insert share link: %w", err)
	}
	return rec.model(), nil
}

func (s *MongoStore) UpdateShareLink(ctx context.Context, id string, patch *models.ShareLinkPatch) (*models.ShareLink, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	if patch.Empty() {
		return s.findShareLink(ctx, bson.M{"_id": oid})
	}
	set, unset := bson.M{}, bson.M{}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}
	if patch.ExpiryDate.Set {
		if patch.ExpiryDate.Time == nil {
			unset["expiryDate"] = ""
		} else {
			set["expiryDate"] = *patch.ExpiryDate.Time
		}
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	var rec shareLinkRecord
	err := s.shareLinks.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("update share link: %w", err)
	}
	return rec.model(), nil
}

func (s *MongoStore) DeleteShareLink(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	res, err := s.shareLinks.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete share link: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) RecordAccess(ctx context.Context, token string) error {
	_, err := s.shareLinks.UpdateOne(ctx, bson.M{"token": token}, bson.M{
		"$set": bson.M{"lastAccessed": now()},
		"$inc": bson.M{"accessCount": 1},
	})
	if err != nil {
		return fmt.Errorf("record share link access: %w", err)
	}
	return nil
}
