package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nominaadmin/models"
)

type catalogDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Tipo   string             `bson:"tipo"`
	Nombre string             `bson:"nombre"`
	Activo bool               `bson:"activo"`
}

func (d *catalogDoc) toModel() *models.CatalogEntry {
	return &models.CatalogEntry{ID: d.ID.Hex(), Tipo: d.Tipo, Nombre: d.Nombre, Activo: d.Activo}
}

type MongoCatalogRepo struct {
	DB *mongo.Client
}

func NewMongoCatalogRepo(db *mongo.Client) *MongoCatalogRepo {
	return &MongoCatalogRepo{DB: db}
}

func (r *MongoCatalogRepo) collection() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("catalogo")
}

func (r *MongoCatalogRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tipo", Value: 1}, {Key: "nombre", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoCatalogRepo) CreateEntry(ctx context.Context, tipo string, entry *models.CatalogEntry) error {
	doc := catalogDoc{Tipo: tipo, Nombre: entry.Nombre, Activo: entry.Activo}
	res, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	entry.ID = res.InsertedID.(primitive.ObjectID).Hex()
	entry.Tipo = tipo
	return nil
}

func (r *MongoCatalogRepo) GetEntryByID(ctx context.Context, tipo, id string) (*models.CatalogEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid, "tipo": tipo})
}

func (r *MongoCatalogRepo) GetEntryByName(ctx context.Context, tipo, nombre string) (*models.CatalogEntry, error) {
	return r.findOne(ctx, bson.M{"tipo": tipo, "nombre": nombre})
}

func (r *MongoCatalogRepo) findOne(ctx context.Context, filter bson.M) (*models.CatalogEntry, error) {
	var doc catalogDoc
	err := r.collection().FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *MongoCatalogRepo) ListEntries(ctx context.Context, tipo string) ([]*models.CatalogEntry, error) {
	cur, err := r.collection().Find(ctx, bson.M{"tipo": tipo})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var entries []*models.CatalogEntry
	for cur.Next(ctx) {
		var doc catalogDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		entries = append(entries, doc.toModel())
	}
	return entries, cur.Err()
}

func (r *MongoCatalogRepo) UpdateEntry(ctx context.Context, tipo, id string, nombre *string, activo *bool) (*models.CatalogEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	set := bson.M{}
	if nombre != nil {
		set["nombre"] = *nombre
	}
	if activo != nil {
		set["activo"] = *activo
	}
	if len(set) == 0 {
		return r.findOne(ctx, bson.M{"_id": oid, "tipo": tipo})
	}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": oid, "tipo": tipo}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid, "tipo": tipo})
}

func (r *MongoCatalogRepo) DeleteEntry(ctx context.Context, tipo, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": oid, "tipo": tipo})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
