package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nominaadmin/models"
)

type roleDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Nombre string             `bson:"nombre"`
	Activo bool               `bson:"activo"`
}

func (d *roleDoc) toModel() *models.Role {
	return &models.Role{ID: d.ID.Hex(), Nombre: d.Nombre, Activo: d.Activo}
}

type MongoRoleRepo struct {
	DB *mongo.Client
}

func NewMongoRoleRepo(db *mongo.Client) *MongoRoleRepo {
	return &MongoRoleRepo{DB: db}
}

func (r *MongoRoleRepo) collection() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("rol")
}

func (r *MongoRoleRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nombre", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoRoleRepo) CreateRole(ctx context.Context, role *models.Role) error {
	doc := roleDoc{Nombre: role.Nombre, Activo: role.Activo}
	res, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	role.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *MongoRoleRepo) GetRoleByID(ctx context.Context, id string) (*models.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRoleRepo) GetRoleByName(ctx context.Context, nombre string) (*models.Role, error) {
	return r.findOne(ctx, bson.M{"nombre": nombre})
}

func (r *MongoRoleRepo) findOne(ctx context.Context, filter bson.M) (*models.Role, error) {
	var doc roleDoc
	err := r.collection().FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return doc.toModel(), nil
}

// ListRoles returns roles excluding the protected Super role.
func (r *MongoRoleRepo) ListRoles(ctx context.Context, activo *bool) ([]*models.Role, error) {
	q := bson.M{"nombre": bson.M{"$ne": models.RoleNameSuper}}
	if activo != nil {
		q["activo"] = *activo
	}

	cur, err := r.collection().Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var roles []*models.Role
	for cur.Next(ctx) {
		var doc roleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		roles = append(roles, doc.toModel())
	}
	return roles, cur.Err()
}

func (r *MongoRoleRepo) RenameRole(ctx context.Context, id, nombre string) (*models.Role, error) {
	return r.update(ctx, id, bson.M{"nombre": nombre})
}

func (r *MongoRoleRepo) DeactivateRole(ctx context.Context, id string) (*models.Role, error) {
	return r.update(ctx, id, bson.M{"activo": false})
}

func (r *MongoRoleRepo) update(ctx context.Context, id string, set bson.M) (*models.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	res, err := r.collection().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRoleRepo) DeleteRole(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
