package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nominaadmin/models"
)

const mongoDatabase = "nominaadmin"

type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Password   string             `bson:"password"`
	RoleID     primitive.ObjectID `bson:"rol"`
	Sesion     *time.Time         `bson:"sesion,omitempty"`
	Activo     bool               `bson:"activo"`
	Verificado bool               `bson:"verificado"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d *userDoc) toModel() *models.User {
	return &models.User{
		ID:         d.ID.Hex(),
		Email:      d.Email,
		Password:   d.Password,
		RoleID:     d.RoleID.Hex(),
		Sesion:     d.Sesion,
		Activo:     d.Activo,
		Verificado: d.Verificado,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type MongoUserRepo struct {
	DB    *mongo.Client
	Roles RoleRepository
}

func NewMongoUserRepo(db *mongo.Client, roles RoleRepository) *MongoUserRepo {
	return &MongoUserRepo{DB: db, Roles: roles}
}

func (r *MongoUserRepo) collection() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("usuario")
}

// EnsureIndexes creates the unique email index. Called once at startup.
func (r *MongoUserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoUserRepo) CreateUser(ctx context.Context, user *models.User) error {
	roleID, err := primitive.ObjectIDFromHex(user.RoleID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	doc := userDoc{
		Email:      user.Email,
		Password:   user.Password,
		RoleID:     roleID,
		Sesion:     user.Sesion,
		Activo:     user.Activo,
		Verificado: user.Verificado,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	res, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	user.ID = res.InsertedID.(primitive.ObjectID).Hex()
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *MongoUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	err := r.collection().FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	user := doc.toModel()
	if err := r.populateRole(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *MongoUserRepo) populateRole(ctx context.Context, user *models.User) error {
	role, err := r.Roles.GetRoleByID(ctx, user.RoleID)
	if err != nil {
		return err
	}
	user.Rol = role
	return nil
}

func (r *MongoUserRepo) ListUsers(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	q := bson.M{}
	if filter.RoleID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.RoleID)
		if err != nil {
			return nil, err
		}
		q["rol"] = oid
	}
	if filter.Activo != nil {
		q["activo"] = *filter.Activo
	}
	if filter.SesionLive != nil {
		threshold := time.Now().UTC().Add(-models.SessionWindow)
		if *filter.SesionLive {
			q["sesion"] = bson.M{"$gte": threshold}
		} else {
			q["$or"] = bson.A{
				bson.M{"sesion": nil},
				bson.M{"sesion": bson.M{"$lt": threshold}},
			}
		}
	}

	cur, err := r.collection().Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []*models.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		user := doc.toModel()
		if err := r.populateRole(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, cur.Err()
}

func (r *MongoUserRepo) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	for key, value := range fields {
		if key == "rol" {
			roleOID, err := primitive.ObjectIDFromHex(value.(string))
			if err != nil {
				return nil, err
			}
			set["rol"] = roleOID
			continue
		}
		set[key] = value
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

// UpdateSession stamps the last-login time. It deliberately skips updated_at
// so a login does not look like a record edit.
func (r *MongoUserRepo) UpdateSession(ctx context.Context, id string, at time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"sesion": at}})
	return err
}

func (r *MongoUserRepo) CountByRole(ctx context.Context, roleID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return 0, err
	}
	return r.collection().CountDocuments(ctx, bson.M{"rol": oid})
}
