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

type employeeDoc struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty"`
	UsuarioID         *primitive.ObjectID `bson:"usuario,omitempty"`
	Direccion         string              `bson:"direccion"`
	DPI               string              `bson:"dpi"`
	IGSS              string              `bson:"igss"`
	NIT               string              `bson:"nit"`
	Cargo             string              `bson:"cargo"`
	Banco             string              `bson:"banco"`
	Cuenta            string              `bson:"cuenta"`
	Sueldo            float64             `bson:"sueldo"`
	Bonificacion      float64             `bson:"bonificacion"`
	FechaInicio       time.Time           `bson:"fecha_inicio"`
	FechaFinalizacion *time.Time          `bson:"fecha_finalizacion,omitempty"`
	ContratoNo        string              `bson:"contrato_no"`
	Renglon           string              `bson:"renglon"`
	Activo            bool                `bson:"activo"`
}

func (d *employeeDoc) toModel() *models.Employee {
	e := &models.Employee{
		ID:                d.ID.Hex(),
		Direccion:         d.Direccion,
		DPI:               d.DPI,
		IGSS:              d.IGSS,
		NIT:               d.NIT,
		Cargo:             d.Cargo,
		Banco:             d.Banco,
		Cuenta:            d.Cuenta,
		Sueldo:            d.Sueldo,
		Bonificacion:      d.Bonificacion,
		FechaInicio:       d.FechaInicio,
		FechaFinalizacion: d.FechaFinalizacion,
		ContratoNo:        d.ContratoNo,
		Renglon:           d.Renglon,
		Activo:            d.Activo,
	}
	if d.UsuarioID != nil {
		e.UsuarioID = d.UsuarioID.Hex()
	}
	return e
}

func employeeToDoc(e *models.Employee) (*employeeDoc, error) {
	doc := &employeeDoc{
		Direccion:         e.Direccion,
		DPI:               e.DPI,
		IGSS:              e.IGSS,
		NIT:               e.NIT,
		Cargo:             e.Cargo,
		Banco:             e.Banco,
		Cuenta:            e.Cuenta,
		Sueldo:            e.Sueldo,
		Bonificacion:      e.Bonificacion,
		FechaInicio:       e.FechaInicio,
		FechaFinalizacion: e.FechaFinalizacion,
		ContratoNo:        e.ContratoNo,
		Renglon:           e.Renglon,
		Activo:            e.Activo,
	}
	if e.UsuarioID != "" {
		oid, err := primitive.ObjectIDFromHex(e.UsuarioID)
		if err != nil {
			return nil, err
		}
		doc.UsuarioID = &oid
	}
	return doc, nil
}

type MongoEmployeeRepo struct {
	DB    *mongo.Client
	Users UserRepository
}

func NewMongoEmployeeRepo(db *mongo.Client, users UserRepository) *MongoEmployeeRepo {
	return &MongoEmployeeRepo{DB: db, Users: users}
}

func (r *MongoEmployeeRepo) collection() *mongo.Collection {
	return r.DB.Database(mongoDatabase).Collection("empleado")
}

// EnsureIndexes creates the unique identifier indexes. Called once at startup.
func (r *MongoEmployeeRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{}
	for _, field := range []string{"dpi", "igss", "nit", "cuenta", "contrato_no"} {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
	}
	_, err := r.collection().Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MongoEmployeeRepo) CreateEmployee(ctx context.Context, e *models.Employee) error {
	doc, err := employeeToDoc(e)
	if err != nil {
		return err
	}
	res, err := r.collection().InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	e.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return nil
}

func (r *MongoEmployeeRepo) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc employeeDoc
	if err := r.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	e := doc.toModel()
	if err := r.populateUser(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *MongoEmployeeRepo) populateUser(ctx context.Context, e *models.Employee) error {
	if e.UsuarioID == "" {
		return nil
	}
	user, err := r.Users.GetUserByID(ctx, e.UsuarioID)
	if err != nil {
		return err
	}
	e.Usuario = user
	return nil
}

func (r *MongoEmployeeRepo) ListEmployees(ctx context.Context, filter EmployeeFilter) ([]*models.Employee, error) {
	q := bson.M{}
	if filter.UsuarioID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.UsuarioID)
		if err != nil {
			return nil, err
		}
		q["usuario"] = oid
	}
	if filter.Cargo != "" {
		q["cargo"] = filter.Cargo
	}

	cur, err := r.collection().Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var employees []*models.Employee
	for cur.Next(ctx) {
		var doc employeeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		e := doc.toModel()
		if err := r.populateUser(ctx, e); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, cur.Err()
}

func (r *MongoEmployeeRepo) UpdateEmployee(ctx context.Context, id string, e *models.Employee) (*models.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	doc, err := employeeToDoc(e)
	if err != nil {
		return nil, err
	}
	res, err := r.collection().ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, nil
	}
	return r.GetEmployeeByID(ctx, id)
}

func (r *MongoEmployeeRepo) DeleteEmployee(ctx context.Context, id string) error {
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

func (r *MongoEmployeeRepo) HasDuplicate(ctx context.Context, dpi, igss, nit, cuenta, contratoNo, excludeID string) (bool, error) {
	q := bson.M{"$or": bson.A{
		bson.M{"dpi": dpi},
		bson.M{"igss": igss},
		bson.M{"nit": nit},
		bson.M{"cuenta": cuenta},
		bson.M{"contrato_no": contratoNo},
	}}
	// An unparseable excludeID matches no document, so the exclusion is moot.
	if oid, err := primitive.ObjectIDFromHex(excludeID); excludeID != "" && err == nil {
		q["_id"] = bson.M{"$ne": oid}
	}
	n, err := r.collection().CountDocuments(ctx, q)
	return n > 0, err
}

func (r *MongoEmployeeRepo) CountEmployees(ctx context.Context) (int64, int64, error) {
	activos, err := r.collection().CountDocuments(ctx, bson.M{"activo": true})
	if err != nil {
		return 0, 0, err
	}
	inactivos, err := r.collection().CountDocuments(ctx, bson.M{"activo": false})
	if err != nil {
		return 0, 0, err
	}
	return activos, inactivos, nil
}

func (r *MongoEmployeeRepo) CountByField(ctx context.Context, field, value string) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{field: value})
}
