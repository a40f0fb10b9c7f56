package main

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"nominaadmin/auth"
	"nominaadmin/config"
	"nominaadmin/db"
	"nominaadmin/db/mongo"
	"nominaadmin/db/postgres"
	"nominaadmin/handlers"
	"nominaadmin/repository"
	"nominaadmin/routes"
)

func main() {
	// Load config from .env or system environment
	cfg := config.LoadConfig()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx := context.Background()

	var userRepo repository.UserRepository
	var roleRepo repository.RoleRepository
	var employeeRepo repository.EmployeeRepository
	var catalogRepo repository.CatalogRepository

	switch cfg.DBType {
	case "postgres":
		db.RunMigrations(cfg.PostgresURL)

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			logger.Fatalf("postgres connect: %v", err)
		}
		defer pg.Disconnect()

		roleRepo = repository.NewPostgresRoleRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		employeeRepo = repository.NewPostgresEmployeeRepo(pg.Conn, userRepo)
		catalogRepo = repository.NewPostgresCatalogRepo(pg.Conn)

	case "mongo":
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			logger.Fatalf("mongo connect: %v", err)
		}
		defer mg.Disconnect()

		mongoRoles := repository.NewMongoRoleRepo(mg.Client)
		mongoUsers := repository.NewMongoUserRepo(mg.Client, mongoRoles)
		mongoEmployees := repository.NewMongoEmployeeRepo(mg.Client, mongoUsers)
		mongoCatalogs := repository.NewMongoCatalogRepo(mg.Client)

		if err := mongoRoles.EnsureIndexes(ctx); err != nil {
			logger.Fatalf("mongo indexes: %v", err)
		}
		if err := mongoUsers.EnsureIndexes(ctx); err != nil {
			logger.Fatalf("mongo indexes: %v", err)
		}
		if err := mongoEmployees.EnsureIndexes(ctx); err != nil {
			logger.Fatalf("mongo indexes: %v", err)
		}
		if err := mongoCatalogs.EnsureIndexes(ctx); err != nil {
			logger.Fatalf("mongo indexes: %v", err)
		}

		roleRepo = mongoRoles
		userRepo = mongoUsers
		employeeRepo = mongoEmployees
		catalogRepo = mongoCatalogs

	default:
		logger.Fatalf("DB_TYPE %q not supported", cfg.DBType)
	}

	// Built-in roles, default catalogs and the bootstrap Super user
	if err := repository.Seed(ctx, userRepo, roleRepo, catalogRepo); err != nil {
		logger.Fatalf("seed: %v", err)
	}

	codec := auth.NewTokenCodec(cfg.JWTSecret)
	authenticator := auth.NewAuthenticator(userRepo, codec)

	// Handlers
	authHandler := &handlers.AuthHandler{Auth: authenticator}
	userHandler := &handlers.UserHandler{Users: userRepo, Roles: roleRepo}
	roleHandler := &handlers.RoleHandler{Roles: roleRepo, Users: userRepo}
	employeeHandler := &handlers.EmployeeHandler{Employees: employeeRepo, Users: userRepo}
	catalogHandler := &handlers.CatalogHandler{Catalogs: catalogRepo, Employees: employeeRepo}

	mux := routes.SetupRoutes(logger, authHandler, userHandler, roleHandler, employeeHandler, catalogHandler)

	// The gate wraps the whole mux and runs once per request.
	handler := auth.Middleware(codec, logger)(mux)

	logger.Infof("Server running on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Fatal(err)
	}
}
