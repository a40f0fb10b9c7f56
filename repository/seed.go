package repository

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"nominaadmin/models"
)

const (
	seedSuperEmail    = "admin@super.com"
	seedSuperPassword = "Super1234*"
)

// seedCatalogs are the lookup values a fresh install starts with.
var seedCatalogs = map[string][]string{
	models.CatalogBanco:   {"Banrural", "Banco Industrial", "BAM"},
	models.CatalogRenglon: {"011", "022", "029"},
	models.CatalogPuesto:  {"Administrador", "Contador", "Analista"},
}

// Seed creates the built-in roles, the default catalog entries and the
// bootstrap Super user if they are missing. Safe to run on every startup.
func Seed(ctx context.Context, users UserRepository, roles RoleRepository, catalogs CatalogRepository) error {
	for _, nombre := range []string{models.RoleNameSuper, models.RoleNameAdministrador, models.RoleNameUsuario} {
		existing, err := roles.GetRoleByName(ctx, nombre)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", nombre, err)
		}
		if existing == nil {
			if err := roles.CreateRole(ctx, &models.Role{Nombre: nombre, Activo: true}); err != nil {
				return fmt.Errorf("seed role %s: %w", nombre, err)
			}
		}
	}

	for tipo, nombres := range seedCatalogs {
		for _, nombre := range nombres {
			existing, err := catalogs.GetEntryByName(ctx, tipo, nombre)
			if err != nil {
				return fmt.Errorf("seed catalog %s/%s: %w", tipo, nombre, err)
			}
			if existing == nil {
				entry := &models.CatalogEntry{Nombre: nombre, Activo: true}
				if err := catalogs.CreateEntry(ctx, tipo, entry); err != nil {
					return fmt.Errorf("seed catalog %s/%s: %w", tipo, nombre, err)
				}
			}
		}
	}

	superRole, err := roles.GetRoleByName(ctx, models.RoleNameSuper)
	if err != nil {
		return err
	}
	if superRole == nil {
		return fmt.Errorf("role %q missing after seeding", models.RoleNameSuper)
	}

	existing, err := users.GetUserByEmail(ctx, seedSuperEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(seedSuperPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return users.CreateUser(ctx, &models.User{
		Email:      seedSuperEmail,
		Password:   string(hashed),
		RoleID:     superRole.ID,
		Activo:     true,
		Verificado: true,
	})
}
