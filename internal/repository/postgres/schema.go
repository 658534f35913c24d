package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/avargas/rentals-api/internal/config"
	"github.com/avargas/rentals-api/internal/model"
	"github.com/avargas/rentals-api/pkg/security"
)

// Fixed primary ids for the seeded rows. Seeding is keyed on these so it
// stays idempotent across restarts.
var (
	PlanBasicID        = uuid.MustParse("f1f7d9a2-3c41-4b8e-9a35-5b0d8f2f1a01")
	PlanProfessionalID = uuid.MustParse("f1f7d9a2-3c41-4b8e-9a35-5b0d8f2f1a02")
	PlanEnterpriseID   = uuid.MustParse("f1f7d9a2-3c41-4b8e-9a35-5b0d8f2f1a03")
	AdminUserID        = uuid.MustParse("9d2c4e80-11aa-4e2f-8c77-6f3b9e4d1c00")
)

// The DDL sticks to types that behave the same on postgres and SQLite.
const schema = `
CREATE TABLE IF NOT EXISTS plans (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	max_properties INTEGER NOT NULL,
	max_tenants INTEGER NOT NULL,
	max_contracts INTEGER NOT NULL,
	price NUMERIC NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	plan_id TEXT NOT NULL REFERENCES plans(id),
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMP NOT NULL,
	last_access_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS properties (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	address TEXT NOT NULL,
	type TEXT NOT NULL,
	bedrooms INTEGER NOT NULL DEFAULT 0,
	bathrooms INTEGER NOT NULL DEFAULT 0,
	price NUMERIC NOT NULL,
	status TEXT NOT NULL DEFAULT 'available',
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS tenants (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL DEFAULT '',
	document TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS contracts (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(id),
	property_id TEXT NOT NULL REFERENCES properties(id),
	tenant_id TEXT NOT NULL REFERENCES tenants(id),
	start_date TIMESTAMP NOT NULL,
	end_date TIMESTAMP NOT NULL,
	monthly_price NUMERIC NOT NULL,
	status TEXT NOT NULL DEFAULT 'active',
	created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_properties_user ON properties(user_id);
CREATE INDEX IF NOT EXISTS idx_tenants_user ON tenants(user_id);
CREATE INDEX IF NOT EXISTS idx_contracts_user ON contracts(user_id);
CREATE INDEX IF NOT EXISTS idx_contracts_property ON contracts(property_id);
`

// Migrate creates the schema. Safe to run on every startup.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

var seedPlans = []model.Plan{
	{
		ID:            PlanBasicID,
		Name:          "Basic",
		MaxProperties: 5,
		MaxTenants:    10,
		MaxContracts:  15,
		Price:         0.00,
		Description:   "Up to 5 properties, 10 tenants and 15 contracts.",
		Active:        true,
	},
	{
		ID:            PlanProfessionalID,
		Name:          "Professional",
		MaxProperties: 20,
		MaxTenants:    50,
		MaxContracts:  100,
		Price:         29.99,
		Description:   "Up to 20 properties, 50 tenants and 100 contracts.",
		Active:        true,
	},
	{
		ID:            PlanEnterpriseID,
		Name:          "Enterprise",
		MaxProperties: 100,
		MaxTenants:    250,
		MaxContracts:  500,
		Price:         99.99,
		Description:   "Up to 100 properties, 250 tenants and 500 contracts.",
		Active:        true,
	},
}

// Seed inserts the default plans and the administrative account. Keyed by
// fixed primary ids, so re-running it after first initialization changes
// nothing.
func Seed(ctx context.Context, db *sqlx.DB, hasher security.PasswordHasher, admin config.AdminSeed) error {
	planQuery := db.Rebind(`
		INSERT INTO plans (id, name, max_properties, max_tenants, max_contracts, price, description, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`)
	for _, p := range seedPlans {
		if _, err := db.ExecContext(ctx, planQuery,
			p.ID, p.Name, p.MaxProperties, p.MaxTenants, p.MaxContracts, p.Price, p.Description, p.Active,
		); err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", p.Name, err)
		}
	}

	hash, err := hasher.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	userQuery := db.Rebind(`
		INSERT INTO users (id, username, email, password_hash, first_name, last_name, plan_id, is_admin, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, TRUE, TRUE, ?)
		ON CONFLICT (id) DO NOTHING
	`)
	if _, err := db.ExecContext(ctx, userQuery,
		AdminUserID, admin.Username, admin.Email, hash, "System", "Administrator", PlanEnterpriseID, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	return nil
}
