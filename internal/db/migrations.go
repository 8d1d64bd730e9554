package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'company_status') THEN
			CREATE TYPE company_status AS ENUM ('ACTIVE', 'INACTIVE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'vehicle_status') THEN
			CREATE TYPE vehicle_status AS ENUM ('FREE', 'IN_CONTRACT', 'IN_MAINTENANCE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM ('ACTIVE', 'INACTIVE', 'PAUSED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'fine_status') THEN
			CREATE TYPE fine_status AS ENUM ('ACTIVE', 'SENT_TO_CLIENT', 'PAID', 'OVERDUE');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		legal_name VARCHAR(255) NOT NULL,
		trade_name VARCHAR(255) NOT NULL,
		tax_number VARCHAR(14) NOT NULL UNIQUE,
		status company_status NOT NULL DEFAULT 'ACTIVE',
		phone VARCHAR(16),
		email VARCHAR(255),
		city VARCHAR(128),
		state VARCHAR(2),
		postal_code VARCHAR(9),
		related_company_id UUID REFERENCES companies(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_companies_related ON companies (related_company_id);`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		full_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(128) NOT NULL,
		user_type VARCHAR(16) NOT NULL DEFAULT 'STANDARD',
		is_first_access BOOLEAN NOT NULL DEFAULT TRUE,
		is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS vehicle_models (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		model_name VARCHAR(128) NOT NULL,
		manufacturer VARCHAR(64) NOT NULL,
		observations TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		service_provider_company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		client_company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date DATE,
		status contract_status NOT NULL DEFAULT 'ACTIVE',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_contract_provider_client_active
		ON contracts (service_provider_company_id, client_company_id)
		WHERE status IN ('ACTIVE', 'PAUSED');`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		vehicle_model_id UUID NOT NULL REFERENCES vehicle_models(id) ON DELETE RESTRICT,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		license_plate VARCHAR(8),
		chassis VARCHAR(17) NOT NULL,
		renavam VARCHAR(16),
		qr_code VARCHAR(64),
		color VARCHAR(32),
		fuel_type VARCHAR(16) NOT NULL,
		mileage BIGINT NOT NULL DEFAULT 0,
		manufacture_year INT,
		model_year INT,
		status vehicle_status NOT NULL DEFAULT 'FREE',
		contract_id UUID REFERENCES contracts(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_vehicles_company_plate
		ON vehicles (company_id, license_plate)
		WHERE license_plate IS NOT NULL AND license_plate <> '';`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_vehicles_company_chassis ON vehicles (company_id, chassis);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_vehicles_qr_code
		ON vehicles (qr_code)
		WHERE qr_code IS NOT NULL AND qr_code <> '';`,
	`CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles (status);`,
	`CREATE TABLE IF NOT EXISTS contract_vehicles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
		vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		attached_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		released_at TIMESTAMPTZ
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_vehicles_contract ON contract_vehicles (contract_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_vehicles_vehicle ON contract_vehicles (vehicle_id);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_contract_vehicle_open
		ON contract_vehicles (vehicle_id)
		WHERE released_at IS NULL;`,
	`CREATE TABLE IF NOT EXISTS fines (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		fine_number VARCHAR(64) NOT NULL,
		vehicle_id UUID NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		infraction_date_time TIMESTAMPTZ NOT NULL,
		due_date DATE NOT NULL,
		enforcing_agency VARCHAR(32) NOT NULL,
		location TEXT NOT NULL,
		base_amount NUMERIC(12,2) NOT NULL CHECK (base_amount >= 0),
		discount_amount NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (discount_amount >= 0),
		interest_amount NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (interest_amount >= 0),
		final_amount NUMERIC(12,2) NOT NULL CHECK (final_amount >= 0),
		status fine_status NOT NULL DEFAULT 'ACTIVE',
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_fines_number_vehicle ON fines (fine_number, vehicle_id);`,
	`CREATE INDEX IF NOT EXISTS idx_fines_company ON fines (company_id);`,
	`CREATE INDEX IF NOT EXISTS idx_fines_status ON fines (status);`,
	`CREATE INDEX IF NOT EXISTS idx_fines_due_date ON fines (due_date);`,
	`CREATE TABLE IF NOT EXISTS fine_status_log (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		fine_id UUID NOT NULL REFERENCES fines(id) ON DELETE CASCADE,
		old_status fine_status,
		new_status fine_status NOT NULL,
		note TEXT,
		changed_by UUID REFERENCES users(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_fine_status_log_fine ON fine_status_log (fine_id);`,
	`CREATE OR REPLACE FUNCTION set_row_updated_at()
	RETURNS TRIGGER AS $$
	BEGIN
		NEW.updated_at = NOW();
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql;`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_companies_updated_at') THEN
			CREATE TRIGGER trg_companies_updated_at
				BEFORE UPDATE ON companies
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_vehicles_updated_at') THEN
			CREATE TRIGGER trg_vehicles_updated_at
				BEFORE UPDATE ON vehicles
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_contracts_updated_at') THEN
			CREATE TRIGGER trg_contracts_updated_at
				BEFORE UPDATE ON contracts
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = 'trg_fines_updated_at') THEN
			CREATE TRIGGER trg_fines_updated_at
				BEFORE UPDATE ON fines
				FOR EACH ROW
				EXECUTE PROCEDURE set_row_updated_at();
		END IF;
	END
	$$;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
