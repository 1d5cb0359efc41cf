package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/louisbranch/bengkel/internal/services/web/storage"
)

// PutMechanic inserts or updates a mechanic.
func (s *Store) PutMechanic(ctx context.Context, m storage.Mechanic) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	m.ID = strings.TrimSpace(m.ID)
	m.Name = strings.TrimSpace(m.Name)
	if m.ID == "" {
		return invalidf("mechanic id is required")
	}
	if m.Name == "" {
		return invalidf("mechanic name is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO mechanics (id, name, phone, active, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    phone = excluded.phone,
    active = excluded.active`,
		m.ID, m.Name, strings.TrimSpace(m.Phone), boolToInt(m.Active), toMillis(s.stamp(m.CreatedAt)),
	)
	return classify("put mechanic", err)
}

// GetMechanic fetches a mechanic by id.
func (s *Store) GetMechanic(ctx context.Context, id string) (storage.Mechanic, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Mechanic{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT id, name, phone, active, created_at FROM mechanics WHERE id = ?`, strings.TrimSpace(id))
	m, err := scanMechanic(row.Scan)
	if err != nil {
		return storage.Mechanic{}, classify("get mechanic", err)
	}
	return m, nil
}

// ListMechanics returns every mechanic ordered by name.
func (s *Store) ListMechanics(ctx context.Context) ([]storage.Mechanic, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name, phone, active, created_at FROM mechanics ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list mechanics: %w", err)
	}
	defer rows.Close()

	var out []storage.Mechanic
	for rows.Next() {
		m, err := scanMechanic(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan mechanic: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list mechanics: %w", err)
	}
	return out, nil
}

// DeleteMechanic removes a mechanic with no recorded transactions.
func (s *Store) DeleteMechanic(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "mechanics", id)
}

func scanMechanic(scan func(...any) error) (storage.Mechanic, error) {
	var (
		m         storage.Mechanic
		active    int
		createdAt int64
	)
	if err := scan(&m.ID, &m.Name, &m.Phone, &active, &createdAt); err != nil {
		return storage.Mechanic{}, err
	}
	m.Active = active != 0
	m.CreatedAt = fromMillis(createdAt)
	return m, nil
}

// PutPart inserts or updates a part.
func (s *Store) PutPart(ctx context.Context, p storage.Part) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	p.ID = strings.TrimSpace(p.ID)
	p.SKU = strings.ToUpper(strings.TrimSpace(p.SKU))
	p.Name = strings.TrimSpace(p.Name)
	if p.ID == "" {
		return invalidf("part id is required")
	}
	if p.SKU == "" {
		return invalidf("part sku is required")
	}
	if p.Name == "" {
		return invalidf("part name is required")
	}
	if p.UnitPrice < 0 || p.Stock < 0 {
		return invalidf("part price and stock must not be negative")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO parts (id, sku, name, unit_price, stock, supplier_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    sku = excluded.sku,
    name = excluded.name,
    unit_price = excluded.unit_price,
    stock = excluded.stock,
    supplier_id = excluded.supplier_id`,
		p.ID, p.SKU, p.Name, p.UnitPrice, p.Stock, nullString(p.SupplierID), toMillis(s.stamp(p.CreatedAt)),
	)
	return classify("put part", err)
}

// GetPart fetches a part by id.
func (s *Store) GetPart(ctx context.Context, id string) (storage.Part, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Part{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT id, sku, name, unit_price, stock, supplier_id, created_at FROM parts WHERE id = ?`, strings.TrimSpace(id))
	p, err := scanPart(row.Scan)
	if err != nil {
		return storage.Part{}, classify("get part", err)
	}
	return p, nil
}

// ListParts returns every part ordered by name.
func (s *Store) ListParts(ctx context.Context) ([]storage.Part, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, sku, name, unit_price, stock, supplier_id, created_at FROM parts ORDER BY name COLLATE NOCASE, sku`)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()

	var out []storage.Part
	for rows.Next() {
		p, err := scanPart(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	return out, nil
}

// DeletePart removes a part.
func (s *Store) DeletePart(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "parts", id)
}

func scanPart(scan func(...any) error) (storage.Part, error) {
	var (
		p          storage.Part
		supplierID sql.NullString
		createdAt  int64
	)
	if err := scan(&p.ID, &p.SKU, &p.Name, &p.UnitPrice, &p.Stock, &supplierID, &createdAt); err != nil {
		return storage.Part{}, err
	}
	p.SupplierID = supplierID.String
	p.CreatedAt = fromMillis(createdAt)
	return p, nil
}

// PutService inserts or updates a service.
func (s *Store) PutService(ctx context.Context, svc storage.Service) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	svc.ID = strings.TrimSpace(svc.ID)
	svc.Name = strings.TrimSpace(svc.Name)
	if svc.ID == "" {
		return invalidf("service id is required")
	}
	if svc.Name == "" {
		return invalidf("service name is required")
	}
	if svc.Price < 0 {
		return invalidf("service price must not be negative")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO services (id, name, price, created_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    price = excluded.price`,
		svc.ID, svc.Name, svc.Price, toMillis(s.stamp(svc.CreatedAt)),
	)
	return classify("put service", err)
}

// GetService fetches a service by id.
func (s *Store) GetService(ctx context.Context, id string) (storage.Service, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Service{}, err
	}
	var (
		svc       storage.Service
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `SELECT id, name, price, created_at FROM services WHERE id = ?`, strings.TrimSpace(id)).
		Scan(&svc.ID, &svc.Name, &svc.Price, &createdAt)
	if err != nil {
		return storage.Service{}, classify("get service", err)
	}
	svc.CreatedAt = fromMillis(createdAt)
	return svc, nil
}

// ListServices returns every service ordered by name.
func (s *Store) ListServices(ctx context.Context) ([]storage.Service, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name, price, created_at FROM services ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var out []storage.Service
	for rows.Next() {
		var (
			svc       storage.Service
			createdAt int64
		)
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.Price, &createdAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		svc.CreatedAt = fromMillis(createdAt)
		out = append(out, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return out, nil
}

// DeleteService removes a service.
func (s *Store) DeleteService(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "services", id)
}

// PutSupplier inserts or updates a supplier.
func (s *Store) PutSupplier(ctx context.Context, sup storage.Supplier) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	sup.ID = strings.TrimSpace(sup.ID)
	sup.Name = strings.TrimSpace(sup.Name)
	if sup.ID == "" {
		return invalidf("supplier id is required")
	}
	if sup.Name == "" {
		return invalidf("supplier name is required")
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO suppliers (id, name, phone, address, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    phone = excluded.phone,
    address = excluded.address`,
		sup.ID, sup.Name, strings.TrimSpace(sup.Phone), strings.TrimSpace(sup.Address), toMillis(s.stamp(sup.CreatedAt)),
	)
	return classify("put supplier", err)
}

// GetSupplier fetches a supplier by id.
func (s *Store) GetSupplier(ctx context.Context, id string) (storage.Supplier, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Supplier{}, err
	}
	var (
		sup       storage.Supplier
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `SELECT id, name, phone, address, created_at FROM suppliers WHERE id = ?`, strings.TrimSpace(id)).
		Scan(&sup.ID, &sup.Name, &sup.Phone, &sup.Address, &createdAt)
	if err != nil {
		return storage.Supplier{}, classify("get supplier", err)
	}
	sup.CreatedAt = fromMillis(createdAt)
	return sup, nil
}

// ListSuppliers returns every supplier ordered by name.
func (s *Store) ListSuppliers(ctx context.Context) ([]storage.Supplier, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, name, phone, address, created_at FROM suppliers ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var out []storage.Supplier
	for rows.Next() {
		var (
			sup       storage.Supplier
			createdAt int64
		)
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Phone, &sup.Address, &createdAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		sup.CreatedAt = fromMillis(createdAt)
		out = append(out, sup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return out, nil
}

// DeleteSupplier removes a supplier no part refers to.
func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "suppliers", id)
}
