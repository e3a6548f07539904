package database

import (
	"fmt"
	"time"
)

// Service is an advertised service persisted across restarts.
type Service struct {
	ID        int64
	Name      string
	Type      string
	Port      int
	CreatedAt time.Time
}

// SaveService records a service, updating the port if a service with the
// same name and type already exists.
func (db *DB) SaveService(name, serviceType string, port int) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `
		INSERT INTO services (name, service_type, port, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name, service_type) DO UPDATE SET
			port = excluded.port,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := db.conn.Exec(query, name, serviceType, port); err != nil {
		return fmt.Errorf("failed to save service %s.%s: %w", name, serviceType, err)
	}
	return nil
}

// ListServices returns every stored service in insertion order.
func (db *DB) ListServices() ([]Service, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT id, name, service_type, port, created_at
		FROM services
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Type, &s.Port, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service rows: %w", err)
	}
	return services, nil
}

// DeleteService removes a service. Missing services return ErrNotFound.
func (db *DB) DeleteService(name, serviceType string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.Exec("DELETE FROM services WHERE name = ? AND service_type = ?", name, serviceType)
	if err != nil {
		return fmt.Errorf("failed to delete service %s.%s: %w", name, serviceType, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: service %s.%s", ErrNotFound, name, serviceType)
	}
	return nil
}
