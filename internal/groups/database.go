package groups

import (
	"context"

	"github.com/hostersuite/wfclient/internal/schema"
	"github.com/hostersuite/wfclient/internal/session"
)

// Database administers databases and database users. The provider defaults
// db_type to postgresql; passing an empty dbType keeps that default.
type Database struct {
	s *session.Session
}

// NewDatabase binds a database group to a session.
func NewDatabase(s *session.Session) *Database { return &Database{s: s} }

// List returns the account's databases.
func (d *Database) List(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, d.s, "list_dbs")
}

// ListUsers returns the account's database users.
func (d *Database) ListUsers(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, d.s, "list_db_users")
}

// Create creates a database unless one with the same name exists.
func (d *Database) Create(ctx context.Context, name, dbType, password string) error {
	kw := schema.Args{"name": name, "password": password}
	putString(kw, "db_type", dbType)
	_, err := d.s.Call(ctx, "create_db", kw)
	return err
}

// Delete removes an existing database.
func (d *Database) Delete(ctx context.Context, name, dbType string) error {
	kw := schema.Args{"name": name}
	putString(kw, "db_type", dbType)
	_, err := d.s.Call(ctx, "delete_db", kw)
	return err
}

// CreateUser creates a database user unless one with the same name exists.
func (d *Database) CreateUser(ctx context.Context, username, password, dbType string) error {
	kw := schema.Args{"username": username, "password": password}
	putString(kw, "db_type", dbType)
	_, err := d.s.Call(ctx, "create_db_user", kw)
	return err
}

// DeleteUser removes an existing database user.
func (d *Database) DeleteUser(ctx context.Context, username, dbType string) error {
	kw := schema.Args{"username": username}
	putString(kw, "db_type", dbType)
	_, err := d.s.Call(ctx, "delete_db_user", kw)
	return err
}

// ChangeUserPassword sets a new password on an existing database user.
func (d *Database) ChangeUserPassword(ctx context.Context, username, password, dbType string) error {
	kw := schema.Args{"username": username, "password": password}
	putString(kw, "db_type", dbType)
	_, err := d.s.Call(ctx, "change_db_user_password", kw)
	return err
}

// MakeUserOwner transfers ownership of a database to an existing user.
func (d *Database) MakeUserOwner(ctx context.Context, username, database, dbType string) error {
	kw := schema.Args{"username": username, "database": database}
	putString(kw, "db_type", dbType)
	_, err := d.s.Call(ctx, "make_user_owner_of_db", kw)
	return err
}

// GrantPermissions grants an existing user access to a database.
func (d *Database) GrantPermissions(ctx context.Context, username, database, dbType string) error {
	kw := schema.Args{"username": username, "database": database}
	putString(kw, "db_type", dbType)
	_, err := d.s.Call(ctx, "grant_db_permissions", kw)
	return err
}

// RevokePermissions revokes an existing user's access to a database.
func (d *Database) RevokePermissions(ctx context.Context, username, database, dbType string) error {
	kw := schema.Args{"username": username, "database": database}
	putString(kw, "db_type", dbType)
	_, err := d.s.Call(ctx, "revoke_db_permissions", kw)
	return err
}

// EnableAddon enables an addon on an existing database.
func (d *Database) EnableAddon(ctx context.Context, database, dbType, addon string) error {
	kw := schema.Args{"database": database, "addon": addon}
	putString(kw, "db_type", dbType)
	_, err := d.s.Call(ctx, "enable_addon", kw)
	return err
}
