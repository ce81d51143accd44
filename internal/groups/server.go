package groups

import (
	"context"

	"github.com/hostersuite/wfclient/internal/schema"
	"github.com/hostersuite/wfclient/internal/session"
)

// ShellUser administers shell accounts.
type ShellUser struct {
	s *session.Session
}

// NewShellUser binds a shell user group to a session.
func NewShellUser(s *session.Session) *ShellUser { return &ShellUser{s: s} }

// List returns the account's shell users.
func (u *ShellUser) List(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, u.s, "list_users")
}

// Create creates a shell user unless one with the same name exists.
func (u *ShellUser) Create(ctx context.Context, username, shell string, groups []string) error {
	kw := schema.Args{"username": username, "shell": shell}
	putList(kw, "groups", groups)
	_, err := u.s.Call(ctx, "create_user", kw)
	return err
}

// Delete removes an existing shell user.
func (u *ShellUser) Delete(ctx context.Context, username string) error {
	_, err := u.s.Call(ctx, "delete_user", schema.Args{"username": username})
	return err
}

// ChangePassword sets a new password on an existing shell user.
func (u *ShellUser) ChangePassword(ctx context.Context, username, password string) error {
	_, err := u.s.Call(ctx, "change_user_password", schema.Args{
		"username": username,
		"password": password,
	})
	return err
}

// Cron administers crontab lines on the account's home server.
type Cron struct {
	s *session.Session
}

// NewCron binds a cron group to a session.
func NewCron(s *session.Session) *Cron { return &Cron{s: s} }

// Create appends a crontab line.
func (c *Cron) Create(ctx context.Context, line string) error {
	_, err := c.s.Call(ctx, "create_cronjob", schema.Args{"line": line})
	return err
}

// Delete removes a crontab line.
func (c *Cron) Delete(ctx context.Context, line string) error {
	_, err := c.s.Call(ctx, "delete_cronjob", schema.Args{"line": line})
	return err
}

// File edits files on the account's home server.
type File struct {
	s *session.Session
}

// NewFile binds a file group to a session.
func NewFile(s *session.Session) *File { return &File{s: s} }

// ReplaceInFile applies (old, new) replacement pairs to a remote file.
func (f *File) ReplaceInFile(ctx context.Context, filename string, changes [][]string) error {
	kw := schema.Args{"filename": filename}
	if len(changes) > 0 {
		kw["changes"] = changes
	}
	_, err := f.s.Call(ctx, "replace_in_file", kw)
	return err
}

// Write writes content to a remote file with the given open mode.
func (f *File) Write(ctx context.Context, filename, content, mode string) error {
	_, err := f.s.Call(ctx, "write_file", schema.Args{
		"filename": filename,
		"str":      content,
		"mode":     mode,
	})
	return err
}

// Server reports on the provider's machines and IPs.
type Server struct {
	s *session.Session
}

// NewServer binds a server group to a session.
func NewServer(s *session.Session) *Server { return &Server{s: s} }

// ListIPs returns the account's IP addresses.
func (s *Server) ListIPs(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, s.s, "list_ips")
}

// ListMachines returns the machines the account can reach.
func (s *Server) ListMachines(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, s.s, "list_machines")
}

// System runs shell commands on the account's home server.
type System struct {
	s *session.Session
}

// NewSystem binds a system group to a session.
func NewSystem(s *session.Session) *System { return &System{s: s} }

// Run executes a shell command remotely.
func (sys *System) Run(ctx context.Context, cmd string) error {
	_, err := sys.s.Call(ctx, "system", schema.Args{"cmd": cmd})
	return err
}
