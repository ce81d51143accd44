package groups

import (
	"context"

	"github.com/hostersuite/wfclient/internal/schema"
	"github.com/hostersuite/wfclient/internal/session"
)

// StdPrefixes is the conventional set of administrative address prefixes
// used by the batch email helpers when no explicit prefixes are given.
var StdPrefixes = []string{
	"www", "admin", "webmaster", "postmaster", "hostmaster",
	"info", "sales", "marketing", "support", "abuse",
}

// Mailbox administers IMAP/POP mailboxes.
type Mailbox struct {
	s *session.Session
}

// NewMailbox binds a mailbox group to a session.
func NewMailbox(s *session.Session) *Mailbox { return &Mailbox{s: s} }

// MailboxParams configures a mailbox create or update.
type MailboxParams struct {
	Name string

	// Spam protection is enabled unless explicitly disabled, matching the
	// provider's own default.
	DisableSpamProtection bool

	DiscardSpam         bool
	SpamRedirectFolder  string
	UseManualProcmailrc bool
	ManualProcmailrc    string
}

func (p MailboxParams) kwargs() schema.Args {
	return schema.Args{
		"mailbox":                p.Name,
		"enable_spam_protection": !p.DisableSpamProtection,
		"discard_spam":           p.DiscardSpam,
		"spam_redirect_folder":   p.SpamRedirectFolder,
		"use_manual_procmailrc":  p.UseManualProcmailrc,
		"manual_procmailrc":      p.ManualProcmailrc,
	}
}

// List returns the account's mailboxes.
func (m *Mailbox) List(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, m.s, "list_mailboxes")
}

// Create creates a mailbox unless one with the same name already exists.
func (m *Mailbox) Create(ctx context.Context, p MailboxParams) error {
	_, err := m.s.Call(ctx, "create_mailbox", p.kwargs())
	return err
}

// Update changes an existing mailbox's settings.
func (m *Mailbox) Update(ctx context.Context, p MailboxParams) error {
	_, err := m.s.Call(ctx, "update_mailbox", p.kwargs())
	return err
}

// Delete removes an existing mailbox.
func (m *Mailbox) Delete(ctx context.Context, name string) error {
	_, err := m.s.Call(ctx, "delete_mailbox", schema.Args{"mailbox": name})
	return err
}

// ChangePassword sets a new password on an existing mailbox.
func (m *Mailbox) ChangePassword(ctx context.Context, name, password string) error {
	_, err := m.s.Call(ctx, "change_mailbox_password", schema.Args{
		"mailbox":  name,
		"password": password,
	})
	return err
}

// Email administers email addresses and their forwarding targets.
type Email struct {
	s *session.Session
}

// NewEmail binds an email group to a session.
func NewEmail(s *session.Session) *Email { return &Email{s: s} }

// EmailParams configures an address create or update.
type EmailParams struct {
	Address string

	// Targets are mailbox names or forwarding addresses; the wire format
	// wants them as one comma-separated string, which the normalizer
	// produces.
	Targets []string

	AutoresponderOn      bool
	AutoresponderSubject string
	AutoresponderMessage string
	AutoresponderFrom    string
	ScriptMachine        string
	ScriptPath           string
}

func (p EmailParams) kwargs() schema.Args {
	return schema.Args{
		"email_address":         p.Address,
		"targets":               p.Targets,
		"autoresponder_on":      p.AutoresponderOn,
		"autoresponder_subject": p.AutoresponderSubject,
		"autoresponder_message": p.AutoresponderMessage,
		"autoresponder_from":    p.AutoresponderFrom,
		"script_machine":        p.ScriptMachine,
		"script_path":           p.ScriptPath,
	}
}

// List returns the account's email addresses.
func (e *Email) List(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, e.s, "list_emails")
}

// Create creates an address unless it already exists.
func (e *Email) Create(ctx context.Context, p EmailParams) error {
	_, err := e.s.Call(ctx, "create_email", p.kwargs())
	return err
}

// Update changes an existing address.
func (e *Email) Update(ctx context.Context, p EmailParams) error {
	_, err := e.s.Call(ctx, "update_email", p.kwargs())
	return err
}

// Delete removes an existing address.
func (e *Email) Delete(ctx context.Context, address string) error {
	_, err := e.s.Call(ctx, "delete_email", schema.Args{"email_address": address})
	return err
}

// CreateBatch creates prefix@domain for each prefix (StdPrefixes when nil),
// all pointing at targets. One inventory snapshot guards the whole batch;
// targets that already exist are skipped and recorded, and the batch
// continues with the rest.
func (e *Email) CreateBatch(ctx context.Context, domain string, prefixes, targets []string) error {
	if prefixes == nil {
		prefixes = StdPrefixes
	}
	b := e.s.Batch()
	for _, prefix := range prefixes {
		_, err := b.Call(ctx, "create_email", schema.Args{
			"email_address": prefix + "@" + domain,
			"targets":       targets,
		})
		if err != nil && ctx.Err() != nil {
			return err
		}
	}
	return nil
}

// DeleteBatch deletes prefix@domain for each prefix (StdPrefixes when nil),
// with the same one-snapshot, continue-past-skips behavior as CreateBatch.
func (e *Email) DeleteBatch(ctx context.Context, domain string, prefixes []string) error {
	if prefixes == nil {
		prefixes = StdPrefixes
	}
	b := e.s.Batch()
	for _, prefix := range prefixes {
		_, err := b.Call(ctx, "delete_email", schema.Args{
			"email_address": prefix + "@" + domain,
		})
		if err != nil && ctx.Err() != nil {
			return err
		}
	}
	return nil
}
