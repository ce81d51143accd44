package groups

import (
	"context"

	"github.com/hostersuite/wfclient/internal/schema"
	"github.com/hostersuite/wfclient/internal/session"
)

// Domain administers domains and subdomains.
type Domain struct {
	s *session.Session
}

// NewDomain binds a domain group to a session.
func NewDomain(s *session.Session) *Domain { return &Domain{s: s} }

// List returns the account's domains.
func (d *Domain) List(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, d.s, "list_domains")
}

// Create registers a domain with optional subdomains. The wire format wants
// each subdomain in its own positional slot; the normalizer spreads them.
func (d *Domain) Create(ctx context.Context, domain string, subdomains ...string) error {
	_, err := d.s.Call(ctx, "create_domain", schema.Args{
		"domain":    domain,
		"subdomain": subdomains,
	})
	return err
}

// Delete removes a domain or the given subdomains of it.
func (d *Domain) Delete(ctx context.Context, domain string, subdomains ...string) error {
	_, err := d.s.Call(ctx, "delete_domain", schema.Args{
		"domain":    domain,
		"subdomain": subdomains,
	})
	return err
}

// Website administers website records.
type Website struct {
	s *session.Session
}

// NewWebsite binds a website group to a session.
func NewWebsite(s *session.Session) *Website { return &Website{s: s} }

// WebsiteParams configures a website create or update.
type WebsiteParams struct {
	Name       string
	IP         string
	HTTPS      bool
	Subdomains []string

	// SiteApps are (application, URL path) pairs mounted on the site.
	SiteApps [][]string
}

func (p WebsiteParams) kwargs() schema.Args {
	kw := schema.Args{
		"website_name": p.Name,
		"ip":           p.IP,
		"https":        p.HTTPS,
	}
	putList(kw, "subdomains", p.Subdomains)
	if len(p.SiteApps) > 0 {
		kw["site_apps"] = p.SiteApps
	}
	return kw
}

// List returns the account's websites.
func (w *Website) List(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, w.s, "list_websites")
}

// BandwidthUsage returns per-site bandwidth figures.
func (w *Website) BandwidthUsage(ctx context.Context) (any, error) {
	return w.s.Query(ctx, "list_bandwidth_usage")
}

// Create creates a website unless one with the same name already exists.
func (w *Website) Create(ctx context.Context, p WebsiteParams) error {
	_, err := w.s.Call(ctx, "create_website", p.kwargs())
	return err
}

// Update changes an existing website.
func (w *Website) Update(ctx context.Context, p WebsiteParams) error {
	_, err := w.s.Call(ctx, "update_website", p.kwargs())
	return err
}

// Delete removes an existing website.
func (w *Website) Delete(ctx context.Context, name, ip string, https bool) error {
	_, err := w.s.Call(ctx, "delete_website", schema.Args{
		"website_name": name,
		"ip":           ip,
		"https":        https,
	})
	return err
}

// Application administers installed applications.
type Application struct {
	s *session.Session
}

// NewApplication binds an application group to a session.
func NewApplication(s *session.Session) *Application { return &Application{s: s} }

// AppParams configures an application create.
type AppParams struct {
	Name      string
	Type      string
	Autostart bool
	ExtraInfo string
	OpenPort  bool
}

// List returns the account's applications.
func (a *Application) List(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, a.s, "list_apps")
}

// ListTypes returns the application types the provider can install.
func (a *Application) ListTypes(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, a.s, "list_app_types")
}

// Create installs an application unless one with the same name exists.
func (a *Application) Create(ctx context.Context, p AppParams) error {
	_, err := a.s.Call(ctx, "create_app", schema.Args{
		"name":       p.Name,
		"type":       p.Type,
		"autostart":  p.Autostart,
		"extra_info": p.ExtraInfo,
		"open_port":  p.OpenPort,
	})
	return err
}

// Delete removes an existing application.
func (a *Application) Delete(ctx context.Context, name string) error {
	_, err := a.s.Call(ctx, "delete_app", schema.Args{"name": name})
	return err
}

// DNS administers DNS overrides.
type DNS struct {
	s *session.Session
}

// NewDNS binds a DNS group to a session.
func NewDNS(s *session.Session) *DNS { return &DNS{s: s} }

// OverrideParams identifies one DNS override record.
type OverrideParams struct {
	Domain     string
	AIP        string
	CNAME      string
	MXName     string
	MXPriority string
	SPFRecord  string
	AAAAIP     string
}

func (p OverrideParams) kwargs() schema.Args {
	kw := schema.Args{"domain": p.Domain}
	putString(kw, "a_ip", p.AIP)
	putString(kw, "cname", p.CNAME)
	putString(kw, "mx_name", p.MXName)
	putString(kw, "mx_priority", p.MXPriority)
	putString(kw, "spf_record", p.SPFRecord)
	putString(kw, "aaaa_ip", p.AAAAIP)
	return kw
}

// ListOverrides returns the account's DNS overrides.
func (d *DNS) ListOverrides(ctx context.Context) ([]map[string]any, error) {
	return listEntries(ctx, d.s, "list_dns_overrides")
}

// CreateOverride adds a DNS override.
func (d *DNS) CreateOverride(ctx context.Context, p OverrideParams) error {
	_, err := d.s.Call(ctx, "create_dns_override", p.kwargs())
	return err
}

// DeleteOverride removes a DNS override.
func (d *DNS) DeleteOverride(ctx context.Context, p OverrideParams) error {
	_, err := d.s.Call(ctx, "delete_dns_override", p.kwargs())
	return err
}
