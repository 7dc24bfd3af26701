package report

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rgehrsitz/taxengine/internal/taxerr"
)

// InMemoryRepository is the reference VersionRepository: a
// mutex-guarded map enforcing the (report_id, version_number, tenant_id)
// uniqueness constraint spec §4.15/§6 requires at the storage boundary.
// Grounded on report_versioning.py's sqlite3 schema (same keys, same
// UNIQUE constraint), reimplemented in memory the way
// internal/pipeline.InMemoryCache stands in for a real backing store.
type InMemoryRepository struct {
	mu       sync.Mutex
	versions map[versionKey]Version
	byReport map[reportKey][]versionKey // insertion-ordered; always version_number ASC since inserts are sequential
	audit    map[reportKey][]AuditEntry
}

type versionKey struct {
	reportID string
	tenantID string
	version  int
}

type reportKey struct {
	reportID string
	tenantID string
}

// NewInMemoryRepository builds an empty InMemoryRepository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		versions: make(map[versionKey]Version),
		byReport: make(map[reportKey][]versionKey),
		audit:    make(map[reportKey][]AuditEntry),
	}
}

func (r *InMemoryRepository) InsertVersion(_ context.Context, v Version) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := versionKey{reportID: v.ReportID, tenantID: v.TenantID, version: v.VersionNumber}
	if _, exists := r.versions[key]; exists {
		return taxerr.New(taxerr.KindAlreadyExists,
			fmt.Sprintf("report %s version %d already exists for tenant %s", v.ReportID, v.VersionNumber, v.TenantID))
	}

	r.versions[key] = v
	rk := reportKey{reportID: v.ReportID, tenantID: v.TenantID}
	r.byReport[rk] = append(r.byReport[rk], key)
	return nil
}

func (r *InMemoryRepository) GetVersion(_ context.Context, versionID, tenantID string) (Version, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.versions {
		if v.VersionID == versionID && (tenantID == "" || v.TenantID == tenantID) {
			return v, true
		}
	}
	return Version{}, false
}

func (r *InMemoryRepository) GetLatestVersion(_ context.Context, reportID, tenantID string) (Version, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := r.byReport[reportKey{reportID: reportID, tenantID: tenantID}]
	if len(keys) == 0 {
		return Version{}, false
	}

	latest := keys[0]
	for _, k := range keys[1:] {
		if k.version > latest.version {
			latest = k
		}
	}
	return r.versions[latest], true
}

func (r *InMemoryRepository) GetVersionHistory(_ context.Context, reportID, tenantID string) []Version {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := r.byReport[reportKey{reportID: reportID, tenantID: tenantID}]
	out := make([]Version, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.versions[k])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber < out[j].VersionNumber })
	return out
}

func (r *InMemoryRepository) InsertAudit(_ context.Context, e AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rk := reportKey{reportID: e.ReportID, tenantID: e.TenantID}
	r.audit[rk] = append(r.audit[rk], e)
	return nil
}

func (r *InMemoryRepository) GetAuditTrail(_ context.Context, reportID, tenantID string, limit int) []AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := append([]AuditEntry(nil), r.audit[reportKey{reportID: reportID, tenantID: tenantID}]...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
