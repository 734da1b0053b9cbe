package repository

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/store"
)

// Projects manages the project collection: an append-only ledger of
// consultancy records. Writes are serialized through a single mutex.
type Projects struct {
	mu    sync.Mutex
	store store.Store
	blobs *store.BlobStore

	now func() time.Time
}

// NewProjects creates the projects repository.
func NewProjects(s store.Store, blobs *store.BlobStore) *Projects {
	return &Projects{store: s, blobs: blobs, now: time.Now}
}

// CreateParams carries the fields of a project submission. AmountSanctioned
// is a pointer so an absent field is distinguishable from zero.
type CreateParams struct {
	UserID                  string
	IndustryName            string
	Title                   string
	PrincipalInvestigator   string
	CoPrincipalInvestigator string
	AcademicYear            string
	Duration                int
	AmountSanctioned        *float64
	AmountReceived          *float64
	BillSettlementDetails   string
	StudentDetails          string
	Summary                 string
	AgreementDocument       string
	BillSettlementProof     string
	// CreatedAt overrides the creation stamp for backfill; zero means now.
	CreatedAt time.Time
}

// Create validates the required fields, assigns an id and creation stamp,
// appends the record and persists the collection. The persisted file is left
// untouched when validation fails.
func (r *Projects) Create(ctx context.Context, params CreateParams) (*domain.Project, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"industryName", params.IndustryName},
		{"title", params.Title},
		{"principalInvestigator", params.PrincipalInvestigator},
		{"academicYear", params.AcademicYear},
		{"agreementDocument", params.AgreementDocument},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if params.AmountSanctioned == nil {
		missing = append(missing, "amountSanctioned")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, domain.NewValidationError(missing...)
	}

	createdAt := params.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now().UTC()
	}

	project := &domain.Project{
		ID:                      uuid.NewString(),
		UserID:                  params.UserID,
		IndustryName:            params.IndustryName,
		Title:                   params.Title,
		PrincipalInvestigator:   params.PrincipalInvestigator,
		CoPrincipalInvestigator: params.CoPrincipalInvestigator,
		AcademicYear:            params.AcademicYear,
		Duration:                params.Duration,
		AmountSanctioned:        *params.AmountSanctioned,
		BillSettlementDetails:   params.BillSettlementDetails,
		StudentDetails:          params.StudentDetails,
		Summary:                 params.Summary,
		AgreementDocument:       params.AgreementDocument,
		BillSettlementProof:     params.BillSettlementProof,
		CreatedAt:               createdAt,
	}
	if params.AmountReceived != nil {
		project.AmountReceived = *params.AmountReceived
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.store.Load(ctx, CollectionProjects)
	if err != nil {
		return nil, err
	}
	records = append(records, projectToRecord(project))
	if err := r.store.Save(ctx, CollectionProjects, records); err != nil {
		return nil, err
	}
	return project, nil
}

// Filters narrow a project listing. Zero values mean "no constraint"; the
// active filters are combined with AND semantics.
type Filters struct {
	AcademicYear    string   // exact match
	AmountThreshold *float64 // amountSanctioned >= threshold
	FacultyName     string   // case-insensitive substring of PI or co-PI
	IndustryName    string   // case-insensitive substring
	OwnerID         string   // exact match on the owning user
}

func (f Filters) match(p *domain.Project) bool {
	if f.OwnerID != "" && p.UserID != f.OwnerID {
		return false
	}
	if f.AcademicYear != "" && p.AcademicYear != f.AcademicYear {
		return false
	}
	if f.AmountThreshold != nil && p.AmountSanctioned < *f.AmountThreshold {
		return false
	}
	if f.FacultyName != "" {
		name := strings.ToLower(f.FacultyName)
		if !strings.Contains(strings.ToLower(p.PrincipalInvestigator), name) &&
			!strings.Contains(strings.ToLower(p.CoPrincipalInvestigator), name) {
			return false
		}
	}
	if f.IndustryName != "" &&
		!strings.Contains(strings.ToLower(p.IndustryName), strings.ToLower(f.IndustryName)) {
		return false
	}
	return true
}

// List returns the projects matching the filters, newest first.
func (r *Projects) List(ctx context.Context, filters Filters) []domain.Project {
	var out []domain.Project
	for _, p := range r.all(ctx) {
		if filters.match(&p) {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out
}

// Recent returns at most limit projects, newest first.
func (r *Projects) Recent(ctx context.Context, limit int, ownerID string) []domain.Project {
	projects := r.List(ctx, Filters{OwnerID: ownerID})
	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects
}

// GetByID returns the project with the given id or domain.ErrNotFound.
func (r *Projects) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	for _, p := range r.all(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Stats aggregates the owner's projects.
type Stats struct {
	TotalProjects     int     `json:"totalProjects"`
	ActiveProjects    int     `json:"activeProjects"`
	CompletedProjects int     `json:"completedProjects"`
	TotalAmount       float64 `json:"totalAmount"`
}

// Stats computes totals strictly scoped to ownerID. A project counts as
// active while the month-index difference between now and its creation is
// within its declared duration. The difference is a plain subtraction of
// month numbers and wraps at year boundaries; this matches the historical
// behavior and must not be changed without product sign-off.
func (r *Projects) Stats(ctx context.Context, ownerID string) Stats {
	now := r.now()
	var stats Stats
	for _, p := range r.all(ctx) {
		if p.UserID != ownerID {
			continue
		}
		stats.TotalProjects++
		stats.TotalAmount += p.AmountSanctioned
		if int(now.Month())-int(p.CreatedAt.Month()) <= p.Duration {
			stats.ActiveProjects++
		}
	}
	stats.CompletedProjects = stats.TotalProjects - stats.ActiveProjects
	return stats
}

// ResolveAttachment opens the stored document of the given kind for the
// project. It fails with domain.ErrNotFound when the project is unknown, has
// no such attachment recorded, or the blob is missing from the store.
func (r *Projects) ResolveAttachment(ctx context.Context, projectID string, kind domain.AttachmentKind) (*os.File, error) {
	project, err := r.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	name := project.Attachment(kind)
	if name == "" {
		return nil, domain.ErrNotFound
	}
	return r.blobs.Open(name)
}

// All returns every project, unsorted. Used by the notification sweep.
func (r *Projects) All(ctx context.Context) []domain.Project {
	return r.all(ctx)
}

func (r *Projects) all(ctx context.Context) []domain.Project {
	records, err := r.store.Load(ctx, CollectionProjects)
	if err != nil {
		// Reads degrade to an empty collection; writes fail hard.
		slog.Error("failed to load projects collection", "error", err)
		return nil
	}
	projects := make([]domain.Project, 0, len(records))
	for _, rec := range records {
		projects = append(projects, projectFromRecord(rec))
	}
	return projects
}

func sortNewestFirst(projects []domain.Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
}
