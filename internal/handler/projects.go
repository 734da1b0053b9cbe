package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/middleware"
	"github.com/anbuchelva/cams/internal/repository"
	"github.com/anbuchelva/cams/internal/store"
)

// ProjectsHandler serves project submission, browsing, aggregation and
// document download.
type ProjectsHandler struct {
	projects    *repository.Projects
	blobs       *store.BlobStore
	maxUpload   int64
	ownerScoped bool
}

// NewProjectsHandler creates a ProjectsHandler. ownerScoped restricts list
// and recent views to the caller's own projects.
func NewProjectsHandler(projects *repository.Projects, blobs *store.BlobStore, maxUpload int64, ownerScoped bool) *ProjectsHandler {
	return &ProjectsHandler{
		projects:    projects,
		blobs:       blobs,
		maxUpload:   maxUpload,
		ownerScoped: ownerScoped,
	}
}

// Create handles the multipart project submission: text fields plus a
// required agreement PDF and an optional bill settlement PDF.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.Identity(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	// Two PDFs plus form fields; anything bigger is rejected outright.
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxUpload+1<<20)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	params := repository.CreateParams{
		UserID:                  claims.ID,
		IndustryName:            r.FormValue("industryName"),
		Title:                   r.FormValue("title"),
		PrincipalInvestigator:   r.FormValue("principalInvestigator"),
		CoPrincipalInvestigator: r.FormValue("coPrincipalInvestigator"),
		AcademicYear:            r.FormValue("academicYear"),
		BillSettlementDetails:   r.FormValue("billSettlementDetails"),
		StudentDetails:          r.FormValue("studentDetails"),
		Summary:                 r.FormValue("summary"),
	}

	if params.AcademicYear != "" && !domain.ValidAcademicYear(params.AcademicYear) {
		writeMessage(w, http.StatusBadRequest, "invalid academic year")
		return
	}
	if v := r.FormValue("duration"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d <= 0 {
			writeMessage(w, http.StatusBadRequest, "duration must be a positive number of months")
			return
		}
		params.Duration = d
	}
	if v := r.FormValue("amountSanctioned"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil || amount < 0 {
			writeMessage(w, http.StatusBadRequest, "invalid amountSanctioned")
			return
		}
		params.AmountSanctioned = &amount
	}
	if v := r.FormValue("amountReceived"); v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil || amount < 0 {
			writeMessage(w, http.StatusBadRequest, "invalid amountReceived")
			return
		}
		params.AmountReceived = &amount
	}
	if v := r.FormValue("createdAt"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid createdAt")
			return
		}
		params.CreatedAt = t
	}

	var saved []string
	cleanup := func() {
		for _, name := range saved {
			if err := h.blobs.Remove(name); err != nil {
				slog.Error("failed to remove orphan upload", "file", name, "error", err)
			}
		}
	}

	for _, upload := range []struct {
		field  string
		target *string
	}{
		{"agreementDocument", &params.AgreementDocument},
		{"billSettlementProof", &params.BillSettlementProof},
	} {
		name, err := h.saveUpload(r, upload.field)
		if err != nil {
			cleanup()
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		if name != "" {
			*upload.target = name
			saved = append(saved, name)
		}
	}

	project, err := h.projects.Create(r.Context(), params)
	if err != nil {
		cleanup()
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			writeMessage(w, http.StatusBadRequest, verr.Error())
			return
		}
		slog.Error("project create failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "server error while adding project")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "project added successfully",
		"id":      project.ID,
	})
}

// saveUpload stores one uploaded PDF and returns its generated name, or ""
// when the field is absent.
func (h *ProjectsHandler) saveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", fmt.Errorf("invalid %s upload", field)
	}
	defer file.Close()

	if !isPDF(header) {
		return "", errors.New("only PDF files are allowed")
	}
	if header.Size > h.maxUpload {
		return "", fmt.Errorf("%s exceeds the %d MB limit", field, h.maxUpload>>20)
	}

	return h.blobs.Save(field, header.Filename, file)
}

func isPDF(header *multipart.FileHeader) bool {
	if strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		return true
	}
	return header.Header.Get("Content-Type") == "application/pdf"
}

// filtersFromQuery parses the shared listing/export filter parameters.
func (h *ProjectsHandler) filtersFromQuery(r *http.Request) (repository.Filters, error) {
	q := r.URL.Query()
	filters := repository.Filters{
		AcademicYear: q.Get("academicYear"),
		FacultyName:  q.Get("facultyName"),
		IndustryName: q.Get("industryName"),
	}
	if v := q.Get("amountThreshold"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return filters, errors.New("invalid amountThreshold")
		}
		filters.AmountThreshold = &threshold
	}
	if h.ownerScoped {
		if claims, ok := middleware.Identity(r.Context()); ok {
			filters.OwnerID = claims.ID
		}
	}
	return filters, nil
}

// List returns the filtered project collection, newest first.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := h.filtersFromQuery(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	projects := h.projects.List(r.Context(), filters)
	if projects == nil {
		projects = []domain.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// Recent returns the five most recent projects.
func (h *ProjectsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	ownerID := ""
	if h.ownerScoped {
		if claims, ok := middleware.Identity(r.Context()); ok {
			ownerID = claims.ID
		}
	}
	projects := h.projects.Recent(r.Context(), 5, ownerID)
	if projects == nil {
		projects = []domain.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// Stats aggregates the projects of one owner. The owner defaults to the
// caller when the user query parameter is absent.
func (h *ProjectsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("user")
	if ownerID == "" {
		if claims, ok := middleware.Identity(r.Context()); ok {
			ownerID = claims.ID
		}
	}
	writeJSON(w, http.StatusOK, h.projects.Stats(r.Context(), ownerID))
}

// Get returns one project by id.
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projects.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeMessage(w, http.StatusNotFound, "project not found")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// DownloadAttachment streams one of a project's stored documents.
func (h *ProjectsHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	kind := domain.AttachmentKind(chi.URLParam(r, "fileType"))
	if kind != domain.AttachmentAgreement && kind != domain.AttachmentBillSettlement {
		writeMessage(w, http.StatusBadRequest, "invalid file type")
		return
	}

	file, err := h.projects.ResolveAttachment(r.Context(), chi.URLParam(r, "id"), kind)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "file not found")
			return
		}
		slog.Error("attachment download failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "server error while downloading file")
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", filepath.Base(file.Name())))
	if _, err := io.Copy(w, file); err != nil {
		slog.Error("attachment stream interrupted", "error", err)
	}
}

// Export streams the filtered collection as a spreadsheet attachment.
func (h *ProjectsHandler) Export(w http.ResponseWriter, r *http.Request) {
	filters, err := h.filtersFromQuery(r)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	blob, err := h.projects.ExportFiltered(r.Context(), filters)
	if err != nil {
		slog.Error("project export failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "server error while downloading projects")
		return
	}

	filename := fmt.Sprintf("consultancy-projects-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(blob)
}
