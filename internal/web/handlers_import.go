package web

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/tradeimport/internal/core"
	"github.com/JonMunkholm/tradeimport/internal/logging"
)

// multipartMemory is how much of a multipart body is held in memory before
// parts spill to temporary files.
const multipartMemory = 8 << 20

type importResponse struct {
	*core.Result
	Summary core.Summary `json:"summary"`
}

func newImportResponse(res *core.Result) importResponse {
	return importResponse{Result: res, Summary: res.Summary()}
}

type batchFile struct {
	Name   string            `json:"name"`
	Result *importResponse   `json:"result,omitempty"`
	Error  *core.UserMessage `json:"error,omitempty"`
}

type batchResponse struct {
	Files []batchFile `json:"files"`
}

// handleImport parses an export. The file is either the raw request body or
// one or more multipart parts named "file". Without a {format} parameter
// the format is detected from the header.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "format")
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxFileSize)
	logger := logging.WithFields(r.Context(), "format", key)

	if !isMultipart(r) {
		res, err := s.service.Import(r.Context(), key, r.Body)
		if err != nil {
			respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newImportResponse(res))
		return
	}

	files, cleanup, err := formFiles(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer cleanup()

	if len(files) == 1 {
		res, err := s.service.Import(r.Context(), key, files[0].Reader)
		if err != nil {
			respondError(w, r, err)
			return
		}
		logger.Debug("file imported", "file", files[0].Name, "import_id", res.ImportID)
		writeJSON(w, http.StatusOK, newImportResponse(res))
		return
	}

	results, err := s.service.ImportBatch(r.Context(), key, files)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := batchResponse{Files: make([]batchFile, len(results))}
	for i, fr := range results {
		out.Files[i] = batchFile{Name: fr.Name, Error: fr.Error}
		if fr.Result != nil {
			resp := newImportResponse(fr.Result)
			out.Files[i].Result = &resp
		}
	}
	logger.Info("batch imported", "files", len(files))
	writeJSON(w, http.StatusOK, out)
}

// handleGetImport returns a recent result by import ID.
func (s *Server) handleGetImport(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "importID")
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, r, fmt.Errorf("import not found: %q", raw))
		return
	}

	res, err := s.service.Result(id.String())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newImportResponse(res))
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// formFiles opens every "file" part of a multipart request. The returned
// cleanup closes the parts and removes temporary files.
func formFiles(r *http.Request) ([]core.NamedReader, func(), error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("invalid upload form: %w", err)
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		_ = r.MultipartForm.RemoveAll()
		return nil, nil, errors.New("no file provided")
	}

	var closers []io.Closer
	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
		_ = r.MultipartForm.RemoveAll()
	}

	files := make([]core.NamedReader, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("invalid upload form: open %s: %w", fh.Filename, err)
		}
		closers = append(closers, f)
		files = append(files, core.NamedReader{Name: fh.Filename, Reader: f})
	}
	return files, cleanup, nil
}
