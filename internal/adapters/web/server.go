// Package web serves the atlas JSON API over HTTP for rendering clients.
// Binds to localhost only; no network exposure, no auth needed.
package web

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/corey/neuroatlas/internal/domain/atlas"
	"github.com/corey/neuroatlas/internal/domain/catalog"
	"github.com/corey/neuroatlas/internal/logger"
	"github.com/corey/neuroatlas/internal/ports"
)

// MaxVertexCount bounds POST /api/colors so one request cannot allocate
// an arbitrarily large buffer. Dense cortical meshes sit well below it.
const MaxVertexCount = 4_000_000

// AppQueries is what the server needs from the running app.
// Atlas, Resolve and Colors return ports.ErrNoAtlas before the first load.
type AppQueries interface {
	Atlas() (*atlas.Index, ports.AtlasMeta, error)
	Catalog() *catalog.Catalog
	Resolve(q atlas.FaceQuery) (atlas.VertexLabel, bool, error)
	Colors(vertexCount int, selected, hovered string) ([]float32, error)
	SearchRegions(query string) []catalog.Hit
	Structure() *catalog.Structure
}

// Server serves the JSON API over HTTP.
type Server struct {
	queries  AppQueries
	listener net.Listener
	httpSrv  *http.Server
	port     int
	started  time.Time
	stopOnce sync.Once

	portFilePath string // .natlas/run/http.port
}

// NewServer creates an HTTP server.
// The portFilePath is where the bound port is written for discovery.
func NewServer(queries AppQueries, portFilePath string) *Server {
	return &Server{
		queries:      queries,
		portFilePath: portFilePath,
		started:      time.Now(),
	}
}

// DefaultPort computes a project-specific port: 19000 + (hash(abs_path) % 1000).
func DefaultPort(projectRoot string) int {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		abs = projectRoot
	}
	h := sha256.Sum256([]byte(abs))
	// Use first 4 bytes as uint32
	n := uint32(h[0])<<24 | uint32(h[1])<<16 | uint32(h[2])<<8 | uint32(h[3])
	return 19000 + int(n%1000)
}

// Handler returns the API routes wrapped in the access log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/atlas", s.handleAtlas)
	mux.HandleFunc("GET /api/regions", s.handleRegions)
	mux.HandleFunc("GET /api/regions/{name}", s.handleRegion)
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/structure", s.handleStructure)
	mux.HandleFunc("GET /api/structure/{id}", s.handleStructureNode)
	mux.HandleFunc("POST /api/resolve", s.handleResolve)
	mux.HandleFunc("POST /api/colors", s.handleColors)
	return logger.AccessMiddleware(logger.L())(mux)
}

// Start begins listening on the preferred port (0 picks a free one).
// Writes the bound port to the port file.
func (s *Server) Start(preferredPort int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", preferredPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.started = time.Now()

	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Write port file for discovery
	if s.portFilePath != "" {
		if err := os.WriteFile(s.portFilePath, []byte(fmt.Sprintf("%d", s.port)), 0644); err != nil {
			logger.L().Warn("port_file_error", "path", s.portFilePath, "error", err)
		}
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Error("http_serve_error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.httpSrv.Shutdown(ctx)
		}
		if s.portFilePath != "" {
			os.Remove(s.portFilePath)
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the API base URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	result := HealthResult{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Second).String(),
	}
	if idx, meta, err := s.queries.Atlas(); err == nil {
		result.Atlas = meta.Name
		result.Vertices = idx.Len()
		result.Regions = idx.RegionCount()
	} else {
		result.Status = "no_atlas"
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAtlas(w http.ResponseWriter, r *http.Request) {
	idx, meta, err := s.queries.Atlas()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AtlasResult{Meta: meta, Regions: idx.Regions()})
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	cat := s.queries.Catalog()
	if cat == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResult{Error: "no region catalog"})
		return
	}
	idx, _, _ := s.queries.Atlas()

	q := r.URL.Query()
	filter := catalog.Filter{
		Lobe:       strings.TrimSpace(q.Get("lobe")),
		Hemisphere: strings.TrimSpace(q.Get("hemisphere")),
	}

	regions := make([]RegionInfo, 0)
	if query := strings.TrimSpace(q.Get("q")); query != "" {
		for _, hit := range s.queries.SearchRegions(query) {
			if filter.Keep(hit.Region) {
				info := regionInfo(hit.Region, idx)
				info.Terms = hit.Terms
				regions = append(regions, info)
			}
		}
	} else {
		for _, reg := range cat.Select(filter) {
			regions = append(regions, regionInfo(reg, idx))
		}
	}

	writeJSON(w, http.StatusOK, RegionsResult{
		Catalog: cat.Atlas(),
		Regions: regions,
		Count:   len(regions),
	})
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	idx, _, _ := s.queries.Atlas()

	if cat := s.queries.Catalog(); cat != nil {
		if reg, ok := cat.Lookup(name); ok {
			writeJSON(w, http.StatusOK, regionInfo(reg, idx))
			return
		}
	}
	// Atlas regions the catalog doesn't describe still have stats.
	if st, ok := idx.Stats(name); ok {
		writeJSON(w, http.StatusOK, RegionInfo{Region: catalog.Region{ID: st.ID, Name: st.Name}, Stats: &st})
		return
	}
	writeJSON(w, http.StatusNotFound, errorResult{Error: fmt.Sprintf("unknown region %q", name)})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	cat := s.queries.Catalog()
	if cat == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResult{Error: "no region catalog"})
		return
	}
	writeJSON(w, http.StatusOK, CatalogResult{
		Catalog:     cat.Atlas(),
		Count:       cat.Len(),
		Lobes:       cat.Lobes(),
		Hemispheres: cat.Hemispheres(),
		Schemes:     atlas.SchemeNames(),
	})
}

func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	st := s.queries.Structure()
	if st == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResult{Error: "no region structure"})
		return
	}
	if query := strings.TrimSpace(r.URL.Query().Get("q")); query != "" {
		writeJSON(w, http.StatusOK, st.Search(query))
		return
	}
	writeJSON(w, http.StatusOK, StructureResult{Regions: st.MainRegions()})
}

func (s *Server) handleStructureNode(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if st := s.queries.Structure(); st != nil {
		if n, ok := st.Node(id); ok {
			writeJSON(w, http.StatusOK, n)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, errorResult{Error: fmt.Sprintf("unknown structure node %q", id)})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResult{Error: err.Error()})
		return
	}
	if len(req.Triangle) != 3 {
		writeJSON(w, http.StatusBadRequest, errorResult{
			Error: fmt.Sprintf("triangle must have 3 vertex indices, got %d", len(req.Triangle)),
		})
		return
	}

	q := atlas.FaceQuery{Face: req.Face}
	copy(q.Triangle[:], req.Triangle)
	label, found, err := s.queries.Resolve(q)
	if err != nil {
		writeError(w, err)
		return
	}

	result := ResolveResult{Found: found}
	if found {
		result.Label = &label
		if cat := s.queries.Catalog(); cat != nil {
			if reg, ok := cat.Lookup(label.RegionName); ok {
				result.Region = &reg
			} else if reg, ok := cat.ByID(label.RegionID); ok {
				result.Region = &reg
			}
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleColors(w http.ResponseWriter, r *http.Request) {
	var req ColorsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResult{Error: err.Error()})
		return
	}
	if req.VertexCount < 0 || req.VertexCount > MaxVertexCount {
		writeJSON(w, http.StatusBadRequest, errorResult{
			Error: fmt.Sprintf("vertexCount must be between 0 and %d", MaxVertexCount),
		})
		return
	}

	buf, err := s.queries.Colors(req.VertexCount, req.Selected, req.Hovered)
	if err != nil {
		writeError(w, err)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, http.StatusOK, ColorsResult{VertexCount: req.VertexCount, Colors: buf})
		return
	}
	data := atlas.EncodeColorBuffer(buf)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.Write(data)
}

// regionInfo attaches atlas stats to a catalog region. idx may be nil.
func regionInfo(reg catalog.Region, idx *atlas.Index) RegionInfo {
	info := RegionInfo{Region: reg}
	if st, ok := idx.Stats(reg.Name); ok {
		info.Stats = &st
	}
	return info
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ports.ErrNoAtlas) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResult{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
