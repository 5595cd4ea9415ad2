package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/o0olele/geocull/cache"
	"github.com/o0olele/geocull/geometry"
	"github.com/o0olele/geocull/math32"
	"github.com/o0olele/geocull/octree"
	"github.com/o0olele/geocull/snapshot"
)

var (
	errBadRequest = errors.New("bad request")
	errNotBuilt   = errors.New("octree not built")
)

// frustumKey identifies a plane set built by CreateViewPlanes.
type frustumKey struct {
	viewProjection math32.Mat4
	infinite       bool
}

// server owns the octree served over HTTP. All tree access goes through mu.
type server struct {
	mu     sync.Mutex
	cfg    Config
	tree   *octree.Octree
	bounds geometry.AABoundingBox
	items  []octree.Item

	frustums *cache.Cache[frustumKey, *geometry.PlaneSet]
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func newServer(cfg Config, logger *slog.Logger) *server {
	s := &server{
		cfg:      cfg,
		tree:     octree.NewOctree(),
		frustums: cache.New[frustumKey, *geometry.PlaneSet](cfg.Cache.Frustums),
		log:      logger,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

// 初始化请求结构
type InitRequest struct {
	Bounds        geometry.AABoundingBox `json:"bounds"`
	Subdivide     *int                   `json:"subdivide,omitempty"`
	MinGeometries *int                   `json:"min_geometries,omitempty"`
}

type TransformRequest struct {
	Pos   *math32.Vector3 `json:"pos,omitempty"`
	Scale *math32.Vector3 `json:"scale,omitempty"`
	// Rot is a quaternion, w being the scalar part.
	Rot *math32.Vector4 `json:"rot,omitempty"`
}

type CullRequest struct {
	// ViewProjection is column-major, as OpenGL expects it.
	ViewProjection []float32 `json:"view_projection"`
	Infinite       bool      `json:"infinite"`
}

type BoxRequest struct {
	Center  math32.Vector3     `json:"center"`
	Extents math32.Vector3     `json:"extents"`
	Axis    *[3]math32.Vector3 `json:"axis,omitempty"`
}

type VisibleResponse struct {
	Visible []uint32 `json:"visible"`
	Count   int      `json:"count"`
}

func (s *server) initOctreeHandler(w http.ResponseWriter, r *http.Request) {
	var req InitRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	subdivide, minGeometries := s.cfg.Octree.Subdivide, s.cfg.Octree.MinGeometries
	if req.Subdivide != nil {
		subdivide = *req.Subdivide
	}
	if req.MinGeometries != nil {
		minGeometries = *req.MinGeometries
	}
	if subdivide < 0 || subdivide > octree.MaxSubdivide {
		s.writeError(w, fmt.Errorf("%w: subdivide must be in [0,%d]", errBadRequest, octree.MaxSubdivide))
		return
	}
	if minGeometries < 0 {
		s.writeError(w, fmt.Errorf("%w: min_geometries must not be negative", errBadRequest))
		return
	}
	req.Bounds.ValidateMinMax()

	s.mu.Lock()
	s.tree.Init(subdivide, minGeometries)
	s.bounds = req.Bounds
	s.items = nil
	s.mu.Unlock()

	s.log.Info("octree initialized", "bounds", req.Bounds, "subdivide", subdivide, "min_geometries", minGeometries)
	writeJSON(w, map[string]string{"status": "initialized"})
}

func (s *server) addItemsHandler(w http.ResponseWriter, r *http.Request) {
	var items []octree.Item
	if err := decode(r, &items); err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree.State() == octree.StateUninitialized {
		s.writeError(w, octree.ErrNotInitialized)
		return
	}
	if err := s.checkItemIDs(items); err != nil {
		s.writeError(w, err)
		return
	}
	for i := range items {
		items[i].Bounds.ValidateMinMax()
	}
	s.items = append(s.items, items...)

	s.log.Debug("items added", "added", len(items), "total", len(s.items))
	writeJSON(w, map[string]int{"count": len(s.items)})
}

func (s *server) checkItemIDs(items []octree.Item) error {
	for _, item := range items {
		if item.ID > s.cfg.Octree.MaxItemID {
			return fmt.Errorf("%w: item id %d exceeds max_item_id %d", errBadRequest, item.ID, s.cfg.Octree.MaxItemID)
		}
	}
	return nil
}

func (s *server) buildOctreeHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tree.Build(s.bounds, s.items); err != nil {
		s.writeError(w, fmt.Errorf("build octree: %w", err))
		return
	}

	s.log.Info("octree built", "items", len(s.items), "nodes", s.tree.NodeCount())
	writeJSON(w, map[string]any{"status": "built", "nodes": s.tree.NodeCount()})
}

func (s *server) transformHandler(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree.State() == octree.StateUninitialized {
		s.writeError(w, octree.ErrNotInitialized)
		return
	}
	if req.Pos != nil {
		s.tree.SetPos(*req.Pos)
	}
	if req.Scale != nil {
		s.tree.SetScale(*req.Scale)
	}
	if req.Rot != nil {
		q := *req.Rot
		s.tree.SetRot(math32.Quat{W: q.W, V: math32.Vector3{X: q.X, Y: q.Y, Z: q.Z}.Vec3()})
	}
	writeJSON(w, s.tree.Transform())
}

func (s *server) cullHandler(w http.ResponseWriter, r *http.Request) {
	var req CullRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	resp, err := s.cull(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

// cull collects the items inside the frustum of req.ViewProjection. Plane
// sets are cached per matrix.
func (s *server) cull(req CullRequest) (VisibleResponse, error) {
	if len(req.ViewProjection) != 16 {
		return VisibleResponse{}, fmt.Errorf("%w: view_projection needs 16 values, got %d", errBadRequest, len(req.ViewProjection))
	}

	key := frustumKey{infinite: req.Infinite}
	copy(key.viewProjection[:], req.ViewProjection)
	planes := s.frustums.GetOrCreate(key, func() *geometry.PlaneSet {
		ps := geometry.NewPlaneSet()
		ps.CreateViewPlanes(key.viewProjection, key.infinite)
		return ps
	})

	return s.collect(func(visible *math32.Bitmap) {
		s.tree.UpdateVisibility(planes, nil, visible)
	})
}

func (s *server) sphereHandler(w http.ResponseWriter, r *http.Request) {
	var sphere geometry.Sphere
	if err := decode(r, &sphere); err != nil {
		s.writeError(w, err)
		return
	}
	if sphere.Radius < 0 {
		s.writeError(w, fmt.Errorf("%w: negative radius", errBadRequest))
		return
	}

	s.query(w, func(visible *math32.Bitmap) {
		s.tree.CheckSphere(sphere, nil, visible)
	})
}

func (s *server) boxHandler(w http.ResponseWriter, r *http.Request) {
	var req BoxRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	box := geometry.NewBoundingBox(req.Center, req.Extents.Abs())
	if req.Axis != nil {
		for i, axis := range req.Axis {
			if axis.IsZero() {
				s.writeError(w, fmt.Errorf("%w: axis %d is zero", errBadRequest, i))
				return
			}
			box.Axis[i] = axis.Normalize()
		}
	}

	s.query(w, func(visible *math32.Bitmap) {
		s.tree.CheckBox(box, nil, visible)
	})
}

// query runs fn on the built tree and answers with the collected item IDs.
func (s *server) query(w http.ResponseWriter, fn func(visible *math32.Bitmap)) {
	resp, err := s.collect(fn)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, resp)
}

func (s *server) collect(fn func(visible *math32.Bitmap)) (VisibleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree.State() != octree.StateBuilt {
		return VisibleResponse{}, errNotBuilt
	}

	var visible math32.Bitmap
	fn(&visible)
	ids := visible.Values()
	return VisibleResponse{Visible: ids, Count: len(ids)}, nil
}

// 获取八叉树结构
func (s *server) getOctreeHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree.State() != octree.StateBuilt {
		s.writeError(w, errNotBuilt)
		return
	}

	data, err := s.tree.ToJSON()
	if err != nil {
		s.writeError(w, fmt.Errorf("serialize octree: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *server) statsHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stats := map[string]any{
		"state":    s.tree.State().String(),
		"nodes":    s.tree.NodeCount(),
		"items":    len(s.items),
		"frustums": s.frustums.Stats(),
	}
	s.mu.Unlock()
	writeJSON(w, stats)
}

// 保存和加载请求结构
type SnapshotRequest struct {
	Filename string `json:"filename"`
}

// snapshotPath resolves a bare file name inside the data directory.
func (s *server) snapshotPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: invalid filename %q", errBadRequest, name)
	}
	return filepath.Join(s.cfg.DataDir, name), nil
}

// 保存场景快照
func (s *server) saveHandler(w http.ResponseWriter, r *http.Request) {
	var req SnapshotRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	path, err := s.snapshotPath(req.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree.State() == octree.StateUninitialized {
		s.writeError(w, octree.ErrNotInitialized)
		return
	}
	if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
		s.writeError(w, fmt.Errorf("create data dir: %w", err))
		return
	}
	if err := snapshot.Save(snapshot.FromOctree(s.tree, s.bounds, s.items), path); err != nil {
		s.writeError(w, fmt.Errorf("save snapshot: %w", err))
		return
	}

	s.log.Info("snapshot saved", "path", path, "items", len(s.items))
	writeJSON(w, map[string]any{"status": "saved", "items": len(s.items)})
}

// 加载场景快照并重建八叉树
func (s *server) loadHandler(w http.ResponseWriter, r *http.Request) {
	var req SnapshotRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	path, err := s.snapshotPath(req.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap, err := snapshot.Load(path)
	if err != nil {
		s.writeError(w, fmt.Errorf("load snapshot: %w", err))
		return
	}
	if err := s.checkItemIDs(snap.Items); err != nil {
		s.writeError(w, fmt.Errorf("load snapshot: %w", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := snap.Restore(s.tree); err != nil {
		s.writeError(w, err)
		return
	}
	s.bounds = snap.Bounds
	s.items = snap.Items

	s.log.Info("snapshot loaded", "path", path, "items", len(s.items), "nodes", s.tree.NodeCount())
	writeJSON(w, map[string]any{"status": "loaded", "nodes": s.tree.NodeCount()})
}

func (s *server) snapshotInfoHandler(w http.ResponseWriter, r *http.Request) {
	path, err := s.snapshotPath(r.URL.Query().Get("filename"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	info, err := snapshot.GetFileInfo(path)
	if err != nil {
		s.writeError(w, fmt.Errorf("snapshot info: %w", err))
		return
	}
	writeJSON(w, info)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest):
		code = http.StatusBadRequest
	case errors.Is(err, octree.ErrNotInitialized), errors.Is(err, errNotBuilt):
		code = http.StatusConflict
	case errors.Is(err, os.ErrNotExist):
		code = http.StatusNotFound
	case errors.Is(err, snapshot.ErrBadMagic), errors.Is(err, snapshot.ErrBadVersion), errors.Is(err, snapshot.ErrInvalid):
		code = http.StatusUnprocessableEntity
	}
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	} else {
		s.log.Debug("request rejected", "status", code, "err", err)
	}
	http.Error(w, err.Error(), code)
}
