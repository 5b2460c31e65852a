package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// memStore is an in-memory stand-in for the persistence layer. Repositories
// hand out copies so aggregates behave like rows read from a database, and
// the transaction scope snapshots the whole store to emulate rollback.
type memStore struct {
	materials map[int64]*inventory.Material
	tasks     map[int64]*inventory.CountTask
	movements map[int64]*inventory.StockMovement
	warnings  map[int64]*inventory.StockWarning
	nextID    int64
	billSeq   map[string]int
	taskSeq   int
}

func newMemStore() *memStore {
	return &memStore{
		materials: make(map[int64]*inventory.Material),
		tasks:     make(map[int64]*inventory.CountTask),
		movements: make(map[int64]*inventory.StockMovement),
		warnings:  make(map[int64]*inventory.StockWarning),
		billSeq:   make(map[string]int),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func cloneMaterial(m *inventory.Material) *inventory.Material {
	c := *m
	return &c
}

func cloneTask(t *inventory.CountTask) *inventory.CountTask {
	c := *t
	c.Items = append([]inventory.CountItem(nil), t.Items...)
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

func cloneMovement(sm *inventory.StockMovement) *inventory.StockMovement {
	c := *sm
	return &c
}

func cloneWarning(w *inventory.StockWarning) *inventory.StockWarning {
	c := *w
	return &c
}

type memSnapshot struct {
	materials map[int64]*inventory.Material
	tasks     map[int64]*inventory.CountTask
	movements map[int64]*inventory.StockMovement
	warnings  map[int64]*inventory.StockWarning
	nextID    int64
	billSeq   map[string]int
	taskSeq   int
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		materials: make(map[int64]*inventory.Material, len(s.materials)),
		tasks:     make(map[int64]*inventory.CountTask, len(s.tasks)),
		movements: make(map[int64]*inventory.StockMovement, len(s.movements)),
		warnings:  make(map[int64]*inventory.StockWarning, len(s.warnings)),
		nextID:    s.nextID,
		billSeq:   make(map[string]int, len(s.billSeq)),
		taskSeq:   s.taskSeq,
	}
	for id, m := range s.materials {
		snap.materials[id] = cloneMaterial(m)
	}
	for id, t := range s.tasks {
		snap.tasks[id] = cloneTask(t)
	}
	for id, sm := range s.movements {
		snap.movements[id] = cloneMovement(sm)
	}
	for id, w := range s.warnings {
		snap.warnings[id] = cloneWarning(w)
	}
	for k, v := range s.billSeq {
		snap.billSeq[k] = v
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.materials = snap.materials
	s.tasks = snap.tasks
	s.movements = snap.movements
	s.warnings = snap.warnings
	s.nextID = snap.nextID
	s.billSeq = snap.billSeq
	s.taskSeq = snap.taskSeq
}

// ===================== material repository =====================

type memMaterialRepo struct{ s *memStore }

func (r *memMaterialRepo) FindByID(_ context.Context, id int64) (*inventory.Material, error) {
	m, ok := r.s.materials[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneMaterial(m), nil
}

func (r *memMaterialRepo) FindByCode(_ context.Context, code string) (*inventory.Material, error) {
	for _, m := range r.s.materials {
		if m.MaterialCode == code {
			return cloneMaterial(m), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memMaterialRepo) FindActive(_ context.Context) ([]inventory.Material, error) {
	result := make([]inventory.Material, 0)
	for _, m := range r.s.materials {
		if m.IsActive() {
			result = append(result, *cloneMaterial(m))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MaterialCode < result[j].MaterialCode })
	return result, nil
}

func (r *memMaterialRepo) FindAll(_ context.Context, _ inventory.MaterialFilter) ([]inventory.Material, error) {
	result := make([]inventory.Material, 0, len(r.s.materials))
	for _, m := range r.s.materials {
		result = append(result, *cloneMaterial(m))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].MaterialCode < result[j].MaterialCode })
	return result, nil
}

func (r *memMaterialRepo) Count(_ context.Context, _ inventory.MaterialFilter) (int64, error) {
	return int64(len(r.s.materials)), nil
}

func (r *memMaterialRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, m := range r.s.materials {
		if m.MaterialCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memMaterialRepo) Save(_ context.Context, m *inventory.Material) error {
	if m.ID == 0 {
		m.ID = r.s.id()
	}
	r.s.materials[m.ID] = cloneMaterial(m)
	return nil
}

func (r *memMaterialRepo) ApplyDelta(_ context.Context, materialID int64, qty int64, value decimal.Decimal) error {
	m, ok := r.s.materials[materialID]
	if !ok {
		return shared.ErrNotFound
	}
	if m.CurrentStock+qty < 0 {
		return shared.ErrInsufficientStock
	}
	m.CurrentStock += qty
	m.StockValue = m.StockValue.Add(value)
	return nil
}

// ===================== count task repository =====================

type memTaskRepo struct{ s *memStore }

func (r *memTaskRepo) FindByID(_ context.Context, id int64) (*inventory.CountTask, error) {
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneTask(t), nil
}

func (r *memTaskRepo) FindByItemID(_ context.Context, itemID int64) (*inventory.CountTask, error) {
	for _, t := range r.s.tasks {
		for i := range t.Items {
			if t.Items[i].ID == itemID {
				return cloneTask(t), nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTaskRepo) FindByTaskNo(_ context.Context, taskNo string) (*inventory.CountTask, error) {
	for _, t := range r.s.tasks {
		if t.TaskNo == taskNo {
			return cloneTask(t), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memTaskRepo) FindAll(_ context.Context, filter inventory.CountTaskFilter) ([]inventory.CountTask, error) {
	result := make([]inventory.CountTask, 0, len(r.s.tasks))
	for _, t := range r.s.tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		c := cloneTask(t)
		c.Items = nil
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memTaskRepo) Count(_ context.Context, filter inventory.CountTaskFilter) (int64, error) {
	var n int64
	for _, t := range r.s.tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		n++
	}
	return n, nil
}

func (r *memTaskRepo) ItemCounts(_ context.Context, taskIDs []int64) (map[int64]inventory.ItemCountSummary, error) {
	result := make(map[int64]inventory.ItemCountSummary, len(taskIDs))
	for _, id := range taskIDs {
		t, ok := r.s.tasks[id]
		if !ok {
			continue
		}
		result[id] = inventory.ItemCountSummary{
			ItemCount:    t.ItemCount(),
			CountedCount: t.CountedCount(),
		}
	}
	return result, nil
}

func (r *memTaskRepo) Save(_ context.Context, t *inventory.CountTask) error {
	if t.ID == 0 {
		t.ID = r.s.id()
	}
	for i := range t.Items {
		if t.Items[i].ID == 0 {
			t.Items[i].ID = r.s.id()
		}
		t.Items[i].TaskID = t.ID
	}
	r.s.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *memTaskRepo) SaveItem(_ context.Context, item *inventory.CountItem) error {
	t, ok := r.s.tasks[item.TaskID]
	if !ok {
		return shared.ErrNotFound
	}
	for i := range t.Items {
		if t.Items[i].ID == item.ID {
			t.Items[i] = *item
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memTaskRepo) GenerateTaskNo(_ context.Context) (string, error) {
	r.s.taskSeq++
	return fmt.Sprintf("SC-20260831-%04d", r.s.taskSeq), nil
}

// ===================== movement repository =====================

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) FindByID(_ context.Context, id int64) (*inventory.StockMovement, error) {
	sm, ok := r.s.movements[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneMovement(sm), nil
}

func (r *memMovementRepo) FindByBillNo(_ context.Context, billNo string) (*inventory.StockMovement, error) {
	for _, sm := range r.s.movements {
		if sm.BillNo == billNo {
			return cloneMovement(sm), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memMovementRepo) FindAll(_ context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	result := make([]inventory.StockMovement, 0, len(r.s.movements))
	for _, sm := range r.s.movements {
		if filter.Direction != nil && sm.Direction != *filter.Direction {
			continue
		}
		result = append(result, *cloneMovement(sm))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memMovementRepo) Count(_ context.Context, filter inventory.MovementFilter) (int64, error) {
	movements, _ := r.FindAll(context.Background(), filter)
	return int64(len(movements)), nil
}

func (r *memMovementRepo) Save(_ context.Context, sm *inventory.StockMovement) error {
	if sm.ID == 0 {
		sm.ID = r.s.id()
	}
	r.s.movements[sm.ID] = cloneMovement(sm)
	return nil
}

func (r *memMovementRepo) GenerateBillNo(_ context.Context, prefix string) (string, error) {
	r.s.billSeq[prefix]++
	return fmt.Sprintf("%s-20260831-%04d", prefix, r.s.billSeq[prefix]), nil
}

// ===================== warning repository =====================

type memWarningRepo struct{ s *memStore }

func (r *memWarningRepo) FindByID(_ context.Context, id int64) (*inventory.StockWarning, error) {
	w, ok := r.s.warnings[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return cloneWarning(w), nil
}

func (r *memWarningRepo) FindPendingByMaterial(_ context.Context, materialID int64) (*inventory.StockWarning, error) {
	for _, w := range r.s.warnings {
		if w.MaterialID == materialID && w.Status == inventory.WarningStatusPending {
			return cloneWarning(w), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memWarningRepo) FindAll(_ context.Context, filter inventory.WarningFilter) ([]inventory.StockWarning, error) {
	result := make([]inventory.StockWarning, 0, len(r.s.warnings))
	for _, w := range r.s.warnings {
		if filter.Status != nil && w.Status != *filter.Status {
			continue
		}
		if filter.WarningType != nil && w.WarningType != *filter.WarningType {
			continue
		}
		if filter.Level != nil && w.Level != *filter.Level {
			continue
		}
		result = append(result, *cloneWarning(w))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memWarningRepo) Count(ctx context.Context, filter inventory.WarningFilter) (int64, error) {
	warnings, _ := r.FindAll(ctx, filter)
	return int64(len(warnings)), nil
}

func (r *memWarningRepo) CountGrouped(ctx context.Context) (inventory.WarningStatistics, error) {
	var stats inventory.WarningStatistics
	for _, w := range r.s.warnings {
		stats.Total++
		if w.Status == inventory.WarningStatusPending {
			stats.Pending++
		} else {
			stats.Resolved++
		}
		if w.WarningType == inventory.WarningTypeLow {
			stats.Low++
		} else {
			stats.High++
		}
		if w.Level == inventory.WarningLevelDanger {
			stats.Danger++
		} else {
			stats.Warning++
		}
	}
	return stats, nil
}

func (r *memWarningRepo) Save(_ context.Context, w *inventory.StockWarning) error {
	if w.ID == 0 {
		w.ID = r.s.id()
	}
	r.s.warnings[w.ID] = cloneWarning(w)
	return nil
}

// ===================== transaction scope =====================

// memTxScope emulates transactional semantics by snapshotting the store
// before the scoped function and restoring it when the function fails.
type memTxScope struct{ s *memStore }

func (t *memTxScope) Execute(_ context.Context, fn func(repos inventory.TransactionalRepositories) error) error {
	snap := t.s.snapshot()
	if err := fn(memRepos{t.s}); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type memRepos struct{ s *memStore }

func (r memRepos) Materials() inventory.MaterialRepository      { return &memMaterialRepo{r.s} }
func (r memRepos) Movements() inventory.StockMovementRepository { return &memMovementRepo{r.s} }
func (r memRepos) CountTasks() inventory.CountTaskRepository    { return &memTaskRepo{r.s} }
func (r memRepos) Warnings() inventory.StockWarningRepository   { return &memWarningRepo{r.s} }

// testEnv wires the services against one shared store
type testEnv struct {
	store      *memStore
	materials  *memMaterialRepo
	tasks      *memTaskRepo
	movements  *memMovementRepo
	warningSvc *WarningService
	countSvc   *CountService
	movementSv *MovementService
	materialSv *MaterialService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	materials := &memMaterialRepo{store}
	tasks := &memTaskRepo{store}
	movements := &memMovementRepo{store}
	warnings := &memWarningRepo{store}
	scope := &memTxScope{store}

	warningSvc := NewWarningService(warnings, materials, nil)
	return &testEnv{
		store:      store,
		materials:  materials,
		tasks:      tasks,
		movements:  movements,
		warningSvc: warningSvc,
		countSvc:   NewCountService(tasks, materials, scope, warningSvc, nil, zap.NewNop()),
		movementSv: NewMovementService(movements, scope, warningSvc, nil, zap.NewNop()),
		materialSv: NewMaterialService(materials, warningSvc, nil, zap.NewNop()),
	}
}

// seedMaterial stores an active material with the given stock and thresholds
func (e *testEnv) seedMaterial(code string, stock, minStock, maxStock int64) *inventory.Material {
	m, err := inventory.NewMaterial(code, "Material "+code, "", "pcs", "raw", "Acme", decimal.NewFromInt(4), minStock, maxStock, stock)
	if err != nil {
		panic(err)
	}
	m.ClearDomainEvents()
	if err := e.materials.Save(context.Background(), m); err != nil {
		panic(err)
	}
	return m
}
