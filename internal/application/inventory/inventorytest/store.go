// Package inventorytest provee un almacenamiento en memoria con semántica transaccional
// para probar el motor de conciliación sin PostgreSQL.
//
// Cada transacción trabaja sobre una copia del estado y se confirma de forma atómica.
// En modo pesimista (por defecto) las transacciones se serializan, como con SELECT FOR UPDATE;
// en modo optimista corren en paralelo y el commit falla con domain.ErrConcurrencyConflict
// si otro commit modificó un activo tocado por la transacción.
package inventorytest

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/control-activos/internal/application/inventory"
	"github.com/jhoicas/control-activos/internal/domain"
	"github.com/jhoicas/control-activos/internal/domain/entity"
	"github.com/jhoicas/control-activos/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado confirmado en memoria.
type Store struct {
	// Optimistic desactiva la serialización de transacciones.
	Optimistic bool
	// FailOn si no es nil se invoca antes de cada escritura dentro de una transacción
	// ("asset.create", "asset.update", "asset.update_stock", "asset.delete", "movement.create", "detail.create");
	// un error aborta la transacción.
	FailOn func(op string) error

	serial    sync.Mutex
	mu        sync.Mutex
	assets    map[string]entity.Asset
	movements map[string]entity.Movement
	movOrder  []string
	details   []entity.MovementDetail
	users     map[string]entity.User
	commits   int
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		assets:    map[string]entity.Asset{},
		movements: map[string]entity.Movement{},
		users:     map[string]entity.User{},
	}
}

// Run ejecuta fn en una transacción y confirma si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(
	assetRepo repository.AssetRepository,
	movRepo repository.MovementRepository,
	detailRepo repository.MovementDetailRepository,
) error) error {
	if !s.Optimistic {
		s.serial.Lock()
		defer s.serial.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	tx := &txState{
		store:   s,
		assets:  make(map[string]entity.Asset, len(s.assets)),
		base:    map[string]int{},
		touched: map[string]bool{},
		created: map[string]bool{},
		deleted: map[string]bool{},
	}
	for id, a := range s.assets {
		tx.assets[id] = cloneAsset(a)
	}
	s.mu.Unlock()

	if err := fn(&txAssets{tx}, &txMovements{tx}, &txDetails{tx}); err != nil {
		return err
	}
	return s.commit(tx)
}

func (s *Store) commit(tx *txState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range tx.touched {
		if tx.created[id] {
			continue
		}
		cur, ok := s.assets[id]
		if !ok || cur.Version != tx.base[id] {
			return fmt.Errorf("%w: activo %s modificado por otra transacción", domain.ErrConcurrencyConflict, id)
		}
	}
	for id := range tx.created {
		a := tx.assets[id]
		for _, other := range s.assets {
			if other.SKU == a.SKU {
				return domain.ErrDuplicate
			}
		}
	}
	for id := range tx.touched {
		if tx.deleted[id] {
			delete(s.assets, id)
			continue
		}
		s.assets[id] = cloneAsset(tx.assets[id])
	}
	for _, m := range tx.movements {
		s.movements[m.ID] = m
		s.movOrder = append(s.movOrder, m.ID)
	}
	s.details = append(s.details, tx.details...)
	s.commits++
	return nil
}

// Commits número de transacciones confirmadas.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// PutAsset inserta o reemplaza un activo confirmado (preparación de tests).
func (s *Store) PutAsset(a entity.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[a.ID] = cloneAsset(a)
}

// Asset devuelve una copia del activo confirmado.
func (s *Store) Asset(id string) (entity.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.assets[id]
	return cloneAsset(a), ok
}

// Movements devuelve los movimientos confirmados en orden de creación.
func (s *Store) Movements() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Movement, 0, len(s.movOrder))
	for _, id := range s.movOrder {
		out = append(out, s.movements[id])
	}
	return out
}

// Details devuelve los detalles confirmados.
func (s *Store) Details() []entity.MovementDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.MovementDetail(nil), s.details...)
}

// PutUser inserta o reemplaza un usuario.
func (s *Store) PutUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Assets repositorio de activos fuera de transacción (cada escritura es su propia transacción).
func (s *Store) Assets() repository.AssetRepository { return &poolAssets{s} }

// Movements repositorio del libro fuera de transacción.
func (s *Store) MovementRepo() repository.MovementRepository { return &poolMovements{s} }

// DetailRepo repositorio de detalles fuera de transacción.
func (s *Store) DetailRepo() repository.MovementDetailRepository { return &poolDetails{s} }

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository { return &users{s} }

// History proyección de historial sobre el estado confirmado.
func (s *Store) History() repository.HistoryRepository { return &history{s} }

func cloneAsset(a entity.Asset) entity.Asset {
	if a.Specs != nil {
		a.Specs = maps.Clone(a.Specs)
	}
	return a
}

// ── Transacción ───────────────────────────────────────────────────────────────

type txState struct {
	store     *Store
	assets    map[string]entity.Asset
	base      map[string]int
	touched   map[string]bool
	created   map[string]bool
	deleted   map[string]bool
	movements []entity.Movement
	details   []entity.MovementDetail
}

func (tx *txState) fail(op string) error {
	if tx.store.FailOn == nil {
		return nil
	}
	return tx.store.FailOn(op)
}

func (tx *txState) touch(id string) {
	if !tx.touched[id] {
		tx.touched[id] = true
		tx.base[id] = tx.assets[id].Version
	}
}

type txAssets struct{ tx *txState }

func (r *txAssets) Create(_ context.Context, asset *entity.Asset) error {
	if err := r.tx.fail("asset.create"); err != nil {
		return err
	}
	for _, a := range r.tx.assets {
		if a.SKU == asset.SKU {
			return domain.ErrDuplicate
		}
	}
	r.tx.assets[asset.ID] = cloneAsset(*asset)
	r.tx.touched[asset.ID] = true
	r.tx.created[asset.ID] = true
	return nil
}

func (r *txAssets) GetByID(_ context.Context, id string) (*entity.Asset, error) {
	a, ok := r.tx.assets[id]
	if !ok || r.tx.deleted[id] {
		return nil, nil
	}
	c := cloneAsset(a)
	return &c, nil
}

func (r *txAssets) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	return r.GetByID(ctx, id)
}

func (r *txAssets) List(_ context.Context, filter repository.AssetFilter, limit, offset int) ([]*entity.Asset, error) {
	return listAssets(r.tx.assets, filter, limit, offset), nil
}

func (r *txAssets) Update(_ context.Context, asset *entity.Asset) error {
	if err := r.tx.fail("asset.update"); err != nil {
		return err
	}
	cur, ok := r.tx.assets[asset.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != asset.Version {
		return domain.ErrConcurrencyConflict
	}
	for id, a := range r.tx.assets {
		if id != asset.ID && a.SKU == asset.SKU {
			return domain.ErrDuplicate
		}
	}
	r.tx.touch(asset.ID)
	asset.Version++
	r.tx.assets[asset.ID] = cloneAsset(*asset)
	return nil
}

func (r *txAssets) UpdateStock(_ context.Context, id string, available int, status entity.AssetStatus, expectedVersion int) error {
	if err := r.tx.fail("asset.update_stock"); err != nil {
		return err
	}
	a, ok := r.tx.assets[id]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Version != expectedVersion {
		return domain.ErrConcurrencyConflict
	}
	if available < 0 || available > a.StockTotal {
		return fmt.Errorf("violación de check stock_disponible: %d fuera de [0, %d]", available, a.StockTotal)
	}
	r.tx.touch(id)
	a.StockAvailable = available
	a.Status = status
	a.Version++
	a.UpdatedAt = time.Now()
	r.tx.assets[id] = a
	return nil
}

func (r *txAssets) Delete(_ context.Context, id string) error {
	if err := r.tx.fail("asset.delete"); err != nil {
		return err
	}
	if _, ok := r.tx.assets[id]; !ok {
		return domain.ErrNotFound
	}
	r.tx.touch(id)
	r.tx.deleted[id] = true
	return nil
}

type txMovements struct{ tx *txState }

func (r *txMovements) Create(_ context.Context, movement *entity.Movement) error {
	if err := r.tx.fail("movement.create"); err != nil {
		return err
	}
	m := *movement
	m.Details = nil
	r.tx.movements = append(r.tx.movements, m)
	return nil
}

func (r *txMovements) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	for _, m := range r.tx.movements {
		if m.ID == id {
			c := m
			return &c, nil
		}
	}
	return r.tx.store.movementByID(id), nil
}

type txDetails struct{ tx *txState }

func (r *txDetails) Create(_ context.Context, detail *entity.MovementDetail) error {
	if err := r.tx.fail("detail.create"); err != nil {
		return err
	}
	if detail.Quantity <= 0 {
		return fmt.Errorf("violación de check cantidad: %d", detail.Quantity)
	}
	r.tx.details = append(r.tx.details, *detail)
	return nil
}

func (r *txDetails) ListByMovement(_ context.Context, movementID string) ([]entity.MovementDetail, error) {
	return r.tx.store.detailsOf(movementID), nil
}

func (r *txDetails) SumByAsset(_ context.Context, assetID string) (int, int, error) {
	issued, returned := r.tx.store.sumByAsset(assetID)
	return issued, returned, nil
}

// ── Acceso fuera de transacción ───────────────────────────────────────────────

type poolAssets struct{ s *Store }

func (r *poolAssets) inTx(ctx context.Context, fn func(repository.AssetRepository) error) error {
	return r.s.Run(ctx, func(a repository.AssetRepository, _ repository.MovementRepository, _ repository.MovementDetailRepository) error {
		return fn(a)
	})
}

func (r *poolAssets) Create(ctx context.Context, asset *entity.Asset) error {
	return r.inTx(ctx, func(a repository.AssetRepository) error { return a.Create(ctx, asset) })
}

func (r *poolAssets) GetByID(_ context.Context, id string) (*entity.Asset, error) {
	a, ok := r.s.Asset(id)
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *poolAssets) GetForUpdate(ctx context.Context, id string) (*entity.Asset, error) {
	return r.GetByID(ctx, id)
}

func (r *poolAssets) List(_ context.Context, filter repository.AssetFilter, limit, offset int) ([]*entity.Asset, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return listAssets(r.s.assets, filter, limit, offset), nil
}

func (r *poolAssets) Update(ctx context.Context, asset *entity.Asset) error {
	return r.inTx(ctx, func(a repository.AssetRepository) error { return a.Update(ctx, asset) })
}

func (r *poolAssets) UpdateStock(ctx context.Context, id string, available int, status entity.AssetStatus, expectedVersion int) error {
	return r.inTx(ctx, func(a repository.AssetRepository) error {
		return a.UpdateStock(ctx, id, available, status, expectedVersion)
	})
}

func (r *poolAssets) Delete(ctx context.Context, id string) error {
	return r.inTx(ctx, func(a repository.AssetRepository) error { return a.Delete(ctx, id) })
}

type poolMovements struct{ s *Store }

func (r *poolMovements) Create(ctx context.Context, movement *entity.Movement) error {
	return r.s.Run(ctx, func(_ repository.AssetRepository, m repository.MovementRepository, _ repository.MovementDetailRepository) error {
		return m.Create(ctx, movement)
	})
}

func (r *poolMovements) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	return r.s.movementByID(id), nil
}

type poolDetails struct{ s *Store }

func (r *poolDetails) Create(ctx context.Context, detail *entity.MovementDetail) error {
	return r.s.Run(ctx, func(_ repository.AssetRepository, _ repository.MovementRepository, d repository.MovementDetailRepository) error {
		return d.Create(ctx, detail)
	})
}

func (r *poolDetails) ListByMovement(_ context.Context, movementID string) ([]entity.MovementDetail, error) {
	return r.s.detailsOf(movementID), nil
}

func (r *poolDetails) SumByAsset(_ context.Context, assetID string) (int, int, error) {
	issued, returned := r.s.sumByAsset(assetID)
	return issued, returned, nil
}

func (s *Store) movementByID(id string) *entity.Movement {
	s.mu.Lock()
	m, ok := s.movements[id]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	m.Details = s.detailsOf(id)
	return &m
}

func (s *Store) detailsOf(movementID string) []entity.MovementDetail {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.MovementDetail
	for _, d := range s.details {
		if d.MovementID == movementID {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) sumByAsset(assetID string) (issued, returned int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.details {
		if d.AssetID != assetID {
			continue
		}
		switch t := s.movements[d.MovementID].Type; {
		case t.IsIssue():
			issued += d.Quantity
		case t == entity.MovementTypeReturn:
			returned += d.Quantity
		}
	}
	return issued, returned
}

func listAssets(all map[string]entity.Asset, f repository.AssetFilter, limit, offset int) []*entity.Asset {
	var out []*entity.Asset
	for _, a := range all {
		if f.Search != "" && !containsFold(a.Name, f.Search) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Kind != "" && a.Kind != f.Kind {
			continue
		}
		if f.Warehouse != "" && a.Location.Warehouse != f.Warehouse {
			continue
		}
		if f.Shelf != "" && !containsFold(a.Location.Shelf, f.Shelf) {
			continue
		}
		c := cloneAsset(a)
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// ── Usuarios e historial ──────────────────────────────────────────────────────

type users struct{ s *Store }

func (r *users) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.NickName == user.NickName {
			return domain.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *users) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *users) GetByNickName(_ context.Context, nickName string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.NickName == nickName {
			c := u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *users) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.users {
		c := u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *users) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && u.NickName == user.NickName {
			return domain.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *users) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	for _, m := range r.s.movements {
		if uid, _ := m.Recipient.UserID(); m.IssuedBy == id || uid == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.users, id)
	return nil
}

type history struct{ s *Store }

func (r *history) List(_ context.Context, f repository.HistoryFilter) ([]repository.HistoryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []repository.HistoryEntry
	for i := len(r.s.details) - 1; i >= 0; i-- {
		d := r.s.details[i]
		if f.AssetID != "" && d.AssetID != f.AssetID {
			continue
		}
		m := r.s.movements[d.MovementID]
		if f.From != nil && m.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && m.Date.After(*f.To) {
			continue
		}
		e := repository.HistoryEntry{
			MovementID: m.ID,
			Date:       m.Date,
			Type:       string(m.Type),
			AssetID:    d.AssetID,
			Quantity:   d.Quantity,
			Notes:      m.Notes,
		}
		if a, ok := r.s.assets[d.AssetID]; ok {
			e.AssetName, e.AssetSKU = a.Name, a.SKU
		}
		if uid, ok := m.Recipient.UserID(); ok {
			e.RecipientUserID = uid
			e.RecipientName = r.s.users[uid].FullName
		}
		if name, surname, ok := m.Recipient.Visitor(); ok {
			e.VisitorName, e.VisitorSurname = name, surname
		}
		if u, ok := r.s.users[m.IssuedBy]; ok {
			e.IssuerName, e.IssuerRole = u.FullName, u.Role
		}
		out = append(out, e)
	}
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}
