package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventory-api/internal/application/dto"
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// fakeWarehouseRepo repositorio de bodegas en memoria. SetDefault replica la
// semántica atómica del repositorio real: marca una y desmarca el resto.
type fakeWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func newFakeWarehouseRepo(warehouses ...*entity.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{byID: map[string]*entity.Warehouse{}}
	for _, w := range warehouses {
		r.byID[w.ID] = w
	}
	return r
}

func (r *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	copied := *w
	r.byID[w.ID] = &copied
	return nil
}

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	if _, ok := r.byID[w.ID]; !ok {
		return entity.ErrNotFound
	}
	copied := *w
	r.byID[w.ID] = &copied
	return nil
}

func (r *fakeWarehouseRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.byID {
		if w.CompanyID == companyID && w.IsActive {
			copied := *w
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeWarehouseRepo) SoftDelete(_ context.Context, id string) error {
	w, ok := r.byID[id]
	if !ok {
		return entity.ErrNotFound
	}
	w.IsActive = false
	return nil
}

func (r *fakeWarehouseRepo) SetDefault(_ context.Context, companyID, warehouseID string) error {
	if _, ok := r.byID[warehouseID]; !ok {
		return entity.ErrNotFound
	}
	for _, w := range r.byID {
		if w.CompanyID == companyID {
			w.Settings.IsDefault = w.ID == warehouseID
		}
	}
	return nil
}

func TestWarehouseCreate_ConIsDefaultDesmarcaLaAnterior(t *testing.T) {
	repo := newFakeWarehouseRepo(&entity.Warehouse{
		ID: "w-central", CompanyID: "co", Name: "Central",
		Settings: entity.WarehouseSettings{IsDefault: true}, IsActive: true,
	})
	uc := NewWarehouseUseCase(repo)

	created, err := uc.Create(context.Background(), "co", dto.CreateWarehouseRequest{
		Name:       "Norte",
		TotalSpace: 500,
		IsDefault:  true,
	})
	require.NoError(t, err)
	assert.True(t, created.Settings.IsDefault)
	assert.True(t, created.IsActive)
	assert.Equal(t, 500.0, created.Capacity.TotalSpace)

	old, _ := repo.GetByID(context.Background(), "w-central")
	assert.False(t, old.Settings.IsDefault, "solo una bodega predeterminada por empresa")
}

func TestWarehouseCreate_SinIsDefaultNoTocaLaPredeterminada(t *testing.T) {
	repo := newFakeWarehouseRepo(&entity.Warehouse{
		ID: "w-central", CompanyID: "co", Name: "Central",
		Settings: entity.WarehouseSettings{IsDefault: true}, IsActive: true,
	})
	uc := NewWarehouseUseCase(repo)

	created, err := uc.Create(context.Background(), "co", dto.CreateWarehouseRequest{Name: "Norte"})
	require.NoError(t, err)
	assert.False(t, created.Settings.IsDefault)

	old, _ := repo.GetByID(context.Background(), "w-central")
	assert.True(t, old.Settings.IsDefault)
}

func TestWarehouseSetDefault_ResuelveLaEmpresaDesdeLaBodega(t *testing.T) {
	repo := newFakeWarehouseRepo(
		&entity.Warehouse{ID: "w1", CompanyID: "co", Name: "Central", Settings: entity.WarehouseSettings{IsDefault: true}, IsActive: true},
		&entity.Warehouse{ID: "w2", CompanyID: "co", Name: "Norte", IsActive: true},
		&entity.Warehouse{ID: "w3", CompanyID: "otra", Name: "Ajena", Settings: entity.WarehouseSettings{IsDefault: true}, IsActive: true},
	)
	uc := NewWarehouseUseCase(repo)

	require.NoError(t, uc.SetDefault(context.Background(), "w2"))

	w1, _ := repo.GetByID(context.Background(), "w1")
	w2, _ := repo.GetByID(context.Background(), "w2")
	w3, _ := repo.GetByID(context.Background(), "w3")
	assert.False(t, w1.Settings.IsDefault)
	assert.True(t, w2.Settings.IsDefault)
	assert.True(t, w3.Settings.IsDefault, "el marcado de otra empresa no se toca")
}

func TestWarehouseSetDefault_BodegaInexistente(t *testing.T) {
	uc := NewWarehouseUseCase(newFakeWarehouseRepo())
	err := uc.SetDefault(context.Background(), "no-existe")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestWarehouseDelete_LaPredeterminadaSeRechaza(t *testing.T) {
	repo := newFakeWarehouseRepo(
		&entity.Warehouse{ID: "w1", CompanyID: "co", Name: "Central", Settings: entity.WarehouseSettings{IsDefault: true}, IsActive: true},
		&entity.Warehouse{ID: "w2", CompanyID: "co", Name: "Norte", IsActive: true},
	)
	uc := NewWarehouseUseCase(repo)

	err := uc.Delete(context.Background(), "w1")
	assert.ErrorIs(t, err, entity.ErrValidation)

	require.NoError(t, uc.Delete(context.Background(), "w2"))
	list, _ := uc.List(context.Background(), "co")
	require.Len(t, list.Items, 1)
	assert.Equal(t, "w1", list.Items[0].ID)
}

func TestWarehouseUpdate_NoMutaIsDefault(t *testing.T) {
	repo := newFakeWarehouseRepo(&entity.Warehouse{
		ID: "w1", CompanyID: "co", Name: "Central",
		Settings: entity.WarehouseSettings{IsDefault: true}, IsActive: true,
	})
	uc := NewWarehouseUseCase(repo)

	name := "Central Renombrada"
	space := 800.0
	updated, err := uc.Update(context.Background(), "w1", dto.UpdateWarehouseRequest{Name: &name, TotalSpace: &space})
	require.NoError(t, err)
	assert.Equal(t, "Central Renombrada", updated.Name)
	assert.Equal(t, 800.0, updated.Capacity.TotalSpace)
	assert.True(t, updated.Settings.IsDefault)
}
