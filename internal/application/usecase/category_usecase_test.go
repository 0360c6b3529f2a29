package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventory-api/internal/application/dto"
	"github.com/jhoicas/Ventory-api/internal/domain/entity"
)

// fakeCategoryRepo repositorio de categorías en memoria.
type fakeCategoryRepo struct {
	byID map[string]*entity.Category
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	r := &fakeCategoryRepo{byID: map[string]*entity.Category{}}
	for _, c := range categories {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	if _, ok := r.byID[c.ID]; !ok {
		return entity.ErrNotFound
	}
	copied := *c
	r.byID[c.ID] = &copied
	return nil
}

func (r *fakeCategoryRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.byID {
		if c.CompanyID == companyID && c.IsActive {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) ListChildren(_ context.Context, parentID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.byID {
		if c.ParentID == parentID && c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) SoftDelete(_ context.Context, id string) error {
	c, ok := r.byID[id]
	if !ok {
		return entity.ErrNotFound
	}
	c.IsActive = false
	return nil
}

// fakeProductRepo solo implementa lo que la cascada de categorías necesita.
type fakeProductRepo struct {
	byID map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: map[string]*entity.Product{}}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return entity.ErrNotFound
	}
	copied := *p
	r.byID[p.ID] = &copied
	return nil
}

func (r *fakeProductRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.CompanyID == companyID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListByCategory(_ context.Context, companyID, categoryID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.CompanyID == companyID && p.Category.ID == categoryID && p.IsActive {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.byID[id]
	if !ok {
		return entity.ErrNotFound
	}
	p.IsActive = false
	return nil
}

// árbol de prueba: Electrónica > Audio > Audífonos, más la raíz Hogar.
func seedTree() *fakeCategoryRepo {
	root := &entity.Category{ID: "c-elec", CompanyID: "co", Name: "Electrónica", Path: "Electrónica", IsActive: true}
	audio := &entity.Category{ID: "c-audio", CompanyID: "co", Name: "Audio", ParentID: "c-elec", Path: "Electrónica/Audio", Level: 1, IsActive: true}
	head := &entity.Category{ID: "c-head", CompanyID: "co", Name: "Audífonos", ParentID: "c-audio", Path: "Electrónica/Audio/Audífonos", Level: 2, IsActive: true}
	home := &entity.Category{ID: "c-hogar", CompanyID: "co", Name: "Hogar", Path: "Hogar", IsActive: true}
	return newFakeCategoryRepo(root, audio, head, home)
}

func strPtr(s string) *string { return &s }

func TestCategoryUpdate_RenombrarReconstruyeSubarbol(t *testing.T) {
	repo := seedTree()
	products := newFakeProductRepo(&entity.Product{
		ID: "p1", CompanyID: "co", IsActive: true,
		Category: entity.ProductCategory{ID: "c-audio", Name: "Audio", Path: "Electrónica/Audio"},
	})
	uc := NewCategoryUseCase(repo, products)

	_, err := uc.Update(context.Background(), "c-elec", dto.UpdateCategoryRequest{Name: strPtr("Tecnología")})
	require.NoError(t, err)

	audio, _ := repo.GetByID(context.Background(), "c-audio")
	head, _ := repo.GetByID(context.Background(), "c-head")
	assert.Equal(t, "Tecnología/Audio", audio.Path)
	assert.Equal(t, "Tecnología/Audio/Audífonos", head.Path)
	assert.Equal(t, 2, head.Level)

	p, _ := products.GetByID(context.Background(), "p1")
	assert.Equal(t, "Tecnología/Audio", p.Category.Path,
		"la categoría denormalizada del producto se sincroniza en cascada")
}

func TestCategoryUpdate_MoverBajoOtroPadre(t *testing.T) {
	repo := seedTree()
	uc := NewCategoryUseCase(repo, newFakeProductRepo())

	_, err := uc.Update(context.Background(), "c-audio", dto.UpdateCategoryRequest{ParentID: strPtr("c-hogar")})
	require.NoError(t, err)

	audio, _ := repo.GetByID(context.Background(), "c-audio")
	head, _ := repo.GetByID(context.Background(), "c-head")
	assert.Equal(t, "Hogar/Audio", audio.Path)
	assert.Equal(t, 1, audio.Level)
	assert.Equal(t, "Hogar/Audio/Audífonos", head.Path)
}

func TestCategoryUpdate_MoverBajoDescendienteDetectaCiclo(t *testing.T) {
	repo := seedTree()
	uc := NewCategoryUseCase(repo, newFakeProductRepo())

	_, err := uc.Update(context.Background(), "c-elec", dto.UpdateCategoryRequest{ParentID: strPtr("c-head")})
	assert.ErrorIs(t, err, entity.ErrCycleDetected,
		"mover una categoría bajo su propio descendiente forma un ciclo")

	// Nada cambió.
	elec, _ := repo.GetByID(context.Background(), "c-elec")
	assert.Equal(t, "Electrónica", elec.Path)
}

func TestCategoryUpdate_MoverBajoSiMismaDetectaCiclo(t *testing.T) {
	repo := seedTree()
	uc := NewCategoryUseCase(repo, newFakeProductRepo())

	_, err := uc.Update(context.Background(), "c-audio", dto.UpdateCategoryRequest{ParentID: strPtr("c-audio")})
	assert.ErrorIs(t, err, entity.ErrCycleDetected)
}

func TestCategoryUpdate_MoverARaiz(t *testing.T) {
	repo := seedTree()
	uc := NewCategoryUseCase(repo, newFakeProductRepo())

	_, err := uc.Update(context.Background(), "c-audio", dto.UpdateCategoryRequest{ParentID: strPtr("")})
	require.NoError(t, err)

	audio, _ := repo.GetByID(context.Background(), "c-audio")
	assert.Equal(t, "Audio", audio.Path)
	assert.Equal(t, 0, audio.Level)
}

func TestCategoryDelete_ConHijosActivosSeRechaza(t *testing.T) {
	repo := seedTree()
	uc := NewCategoryUseCase(repo, newFakeProductRepo())

	err := uc.Delete(context.Background(), "c-audio")
	assert.ErrorIs(t, err, entity.ErrValidation)

	require.NoError(t, uc.Delete(context.Background(), "c-head"))
	require.NoError(t, uc.Delete(context.Background(), "c-audio"),
		"desactivados los hijos, la categoría ya puede desactivarse")
}

func TestCategoryTree_AnidaPorNiveles(t *testing.T) {
	repo := seedTree()
	uc := NewCategoryUseCase(repo, newFakeProductRepo())

	tree, err := uc.Tree(context.Background(), "co")
	require.NoError(t, err)
	require.Len(t, tree, 2, "dos raíces: Electrónica y Hogar")

	var elec *dto.CategoryTreeNode
	for i := range tree {
		if tree[i].Category.ID == "c-elec" {
			elec = &tree[i]
		}
	}
	require.NotNil(t, elec)
	require.Len(t, elec.Children, 1)
	assert.Equal(t, "c-audio", elec.Children[0].Category.ID)
	require.Len(t, elec.Children[0].Children, 1)
	assert.Equal(t, "c-head", elec.Children[0].Children[0].Category.ID)
}
