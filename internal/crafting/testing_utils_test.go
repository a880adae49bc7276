package crafting

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hearthvale/craftforge/internal/concurrency"
	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/event"
	"github.com/hearthvale/craftforge/internal/repository"
)

// MockRepository is an in-memory repository.Crafting used by the
// service tests. Transactions stage their writes and apply them on
// Commit, so rollback paths leave the maps untouched.
type MockRepository struct {
	mu sync.RWMutex

	recipes     map[int]domain.RecipeGroup
	outputs     map[int][]domain.RecipeOutput
	materials   map[int]domain.CraftingMaterial
	items       map[int]domain.Item
	characters  map[string]domain.Character
	professions map[string]map[domain.ProfessionType]domain.CharacterProfession
	stock       map[string]map[int]int
	sessions    map[string]domain.CraftingSession
	inventory   map[string][]domain.InventoryEntry

	nextEntryID int

	// Error injection, checked before the corresponding operation
	BeginTxErr error
	CommitErr  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		recipes:     make(map[int]domain.RecipeGroup),
		outputs:     make(map[int][]domain.RecipeOutput),
		materials:   make(map[int]domain.CraftingMaterial),
		items:       make(map[int]domain.Item),
		characters:  make(map[string]domain.Character),
		professions: make(map[string]map[domain.ProfessionType]domain.CharacterProfession),
		stock:       make(map[string]map[int]int),
		sessions:    make(map[string]domain.CraftingSession),
		inventory:   make(map[string][]domain.InventoryEntry),
		nextEntryID: 1,
	}
}

// Seed helpers

func (m *MockRepository) AddRecipe(r domain.RecipeGroup, outputs ...domain.RecipeOutput) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes[r.ID] = r
	m.outputs[r.ID] = append(m.outputs[r.ID], outputs...)
}

func (m *MockRepository) AddMaterial(mat domain.CraftingMaterial) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.materials[mat.ID] = mat
}

func (m *MockRepository) AddItem(item domain.Item) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[item.ID] = item
}

func (m *MockRepository) AddCharacter(c domain.Character) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.characters[c.ID] = c
}

func (m *MockRepository) SetProfessionLevel(characterID string, t domain.ProfessionType, level, experience int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.professions[characterID] == nil {
		m.professions[characterID] = make(map[domain.ProfessionType]domain.CharacterProfession)
	}
	m.professions[characterID][t] = domain.CharacterProfession{
		CharacterID:    characterID,
		ProfessionType: t,
		Level:          level,
		Experience:     experience,
	}
}

func (m *MockRepository) SetStock(characterID string, materialID, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stock[characterID] == nil {
		m.stock[characterID] = make(map[int]int)
	}
	m.stock[characterID][materialID] = quantity
}

// Inspection helpers

func (m *MockRepository) Stock(characterID string, materialID int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stock[characterID][materialID]
}

func (m *MockRepository) Session(characterID string) *domain.CraftingSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[characterID]; ok {
		copied := s
		return &copied
	}
	return nil
}

func (m *MockRepository) Inventory(characterID string) []domain.InventoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.InventoryEntry(nil), m.inventory[characterID]...)
}

func (m *MockRepository) Profession(characterID string, t domain.ProfessionType) domain.CharacterProfession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.professions[characterID][t]
}

// repository.Catalog

func (m *MockRepository) GetRecipeGroup(_ context.Context, id int) (*domain.RecipeGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.recipes[id]; ok {
		copied := r
		return &copied, nil
	}
	return nil, nil
}

func (m *MockRepository) ListRecipeGroups(_ context.Context, t domain.ProfessionType) ([]domain.RecipeGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.RecipeGroup
	for _, r := range m.recipes {
		if r.ProfessionType == t {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRepository) ListOutputs(_ context.Context, recipeGroupID int) ([]domain.RecipeOutput, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.RecipeOutput(nil), m.outputs[recipeGroupID]...), nil
}

func (m *MockRepository) ListMaterials(_ context.Context) ([]domain.CraftingMaterial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.CraftingMaterial
	for _, mat := range m.materials {
		out = append(out, mat)
	}
	return out, nil
}

func (m *MockRepository) GetMaterial(_ context.Context, id int) (*domain.CraftingMaterial, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if mat, ok := m.materials[id]; ok {
		copied := mat
		return &copied, nil
	}
	return nil, nil
}

func (m *MockRepository) GetItem(_ context.Context, id int) (*domain.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if item, ok := m.items[id]; ok {
		copied := item
		return &copied, nil
	}
	return nil, nil
}

// repository.Crafting

func (m *MockRepository) GetCharacter(_ context.Context, characterID string) (*domain.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.characters[characterID]; ok {
		copied := c
		return &copied, nil
	}
	return nil, nil
}

func (m *MockRepository) GetProfession(_ context.Context, characterID string, t domain.ProfessionType) (*domain.CharacterProfession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.professions[characterID][t]; ok {
		copied := p
		return &copied, nil
	}
	return nil, nil
}

func (m *MockRepository) ListProfessions(_ context.Context, characterID string) ([]domain.CharacterProfession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.CharacterProfession
	for _, p := range m.professions[characterID] {
		out = append(out, p)
	}
	return out, nil
}

func (m *MockRepository) GetMaterialQuantity(_ context.Context, characterID string, materialID int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stock[characterID][materialID], nil
}

func (m *MockRepository) ListMaterialHoldings(_ context.Context, characterID string) ([]domain.MaterialHolding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.MaterialHolding
	for id, qty := range m.stock[characterID] {
		mat := m.materials[id]
		out = append(out, domain.MaterialHolding{
			MaterialID: id,
			Name:       mat.Name,
			Rarity:     string(mat.Rarity),
			Quantity:   qty,
		})
	}
	return out, nil
}

func (m *MockRepository) GetSession(_ context.Context, characterID string) (*domain.CraftingSession, error) {
	return m.Session(characterID), nil
}

func (m *MockRepository) BeginTx(_ context.Context) (repository.Tx, error) {
	if m.BeginTxErr != nil {
		return nil, m.BeginTxErr
	}
	return &MockTx{
		repo:    m,
		deltas:  make(map[string]map[int]int),
		pending: nil,
	}, nil
}

// MockTx stages writes and applies them on Commit. Material reads see
// the staged deltas so a read-adjust-read sequence within one
// transaction is consistent.
type MockTx struct {
	repo       *MockRepository
	deltas     map[string]map[int]int
	pending    []func() error
	committed  bool
	rolledBack bool
}

func (t *MockTx) GetSessionForUpdate(_ context.Context, characterID string) (*domain.CraftingSession, error) {
	return t.repo.Session(characterID), nil
}

func (t *MockTx) CreateSession(_ context.Context, session domain.CraftingSession) error {
	t.pending = append(t.pending, func() error {
		if _, ok := t.repo.sessions[session.CharacterID]; ok {
			return fmt.Errorf("session exists for %s", session.CharacterID)
		}
		t.repo.sessions[session.CharacterID] = session
		return nil
	})
	return nil
}

func (t *MockTx) UpdateSessionPin(_ context.Context, characterID string, pinX, pinY, actionsTaken int, lastActionAt time.Time) error {
	t.pending = append(t.pending, func() error {
		s, ok := t.repo.sessions[characterID]
		if !ok {
			return fmt.Errorf("no session for %s", characterID)
		}
		s.PinX = pinX
		s.PinY = pinY
		s.ActionsTaken = actionsTaken
		s.LastActionAt = lastActionAt
		t.repo.sessions[characterID] = s
		return nil
	})
	return nil
}

func (t *MockTx) DeleteSession(_ context.Context, characterID string) error {
	t.pending = append(t.pending, func() error {
		delete(t.repo.sessions, characterID)
		return nil
	})
	return nil
}

func (t *MockTx) GetMaterialQuantityForUpdate(_ context.Context, characterID string, materialID int) (int, error) {
	t.repo.mu.RLock()
	base := t.repo.stock[characterID][materialID]
	t.repo.mu.RUnlock()
	return base + t.deltas[characterID][materialID], nil
}

func (t *MockTx) AdjustMaterialQuantity(ctx context.Context, characterID string, materialID, delta int) error {
	current, _ := t.GetMaterialQuantityForUpdate(ctx, characterID, materialID)
	if current+delta < 0 {
		return fmt.Errorf("quantity below zero for material %d", materialID)
	}
	if t.deltas[characterID] == nil {
		t.deltas[characterID] = make(map[int]int)
	}
	t.deltas[characterID][materialID] += delta
	return nil
}

func (t *MockTx) SetProfession(_ context.Context, p domain.CharacterProfession) error {
	t.pending = append(t.pending, func() error {
		if t.repo.professions[p.CharacterID] == nil {
			t.repo.professions[p.CharacterID] = make(map[domain.ProfessionType]domain.CharacterProfession)
		}
		t.repo.professions[p.CharacterID][p.ProfessionType] = p
		return nil
	})
	return nil
}

func (t *MockTx) AddOrStackItem(_ context.Context, characterID string, itemID, quantity int, quality domain.Quality, stackable bool) error {
	t.pending = append(t.pending, func() error {
		if stackable {
			for i, entry := range t.repo.inventory[characterID] {
				if entry.ItemID == itemID && entry.Quality == quality {
					t.repo.inventory[characterID][i].Quantity += quantity
					return nil
				}
			}
		}
		t.repo.inventory[characterID] = append(t.repo.inventory[characterID], domain.InventoryEntry{
			EntryID:     t.repo.nextEntryID,
			CharacterID: characterID,
			ItemID:      itemID,
			Quality:     quality,
			Quantity:    quantity,
		})
		t.repo.nextEntryID++
		return nil
	})
	return nil
}

func (t *MockTx) Commit(_ context.Context) error {
	if t.rolledBack || t.committed {
		return errors.New("transaction closed")
	}
	if t.repo.CommitErr != nil {
		return t.repo.CommitErr
	}
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for characterID, mats := range t.deltas {
		if t.repo.stock[characterID] == nil {
			t.repo.stock[characterID] = make(map[int]int)
		}
		for id, delta := range mats {
			if t.repo.stock[characterID][id]+delta < 0 {
				return fmt.Errorf("quantity below zero for material %d", id)
			}
			t.repo.stock[characterID][id] += delta
		}
	}
	for _, op := range t.pending {
		if err := op(); err != nil {
			return err
		}
	}
	t.committed = true
	return nil
}

func (t *MockTx) Rollback(_ context.Context) error {
	if t.committed {
		return nil
	}
	t.rolledBack = true
	t.pending = nil
	t.deltas = make(map[string]map[int]int)
	return nil
}

// newTestService wires a service over the mock with a deterministic
// midpoint random source; tests override rnd as needed.
func newTestService(repo *MockRepository) *service {
	return &service{
		repo:  repo,
		locks: concurrency.NewLockManager(),
		bus:   event.NewBus(),
		rnd:   func() float64 { return 0.5 },
	}
}

// Fixture ids shared across the service tests
const (
	testCharacter = "char-1"

	matIronOre       = 1
	matLeather       = 2
	matDragonScale   = 7
	matPhoenixDown   = 8
	itemIronSword    = 301
	itemIronDagger   = 302
	itemScaleBlade   = 303
	itemHealingDraft = 304
	recipeIronSword  = 101
	recipeDraft      = 201
)

// newTestWorld seeds a repository with one blacksmith character, a
// sword recipe with a named rare-gated output, and an alchemy recipe
// yielding a stackable item.
func newTestWorld() *MockRepository {
	repo := NewMockRepository()

	repo.AddMaterial(domain.CraftingMaterial{ID: matIronOre, Name: "iron ore", Rarity: domain.RarityCommon})
	repo.AddMaterial(domain.CraftingMaterial{ID: matLeather, Name: "leather", Rarity: domain.RarityUncommon})
	repo.AddMaterial(domain.CraftingMaterial{ID: matDragonScale, Name: "dragon scale", Rarity: domain.RarityRare})
	repo.AddMaterial(domain.CraftingMaterial{ID: matPhoenixDown, Name: "phoenix down", Rarity: domain.RarityRare})

	repo.AddItem(domain.Item{ID: itemIronSword, Name: "iron sword", AttackBonus: 10, BaseValue: 50})
	repo.AddItem(domain.Item{ID: itemIronDagger, Name: "iron dagger", AttackBonus: 6, BaseValue: 30})
	repo.AddItem(domain.Item{ID: itemScaleBlade, Name: "scalebane blade", AttackBonus: 25, BaseValue: 400})
	repo.AddItem(domain.Item{ID: itemHealingDraft, Name: "healing draft", Stackable: true, UtilityBonus: 5, BaseValue: 12})

	scale := matDragonScale
	repo.AddRecipe(domain.RecipeGroup{
		ID:               recipeIronSword,
		Name:             "iron sword",
		ProfessionType:   domain.ProfessionBlacksmithing,
		MinLevel:         1,
		MaxLevel:         20,
		CraftTimeSeconds: 30,
		BaseExperience:   40,
		Materials:        []domain.RecipeCost{{MaterialID: matIronOre, Quantity: 3}},
	},
		domain.RecipeOutput{ID: 1, RecipeGroupID: recipeIronSword, ItemID: itemIronSword, BaseWeight: 80, SortOrder: 0},
		domain.RecipeOutput{ID: 2, RecipeGroupID: recipeIronSword, ItemID: itemIronDagger, MinProfessionLevel: 5, BaseWeight: 20, WeightPerLevel: 1, QualityBonusWeight: 10, SortOrder: 1},
		domain.RecipeOutput{ID: 3, RecipeGroupID: recipeIronSword, ItemID: itemScaleBlade, IsNamed: true, RequiresRareMaterialID: &scale, BaseWeight: 10, SortOrder: 2},
	)

	repo.AddRecipe(domain.RecipeGroup{
		ID:               recipeDraft,
		Name:             "healing draft",
		ProfessionType:   domain.ProfessionAlchemy,
		MinLevel:         1,
		MaxLevel:         10,
		CraftTimeSeconds: 15,
		BaseExperience:   25,
		Materials:        []domain.RecipeCost{{MaterialID: matLeather, Quantity: 2}},
	},
		domain.RecipeOutput{ID: 4, RecipeGroupID: recipeDraft, ItemID: itemHealingDraft, BaseWeight: 100, SortOrder: 0},
	)

	repo.AddCharacter(domain.Character{ID: testCharacter, Name: "Vael", Level: 40})
	repo.SetProfessionLevel(testCharacter, domain.ProfessionBlacksmithing, 10, 0)
	repo.SetProfessionLevel(testCharacter, domain.ProfessionAlchemy, 3, 0)
	repo.SetStock(testCharacter, matIronOre, 10)
	repo.SetStock(testCharacter, matLeather, 5)

	return repo
}

// declined points at the decline sentinel for start calls.
func declined() *int {
	v := domain.RareMaterialDeclined
	return &v
}

func intPtr(v int) *int { return &v }

// rndSequence returns values in order, then repeats the last one.
func rndSequence(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}
